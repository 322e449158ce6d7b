package jsonmodels

import (
	"github.com/iotaledger/fungible/packages/fungible"
)

// region ClassResponse ////////////////////////////////////////////////////////////////////////////////////////////////

// ClassResponse is the JSON representation of an asset class.
type ClassResponse struct {
	Metadata string `json:"metadata"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	Tracked  bool   `json:"tracked"`
	Supply   string `json:"supply,omitempty"`
	Maximum  string `json:"maximum,omitempty"`
}

// ClassResponseFromLedger loads the asset class from the Ledger.
func ClassResponseFromLedger(ledger *fungible.Ledger, metadata fungible.Metadata) (response *ClassResponse, err error) {
	response = &ClassResponse{Metadata: metadata.Address().Base58()}

	if response.Name, err = ledger.Name(metadata); err != nil {
		return nil, err
	}
	if response.Symbol, err = ledger.Symbol(metadata); err != nil {
		return nil, err
	}
	if response.Decimals, err = ledger.Decimals(metadata); err != nil {
		return nil, err
	}

	supply, tracked, err := ledger.Supply(metadata)
	if err != nil {
		return nil, err
	}
	if response.Tracked = tracked; tracked {
		response.Supply = supply.String()
	}

	maximum, capped, err := ledger.Maximum(metadata)
	if err != nil {
		return nil, err
	}
	if capped {
		response.Maximum = maximum.String()
	}

	return response, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region StoreResponse ////////////////////////////////////////////////////////////////////////////////////////////////

// StoreResponse is the JSON representation of a Store.
type StoreResponse struct {
	Store    string `json:"store"`
	Metadata string `json:"metadata"`
	Balance  uint64 `json:"balance"`
	Frozen   bool   `json:"frozen"`
}

// StoreResponseFromLedger loads the Store from the Ledger.
func StoreResponseFromLedger(ledger *fungible.Ledger, store fungible.Store) (response *StoreResponse, err error) {
	metadata, err := ledger.StoreMetadata(store)
	if err != nil {
		return nil, err
	}

	return &StoreResponse{
		Store:    store.Address().Base58(),
		Metadata: metadata.Address().Base58(),
		Balance:  ledger.Balance(store),
		Frozen:   ledger.IsFrozen(store),
	}, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ErrorResponse ////////////////////////////////////////////////////////////////////////////////////////////////

// ErrorResponse is the response that is returned when an error occurred in any of the endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse returns an ErrorResponse from the given error.
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{
		Error: err.Error(),
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
