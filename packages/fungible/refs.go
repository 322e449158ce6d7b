package fungible

import (
	"github.com/iotaledger/hive.go/stringify"
)

// region MintRef //////////////////////////////////////////////////////////////////////////////////////////////////////

// MintRef authorizes minting new units of exactly one asset class. It can only be obtained from Ledger.CreateClass.
type MintRef struct {
	metadata Metadata
}

// Metadata returns the asset class that the MintRef is bound to.
func (m *MintRef) Metadata() Metadata {
	return m.metadata
}

// String returns a human-readable version of the MintRef.
func (m *MintRef) String() string {
	return stringify.Struct("MintRef",
		stringify.StructField("metadata", m.metadata),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TransferRef //////////////////////////////////////////////////////////////////////////////////////////////////

// TransferRef authorizes moving units of exactly one asset class between Stores regardless of ownership and of their
// transfer gates, and flipping those gates. It can only be obtained from Ledger.CreateClass.
type TransferRef struct {
	metadata Metadata
}

// Metadata returns the asset class that the TransferRef is bound to.
func (t *TransferRef) Metadata() Metadata {
	return t.metadata
}

// String returns a human-readable version of the TransferRef.
func (t *TransferRef) String() string {
	return stringify.Struct("TransferRef",
		stringify.StructField("metadata", t.metadata),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region BurnRef //////////////////////////////////////////////////////////////////////////////////////////////////////

// BurnRef authorizes destroying units of exactly one asset class. It can only be obtained from Ledger.CreateClass.
type BurnRef struct {
	metadata Metadata
}

// Metadata returns the asset class that the BurnRef is bound to.
func (b *BurnRef) Metadata() Metadata {
	return b.metadata
}

// String returns a human-readable version of the BurnRef.
func (b *BurnRef) String() string {
	return stringify.Struct("BurnRef",
		stringify.StructField("metadata", b.metadata),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
