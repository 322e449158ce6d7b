package fungible

import (
	"github.com/iotaledger/hive.go/generics/event"
	"lukechampine.com/uint128"

	"github.com/iotaledger/fungible/packages/eventsink"
)

// region Events ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Events is a container that acts as a dictionary for the existing events of a Ledger.
type Events struct {
	// ClassCreated is an event that gets triggered whenever a new asset class is created.
	ClassCreated *event.Event[*ClassCreatedEvent]

	// StoreCreated is an event that gets triggered whenever a new Store is created.
	StoreCreated *event.Event[*StoreCreatedEvent]

	// StoreRemoved is an event that gets triggered whenever a Store is removed.
	StoreRemoved *event.Event[*StoreRemovedEvent]

	// Deposit is an event that gets triggered whenever value is deposited into a Store.
	Deposit *event.Event[*DepositEvent]

	// Withdraw is an event that gets triggered whenever value is withdrawn from a Store.
	Withdraw *event.Event[*WithdrawEvent]

	// GateChanged is an event that gets triggered whenever the transfer gate of a Store is set.
	GateChanged *event.Event[*GateChangedEvent]

	// Minted is an event that gets triggered whenever new units of an asset class are minted.
	Minted *event.Event[*SupplyChangedEvent]

	// Burned is an event that gets triggered whenever units of an asset class are burned.
	Burned *event.Event[*SupplyChangedEvent]

	// Error is event that gets triggered whenever an internal error occurs.
	Error *event.Event[error]
}

// newEvents returns a new Events object.
func newEvents() (new *Events) {
	return &Events{
		ClassCreated: event.New[*ClassCreatedEvent](),
		StoreCreated: event.New[*StoreCreatedEvent](),
		StoreRemoved: event.New[*StoreRemovedEvent](),
		Deposit:      event.New[*DepositEvent](),
		Withdraw:     event.New[*WithdrawEvent](),
		GateChanged:  event.New[*GateChangedEvent](),
		Minted:       event.New[*SupplyChangedEvent](),
		Burned:       event.New[*SupplyChangedEvent](),
		Error:        event.New[error](),
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ClassCreatedEvent ////////////////////////////////////////////////////////////////////////////////////////////

// ClassCreatedEvent is a container that acts as a dictionary for the ClassCreated event related parameters.
type ClassCreatedEvent struct {
	// Metadata contains the identifier of the new asset class.
	Metadata Metadata

	// Name contains the display name of the asset class.
	Name string

	// Symbol contains the ticker symbol of the asset class.
	Symbol string

	// Decimals contains the display precision of the asset class.
	Decimals uint8

	// Policy contains the SupplyPolicy of the asset class.
	Policy SupplyPolicy
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region StoreCreatedEvent ////////////////////////////////////////////////////////////////////////////////////////////

// StoreCreatedEvent is a container that acts as a dictionary for the StoreCreated event related parameters.
type StoreCreatedEvent struct {
	// Store contains the new Store.
	Store Store

	// Metadata contains the asset class of the Store.
	Metadata Metadata
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region StoreRemovedEvent ////////////////////////////////////////////////////////////////////////////////////////////

// StoreRemovedEvent is a container that acts as a dictionary for the StoreRemoved event related parameters.
type StoreRemovedEvent struct {
	// Store contains the removed Store.
	Store Store

	// Metadata contains the asset class of the removed Store.
	Metadata Metadata
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region DepositEvent /////////////////////////////////////////////////////////////////////////////////////////////////

// DepositEvent is a container that acts as a dictionary for the Deposit event related parameters.
type DepositEvent struct {
	// Store contains the Store that received the value.
	Store Store

	// Metadata contains the asset class of the deposited value.
	Metadata Metadata

	// Amount contains the deposited amount.
	Amount uint64

	// Balance contains the balance of the Store after the deposit.
	Balance uint64
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region WithdrawEvent ////////////////////////////////////////////////////////////////////////////////////////////////

// WithdrawEvent is a container that acts as a dictionary for the Withdraw event related parameters.
type WithdrawEvent struct {
	// Store contains the Store that the value was taken from.
	Store Store

	// Metadata contains the asset class of the withdrawn value.
	Metadata Metadata

	// Amount contains the withdrawn amount.
	Amount uint64

	// Balance contains the balance of the Store after the withdrawal.
	Balance uint64
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region GateChangedEvent /////////////////////////////////////////////////////////////////////////////////////////////

// GateChangedEvent is a container that acts as a dictionary for the GateChanged event related parameters.
type GateChangedEvent struct {
	// Store contains the Store whose gate was set.
	Store Store

	// Metadata contains the asset class of the Store.
	Metadata Metadata

	// Allowed contains the new state of the gate.
	Allowed bool
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SupplyChangedEvent ///////////////////////////////////////////////////////////////////////////////////////////

// SupplyChangedEvent is a container that acts as a dictionary for the Minted and Burned event related parameters.
type SupplyChangedEvent struct {
	// Metadata contains the asset class whose supply changed.
	Metadata Metadata

	// Amount contains the minted or burned amount.
	Amount uint64

	// Supply contains the tracked supply after the change (zero for untracked asset classes).
	Supply uint128.Uint128

	// Tracked is true if the asset class tracks its supply.
	Tracked bool
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region store event payloads /////////////////////////////////////////////////////////////////////////////////////////

// Deposit is the payload that a Store emits through its deposit Handle.
type Deposit struct {
	Amount uint64
}

// Withdraw is the payload that a Store emits through its withdraw Handle.
type Withdraw struct {
	Amount uint64
}

// GateChanged is the payload that a Store emits through its gate Handle.
type GateChanged struct {
	Allowed bool
}

// storeEventHandles bundles the event Handles that belong to a Store.
type storeEventHandles struct {
	deposit     *eventsink.Handle[Deposit]
	withdraw    *eventsink.Handle[Withdraw]
	gateChanged *eventsink.Handle[GateChanged]
}

// newStoreEventHandles creates the event Handles of the given Store.
func newStoreEventHandles(sink *eventsink.Sink, store Store) *storeEventHandles {
	return &storeEventHandles{
		deposit:     eventsink.NewHandle[Deposit](sink, store.address),
		withdraw:    eventsink.NewHandle[Withdraw](sink, store.address),
		gateChanged: eventsink.NewHandle[GateChanged](sink, store.address),
	}
}

// destroy tears down all Handles.
func (s *storeEventHandles) destroy() {
	s.deposit.Destroy()
	s.withdraw.Destroy()
	s.gateChanged.Destroy()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
