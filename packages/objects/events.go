package objects

import (
	"github.com/iotaledger/hive.go/generics/event"
)

// region Events ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Events is a container that acts as a dictionary for the existing events of a Registry.
type Events struct {
	// ObjectCreated is an event that gets triggered whenever a new object is created.
	ObjectCreated *event.Event[*ObjectCreatedEvent]

	// ObjectTransferred is an event that gets triggered whenever the owner of an object changes.
	ObjectTransferred *event.Event[*ObjectTransferredEvent]

	// ObjectDeleted is an event that gets triggered whenever an object is deleted.
	ObjectDeleted *event.Event[*ObjectDeletedEvent]
}

// newEvents returns a new Events object.
func newEvents() (new *Events) {
	return &Events{
		ObjectCreated:     event.New[*ObjectCreatedEvent](),
		ObjectTransferred: event.New[*ObjectTransferredEvent](),
		ObjectDeleted:     event.New[*ObjectDeletedEvent](),
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ObjectCreatedEvent ///////////////////////////////////////////////////////////////////////////////////////////

// ObjectCreatedEvent is a container that acts as a dictionary for the ObjectCreated event related parameters.
type ObjectCreatedEvent struct {
	// Object contains the Address of the created object.
	Object Address

	// Owner contains the Address of the initial owner.
	Owner Address
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ObjectTransferredEvent ///////////////////////////////////////////////////////////////////////////////////////

// ObjectTransferredEvent is a container that acts as a dictionary for the ObjectTransferred event related parameters.
type ObjectTransferredEvent struct {
	// Object contains the Address of the transferred object.
	Object Address

	// From contains the Address of the previous owner.
	From Address

	// To contains the Address of the new owner.
	To Address
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ObjectDeletedEvent ///////////////////////////////////////////////////////////////////////////////////////////

// ObjectDeletedEvent is a container that acts as a dictionary for the ObjectDeleted event related parameters.
type ObjectDeletedEvent struct {
	// Object contains the Address of the deleted object.
	Object Address
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
