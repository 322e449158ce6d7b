package eventsink

import (
	"github.com/iotaledger/hive.go/generics/event"
)

// region Events ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Events is a container that acts as a dictionary for the existing events of a Sink.
type Events struct {
	// Emitted is an event that gets triggered whenever a payload is emitted through any Handle of the Sink.
	Emitted *event.Event[*EmittedEvent]
}

// newEvents returns a new Events object.
func newEvents() (new *Events) {
	return &Events{
		Emitted: event.New[*EmittedEvent](),
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region EmittedEvent /////////////////////////////////////////////////////////////////////////////////////////////////

// EmittedEvent is a container that acts as a dictionary for the Emitted event related parameters.
type EmittedEvent struct {
	// GUID contains the identifier of the Handle that emitted the payload.
	GUID GUID

	// SequenceNumber contains the position of the payload in the stream of its Handle.
	SequenceNumber uint64

	// Payload contains the emitted value.
	Payload any
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
