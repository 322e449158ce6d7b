package eventsink

import (
	"fmt"
	"sync"

	"github.com/iotaledger/hive.go/stringify"
	"go.uber.org/atomic"

	"github.com/iotaledger/fungible/packages/objects"
)

// region Sink /////////////////////////////////////////////////////////////////////////////////////////////////////////

// Sink records structured notifications. Emitters obtain a Handle per stream of events and every emitted payload is
// broadcast through the Emitted event together with the GUID and sequence number that identify it.
type Sink struct {
	// Events is a dictionary for Sink related events.
	Events *Events

	creationNumbers      map[objects.Address]uint64
	creationNumbersMutex sync.Mutex
	emittedCount         *atomic.Uint64
}

// New returns a new Sink.
func New() (new *Sink) {
	return &Sink{
		Events:          newEvents(),
		creationNumbers: make(map[objects.Address]uint64),
		emittedCount:    atomic.NewUint64(0),
	}
}

// EmittedCount returns the number of events that were emitted through the Sink.
func (s *Sink) EmittedCount() uint64 {
	return s.emittedCount.Load()
}

// nextGUID returns a fresh GUID for the given Address.
func (s *Sink) nextGUID(address objects.Address) (guid GUID) {
	s.creationNumbersMutex.Lock()
	defer s.creationNumbersMutex.Unlock()

	guid = GUID{CreationNumber: s.creationNumbers[address], Address: address}
	s.creationNumbers[address]++

	return guid
}

// emit broadcasts the given payload.
func (s *Sink) emit(guid GUID, sequenceNumber uint64, payload any) {
	s.emittedCount.Inc()

	s.Events.Emitted.Trigger(&EmittedEvent{
		GUID:           guid,
		SequenceNumber: sequenceNumber,
		Payload:        payload,
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region GUID /////////////////////////////////////////////////////////////////////////////////////////////////////////

// GUID is the globally unique identifier of an event stream.
type GUID struct {
	// CreationNumber is the number of streams that were created for the Address before this one.
	CreationNumber uint64

	// Address is the Address of the object that owns the stream.
	Address objects.Address
}

// String returns a human-readable version of the GUID.
func (g GUID) String() string {
	return fmt.Sprintf("GUID(%d, %s)", g.CreationNumber, g.Address.Alias())
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Handle ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Handle is a typed stream of events that belongs to a single object. Events emitted through a Handle are numbered
// consecutively starting at 0.
type Handle[T any] struct {
	sink      *Sink
	guid      GUID
	counter   *atomic.Uint64
	destroyed *atomic.Bool
}

// NewHandle creates a new Handle for events of type T that belongs to the object at the given Address.
func NewHandle[T any](sink *Sink, address objects.Address) (handle *Handle[T]) {
	return &Handle[T]{
		sink:      sink,
		guid:      sink.nextGUID(address),
		counter:   atomic.NewUint64(0),
		destroyed: atomic.NewBool(false),
	}
}

// GUID returns the identifier of the Handle.
func (h *Handle[T]) GUID() GUID {
	return h.guid
}

// Counter returns the number of events that were emitted through the Handle.
func (h *Handle[T]) Counter() uint64 {
	return h.counter.Load()
}

// Emit records the given payload. Emitting through a destroyed Handle is a programming error and panics.
func (h *Handle[T]) Emit(payload T) {
	if h.destroyed.Load() {
		panic(fmt.Sprintf("emit on destroyed event handle %s", h.guid))
	}

	h.sink.emit(h.guid, h.counter.Inc()-1, payload)
}

// Destroy tears down the Handle. It returns false if the Handle was destroyed already.
func (h *Handle[T]) Destroy() (destroyed bool) {
	return h.destroyed.CAS(false, true)
}

// IsDestroyed returns true if the Handle was destroyed.
func (h *Handle[T]) IsDestroyed() bool {
	return h.destroyed.Load()
}

// String returns a human-readable version of the Handle.
func (h *Handle[T]) String() string {
	return stringify.Struct("Handle",
		stringify.StructField("guid", h.guid),
		stringify.StructField("counter", h.Counter()),
		stringify.StructField("destroyed", h.IsDestroyed()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
