package supply

import (
	"lukechampine.com/uint128"
)

// Counter is a checked, optionally capped running total of minted-minus-burned units. All implementations are safe for
// concurrent use and leave the value untouched when an operation fails.
type Counter interface {
	// Read returns the current value.
	Read() uint128.Uint128

	// Max returns the ceiling of the Counter (uint128.Max if it is uncapped).
	Max() uint128.Uint128

	// Add increases the value or fails with ErrMaxSupplyExceeded.
	Add(delta uint128.Uint128) error

	// Sub decreases the value or fails with ErrSupplyUnderflow.
	Sub(delta uint128.Uint128) error

	// Parallelizable returns true if concurrent updates do not contend on a single lock.
	Parallelizable() bool
}

// New returns a Counter that starts at zero. A parallelizable Counter shards its state so that concurrent updates
// rarely contend, at the cost of a more expensive Read.
func New(ceiling uint128.Uint128, parallelizable bool, opts ...Option) Counter {
	if parallelizable {
		return newParallelCounter(ceiling, uint128.Zero, newOptions(opts...))
	}

	return newSimpleCounter(ceiling, uint128.Zero)
}

// Upgrade returns a parallelizable Counter with the same value and ceiling as the given one. A Counter that is
// parallelizable already is returned unchanged. The given Counter must not be used anymore afterwards.
func Upgrade(counter Counter, opts ...Option) Counter {
	if counter.Parallelizable() {
		return counter
	}

	return newParallelCounter(counter.Max(), counter.Read(), newOptions(opts...))
}

// checkedAdd returns value + delta if it does not exceed the ceiling.
func checkedAdd(value, delta, ceiling uint128.Uint128) (result uint128.Uint128, ok bool) {
	if delta.Cmp(ceiling) > 0 || value.Cmp(ceiling.Sub(delta)) > 0 {
		return value, false
	}

	return value.Add(delta), true
}

// checkedSub returns value - delta if it does not drop below zero.
func checkedSub(value, delta uint128.Uint128) (result uint128.Uint128, ok bool) {
	if value.Cmp(delta) < 0 {
		return value, false
	}

	return value.Sub(delta), true
}

// minimum returns the smaller of the two values.
func minimum(a, b uint128.Uint128) uint128.Uint128 {
	if a.Cmp(b) < 0 {
		return a
	}

	return b
}
