package supply

import (
	"sync"

	"github.com/cockroachdb/errors"
	"lukechampine.com/uint128"
)

// simpleCounter guards a single value with a mutex.
type simpleCounter struct {
	value   uint128.Uint128
	ceiling uint128.Uint128
	mutex   sync.RWMutex
}

func newSimpleCounter(ceiling, value uint128.Uint128) *simpleCounter {
	return &simpleCounter{
		value:   value,
		ceiling: ceiling,
	}
}

func (s *simpleCounter) Read() uint128.Uint128 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.value
}

func (s *simpleCounter) Max() uint128.Uint128 {
	return s.ceiling
}

func (s *simpleCounter) Add(delta uint128.Uint128) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	updated, ok := checkedAdd(s.value, delta, s.ceiling)
	if !ok {
		return errors.Errorf("failed to add %s to %s (max %s): %w", delta, s.value, s.ceiling, ErrMaxSupplyExceeded)
	}
	s.value = updated

	return nil
}

func (s *simpleCounter) Sub(delta uint128.Uint128) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	updated, ok := checkedSub(s.value, delta)
	if !ok {
		return errors.Errorf("failed to subtract %s from %s: %w", delta, s.value, ErrSupplyUnderflow)
	}
	s.value = updated

	return nil
}

func (s *simpleCounter) Parallelizable() bool {
	return false
}
