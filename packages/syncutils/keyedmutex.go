package syncutils

import (
	"fmt"
	"sort"
	"sync"
)

// KeyedMutex hands out one RWMutex per key. Mutexes are created on first use and released again once nobody is
// waiting for or holding them anymore.
type KeyedMutex[T comparable] struct {
	consumerCounter map[T]int
	mutexes         map[T]*sync.RWMutex
	less            func(a, b T) bool
	sync.Mutex
}

// NewKeyedMutex returns a KeyedMutex that uses the given ordering to lock multiple keys without deadlocks.
func NewKeyedMutex[T comparable](less func(a, b T) bool) *KeyedMutex[T] {
	return &KeyedMutex[T]{
		consumerCounter: make(map[T]int),
		mutexes:         make(map[T]*sync.RWMutex),
		less:            less,
	}
}

// RLock acquires shared locks for the given keys.
func (k *KeyedMutex[T]) RLock(ids ...T) {
	for _, mutex := range k.registerMutexes(k.canonical(ids)...) {
		mutex.RLock()
	}
}

// RUnlock releases shared locks of the given keys.
func (k *KeyedMutex[T]) RUnlock(ids ...T) {
	for _, mutex := range k.unregisterMutexes(k.canonical(ids)...) {
		mutex.RUnlock()
	}
}

// Lock acquires the exclusive lock of the given key.
func (k *KeyedMutex[T]) Lock(id T) {
	k.LockAll(id)
}

// Unlock releases the exclusive lock of the given key.
func (k *KeyedMutex[T]) Unlock(id T) {
	k.UnlockAll(id)
}

// LockAll acquires exclusive locks for all given keys. Duplicate keys are locked once and the locks are always taken
// in the same order, so two callers locking overlapping sets can not deadlock.
func (k *KeyedMutex[T]) LockAll(ids ...T) {
	for _, mutex := range k.registerMutexes(k.canonical(ids)...) {
		mutex.Lock()
	}
}

// UnlockAll releases the exclusive locks of all given keys.
func (k *KeyedMutex[T]) UnlockAll(ids ...T) {
	for _, mutex := range k.unregisterMutexes(k.canonical(ids)...) {
		mutex.Unlock()
	}
}

// canonical returns the deduplicated keys in lock order.
func (k *KeyedMutex[T]) canonical(ids []T) (canonical []T) {
	seen := make(map[T]struct{}, len(ids))
	canonical = make([]T, 0, len(ids))
	for _, id := range ids {
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		canonical = append(canonical, id)
	}

	sort.Slice(canonical, func(i, j int) bool {
		return k.less(canonical[i], canonical[j])
	})

	return canonical
}

func (k *KeyedMutex[T]) registerMutexes(ids ...T) (mutexes []*sync.RWMutex) {
	k.Mutex.Lock()
	defer k.Mutex.Unlock()

	mutexes = make([]*sync.RWMutex, len(ids))
	for i, id := range ids {
		mutexes[i] = k.registerMutex(id)
	}

	return mutexes
}

func (k *KeyedMutex[T]) registerMutex(id T) (mutex *sync.RWMutex) {
	mutex, mutexExists := k.mutexes[id]
	if !mutexExists {
		mutex = &sync.RWMutex{}
		k.mutexes[id] = mutex
	}

	k.consumerCounter[id]++

	return mutex
}

func (k *KeyedMutex[T]) unregisterMutexes(ids ...T) (mutexes []*sync.RWMutex) {
	k.Mutex.Lock()
	defer k.Mutex.Unlock()

	mutexes = make([]*sync.RWMutex, len(ids))
	for i, id := range ids {
		mutexes[i] = k.unregisterMutex(id)
	}

	return mutexes
}

// unregisterMutex returns the mutex of the key and forgets about it once the last consumer is gone. The returned mutex
// still needs to be unlocked by the caller.
func (k *KeyedMutex[T]) unregisterMutex(id T) (mutex *sync.RWMutex) {
	mutex, mutexExists := k.mutexes[id]
	if !mutexExists {
		panic(fmt.Errorf("called Unlock or RUnlock too often for entity with %v", id))
	}

	if k.consumerCounter[id]--; k.consumerCounter[id] == 0 {
		delete(k.consumerCounter, id)
		delete(k.mutexes, id)
	}

	return mutex
}
