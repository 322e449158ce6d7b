package syncutils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_LockAll(t *testing.T) {
	mutex := NewKeyedMutex[int](func(a, b int) bool { return a < b })

	const workers = 8
	counters := make(map[int]int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			// alternate the argument order to provoke lock order inversions
			keys := []int{1, 2}
			if i%2 == 0 {
				keys = []int{2, 1, 2}
			}

			for j := 0; j < 1000; j++ {
				mutex.LockAll(keys...)
				counters[1]++
				counters[2]++
				mutex.UnlockAll(keys...)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, workers*1000, counters[1])
	assert.Equal(t, workers*1000, counters[2])
	assert.Empty(t, mutex.mutexes)
	assert.Empty(t, mutex.consumerCounter)
}

func TestKeyedMutex_RLock(t *testing.T) {
	mutex := NewKeyedMutex[string](func(a, b string) bool { return a < b })

	mutex.RLock("a", "b")
	mutex.RLock("a")
	mutex.RUnlock("a")
	mutex.RUnlock("a", "b")

	mutex.Lock("a")
	mutex.Unlock("a")

	assert.Empty(t, mutex.mutexes)
	assert.Panics(t, func() {
		mutex.Unlock("a")
	})
}
