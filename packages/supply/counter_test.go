package supply

import (
	"math"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func testCounters(ceiling uint128.Uint128) map[string]Counter {
	return map[string]Counter{
		"simple":   New(ceiling, false),
		"parallel": New(ceiling, true, WithShards(4)),
	}
}

func TestCounter_MaxSupply(t *testing.T) {
	for name, counter := range testCounters(uint128.From64(1000)) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, counter.Add(uint128.From64(600)))

			err := counter.Add(uint128.From64(500))
			assert.True(t, errors.Is(err, ErrMaxSupplyExceeded))
			assert.Equal(t, uint128.From64(600), counter.Read())

			require.NoError(t, counter.Add(uint128.From64(400)))
			assert.Equal(t, uint128.From64(1000), counter.Read())

			assert.True(t, errors.Is(counter.Add(uint128.From64(1)), ErrMaxSupplyExceeded))
			assert.Equal(t, uint128.From64(1000), counter.Max())
		})
	}
}

func TestCounter_Underflow(t *testing.T) {
	for name, counter := range testCounters(uint128.Max) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, counter.Add(uint128.From64(30)))

			err := counter.Sub(uint128.From64(31))
			assert.True(t, errors.Is(err, ErrSupplyUnderflow))
			assert.Equal(t, uint128.From64(30), counter.Read())

			require.NoError(t, counter.Sub(uint128.From64(30)))
			assert.True(t, counter.Read().IsZero())
		})
	}
}

func TestCounter_Uncapped128Bit(t *testing.T) {
	for name, counter := range testCounters(uint128.Max) {
		t.Run(name, func(t *testing.T) {
			big := uint128.From64(^uint64(0))
			for i := 0; i < 4; i++ {
				require.NoError(t, counter.Add(big))
			}
			assert.Equal(t, big.Mul64(4), counter.Read())

			require.NoError(t, counter.Sub(big.Mul64(3)))
			assert.Equal(t, big, counter.Read())
		})
	}
}

func TestCounter_Concurrent(t *testing.T) {
	const (
		workers    = 16
		iterations = 500
	)

	// every worker holds at most one unit more than its final share while it runs
	for name, counter := range testCounters(uint128.From64(workers*iterations + workers)) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()

					for j := 0; j < iterations; j++ {
						assert.NoError(t, counter.Add(uint128.From64(2)))
						assert.NoError(t, counter.Sub(uint128.From64(1)))
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, uint128.From64(workers*iterations), counter.Read())
			assert.True(t, errors.Is(counter.Add(uint128.From64(workers+1)), ErrMaxSupplyExceeded))

			if parallel, isParallel := counter.(*parallelCounter); isParallel {
				assertHeadroomInvariant(t, parallel)
			}
		})
	}
}

func TestParallelCounter_SubAcrossShards(t *testing.T) {
	counter := newParallelCounter(uint128.From64(100), uint128.Zero, newOptions(WithShards(3)))
	for i := 0; i < 3; i++ {
		require.NoError(t, counter.Add(uint128.From64(10)))
	}

	require.NoError(t, counter.Sub(uint128.From64(25)))
	assert.Equal(t, uint128.From64(5), counter.Read())
	assertHeadroomInvariant(t, counter)

	require.NoError(t, counter.Add(uint128.From64(95)))
	assert.True(t, errors.Is(counter.Add(uint128.From64(1)), ErrMaxSupplyExceeded))
	assertHeadroomInvariant(t, counter)
}

func TestUpgrade(t *testing.T) {
	counter := New(uint128.From64(1000), false)
	require.NoError(t, counter.Add(uint128.From64(700)))

	upgraded := Upgrade(counter, WithShards(2))
	assert.True(t, upgraded.Parallelizable())
	assert.Equal(t, uint128.From64(700), upgraded.Read())
	assert.Equal(t, uint128.From64(1000), upgraded.Max())
	assert.True(t, errors.Is(upgraded.Add(uint128.From64(301)), ErrMaxSupplyExceeded))
	require.NoError(t, upgraded.Sub(uint128.From64(700)))

	assert.Same(t, upgraded, Upgrade(upgraded))
}

func assertHeadroomInvariant(t *testing.T, counter *parallelCounter) {
	counter.lockShards()
	defer counter.unlockShards()
	counter.poolMutex.Lock()
	defer counter.poolMutex.Unlock()

	total := counter.pool
	for _, s := range counter.shards {
		total = total.Add(s.value).Add(s.headroom)
	}
	assert.Equal(t, counter.ceiling, total)
}

func TestParallelCounter_ShardWraparound(t *testing.T) {
	counter := New(uint128.From64(1000), true, WithShards(3)).(*parallelCounter)
	counter.next.Store(math.MaxUint32 - 2)

	for i := 0; i < 6; i++ {
		require.NoError(t, counter.Add(uint128.From64(1)))
	}
	assert.Equal(t, uint128.From64(6), counter.Read())
	assertHeadroomInvariant(t, counter)
}
