package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/iotaledger/fungible/packages/fungible"
)

func TestCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector, err := New(registry, WithRateInterval(time.Minute))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, collector.Close())
	}()

	tf := fungible.NewTestFramework(t)
	collector.Attach(tf.Ledger, tf.Sink)

	tf.CreateHolder("issuer")
	tf.CreateHolder("alice")
	tf.CreateHolder("bob")
	class := tf.CreateClass("Coin", "issuer", fungible.Capped(uint128.From64(1000)))
	tf.CreateStore("alice.coin", "alice", "Coin")
	tf.CreateStore("bob.coin", "bob", "Coin")

	tf.MintTo("alice.coin", 500)
	require.NoError(t, tf.Ledger.Transfer(tf.Signer("alice"), tf.Store("alice.coin"), tf.Store("bob.coin"), 200))
	require.NoError(t, tf.Ledger.BurnFrom(class.BurnRef, tf.Store("bob.coin"), 50))

	label := classLabel(class.Metadata)
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.classes))
	assert.Equal(t, float64(2), testutil.ToFloat64(collector.stores))
	assert.Equal(t, float64(450), testutil.ToFloat64(collector.supply.WithLabelValues(label)))
	assert.Equal(t, float64(700), testutil.ToFloat64(collector.deposits.WithLabelValues(label)))
	assert.Equal(t, float64(250), testutil.ToFloat64(collector.withdrawals.WithLabelValues(label)))
	assert.Equal(t, float64(500), testutil.ToFloat64(collector.minted.WithLabelValues(label)))
	assert.Equal(t, float64(50), testutil.ToFloat64(collector.burned.WithLabelValues(label)))
	assert.Equal(t, float64(2), testutil.ToFloat64(collector.rates.gauge.WithLabelValues(label)))

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, family := range families {
		names[family.GetName()] = true
	}
	assert.True(t, names["fungible_store_events_total"])
	assert.True(t, names["fungible_supply"])
}

func TestCollector_ConcurrentMints(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector, err := New(registry)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, collector.Close())
	}()

	tf := fungible.NewTestFramework(t)
	collector.Attach(tf.Ledger, tf.Sink)

	tf.CreateHolder("issuer")
	class := tf.CreateClass("Coin", "issuer", fungible.Tracked())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < 200; j++ {
				_, err := tf.Ledger.Mint(class.MintRef, 1)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	tf.AssertSupply("Coin", 1600)
	assert.Equal(t, float64(1600), testutil.ToFloat64(collector.supply.WithLabelValues(classLabel(class.Metadata))))
	assert.Equal(t, float64(1600), testutil.ToFloat64(collector.minted.WithLabelValues(classLabel(class.Metadata))))
}

func TestUint128ToFloat(t *testing.T) {
	assert.Equal(t, float64(42), uint128ToFloat(uint128.From64(42)))
	assert.Equal(t, 18446744073709551616.0, uint128ToFloat(uint128.From64(1).Lsh(64)))
}
