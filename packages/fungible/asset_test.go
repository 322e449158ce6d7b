package fungible

import (
	"math"
	"runtime"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestFungibleAsset_ExtractMerge(t *testing.T) {
	tf := NewTestFramework(t)
	tf.CreateHolder("issuer")
	class := tf.CreateClass("Coin", "issuer", Tracked())

	asset, err := tf.Ledger.Mint(class.MintRef, 100)
	require.NoError(t, err)

	extracted, err := asset.Extract(30)
	require.NoError(t, err)
	assert.Equal(t, uint64(70), asset.Amount())
	assert.Equal(t, uint64(30), extracted.Amount())
	assert.Equal(t, asset.Metadata(), extracted.Metadata())

	_, err = asset.Extract(71)
	assert.True(t, errors.Is(err, ErrInsufficientBalance))
	assert.Equal(t, uint64(70), asset.Amount())

	require.NoError(t, asset.Merge(extracted))
	assert.Equal(t, uint64(100), asset.Amount())
	assert.True(t, extracted.IsConsumed())

	_, err = extracted.Extract(0)
	assert.True(t, errors.Is(err, ErrAssetConsumed))
	assert.True(t, errors.Is(asset.Merge(extracted), ErrAssetConsumed))
	assert.True(t, errors.Is(asset.Merge(asset), ErrInvalidArgument))

	require.NoError(t, tf.Ledger.Burn(class.BurnRef, asset))
	tf.AssertSupply("Coin", 0)
}

func TestFungibleAsset_ExtractMergeRoundTrip(t *testing.T) {
	metadata := MetadataFromAddress(randomAddress(t))

	for _, amount := range []uint64{0, 1, 2, 1000, math.MaxUint64} {
		for _, k := range []uint64{0, amount / 3, amount / 2, amount} {
			asset := newFungibleAsset(metadata, amount, nil)

			extracted, err := asset.Extract(k)
			require.NoError(t, err)
			assert.Equal(t, amount, asset.Amount()+extracted.Amount())

			require.NoError(t, asset.Merge(extracted))
			assert.Equal(t, amount, asset.Amount())
		}
	}
}

func TestFungibleAsset_MergeClassMismatch(t *testing.T) {
	first := newFungibleAsset(MetadataFromAddress(randomAddress(t)), 10, nil)
	second := newFungibleAsset(MetadataFromAddress(randomAddress(t)), 5, nil)

	assert.True(t, errors.Is(first.Merge(second), ErrClassMismatch))
	assert.Equal(t, uint64(10), first.Amount())
	assert.Equal(t, uint64(5), second.Amount())
	assert.False(t, second.IsConsumed())
}

func TestFungibleAsset_MergeOverflow(t *testing.T) {
	metadata := MetadataFromAddress(randomAddress(t))
	first := newFungibleAsset(metadata, math.MaxUint64, nil)
	second := newFungibleAsset(metadata, 1, nil)

	assert.True(t, errors.Is(first.Merge(second), ErrAmountOverflow))
	assert.Equal(t, uint64(math.MaxUint64), first.Amount())
	assert.Equal(t, uint64(1), second.Amount())
}

// DestroyZero rejects non-empty handles and leaves them usable.
func TestFungibleAsset_DestroyZero(t *testing.T) {
	metadata := MetadataFromAddress(randomAddress(t))

	asset := newFungibleAsset(metadata, 5, nil)
	err := asset.DestroyZero()
	assert.True(t, errors.Is(err, ErrNonZeroAmount))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, uint64(5), asset.Amount())
	assert.False(t, asset.IsConsumed())

	empty := newFungibleAsset(metadata, 0, nil)
	require.NoError(t, empty.DestroyZero())
	assert.True(t, empty.IsConsumed())
	assert.True(t, errors.Is(empty.DestroyZero(), ErrAssetConsumed))
}

func TestFungibleAsset_LeakDetection(t *testing.T) {
	tf := NewTestFramework(t, WithLeakDetection(true), WithLogger(logger.NewExampleLogger("fungible")))
	tf.CreateHolder("issuer")
	class := tf.CreateClass("Coin", "issuer", Tracked())

	leaked := atomic.NewBool(false)
	tf.Ledger.Events.Error.Hook(event.NewClosure(func(err error) {
		leaked.Store(true)
	}))

	consumed, err := tf.Ledger.Mint(class.MintRef, 10)
	require.NoError(t, err)
	require.NoError(t, tf.Ledger.Burn(class.BurnRef, consumed))

	func() {
		_, err := tf.Ledger.Mint(class.MintRef, 10)
		require.NoError(t, err)
	}()

	assert.Eventually(t, func() bool {
		runtime.GC()

		return leaked.Load()
	}, 5*time.Second, 10*time.Millisecond)
}
