package fungible

import (
	"math"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/stringify"
)

// region FungibleAsset ////////////////////////////////////////////////////////////////////////////////////////////////

// FungibleAsset is an amount of one asset class that is in transit between Stores. It is produced by withdrawals and
// mints and has to end up deposited, merged, burned or (if it is empty) explicitly destroyed. A FungibleAsset can not
// be persisted and must not be used after it was handed to a consuming operation.
type FungibleAsset struct {
	metadata Metadata
	amount   uint64
	consumed bool

	// leakReporter is set if leak detection is enabled and gets inherited by extracted assets.
	leakReporter func(metadata Metadata, amount uint64)
}

// newFungibleAsset creates a FungibleAsset and registers it for leak detection if a reporter is given.
func newFungibleAsset(metadata Metadata, amount uint64, leakReporter func(metadata Metadata, amount uint64)) (asset *FungibleAsset) {
	asset = &FungibleAsset{
		metadata:     metadata,
		amount:       amount,
		leakReporter: leakReporter,
	}

	if leakReporter != nil {
		runtime.SetFinalizer(asset, func(asset *FungibleAsset) {
			if !asset.consumed && asset.amount != 0 {
				asset.leakReporter(asset.metadata, asset.amount)
			}
		})
	}

	return asset
}

// Metadata returns the asset class of the FungibleAsset.
func (f *FungibleAsset) Metadata() Metadata {
	return f.metadata
}

// Amount returns the amount that the FungibleAsset carries (0 once it was consumed).
func (f *FungibleAsset) Amount() uint64 {
	return f.amount
}

// IsConsumed returns true if the FungibleAsset was handed to a consuming operation.
func (f *FungibleAsset) IsConsumed() bool {
	return f.consumed
}

// Extract splits the given amount off into a new FungibleAsset.
func (f *FungibleAsset) Extract(amount uint64) (extracted *FungibleAsset, err error) {
	if f.consumed {
		return nil, errors.Errorf("failed to extract from %s: %w", f, ErrAssetConsumed)
	}
	if amount > f.amount {
		return nil, errors.Errorf("failed to extract %d from %s: %w", amount, f, ErrInsufficientBalance)
	}

	f.amount -= amount

	return newFungibleAsset(f.metadata, amount, f.leakReporter), nil
}

// Merge adds the amount of the other FungibleAsset to this one and consumes the other one. Both need to belong to the
// same asset class.
func (f *FungibleAsset) Merge(other *FungibleAsset) (err error) {
	if f == other {
		return errors.Errorf("failed to merge %s into itself: %w", f, ErrInvalidArgument)
	}
	if f.consumed || other.consumed {
		return errors.Errorf("failed to merge %s into %s: %w", other, f, ErrAssetConsumed)
	}
	if f.metadata != other.metadata {
		return errors.Errorf("failed to merge %s into %s: %w", other, f, ErrClassMismatch)
	}
	if other.amount > math.MaxUint64-f.amount {
		return errors.Errorf("failed to merge %s into %s: %w", other, f, ErrAmountOverflow)
	}

	f.amount += other.amount
	other.consume()

	return nil
}

// DestroyZero consumes an empty FungibleAsset.
func (f *FungibleAsset) DestroyZero() (err error) {
	if f.consumed {
		return errors.Errorf("failed to destroy %s: %w", f, ErrAssetConsumed)
	}
	if f.amount != 0 {
		return errors.Errorf("failed to destroy %s: %w", f, ErrNonZeroAmount)
	}

	f.consume()

	return nil
}

// String returns a human-readable version of the FungibleAsset.
func (f *FungibleAsset) String() string {
	return stringify.Struct("FungibleAsset",
		stringify.StructField("metadata", f.metadata),
		stringify.StructField("amount", f.amount),
		stringify.StructField("consumed", f.consumed),
	)
}

// consume marks the FungibleAsset as used up.
func (f *FungibleAsset) consume() {
	f.amount = 0
	f.consumed = true
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
