package fungible

import (
	"github.com/cockroachdb/errors"

	"github.com/iotaledger/fungible/packages/supply"
)

var (
	// ErrInvalidArgument is returned if an argument of an operation is not acceptable.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPermissionDenied is returned if the caller is not allowed to perform an operation.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUngatedTransferDisallowed is returned if an owner initiated transfer touches a Store whose gate is closed.
	ErrUngatedTransferDisallowed = errors.New("ungated transfer disallowed")
	// ErrClassMismatch is returned if a capability, FungibleAsset or Store belongs to a different asset class.
	ErrClassMismatch = errors.New("asset class mismatch")
	// ErrInsufficientBalance is returned if more is withdrawn or extracted than is available.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrMaxSupplyExceeded is returned if a mint would push the tracked supply above its maximum.
	ErrMaxSupplyExceeded = supply.ErrMaxSupplyExceeded
	// ErrSupplyUnderflow is returned if a burn exceeds the tracked supply.
	ErrSupplyUnderflow = supply.ErrSupplyUnderflow
	// ErrNotFound is returned if an object does not carry the expected record.
	ErrNotFound = errors.New("not found")
)

var (
	// ErrZeroAmount is returned if an amount of zero is used where it is not allowed.
	ErrZeroAmount = errors.Wrap(ErrInvalidArgument, "amount must not be zero")
	// ErrNameTooLong is returned if the name of an asset class exceeds MaxNameLength.
	ErrNameTooLong = errors.Wrap(ErrInvalidArgument, "name too long")
	// ErrSymbolTooLong is returned if the symbol of an asset class exceeds MaxSymbolLength.
	ErrSymbolTooLong = errors.Wrap(ErrInvalidArgument, "symbol too long")
	// ErrNonZeroAmount is returned if a FungibleAsset that still carries value is destroyed.
	ErrNonZeroAmount = errors.Wrap(ErrInvalidArgument, "amount is not zero")
	// ErrAssetConsumed is returned if a FungibleAsset is used after it was handed to a consuming operation.
	ErrAssetConsumed = errors.Wrap(ErrInvalidArgument, "fungible asset was consumed already")
	// ErrAmountOverflow is returned if adding up amounts exceeds the range of a balance.
	ErrAmountOverflow = errors.Wrap(ErrInvalidArgument, "amount overflow")
	// ErrSupplyNotTracked is returned if a supply specific operation is invoked on an untracked asset class.
	ErrSupplyNotTracked = errors.Wrap(ErrInvalidArgument, "supply is not tracked")
	// ErrClassExists is returned if an object carries a Metadata record already.
	ErrClassExists = errors.Wrap(ErrInvalidArgument, "asset class exists already")
	// ErrStoreExists is returned if an object carries a Store record already.
	ErrStoreExists = errors.Wrap(ErrInvalidArgument, "store exists already")

	// ErrNotOwner is returned if the Signer does not own the Store it withdraws from.
	ErrNotOwner = errors.Wrap(ErrPermissionDenied, "signer does not own store")
	// ErrStoreNotEmpty is returned if a Store that still holds a balance is removed.
	ErrStoreNotEmpty = errors.Wrap(ErrPermissionDenied, "store is not empty")
)
