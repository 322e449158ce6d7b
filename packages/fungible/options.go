package fungible

import (
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/logger"
	"go.uber.org/zap"
)

// region WithStore ////////////////////////////////////////////////////////////////////////////////////////////////////

// WithStore is an Option for the Ledger that allows to configure which KVStore is supposed to be used to persist
// metadata and store records (the default option is to use a MapDB).
func WithStore(store kvstore.KVStore) Option {
	return func(options *options) {
		options.store = store
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region WithLogger ///////////////////////////////////////////////////////////////////////////////////////////////////

// WithLogger is an Option for the Ledger that configures the Logger that state transitions are reported to.
func WithLogger(log *logger.Logger) Option {
	return func(options *options) {
		options.log = log
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region WithLeakDetection ////////////////////////////////////////////////////////////////////////////////////////////

// WithLeakDetection is an Option for the Ledger that reports FungibleAssets which get garbage collected while they
// still carry value.
func WithLeakDetection(enabled bool) Option {
	return func(options *options) {
		options.leakDetection = enabled
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region WithSupplyShards /////////////////////////////////////////////////////////////////////////////////////////////

// WithSupplyShards is an Option for the Ledger that configures the number of shards of parallelizable supply counters
// (0 uses the default of the supply package).
func WithSupplyShards(shards int) Option {
	return func(options *options) {
		options.supplyShards = shards
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region WithParallelSupply ///////////////////////////////////////////////////////////////////////////////////////////

// WithParallelSupply is an Option for the Ledger that makes new asset classes start out with a parallelizable supply
// counter.
func WithParallelSupply(parallel bool) Option {
	return func(options *options) {
		options.parallelSupply = parallel
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Option ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Option represents the return type of optional parameters that can be handed into the constructor of the Ledger to
// configure its behavior.
type Option func(*options)

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region options //////////////////////////////////////////////////////////////////////////////////////////////////////

// options is a container for all configurable parameters of a Ledger.
type options struct {
	// store contains the KVStore that is used to persist data.
	store kvstore.KVStore
	// log contains the Logger of the Ledger.
	log *logger.Logger
	// leakDetection enables reporting of FungibleAssets that are dropped while carrying value.
	leakDetection bool
	// supplyShards contains the number of shards of parallelizable supply counters.
	supplyShards int
	// parallelSupply makes new tracked asset classes use a parallelizable counter.
	parallelSupply bool
}

// newOptions returns a new options object that corresponds to the handed in options and which is derived from the
// default options.
func newOptions(option ...Option) (new *options) {
	new = &options{}
	for _, opt := range option {
		opt(new)
	}

	if new.store == nil {
		new.store = mapdb.NewMapDB()
	}
	if new.log == nil {
		new.log = zap.NewNop().Sugar()
	}

	return new
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
