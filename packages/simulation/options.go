package simulation

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"go.uber.org/zap"
)

// region Option ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Option represents the return type of optional parameters that can be handed into the constructor of the Simulator.
type Option func(*options)

// WithClasses configures the number of asset classes.
func WithClasses(classes int) Option {
	return func(options *options) {
		options.classes = classes
	}
}

// WithHolders configures the number of holders.
func WithHolders(holders int) Option {
	return func(options *options) {
		options.holders = holders
	}
}

// WithTransfers configures the number of transfers.
func WithTransfers(transfers int) Option {
	return func(options *options) {
		options.transfers = transfers
	}
}

// WithWorkers configures the size of the worker pool.
func WithWorkers(workers int) Option {
	return func(options *options) {
		options.workers = workers
	}
}

// WithMaxSupply configures the cap of every asset class.
func WithMaxSupply(maxSupply uint64) Option {
	return func(options *options) {
		options.maxSupply = maxSupply
	}
}

// WithInitialBalance configures the amount that every holder receives per asset class.
func WithInitialBalance(initialBalance uint64) Option {
	return func(options *options) {
		options.initialBalance = initialBalance
	}
}

// WithConcurrentSupply makes the asset classes use the parallelizable supply counter.
func WithConcurrentSupply(concurrentSupply bool) Option {
	return func(options *options) {
		options.concurrentSupply = concurrentSupply
	}
}

// WithSeed configures the seed of the random transfers.
func WithSeed(seed int64) Option {
	return func(options *options) {
		options.seed = seed
	}
}

// WithLogger configures the Logger of the Simulator.
func WithLogger(log *logger.Logger) Option {
	return func(options *options) {
		options.log = log
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region options //////////////////////////////////////////////////////////////////////////////////////////////////////

type options struct {
	classes          int
	holders          int
	transfers        int
	workers          int
	maxSupply        uint64
	initialBalance   uint64
	concurrentSupply bool
	seed             int64
	log              *logger.Logger
}

func newOptions(option ...Option) (new *options) {
	new = &options{
		classes:        2,
		holders:        16,
		transfers:      10000,
		workers:        runtime.GOMAXPROCS(0),
		maxSupply:      1_000_000_000,
		initialBalance: 1000,
		log:            zap.NewNop().Sugar(),
	}

	for _, opt := range option {
		opt(new)
	}

	return new
}

// validate checks that the options describe a runnable simulation.
func (o *options) validate() (err error) {
	switch {
	case o.classes < 1:
		return errors.Errorf("at least one asset class is required (got %d): %w", o.classes, ErrInvalidOptions)
	case o.holders < 1:
		return errors.Errorf("at least one holder is required (got %d): %w", o.holders, ErrInvalidOptions)
	case o.workers < 1:
		return errors.Errorf("at least one worker is required (got %d): %w", o.workers, ErrInvalidOptions)
	case o.transfers < 0:
		return errors.Errorf("number of transfers must not be negative (got %d): %w", o.transfers, ErrInvalidOptions)
	}

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
