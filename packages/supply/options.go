package supply

import (
	"runtime"
)

// region WithShards ///////////////////////////////////////////////////////////////////////////////////////////////////

// WithShards is an Option for parallelizable Counters that configures the number of independently locked shards.
func WithShards(shards int) Option {
	return func(options *options) {
		options.shards = shards
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Option ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Option represents the return type of optional parameters that can be handed into the constructor of a Counter.
type Option func(*options)

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region options //////////////////////////////////////////////////////////////////////////////////////////////////////

// options is a container for all configurable parameters of a Counter.
type options struct {
	// shards contains the number of shards of a parallelizable Counter.
	shards int
}

// newOptions returns a new options object that corresponds to the handed in options and which is derived from the
// default options.
func newOptions(option ...Option) (new *options) {
	new = &options{
		shards: runtime.GOMAXPROCS(0),
	}
	for _, opt := range option {
		opt(new)
	}

	if new.shards < 1 {
		new.shards = 1
	}

	return new
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
