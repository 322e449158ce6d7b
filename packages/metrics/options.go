package metrics

import (
	"time"
)

// region Option ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Option represents the return type of optional parameters that can be handed into the constructor of the Collector.
type Option func(*options)

// WithRateInterval is an Option that configures the window of the transfer rate (default is one second).
func WithRateInterval(interval time.Duration) Option {
	return func(options *options) {
		options.rateInterval = interval
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region options //////////////////////////////////////////////////////////////////////////////////////////////////////

type options struct {
	rateInterval time.Duration
}

func newOptions(option ...Option) (new *options) {
	new = &options{
		rateInterval: time.Second,
	}

	for _, opt := range option {
		opt(new)
	}

	return new
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
