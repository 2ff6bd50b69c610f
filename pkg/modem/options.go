package modem

import "github.com/rs/zerolog"

type options struct {
	logger  zerolog.Logger
	locator FrameLocator
}

// Option customizes a Modulator or Demodulator.
type Option func(*options)

// WithLogger routes per-frame debug events to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithLocator replaces the fixed-offset frame locator of a Demodulator.
// Modulators ignore it.
func WithLocator(locator FrameLocator) Option {
	return func(o *options) { o.locator = locator }
}

func buildOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
