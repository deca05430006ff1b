package glbridge

// Option configures a Shim during creation.
//
// Example:
//
//	// Defaults
//	shim, err := glbridge.New(backend)
//
//	// Substitute a fallback pipeline for unknown shader identifiers
//	shim, err := glbridge.New(backend, glbridge.WithDefaultPipeline("flat"))
type Option func(*options)

// options holds optional configuration for Shim creation.
type options struct {
	sweepInterval   int
	defaultPipeline string
}

// defaultSweepInterval is how many presented frames pass between orphan
// sweeps. Exact timing is not load-bearing; the interval only bounds how
// long a displaced native handle can linger before reclamation.
const defaultSweepInterval = 256

// defaultOptions returns the default shim options.
func defaultOptions() options {
	return options{
		sweepInterval: defaultSweepInterval,
	}
}

// WithSweepInterval sets how many presented frames pass between orphan
// sweeps. Values below 1 keep the default.
func WithSweepInterval(frames int) Option {
	return func(o *options) {
		if frames >= 1 {
			o.sweepInterval = frames
		}
	}
}

// WithDefaultPipeline sets a fallback shader identifier substituted when a
// draw's shader has no precompiled pipeline. Without a default, such draws
// are skipped.
func WithDefaultPipeline(identifier string) Option {
	return func(o *options) {
		o.defaultPipeline = identifier
	}
}
