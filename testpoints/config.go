package testpoints

import "math/rand"

// config holds the configurable parameters for point generation,
// mirroring builder.builderConfig's shape (builder/config.go): an RNG
// source plus generation parameters, defaulted then overridden by
// Options applied in order.
type config struct {
	rng *rand.Rand
	lo  float64
	hi  float64
}

// Option customizes point generation by mutating a config before
// generation begins (builder.BuilderOption's functional-options shape,
// see builder/options.go).
type Option func(*config)

// WithSeed creates a new deterministic *rand.Rand from seed, following
// builder.WithSeed's convention for reproducible stochastic generators.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRange sets the per-axis value range [lo, hi). Panics if hi <= lo,
// matching builder's option-constructor fail-fast convention
// (builder.WithIDScheme(nil) panics rather than silently no-op-ing on a
// meaningless argument).
func WithRange(lo, hi float64) Option {
	if hi <= lo {
		panic("testpoints: WithRange requires hi > lo")
	}

	return func(c *config) { c.lo, c.hi = lo, hi }
}

func newConfig(opts ...Option) *config {
	cfg := &config{rng: rand.New(rand.NewSource(1)), lo: 0, hi: 1}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}
