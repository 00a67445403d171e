// SPDX-License-Identifier: MIT
// Package: kinroute/catchment
//
// options.go - functional options for the catchment package.
//
// Option constructors validate and panic on meaningless inputs; generators
// themselves return errors. Later options override earlier ones.

package catchment

import "math/rand"

// Option customises a generator before it runs.
type Option func(*genConfig)

// genConfig aggregates all knobs. It is passed by value to generators.
type genConfig struct {
	// rng drives Random; nil means no randomness is available.
	rng *rand.Rand
	// mask, when set, deactivates cells for which it returns false.
	mask func(row, col int) bool
	// tilt is the elevation drop per row used by Random.
	tilt float64
}

func newGenConfig(opts ...Option) genConfig {
	cfg := genConfig{tilt: defaultTilt}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithSeed seeds a new deterministic source for Random.
func WithSeed(seed int64) Option {
	return func(c *genConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand provides an explicit source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("catchment: WithRand(nil)")
	}
	return func(c *genConfig) {
		c.rng = r
	}
}

// WithMask deactivates every cell for which keep returns false. Inactive
// cells get no pixel id; flow pointing into them leaves the network.
// Panics on nil.
func WithMask(keep func(row, col int) bool) Option {
	if keep == nil {
		panic("catchment: WithMask(nil)")
	}
	return func(c *genConfig) {
		c.mask = keep
	}
}

// WithTilt sets the southward elevation drop per row used by Random.
// Zero gives an untilted surface with many small basins; larger values give
// fewer, longer rivers. Panics if t is negative or NaN.
func WithTilt(t float64) Option {
	if !(t >= 0) {
		panic("catchment: WithTilt requires t >= 0")
	}
	return func(c *genConfig) {
		c.tilt = t
	}
}
