package schedule

import (
	"errors"
)

var (
	// ErrGraphNil is returned when a nil Graph is passed to Build,
	// Validate, FindCycle or Accumulate.
	ErrGraphNil = errors.New("schedule: graph is nil")

	// ErrCycleDetected indicates that the drainage network contains a loop,
	// so not every pixel could be scheduled.
	ErrCycleDetected = errors.New("schedule: cycle detected")

	// ErrInvalidOrder indicates an Order that breaks the wave invariant.
	ErrInvalidOrder = errors.New("schedule: invalid routing order")

	// ErrShape indicates a per-pixel slice whose length differs from Len().
	ErrShape = errors.New("schedule: slice length does not match pixel count")
)

// Graph is the read-only view of a drainage network needed for scheduling.
// flowdir.Network satisfies it.
type Graph interface {
	// Len returns the number of pixels; ids are [0, Len()).
	Len() int
	// Downstream returns the pixel p drains into, or a negative value.
	Downstream(p int) int
	// NumUpstream returns how many pixels drain directly into p.
	NumUpstream(p int) int
}

// Option configures Build.
type Option func(*options)

type options struct {
	sorted bool
}

func defaultOptions() options {
	return options{sorted: false}
}

// WithSortedWaves sorts the pixels of every wave by id.
func WithSortedWaves() Option {
	return func(o *options) {
		o.sorted = true
	}
}
