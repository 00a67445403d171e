package schedule

import (
	"fmt"
	"slices"
)

// Order is an immutable partition of all pixels into waves W_0..W_k.
type Order struct {
	waves  [][]int
	waveOf []int
}

// Build computes the level-order routing schedule of g.
//
// Behavior:
//  1. Count pending upstream pixels per pixel; pixels with none form the
//     first ready set.
//  2. Record the ready set as the next wave. For each member, decrement the
//     pending count of its downstream pixel; pixels reaching zero join the
//     next ready set.
//  3. Repeat until the ready set is empty.
//  4. If fewer than Len() pixels were scheduled, report ErrCycleDetected with
//     one witness loop. A partial order is never returned.
//
// Complexity: Time O(N), Memory O(N).
func Build(g Graph, opts ...Option) (*Order, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	n := g.Len()
	pending := make([]int, n)
	waveOf := make([]int, n)
	ready := make([]int, 0)
	for p := 0; p < n; p++ {
		pending[p] = g.NumUpstream(p)
		waveOf[p] = -1
		if pending[p] == 0 {
			ready = append(ready, p)
		}
	}

	var waves [][]int
	scheduled := 0
	for len(ready) > 0 {
		if o.sorted {
			slices.Sort(ready)
		}
		level := len(waves)
		waves = append(waves, ready)
		scheduled += len(ready)

		next := make([]int, 0)
		for _, p := range ready {
			waveOf[p] = level
			d := g.Downstream(p)
			if d < 0 {
				continue
			}
			pending[d]--
			if pending[d] == 0 {
				next = append(next, d)
			}
		}
		ready = next
	}

	if scheduled < n {
		return nil, fmt.Errorf("%w: %d of %d pixels unscheduled, loop %v",
			ErrCycleDetected, n-scheduled, n, FindCycle(g))
	}

	return &Order{waves: waves, waveOf: waveOf}, nil
}

// Waves returns the waves in routing order. The slices alias internal
// storage and must not be modified.
func (o *Order) Waves() [][]int {
	return o.waves
}

// NumWaves returns the number of waves.
func (o *Order) NumWaves() int {
	return len(o.waves)
}

// Len returns the number of scheduled pixels.
func (o *Order) Len() int {
	return len(o.waveOf)
}

// WaveOf returns the wave index of pixel p.
func (o *Order) WaveOf(p int) int {
	return o.waveOf[p]
}

// Widest returns the size of the largest wave, the upper bound on useful
// parallelism for this network.
func (o *Order) Widest() int {
	w := 0
	for _, wave := range o.waves {
		if len(wave) > w {
			w = len(wave)
		}
	}
	return w
}

// Validate checks that o is a complete layering of g: every pixel appears in
// exactly one wave, the wave index table agrees with the waves, and every
// downstream pixel sits in a strictly later wave than its upstream pixel.
// Returns an error wrapping ErrInvalidOrder on the first violation.
// Complexity: O(N).
func (o *Order) Validate(g Graph) error {
	if g == nil {
		return ErrGraphNil
	}
	n := g.Len()
	if len(o.waveOf) != n {
		return fmt.Errorf("%w: order covers %d pixels, graph has %d", ErrInvalidOrder, len(o.waveOf), n)
	}
	seen := make([]bool, n)
	count := 0
	for i, wave := range o.waves {
		for _, p := range wave {
			if p < 0 || p >= n {
				return fmt.Errorf("%w: wave %d holds unknown pixel %d", ErrInvalidOrder, i, p)
			}
			if seen[p] {
				return fmt.Errorf("%w: pixel %d appears twice", ErrInvalidOrder, p)
			}
			if o.waveOf[p] != i {
				return fmt.Errorf("%w: pixel %d in wave %d indexed as %d", ErrInvalidOrder, p, i, o.waveOf[p])
			}
			seen[p] = true
			count++
		}
	}
	if count != n {
		return fmt.Errorf("%w: %d of %d pixels scheduled", ErrInvalidOrder, count, n)
	}
	earliest := make([]int, n) // 1 + deepest upstream wave
	for p := 0; p < n; p++ {
		d := g.Downstream(p)
		if d < 0 {
			continue
		}
		if o.waveOf[d] <= o.waveOf[p] {
			return fmt.Errorf("%w: pixel %d (wave %d) drains into %d (wave %d)",
				ErrInvalidOrder, p, o.waveOf[p], d, o.waveOf[d])
		}
		if o.waveOf[p]+1 > earliest[d] {
			earliest[d] = o.waveOf[p] + 1
		}
	}
	for p := 0; p < n; p++ {
		if o.waveOf[p] != earliest[p] {
			return fmt.Errorf("%w: pixel %d in wave %d, earliest admissible is %d",
				ErrInvalidOrder, p, o.waveOf[p], earliest[p])
		}
	}
	return nil
}
