package schedule

import "fmt"

// Accumulate returns, for every pixel, values[p] plus the sum of values over
// every pixel upstream of p. With values set to cell area it yields the
// upstream contributing area; with per-pixel inflow rates it yields the
// steady-state discharge of the network.
//
// Waves are visited in order, so each pixel is final before it is pushed
// into its downstream pixel.
// Complexity: Time O(N), Memory O(N).
func Accumulate(g Graph, o *Order, values []float64) ([]float64, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if len(values) != g.Len() || o.Len() != g.Len() {
		return nil, fmt.Errorf("%w: values %d, order %d, graph %d", ErrShape, len(values), o.Len(), g.Len())
	}
	acc := make([]float64, len(values))
	copy(acc, values)
	for _, wave := range o.waves {
		for _, p := range wave {
			if d := g.Downstream(p); d >= 0 {
				acc[d] += acc[p]
			}
		}
	}
	return acc, nil
}
