package flowdir

import (
	"fmt"
)

// Network holds the Downstream and Upstream lookups of a drainage forest.
// It is immutable once built; WithPits returns a new Network.
type Network struct {
	down  []int   // pixel -> downstream pixel, Outlet for none
	up    []int   // pixel*MaxUpstream + k -> k-th upstream pixel
	nup   []uint8 // pixel -> number of upstream pixels
	index *Index  // nil when built from an explicit downstream array
}

// Build decodes every active cell of r and links it to its downstream pixel.
//
// Behavior:
//  1. Validate the offset table (no zero or repeated offsets).
//  2. Compress the active mask into pixel ids.
//  3. For each active cell decode its code; a valid direction whose target
//     is in bounds and active becomes an edge, anything else an outlet.
//  4. Apply WithPits overrides.
//  5. Invert the edges into the upstream lookup, failing on fan-in overflow.
//
// Complexity: O(R×C) time, O(N) memory.
func Build(r *Raster, opts ...Option) (*Network, error) {
	o := defaultBuildOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateOffsets(o.offsets); err != nil {
		return nil, err
	}

	idx := r.Compress()
	n := idx.Len()
	down := make([]int, n)
	for id := 0; id < n; id++ {
		down[id] = Outlet
		row, col := idx.Cell(id)
		d, ok := o.encoding.Decode(r.codes[row][col])
		if !ok {
			continue // pit or undefined
		}
		if d < 0 || int(d) >= len(o.offsets) {
			return nil, fmt.Errorf("flowdir: cell (%d,%d) code %d decoded to %d: %w", row, col, r.codes[row][col], d, ErrBadDirection)
		}
		tr, tc := row+o.offsets[d][0], col+o.offsets[d][1]
		if !r.IsActive(tr, tc) {
			continue // drains off the model domain
		}
		down[id] = idx.ID(tr, tc)
	}
	for _, p := range o.pits {
		if p < 0 || p >= n {
			return nil, fmt.Errorf("flowdir: pit %d of %d pixels: %w", p, n, ErrPixelRange)
		}
		down[p] = Outlet
	}

	net, err := newNetwork(down)
	if err != nil {
		return nil, err
	}
	net.index = idx
	return net, nil
}

// FromDownstream builds a Network from an explicit downstream array where
// down[p] is the pixel p drains into, or any negative value for an outlet.
// The slice is copied.
// Complexity: O(N).
func FromDownstream(down []int) (*Network, error) {
	cp := make([]int, len(down))
	for p, d := range down {
		if d < 0 {
			cp[p] = Outlet
			continue
		}
		if d >= len(down) {
			return nil, fmt.Errorf("flowdir: pixel %d drains to %d of %d pixels: %w", p, d, len(down), ErrPixelRange)
		}
		cp[p] = d
	}
	return newNetwork(cp)
}

// newNetwork inverts down into the fixed-stride upstream lookup.
func newNetwork(down []int) (*Network, error) {
	n := len(down)
	net := &Network{
		down: down,
		up:   make([]int, n*MaxUpstream),
		nup:  make([]uint8, n),
	}
	for p, d := range down {
		if d == Outlet {
			continue
		}
		if d == p {
			return nil, fmt.Errorf("flowdir: pixel %d: %w", p, ErrSelfLoop)
		}
		k := int(net.nup[d])
		if k == MaxUpstream {
			return nil, fmt.Errorf("flowdir: pixel %d receives more than %d upstream pixels: %w", d, MaxUpstream, ErrFanIn)
		}
		net.up[d*MaxUpstream+k] = p
		net.nup[d]++
	}
	return net, nil
}

func validateOffsets(t Offsets) error {
	seen := make(map[[2]int]struct{}, len(t))
	for d, off := range t {
		if off == [2]int{0, 0} {
			return fmt.Errorf("flowdir: direction %d has zero offset: %w", d, ErrBadOffsets)
		}
		if _, dup := seen[off]; dup {
			return fmt.Errorf("flowdir: direction %d repeats offset %v: %w", d, off, ErrBadOffsets)
		}
		seen[off] = struct{}{}
	}
	return nil
}

// Len returns the number of pixels.
func (n *Network) Len() int {
	return len(n.down)
}

// Downstream returns the pixel p drains into, or Outlet.
func (n *Network) Downstream(p int) int {
	return n.down[p]
}

// NumUpstream returns how many pixels drain directly into p.
func (n *Network) NumUpstream(p int) int {
	return int(n.nup[p])
}

// Upstream returns the pixels draining directly into p. The returned slice
// aliases internal storage and must not be modified.
func (n *Network) Upstream(p int) []int {
	base := p * MaxUpstream
	return n.up[base : base+int(n.nup[p]) : base+int(n.nup[p])]
}

// Index returns the raster id compression the network was built from,
// or nil for networks built with FromDownstream.
func (n *Network) Index() *Index {
	return n.index
}

// DownstreamLookup returns a copy of the downstream array.
func (n *Network) DownstreamLookup() []int {
	cp := make([]int, len(n.down))
	copy(cp, n.down)
	return cp
}

// Outlets returns every pixel without a downstream pixel, ascending.
func (n *Network) Outlets() []int {
	var out []int
	for p, d := range n.down {
		if d == Outlet {
			out = append(out, p)
		}
	}
	return out
}

// Headwaters returns every pixel without upstream pixels, ascending.
func (n *Network) Headwaters() []int {
	var hw []int
	for p, k := range n.nup {
		if k == 0 {
			hw = append(hw, p)
		}
	}
	return hw
}

// WithPits returns a copy of n in which the listed pixels drain nowhere.
// The receiver is left untouched.
// Complexity: O(N).
func (n *Network) WithPits(ids ...int) (*Network, error) {
	down := n.DownstreamLookup()
	for _, p := range ids {
		if p < 0 || p >= len(down) {
			return nil, fmt.Errorf("flowdir: pit %d of %d pixels: %w", p, len(down), ErrPixelRange)
		}
		down[p] = Outlet
	}
	net, err := newNetwork(down)
	if err != nil {
		return nil, err
	}
	net.index = n.index
	return net, nil
}

// Catchments labels every pixel with the outlet it eventually drains to.
// Pixels caught in a cycle, or draining into one, are labelled -1.
// Complexity: O(N) amortized; each pixel is resolved once.
func (n *Network) Catchments() []int {
	const (
		unknown  = -2
		visiting = -3
	)
	label := make([]int, len(n.down))
	for p := range label {
		label[p] = unknown
	}
	path := make([]int, 0, 64)
	for start := range n.down {
		if label[start] != unknown {
			continue
		}
		// 1) Walk downstream until a resolved pixel, an outlet or a revisit.
		path = path[:0]
		p, result := start, -1
		for {
			if label[p] >= 0 || label[p] == -1 {
				result = label[p]
				break
			}
			if label[p] == visiting {
				result = -1 // closed a cycle
				break
			}
			label[p] = visiting
			path = append(path, p)
			if n.down[p] == Outlet {
				result = p
				break
			}
			p = n.down[p]
		}
		// 2) Everything on the walked path shares the result.
		for _, q := range path {
			label[q] = result
		}
	}
	return label
}
