// Package flowdir defines core types, options, and sentinel errors
// for decoding flow-direction rasters.
package flowdir

import (
	"errors"
)

// Sentinel errors for flowdir operations.
var (
	// ErrEmptyGrid indicates input raster has no rows or no columns.
	ErrEmptyGrid = errors.New("flowdir: raster must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("flowdir: all rows must have the same length")
	// ErrMaskShape indicates the active mask does not match the raster shape.
	ErrMaskShape = errors.New("flowdir: active mask shape differs from raster")
	// ErrBadOffsets indicates an offset table with a zero or repeated offset.
	ErrBadOffsets = errors.New("flowdir: invalid direction offset table")
	// ErrFanIn indicates more than MaxUpstream pixels drain into one pixel.
	ErrFanIn = errors.New("flowdir: upstream fan-in exceeds limit")
	// ErrSelfLoop indicates a pixel draining into itself.
	ErrSelfLoop = errors.New("flowdir: pixel drains into itself")
	// ErrPixelRange indicates a pixel id outside [0, N).
	ErrPixelRange = errors.New("flowdir: pixel id out of range")
	// ErrBadDirection indicates an Encoding that decoded a code to a
	// Direction outside [0, 8).
	ErrBadDirection = errors.New("flowdir: decoded direction out of range")
)

// MaxUpstream is the most pixels that can drain into a single cell of a
// square grid (one per compass direction).
const MaxUpstream = 8

// Outlet marks "no downstream pixel" in Network.Downstream.
const Outlet = -1

// Direction is a compass direction index into an offset table.
// With DefaultOffsets the order is N, NE, E, SE, S, SW, W, NW.
type Direction int

// Compass directions in DefaultOffsets order.
const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Offsets maps each Direction to a (row offset, column offset) pair.
type Offsets [8][2]int

// DefaultOffsets is the D8 table with rows growing southwards.
var DefaultOffsets = Offsets{
	{-1, 0},  // N
	{-1, 1},  // NE
	{0, 1},   // E
	{1, 1},   // SE
	{1, 0},   // S
	{1, -1},  // SW
	{0, -1},  // W
	{-1, -1}, // NW
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	encoding Encoding
	offsets  Offsets
	pits     []int
}

func defaultBuildOptions() buildOptions {
	return buildOptions{
		encoding: D8Index{},
		offsets:  DefaultOffsets,
	}
}

// WithEncoding selects how raster codes are decoded. Panics on nil.
func WithEncoding(e Encoding) Option {
	if e == nil {
		panic("flowdir: WithEncoding(nil)")
	}
	return func(o *buildOptions) {
		o.encoding = e
	}
}

// WithOffsets replaces DefaultOffsets. The table is validated by Build.
func WithOffsets(t Offsets) Option {
	return func(o *buildOptions) {
		o.offsets = t
	}
}

// WithPits forces the listed pixel ids to behave as pits (no downstream).
// Lakes and reservoirs use this so that their inflow points terminate the
// upstream network.
func WithPits(ids ...int) Option {
	return func(o *buildOptions) {
		o.pits = append(o.pits, ids...)
	}
}
