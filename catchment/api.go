// SPDX-License-Identifier: MIT
// Package: kinroute/catchment
//
// api.go - public entry points and the Raster result type.
//
// Generators are declared as Constructor values (Chain, Valley, Comb, Random)
// and run through Generate, which resolves options once and wraps errors
// with the generator name.

package catchment

import (
	"fmt"

	"github.com/katalvlaran/kinroute/config"
	"github.com/katalvlaran/kinroute/flowdir"
)

// Constructor produces a raster from a resolved configuration.
type Constructor func(cfg genConfig) (*Raster, error)

// Raster is a generated grid of flowdir.D8Index codes with its activity mask.
type Raster struct {
	Codes  [][]int
	Active [][]bool
}

// Generate resolves opts and runs c.
func Generate(c Constructor, opts ...Option) (*Raster, error) {
	r, err := c(newGenConfig(opts...))
	if err != nil {
		return nil, fmt.Errorf("Generate: %w", err)
	}
	return r, nil
}

// Rows returns the grid height.
func (r *Raster) Rows() int {
	return len(r.Codes)
}

// Cols returns the grid width.
func (r *Raster) Cols() int {
	if len(r.Codes) == 0 {
		return 0
	}
	return len(r.Codes[0])
}

// Network decodes r into a drainage network. Extra flowdir options (for
// instance flowdir.WithPits) are applied after the D8 encoding.
func (r *Raster) Network(opts ...flowdir.Option) (*flowdir.Network, error) {
	fr, err := flowdir.NewRaster(r.Codes, r.Active)
	if err != nil {
		return nil, err
	}
	all := append([]flowdir.Option{flowdir.WithEncoding(flowdir.D8Index{})}, opts...)
	return flowdir.Build(fr, all...)
}

// FromConfig generates the catchment named by c.Kind. Chain uses c.Cols as
// its length; Comb uses c.Cols as the number of teeth and c.Rows as their
// length. c.Seed seeds Random and c.Pits is not applied here.
func FromConfig(c config.Catchment) (*Raster, error) {
	switch c.Kind {
	case kindChain:
		return Generate(Chain(c.Cols))
	case kindValley:
		return Generate(Valley(c.Rows, c.Cols))
	case kindComb:
		return Generate(Comb(c.Cols, c.Rows))
	case kindRandom:
		return Generate(Random(c.Rows, c.Cols), WithSeed(c.Seed))
	default:
		return nil, fmt.Errorf("FromConfig: %q: %w", c.Kind, ErrUnknownKind)
	}
}

// newGrid allocates a rows x cols raster with every cell a pit and, unless
// masked out, active.
func newGrid(rows, cols int, cfg genConfig) *Raster {
	r := &Raster{
		Codes:  make([][]int, rows),
		Active: make([][]bool, rows),
	}
	for i := 0; i < rows; i++ {
		r.Codes[i] = make([]int, cols)
		r.Active[i] = make([]bool, cols)
		for j := 0; j < cols; j++ {
			r.Codes[i][j] = flowdir.D8Pit
			r.Active[i][j] = cfg.mask == nil || cfg.mask(i, j)
		}
	}
	return r
}
