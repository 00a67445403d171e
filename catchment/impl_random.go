// SPDX-License-Identifier: MIT
// Package: kinroute/catchment
//
// impl_random.go - Random(rows, cols): steepest descent on a noisy surface.
//
// Contract:
//   - rows >= 1 and cols >= 1 (else ErrTooSmall); a source is required
//     (else ErrNeedRand).
//   - Elevation z = tilt*(rows-1-row) + U[0,1). Every active cell points at
//     its lowest active neighbour that is strictly lower than itself; cells
//     without one are pits and become outlets.
//   - Flow always descends, so the result is acyclic, and a cell has at most
//     eight neighbours, so fan-in stays within the flowdir limit.
//
// Determinism:
//   - The same seed, size and options give the same raster. Elevations are
//     drawn row-major before any direction is chosen.
//
// Complexity: Time O(8*rows*cols), Space O(rows*cols).

package catchment

import (
	"fmt"

	"github.com/katalvlaran/kinroute/flowdir"
)

// Random returns a Constructor for a random drainage forest.
func Random(rows, cols int) Constructor {
	return func(cfg genConfig) (*Raster, error) {
		if rows < minRandomSide || cols < minRandomSide {
			return nil, fmt.Errorf("%s: rows=%d cols=%d < min=%d: %w",
				kindRandom, rows, cols, minRandomSide, ErrTooSmall)
		}
		if cfg.rng == nil {
			return nil, fmt.Errorf("%s: %w", kindRandom, ErrNeedRand)
		}

		z := make([][]float64, rows)
		for i := range z {
			z[i] = make([]float64, cols)
			for j := range z[i] {
				z[i][j] = cfg.tilt*float64(rows-1-i) + cfg.rng.Float64()
			}
		}

		r := newGrid(rows, cols, cfg)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				if !r.Active[i][j] {
					continue
				}
				best, lowest := flowdir.D8Pit, z[i][j]
				for d, off := range flowdir.DefaultOffsets {
					ni, nj := i+off[0], j+off[1]
					if ni < 0 || ni >= rows || nj < 0 || nj >= cols || !r.Active[ni][nj] {
						continue
					}
					if z[ni][nj] < lowest {
						best, lowest = d, z[ni][nj]
					}
				}
				r.Codes[i][j] = best
			}
		}
		return r, nil
	}
}
