// SPDX-License-Identifier: MIT
// Package: kinroute/catchment
//
// impl_comb.go - Comb(teeth, length): parallel tributaries on a trunk.
//
// Contract:
//   - teeth >= 1 and length >= 1 (else ErrTooSmall).
//   - Grid of (length+1) rows and 2*teeth columns. The bottom row is the
//     trunk and drains east; its last cell is the outlet.
//   - Even columns above the trunk are tributaries draining south; odd
//     columns above the trunk are inactive.
//   - Each trunk cell receives at most two upstream pixels, so the network
//     has length+2*teeth waves and teeth-wide parallelism in its upper part.
//
// Complexity: Time O(teeth*length), Space O(teeth*length).

package catchment

import "fmt"

// Comb returns a Constructor for a trunk with evenly spaced tributaries.
func Comb(teeth, length int) Constructor {
	return func(cfg genConfig) (*Raster, error) {
		if teeth < minCombTeeth || length < minCombLength {
			return nil, fmt.Errorf("%s: teeth=%d length=%d, min teeth=%d length=%d: %w",
				kindComb, teeth, length, minCombTeeth, minCombLength, ErrTooSmall)
		}
		rows, cols := length+1, 2*teeth
		r := newGrid(rows, cols, cfg)
		for i := 0; i < length; i++ {
			for j := 0; j < cols; j++ {
				if j%2 == 0 {
					r.Codes[i][j] = codeS
				} else {
					r.Active[i][j] = false
				}
			}
		}
		for j := 0; j < cols; j++ {
			r.Codes[length][j] = codeE
		}
		return r, nil
	}
}
