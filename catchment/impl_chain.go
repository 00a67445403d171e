// SPDX-License-Identifier: MIT
// Package: kinroute/catchment
//
// impl_chain.go - Chain(n): a single river reach.
//
// Contract:
//   - n >= 1 (else ErrTooSmall).
//   - One row; every cell drains east; the last cell leaves the grid and is
//     the only outlet. Pixel ids run 0..n-1 from upstream to downstream.
//
// Complexity: Time O(n), Space O(n).

package catchment

import "fmt"

// Chain returns a Constructor for an n-pixel reach draining east.
func Chain(n int) Constructor {
	return func(cfg genConfig) (*Raster, error) {
		if n < minChainLen {
			return nil, fmt.Errorf("%s: n=%d < min=%d: %w", kindChain, n, minChainLen, ErrTooSmall)
		}
		r := newGrid(1, n, cfg)
		for j := 0; j < n; j++ {
			r.Codes[0][j] = codeE
		}
		return r, nil
	}
}
