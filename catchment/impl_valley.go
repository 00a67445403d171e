// SPDX-License-Identifier: MIT
// Package: kinroute/catchment
//
// impl_valley.go - Valley(rows, cols): two hillslopes and a main channel.
//
// Contract:
//   - rows >= 1 and cols >= 1 (else ErrTooSmall).
//   - The centre column c = cols/2 drains south; its bottom cell leaves the
//     grid and is the outlet.
//   - Cells west of c drain south-east, cells east of c drain south-west;
//     on the bottom row they drain straight towards c instead.
//   - Fan-in never exceeds 5 (bottom centre cell).
//
// Complexity: Time O(rows*cols), Space O(rows*cols).

package catchment

import "fmt"

// Valley returns a Constructor for a V-shaped valley.
func Valley(rows, cols int) Constructor {
	return func(cfg genConfig) (*Raster, error) {
		if rows < minValleySide || cols < minValleySide {
			return nil, fmt.Errorf("%s: rows=%d cols=%d < min=%d: %w",
				kindValley, rows, cols, minValleySide, ErrTooSmall)
		}
		r := newGrid(rows, cols, cfg)
		c := cols / 2
		last := rows - 1
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				switch {
				case j == c:
					r.Codes[i][j] = codeS
				case j < c && i < last:
					r.Codes[i][j] = codeSE
				case j < c:
					r.Codes[i][j] = codeE
				case i < last:
					r.Codes[i][j] = codeSW
				default:
					r.Codes[i][j] = codeW
				}
			}
		}
		return r, nil
	}
}
