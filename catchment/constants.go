// SPDX-License-Identifier: MIT
// Package: kinroute/catchment
//
// constants.go - generator names, minima and defaults.

package catchment

import "github.com/katalvlaran/kinroute/flowdir"

// Generator names, used in error context and by FromConfig.
const (
	kindChain  = "chain"
	kindValley = "valley"
	kindComb   = "comb"
	kindRandom = "random"
)

const (
	minChainLen   = 1
	minValleySide = 1
	minCombTeeth  = 1
	minCombLength = 1
	minRandomSide = 1

	// defaultTilt keeps Random surfaces draining mostly south.
	defaultTilt = 0.5
)

// D8 codes in the default offset table order.
const (
	codeE  = int(flowdir.East)
	codeSE = int(flowdir.SouthEast)
	codeS  = int(flowdir.South)
	codeSW = int(flowdir.SouthWest)
	codeW  = int(flowdir.West)
)
