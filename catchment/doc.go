// SPDX-License-Identifier: MIT

// Package catchment generates deterministic flow-direction rasters for tests,
// benchmarks and demonstration runs.
//
// What:
//
//   - Chain(n):           one row of n pixels draining east to a single outlet.
//   - Valley(rows, cols): both hillslopes drain diagonally into the centre
//     column, which drains south and leaves the grid at the bottom row.
//   - Comb(teeth, length): parallel tributaries joining a trunk that runs
//     east along the bottom row; cells between tributaries are inactive.
//   - Random(rows, cols): every cell points at its lowest strictly lower
//     neighbour on a tilted random surface; cells without one are pits.
//
// All generators emit flowdir.D8Index codes with the default offset table
// plus an activity mask, ready for flowdir.NewRaster. Every output is a
// forest: no generator can produce a loop or exceed the fan-in limit.
//
// Determinism:
//
//   - Chain, Valley and Comb use no randomness.
//   - Random requires WithSeed or WithRand and returns ErrNeedRand otherwise.
//
// Errors:
//
//   - ErrTooSmall  a size parameter is below its minimum
//   - ErrNeedRand  a stochastic generator was called without a source
//   - ErrUnknownKind  FromConfig got an unsupported kind
package catchment
