// Package kinroute routes water through a river network laid out on a grid,
// using the kinematic-wave approximation of channel flow.
//
// What is kinroute?
//
//	An in-memory routing kernel that brings together:
//		• Flow-direction decoding: D8, PCRaster LDD and ESRI codes to a drainage forest
//		• Scheduling: level-order waves, cycle witnesses, upstream accumulation
//		• Solving: per-pixel Newton-Raphson, one wave at a time, pixels in parallel
//		• Driving: discharge state, sub-stepping, validation, coupling, metrics
//
// Packages:
//
//	flowdir/   rasters, encodings, Downstream/Upstream lookups
//	schedule/  routing order (waves), FindCycle, Accumulate
//	kinematic/ channel parameters, SolvePixel, wave-parallel Solver
//	routing/   Driver, inflow sources, couplers, reservoirs, prometheus metrics
//	config/    YAML + environment configuration
//	catchment/ synthetic flow-direction rasters for tests and demos
//	cmd/kinroute command line front end
//
// Quick ASCII example (D8 directions of a 3x3 valley):
//
//	↘ ↓ ↙
//	↘ ↓ ↙
//	→ ↓ ←
//
// Every cell drains into the centre column, which leaves the grid at the
// bottom: nine pixels, one outlet, three waves.
//
//	go get github.com/katalvlaran/kinroute
package kinroute
