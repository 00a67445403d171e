// Package flowdir turns a flow-direction raster into an explicit drainage
// network over the active ("land") pixels of the grid.
//
// What:
//
//   - Raster wraps a rectangular [][]int of direction codes plus a [][]bool
//     active mask of the same shape.
//   - Index compresses the mask into stable pixel ids in [0, N), row-major.
//   - Build decodes every active cell through an Encoding and an offset table,
//     producing a Network: one downstream pixel per pixel (or -1 for an outlet)
//     and up to eight upstream pixels per pixel.
//   - FromDownstream builds the same lookups from an explicit downstream array,
//     which is how structure coupling rewrites a network.
//
// Why:
//
//   - Channel routing must visit every pixel after all of its upstream pixels;
//     the Network is the input of schedule.Build.
//   - A pixel whose target is a pit, off-grid or inactive is an outlet, so a
//     clipped catchment never drains into cells the model does not own.
//
// Encodings:
//
//   - D8Index: codes 0..7 index the offset table directly; anything else is a pit.
//   - LDD:     PCRaster local drain direction (numeric keypad, 5 = pit).
//   - ESRI:    powers of two 1..128 clockwise from east; anything else is a pit.
//
// Complexity:
//
//   - NewRaster: O(R×C) time and memory (deep copy).
//   - Build:     O(R×C) time, O(N) memory.
//   - FromDownstream, WithPits: O(N).
//   - Catchments: O(N) amortized (path memo).
//
// Errors:
//
//   - ErrEmptyGrid:      raster has no rows or no columns.
//   - ErrNonRectangular: rows of differing length.
//   - ErrMaskShape:      active mask does not match the raster shape.
//   - ErrBadOffsets:     offset table contains a zero or duplicate offset.
//   - ErrFanIn:          more than MaxUpstream pixels drain into one pixel.
//   - ErrSelfLoop:       a pixel drains into itself.
//   - ErrPixelRange:     a pixel id outside [0, N).
//   - ErrBadDirection:   a custom Encoding decoded a code outside [0, 8).
package flowdir
