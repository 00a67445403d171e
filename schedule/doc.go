// Package schedule partitions the pixels of a drainage network into ordered
// "waves" that can be routed one after another, with every pixel of a wave
// solved independently of the others.
//
// What:
//
//   - Build: level-order (Kahn) topological layering. Wave 0 holds every
//     headwater pixel; a pixel joins wave i as soon as all of its upstream
//     pixels have been placed in waves 0..i-1.
//   - Order.Validate: re-checks the layering against a network (coverage,
//     uniqueness, upstream pixels strictly earlier).
//   - FindCycle: returns one closed drainage loop, used to explain a failed Build.
//   - Accumulate: sums a per-pixel quantity over each pixel and everything
//     upstream of it (upstream area, steady-state discharge).
//
// Why:
//
//   - A pixel's discharge depends on the already-solved discharge of its
//     upstream pixels. Within a wave no pixel is upstream of another, so a
//     wave is a data-parallel batch and the wave boundary is the only barrier.
//
// Determinism:
//
//   - Wave membership is the contract; order inside a wave is not. Use
//     WithSortedWaves when bit-identical floating point sums are required
//     regardless of how a wave is split across workers.
//
// Complexity:
//
//   - Build:      Time O(N), Memory O(N)
//   - Validate:   Time O(N), Memory O(N)
//   - FindCycle:  Time O(N), Memory O(N)
//   - Accumulate: Time O(N), Memory O(N)
//
// Errors:
//
//   - ErrGraphNil       network is nil
//   - ErrCycleDetected  some pixels can never become ready
//   - ErrInvalidOrder   an Order does not satisfy the layering invariant
//   - ErrShape          a value slice does not match the network size
package schedule
