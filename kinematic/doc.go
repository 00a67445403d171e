// Package kinematic solves the kinematic-wave approximation of channel flow on
// a scheduled drainage network.
//
// What:
//
//   - Parameters: per-pixel channel coefficients (alpha, beta, dx) together with
//     the products the solver needs every sub-step (alpha*dx/dt,
//     beta*alpha*dx/dt, dx*lateral coefficient).
//   - SolvePixel: Newton-Raphson on Q + a*Q^beta = C for one pixel.
//   - Solver: walks the waves of a schedule.Order, solving every pixel of a
//     wave in parallel and waiting for the wave to finish before the next.
//
// Why:
//
//   - The implicit backward-difference scheme of the kinematic wave
//     (Chow, Maidment and Mays, 1988) is unconditionally stable, but it turns
//     every pixel into a small nonlinear equation whose right-hand side holds
//     the freshly solved discharge of the upstream pixels.
//
// Per pixel p with upstream set U(p), previous discharge q and lateral inflow l:
//
//	C = sum(q[u] for u in U(p)) + AlphaDxDt[p]*q[p]^Beta[p] + DxLateral[p]*l[p]
//	Q + AlphaDxDt[p]*Q^Beta[p] = C
//
// The left side is strictly increasing in Q for Q >= 0, so the root is unique
// and non-negative. Newton starts from the mean of the inflow-dominated bound C
// and the storage-dominated bound (C/a)^(1/beta) and is clamped to
// MinDischarge after every update.
//
// Convergence:
//
//   - Iteration stops when |f(Q)| <= tolerance, when an update no longer moves
//     Q by more than tolerance*Q, or after the iteration cap. Reaching
//     the cap is not an error: the estimate is kept and counted in
//     Stats.NonConverged.
//
// Complexity:
//
//   - SolvePixel: O(iterations), typically fewer than ten.
//   - Solver.Solve: Time O(N * iterations), Memory O(workers) beyond the
//     caller's slices.
//
// Errors:
//
//   - ErrShape             slice lengths disagree with the network
//   - ErrInvalidParameter  a non-finite or non-positive channel coefficient
//   - ErrNilOrder          NewSolver got a nil graph, order or parameters
package kinematic
