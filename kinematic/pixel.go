package kinematic

import "math"

// SolvePixel solves Q + a*Q^beta = c for Q >= 0 by Newton-Raphson, where a is
// the pixel's AlphaDxDt.
//
// Behavior:
//  1. c <= MinDischarge (or NaN) gives Q = 0 with no iteration.
//  2. Seed with the mean of c (storage negligible) and (c/a)^(1/beta)
//     (inflow negligible); the root lies between the two.
//  3. Update Q -= f/f' with f' = 1 + beta*a*Q^(beta-1), clamped to
//     MinDischarge.
//  4. Stop once |f| <= tol, once |dQ| <= tol*Q, or after maxIter
//     updates. The last case returns the current estimate with
//     Converged = false.
//  5. A result on the clamp floor is returned as exactly 0.
//
// a, beta and tol must be positive; maxIter must be at least 1.
func SolvePixel(c, a, beta, tol float64, maxIter int) Result {
	if !(c > MinDischarge) {
		return Result{Converged: true}
	}

	q := 0.5 * (c + math.Pow(c/a, 1/beta))
	res := Result{}
	for res.Iterations < maxIter {
		qb := math.Pow(q, beta)
		f := q + a*qb - c
		if math.Abs(f) <= tol {
			res.Converged = true
			break
		}
		df := 1 + beta*a*qb/q
		next := q - f/df
		if next < MinDischarge {
			next = MinDischarge
		}
		dq := next - q
		q = next
		res.Iterations++
		if math.Abs(dq) <= tol*q {
			res.Converged = true
			break
		}
	}

	if q <= MinDischarge {
		q = 0
	}
	res.Q = q
	res.Residual = math.Abs(q + a*powZero(q, beta) - c)
	return res
}

// powZero is math.Pow with 0^beta taken as 0.
func powZero(q, beta float64) float64 {
	if q <= 0 {
		return 0
	}
	return math.Pow(q, beta)
}
