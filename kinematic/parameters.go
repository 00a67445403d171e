package kinematic

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// maxReported caps the number of offending pixels listed in one error.
const maxReported = 16

// Geometry holds the per-pixel channel description that does not depend on
// the sub-step length.
type Geometry struct {
	Alpha []float64 // storage coefficient, A = Alpha*Q^Beta
	Beta  []float64 // storage exponent, usually 0.6
	Dx    []float64 // channel length through the pixel

	// LateralCoefficient scales lateral inflow per unit length; nil means 1
	// for every pixel.
	LateralCoefficient []float64
}

// Parameters are the per-pixel coefficients for one sub-step length.
// Treat the slices as read-only; build a new value with NewParameters or
// WithDt instead of editing them.
type Parameters struct {
	Geometry
	Dt float64

	AlphaDxDt     []float64 // Alpha*Dx/Dt
	BetaAlphaDxDt []float64 // Beta*Alpha*Dx/Dt, the scale of dF/dQ
	DxLateral     []float64 // Dx*LateralCoefficient
}

// NewParameters validates g and precomputes the sub-step products for dt.
// Every offending pixel (up to a cap) is reported in one error wrapping
// ErrInvalidParameter.
// Complexity: O(N).
func NewParameters(g Geometry, dt float64) (*Parameters, error) {
	n := len(g.Alpha)
	if len(g.Beta) != n || len(g.Dx) != n {
		return nil, fmt.Errorf("%w: alpha %d, beta %d, dx %d", ErrShape, n, len(g.Beta), len(g.Dx))
	}
	if g.LateralCoefficient != nil && len(g.LateralCoefficient) != n {
		return nil, fmt.Errorf("%w: lateral coefficient %d, want %d", ErrShape, len(g.LateralCoefficient), n)
	}
	if !positive(dt) {
		return nil, fmt.Errorf("%w: dt = %v", ErrInvalidParameter, dt)
	}

	var errs error
	bad := 0
	report := func(p int, name string, v float64) {
		bad++
		if bad <= maxReported {
			errs = multierr.Append(errs, fmt.Errorf("pixel %d: %s = %v", p, name, v))
		}
	}
	for p := 0; p < n; p++ {
		if !positive(g.Alpha[p]) {
			report(p, "alpha", g.Alpha[p])
		}
		if !positive(g.Beta[p]) {
			report(p, "beta", g.Beta[p])
		}
		if !positive(g.Dx[p]) {
			report(p, "dx", g.Dx[p])
		}
		if g.LateralCoefficient != nil {
			if c := g.LateralCoefficient[p]; math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
				report(p, "lateral coefficient", c)
			}
		}
	}
	if errs != nil {
		if bad > maxReported {
			errs = multierr.Append(errs, fmt.Errorf("and %d more", bad-maxReported))
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, errs)
	}

	p := &Parameters{
		Geometry:      g,
		Dt:            dt,
		AlphaDxDt:     make([]float64, n),
		BetaAlphaDxDt: make([]float64, n),
		DxLateral:     make([]float64, n),
	}
	for i := 0; i < n; i++ {
		p.AlphaDxDt[i] = g.Alpha[i] * g.Dx[i] / dt
		p.BetaAlphaDxDt[i] = g.Beta[i] * p.AlphaDxDt[i]
		lc := 1.0
		if g.LateralCoefficient != nil {
			lc = g.LateralCoefficient[i]
		}
		p.DxLateral[i] = g.Dx[i] * lc
	}
	return p, nil
}

// Uniform returns a Geometry of n pixels sharing one alpha, beta and dx.
func Uniform(n int, alpha, beta, dx float64) Geometry {
	g := Geometry{
		Alpha: make([]float64, n),
		Beta:  make([]float64, n),
		Dx:    make([]float64, n),
	}
	for i := 0; i < n; i++ {
		g.Alpha[i], g.Beta[i], g.Dx[i] = alpha, beta, dx
	}
	return g
}

// Len returns the number of pixels described.
func (p *Parameters) Len() int {
	return len(p.AlphaDxDt)
}

// WithDt returns parameters for a different sub-step length.
func (p *Parameters) WithDt(dt float64) (*Parameters, error) {
	return NewParameters(p.Geometry, dt)
}

// Storage returns the channel water volume Alpha*Q^Beta*Dx held by pixel i at
// discharge q.
func (p *Parameters) Storage(i int, q float64) float64 {
	if q <= 0 {
		return 0
	}
	return p.Alpha[i] * math.Pow(q, p.Beta[i]) * p.Dx[i]
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
