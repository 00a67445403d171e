package routing

import (
	"context"
	"fmt"
	"math"
)

// LinearReservoir is a Coupler for a storage structure. Discharge arriving at
// Inlet, which must have been made an outlet with InsertStructures, fills the
// store; the store drains exponentially with residence time K seconds and the
// release enters Outlet as lateral inflow on the next sub-step.
type LinearReservoir struct {
	Inlet   int
	Outlet  int
	K       float64
	Storage float64 // water volume held, in discharge units times seconds
}

// NewLinearReservoir returns an empty reservoir. k must be positive and
// finite.
func NewLinearReservoir(inlet, outlet int, k float64) (*LinearReservoir, error) {
	if !(k > 0) || math.IsInf(k, 0) {
		return nil, fmt.Errorf("%w: reservoir residence time %v", ErrInvalidParameter, k)
	}
	if inlet < 0 || outlet < 0 || inlet == outlet {
		return nil, fmt.Errorf("%w: reservoir inlet %d, outlet %d", ErrInvalidParameter, inlet, outlet)
	}
	return &LinearReservoir{Inlet: inlet, Outlet: outlet, K: k}, nil
}

// AfterSubStep implements Coupler.
func (r *LinearReservoir) AfterSubStep(_ context.Context, v *View) error {
	q := v.Discharge()
	if r.Inlet >= len(q) || r.Outlet >= len(q) {
		return fmt.Errorf("%w: reservoir %d -> %d on %d pixels", ErrInvalidParameter, r.Inlet, r.Outlet, len(q))
	}
	lat := v.Parameters().DxLateral[r.Outlet]
	if !(lat > 0) {
		return fmt.Errorf("%w: reservoir outlet %d has zero lateral length", ErrInvalidParameter, r.Outlet)
	}
	dt := v.Dt()
	r.Storage += q[r.Inlet] * dt
	release := r.Storage * -math.Expm1(-dt/r.K)
	r.Storage -= release
	if release == 0 {
		return nil
	}
	return v.Inject(r.Outlet, release/dt/lat)
}
