package routing

import (
	"fmt"
	"math"

	"github.com/katalvlaran/kinroute/flowdir"
	"github.com/katalvlaran/kinroute/kinematic"
)

// View is what a Coupler sees after a sub-step. It is valid only for the
// duration of the AfterSubStep call.
type View struct {
	d    *Driver
	step int
	sub  int
}

// Step returns the outer step index passed to Driver.Step.
func (v *View) Step() int { return v.step }

// SubStep returns the sub-step index within the step.
func (v *View) SubStep() int { return v.sub }

// Dt returns the sub-step length in seconds.
func (v *View) Dt() float64 { return v.d.solver.Parameters().Dt }

// Parameters returns the channel parameters of the current sub-step length.
func (v *View) Parameters() *kinematic.Parameters { return v.d.solver.Parameters() }

// Network returns the drainage network being routed.
func (v *View) Network() *flowdir.Network { return v.d.net }

// Discharge returns the discharge after this sub-step. Do not modify it.
func (v *View) Discharge() []float64 { return v.d.q }

// Inject adds rate to the lateral inflow of pixel during the next sub-step.
// Negative rates withdraw water; the combined inflow is validated before the
// next solve. Injections from several couplers add up.
func (v *View) Inject(pixel int, rate float64) error {
	if pixel < 0 || pixel >= len(v.d.pending) {
		return fmt.Errorf("routing: inject into pixel %d of %d: %w", pixel, len(v.d.pending), flowdir.ErrPixelRange)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: inject %v into pixel %d", ErrInvalidInflow, rate, pixel)
	}
	v.d.pending[pixel] += rate
	return nil
}
