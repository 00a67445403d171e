// Package routing owns the discharge state of a drainage network across time
// steps and drives the kinematic solver one sub-step at a time.
//
// What:
//
//   - Driver: built once per network from a ParameterSource and a
//     config.Routing. It derives the routing order and the solver, keeps the
//     discharge vector, and exposes it to persistence and couplers.
//   - Step / StepN: for every sub-step, gather lateral inflow from an
//     InflowSource, add inflow injected by couplers, validate, solve, record
//     metrics, then run every Coupler.
//   - InsertStructures: turns pixels into outlets (reservoirs, lakes) before
//     the first step and rebuilds the order and solver.
//   - ColdStart / SetDischarge: steady-state or explicit initial conditions.
//
// Sub-stepping:
//
//   - Step uses config.Routing.SubSteps sub-steps of TimeStep/SubSteps
//     seconds each. StepN takes an explicit count; parameters for each count
//     are computed once and cached.
//
// Coupling:
//
//   - After every sub-step each Coupler sees a View of the fresh discharge
//     and may Inject lateral inflow (or withdrawal) at any pixel. Injected
//     rates enter the next sub-step, added to the source inflow.
//
// Errors:
//
//   - ErrInvalidInflow     NaN, infinite or negative lateral inflow
//   - ErrInvalidParameter  bad channel parameters or sub-step settings
//   - ErrInvalidState      a warm-start discharge vector is malformed
//   - ErrStarted           InsertStructures after the first step
//   - ErrNilArgument       a required argument is nil
//
// Validation errors list every offending pixel up to MaxReported, joined
// with go.uber.org/multierr.
package routing
