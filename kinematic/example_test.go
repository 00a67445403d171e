package kinematic_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/kinroute/flowdir"
	"github.com/katalvlaran/kinroute/kinematic"
	"github.com/katalvlaran/kinroute/schedule"
)

// ExampleSolver_Solve routes a rain pulse on the head of a three-pixel
// chain for two sub-steps.
func ExampleSolver_Solve() {
	net, _ := flowdir.FromDownstream([]int{1, 2, -1})
	order, _ := schedule.Build(net)
	params, _ := kinematic.NewParameters(kinematic.Uniform(3, 0.5, 0.6, 1), 1)
	solver, _ := kinematic.NewSolver(net, order, params)

	q := make([]float64, 3)
	_, _ = solver.Solve(context.Background(), q, []float64{2, 0, 0})
	fmt.Printf("%.6f %.6f %.6f\n", q[0], q[1], q[2])
	_, _ = solver.Solve(context.Background(), q, []float64{0, 0, 0})
	fmt.Printf("%.6f %.6f %.6f\n", q[0], q[1], q[2])

	// Output:
	// 1.390612 0.916193 0.562253
	// 0.345242 0.492687 0.512016
}

// ExampleSolvePixel solves a single pixel with linear storage, where the
// root is exactly half the inflow.
func ExampleSolvePixel() {
	r := kinematic.SolvePixel(8, 1, 1, kinematic.DefaultTolerance, kinematic.DefaultMaxIterations)
	fmt.Println(r.Q, r.Converged)

	// Output:
	// 4 true
}
