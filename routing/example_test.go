package routing_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/kinroute/catchment"
	"github.com/katalvlaran/kinroute/config"
	"github.com/katalvlaran/kinroute/routing"
)

// ExampleDriver_Step rains on a small valley for three steps and prints the
// outlet hydrograph while it rises and falls.
func ExampleDriver_Step() {
	r, _ := catchment.Generate(catchment.Valley(5, 5))
	net, _ := r.Network()

	cfg := config.Default()
	cfg.Routing.TimeStep = 1
	channel := routing.UniformChannel{Alpha: 0.5, Beta: 0.6, Dx: 1, LateralCoefficient: 1}
	d, _ := routing.New(net, channel, cfg.Routing)

	rain := routing.InflowFunc(func(step, _ int, dst []float64) error {
		if step < 3 {
			for i := range dst {
				dst[i] = 0.1
			}
		}
		return nil
	})
	peak := 0.0
	for step := 0; step < 10; step++ {
		_ = d.Step(context.Background(), step, rain)
		peak = max(peak, d.OutletFlow())
	}
	fmt.Println("pixels:", net.Len())
	fmt.Println("peak below rain volume rate:", peak < 0.1*float64(net.Len()))
	fmt.Println("receding:", d.OutletFlow() < peak)

	// Output:
	// pixels: 25
	// peak below rain volume rate: true
	// receding: true
}
