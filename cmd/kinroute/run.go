package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/kinroute/config"
	"github.com/katalvlaran/kinroute/routing"
)

type runFlags struct {
	steps      int
	metricsOut string
}

func newRunCmd(root *rootFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Route a rainfall pulse and print the outlet hydrograph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if f.steps < 1 {
				return fmt.Errorf("--steps must be positive, got %d", f.steps)
			}
			if f.metricsOut != "" {
				cfg.Metrics.Textfile = f.metricsOut
			}
			return runRouting(cmd, cfg, f.steps)
		},
	}
	cmd.Flags().IntVar(&f.steps, "steps", 24, "number of outer time steps")
	cmd.Flags().StringVar(&f.metricsOut, "metrics-out", "", "write prometheus metrics to this file at the end")
	return cmd
}

// runRouting builds the driver for cfg, rains on every pixel during the
// configured window and prints step, time and outlet discharge per step.
func runRouting(cmd *cobra.Command, cfg config.Config, steps int) error {
	log := logger(cmd, cfg)
	net, err := network(cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	d, err := routing.New(net, routing.UniformChannel(cfg.Channel), cfg.Routing,
		routing.WithLogger(log),
		routing.WithMetrics(routing.NewMetrics(reg, cfg.Metrics.Namespace)))
	if err != nil {
		return err
	}
	if err := d.InsertStructures(cfg.Catchment.Pits); err != nil {
		return err
	}
	log.Info("routing", "pixels", net.Len(), "waves", d.Order().NumWaves(), "steps", steps)

	rain := pulse(cfg.Rain)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "step\ttime_s\toutlet_q")
	for step := 0; step < steps; step++ {
		if err := d.Step(cmd.Context(), step, rain); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d\t%g\t%.6g\n", step, float64(step+1)*cfg.Routing.TimeStep, d.OutletFlow())
	}

	st := d.Stats()
	log.Info("done", "pixelSolves", st.Pixels, "iterations", st.Iterations,
		"nonConverged", st.NonConverged, "maxResidual", st.MaxResidual)

	if cfg.Metrics.Textfile != "" {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// pulse is uniform rain of r.Rate over steps [r.Start, r.Start+r.Duration).
func pulse(r config.Rain) routing.InflowSource {
	return routing.InflowFunc(func(step, _ int, dst []float64) error {
		if step < r.Start || step >= r.Start+r.Duration {
			return nil
		}
		for i := range dst {
			dst[i] = r.Rate
		}
		return nil
	})
}
