package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/kinroute/schedule"
)

func newWavesCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "waves",
		Short: "Print routing order statistics for the configured catchment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			net, err := network(cfg)
			if err != nil {
				return err
			}
			var opts []schedule.Option
			if cfg.Routing.Solver.SortedWaves {
				opts = append(opts, schedule.WithSortedWaves())
			}
			o, err := schedule.Build(net, opts...)
			if err != nil {
				return err
			}
			mean := 0.0
			if o.NumWaves() > 0 {
				mean = float64(o.Len()) / float64(o.NumWaves())
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pixels\t%d\n", o.Len())
			fmt.Fprintf(out, "outlets\t%d\n", len(net.Outlets()))
			fmt.Fprintf(out, "waves\t%d\n", o.NumWaves())
			fmt.Fprintf(out, "widest\t%d\n", o.Widest())
			fmt.Fprintf(out, "mean\t%.2f\n", mean)
			return nil
		},
	}
}
