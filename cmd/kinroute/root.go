package main

import (
	"fmt"
	stdlog "log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/kinroute/catchment"
	"github.com/katalvlaran/kinroute/config"
	"github.com/katalvlaran/kinroute/flowdir"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	verbosity  int
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "kinroute",
		Short:         "Kinematic-wave river routing on synthetic catchments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "YAML configuration file (defaults when empty)")
	cmd.PersistentFlags().IntVar(&f.verbosity, "verbosity", -1, "log verbosity, overrides log.verbosity when >= 0")

	cmd.AddCommand(newRunCmd(f), newWavesCmd(f))
	return cmd
}

// load reads the configuration and applies the verbosity flag.
func (f *rootFlags) load() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	if f.verbosity >= 0 {
		cfg.Log.Verbosity = f.verbosity
	}
	return cfg, nil
}

// logger returns a stdr logger writing to cmd's error stream.
func logger(cmd *cobra.Command, cfg config.Config) logr.Logger {
	stdr.SetVerbosity(cfg.Log.Verbosity)
	return stdr.New(stdlog.New(cmd.ErrOrStderr(), "", stdlog.LstdFlags)).WithName("kinroute")
}

// network generates the configured catchment and decodes it.
func network(cfg config.Config) (*flowdir.Network, error) {
	r, err := catchment.FromConfig(cfg.Catchment)
	if err != nil {
		return nil, err
	}
	net, err := r.Network()
	if err != nil {
		return nil, fmt.Errorf("decode %s catchment: %w", cfg.Catchment.Kind, err)
	}
	return net, nil
}
