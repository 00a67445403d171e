package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every load or validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment variables read by Load.
const (
	EnvWorkers      = "KINROUTE_WORKERS"
	EnvSubSteps     = "KINROUTE_SUBSTEPS"
	EnvLogVerbosity = "KINROUTE_LOG_VERBOSITY"
)

// Config is the full configuration of a routing run.
type Config struct {
	Routing   Routing   `yaml:"routing"`
	Channel   Channel   `yaml:"channel"`
	Catchment Catchment `yaml:"catchment"`
	Rain      Rain      `yaml:"rain"`
	Metrics   Metrics   `yaml:"metrics"`
	Log       Log       `yaml:"log"`
}

// Routing configures the driver and its solver.
type Routing struct {
	// TimeStep is the outer step length in seconds.
	TimeStep float64 `yaml:"time_step" validate:"gt=0"`
	// SubSteps splits every outer step into this many solver sub-steps.
	SubSteps int `yaml:"sub_steps" validate:"gte=1,lte=10000"`
	// MaxReported caps the offending pixels listed in a validation error.
	MaxReported int    `yaml:"max_reported" validate:"gte=1"`
	Solver      Solver `yaml:"solver"`
}

// Solver configures the Newton iteration and the wave worker pool.
type Solver struct {
	Tolerance     float64 `yaml:"tolerance" validate:"gt=0"`
	MaxIterations int     `yaml:"max_iterations" validate:"gte=1"`
	// Workers bounds goroutines per wave; 0 means GOMAXPROCS.
	Workers     int  `yaml:"workers" validate:"gte=0"`
	MinChunk    int  `yaml:"min_chunk" validate:"gte=1"`
	SortedWaves bool `yaml:"sorted_waves"`
}

// Channel is a uniform channel description applied to every pixel.
type Channel struct {
	Alpha              float64 `yaml:"alpha" validate:"gt=0"`
	Beta               float64 `yaml:"beta" validate:"gt=0,lte=1"`
	Dx                 float64 `yaml:"dx" validate:"gt=0"`
	LateralCoefficient float64 `yaml:"lateral_coefficient" validate:"gte=0"`
}

// Catchment selects a synthetic flow-direction raster.
type Catchment struct {
	Kind string `yaml:"kind" validate:"oneof=chain valley comb random"`
	Rows int    `yaml:"rows" validate:"gte=1"`
	Cols int    `yaml:"cols" validate:"gte=1"`
	Seed int64  `yaml:"seed"`
	// Pits lists pixel ids turned into outlets, for instance reservoirs.
	Pits []int `yaml:"pits,omitempty" validate:"dive,gte=0"`
}

// Rain is a rectangular lateral inflow pulse.
type Rain struct {
	// Rate is the lateral inflow per unit channel length while raining.
	Rate     float64 `yaml:"rate" validate:"gte=0"`
	Start    int     `yaml:"start" validate:"gte=0"`
	Duration int     `yaml:"duration" validate:"gte=0"`
}

// Metrics configures prometheus export.
type Metrics struct {
	Namespace string `yaml:"namespace" validate:"required"`
	// Textfile, when set, receives the metrics at the end of a CLI run.
	Textfile string `yaml:"textfile"`
}

// Log configures verbosity of the logr sink.
type Log struct {
	Verbosity int `yaml:"verbosity" validate:"gte=0,lte=10"`
}

// Default returns a configuration that routes a small valley with one-minute
// steps.
func Default() Config {
	return Config{
		Routing: Routing{
			TimeStep:    60,
			SubSteps:    1,
			MaxReported: 16,
			Solver: Solver{
				Tolerance:     1e-12,
				MaxIterations: 3000,
				Workers:       0,
				MinChunk:      1024,
				SortedWaves:   false,
			},
		},
		Channel: Channel{
			Alpha:              2,
			Beta:               0.6,
			Dx:                 100,
			LateralCoefficient: 1,
		},
		Catchment: Catchment{
			Kind: "valley",
			Rows: 32,
			Cols: 17,
			Seed: 1,
		},
		Rain: Rain{
			Rate:     1e-4,
			Start:    0,
			Duration: 10,
		},
		Metrics: Metrics{Namespace: "kinroute"},
		Log:     Log{Verbosity: 0},
	}
}

var validate = validator.New()

// Validate checks every section against its struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Load starts from Default, overlays the YAML file at path (skipped when path
// is empty), applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := Parse(data, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes YAML into cfg. Unknown keys are rejected so that typos do not
// silently fall back to defaults.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ApplyEnv overrides cfg from KINROUTE_* variables that are set and
// non-empty.
func ApplyEnv(cfg *Config) error {
	for _, o := range []struct {
		name string
		dst  *int
	}{
		{EnvWorkers, &cfg.Routing.Solver.Workers},
		{EnvSubSteps, &cfg.Routing.SubSteps},
		{EnvLogVerbosity, &cfg.Log.Verbosity},
	} {
		v := os.Getenv(o.name)
		if v == "" {
			continue
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, o.name, v, err)
		}
		*o.dst = i
	}
	return nil
}

// Marshal renders cfg as YAML, for writing a starter file.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
