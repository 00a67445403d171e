// Package config holds the explicit configuration object of a routing run.
//
// A Config is a plain value: Default() gives a runnable setup, Load(path)
// overlays a YAML file and KINROUTE_* environment variables on top of it and
// validates the result. Nothing in this package is global; callers pass the
// value (or its Routing section) to routing.New.
//
// Environment overrides:
//
//	KINROUTE_WORKERS          Routing.Solver.Workers
//	KINROUTE_SUBSTEPS         Routing.SubSteps
//	KINROUTE_LOG_VERBOSITY    Log.Verbosity
//
// Errors:
//
//   - ErrInvalidConfig  unparsable file, bad override or failed validation
package config
