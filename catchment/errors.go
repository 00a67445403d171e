// SPDX-License-Identifier: MIT
// Package: kinroute/catchment
//
// errors.go - sentinel errors for the catchment package.
//
// Generators attach context with %w; callers branch with errors.Is.
// Generators never panic; option constructors do.

package catchment

import "errors"

// ErrTooSmall indicates that a size parameter (n, rows, cols, teeth, length)
// is below the minimum for the requested generator.
var ErrTooSmall = errors.New("catchment: parameter too small")

// ErrNeedRand indicates that a stochastic generator was called without
// WithSeed or WithRand.
var ErrNeedRand = errors.New("catchment: rng is required")

// ErrUnknownKind indicates a configuration naming no known generator.
var ErrUnknownKind = errors.New("catchment: unknown kind")
