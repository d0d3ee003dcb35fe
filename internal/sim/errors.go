package sim

import "errors"

// Domain errors for simulation setup and headless runs.
var (
	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("sim: invalid configuration")

	// ErrCanceled indicates a headless run was interrupted by its context.
	ErrCanceled = errors.New("sim: run canceled by context")
)
