package scheduler

import "errors"

var (
	// ErrTaskNotFound is returned when a lookup references an identifier
	// that was never registered by any edge. This indicates a caller bug,
	// not recoverable input.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNoWorkers is returned when a simulation is requested with a
	// worker count below 1.
	ErrNoWorkers = errors.New("worker count must be at least 1")
)
