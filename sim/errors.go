package sim

import "errors"

var (
	// ErrQueueFull is reported for an arrival that finds the ready pool at capacity.
	// It is counted on the RunResult and never returned from a run.
	ErrQueueFull = errors.New("ready pool is full")

	// ErrInvalidConfiguration is returned by Config.Validate and RunSimulation
	// for settings that make a run impossible (no servers, negative quantum, ...).
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidArrival is returned when an ArrivalStream yields a malformed tuple.
	ErrInvalidArrival = errors.New("invalid arrival")

	// ErrInvariantViolation aborts a run whose internal state became inconsistent.
	// Metrics derived from such a run would be meaningless.
	ErrInvariantViolation = errors.New("internal invariant violation")

	// ErrNoData is returned when averages are requested but no job completed.
	ErrNoData = errors.New("no completed jobs")
)
