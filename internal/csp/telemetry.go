package csp

import "time"

// Telemetry accumulates the counters spec §4.5 requires: backtracks, value
// iterations tried, and wall time. Values are cumulative across every
// restart attempt performed by Solve.
type Telemetry struct {
	Backtracks       int
	AssignmentsTried int
	Attempts         int
	GenerationTime   time.Duration
}

func (t *Telemetry) merge(attempt Telemetry) {
	t.Backtracks += attempt.Backtracks
	t.AssignmentsTried += attempt.AssignmentsTried
}
