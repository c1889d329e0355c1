package metrics

import "time"

// Recorder is the planner-facing metrics surface. The CloudWatch client
// implements it; tests and database-less deployments use Noop.
type Recorder interface {
	// PlanCompleted records one successful search: the plan length, the
	// beam width it ran with, and the wall time the search took.
	PlanCompleted(bars, beamWidth int, duration time.Duration)
	// PlanFailed records one failed search by failure kind.
	PlanFailed(kind string)
}

// Noop discards all metrics.
type Noop struct{}

func (Noop) PlanCompleted(int, int, time.Duration) {}
func (Noop) PlanFailed(string)                     {}
