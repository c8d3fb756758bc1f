package sim

import (
	"github.com/tellersim/tellersim/sim/trace"
)

// ServerStats summarizes one server's work over a run.
type ServerStats struct {
	ID          int
	JobsServed  int
	BusyTime    int64
	Utilization float64 // BusyTime / Makespan; 0 for an empty run
}

// RunResult is everything a reporting collaborator needs from one run.
type RunResult struct {
	RunID      string
	Discipline string
	NumServers int
	Quantum    int64

	Records     []JobRecord // Completed jobs ordered by EndTime, then ID
	Generated   int         // Arrivals presented for admission
	Rejected    int         // Arrivals turned away with ErrQueueFull or after cancellation
	RejectedIDs []int

	Preemptions     int
	QuantumExpiries int
	Makespan        int64 // Clock value when the run drained
	Servers         []ServerStats
	Interrupted     bool // Arrivals were cut short by cancellation

	Trace *trace.SimulationTrace // nil unless decision tracing was enabled
}

// Completed returns the number of completed jobs.
func (r *RunResult) Completed() int {
	return len(r.Records)
}

// Averages returns mean turnaround, waiting and response times over
// completed jobs. Rejected arrivals are excluded. Returns ErrNoData when
// nothing completed.
func (r *RunResult) Averages() (Averages, error) {
	return averagesOf(r.Records)
}

// Record returns the completed record for a job ID.
func (r *RunResult) Record(id int) (JobRecord, bool) {
	for _, rec := range r.Records {
		if rec.ID == id {
			return rec, true
		}
	}
	return JobRecord{}, false
}
