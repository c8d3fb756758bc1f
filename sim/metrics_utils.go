// sim/metrics_utils.go
package sim

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Distribution describes one per-job time metric over a run, in ticks.
type Distribution struct {
	Mean   float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	Max    float64
}

// RunSummary is the aggregate view of a RunResult printed by the CLI.
type RunSummary struct {
	Averages   Averages
	Turnaround Distribution
	Waiting    Distribution
	QueueTime  Distribution
}

// NewDistribution computes mean, standard deviation and empirical quantiles.
// data must be non-empty; it is not modified.
func NewDistribution(data []float64) Distribution {
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}
	return Distribution{
		Mean:   mean,
		StdDev: std,
		P50:    stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.90, stat.Empirical, sorted, nil),
		P99:    stat.Quantile(0.99, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
}

// Summary computes averages and distributions over completed jobs.
// Returns ErrNoData when nothing completed.
func (r *RunResult) Summary() (*RunSummary, error) {
	avg, err := r.Averages()
	if err != nil {
		return nil, err
	}
	turnaround := make([]float64, len(r.Records))
	waiting := make([]float64, len(r.Records))
	queue := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		turnaround[i] = float64(rec.Turnaround())
		waiting[i] = float64(rec.Waiting())
		queue[i] = float64(rec.QueueTime())
	}
	return &RunSummary{
		Averages:   avg,
		Turnaround: NewDistribution(turnaround),
		Waiting:    NewDistribution(waiting),
		QueueTime:  NewDistribution(queue),
	}, nil
}

// Print displays aggregated metrics at the end of the simulation.
// Includes average turnaround, waiting and response time and per-server load.
func (r *RunResult) Print(w io.Writer) {
	fmt.Fprintf(w, "=== Simulation Metrics (%s, %d servers) ===\n", r.Discipline, r.NumServers)
	fmt.Fprintf(w, "Run ID               : %s\n", r.RunID)
	fmt.Fprintf(w, "Generated Jobs       : %d\n", r.Generated)
	fmt.Fprintf(w, "Completed Jobs       : %d\n", r.Completed())
	fmt.Fprintf(w, "Rejected Jobs        : %d\n", r.Rejected)
	fmt.Fprintf(w, "Preemptions          : %d\n", r.Preemptions)
	fmt.Fprintf(w, "Quantum Expiries     : %d\n", r.QuantumExpiries)
	fmt.Fprintf(w, "Makespan             : %d ticks\n", r.Makespan)

	summary, err := r.Summary()
	if errors.Is(err, ErrNoData) {
		fmt.Fprintln(w, "No jobs completed; averages unavailable.")
		return
	}
	fmt.Fprintf(w, "Average Turnaround   : %.2f ticks\n", summary.Averages.Turnaround)
	fmt.Fprintf(w, "Average Waiting      : %.2f ticks\n", summary.Averages.Waiting)
	fmt.Fprintf(w, "Average Response     : %.2f ticks\n", summary.Averages.Response)
	fmt.Fprintf(w, "Average Time In Queue: %.2f ticks\n", summary.QueueTime.Mean)
	fmt.Fprintf(w, "Turnaround p50/p90/p99: %.0f / %.0f / %.0f ticks\n",
		summary.Turnaround.P50, summary.Turnaround.P90, summary.Turnaround.P99)
	for _, s := range r.Servers {
		fmt.Fprintf(w, "Server %d served %d jobs (utilization %.1f%%)\n", s.ID, s.JobsServed, 100*s.Utilization)
	}
}
