// Tracks per-job timestamps and run-level counters, and derives
// turnaround, waiting and response times from them.

package sim

import (
	"fmt"
	"sort"
)

// JobRecord is the immutable snapshot of a completed job.
type JobRecord struct {
	ID            int
	ServerID      int // Server that finished the job
	ArrivalTime   int64
	StartTime     int64
	EndTime       int64
	ServiceDemand int64
	Preemptions   int
	Bursts        []Burst
}

// Turnaround is completion time minus arrival time.
func (r JobRecord) Turnaround() int64 { return r.EndTime - r.ArrivalTime }

// Waiting is the time between arrival and first service.
func (r JobRecord) Waiting() int64 { return r.StartTime - r.ArrivalTime }

// Response is defined identically to Waiting. For preemptive disciplines the
// time a job spends back in the pool after its first burst is not included;
// see QueueTime for that.
func (r JobRecord) Response() int64 { return r.StartTime - r.ArrivalTime }

// QueueTime is the total time the job spent in the ready pool,
// counting every return after preemption or quantum expiry.
func (r JobRecord) QueueTime() int64 { return r.Turnaround() - r.ServiceDemand }

// Averages holds run-level mean times in ticks.
type Averages struct {
	Turnaround float64
	Waiting    float64
	Response   float64
}

// MetricsCollector archives completed jobs and counts rejections.
// Owned by a single run.
type MetricsCollector struct {
	records     []JobRecord
	rejectedIDs []int

	Generated       int // Arrivals pulled from the stream and presented for admission
	Preemptions     int
	QuantumExpiries int
	SimEndedTime    int64
}

// NewMetricsCollector returns an empty collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		records:     make([]JobRecord, 0),
		rejectedIDs: make([]int, 0),
	}
}

// Record archives a completed job. The job must satisfy
// ArrivalTime ≤ StartTime ≤ EndTime and have no remaining work.
func (m *MetricsCollector) Record(job *Job) error {
	if job.State != StateCompleted || job.RemainingTime != 0 {
		return fmt.Errorf("%w: recording job %d in state %s with %d remaining",
			ErrInvariantViolation, job.ID, job.State, job.RemainingTime)
	}
	if !job.Started || job.ArrivalTime > job.StartTime || job.StartTime > job.EndTime {
		return fmt.Errorf("%w: job %d timestamps out of order (arrival %d, start %d, end %d)",
			ErrInvariantViolation, job.ID, job.ArrivalTime, job.StartTime, job.EndTime)
	}
	if served := job.ServedTime(); served != job.ServiceDemand {
		return fmt.Errorf("%w: job %d served %d ticks, demand %d",
			ErrInvariantViolation, job.ID, served, job.ServiceDemand)
	}
	m.records = append(m.records, JobRecord{
		ID:            job.ID,
		ServerID:      job.ServerID,
		ArrivalTime:   job.ArrivalTime,
		StartTime:     job.StartTime,
		EndTime:       job.EndTime,
		ServiceDemand: job.ServiceDemand,
		Preemptions:   job.Preemptions,
		Bursts:        append([]Burst(nil), job.Bursts...),
	})
	return nil
}

// RecordRejection counts an arrival turned away because the pool was full.
func (m *MetricsCollector) RecordRejection(job *Job) {
	m.rejectedIDs = append(m.rejectedIDs, job.ID)
}

// Completed returns the number of archived jobs.
func (m *MetricsCollector) Completed() int {
	return len(m.records)
}

// Rejected returns the number of rejected arrivals.
func (m *MetricsCollector) Rejected() int {
	return len(m.rejectedIDs)
}

// Records returns the archived jobs ordered by completion time, then ID.
func (m *MetricsCollector) Records() []JobRecord {
	out := append([]JobRecord(nil), m.records...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EndTime != out[j].EndTime {
			return out[i].EndTime < out[j].EndTime
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Averages returns mean turnaround, waiting and response time,
// or ErrNoData when no job completed.
func (m *MetricsCollector) Averages() (Averages, error) {
	return averagesOf(m.records)
}

func averagesOf(records []JobRecord) (Averages, error) {
	if len(records) == 0 {
		return Averages{}, ErrNoData
	}
	var turnaround, waiting, response int64
	for _, r := range records {
		turnaround += r.Turnaround()
		waiting += r.Waiting()
		response += r.Response()
	}
	n := float64(len(records))
	return Averages{
		Turnaround: float64(turnaround) / n,
		Waiting:    float64(waiting) / n,
		Response:   float64(response) / n,
	}, nil
}
