// Implements the ready pools, which hold every admitted job that is waiting
// for a server. Jobs enter on arrival, preemption or quantum expiry.

package sim

import (
	"fmt"
	"strings"
)

// ReadyPool holds jobs awaiting service. It does not own the jobs.
// Ordering is discipline-dependent; Pop always returns the job the
// discipline should serve next.
type ReadyPool interface {
	Push(job *Job)
	// Pop removes and returns the next job, or nil when the pool is empty.
	Pop() *Job
	// PeekNextRemaining returns the remaining time of the job Pop would return.
	PeekNextRemaining() (int64, bool)
	Len() int
	IsEmpty() bool
	// Items returns the pooled jobs in pop order. The slice is a copy.
	Items() []*Job
}

// FIFOQueue is a first-in-first-out ready pool used by FCFS and Round-Robin.
// Re-queued jobs join the tail like fresh arrivals.
type FIFOQueue struct {
	queue []*Job
}

// NewFIFOQueue returns an empty FIFOQueue.
func NewFIFOQueue() *FIFOQueue {
	return &FIFOQueue{queue: make([]*Job, 0)}
}

// Push adds a job to the back of the queue.
func (q *FIFOQueue) Push(job *Job) {
	if job == nil {
		panic("FIFOQueue.Push: job must not be nil")
	}
	q.queue = append(q.queue, job)
}

// Pop removes the job at the front of the queue.
func (q *FIFOQueue) Pop() *Job {
	if len(q.queue) == 0 {
		return nil
	}
	job := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return job
}

// Peek returns the job at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (q *FIFOQueue) Peek() *Job {
	if len(q.queue) == 0 {
		return nil
	}
	return q.queue[0]
}

func (q *FIFOQueue) PeekNextRemaining() (int64, bool) {
	if head := q.Peek(); head != nil {
		return head.RemainingTime, true
	}
	return 0, false
}

// Len returns the number of jobs in the queue.
func (q *FIFOQueue) Len() int {
	return len(q.queue)
}

func (q *FIFOQueue) IsEmpty() bool {
	return len(q.queue) == 0
}

func (q *FIFOQueue) Items() []*Job {
	return append([]*Job(nil), q.queue...)
}

func (q *FIFOQueue) String() string {
	return formatJobIDs(q.queue)
}

func formatJobIDs(jobs []*Job) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, job := range jobs {
		sb.WriteString(fmt.Sprint(job.ID))
		if i < len(jobs)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
