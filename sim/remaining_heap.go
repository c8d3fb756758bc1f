package sim

import (
	"container/heap"
	"sort"
)

// shorterFirst reports whether a should be served before b under SRTF.
// Ordering: remaining time → arrival time → job ID
// The preemption check uses the same rank so the pool and the servers agree.
func shorterFirst(a, b *Job) bool {
	if a.RemainingTime != b.RemainingTime {
		return a.RemainingTime < b.RemainingTime
	}
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return a.ID < b.ID
}

// jobHeap implements heap.Interface over shorterFirst.
type jobHeap []*Job

func (jh jobHeap) Len() int           { return len(jh) }
func (jh jobHeap) Less(i, j int) bool { return shorterFirst(jh[i], jh[j]) }
func (jh jobHeap) Swap(i, j int)      { jh[i], jh[j] = jh[j], jh[i] }

// Push is called by heap.Push; do not call directly.
func (jh *jobHeap) Push(x any) {
	*jh = append(*jh, x.(*Job))
}

// Pop is called by heap.Pop; do not call directly.
func (jh *jobHeap) Pop() any {
	old := *jh
	n := len(old)
	job := old[n-1]
	old[n-1] = nil // avoid memory leak
	*jh = old[:n-1]
	return job
}

// RemainingTimeHeap is the SRTF ready pool: a min-heap with a deterministic
// tie-break, so equal remaining times never depend on insertion order.
type RemainingTimeHeap struct {
	jobs jobHeap
}

// NewRemainingTimeHeap creates an empty heap.
func NewRemainingTimeHeap() *RemainingTimeHeap {
	h := &RemainingTimeHeap{
		jobs: make(jobHeap, 0),
	}
	heap.Init(&h.jobs)
	return h
}

// Push adds a job to the heap.
func (h *RemainingTimeHeap) Push(job *Job) {
	if job == nil {
		panic("RemainingTimeHeap.Push: job must not be nil")
	}
	heap.Push(&h.jobs, job)
}

// Pop removes and returns the job with the least remaining time.
func (h *RemainingTimeHeap) Pop() *Job {
	if h.jobs.Len() == 0 {
		return nil
	}
	return heap.Pop(&h.jobs).(*Job)
}

// Peek returns the next job without removing it.
func (h *RemainingTimeHeap) Peek() *Job {
	if h.jobs.Len() == 0 {
		return nil
	}
	return h.jobs[0]
}

func (h *RemainingTimeHeap) PeekNextRemaining() (int64, bool) {
	if next := h.Peek(); next != nil {
		return next.RemainingTime, true
	}
	return 0, false
}

func (h *RemainingTimeHeap) Len() int {
	return h.jobs.Len()
}

func (h *RemainingTimeHeap) IsEmpty() bool {
	return h.jobs.Len() == 0
}

func (h *RemainingTimeHeap) Items() []*Job {
	items := append([]*Job(nil), h.jobs...)
	sort.Slice(items, func(i, j int) bool { return shorterFirst(items[i], items[j]) })
	return items
}

func (h *RemainingTimeHeap) String() string {
	return formatJobIDs(h.Items())
}
