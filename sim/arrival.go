package sim

import "fmt"

// Arrival is one (job ID, arrival time, service demand) tuple supplied by an
// external arrival generator.
type Arrival struct {
	JobID         int   `yaml:"job_id"`
	ArrivalTime   int64 `yaml:"arrival_time"`
	ServiceDemand int64 `yaml:"service_demand"`
}

// ArrivalStream yields arrivals in non-decreasing ArrivalTime order.
// Next returns ok=false once the stream is exhausted.
type ArrivalStream interface {
	Next() (arrival Arrival, ok bool, err error)
}

// ArrivalSlice replays a fixed list of arrivals. Each run needs its own
// ArrivalSlice; the underlying slice is never modified.
type ArrivalSlice struct {
	arrivals []Arrival
	next     int
}

// NewArrivalSlice returns a stream over arrivals.
func NewArrivalSlice(arrivals []Arrival) *ArrivalSlice {
	return &ArrivalSlice{arrivals: arrivals}
}

func (s *ArrivalSlice) Next() (Arrival, bool, error) {
	if s.next >= len(s.arrivals) {
		return Arrival{}, false, nil
	}
	a := s.arrivals[s.next]
	s.next++
	return a, true, nil
}

// validate checks a single arrival against the one before it.
func (a Arrival) validate(prevTime int64, seen map[int]bool) error {
	if a.ServiceDemand <= 0 {
		return fmt.Errorf("%w: job %d has non-positive service demand %d", ErrInvalidArrival, a.JobID, a.ServiceDemand)
	}
	if a.ArrivalTime < 0 {
		return fmt.Errorf("%w: job %d has negative arrival time %d", ErrInvalidArrival, a.JobID, a.ArrivalTime)
	}
	if a.ArrivalTime < prevTime {
		return fmt.Errorf("%w: job %d arrives at %d, before previous arrival at %d", ErrInvalidArrival, a.JobID, a.ArrivalTime, prevTime)
	}
	if seen[a.JobID] {
		return fmt.Errorf("%w: duplicate job ID %d", ErrInvalidArrival, a.JobID)
	}
	return nil
}
