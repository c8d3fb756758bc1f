package sim

import "github.com/sirupsen/logrus"

// EventType labels an event for deterministic same-tick ordering.
type EventType string

const (
	EventTypeArrival  EventType = "Arrival"
	EventTypeBurstEnd EventType = "BurstEnd"
)

// EventTypePriority orders events that share a timestamp (lower first).
// Arrivals precede burst ends so a job arriving at the same tick as a
// quantum expiry joins the Round-Robin queue ahead of the rotated job.
var EventTypePriority = map[EventType]int{
	EventTypeArrival:  1,
	EventTypeBurstEnd: 2,
}

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in ticks) and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() int64
	Type() EventType
	EventID() uint64
	Execute(*Simulator) error
}

// ArrivalEvent represents a job entering the facility.
type ArrivalEvent struct {
	time int64
	id   uint64
	Job  *Job
}

func (e *ArrivalEvent) Timestamp() int64 { return e.time }
func (e *ArrivalEvent) Type() EventType  { return EventTypeArrival }
func (e *ArrivalEvent) EventID() uint64  { return e.id }

// Execute admits the job into the ready pool, or rejects it if the pool is
// full, and pulls the next arrival from the stream.
func (e *ArrivalEvent) Execute(sim *Simulator) error {
	logrus.Debugf("<< Arrival: job %d at %d ticks (demand %d)", e.Job.ID, e.time, e.Job.ServiceDemand)
	if err := sim.Admit(e.Job); err != nil {
		return err
	}
	return sim.scheduleNextArrival()
}

// BurstEndEvent fires when a server's granted slice runs out: the job has
// either completed or, under Round-Robin, used up its quantum.
type BurstEndEvent struct {
	time     int64
	id       uint64
	ServerID int
	seq      uint64 // Server.burstSeq at assignment; a mismatch means the burst was preempted
}

func (e *BurstEndEvent) Timestamp() int64 { return e.time }
func (e *BurstEndEvent) Type() EventType  { return EventTypeBurstEnd }
func (e *BurstEndEvent) EventID() uint64  { return e.id }

// Execute completes or rotates the server's job.
func (e *BurstEndEvent) Execute(sim *Simulator) error {
	srv := sim.Servers.Server(e.ServerID)
	if srv == nil || srv.burstSeq != e.seq {
		logrus.Tracef("<< BurstEnd: stale event for server %d at %d ticks", e.ServerID, e.time)
		return nil
	}
	logrus.Debugf("<< BurstEnd: server %d at %d ticks", e.ServerID, e.time)
	return sim.endBurst(srv)
}
