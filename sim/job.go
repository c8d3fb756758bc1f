// Defines the Job struct that models one customer moving through the facility.
// Tracks arrival time, service demand, remaining work and the timestamps
// used to derive turnaround, waiting and response times.

package sim

import (
	"fmt"
)

// JobState represents the lifecycle state of a job.
type JobState string

const (
	StateWaiting   JobState = "waiting"
	StateRunning   JobState = "running"
	StateCompleted JobState = "completed"
	StateRejected  JobState = "rejected"
)

// NoServer is the ServerID of a job that has never been served.
const NoServer = -1

// Burst is one uninterrupted service interval [Start, End) on a server.
type Burst struct {
	ServerID int
	Start    int64
	End      int64
}

// Len returns the service time consumed by the burst.
func (b Burst) Len() int64 {
	return b.End - b.Start
}

// Job models a single customer's lifecycle in the simulation.
// ID, ArrivalTime and ServiceDemand never change after NewJob.
type Job struct {
	ID            int   // Unique identifier, stable across preemption
	ArrivalTime   int64 // Tick at which the job entered the ready pool
	ServiceDemand int64 // Total service time required
	RemainingTime int64 // Service time still owed; decremented only by the simulator

	State     JobState
	Started   bool  // Tracks whether StartTime has been set
	StartTime int64 // Tick of first service allocation
	EndTime   int64 // Tick of completion
	ServerID  int   // Last (or current) server; NoServer until first served

	Bursts      []Burst // Service intervals in chronological order
	Preemptions int     // Times the job was taken off a server before finishing
}

// NewJob creates a waiting job with RemainingTime equal to its demand.
func NewJob(id int, arrivalTime, serviceDemand int64) *Job {
	return &Job{
		ID:            id,
		ArrivalTime:   arrivalTime,
		ServiceDemand: serviceDemand,
		RemainingTime: serviceDemand,
		State:         StateWaiting,
		ServerID:      NoServer,
	}
}

// ServedTime returns the sum of all burst lengths.
func (j *Job) ServedTime() int64 {
	var total int64
	for _, b := range j.Bursts {
		total += b.Len()
	}
	return total
}

// This method returns a human-readable string representation of a Job.
func (j Job) String() string {
	return fmt.Sprintf("Job: (ID: %d, State: %s, Remaining: %d, ArrivalTime: %d)", j.ID, j.State, j.RemainingTime, j.ArrivalTime)
}
