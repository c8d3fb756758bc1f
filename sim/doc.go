// Package sim provides the discrete-event scheduling kernel of tellersim: a
// bank with several tellers serving customers under FCFS, preemptive
// shortest-remaining-time-first, or Round-Robin.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - job.go: Job lifecycle (waiting → running → completed, or rejected)
//   - scheduler.go: the Discipline strategy and its three implementations
//   - simulator.go: the event loop, admission, dispatch and burst accounting
//
// # Architecture
//
// A run owns one Clock, one ReadyPool, one ServerPool and one
// MetricsCollector. Arrivals are pulled lazily from an ArrivalStream and
// scheduled as ArrivalEvents; every server assignment schedules a
// BurstEndEvent at the end of its granted slice. All events sharing a
// timestamp execute first, then the Discipline is consulted to fill idle
// servers and to preempt. Service progress is charged as exact integer tick
// differences at each event instant, so remaining times never drift.
//
// Sub-packages:
//   - sim/workload/: arrival generation (seeded synthetic, YAML spec, CSV replay)
//   - sim/trace/: decision trace recording
//
// # Key Interfaces
//
//   - ArrivalStream: supplies (job ID, arrival time, service demand) tuples
//   - ReadyPool: FIFO or remaining-time heap holding waiting jobs
//   - Discipline: assignment, preemption and time-slice policy
package sim
