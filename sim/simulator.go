// sim/simulator.go
package sim

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tellersim/tellersim/sim/trace"
)

// Simulator is the per-run context: it owns the clock, the event queue, the
// ready pool, the servers and the metrics of exactly one run. Nothing is
// shared between Simulators, so disciplines can run back-to-back or in
// parallel without contaminating each other.
//
// Thread-safety: NOT thread-safe. Run executes every state mutation on the
// calling goroutine, which acts as the single scheduling actor.
type Simulator struct {
	RunID      string
	Config     Config
	Clock      *Clock
	EventQueue *EventHeap
	Pool       ReadyPool
	Servers    *ServerPool
	Discipline Discipline
	Metrics    *MetricsCollector
	Trace      *trace.SimulationTrace // nil when tracing is disabled

	arrivals     ArrivalStream
	seenIDs      map[int]bool
	lastArrival  int64
	nextEventID  uint64 // Per-simulator event counter for deterministic event ordering
	stopArrivals bool   // No further arrivals are pulled or admitted
	interrupted  bool
}

// NewSimulator validates cfg and builds a fresh run context.
func NewSimulator(cfg Config, arrivals ArrivalStream) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if arrivals == nil {
		return nil, fmt.Errorf("%w: arrival stream is nil", ErrInvalidConfiguration)
	}
	discipline := NewDiscipline(cfg.Discipline, cfg.Quantum)
	s := &Simulator{
		RunID:      uuid.NewString(),
		Config:     cfg,
		Clock:      &Clock{},
		EventQueue: NewEventHeap(),
		Pool:       discipline.NewReadyPool(),
		Servers:    NewServerPool(cfg.NumServers),
		Discipline: discipline,
		Metrics:    NewMetricsCollector(),
		arrivals:   arrivals,
		seenIDs:    make(map[int]bool),
	}
	if trace.TraceLevel(cfg.TraceLevel) == trace.TraceLevelDecisions {
		s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions, RunID: s.RunID})
	}
	return s, nil
}

// RunSimulation runs one discipline over an arrival stream and returns the
// ordered completion records. It is the entry point for reporting tools.
func RunSimulation(ctx context.Context, cfg Config, arrivals ArrivalStream) (*RunResult, error) {
	s, err := NewSimulator(cfg, arrivals)
	if err != nil {
		return nil, err
	}
	if err := s.Run(ctx); err != nil {
		return nil, err
	}
	return s.Result(), nil
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	sim.EventQueue.Schedule(ev)
}

func (sim *Simulator) newEventID() uint64 {
	sim.nextEventID++
	return sim.nextEventID
}

// view snapshots the state disciplines are allowed to consult.
func (sim *Simulator) view() SchedulingView {
	return SchedulingView{Now: sim.Clock.Now(), Pool: sim.Pool, Servers: sim.Servers}
}

// Run drives the event loop until every admitted job has completed.
// All events sharing a timestamp execute before the disciplines are consulted,
// so simultaneous arrivals and completions are seen as one decision instant.
// Cancelling ctx stops pulling arrivals; jobs already admitted are drained
// and an arrival already pulled is rejected.
func (sim *Simulator) Run(ctx context.Context) error {
	logrus.Infof("Starting %s simulation %s with %d servers (quantum=%d, capacity=%d)",
		sim.Discipline.Name(), sim.RunID, sim.Config.NumServers, sim.Config.Quantum, sim.Config.QueueCapacity)

	if ctx.Err() != nil {
		logrus.Warnf("Simulation cancelled before start (%v)", ctx.Err())
		sim.stopArrivals = true
		sim.interrupted = true
	}
	if err := sim.scheduleNextArrival(); err != nil {
		return err
	}
	for sim.EventQueue.Len() > 0 {
		if !sim.stopArrivals && ctx.Err() != nil {
			logrus.Warnf("[tick %07d] Simulation cancelled (%v); draining admitted jobs", sim.Clock.Now(), ctx.Err())
			sim.stopArrivals = true
			sim.interrupted = true
		}

		now := sim.EventQueue.Peek().Timestamp()
		if err := sim.Clock.AdvanceTo(now); err != nil {
			return err
		}
		for _, srv := range sim.Servers.Busy() {
			if err := srv.charge(now); err != nil {
				return err
			}
		}
		for ev := sim.EventQueue.Peek(); ev != nil && ev.Timestamp() == now; ev = sim.EventQueue.Peek() {
			sim.EventQueue.PopNext()
			logrus.Tracef("[tick %07d] Executing %T", now, ev)
			if err := ev.Execute(sim); err != nil {
				return err
			}
		}
		if err := sim.dispatch(); err != nil {
			return err
		}
	}
	if err := sim.checkDrained(); err != nil {
		return err
	}
	sim.Metrics.SimEndedTime = sim.Clock.Now()
	logrus.Infof("[tick %07d] Simulation ended: %d completed, %d rejected",
		sim.Clock.Now(), sim.Metrics.Completed(), sim.Metrics.Rejected())
	return nil
}

// scheduleNextArrival pulls one arrival from the stream and schedules it.
// Arrivals are pulled lazily so that streams may be unbounded.
func (sim *Simulator) scheduleNextArrival() error {
	if sim.stopArrivals {
		return nil
	}
	a, ok, err := sim.arrivals.Next()
	if err != nil {
		return fmt.Errorf("reading arrival stream: %w", err)
	}
	if !ok {
		return nil
	}
	if sim.Config.Horizon > 0 && a.ArrivalTime > sim.Config.Horizon {
		logrus.Infof("Arrival of job %d at %d is beyond horizon %d; no further arrivals", a.JobID, a.ArrivalTime, sim.Config.Horizon)
		sim.stopArrivals = true
		return nil
	}
	if err := a.validate(sim.lastArrival, sim.seenIDs); err != nil {
		return err
	}
	sim.seenIDs[a.JobID] = true
	sim.lastArrival = a.ArrivalTime
	sim.Schedule(&ArrivalEvent{
		time: a.ArrivalTime,
		id:   sim.newEventID(),
		Job:  NewJob(a.JobID, a.ArrivalTime, a.ServiceDemand),
	})
	return nil
}

// Admit enters an arriving job into the ready pool, or rejects it with
// ErrQueueFull when the pool is at capacity. An arrival that was already
// pulled from the stream when the run was cancelled is rejected as well.
// Rejections are counted and never abort the run.
func (sim *Simulator) Admit(job *Job) error {
	now := sim.Clock.Now()
	sim.Metrics.Generated++
	if sim.interrupted {
		sim.reject(job)
		logrus.Warnf("[tick %07d] Job %d rejected: arrived after cancellation", now, job.ID)
		return nil
	}
	if sim.Config.QueueCapacity > 0 && sim.waiting() >= sim.Config.QueueCapacity {
		sim.reject(job)
		logrus.Warnf("[tick %07d] Job %d rejected: %v (capacity %d)", now, job.ID, ErrQueueFull, sim.Config.QueueCapacity)
		return nil
	}
	sim.Pool.Push(job)
	sim.Trace.Record(trace.DecisionRecord{Clock: now, Kind: trace.KindAdmit, JobID: job.ID, ServerID: trace.NoServer, Remaining: job.RemainingTime})
	return sim.apply(sim.Discipline.OnArrival(job, sim.view()))
}

func (sim *Simulator) reject(job *Job) {
	job.State = StateRejected
	sim.Metrics.RecordRejection(job)
	sim.Trace.Record(trace.DecisionRecord{Clock: sim.Clock.Now(), Kind: trace.KindReject, JobID: job.ID, ServerID: trace.NoServer, Remaining: job.RemainingTime})
}

// waiting is the number of pooled jobs still without a server once this
// instant is dispatched. Idle servers and servers whose job finishes now
// each take one job from the pool.
func (sim *Simulator) waiting() int {
	free := 0
	for _, srv := range sim.Servers.Servers() {
		if srv.State == ServerIdle || srv.Job.RemainingTime == 0 {
			free++
		}
	}
	return max(0, sim.Pool.Len()-free)
}

// dispatch fills idle servers and applies preemptions until the discipline
// has nothing left to do at this instant. Each preemption strictly lowers the
// total remaining time of running jobs, so the loop terminates.
func (sim *Simulator) dispatch() error {
	for {
		for _, srv := range sim.Servers.Idle() {
			if sim.Pool.IsEmpty() {
				break
			}
			if err := sim.apply(sim.Discipline.OnServerIdle(srv.ID, sim.view())); err != nil {
				return err
			}
		}
		d := sim.Discipline.OnTick(sim.view())
		if d.Kind == DecisionNone {
			return nil
		}
		if err := sim.apply(d); err != nil {
			return err
		}
	}
}

// apply carries out a discipline decision.
func (sim *Simulator) apply(d Decision) error {
	switch d.Kind {
	case DecisionNone, "":
		return nil
	case DecisionAssign:
		srv := sim.Servers.Server(d.ServerID)
		if srv == nil || d.Job == nil {
			return fmt.Errorf("%w: malformed assign decision %+v", ErrInvariantViolation, d)
		}
		return sim.startBurst(srv, d.Job)
	case DecisionPreempt:
		srv := sim.Servers.Server(d.ServerID)
		if srv == nil {
			return fmt.Errorf("%w: preempt unknown server %d", ErrInvariantViolation, d.ServerID)
		}
		return sim.preempt(srv)
	default:
		return fmt.Errorf("%w: unknown decision kind %q", ErrInvariantViolation, d.Kind)
	}
}

// startBurst assigns job to srv and schedules the end of its service slice.
func (sim *Simulator) startBurst(srv *Server, job *Job) error {
	now := sim.Clock.Now()
	if err := sim.Servers.assign(srv, job, now); err != nil {
		return err
	}
	burst := sim.Discipline.BurstLength(job)
	if burst <= 0 || burst > job.RemainingTime {
		return fmt.Errorf("%w: burst of %d ticks for job %d with %d remaining",
			ErrInvariantViolation, burst, job.ID, job.RemainingTime)
	}
	sim.Schedule(&BurstEndEvent{
		time:     now + burst,
		id:       sim.newEventID(),
		ServerID: srv.ID,
		seq:      srv.burstSeq,
	})
	sim.Trace.Record(trace.DecisionRecord{Clock: now, Kind: trace.KindAssign, JobID: job.ID, ServerID: srv.ID, Remaining: job.RemainingTime})
	logrus.Debugf("[tick %07d] Job %d starts on server %d for %d ticks (remaining %d)", now, job.ID, srv.ID, burst, job.RemainingTime)
	return nil
}

// preempt takes the job off srv and returns it to the ready pool with its
// remaining time intact. StartTime is left untouched.
func (sim *Simulator) preempt(srv *Server) error {
	now := sim.Clock.Now()
	job, err := sim.Servers.release(srv, now)
	if err != nil {
		return err
	}
	if job.RemainingTime == 0 {
		return fmt.Errorf("%w: preempted job %d has no remaining work", ErrInvariantViolation, job.ID)
	}
	job.State = StateWaiting
	job.Preemptions++
	sim.Metrics.Preemptions++
	sim.Pool.Push(job)
	sim.Trace.Record(trace.DecisionRecord{Clock: now, Kind: trace.KindPreempt, JobID: job.ID, ServerID: srv.ID, Remaining: job.RemainingTime})
	logrus.Debugf("[tick %07d] Job %d preempted on server %d (remaining %d)", now, job.ID, srv.ID, job.RemainingTime)
	return nil
}

// endBurst handles a service slice running out: the job either completes
// or, under Round-Robin, rotates to the tail of the pool.
func (sim *Simulator) endBurst(srv *Server) error {
	now := sim.Clock.Now()
	job, err := sim.Servers.release(srv, now)
	if err != nil {
		return err
	}
	if job.RemainingTime > 0 {
		if sim.Discipline.Name() != DisciplineRoundRobin {
			return fmt.Errorf("%w: job %d left server %d with %d remaining under %s",
				ErrInvariantViolation, job.ID, srv.ID, job.RemainingTime, sim.Discipline.Name())
		}
		job.State = StateWaiting
		sim.Metrics.QuantumExpiries++
		sim.Pool.Push(job)
		sim.Trace.Record(trace.DecisionRecord{Clock: now, Kind: trace.KindQuantumExpiry, JobID: job.ID, ServerID: srv.ID, Remaining: job.RemainingTime})
		logrus.Debugf("[tick %07d] Job %d quantum expired on server %d (remaining %d)", now, job.ID, srv.ID, job.RemainingTime)
		return nil
	}

	job.State = StateCompleted
	job.EndTime = now
	srv.JobsServed++
	if err := sim.Metrics.Record(job); err != nil {
		return err
	}
	sim.Trace.Record(trace.DecisionRecord{Clock: now, Kind: trace.KindComplete, JobID: job.ID, ServerID: srv.ID})
	logrus.Debugf("[tick %07d] Job %d leaves server %d", now, job.ID, srv.ID)
	return nil
}

// checkDrained verifies that every admitted job has been classified.
func (sim *Simulator) checkDrained() error {
	if !sim.Pool.IsEmpty() {
		return fmt.Errorf("%w: %d jobs left in ready pool %v", ErrInvariantViolation, sim.Pool.Len(), sim.Pool.Items())
	}
	if busy := sim.Servers.BusyCount(); busy > 0 {
		return fmt.Errorf("%w: %d servers still busy at end of run", ErrInvariantViolation, busy)
	}
	if got := sim.Metrics.Completed() + sim.Metrics.Rejected(); got != sim.Metrics.Generated {
		return fmt.Errorf("%w: completed+rejected=%d but generated=%d", ErrInvariantViolation, got, sim.Metrics.Generated)
	}
	return nil
}

// Result assembles the RunResult of a finished run.
func (sim *Simulator) Result() *RunResult {
	makespan := sim.Metrics.SimEndedTime
	servers := make([]ServerStats, 0, sim.Servers.Len())
	for _, s := range sim.Servers.Servers() {
		st := ServerStats{ID: s.ID, JobsServed: s.JobsServed, BusyTime: s.BusyTime}
		if makespan > 0 {
			st.Utilization = float64(s.BusyTime) / float64(makespan)
		}
		servers = append(servers, st)
	}
	return &RunResult{
		RunID:           sim.RunID,
		Discipline:      sim.Discipline.Name(),
		NumServers:      sim.Servers.Len(),
		Quantum:         sim.Config.Quantum,
		Records:         sim.Metrics.Records(),
		Generated:       sim.Metrics.Generated,
		Rejected:        sim.Metrics.Rejected(),
		RejectedIDs:     append([]int(nil), sim.Metrics.rejectedIDs...),
		Preemptions:     sim.Metrics.Preemptions,
		QuantumExpiries: sim.Metrics.QuantumExpiries,
		Makespan:        makespan,
		Servers:         servers,
		Interrupted:     sim.interrupted,
		Trace:           sim.Trace,
	}
}
