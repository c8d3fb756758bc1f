package sim

import (
	"fmt"
	"sort"
)

// DecisionKind identifies what a discipline asks the simulator to do.
type DecisionKind string

const (
	DecisionNone    DecisionKind = "none"
	DecisionAssign  DecisionKind = "assign"
	DecisionPreempt DecisionKind = "preempt"
)

// Decision is returned by every Discipline hook.
// Assign carries the popped job and target server; Preempt names the server to free.
type Decision struct {
	Kind     DecisionKind
	ServerID int
	Job      *Job
}

// NoDecision is the zero-action decision.
var NoDecision = Decision{Kind: DecisionNone}

// SchedulingView is the run state a discipline may consult.
// Remaining times of running jobs are current as of Now.
type SchedulingView struct {
	Now     int64
	Pool    ReadyPool
	Servers *ServerPool
}

// Discipline decides which waiting job goes to which idle server and when a
// running job must give its server up. FCFS, SRTF and Round-Robin share the
// ReadyPool/ServerPool machinery and differ only here.
// Hooks never fail; they return NoDecision when nothing applies.
type Discipline interface {
	Name() string
	// NewReadyPool returns an empty pool with this discipline's ordering.
	NewReadyPool() ReadyPool
	// OnArrival is called after job has been admitted to the pool.
	OnArrival(job *Job, view SchedulingView) Decision
	// OnServerIdle picks the next job for the idle server, popping it from the pool.
	OnServerIdle(serverID int, view SchedulingView) Decision
	// OnTick is called at every decision instant once idle servers are filled.
	OnTick(view SchedulingView) Decision
	// BurstLength is the service slice granted to job on assignment.
	BurstLength(job *Job) int64
}

// popHead is the assignment rule shared by all disciplines: the pool's
// ordering already encodes which job is next.
func popHead(serverID int, view SchedulingView) Decision {
	job := view.Pool.Pop()
	if job == nil {
		return NoDecision
	}
	return Decision{Kind: DecisionAssign, ServerID: serverID, Job: job}
}

// FCFSDiscipline serves jobs in arrival order and never preempts.
type FCFSDiscipline struct{}

func (f *FCFSDiscipline) Name() string            { return DisciplineFCFS }
func (f *FCFSDiscipline) NewReadyPool() ReadyPool { return NewFIFOQueue() }

func (f *FCFSDiscipline) OnArrival(_ *Job, _ SchedulingView) Decision { return NoDecision }

func (f *FCFSDiscipline) OnServerIdle(serverID int, view SchedulingView) Decision {
	return popHead(serverID, view)
}

func (f *FCFSDiscipline) OnTick(_ SchedulingView) Decision { return NoDecision }

func (f *FCFSDiscipline) BurstLength(job *Job) int64 { return job.RemainingTime }

// SRTFDiscipline always serves the jobs with the least remaining time.
// A waiting job with strictly less remaining time than a running one preempts it.
// Warning: SRTF can starve long jobs under sustained load.
type SRTFDiscipline struct{}

func (s *SRTFDiscipline) Name() string            { return DisciplineSRTF }
func (s *SRTFDiscipline) NewReadyPool() ReadyPool { return NewRemainingTimeHeap() }

// OnArrival preempts only when no server is idle or about to finish at this
// instant; otherwise the arrival is placed by the regular dispatch.
func (s *SRTFDiscipline) OnArrival(job *Job, view SchedulingView) Decision {
	if len(view.Servers.Idle()) > 0 {
		return NoDecision
	}
	for _, srv := range view.Servers.Busy() {
		if srv.Job.RemainingTime == 0 {
			return NoDecision
		}
	}
	victim := longestRunning(view.Servers)
	if victim == nil || job.RemainingTime >= victim.Job.RemainingTime {
		return NoDecision
	}
	return Decision{Kind: DecisionPreempt, ServerID: victim.ID, Job: victim.Job}
}

func (s *SRTFDiscipline) OnServerIdle(serverID int, view SchedulingView) Decision {
	return popHead(serverID, view)
}

func (s *SRTFDiscipline) OnTick(view SchedulingView) Decision {
	next, ok := view.Pool.PeekNextRemaining()
	if !ok {
		return NoDecision
	}
	victim := longestRunning(view.Servers)
	if victim == nil || next >= victim.Job.RemainingTime {
		return NoDecision
	}
	return Decision{Kind: DecisionPreempt, ServerID: victim.ID, Job: victim.Job}
}

func (s *SRTFDiscipline) BurstLength(job *Job) int64 { return job.RemainingTime }

// longestRunning returns the busy server whose job ranks last under SRTF
// ordering, i.e. the one to preempt first. Nil when all servers are idle.
func longestRunning(servers *ServerPool) *Server {
	var victim *Server
	for _, srv := range servers.Busy() {
		if victim == nil || shorterFirst(victim.Job, srv.Job) {
			victim = srv
		}
	}
	return victim
}

// RoundRobinDiscipline serves the FIFO head for at most Quantum ticks, then
// rotates the job to the tail if it still has work left.
type RoundRobinDiscipline struct {
	Quantum int64
}

func (r *RoundRobinDiscipline) Name() string            { return DisciplineRoundRobin }
func (r *RoundRobinDiscipline) NewReadyPool() ReadyPool { return NewFIFOQueue() }

func (r *RoundRobinDiscipline) OnArrival(_ *Job, _ SchedulingView) Decision { return NoDecision }

func (r *RoundRobinDiscipline) OnServerIdle(serverID int, view SchedulingView) Decision {
	return popHead(serverID, view)
}

// OnTick never preempts: Round-Robin only reshuffles at quantum boundaries,
// which the simulator handles when a burst ends.
func (r *RoundRobinDiscipline) OnTick(_ SchedulingView) Decision { return NoDecision }

func (r *RoundRobinDiscipline) BurstLength(job *Job) int64 {
	return min(r.Quantum, job.RemainingTime)
}

// Discipline names accepted by NewDiscipline.
const (
	DisciplineFCFS       = "fcfs"
	DisciplineSRTF       = "srtf"
	DisciplineRoundRobin = "rr"
)

// disciplineAliases maps accepted spellings to canonical discipline names.
var disciplineAliases = map[string]string{
	"":            DisciplineFCFS,
	"fcfs":        DisciplineFCFS,
	"srtf":        DisciplineSRTF,
	"sjf":         DisciplineSRTF,
	"rr":          DisciplineRoundRobin,
	"round-robin": DisciplineRoundRobin,
}

// CanonicalDiscipline returns the canonical name for name and whether it is recognized.
func CanonicalDiscipline(name string) (string, bool) {
	canonical, ok := disciplineAliases[name]
	return canonical, ok
}

// IsValidDiscipline returns true if name is a recognized discipline.
func IsValidDiscipline(name string) bool {
	_, ok := disciplineAliases[name]
	return ok
}

// DisciplineNames returns the canonical discipline names in a stable order.
func DisciplineNames() []string {
	seen := map[string]bool{}
	names := make([]string, 0, 3)
	for _, canonical := range disciplineAliases {
		if !seen[canonical] {
			seen[canonical] = true
			names = append(names, canonical)
		}
	}
	sort.Strings(names)
	return names
}

// NewDiscipline creates a Discipline by name.
// Valid names: "fcfs" (default), "srtf" (alias "sjf"), "rr" (alias "round-robin").
// Empty string defaults to FCFS (for CLI flag default compatibility).
// quantum is only used by Round-Robin.
// Panics on unrecognized names; Config.Validate reports them as errors first.
func NewDiscipline(name string, quantum int64) Discipline {
	canonical, ok := CanonicalDiscipline(name)
	if !ok {
		panic(fmt.Sprintf("unknown discipline %q", name))
	}
	switch canonical {
	case DisciplineFCFS:
		return &FCFSDiscipline{}
	case DisciplineSRTF:
		return &SRTFDiscipline{}
	case DisciplineRoundRobin:
		return &RoundRobinDiscipline{Quantum: quantum}
	default:
		panic(fmt.Sprintf("unhandled discipline %q", name))
	}
}
