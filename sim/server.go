package sim

import "fmt"

// ServerState is the state of a single server (teller).
type ServerState string

const (
	ServerIdle ServerState = "idle"
	ServerBusy ServerState = "busy"
)

// Server serves at most one job at a time.
type Server struct {
	ID    int
	State ServerState
	Job   *Job // Job being served; nil when idle

	burstStart int64  // Tick at which the current burst began
	syncedAt   int64  // Tick up to which Job.RemainingTime has been charged
	burstSeq   uint64 // Incremented on every assignment; stale BurstEndEvents carry an old value

	JobsServed int   // Jobs completed on this server
	BusyTime   int64 // Total ticks spent serving
}

// ServerPool is the fixed set of servers of one run.
type ServerPool struct {
	servers []*Server
	holder  map[int]int // job ID → server ID, for the single-holder invariant
}

// NewServerPool creates n idle servers with IDs 0..n-1.
func NewServerPool(n int) *ServerPool {
	p := &ServerPool{
		servers: make([]*Server, n),
		holder:  make(map[int]int),
	}
	for i := range p.servers {
		p.servers[i] = &Server{ID: i, State: ServerIdle}
	}
	return p
}

// Len returns the number of servers.
func (p *ServerPool) Len() int {
	return len(p.servers)
}

// Server returns the server with the given ID, or nil.
func (p *ServerPool) Server(id int) *Server {
	if id < 0 || id >= len(p.servers) {
		return nil
	}
	return p.servers[id]
}

// Servers returns all servers in ID order.
func (p *ServerPool) Servers() []*Server {
	return p.servers
}

// Idle returns the idle servers in ID order.
func (p *ServerPool) Idle() []*Server {
	idle := make([]*Server, 0, len(p.servers))
	for _, s := range p.servers {
		if s.State == ServerIdle {
			idle = append(idle, s)
		}
	}
	return idle
}

// Busy returns the busy servers in ID order.
func (p *ServerPool) Busy() []*Server {
	busy := make([]*Server, 0, len(p.servers))
	for _, s := range p.servers {
		if s.State == ServerBusy {
			busy = append(busy, s)
		}
	}
	return busy
}

// BusyCount returns the number of busy servers.
func (p *ServerPool) BusyCount() int {
	n := 0
	for _, s := range p.servers {
		if s.State == ServerBusy {
			n++
		}
	}
	return n
}

// assign puts job on an idle server at time now.
func (p *ServerPool) assign(s *Server, job *Job, now int64) error {
	if s.State != ServerIdle || s.Job != nil {
		return fmt.Errorf("%w: assign job %d to busy server %d", ErrInvariantViolation, job.ID, s.ID)
	}
	if other, held := p.holder[job.ID]; held {
		return fmt.Errorf("%w: job %d already held by server %d", ErrInvariantViolation, job.ID, other)
	}
	if job.State != StateWaiting {
		return fmt.Errorf("%w: assign job %d in state %s", ErrInvariantViolation, job.ID, job.State)
	}
	s.State = ServerBusy
	s.Job = job
	s.burstStart = now
	s.syncedAt = now
	s.burstSeq++
	p.holder[job.ID] = s.ID

	job.State = StateRunning
	job.ServerID = s.ID
	if !job.Started {
		job.Started = true
		job.StartTime = now
	}
	return nil
}

// charge deducts the service consumed since the last charge from the
// server's job. Deductions are exact integer differences of clock readings.
func (s *Server) charge(now int64) error {
	if s.Job == nil {
		return nil
	}
	consumed := now - s.syncedAt
	if consumed < 0 || consumed > s.Job.RemainingTime {
		return fmt.Errorf("%w: server %d charging %d ticks to job %d with %d remaining",
			ErrInvariantViolation, s.ID, consumed, s.Job.ID, s.Job.RemainingTime)
	}
	s.Job.RemainingTime -= consumed
	s.BusyTime += consumed
	s.syncedAt = now
	return nil
}

// release ends the current burst at time now and returns the server to idle.
// The caller decides where the job goes next.
func (p *ServerPool) release(s *Server, now int64) (*Job, error) {
	if s.State != ServerBusy || s.Job == nil {
		return nil, fmt.Errorf("%w: release idle server %d", ErrInvariantViolation, s.ID)
	}
	if err := s.charge(now); err != nil {
		return nil, err
	}
	job := s.Job
	if now > s.burstStart {
		job.Bursts = append(job.Bursts, Burst{ServerID: s.ID, Start: s.burstStart, End: now})
	}
	delete(p.holder, job.ID)
	s.Job = nil
	s.State = ServerIdle
	s.burstSeq++
	return job, nil
}

// RunningRemaining returns the up-to-date remaining time of the job on s
// as of now, without mutating any state.
func (s *Server) RunningRemaining(now int64) int64 {
	if s.Job == nil {
		return 0
	}
	return s.Job.RemainingTime - (now - s.syncedAt)
}
