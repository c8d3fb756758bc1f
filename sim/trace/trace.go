package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every admission and server transition.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
	RunID string
}

// SimulationTrace collects decision records during one simulation run.
type SimulationTrace struct {
	Config    TraceConfig
	Decisions []DecisionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:    config,
		Decisions: make([]DecisionRecord, 0),
	}
}

// Record appends a decision record. Safe to call on a nil trace.
func (st *SimulationTrace) Record(record DecisionRecord) {
	if st == nil {
		return
	}
	st.Decisions = append(st.Decisions, record)
}

// ForJob returns the records of a single job in recording order.
func (st *SimulationTrace) ForJob(jobID int) []DecisionRecord {
	if st == nil {
		return nil
	}
	var out []DecisionRecord
	for _, r := range st.Decisions {
		if r.JobID == jobID {
			out = append(out, r)
		}
	}
	return out
}
