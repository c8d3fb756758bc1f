package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions  int
	AdmittedCount   int
	RejectedCount   int
	Assignments     int
	Preemptions     int
	QuantumExpiries int
	Completions     int
	ServerLoad      map[int]int // server ID → number of assignments
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ServerLoad: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Decisions)
	for _, r := range st.Decisions {
		switch r.Kind {
		case KindAdmit:
			summary.AdmittedCount++
		case KindReject:
			summary.RejectedCount++
		case KindAssign:
			summary.Assignments++
			summary.ServerLoad[r.ServerID]++
		case KindPreempt:
			summary.Preemptions++
		case KindQuantumExpiry:
			summary.QuantumExpiries++
		case KindComplete:
			summary.Completions++
		}
	}

	return summary
}
