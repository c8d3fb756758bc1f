// Package trace provides decision-trace recording for scheduling analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// DecisionKind names a scheduling transition recorded in a trace.
type DecisionKind string

const (
	KindAdmit         DecisionKind = "admit"
	KindReject        DecisionKind = "reject"
	KindAssign        DecisionKind = "assign"
	KindPreempt       DecisionKind = "preempt"
	KindQuantumExpiry DecisionKind = "quantum-expiry"
	KindComplete      DecisionKind = "complete"
)

// NoServer marks records that do not involve a server (admit, reject).
const NoServer = -1

// DecisionRecord captures a single scheduling transition.
type DecisionRecord struct {
	Clock     int64
	Kind      DecisionKind
	JobID     int
	ServerID  int
	Remaining int64 // job's remaining service time right after the transition
}
