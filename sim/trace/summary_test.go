package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalDecisions != 0 {
		t.Errorf("expected 0 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.AdmittedCount != 0 || summary.RejectedCount != 0 {
		t.Error("expected 0 admitted and rejected")
	}
	if len(summary.ServerLoad) != 0 {
		t.Error("expected empty server load")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalDecisions != 0 || summary.ServerLoad == nil {
		t.Errorf("unexpected summary for nil trace: %+v", summary)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with one rejection, a preemption and a quantum expiry
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.Record(DecisionRecord{Kind: KindAdmit, JobID: 1, ServerID: NoServer})
	st.Record(DecisionRecord{Kind: KindAdmit, JobID: 2, ServerID: NoServer})
	st.Record(DecisionRecord{Kind: KindReject, JobID: 3, ServerID: NoServer})
	st.Record(DecisionRecord{Kind: KindAssign, JobID: 1, ServerID: 0})
	st.Record(DecisionRecord{Kind: KindPreempt, JobID: 1, ServerID: 0})
	st.Record(DecisionRecord{Kind: KindAssign, JobID: 2, ServerID: 0})
	st.Record(DecisionRecord{Kind: KindAssign, JobID: 1, ServerID: 1})
	st.Record(DecisionRecord{Kind: KindQuantumExpiry, JobID: 1, ServerID: 1})
	st.Record(DecisionRecord{Kind: KindComplete, JobID: 2, ServerID: 0})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalDecisions != 9 {
		t.Errorf("expected 9 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.AdmittedCount != 2 {
		t.Errorf("expected 2 admitted, got %d", summary.AdmittedCount)
	}
	if summary.RejectedCount != 1 {
		t.Errorf("expected 1 rejected, got %d", summary.RejectedCount)
	}
	if summary.Assignments != 3 || summary.Preemptions != 1 || summary.QuantumExpiries != 1 || summary.Completions != 1 {
		t.Errorf("unexpected transition counts: %+v", summary)
	}
	if summary.ServerLoad[0] != 2 || summary.ServerLoad[1] != 1 {
		t.Errorf("unexpected server load: %v", summary.ServerLoad)
	}
}
