package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscipline_ValidNames_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
	}{
		{"", DisciplineFCFS},
		{"fcfs", DisciplineFCFS},
		{"srtf", DisciplineSRTF},
		{"sjf", DisciplineSRTF},
		{"rr", DisciplineRoundRobin},
		{"round-robin", DisciplineRoundRobin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDiscipline(tt.name, 2)
			assert.Equal(t, tt.wantName, d.Name())
		})
	}
}

func TestNewDiscipline_UnknownName_Panics(t *testing.T) {
	assert.False(t, IsValidDiscipline("lottery"))
	assert.Panics(t, func() { NewDiscipline("lottery", 0) })
}

func TestDisciplineNames_SortedCanonical(t *testing.T) {
	assert.Equal(t, []string{"fcfs", "rr", "srtf"}, DisciplineNames())
}

func TestDiscipline_ReadyPoolOrdering(t *testing.T) {
	assert.IsType(t, &FIFOQueue{}, NewDiscipline("fcfs", 0).NewReadyPool())
	assert.IsType(t, &RemainingTimeHeap{}, NewDiscipline("srtf", 0).NewReadyPool())
	assert.IsType(t, &FIFOQueue{}, NewDiscipline("rr", 3).NewReadyPool())
}

func TestRoundRobin_BurstLength_CappedByQuantum(t *testing.T) {
	rr := &RoundRobinDiscipline{Quantum: 4}
	assert.Equal(t, int64(4), rr.BurstLength(NewJob(1, 0, 10)))
	assert.Equal(t, int64(3), rr.BurstLength(NewJob(2, 0, 3)))

	fcfs := &FCFSDiscipline{}
	assert.Equal(t, int64(10), fcfs.BurstLength(NewJob(3, 0, 10)))
}

// busyView returns a view with one busy server per job.
func busyView(t *testing.T, d Discipline, jobs ...*Job) SchedulingView {
	t.Helper()
	servers := NewServerPool(len(jobs))
	for i, j := range jobs {
		require.NoError(t, servers.assign(servers.Server(i), j, 0))
	}
	return SchedulingView{Now: 0, Pool: d.NewReadyPool(), Servers: servers}
}

func TestSRTF_OnArrival_PreemptsLongestRunning(t *testing.T) {
	// GIVEN two busy servers running jobs with 6 and 9 ticks left
	d := &SRTFDiscipline{}
	view := busyView(t, d, NewJob(1, 0, 6), NewJob(2, 0, 9))

	// WHEN a 2-tick job arrives
	got := d.OnArrival(NewJob(3, 0, 2), view)

	// THEN the server holding the 9-tick job is preempted
	assert.Equal(t, DecisionPreempt, got.Kind)
	assert.Equal(t, 1, got.ServerID)
	assert.Equal(t, 2, got.Job.ID)
}

func TestSRTF_OnArrival_EqualRemaining_NoPreemption(t *testing.T) {
	d := &SRTFDiscipline{}
	view := busyView(t, d, NewJob(1, 0, 4))
	assert.Equal(t, DecisionNone, d.OnArrival(NewJob(2, 1, 4), view).Kind)
}

func TestSRTF_OnArrival_IdleOrFinishingServer_NoPreemption(t *testing.T) {
	d := &SRTFDiscipline{}

	// GIVEN an idle server
	servers := NewServerPool(2)
	require.NoError(t, servers.assign(servers.Server(0), NewJob(1, 0, 9), 0))
	view := SchedulingView{Pool: d.NewReadyPool(), Servers: servers}
	assert.Equal(t, DecisionNone, d.OnArrival(NewJob(2, 0, 1), view).Kind)

	// GIVEN a server whose job finishes at this instant
	finishing := NewJob(3, 0, 5)
	view = busyView(t, d, NewJob(4, 0, 9), finishing)
	finishing.RemainingTime = 0
	assert.Equal(t, DecisionNone, d.OnArrival(NewJob(5, 0, 1), view).Kind)
}

func TestSRTF_OnTick_ComparesPoolHeadWithVictim(t *testing.T) {
	d := &SRTFDiscipline{}
	view := busyView(t, d, NewJob(1, 0, 5))

	// Empty pool: nothing to do
	assert.Equal(t, DecisionNone, d.OnTick(view).Kind)

	// Longer waiting job: nothing to do
	view.Pool.Push(NewJob(2, 0, 8))
	assert.Equal(t, DecisionNone, d.OnTick(view).Kind)

	// Shorter waiting job: preempt
	view.Pool.Push(NewJob(3, 0, 1))
	got := d.OnTick(view)
	assert.Equal(t, DecisionPreempt, got.Kind)
	assert.Equal(t, 0, got.ServerID)
}

func TestDisciplines_OnServerIdle_PopsHead(t *testing.T) {
	for _, name := range DisciplineNames() {
		t.Run(name, func(t *testing.T) {
			d := NewDiscipline(name, 2)
			view := SchedulingView{Pool: d.NewReadyPool(), Servers: NewServerPool(1)}
			assert.Equal(t, DecisionNone, d.OnServerIdle(0, view).Kind, "empty pool")

			view.Pool.Push(NewJob(1, 0, 5))
			got := d.OnServerIdle(0, view)
			assert.Equal(t, DecisionAssign, got.Kind)
			assert.Equal(t, 1, got.Job.ID)
			assert.True(t, view.Pool.IsEmpty())
		})
	}
}

func TestFCFSAndRoundRobin_NeverPreempt(t *testing.T) {
	for _, d := range []Discipline{&FCFSDiscipline{}, &RoundRobinDiscipline{Quantum: 1}} {
		view := busyView(t, d, NewJob(1, 0, 100))
		view.Pool.Push(NewJob(2, 0, 1))
		assert.Equal(t, DecisionNone, d.OnArrival(NewJob(3, 0, 1), view).Kind, d.Name())
		assert.Equal(t, DecisionNone, d.OnTick(view).Kind, d.Name())
	}
}
