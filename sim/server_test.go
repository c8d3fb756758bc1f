package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerPool_AllIdleInIDOrder(t *testing.T) {
	p := NewServerPool(3)
	require.Equal(t, 3, p.Len())
	for i, s := range p.Idle() {
		assert.Equal(t, i, s.ID)
	}
	assert.Empty(t, p.Busy())
	assert.Nil(t, p.Server(3))
	assert.Nil(t, p.Server(-1))
}

func TestServerPool_AssignChargeRelease(t *testing.T) {
	// GIVEN a job assigned to server 1 at tick 4
	p := NewServerPool(2)
	job := NewJob(7, 2, 10)
	srv := p.Server(1)
	require.NoError(t, p.assign(srv, job, 4))

	// THEN the job is running there and its start is recorded
	assert.Equal(t, ServerBusy, srv.State)
	assert.Equal(t, StateRunning, job.State)
	assert.Equal(t, 1, job.ServerID)
	assert.Equal(t, int64(4), job.StartTime)
	assert.Equal(t, 1, p.BusyCount())
	assert.Equal(t, int64(7), srv.RunningRemaining(7))

	// WHEN charged to tick 6 and released at tick 9
	require.NoError(t, srv.charge(6))
	assert.Equal(t, int64(8), job.RemainingTime)
	released, err := p.release(srv, 9)
	require.NoError(t, err)

	// THEN remaining time dropped by exactly the served ticks and one burst is logged
	assert.Same(t, job, released)
	assert.Equal(t, int64(5), job.RemainingTime)
	assert.Equal(t, []Burst{{ServerID: 1, Start: 4, End: 9}}, job.Bursts)
	assert.Equal(t, int64(5), srv.BusyTime)
	assert.Equal(t, ServerIdle, srv.State)
	assert.Nil(t, srv.Job)
}

func TestServerPool_StartTimeSetOnce(t *testing.T) {
	// GIVEN a job served, released and served again
	p := NewServerPool(2)
	job := NewJob(1, 0, 10)
	require.NoError(t, p.assign(p.Server(0), job, 1))
	_, err := p.release(p.Server(0), 3)
	require.NoError(t, err)
	job.State = StateWaiting
	require.NoError(t, p.assign(p.Server(1), job, 6))

	// THEN StartTime still reflects the first service
	assert.Equal(t, int64(1), job.StartTime)
	assert.Equal(t, 1, job.ServerID)
}

func TestServerPool_AssignViolations(t *testing.T) {
	p := NewServerPool(2)
	job := NewJob(1, 0, 5)
	require.NoError(t, p.assign(p.Server(0), job, 0))

	tests := []struct {
		name string
		srv  *Server
		job  *Job
	}{
		{"busy server", p.Server(0), NewJob(2, 0, 5)},
		{"job already held", p.Server(1), job},
		{"completed job", p.Server(1), &Job{ID: 3, State: StateCompleted}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.assign(tt.srv, tt.job, 1)
			assert.True(t, errors.Is(err, ErrInvariantViolation), "got %v", err)
		})
	}
}

func TestServer_ChargeBeyondRemaining_IsInvariantViolation(t *testing.T) {
	p := NewServerPool(1)
	srv := p.Server(0)
	require.NoError(t, p.assign(srv, NewJob(1, 0, 3), 0))
	assert.ErrorIs(t, srv.charge(4), ErrInvariantViolation)

	_, err := p.release(p.Server(0), 3)
	require.NoError(t, err)
	_, err = p.release(p.Server(0), 3)
	assert.ErrorIs(t, err, ErrInvariantViolation, "releasing an idle server")
}

func TestServerPool_ZeroLengthBurstNotLogged(t *testing.T) {
	// GIVEN a job preempted at the same tick it was assigned
	p := NewServerPool(1)
	job := NewJob(1, 0, 3)
	require.NoError(t, p.assign(p.Server(0), job, 2))
	_, err := p.release(p.Server(0), 2)
	require.NoError(t, err)

	// THEN no empty burst is recorded
	assert.Empty(t, job.Bursts)
}
