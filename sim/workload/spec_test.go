package workload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWorkloadSpec_ValidYAML_LoadsCorrectly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workload.yaml")
	content := `
seed: 7
num_jobs: 50
arrival:
  process: uniform
  params:
    min: 1
    max: 5
service:
  type: uniform
  params:
    min: 1
    max: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	spec, err := LoadWorkloadSpec(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), spec.Seed)
	assert.Equal(t, 50, spec.NumJobs)
	assert.Equal(t, "uniform", spec.Arrival.Process)
	assert.Equal(t, 5.0, spec.Service.Params["max"])
	assert.NoError(t, spec.Validate())
}

func TestLoadWorkloadSpec_UnknownField_Rejected(t *testing.T) {
	// GIVEN a spec with a typo in a key
	path := filepath.Join(t.TempDir(), "workload.yaml")
	content := "seed: 1\nnum_jobz: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// WHEN loaded
	_, err := LoadWorkloadSpec(path)

	// THEN strict parsing reports it
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "num_jobz"), "error should name the bad field: %v", err)
}

func TestWorkloadSpec_Validate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WorkloadSpec)
	}{
		{"zero jobs", func(s *WorkloadSpec) { s.NumJobs = 0 }},
		{"negative first id", func(s *WorkloadSpec) { s.FirstID = -1 }},
		{"unknown process", func(s *WorkloadSpec) { s.Arrival.Process = "gamma" }},
		{"poisson without mean", func(s *WorkloadSpec) { s.Arrival.Params = nil }},
		{"uniform arrival inverted", func(s *WorkloadSpec) {
			s.Arrival = ArrivalSpec{Process: "uniform", Params: map[string]float64{"min": 5, "max": 1}}
		}},
		{"unknown service type", func(s *WorkloadSpec) { s.Service.Type = "pareto" }},
		{"uniform service below one", func(s *WorkloadSpec) { s.Service.Params["min"] = 0 }},
		{"exponential without mean", func(s *WorkloadSpec) { s.Service = DistSpec{Type: "exponential"} }},
		{"gaussian negative stddev", func(s *WorkloadSpec) {
			s.Service = DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 5, "std_dev": -1}}
		}},
		{"constant zero", func(s *WorkloadSpec) { s.Service = DistSpec{Type: "constant"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := bankSpec()
			tt.mutate(spec)
			assert.Error(t, spec.Validate())
		})
	}
}
