package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate_Valid(t *testing.T) {
	tests := []Config{
		{Discipline: "fcfs", NumServers: 1},
		{Discipline: "", NumServers: 3, QueueCapacity: 10},
		{Discipline: "sjf", NumServers: 2, Horizon: 100, TraceLevel: "decisions"},
		{Discipline: "rr", NumServers: 2, Quantum: 5, TraceLevel: "none"},
	}
	for _, cfg := range tests {
		assert.NoError(t, cfg.Validate(), "%+v", cfg)
	}
}

func TestConfig_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown discipline", Config{Discipline: "lifo", NumServers: 1}},
		{"zero servers", Config{Discipline: "fcfs", NumServers: 0}},
		{"negative servers", Config{Discipline: "fcfs", NumServers: -2}},
		{"negative quantum", Config{Discipline: "fcfs", NumServers: 1, Quantum: -1}},
		{"round-robin without quantum", Config{Discipline: "rr", NumServers: 1}},
		{"negative capacity", Config{Discipline: "fcfs", NumServers: 1, QueueCapacity: -1}},
		{"negative horizon", Config{Discipline: "fcfs", NumServers: 1, Horizon: -5}},
		{"unknown trace level", Config{Discipline: "fcfs", NumServers: 1, TraceLevel: "verbose"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	// GIVEN a run config file
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := `
discipline: rr
num_servers: 3
quantum: 4
queue_capacity: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// WHEN loaded
	cfg, err := LoadConfig(path)

	// THEN every field is populated and the config is runnable
	require.NoError(t, err)
	assert.Equal(t, Config{Discipline: "rr", NumServers: 3, Quantum: 4, QueueCapacity: 10, TraceLevel: "none"}, *cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_PartialFile_KeepsDefaults(t *testing.T) {
	// GIVEN a file that only picks the discipline
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("discipline: srtf\n"), 0o644))

	// WHEN loaded
	cfg, err := LoadConfig(path)

	// THEN everything else is the reference bank
	require.NoError(t, err)
	want := DefaultConfig()
	want.Discipline = "srtf"
	assert.Equal(t, want, *cfg)
}

func TestDefaultConfig_IsValidForEveryDiscipline(t *testing.T) {
	for _, name := range DisciplineNames() {
		cfg := DefaultConfig()
		cfg.Discipline = name
		assert.NoError(t, cfg.Validate(), name)
	}
}

func TestLoadConfig_UnknownKey_Rejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("discipline: fcfs\nnum_tellers: 3\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "num_tellers")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
