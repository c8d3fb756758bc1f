package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tellersim/tellersim/sim/trace"
)

// Config holds the settings of one simulation run, loadable from a YAML file.
type Config struct {
	Discipline    string `yaml:"discipline"`     // "fcfs", "srtf" or "rr"
	NumServers    int    `yaml:"num_servers"`    // Number of tellers
	Quantum       int64  `yaml:"quantum"`        // Round-Robin time slice in ticks
	QueueCapacity int    `yaml:"queue_capacity"` // Max waiting jobs on arrival; 0 = unbounded
	Horizon       int64  `yaml:"horizon"`        // Last tick at which arrivals are admitted; 0 = no limit
	TraceLevel    string `yaml:"trace_level"`    // "none" or "decisions"
}

// DefaultConfig returns the settings of the reference bank: three tellers,
// a waiting area for ten customers and a 2-tick Round-Robin quantum.
func DefaultConfig() Config {
	return Config{
		Discipline:    DisciplineFCFS,
		NumServers:    3,
		Quantum:       2,
		QueueCapacity: 10,
		TraceLevel:    string(trace.TraceLevelNone),
	}
}

// Validate checks that the configuration describes a runnable simulation.
func (c Config) Validate() error {
	canonical, ok := CanonicalDiscipline(c.Discipline)
	if !ok {
		return fmt.Errorf("%w: unknown discipline %q", ErrInvalidConfiguration, c.Discipline)
	}
	if c.NumServers <= 0 {
		return fmt.Errorf("%w: num_servers must be positive, got %d", ErrInvalidConfiguration, c.NumServers)
	}
	if c.Quantum < 0 {
		return fmt.Errorf("%w: quantum must be non-negative, got %d", ErrInvalidConfiguration, c.Quantum)
	}
	if canonical == DisciplineRoundRobin && c.Quantum == 0 {
		return fmt.Errorf("%w: round-robin requires a positive quantum", ErrInvalidConfiguration)
	}
	if c.QueueCapacity < 0 {
		return fmt.Errorf("%w: queue_capacity must be non-negative, got %d", ErrInvalidConfiguration, c.QueueCapacity)
	}
	if c.Horizon < 0 {
		return fmt.Errorf("%w: horizon must be non-negative, got %d", ErrInvalidConfiguration, c.Horizon)
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfiguration, c.TraceLevel)
	}
	return nil
}

// LoadConfig reads and parses a YAML run configuration. Keys absent from
// the file keep their DefaultConfig values.
// Unknown fields are rejected so that typos surface as errors.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &cfg, nil
}
