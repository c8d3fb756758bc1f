// Package testutil provides shared test infrastructure for the tellersim
// kernel: hand-checked golden scenarios and assertion helpers.
package testutil

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gopkg.in/yaml.v3"
)

// ScenarioFile represents the structure of testdata/scenarios.yaml.
type ScenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario is one fixed arrival list with its expected schedule.
type Scenario struct {
	Name     string            `yaml:"name"`
	Config   ScenarioConfig    `yaml:"config"`
	Arrivals []ScenarioArrival `yaml:"arrivals"`
	Expected ScenarioExpected  `yaml:"expected"`
}

// ScenarioConfig mirrors the run settings a scenario needs.
type ScenarioConfig struct {
	Discipline    string `yaml:"discipline"`
	NumServers    int    `yaml:"num_servers"`
	Quantum       int64  `yaml:"quantum"`
	QueueCapacity int    `yaml:"queue_capacity"`
}

// ScenarioArrival is one input tuple.
type ScenarioArrival struct {
	JobID         int   `yaml:"job_id"`
	ArrivalTime   int64 `yaml:"arrival_time"`
	ServiceDemand int64 `yaml:"service_demand"`
}

// ScenarioExpected holds the exact outcome of a scenario.
type ScenarioExpected struct {
	// Completions in completion order (EndTime, then ID).
	Completions     []ExpectedCompletion `yaml:"completions"`
	RejectedIDs     []int                `yaml:"rejected_ids"`
	Preemptions     int                  `yaml:"preemptions"`
	QuantumExpiries int                  `yaml:"quantum_expiries"`
	Makespan        int64                `yaml:"makespan"`
	AvgTurnaround   float64              `yaml:"avg_turnaround"`
	AvgWaiting      float64              `yaml:"avg_waiting"`
}

// ExpectedCompletion is the schedule of one completed job.
// Bursts are [start, end) pairs; nil means unchecked.
type ExpectedCompletion struct {
	JobID    int        `yaml:"job_id"`
	ServerID int        `yaml:"server_id"`
	Start    int64      `yaml:"start"`
	End      int64      `yaml:"end"`
	Bursts   [][2]int64 `yaml:"bursts"`
}

// LoadScenarios loads the golden scenarios from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadScenarios(t *testing.T) *ScenarioFile {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "scenarios.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read scenarios: %v", err)
	}

	var file ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		t.Fatalf("Failed to parse scenarios: %v", err)
	}
	if len(file.Scenarios) == 0 {
		t.Fatal("Scenario file contains no scenarios")
	}
	return &file
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
