package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// WorkloadSpec is the top-level synthetic workload configuration.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Seed    int64       `yaml:"seed"`
	NumJobs int         `yaml:"num_jobs"`
	FirstID int         `yaml:"first_id,omitempty"` // ID of the first generated job (default 1)
	Arrival ArrivalSpec `yaml:"arrival"`
	Service DistSpec    `yaml:"service"`
}

// ArrivalSpec configures the inter-arrival time process, in ticks.
type ArrivalSpec struct {
	Process string             `yaml:"process"`
	Params  map[string]float64 `yaml:"params,omitempty"`
}

// DistSpec parameterizes a service demand distribution, in ticks.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// Valid value registries.
var (
	validArrivalProcesses = map[string]bool{
		"poisson": true, "uniform": true, "constant": true,
	}
	validDistTypes = map[string]bool{
		"uniform": true, "exponential": true, "gaussian": true, "constant": true,
	}
)

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *WorkloadSpec) Validate() error {
	if s.NumJobs <= 0 {
		return fmt.Errorf("num_jobs must be positive, got %d", s.NumJobs)
	}
	if s.FirstID < 0 {
		return fmt.Errorf("first_id must be non-negative, got %d", s.FirstID)
	}
	if !validArrivalProcesses[s.Arrival.Process] {
		return fmt.Errorf("unknown arrival process %q; valid: poisson, uniform, constant", s.Arrival.Process)
	}
	if err := validateParams("arrival", s.Arrival.Params); err != nil {
		return err
	}
	switch s.Arrival.Process {
	case "poisson":
		if err := validateFinitePositive("arrival.params.mean", s.Arrival.Params["mean"]); err != nil {
			return err
		}
	case "uniform":
		if err := validateRange("arrival.params", s.Arrival.Params, 0); err != nil {
			return err
		}
	case "constant":
		if s.Arrival.Params["value"] < 0 {
			return fmt.Errorf("arrival.params.value must be non-negative, got %f", s.Arrival.Params["value"])
		}
	}
	return validateDistSpec("service", &s.Service)
}

func validateDistSpec(prefix string, d *DistSpec) error {
	if !validDistTypes[d.Type] {
		return fmt.Errorf("%s: unknown distribution type %q; valid: uniform, exponential, gaussian, constant", prefix, d.Type)
	}
	if err := validateParams(prefix, d.Params); err != nil {
		return err
	}
	switch d.Type {
	case "uniform":
		return validateRange(prefix+".params", d.Params, 1)
	case "exponential":
		return validateFinitePositive(prefix+".params.mean", d.Params["mean"])
	case "gaussian":
		if err := validateFinitePositive(prefix+".params.mean", d.Params["mean"]); err != nil {
			return err
		}
		if d.Params["std_dev"] < 0 {
			return fmt.Errorf("%s.params.std_dev must be non-negative, got %f", prefix, d.Params["std_dev"])
		}
	case "constant":
		return validateFinitePositive(prefix+".params.value", d.Params["value"])
	}
	return nil
}

func validateParams(prefix string, params map[string]float64) error {
	for name, val := range params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%s.params.%s must be a finite number, got %f", prefix, name, val)
		}
	}
	return nil
}

// validateRange checks min/max params with floor ≤ min ≤ max.
func validateRange(prefix string, params map[string]float64, floor float64) error {
	lo, hi := params["min"], params["max"]
	if lo < floor {
		return fmt.Errorf("%s.min must be at least %g, got %f", prefix, floor, lo)
	}
	if hi < lo {
		return fmt.Errorf("%s.max (%f) must not be below min (%f)", prefix, hi, lo)
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}
