package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	sim "github.com/tellersim/tellersim/sim"
	"github.com/tellersim/tellersim/sim/workload"
)

// buildConfig resolves the run configuration: defaults, then the --config
// file, then any flag the user set explicitly.
func buildConfig(o options, changed func(string) bool) (sim.Config, error) {
	cfg := sim.Config{
		Discipline:    o.discipline,
		NumServers:    o.numServers,
		Quantum:       o.quantum,
		QueueCapacity: o.queueCapacity,
		Horizon:       o.horizon,
		TraceLevel:    o.traceLevel,
	}
	if o.configPath != "" {
		fileCfg, err := sim.LoadConfig(o.configPath)
		if err != nil {
			return sim.Config{}, err
		}
		merged := *fileCfg
		if changed("discipline") {
			merged.Discipline = o.discipline
		}
		if changed("servers") {
			merged.NumServers = o.numServers
		}
		if changed("quantum") {
			merged.Quantum = o.quantum
		}
		if changed("queue-capacity") {
			merged.QueueCapacity = o.queueCapacity
		}
		if changed("horizon") {
			merged.Horizon = o.horizon
		}
		if changed("trace-level") {
			merged.TraceLevel = o.traceLevel
		}
		logrus.Infof("Loaded run config %s", o.configPath)
		cfg = merged
	}
	if canonical, ok := sim.CanonicalDiscipline(cfg.Discipline); ok {
		cfg.Discipline = canonical
	}
	if err := cfg.Validate(); err != nil {
		return sim.Config{}, err
	}
	return cfg, nil
}

// defaultWorkloadSpec is the reference bank: customers drift in every 1-2
// ticks and need 3-8 ticks at the counter.
func defaultWorkloadSpec(seed int64, numJobs int) *workload.WorkloadSpec {
	return &workload.WorkloadSpec{
		Seed:    seed,
		NumJobs: numJobs,
		Arrival: workload.ArrivalSpec{Process: "uniform", Params: map[string]float64{"min": 1, "max": 2}},
		Service: workload.DistSpec{Type: "uniform", Params: map[string]float64{"min": 3, "max": 8}},
	}
}

// loadWorkloadSpec returns the --workload file with --seed/--num-jobs
// overrides applied, or the reference bank workload when no file is given.
func loadWorkloadSpec(o options, changed func(string) bool) (*workload.WorkloadSpec, error) {
	if o.workloadPath == "" {
		return defaultWorkloadSpec(o.seed, o.numJobs), nil
	}
	spec, err := workload.LoadWorkloadSpec(o.workloadPath)
	if err != nil {
		return nil, err
	}
	if changed("seed") {
		logrus.Infof("CLI --seed %d overrides workload seed %d", o.seed, spec.Seed)
		spec.Seed = o.seed
	}
	if changed("num-jobs") {
		spec.NumJobs = o.numJobs
	}
	return spec, nil
}

// loadArrivals materializes the arrival list so that it can be replayed
// against one or several disciplines.
func loadArrivals(o options, changed func(string) bool) ([]sim.Arrival, error) {
	if o.arrivalsPath != "" {
		arrivals, err := workload.LoadArrivalsCSV(o.arrivalsPath)
		if err != nil {
			return nil, fmt.Errorf("replaying %s: %w", o.arrivalsPath, err)
		}
		return arrivals, nil
	}
	spec, err := loadWorkloadSpec(o, changed)
	if err != nil {
		return nil, err
	}
	return workload.GenerateArrivals(spec)
}
