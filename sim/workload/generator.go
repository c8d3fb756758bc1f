package workload

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tellersim/tellersim/sim"
)

// Generator is a seeded synthetic ArrivalStream: customers arrive with
// sampled gaps and sampled service demands, numbered sequentially.
type Generator struct {
	spec     WorkloadSpec
	arrivals ArrivalSampler
	demands  DemandSampler

	emitted int
	clock   int64
}

// NewGenerator validates spec and builds a Generator.
// Arrival gaps and service demands draw from separate RNG subsystems.
func NewGenerator(spec *WorkloadSpec) (*Generator, error) {
	if spec == nil {
		return nil, fmt.Errorf("workload spec is nil")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload spec: %w", err)
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	g := &Generator{
		spec:     *spec,
		arrivals: NewArrivalSampler(spec.Arrival, rng.ForSubsystem(sim.SubsystemArrivals)),
		demands:  NewDemandSampler(spec.Service, rng.ForSubsystem(sim.SubsystemService)),
	}
	if g.spec.FirstID == 0 {
		g.spec.FirstID = 1
	}
	return g, nil
}

// Next returns the next synthetic arrival. The first customer arrives at tick 0.
func (g *Generator) Next() (sim.Arrival, bool, error) {
	if g.emitted >= g.spec.NumJobs {
		return sim.Arrival{}, false, nil
	}
	if g.emitted > 0 {
		g.clock += g.arrivals.SampleIAT()
	}
	a := sim.Arrival{
		JobID:         g.spec.FirstID + g.emitted,
		ArrivalTime:   g.clock,
		ServiceDemand: g.demands.Sample(),
	}
	g.emitted++
	logrus.Tracef("Generated job %d at %d ticks (demand %d)", a.JobID, a.ArrivalTime, a.ServiceDemand)
	return a, true, nil
}

// GenerateArrivals materializes the full arrival sequence of spec so that it
// can be replayed against several disciplines.
func GenerateArrivals(spec *WorkloadSpec) ([]sim.Arrival, error) {
	g, err := NewGenerator(spec)
	if err != nil {
		return nil, err
	}
	return Collect(g)
}

// Collect drains a stream into a slice.
func Collect(stream sim.ArrivalStream) ([]sim.Arrival, error) {
	var out []sim.Arrival
	for {
		a, ok, err := stream.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, a)
	}
}
