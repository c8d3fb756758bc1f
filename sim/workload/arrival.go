package workload

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// ArrivalSampler generates inter-arrival gaps for the customer stream.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival gap in ticks.
	// Always returns a non-negative value; 0 means a simultaneous arrival.
	SampleIAT() int64
}

// PoissonSampler generates exponentially-distributed inter-arrival gaps (CV=1).
type PoissonSampler struct {
	dist distuv.Exponential
}

func (s *PoissonSampler) SampleIAT() int64 {
	return roundNonNegative(s.dist.Rand())
}

// UniformArrivalSampler draws gaps uniformly from [min, max] ticks,
// like a teller queue whose customers drift in at random intervals.
type UniformArrivalSampler struct {
	dist distuv.Uniform
}

func (s *UniformArrivalSampler) SampleIAT() int64 {
	return roundNonNegative(s.dist.Rand())
}

// ConstantArrivalSampler produces evenly spaced arrivals.
type ConstantArrivalSampler struct {
	gap int64
}

func (s *ConstantArrivalSampler) SampleIAT() int64 {
	return s.gap
}

// NewArrivalSampler creates an ArrivalSampler from a validated spec.
// rng must be dedicated to arrivals so service sampling cannot perturb it.
func NewArrivalSampler(spec ArrivalSpec, rng *rand.Rand) ArrivalSampler {
	switch spec.Process {
	case "uniform":
		if spec.Params["min"] == spec.Params["max"] {
			return &ConstantArrivalSampler{gap: roundNonNegative(spec.Params["min"])}
		}
		return &UniformArrivalSampler{dist: distuv.Uniform{Min: spec.Params["min"], Max: spec.Params["max"], Src: rng}}
	case "constant":
		return &ConstantArrivalSampler{gap: roundNonNegative(spec.Params["value"])}
	default:
		return &PoissonSampler{dist: distuv.Exponential{Rate: 1 / spec.Params["mean"], Src: rng}}
	}
}

func roundNonNegative(v float64) int64 {
	if v <= 0 {
		return 0
	}
	return int64(math.Round(v))
}
