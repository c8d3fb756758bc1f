package workload

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DemandSampler generates service demands.
type DemandSampler interface {
	// Sample returns a positive service demand in ticks (>= 1).
	Sample() int64
}

// UniformDemandSampler draws demands uniformly from [min, max].
type UniformDemandSampler struct {
	dist distuv.Uniform
}

func (s *UniformDemandSampler) Sample() int64 {
	return roundPositive(s.dist.Rand())
}

// ExponentialDemandSampler produces exponentially-distributed demands.
type ExponentialDemandSampler struct {
	dist distuv.Exponential
}

func (s *ExponentialDemandSampler) Sample() int64 {
	return roundPositive(s.dist.Rand())
}

// GaussianDemandSampler produces clamped Gaussian demands.
type GaussianDemandSampler struct {
	dist     distuv.Normal
	min, max float64
}

func (s *GaussianDemandSampler) Sample() int64 {
	val := s.dist.Rand()
	if s.max > 0 {
		val = math.Min(s.max, val)
	}
	return roundPositive(math.Max(s.min, val))
}

// ConstantDemandSampler always returns the same demand.
type ConstantDemandSampler struct {
	value int64
}

func (s *ConstantDemandSampler) Sample() int64 {
	return s.value
}

// NewDemandSampler creates a DemandSampler from a validated DistSpec.
func NewDemandSampler(spec DistSpec, rng *rand.Rand) DemandSampler {
	p := spec.Params
	switch spec.Type {
	case "uniform":
		if p["min"] == p["max"] {
			return &ConstantDemandSampler{value: roundPositive(p["min"])}
		}
		return &UniformDemandSampler{dist: distuv.Uniform{Min: p["min"], Max: p["max"], Src: rng}}
	case "exponential":
		return &ExponentialDemandSampler{dist: distuv.Exponential{Rate: 1 / p["mean"], Src: rng}}
	case "gaussian":
		if p["std_dev"] == 0 {
			return &ConstantDemandSampler{value: roundPositive(p["mean"])}
		}
		return &GaussianDemandSampler{
			dist: distuv.Normal{Mu: p["mean"], Sigma: p["std_dev"], Src: rng},
			min:  p["min"],
			max:  p["max"],
		}
	default:
		return &ConstantDemandSampler{value: roundPositive(p["value"])}
	}
}

func roundPositive(v float64) int64 {
	r := int64(math.Round(v))
	if r < 1 {
		return 1
	}
	return r
}
