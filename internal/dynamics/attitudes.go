package dynamics

import (
	"fmt"
	"math"

	"github.com/talgya/echosim/internal/entropy"
)

// AttitudeBound is the half-turn limit on attitudes; every attitude lives
// in [-AttitudeBound, AttitudeBound].
const AttitudeBound = math.Pi / 2

// Distribution names an attitude-sampling distribution.
type Distribution string

const (
	DistNormal   Distribution = "normal"
	DistLaplace  Distribution = "laplace"
	DistVonMises Distribution = "vonmises"
	DistUniform  Distribution = "uniform"
)

// ParseDistribution resolves a config tag to a Distribution.
func ParseDistribution(s string) (Distribution, error) {
	switch Distribution(s) {
	case DistNormal, DistLaplace, DistVonMises, DistUniform:
		return Distribution(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDistribution, s)
}

// SampleAttitudes draws n initial attitudes from the named distribution.
// The parameter pair (a, b) means (location, scale) for normal and laplace,
// (mean direction, concentration) for vonmises, and (low, high) for uniform.
// Samples are hard-clipped to [-pi/2, pi/2]; a wide-scale distribution
// therefore piles mass on the boundaries rather than resampling.
func SampleAttitudes(src *entropy.Source, n int, dist Distribution, a, b float64) ([]float64, error) {
	var att []float64
	switch dist {
	case DistNormal:
		att = src.Normal(a, b, n)
	case DistLaplace:
		att = src.Laplace(a, b, n)
	case DistVonMises:
		att = src.VonMises(a, b, n)
	case DistUniform:
		att = src.Uniform(a, b, n)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDistribution, dist)
	}

	for i, v := range att {
		att[i] = clamp(v, -AttitudeBound, AttitudeBound)
	}
	return att, nil
}

// clamp truncates v to [lo, hi]. NaN passes through and is caught by the
// finiteness checks around each tick.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
