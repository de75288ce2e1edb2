// Von Mises sampling. gonum's distuv carries no von Mises distribution, so
// the Best–Fisher (1979) rejection sampler is implemented here over the same
// source the distuv draws use.
package entropy

import "math"

// smallKappa is the concentration below which the distribution is treated
// as uniform on the circle; the rejection constants degenerate there.
const smallKappa = 1e-8

// VonMises draws n samples from the von Mises distribution with mean
// direction mu and concentration kappa. Results lie in (mu-pi, mu+pi].
func (s *Source) VonMises(mu, kappa float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.vonMises(mu, kappa)
	}
	return out
}

func (s *Source) vonMises(mu, kappa float64) float64 {
	if kappa <= smallKappa {
		return mu + (2*s.rng.Float64()-1)*math.Pi
	}

	tau := 1 + math.Sqrt(1+4*kappa*kappa)
	rho := (tau - math.Sqrt(2*tau)) / (2 * kappa)
	r := (1 + rho*rho) / (2 * rho)

	for {
		z := math.Cos(math.Pi * s.rng.Float64())
		f := (1 + r*z) / (r + z)
		c := kappa * (r - f)

		u := s.rng.Float64()
		if c*(2-c)-u > 0 || math.Log(c/u)+1-c >= 0 {
			theta := math.Acos(f)
			if s.rng.Float64() < 0.5 {
				theta = -theta
			}
			return mu + theta
		}
	}
}
