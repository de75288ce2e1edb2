package dynamics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Defaults for the continuous rule family.
const (
	DefaultAlpha = -1.0 // adjacency exponent
	DefaultBeta  = 1e-3 // attitude change speed
)

// ContinuousConfig parameterizes the continuous rule family:
//
//	dc[i][j] = I[i][j] * sin(d[i][j])
//	da[i]    = beta * sum_j a[i]^alpha * I[i][j] * sin(d[i][j])
//
// A negative alpha has a singularity at a[i] = 0: the power blows up and
// the driver's finiteness check aborts the run rather than carrying NaN
// forward. That is inherent to the formula, not a defect to paper over.
type ContinuousConfig struct {
	Alpha float64
	Beta  float64
}

// DefaultContinuousConfig returns the family's canonical parameters.
func DefaultContinuousConfig() ContinuousConfig {
	return ContinuousConfig{Alpha: DefaultAlpha, Beta: DefaultBeta}
}

type continuousUpdater struct {
	alpha float64
	beta  float64
}

// NewContinuousUpdater builds the continuous-family strategy.
func NewContinuousUpdater(cfg ContinuousConfig) Updater {
	return &continuousUpdater{alpha: cfg.Alpha, beta: cfg.Beta}
}

func (u *continuousUpdater) Apply(conn *mat.Dense, att []float64, inter, diffs *mat.Dense) error {
	if err := checkTickInputs(conn, att, inter); err != nil {
		return err
	}
	n := len(att)

	connSnap := mat.DenseCopyOf(conn)
	attSnap := append([]float64(nil), att...)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			conn.Set(i, j, connSnap.At(i, j)+inter.At(i, j)*math.Sin(diffs.At(i, j)))
		}
	}
	clampMatrix(conn, 0, 1)

	for i := 0; i < n; i++ {
		scale := math.Pow(attSnap[i], u.alpha)
		var sum float64
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			sum += scale * inter.At(i, j) * math.Sin(diffs.At(i, j))
		}
		att[i] = clamp(attSnap[i]+u.beta*sum, -AttitudeBound, AttitudeBound)
	}
	return nil
}
