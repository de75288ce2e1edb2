package dynamics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/talgya/echosim/internal/entropy"
)

// SampleInteractions draws the binary interaction matrix for one tick:
// I[i][j] = 1 iff a fresh uniform draw in [0,1) is at most conn[i][j].
// With symmetric true the result is replaced by max(I, I^T), so a contact
// exists whenever either direction would have fired. Each call is an
// independent draw; nothing correlates across ticks.
//
// Connection entries are Bernoulli probabilities, so any entry outside
// [0,1] (or non-finite) fails with ErrInvalidConnectionMatrix before any
// sampling happens.
func SampleInteractions(src *entropy.Source, conn *mat.Dense, symmetric bool) (*mat.Dense, error) {
	n, c := conn.Dims()
	if n != c {
		return nil, fmt.Errorf("%w: %dx%d, want square", ErrInvalidConnectionMatrix, n, c)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v := conn.At(i, j); !isFinite(v) || v < 0 || v > 1 {
				return nil, fmt.Errorf("%w: entry (%d,%d)=%v", ErrInvalidConnectionMatrix, i, j, v)
			}
		}
	}

	inter := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if src.Float64() <= conn.At(i, j) {
				inter.Set(i, j, 1)
			}
		}
	}

	if symmetric {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if inter.At(i, j) == 1 || inter.At(j, i) == 1 {
					inter.Set(i, j, 1)
					inter.Set(j, i, 1)
				}
			}
		}
	}
	return inter, nil
}
