package dynamics

import "gonum.org/v1/gonum/mat"

// AttitudeDiffs builds the pairwise difference matrix D[i][j] = att[i] - att[j].
// Antisymmetric by construction with a zero diagonal; recomputed at the
// start of every tick before any update rule runs.
func AttitudeDiffs(att []float64) *mat.Dense {
	n := len(att)
	diffs := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			diffs.Set(i, j, att[i]-att[j])
		}
	}
	return diffs
}
