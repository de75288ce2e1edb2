package dynamics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// NewConnections derives the initial tie-strength matrix from a structural
// 0/1 adjacency matrix: pairs with an edge get neighborWeight, pairs
// without get nonNeighborWeight, the diagonal stays zero. A non-zero
// nonNeighborWeight makes every pair interact with some probability, which
// turns the effective interaction topology into a complete graph; that is
// intentional and occasionally what a study wants.
func NewConnections(adj *mat.Dense, neighborWeight, nonNeighborWeight float64) (*mat.Dense, error) {
	if !isFinite(neighborWeight) {
		return nil, fmt.Errorf("%w: neighbor_weight=%v", ErrInvalidWeight, neighborWeight)
	}
	if !isFinite(nonNeighborWeight) {
		return nil, fmt.Errorf("%w: non_neighbor_weight=%v", ErrInvalidWeight, nonNeighborWeight)
	}

	n, c := adj.Dims()
	if n != c {
		return nil, fmt.Errorf("%w: adjacency is %dx%d, want square", ErrInvalidConnectionMatrix, n, c)
	}

	conn := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if adj.At(i, j) != 0 {
				conn.Set(i, j, neighborWeight)
			} else {
				conn.Set(i, j, nonNeighborWeight)
			}
		}
	}
	return conn, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// matFinite reports whether every entry of m is finite.
func matFinite(m *mat.Dense) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !isFinite(m.At(i, j)) {
				return false
			}
		}
	}
	return true
}

// vecFinite reports whether every element of v is finite.
func vecFinite(v []float64) bool {
	for _, x := range v {
		if !isFinite(x) {
			return false
		}
	}
	return true
}
