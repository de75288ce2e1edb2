// Dense adjacency export: the bridge between the lvlath graph and the
// matrix-based dynamics layer.
package topology

import (
	"fmt"

	"github.com/katalvlaran/lvlath/core"
	"gonum.org/v1/gonum/mat"
)

// DenseAdjacency exports the structural adjacency of g as an n-by-n 0/1
// matrix. The matrix is symmetric with a zero diagonal; vertex IDs map to
// row/column indices directly.
func DenseAdjacency(g *core.Graph, n int) (*mat.Dense, error) {
	if got := g.VertexCount(); got != n {
		return nil, fmt.Errorf("%w: graph has %d vertices, want %d", ErrInvalidParameter, got, n)
	}

	adj := mat.NewDense(n, n, nil)
	for _, e := range g.Edges() {
		i, err := nodeIndex(e.From)
		if err != nil {
			return nil, fmt.Errorf("vertex %q: %w", e.From, err)
		}
		j, err := nodeIndex(e.To)
		if err != nil {
			return nil, fmt.Errorf("vertex %q: %w", e.To, err)
		}
		if i < 0 || i >= n || j < 0 || j >= n {
			return nil, fmt.Errorf("%w: edge %s-%s outside 0..%d", ErrInvalidParameter, e.From, e.To, n-1)
		}
		adj.Set(i, j, 1)
		adj.Set(j, i, 1)
	}
	return adj, nil
}
