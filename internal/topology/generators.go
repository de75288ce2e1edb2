// Network generators. Each produces a simple undirected graph over n
// vertices; randomness comes exclusively from the passed Source so that a
// seeded run regenerates the same topology.
package topology

import (
	"github.com/katalvlaran/lvlath/core"

	"github.com/talgya/echosim/internal/entropy"
)

// complete connects every pair of vertices.
func complete(n int) (*core.Graph, error) {
	g, err := newGraph(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if err := addEdge(g, i, j); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// gnp includes each pair independently with probability p (Erdős–Rényi G(n,p)).
func gnp(n int, p float64, src *entropy.Source) (*core.Graph, error) {
	g, err := newGraph(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if src.Float64() < p {
				if err := addEdge(g, i, j); err != nil {
					return nil, err
				}
			}
		}
	}
	return g, nil
}

// ringLattice joins every vertex with its k nearest neighbors on a ring
// (k/2 on each side; an odd k joins k-1 neighbors). Returns the graph and
// the created edge IDs keyed by (source, offset) for later rewiring.
func ringLattice(n, k int) (*core.Graph, [][]string, error) {
	g, err := newGraph(n)
	if err != nil {
		return nil, nil, err
	}
	half := k / 2
	ids := make([][]string, n)
	for i := 0; i < n; i++ {
		ids[i] = make([]string, half)
	}
	for j := 1; j <= half; j++ {
		for i := 0; i < n; i++ {
			eid, err := g.AddEdge(vertexID(i), vertexID((i+j)%n), 0)
			if err != nil {
				return nil, nil, err
			}
			ids[i][j-1] = eid
		}
	}
	return g, ids, nil
}

// wattsStrogatz builds a ring lattice and rewires each lattice edge with
// probability p to a uniformly chosen endpoint, avoiding self-loops and
// duplicate edges (saturated vertices keep their edge).
func wattsStrogatz(n, k int, p float64, src *entropy.Source) (*core.Graph, error) {
	g, ids, err := ringLattice(n, k)
	if err != nil {
		return nil, err
	}
	half := k / 2
	for j := 1; j <= half; j++ {
		for i := 0; i < n; i++ {
			if src.Float64() >= p {
				continue
			}
			w, ok := randomNonNeighbor(g, i, n, src)
			if !ok {
				continue
			}
			if err := g.RemoveEdge(ids[i][j-1]); err != nil {
				return nil, err
			}
			if err := addEdge(g, i, w); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// newmanWattsStrogatz builds a ring lattice and, for each lattice edge,
// adds a random shortcut with probability p. No edges are removed.
func newmanWattsStrogatz(n, k int, p float64, src *entropy.Source) (*core.Graph, error) {
	g, _, err := ringLattice(n, k)
	if err != nil {
		return nil, err
	}
	half := k / 2
	for j := 1; j <= half; j++ {
		for i := 0; i < n; i++ {
			if src.Float64() >= p {
				continue
			}
			w, ok := randomNonNeighbor(g, i, n, src)
			if !ok {
				continue
			}
			if err := addEdge(g, i, w); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// randomNonNeighbor picks a uniform vertex w that is neither i nor already
// adjacent to i. Reports false when vertex i is saturated.
func randomNonNeighbor(g *core.Graph, i, n int, src *entropy.Source) (int, bool) {
	_, _, deg, err := g.Degree(vertexID(i))
	if err != nil || deg >= n-1 {
		return 0, false
	}
	for {
		w := src.Intn(n)
		if w == i || g.HasEdge(vertexID(i), vertexID(w)) {
			continue
		}
		return w, true
	}
}

// barabasiAlbert grows a graph by preferential attachment: each new vertex
// attaches to m existing vertices chosen proportionally to their degree.
func barabasiAlbert(n, m int, src *entropy.Source) (*core.Graph, error) {
	g, err := newGraph(n)
	if err != nil {
		return nil, err
	}

	// Seed targets are the first m vertices; repeated collects endpoints so
	// that drawing uniformly from it realizes degree-proportional choice.
	targets := make([]int, m)
	for i := range targets {
		targets[i] = i
	}
	var repeated []int

	for source := m; source < n; source++ {
		for _, t := range targets {
			if err := addEdge(g, source, t); err != nil {
				return nil, err
			}
		}
		repeated = append(repeated, targets...)
		for i := 0; i < m; i++ {
			repeated = append(repeated, source)
		}
		targets = distinctSample(repeated, m, src)
	}
	return g, nil
}

// distinctSample draws m distinct values from pool by uniform index draws.
func distinctSample(pool []int, m int, src *entropy.Source) []int {
	seen := make(map[int]struct{}, m)
	out := make([]int, 0, m)
	for len(out) < m {
		v := pool[src.Intn(len(pool))]
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
