// Package topology builds the fixed social network a simulation starts from.
// Generators produce simple undirected lvlath graphs with vertex IDs
// "0".."n-1"; only the edge structure matters here, tie strengths are
// assigned later from the dense adjacency export.
// See design doc Section 3.
package topology

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/katalvlaran/lvlath/core"

	"github.com/talgya/echosim/internal/entropy"
)

// Sentinel errors for network construction.
var (
	// ErrUnknownKind indicates an unrecognized network kind.
	ErrUnknownKind = errors.New("topology: unknown network kind")

	// ErrInvalidParameter indicates a generation parameter outside the
	// generator's domain (n < 1, p outside [0,1], k >= n, m >= n, ...).
	ErrInvalidParameter = errors.New("topology: parameter out of domain")
)

// Kind names a supported network generator.
type Kind string

const (
	Complete            Kind = "complete"
	ErdosRenyi          Kind = "erdos_renyi"
	GnpRandom           Kind = "gnp_random" // alias of erdos_renyi, kept for older configs
	WattsStrogatz       Kind = "watts_strogatz"
	NewmanWattsStrogatz Kind = "newman_watts_strogatz"
	BarabasiAlbert      Kind = "barabasi_albert"
)

// ParseKind resolves a config tag to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Complete, ErdosRenyi, GnpRandom, WattsStrogatz, NewmanWattsStrogatz, BarabasiAlbert:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Config holds generation parameters. P, K and M are read only by the
// kinds that need them.
type Config struct {
	Kind Kind
	N    int     // number of nodes
	P    float64 // edge probability (erdos_renyi), rewire/shortcut probability (watts_strogatz family)
	K    int     // ring neighbors per node (watts_strogatz family)
	M    int     // edges attached per new node (barabasi_albert)
}

// Build generates the network described by cfg, drawing randomness from src.
// The returned graph is simple and undirected with exactly cfg.N vertices.
func Build(cfg Config, src *entropy.Source) (*core.Graph, error) {
	if cfg.N < 1 {
		return nil, fmt.Errorf("%w: n=%d, need n >= 1", ErrInvalidParameter, cfg.N)
	}

	switch cfg.Kind {
	case Complete:
		return complete(cfg.N)
	case ErdosRenyi, GnpRandom:
		if cfg.P < 0 || cfg.P > 1 {
			return nil, fmt.Errorf("%w: p=%v, need 0 <= p <= 1", ErrInvalidParameter, cfg.P)
		}
		return gnp(cfg.N, cfg.P, src)
	case WattsStrogatz:
		if err := validateRing(cfg.N, cfg.K, cfg.P); err != nil {
			return nil, err
		}
		return wattsStrogatz(cfg.N, cfg.K, cfg.P, src)
	case NewmanWattsStrogatz:
		if err := validateRing(cfg.N, cfg.K, cfg.P); err != nil {
			return nil, err
		}
		return newmanWattsStrogatz(cfg.N, cfg.K, cfg.P, src)
	case BarabasiAlbert:
		if cfg.M < 1 || cfg.M >= cfg.N {
			return nil, fmt.Errorf("%w: m=%d, need 1 <= m < n", ErrInvalidParameter, cfg.M)
		}
		return barabasiAlbert(cfg.N, cfg.M, src)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}

func validateRing(n, k int, p float64) error {
	if k < 0 || k >= n {
		return fmt.Errorf("%w: k=%d, need 0 <= k < n", ErrInvalidParameter, k)
	}
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: p=%v, need 0 <= p <= 1", ErrInvalidParameter, p)
	}
	return nil
}

// vertexID maps a node index to its lvlath vertex ID.
func vertexID(i int) string { return strconv.Itoa(i) }

// nodeIndex is the inverse of vertexID.
func nodeIndex(id string) (int, error) { return strconv.Atoi(id) }

// newGraph allocates an undirected graph with n isolated vertices.
func newGraph(n int) (*core.Graph, error) {
	g := core.NewGraph()
	for i := 0; i < n; i++ {
		if err := g.AddVertex(vertexID(i)); err != nil {
			return nil, fmt.Errorf("add vertex %d: %w", i, err)
		}
	}
	return g, nil
}

func addEdge(g *core.Graph, i, j int) error {
	if _, err := g.AddEdge(vertexID(i), vertexID(j), 0); err != nil {
		return fmt.Errorf("add edge %d-%d: %w", i, j, err)
	}
	return nil
}
