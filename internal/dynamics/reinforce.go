// Package dynamics implements the reinforcement rules that co-evolve tie
// strengths and attitudes, plus construction of the state they act on
// (connection matrix, attitude vector, interaction and difference matrices).
//
// Two rule families exist, selected at configuration time and never mixed:
// a pairwise family with five selectable formulas per update, and a
// continuous family driven by an adjacency exponent and a change speed.
// Their numeric behavior differs materially, so they are distinct
// strategies rather than variants of one formula.
// See design doc Section 4.
package dynamics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// epsilonFloor is the strict lower clamp for connection strengths when
// FloorEpsilon is selected; it keeps type2 attitude updates (which divide
// by the connection) away from exact zeros.
const epsilonFloor = 1e-20

// Updater applies one tick's reinforcement step, mutating conn and att in
// place. Every read comes from a snapshot taken on entry: the edge and
// attitude updates are simultaneous, and no pair observes another pair's
// in-tick mutation.
type Updater interface {
	Apply(conn *mat.Dense, att []float64, inter, diffs *mat.Dense) error
}

// EdgeRule selects the connection-strength update formula.
type EdgeRule int

const (
	EdgeType1 EdgeRule = iota + 1 // (|a_i|-|a_j|) * sin(d_ij): consensus-seeking, relaxing disturbance
	EdgeType2                     // (|a_i|-|a_j|) * sin(a_i+a_j)
	EdgeType3                     // |d_ij| * sin(a_i*a_j)
	EdgeType4                     // |d_ij| unscaled
	EdgeType5                     // -(|a_i|-|a_j|) * sin(d_ij): polarizing mirror of type1
)

// AttitudeRule selects the attitude update formula.
type AttitudeRule int

const (
	AttitudeType1 AttitudeRule = iota + 1 // c_ij * |d_ij| * -sin(a_i+a_j)
	AttitudeType2                         // |d_ij| / c_ij * sin(a_i+a_j), zero ties skipped
	AttitudeType3                         // c_ij * |d_ij| * sin(a_i*a_j)
	AttitudeType4                         // same handler as type3; tag kept for old configs
	AttitudeType5                         // c_ij * sin(a_i): partner-independent self reinforcement
)

// Floor selects the lower clamp applied to connections after an update.
type Floor int

const (
	FloorZero    Floor = iota // clamp to [0, 1]
	FloorEpsilon              // clamp to [1e-20, 1]
)

// Sign selects whether accumulated attitude deltas are added to or
// subtracted from the current attitude. Both conventions exist in the
// model's lineage; neither is privileged, so both stay selectable.
type Sign int

const (
	SignAdd Sign = iota
	SignSubtract
)

// ParseEdgeRule resolves a "type1".."type5" tag.
func ParseEdgeRule(s string) (EdgeRule, error) {
	r, err := parseTypeTag(s)
	return EdgeRule(r), err
}

// ParseAttitudeRule resolves a "type1".."type5" tag.
func ParseAttitudeRule(s string) (AttitudeRule, error) {
	r, err := parseTypeTag(s)
	return AttitudeRule(r), err
}

func parseTypeTag(s string) (int, error) {
	switch s {
	case "type1":
		return 1, nil
	case "type2":
		return 2, nil
	case "type3":
		return 3, nil
	case "type4":
		return 4, nil
	case "type5":
		return 5, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, s)
}

// PairwiseConfig selects the formulas and clamping policy of the pairwise
// rule family.
type PairwiseConfig struct {
	Edge     EdgeRule
	Attitude AttitudeRule
	Floor    Floor
	Sign     Sign
}

// edgeDeltaFn computes one pair's connection delta from the tick snapshot.
type edgeDeltaFn func(i, j int, att []float64, diffs *mat.Dense) float64

// attitudeDeltaFn computes one pair's attitude contribution from the tick
// snapshot. ok=false means the pair contributes nothing (type2's guard
// against dividing by a zero connection).
type attitudeDeltaFn func(i, j int, conn *mat.Dense, att []float64, diffs *mat.Dense) (delta float64, ok bool)

type pairwiseUpdater struct {
	edgeDelta edgeDeltaFn
	attDelta  attitudeDeltaFn
	floor     float64
	subtract  bool
}

// NewPairwiseUpdater resolves the configured tags to concrete handlers.
// Resolution happens once here; the per-pair loops never re-branch on tags.
func NewPairwiseUpdater(cfg PairwiseConfig) (Updater, error) {
	u := &pairwiseUpdater{
		floor:    0,
		subtract: cfg.Sign == SignSubtract,
	}
	if cfg.Floor == FloorEpsilon {
		u.floor = epsilonFloor
	}

	switch cfg.Edge {
	case EdgeType1:
		u.edgeDelta = func(i, j int, att []float64, d *mat.Dense) float64 {
			return (math.Abs(att[i]) - math.Abs(att[j])) * math.Sin(d.At(i, j))
		}
	case EdgeType2:
		u.edgeDelta = func(i, j int, att []float64, d *mat.Dense) float64 {
			return (math.Abs(att[i]) - math.Abs(att[j])) * math.Sin(att[i]+att[j])
		}
	case EdgeType3:
		u.edgeDelta = func(i, j int, att []float64, d *mat.Dense) float64 {
			return math.Abs(d.At(i, j)) * math.Sin(att[i]*att[j])
		}
	case EdgeType4:
		u.edgeDelta = func(i, j int, att []float64, d *mat.Dense) float64 {
			return math.Abs(d.At(i, j))
		}
	case EdgeType5:
		u.edgeDelta = func(i, j int, att []float64, d *mat.Dense) float64 {
			return -(math.Abs(att[i]) - math.Abs(att[j])) * math.Sin(d.At(i, j))
		}
	default:
		return nil, fmt.Errorf("%w: edge rule %d", ErrUnknownRule, cfg.Edge)
	}

	switch cfg.Attitude {
	case AttitudeType1:
		u.attDelta = func(i, j int, c *mat.Dense, att []float64, d *mat.Dense) (float64, bool) {
			return c.At(i, j) * math.Abs(d.At(i, j)) * -math.Sin(att[i]+att[j]), true
		}
	case AttitudeType2:
		u.attDelta = func(i, j int, c *mat.Dense, att []float64, d *mat.Dense) (float64, bool) {
			cij := c.At(i, j)
			if cij == 0 {
				// A dead tie contributes nothing rather than an infinity.
				return 0, false
			}
			return math.Abs(d.At(i, j)) / cij * math.Sin(att[i]+att[j]), true
		}
	case AttitudeType3, AttitudeType4:
		u.attDelta = func(i, j int, c *mat.Dense, att []float64, d *mat.Dense) (float64, bool) {
			return c.At(i, j) * math.Abs(d.At(i, j)) * math.Sin(att[i]*att[j]), true
		}
	case AttitudeType5:
		u.attDelta = func(i, j int, c *mat.Dense, att []float64, d *mat.Dense) (float64, bool) {
			return c.At(i, j) * math.Sin(att[i]), true
		}
	default:
		return nil, fmt.Errorf("%w: attitude rule %d", ErrUnknownRule, cfg.Attitude)
	}

	return u, nil
}

func (u *pairwiseUpdater) Apply(conn *mat.Dense, att []float64, inter, diffs *mat.Dense) error {
	if err := checkTickInputs(conn, att, inter); err != nil {
		return err
	}
	n := len(att)

	connSnap := mat.DenseCopyOf(conn)
	attSnap := append([]float64(nil), att...)

	// Edge update: deltas where an interaction fired, then clamp.
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || inter.At(i, j) != 1 {
				continue
			}
			conn.Set(i, j, connSnap.At(i, j)+u.edgeDelta(i, j, attSnap, diffs))
		}
	}
	clampMatrix(conn, u.floor, 1)

	// Attitude update from the same snapshot: the pre-update connections
	// and attitudes, never the values written above.
	for i := 0; i < n; i++ {
		var delta float64
		for j := 0; j < n; j++ {
			if i == j || inter.At(i, j) != 1 {
				continue
			}
			if d, ok := u.attDelta(i, j, connSnap, attSnap, diffs); ok {
				delta += d
			}
		}
		if u.subtract {
			delta = -delta
		}
		att[i] = clamp(attSnap[i]+delta, -AttitudeBound, AttitudeBound)
	}
	return nil
}

// checkTickInputs is the fail-fast precondition shared by both families:
// NaN or Inf anywhere in the tick's inputs aborts before any mutation.
func checkTickInputs(conn *mat.Dense, att []float64, inter *mat.Dense) error {
	if !matFinite(conn) {
		return fmt.Errorf("%w: connection matrix", ErrNonFiniteInput)
	}
	if !vecFinite(att) {
		return fmt.Errorf("%w: attitude vector", ErrNonFiniteInput)
	}
	if !matFinite(inter) {
		return fmt.Errorf("%w: interaction matrix", ErrNonFiniteInput)
	}
	return nil
}

// clampMatrix truncates every entry of m to [lo, hi].
func clampMatrix(m *mat.Dense, lo, hi float64) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, clamp(m.At(i, j), lo, hi))
		}
	}
}
