package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/talgya/echosim/internal/dynamics"
	"github.com/talgya/echosim/internal/entropy"
)

// newTestDriver wires a complete-graph pairwise run for n nodes.
func newTestDriver(t *testing.T, n, tmax int, seed uint64) *Driver {
	t.Helper()

	src := entropy.NewSource(seed)
	adj := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				adj.Set(i, j, 1)
			}
		}
	}
	conn, err := dynamics.NewConnections(adj, 0.5, 0)
	require.NoError(t, err)

	att, err := dynamics.SampleAttitudes(src, n, dynamics.DistNormal, 0, 0.3)
	require.NoError(t, err)

	updater, err := dynamics.NewPairwiseUpdater(dynamics.PairwiseConfig{
		Edge:     dynamics.EdgeType1,
		Attitude: dynamics.AttitudeType1,
		Floor:    dynamics.FloorZero,
		Sign:     dynamics.SignAdd,
	})
	require.NoError(t, err)

	d, err := NewDriver(Config{TMax: tmax, Symmetric: true}, src, updater, conn, att)
	require.NoError(t, err)
	return d
}

func TestNewDriverRejectsShapeMismatch(t *testing.T) {
	src := entropy.NewSource(1)
	updater := dynamics.NewContinuousUpdater(dynamics.DefaultContinuousConfig())

	_, err := NewDriver(Config{TMax: 5}, src, updater, mat.NewDense(3, 3, nil), []float64{0, 0})
	assert.Error(t, err)
}

func TestRunRowCountsAndOrder(t *testing.T) {
	const n, tmax = 6, 10
	d := newTestDriver(t, n, tmax, 77)

	tables, err := d.Run()
	require.NoError(t, err)
	require.NotNil(t, tables)

	summary := tables.Summary()
	require.Len(t, summary, tmax+1)
	for i, row := range summary {
		assert.Equal(t, i, row.Time, "summary row %d", i)
	}

	tracker := tables.Tracker()
	require.Len(t, tracker, n*(tmax+1))
	for i, row := range tracker {
		assert.Equal(t, i/n, row.Time, "tracker row %d", i)
		assert.Equal(t, i%n, row.Node, "tracker row %d", i)
	}

	assert.Equal(t, tmax, d.Tick())
}

func TestRunDeterminism(t *testing.T) {
	a := newTestDriver(t, 8, 20, 123)
	b := newTestDriver(t, 8, 20, 123)

	ta, err := a.Run()
	require.NoError(t, err)
	tb, err := b.Run()
	require.NoError(t, err)

	assert.Equal(t, ta.Summary(), tb.Summary())
	assert.Equal(t, ta.Tracker(), tb.Tracker())
	assert.True(t, mat.Equal(a.Connections(), b.Connections()))
	assert.Equal(t, a.Attitudes(), b.Attitudes())
}

func TestRunKeepsStateBounds(t *testing.T) {
	d := newTestDriver(t, 10, 50, 321)

	tables, err := d.Run()
	require.NoError(t, err)

	conn := d.Connections()
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			v := conn.At(i, j)
			assert.GreaterOrEqual(t, v, 0.0, "(%d,%d)", i, j)
			assert.LessOrEqual(t, v, 1.0, "(%d,%d)", i, j)
		}
	}
	for _, row := range tables.Tracker() {
		assert.GreaterOrEqual(t, row.Attitude, -dynamics.AttitudeBound)
		assert.LessOrEqual(t, row.Attitude, dynamics.AttitudeBound)
	}
}

func TestRunRejectsInvalidTimeHorizon(t *testing.T) {
	d := newTestDriver(t, 4, 5, 1)
	d.cfg.TMax = 0

	tables, err := d.Run()
	assert.Nil(t, tables)
	assert.ErrorIs(t, err, ErrInvalidTimeHorizon)
}

func TestRunAbortsOnSingularity(t *testing.T) {
	// The continuous family with a negative exponent cannot survive an
	// attitude at exactly zero; the run must stop after the seed row with
	// the tables it has.
	const n = 4
	src := entropy.NewSource(5)
	conn := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				conn.Set(i, j, 1)
			}
		}
	}
	att := make([]float64, n)
	updater := dynamics.NewContinuousUpdater(dynamics.DefaultContinuousConfig())

	d, err := NewDriver(Config{TMax: 10, Symmetric: true}, src, updater, conn, att)
	require.NoError(t, err)

	tables, err := d.Run()
	require.ErrorIs(t, err, dynamics.ErrNonFiniteInput)
	require.NotNil(t, tables)
	assert.Len(t, tables.Summary(), 1)
	assert.Len(t, tables.Tracker(), n)
	assert.Equal(t, 0, d.Tick())
}

func TestSummarizeKnownValues(t *testing.T) {
	conn := mat.NewDense(3, 3, []float64{
		0, 1, 1,
		1, 0, 1,
		1, 1, 0,
	})
	row := summarize(7, conn, []float64{0, 0, 0})

	assert.Equal(t, 7, row.Time)
	assert.Zero(t, row.AttitudeMean)
	assert.Zero(t, row.AttitudeSD)
	assert.Zero(t, row.AttitudeMedian)

	// Six ones and three diagonal zeros.
	assert.InDelta(t, 2.0/3.0, row.ConnectionMean, 1e-12)
	assert.InDelta(t, math.Sqrt(2)/3, row.ConnectionSD, 1e-12)
	assert.Equal(t, 1.0, row.ConnectionMedian)
}

func TestSummarizeProjectsAttitudes(t *testing.T) {
	conn := mat.NewDense(2, 2, nil)
	row := summarize(0, conn, []float64{dynamics.AttitudeBound, -dynamics.AttitudeBound})

	// sin projects the bounds to +1 and -1; they cancel in the mean.
	assert.InDelta(t, 0, row.AttitudeMean, 1e-12)
	assert.InDelta(t, 1, row.AttitudeSD, 1e-12)
}

func TestCheckFinite(t *testing.T) {
	conn := mat.NewDense(2, 2, nil)
	att := []float64{0.1, 0.2}
	require.NoError(t, checkFinite(conn, att))

	conn.Set(0, 1, math.Inf(-1))
	assert.ErrorIs(t, checkFinite(conn, att), dynamics.ErrNonFiniteInput)

	conn.Set(0, 1, 0)
	att[1] = math.NaN()
	assert.ErrorIs(t, checkFinite(conn, att), dynamics.ErrNonFiniteInput)
}
