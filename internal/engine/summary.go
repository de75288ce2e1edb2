// Per-tick aggregation into summary rows, and the post-tick invariant check.
package engine

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/talgya/echosim/internal/dynamics"
	"github.com/talgya/echosim/internal/telemetry"
)

// summarize aggregates the current state into one summary row. Attitude
// statistics run over sin(attitude); connection statistics run over the
// full matrix including the zero diagonal. Standard deviations are
// population, not sample.
func summarize(t int, conn *mat.Dense, att []float64) telemetry.SummaryRow {
	sins := make([]float64, len(att))
	for i, a := range att {
		sins[i] = math.Sin(a)
	}

	n, _ := conn.Dims()
	flat := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		flat = append(flat, conn.RawRowView(i)...)
	}

	return telemetry.SummaryRow{
		Time:             t,
		AttitudeMean:     stat.Mean(sins, nil),
		AttitudeSD:       stat.PopStdDev(sins, nil),
		AttitudeMedian:   median(sins),
		ConnectionMean:   stat.Mean(flat, nil),
		ConnectionSD:     stat.PopStdDev(flat, nil),
		ConnectionMedian: median(flat),
	}
}

// median computes the empirical median without mutating its argument.
func median(x []float64) float64 {
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// checkFinite verifies the post-tick invariant that every connection and
// attitude entry is finite.
func checkFinite(conn *mat.Dense, att []float64) error {
	n, c := conn.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			if v := conn.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: connection (%d,%d)=%v", dynamics.ErrNonFiniteInput, i, j, v)
			}
		}
	}
	for i, v := range att {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: attitude %d=%v", dynamics.ErrNonFiniteInput, i, v)
		}
	}
	return nil
}
