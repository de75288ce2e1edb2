// Package plotting renders a run's result tables to PNG files. It only
// reads finished tables; plot styling follows the convenience plots
// researchers use to eyeball consensus versus polarization.
package plotting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/talgya/echosim/internal/telemetry"
)

// InitialAttitudes renders a node-index scatter of the starting attitudes.
func InitialAttitudes(att []float64, path string) error {
	p := plot.New()
	p.Title.Text = "Initial attitudes"
	p.X.Label.Text = "node"
	p.Y.Label.Text = "attitude"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(att))
	for i, a := range att {
		pts[i].X = float64(i)
		pts[i].Y = a
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("initial attitudes scatter: %w", err)
	}
	p.Add(scatter)

	if err := p.Save(6*vg.Inch, 3*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// AttitudeEvolution renders one line per node over time from the tracker
// table.
func AttitudeEvolution(tracker []telemetry.TrackerRow, n int, path string) error {
	p := plot.New()
	p.Title.Text = "Attitude evolution"
	p.X.Label.Text = "time"
	p.Y.Label.Text = "attitude"
	p.Add(plotter.NewGrid())

	series := make([]plotter.XYs, n)
	for _, row := range tracker {
		series[row.Node] = append(series[row.Node], plotter.XY{
			X: float64(row.Time),
			Y: row.Attitude,
		})
	}
	for node, pts := range series {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("node %d line: %w", node, err)
		}
		line.Color = plotutil.Color(node)
		p.Add(line)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// SummarySeries renders the attitude and connection means over time.
func SummarySeries(summary []telemetry.SummaryRow, path string) error {
	p := plot.New()
	p.Title.Text = "Run summary"
	p.X.Label.Text = "time"
	p.Y.Label.Text = "mean"
	p.Add(plotter.NewGrid())

	attPts := make(plotter.XYs, len(summary))
	connPts := make(plotter.XYs, len(summary))
	for i, row := range summary {
		attPts[i] = plotter.XY{X: float64(row.Time), Y: row.AttitudeMean}
		connPts[i] = plotter.XY{X: float64(row.Time), Y: row.ConnectionMean}
	}

	if err := plotutil.AddLines(p, "attitude_mean", attPts, "connection_mean", connPts); err != nil {
		return fmt.Errorf("summary lines: %w", err)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
