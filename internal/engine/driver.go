// Package engine provides the tick-based simulation driver: it owns the
// mutable connection matrix and attitude vector for a run's duration and
// executes the fixed per-tick sequence (difference recompute, interaction
// sample, edge update, attitude update, telemetry append).
// See design doc Section 3.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/mat"

	"github.com/talgya/echosim/internal/dynamics"
	"github.com/talgya/echosim/internal/entropy"
	"github.com/talgya/echosim/internal/telemetry"
)

// ErrInvalidTimeHorizon indicates a run requested with tmax < 1.
var ErrInvalidTimeHorizon = errors.New("engine: tmax must be at least 1")

// Config holds the driver's run parameters.
type Config struct {
	TMax      int  // number of ticks to simulate
	Symmetric bool // symmetric interaction mode (contacts are reciprocated)
	LogEvery  int  // ticks between progress lines; 0 disables progress logging
}

// Driver runs one simulation. It takes exclusive ownership of the
// connection matrix and attitude vector passed at construction; nothing
// else may read or write them until Run returns.
type Driver struct {
	cfg     Config
	src     *entropy.Source
	updater dynamics.Updater

	conn *mat.Dense
	att  []float64
	tick int
}

// NewDriver wires a driver from its collaborators and initial state.
func NewDriver(cfg Config, src *entropy.Source, updater dynamics.Updater, conn *mat.Dense, att []float64) (*Driver, error) {
	n, c := conn.Dims()
	if n != c || n != len(att) {
		return nil, fmt.Errorf("engine: connection matrix is %dx%d for %d attitudes", n, c, len(att))
	}
	return &Driver{cfg: cfg, src: src, updater: updater, conn: conn, att: att}, nil
}

// Run executes the simulation for cfg.TMax ticks and returns the result
// tables. Both tables are seeded with a t=0 row for the initial state, so
// a completed run holds tmax+1 summary rows and n*(tmax+1) tracker rows.
//
// On error the tables are returned alongside it, reflecting the state as
// of the last fully completed tick; no partial tick is ever recorded.
func (d *Driver) Run() (*telemetry.Tables, error) {
	if d.cfg.TMax < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTimeHorizon, d.cfg.TMax)
	}
	n := len(d.att)
	tables := telemetry.New(n, d.cfg.TMax)
	d.record(tables, 0)

	slog.Info("simulation started", "nodes", n, "tmax", d.cfg.TMax, "symmetric", d.cfg.Symmetric)

	for t := 1; t <= d.cfg.TMax; t++ {
		if err := d.step(t); err != nil {
			return tables, err
		}
		d.record(tables, t)

		if d.cfg.LogEvery > 0 && t%d.cfg.LogEvery == 0 {
			last := tables.Summary()[len(tables.Summary())-1]
			slog.Info("progress",
				"tick", humanize.Comma(int64(t)),
				"attitude_mean", fmt.Sprintf("%.4f", last.AttitudeMean),
				"attitude_sd", fmt.Sprintf("%.4f", last.AttitudeSD),
				"connection_mean", fmt.Sprintf("%.4f", last.ConnectionMean),
			)
		}
	}

	slog.Info("simulation finished", "ticks", d.cfg.TMax)
	return tables, nil
}

// step advances the state by one tick: difference recompute, interaction
// sample, both reinforcement updates, then the post-tick invariant check.
func (d *Driver) step(t int) error {
	diffs := dynamics.AttitudeDiffs(d.att)

	inter, err := dynamics.SampleInteractions(d.src, d.conn, d.cfg.Symmetric)
	if err != nil {
		return fmt.Errorf("tick %d: %w", t, err)
	}

	if err := d.updater.Apply(d.conn, d.att, inter, diffs); err != nil {
		return fmt.Errorf("tick %d: %w", t, err)
	}

	// Every entry must leave the tick finite; a breach is fatal, never
	// silently tolerated.
	if err := checkFinite(d.conn, d.att); err != nil {
		return fmt.Errorf("tick %d: %w", t, err)
	}

	d.tick = t
	return nil
}

// record appends the summary row and the n tracker rows for tick t.
func (d *Driver) record(tables *telemetry.Tables, t int) {
	tables.AppendSummary(summarize(t, d.conn, d.att))
	tables.AppendTracker(t, d.att)
}

// Tick returns the most recently completed tick.
func (d *Driver) Tick() int { return d.tick }

// Connections exposes the connection matrix after a run. Callers must not
// touch it while Run is executing.
func (d *Driver) Connections() *mat.Dense { return d.conn }

// Attitudes exposes the attitude vector after a run.
func (d *Driver) Attitudes() []float64 { return d.att }
