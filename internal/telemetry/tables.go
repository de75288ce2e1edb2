// Package telemetry accumulates a run's two result tables: one summary row
// per tick and one attitude row per node per tick. Both are append-only;
// the driver writes them during the run and consumers (persistence,
// plotting) only read the finished slices.
package telemetry

// SummaryRow aggregates network state at one tick. Attitude columns
// aggregate sin(attitude), projecting the half-turn range onto [-1, 1];
// connection columns run over the full matrix including the zero diagonal.
type SummaryRow struct {
	Time             int     `db:"time"`
	AttitudeMean     float64 `db:"attitude_mean"`
	AttitudeSD       float64 `db:"attitude_sd"`
	AttitudeMedian   float64 `db:"attitude_median"`
	ConnectionMean   float64 `db:"connection_mean"`
	ConnectionSD     float64 `db:"connection_sd"`
	ConnectionMedian float64 `db:"connection_median"`
}

// TrackerRow records one node's attitude at one tick.
type TrackerRow struct {
	Time     int     `db:"time"`
	Node     int     `db:"node"`
	Attitude float64 `db:"attitude"`
}

// Tables holds the accumulating result tables for one run.
type Tables struct {
	summary []SummaryRow
	tracker []TrackerRow
}

// New preallocates tables for n nodes over tmax ticks plus the seed row.
func New(n, tmax int) *Tables {
	return &Tables{
		summary: make([]SummaryRow, 0, tmax+1),
		tracker: make([]TrackerRow, 0, n*(tmax+1)),
	}
}

// AppendSummary adds one summary row.
func (t *Tables) AppendSummary(row SummaryRow) {
	t.summary = append(t.summary, row)
}

// AppendTracker adds one row per node for the given tick.
func (t *Tables) AppendTracker(time int, att []float64) {
	for node, a := range att {
		t.tracker = append(t.tracker, TrackerRow{Time: time, Node: node, Attitude: a})
	}
}

// Summary returns the accumulated summary rows in tick order.
func (t *Tables) Summary() []SummaryRow { return t.summary }

// Tracker returns the accumulated per-node rows in (tick, node) order.
func (t *Tables) Tracker() []TrackerRow { return t.tracker }
