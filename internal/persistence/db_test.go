package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/echosim/internal/telemetry"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleTables() *telemetry.Tables {
	tables := telemetry.New(2, 1)
	tables.AppendSummary(telemetry.SummaryRow{
		Time: 0, AttitudeMean: 0.1, AttitudeSD: 0.05, AttitudeMedian: 0.1,
		ConnectionMean: 0.5, ConnectionSD: 0.2, ConnectionMedian: 0.5,
	})
	tables.AppendTracker(0, []float64{0.2, -0.1})
	tables.AppendSummary(telemetry.SummaryRow{
		Time: 1, AttitudeMean: 0.12, AttitudeSD: 0.04, AttitudeMedian: 0.11,
		ConnectionMean: 0.55, ConnectionSD: 0.19, ConnectionMedian: 0.52,
	})
	tables.AppendTracker(1, []float64{0.25, -0.05})
	return tables
}

func TestSaveAndLoadRun(t *testing.T) {
	db := openTestDB(t)
	tables := sampleTables()

	const runID = "run-1"
	const cfgYAML = "nodes: 2\ntmax: 1\n"
	require.NoError(t, db.SaveRun(runID, cfgYAML, tables))

	summary, err := db.LoadSummary(runID)
	require.NoError(t, err)
	assert.Equal(t, tables.Summary(), summary)

	tracker, err := db.LoadTracker(runID)
	require.NoError(t, err)
	assert.Equal(t, tables.Tracker(), tracker)

	cfg, err := db.RunConfig(runID)
	require.NoError(t, err)
	assert.Equal(t, cfgYAML, cfg)
}

func TestRunsAreIsolated(t *testing.T) {
	db := openTestDB(t)
	tables := sampleTables()

	require.NoError(t, db.SaveRun("run-a", "a", tables))
	require.NoError(t, db.SaveRun("run-b", "b", tables))

	summary, err := db.LoadSummary("run-a")
	require.NoError(t, err)
	assert.Len(t, summary, 2)

	tracker, err := db.LoadTracker("run-b")
	require.NoError(t, err)
	assert.Len(t, tracker, 4)
}

func TestDuplicateRunIDFails(t *testing.T) {
	db := openTestDB(t)
	tables := sampleTables()

	require.NoError(t, db.SaveRun("run-1", "cfg", tables))
	assert.Error(t, db.SaveRun("run-1", "cfg", tables))
}

func TestLoadUnknownRun(t *testing.T) {
	db := openTestDB(t)

	summary, err := db.LoadSummary("missing")
	require.NoError(t, err)
	assert.Empty(t, summary)

	_, err = db.RunConfig("missing")
	assert.Error(t, err)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.SaveRun("run-1", "cfg", sampleTables()))
	require.NoError(t, db.Close())

	// Reopening migrates against the existing schema and sees old rows.
	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	summary, err := db.LoadSummary("run-1")
	require.NoError(t, err)
	assert.Len(t, summary, 2)
}
