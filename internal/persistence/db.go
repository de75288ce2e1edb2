// Package persistence provides SQLite-based storage for finished
// simulation runs. It is a pure consumer of the result tables: nothing
// here touches engine state, and nothing is written until a run completes.
// See design doc Section 3.
package persistence

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/echosim/internal/telemetry"
)

// DB wraps a SQLite connection for result storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		config TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS summary (
		run_id TEXT NOT NULL,
		time INTEGER NOT NULL,
		attitude_mean REAL NOT NULL,
		attitude_sd REAL NOT NULL,
		attitude_median REAL NOT NULL,
		connection_mean REAL NOT NULL,
		connection_sd REAL NOT NULL,
		connection_median REAL NOT NULL,
		PRIMARY KEY (run_id, time)
	);

	CREATE TABLE IF NOT EXISTS tracker (
		run_id TEXT NOT NULL,
		time INTEGER NOT NULL,
		node INTEGER NOT NULL,
		attitude REAL NOT NULL,
		PRIMARY KEY (run_id, time, node)
	);

	CREATE INDEX IF NOT EXISTS idx_tracker_node ON tracker(run_id, node);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun writes one finished run and its tables in a single transaction.
func (db *DB) SaveRun(runID, configYAML string, tables *telemetry.Tables) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		`INSERT INTO runs (id, created_at, config) VALUES (?, ?, ?)`,
		runID, createdAt, configYAML,
	); err != nil {
		return fmt.Errorf("insert run %s: %w", runID, err)
	}

	sumStmt, err := tx.Preparex(`INSERT INTO summary
		(run_id, time, attitude_mean, attitude_sd, attitude_median,
		 connection_mean, connection_sd, connection_median)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer sumStmt.Close()

	for _, row := range tables.Summary() {
		if _, err := sumStmt.Exec(
			runID, row.Time, row.AttitudeMean, row.AttitudeSD, row.AttitudeMedian,
			row.ConnectionMean, row.ConnectionSD, row.ConnectionMedian,
		); err != nil {
			return fmt.Errorf("insert summary t=%d: %w", row.Time, err)
		}
	}

	trkStmt, err := tx.Preparex(`INSERT INTO tracker
		(run_id, time, node, attitude) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer trkStmt.Close()

	for _, row := range tables.Tracker() {
		if _, err := trkStmt.Exec(runID, row.Time, row.Node, row.Attitude); err != nil {
			return fmt.Errorf("insert tracker t=%d node=%d: %w", row.Time, row.Node, err)
		}
	}

	return tx.Commit()
}

// LoadSummary reads a run's summary rows in tick order.
func (db *DB) LoadSummary(runID string) ([]telemetry.SummaryRow, error) {
	var rows []telemetry.SummaryRow
	err := db.conn.Select(&rows,
		`SELECT time, attitude_mean, attitude_sd, attitude_median,
		        connection_mean, connection_sd, connection_median
		 FROM summary WHERE run_id = ? ORDER BY time`, runID)
	if err != nil {
		return nil, fmt.Errorf("load summary %s: %w", runID, err)
	}
	return rows, nil
}

// LoadTracker reads a run's per-node rows in (tick, node) order.
func (db *DB) LoadTracker(runID string) ([]telemetry.TrackerRow, error) {
	var rows []telemetry.TrackerRow
	err := db.conn.Select(&rows,
		`SELECT time, node, attitude FROM tracker
		 WHERE run_id = ? ORDER BY time, node`, runID)
	if err != nil {
		return nil, fmt.Errorf("load tracker %s: %w", runID, err)
	}
	return rows, nil
}

// RunConfig reads back the YAML a run was started with.
func (db *DB) RunConfig(runID string) (string, error) {
	var cfg string
	if err := db.conn.Get(&cfg, `SELECT config FROM runs WHERE id = ?`, runID); err != nil {
		return "", fmt.Errorf("load run %s: %w", runID, err)
	}
	return cfg, nil
}
