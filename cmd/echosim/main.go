// Command echosim runs one attitude-reinforcement simulation: it builds
// the network and initial state from a config file, drives the tick loop,
// and hands the finished tables to storage and plotting.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/echosim/internal/config"
	"github.com/talgya/echosim/internal/dynamics"
	"github.com/talgya/echosim/internal/engine"
	"github.com/talgya/echosim/internal/entropy"
	"github.com/talgya/echosim/internal/persistence"
	"github.com/talgya/echosim/internal/plotting"
	"github.com/talgya/echosim/internal/topology"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML run configuration (defaults apply if empty)")
		seed       = flag.Uint64("seed", 0, "override the config seed (0 keeps the config value)")
		tmax       = flag.Int("tmax", 0, "override the config tick count (0 keeps the config value)")
		dbPath     = flag.String("db", "data/echosim.db", "SQLite results database (empty disables storage)")
		plotDir    = flag.String("plots", "", "directory for PNG plots (empty disables plotting)")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(*configPath, *seed, *tmax, *dbPath, *plotDir); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, seedOverride uint64, tmaxOverride int, dbPath, plotDir string) error {
	// ── Configuration ────────────────────────────────────────────────
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}
	if seedOverride != 0 {
		cfg.Seed = seedOverride
	}
	if tmaxOverride > 0 {
		cfg.TMax = tmaxOverride
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		cfg.Seed = seed
	}

	slog.Info("echosim — attitude reinforcement on a social network")
	slog.Info("configuration",
		"nodes", cfg.Nodes,
		"tmax", humanize.Comma(int64(cfg.TMax)),
		"topology", cfg.Topology.Kind,
		"distribution", cfg.Attitudes.Distribution,
		"rules", cfg.Rules.Family,
		"interaction", cfg.Interaction,
		"seed", seed,
	)

	src := entropy.NewSource(seed)

	// ── Network and initial state ────────────────────────────────────
	topoCfg, err := cfg.TopologyParams()
	if err != nil {
		return err
	}
	graph, err := topology.Build(topoCfg, src)
	if err != nil {
		return err
	}
	slog.Info("network built", "vertices", graph.VertexCount(), "edges", graph.EdgeCount())

	adj, err := topology.DenseAdjacency(graph, cfg.Nodes)
	if err != nil {
		return err
	}
	conn, err := dynamics.NewConnections(adj, cfg.Weights.Neighbor, cfg.Weights.NonNeighbor)
	if err != nil {
		return err
	}

	dist, err := cfg.Distribution()
	if err != nil {
		return err
	}
	att, err := dynamics.SampleAttitudes(src, cfg.Nodes, dist, cfg.Attitudes.A, cfg.Attitudes.B)
	if err != nil {
		return err
	}
	if plotDir != "" {
		if err := os.MkdirAll(plotDir, 0o755); err != nil {
			return fmt.Errorf("create plot dir: %w", err)
		}
		// The starting scatter has to render now; the run mutates att in place.
		if err := plotting.InitialAttitudes(att, filepath.Join(plotDir, "initial_attitudes.png")); err != nil {
			return err
		}
	}

	updater, err := cfg.Updater()
	if err != nil {
		return err
	}

	// ── Simulation ───────────────────────────────────────────────────
	logEvery := cfg.TMax / 10
	driver, err := engine.NewDriver(cfg.Driver(logEvery), src, updater, conn, att)
	if err != nil {
		return err
	}
	tables, runErr := driver.Run()
	if runErr != nil {
		// Tables hold the state as of the last completed tick; persist
		// what exists before reporting the failure.
		slog.Error("simulation aborted", "tick", driver.Tick(), "error", runErr)
	}

	// ── Results ──────────────────────────────────────────────────────
	runID := uuid.NewString()
	if dbPath != "" && tables != nil {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
		db, err := persistence.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		cfgYAML, err := cfg.Marshal()
		if err != nil {
			return err
		}
		if err := db.SaveRun(runID, cfgYAML, tables); err != nil {
			return err
		}
		slog.Info("results stored", "run", runID, "db", dbPath,
			"summary_rows", len(tables.Summary()),
			"tracker_rows", humanize.Comma(int64(len(tables.Tracker()))),
		)
	}

	if plotDir != "" && tables != nil {
		if err := plotting.AttitudeEvolution(tables.Tracker(), cfg.Nodes, filepath.Join(plotDir, "attitudes.png")); err != nil {
			return err
		}
		if err := plotting.SummarySeries(tables.Summary(), filepath.Join(plotDir, "summary.png")); err != nil {
			return err
		}
		slog.Info("plots written", "dir", plotDir)
	}

	return runErr
}
