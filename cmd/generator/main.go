// Command generator builds a synthetic options training dataset: it
// simulates underlying prices under GBM, prices the configured option
// grid with Black-Scholes, exports the dataset as CSV, optionally
// persists it to Postgres, and reports a linear-baseline error estimate.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/quantlab/optionsynth/internal/config"
	"github.com/quantlab/optionsynth/internal/dataset"
	"github.com/quantlab/optionsynth/internal/metrics"
	"github.com/quantlab/optionsynth/internal/model"
	"github.com/quantlab/optionsynth/internal/predict"
	"github.com/quantlab/optionsynth/internal/store"
	"github.com/quantlab/optionsynth/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/generator.yaml", "path to config file")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	listRuns := flag.Bool("list-runs", false, "list persisted runs and exit")
	loadRun := flag.String("load-run", "", "re-export a persisted run to the dataset CSV and exit")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(*logLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("starting generator",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"mode", cfg.Run.Mode,
		"samples", cfg.Run.Samples,
		"seed", cfg.Run.Seed,
		"label_policy", cfg.LabelPolicy().String(),
		"grid_columns", len(cfg.OptionGrid()),
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Store maintenance commands skip generation entirely.
	if *listRuns || *loadRun != "" {
		if err := runStoreCommand(ctx, cfg, *listRuns, *loadRun, logger); err != nil {
			logger.Error("store command failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Optional metrics endpoint
	if cfg.Metrics.Enabled {
		go func() {
			logger.Info("starting metrics server", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
			if err := metrics.Serve(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	// Build the dataset
	builder := dataset.New(cfg.BuilderConfig(), logger)

	var (
		ds   *model.Dataset
		path model.PricePath
	)
	switch cfg.Run.Mode {
	case config.ModeSeries:
		ds, path, err = builder.BuildSeries(ctx, cfg.SeriesConfig())
	default:
		ds, err = builder.Build(ctx)
	}
	if err != nil {
		logger.Error("dataset build failed", "error", err)
		os.Exit(1)
	}

	summary := dataset.Summarize(ds)
	logger.Info("dataset summary",
		"samples", summary.Samples,
		"columns", summary.Columns,
		"label_mean", summary.Mean,
		"label_stddev", summary.StdDev,
		"label_min", summary.Min,
		"label_max", summary.Max,
	)

	// Export dataset CSV
	if err := writeDatasetCSV(cfg.Output.DatasetCSV, ds); err != nil {
		logger.Error("dataset export failed", "error", err, "path", cfg.Output.DatasetCSV)
		os.Exit(1)
	}
	logger.Info("dataset exported", "path", cfg.Output.DatasetCSV)

	// Optional diagnostic path dump (series mode only has a path)
	if cfg.Output.PathCSV != "" && path != nil {
		if err := writePathCSV(cfg.Output.PathCSV, path); err != nil {
			logger.Error("path export failed", "error", err, "path", cfg.Output.PathCSV)
			os.Exit(1)
		}
		logger.Info("path exported", "path", cfg.Output.PathCSV, "points", len(path))
	}

	// Optional Postgres persistence
	if cfg.Database.Enabled {
		if err := persistRun(ctx, cfg, ds, logger); err != nil {
			logger.Error("database persistence failed", "error", err)
			os.Exit(1)
		}
	}

	// Baseline evaluation proves the dataset contract end to end.
	if len(ds.Samples) > len(ds.Grid)+1 {
		start := time.Now()
		report, err := predict.Evaluate(predict.NewLinear(), ds, cfg.Run.TrainFraction)
		if err != nil {
			logger.Warn("baseline evaluation failed", "error", err)
		} else {
			logger.Info("baseline evaluation",
				"train_samples", report.TrainSamples,
				"test_samples", report.TestSamples,
				"rmse", report.RMSE,
				"mae", report.MAE,
				"duration", time.Since(start),
			)
		}
	}

	logger.Info("generator finished")
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func writeDatasetCSV(path string, ds *model.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dataset.WriteCSV(f, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePathCSV(path string, p model.PricePath) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dataset.WritePathCSV(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// runStoreCommand lists persisted runs or re-exports one run's dataset
// to the configured CSV path, verifying the persistence round trip.
func runStoreCommand(ctx context.Context, cfg *config.GeneratorConfig, listRuns bool, loadRun string, logger *slog.Logger) error {
	if !cfg.Database.Enabled {
		return errors.New("database.enabled must be set for store commands")
	}
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if listRuns {
		runs, err := store.ListRuns(ctx, pool, 50)
		if err != nil {
			return err
		}
		logger.Info("persisted runs", "count", len(runs))
		for _, r := range runs {
			logger.Info("run",
				"run_id", r.ID,
				"seed", r.Seed,
				"label_policy", r.LabelPolicy,
				"created_at", r.CreatedAt,
			)
		}
	}

	if loadRun != "" {
		runID, err := uuid.Parse(loadRun)
		if err != nil {
			return fmt.Errorf("parse run id %q: %w", loadRun, err)
		}
		ds, err := store.LoadDataset(ctx, pool, runID)
		if err != nil {
			return err
		}
		summary := dataset.Summarize(ds)
		logger.Info("run loaded",
			"run_id", runID,
			"samples", summary.Samples,
			"columns", summary.Columns,
			"label_mean", summary.Mean,
		)
		if err := writeDatasetCSV(cfg.Output.DatasetCSV, ds); err != nil {
			return err
		}
		logger.Info("dataset exported", "path", cfg.Output.DatasetCSV)
	}
	return nil
}

func persistRun(ctx context.Context, cfg *config.GeneratorConfig, ds *model.Dataset, logger *slog.Logger) error {
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := store.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	snapshot, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	run := store.Run{
		ID:          uuid.New(),
		Seed:        cfg.Run.Seed,
		LabelPolicy: cfg.LabelPolicy().String(),
		Config:      string(snapshot),
	}
	if err := store.NewWriter(pool, logger).SaveRun(ctx, run, ds); err != nil {
		return err
	}
	logger.Info("run persisted", "run_id", run.ID)
	return nil
}
