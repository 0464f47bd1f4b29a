package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantlab/optionsynth/internal/model"
)

// insertBatchSize bounds the number of queued statements per pgx.Batch.
const insertBatchSize = 1000

// Run describes one persisted dataset build.
type Run struct {
	ID          uuid.UUID
	Seed        uint64
	LabelPolicy string
	Config      string // YAML snapshot of the generating config
	CreatedAt   time.Time
}

// Writer persists datasets for runs.
type Writer struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewWriter creates a Writer.
func NewWriter(db *pgxpool.Pool, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{db: db, logger: logger}
}

// SaveRun inserts the run row and batch-inserts all samples and quotes.
// The dataset is written atomically: a failed batch leaves no partial run.
func (w *Writer) SaveRun(ctx context.Context, run Run, ds *model.Dataset) error {
	start := time.Now()

	tx, err := w.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO runs (id, seed, label_policy, config)
		VALUES ($1, $2, $3, $4)
	`, run.ID, int64(run.Seed), run.LabelPolicy, run.Config)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	batch := &pgx.Batch{}
	flush := func() error {
		if batch.Len() == 0 {
			return nil
		}
		results := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return err
			}
		}
		if err := results.Close(); err != nil {
			return err
		}
		batch = &pgx.Batch{}
		return nil
	}

	for i, sample := range ds.Samples {
		batch.Queue(`
			INSERT INTO samples (run_id, sample_index, underlying)
			VALUES ($1, $2, $3)
		`, run.ID, i, sample.Underlying)
		for j, q := range sample.Quotes {
			batch.Queue(`
				INSERT INTO quotes (run_id, sample_index, quote_index, kind, strike, maturity, rate, volatility, value)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			`, run.ID, i, j, string(q.Spec.Kind), q.Spec.Strike, q.Spec.Maturity, q.Spec.Rate, q.Spec.Volatility, q.Value)
		}
		if batch.Len() >= insertBatchSize {
			if err := flush(); err != nil {
				return fmt.Errorf("flush at sample %d: %w", i, err)
			}
		}
	}
	if err := flush(); err != nil {
		return fmt.Errorf("final flush: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	w.logger.Info("run saved",
		"run_id", run.ID,
		"samples", len(ds.Samples),
		"columns", len(ds.Grid),
		"duration", time.Since(start),
	)
	return nil
}
