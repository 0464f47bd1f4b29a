package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema creates the run/sample/quote tables. Quote rows repeat the spec
// fields so a run is self-describing without a separate grid table; the
// (run_id, sample_index, quote_index) key preserves grid order.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            UUID PRIMARY KEY,
	seed          BIGINT NOT NULL,
	label_policy  TEXT NOT NULL,
	config        TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS samples (
	run_id        UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	sample_index  INT NOT NULL,
	underlying    DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (run_id, sample_index)
);

CREATE TABLE IF NOT EXISTS quotes (
	run_id        UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	sample_index  INT NOT NULL,
	quote_index   INT NOT NULL,
	kind          TEXT NOT NULL,
	strike        DOUBLE PRECISION NOT NULL,
	maturity      DOUBLE PRECISION NOT NULL,
	rate          DOUBLE PRECISION NOT NULL,
	volatility    DOUBLE PRECISION NOT NULL,
	value         DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (run_id, sample_index, quote_index)
);
`

// EnsureSchema creates the store tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
