package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantlab/optionsynth/internal/model"
)

// quoteRow is one joined samples/quotes row in (sample_index, quote_index)
// order, the shape produced by the LoadDataset query and consumed by
// assembleDataset.
type quoteRow struct {
	SampleIndex int
	QuoteIndex  int
	Underlying  float64
	Spec        model.OptionSpec
	Value       float64
}

// LoadDataset reconstructs the dataset for a run, preserving sample and
// grid order. The grid is taken from the first sample's quote rows.
func LoadDataset(ctx context.Context, db *pgxpool.Pool, runID uuid.UUID) (*model.Dataset, error) {
	rows, err := db.Query(ctx, `
		SELECT s.sample_index, s.underlying, q.quote_index, q.kind, q.strike, q.maturity, q.rate, q.volatility, q.value
		FROM samples s
		JOIN quotes q ON q.run_id = s.run_id AND q.sample_index = s.sample_index
		WHERE s.run_id = $1
		ORDER BY s.sample_index, q.quote_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", runID, err)
	}
	defer rows.Close()

	var scanned []quoteRow
	for rows.Next() {
		var (
			r    quoteRow
			kind string
		)
		if err := rows.Scan(&r.SampleIndex, &r.Underlying, &r.QuoteIndex, &kind,
			&r.Spec.Strike, &r.Spec.Maturity, &r.Spec.Rate, &r.Spec.Volatility, &r.Value); err != nil {
			return nil, fmt.Errorf("scan run %s: %w", runID, err)
		}
		r.Spec.Kind = model.OptionKind(kind)
		scanned = append(scanned, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run %s: %w", runID, err)
	}

	ds, err := assembleDataset(scanned)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return ds, nil
}

// assembleDataset rebuilds a Dataset from ordered joined rows. Sample
// indices must be contiguous from zero and quote indices contiguous per
// sample; a gap means the run is corrupt.
func assembleDataset(rows []quoteRow) (*model.Dataset, error) {
	ds := &model.Dataset{}
	current := -1
	for _, r := range rows {
		if r.SampleIndex != current {
			if r.SampleIndex != current+1 {
				return nil, fmt.Errorf("sample index gap at %d", r.SampleIndex)
			}
			ds.Samples = append(ds.Samples, model.TrainingSample{Underlying: r.Underlying})
			current = r.SampleIndex
		}
		sample := &ds.Samples[current]
		if r.QuoteIndex != len(sample.Quotes) {
			return nil, fmt.Errorf("sample %d: quote index gap at %d", r.SampleIndex, r.QuoteIndex)
		}
		sample.Quotes = append(sample.Quotes, model.OptionQuote{
			Spec:       r.Spec,
			Underlying: r.Underlying,
			Value:      r.Value,
		})
	}

	if len(ds.Samples) > 0 {
		first := ds.Samples[0]
		ds.Grid = make([]model.OptionSpec, len(first.Quotes))
		for i, q := range first.Quotes {
			ds.Grid[i] = q.Spec
		}
	}
	return ds, nil
}

// datasetRows flattens a dataset into the row order SaveRun inserts and
// LoadDataset reads back.
func datasetRows(ds *model.Dataset) []quoteRow {
	var rows []quoteRow
	for i, sample := range ds.Samples {
		for j, q := range sample.Quotes {
			rows = append(rows, quoteRow{
				SampleIndex: i,
				QuoteIndex:  j,
				Underlying:  sample.Underlying,
				Spec:        q.Spec,
				Value:       q.Value,
			})
		}
	}
	return rows
}

// ListRuns returns persisted runs, newest first.
func ListRuns(ctx context.Context, db *pgxpool.Pool, limit int) ([]Run, error) {
	rows, err := db.Query(ctx, `
		SELECT id, seed, label_policy, config, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var seed int64
		if err := rows.Scan(&r.ID, &seed, &r.LabelPolicy, &r.Config, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Seed = uint64(seed)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
