package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/quantlab/optionsynth/internal/metrics"
	"github.com/quantlab/optionsynth/internal/model"
	"github.com/quantlab/optionsynth/internal/rng"
	"github.com/quantlab/optionsynth/internal/simulate"
)

// SeriesConfig drives intraday-series construction: one simulated path,
// repriced at every grid point.
type SeriesConfig struct {
	Seed   uint64
	Params model.SimulationParams
	Specs  []model.OptionSpec
}

// BuildSeries simulates a single path from cfg.Params and builds one
// training sample per path point, quoting every configured option at that
// point's price. Maturities are held constant across the series; the
// sample label is the path price itself. The path is returned alongside
// the dataset for diagnostics.
func (b *Builder) BuildSeries(ctx context.Context, cfg SeriesConfig) (*model.Dataset, model.PricePath, error) {
	if len(cfg.Specs) == 0 {
		metrics.BuildErrors.WithLabelValues("config").Inc()
		return nil, nil, model.ErrInsufficientConfig
	}
	if err := cfg.Params.Validate(); err != nil {
		metrics.BuildErrors.WithLabelValues("config").Inc()
		return nil, nil, err
	}

	start := time.Now()
	g := rng.New(cfg.Seed)
	increments, err := g.Increments(cfg.Params.Steps, cfg.Params.Dt())
	if err != nil {
		return nil, nil, err
	}
	path, err := simulate.Path(cfg.Params, increments)
	if err != nil {
		return nil, nil, err
	}

	grid := make([]model.OptionSpec, len(cfg.Specs))
	copy(grid, cfg.Specs)

	ds := &model.Dataset{
		Grid:    grid,
		Samples: make([]model.TrainingSample, len(path)),
	}
	for i, pt := range path {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		sample, err := quoteSample(grid, pt.Price)
		if err != nil {
			metrics.BuildErrors.WithLabelValues("sample").Inc()
			return nil, nil, fmt.Errorf("sample %d: %w", i, err)
		}
		ds.Samples[i] = sample
	}

	metrics.SamplesGenerated.Add(float64(len(ds.Samples)))
	metrics.QuotesPriced.Add(float64(len(ds.Samples) * len(grid)))
	metrics.BuildDuration.Observe(time.Since(start).Seconds())

	b.logger.Info("series dataset built",
		"points", len(ds.Samples),
		"quotes_per_sample", len(grid),
		"seed", cfg.Seed,
		"duration", time.Since(start),
	)
	return ds, path, nil
}
