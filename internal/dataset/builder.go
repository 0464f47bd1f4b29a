package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quantlab/optionsynth/internal/metrics"
	"github.com/quantlab/optionsynth/internal/model"
	"github.com/quantlab/optionsynth/internal/pricing"
	"github.com/quantlab/optionsynth/internal/rng"
	"github.com/quantlab/optionsynth/internal/simulate"
)

// Range is a closed parameter interval to draw from. Min == Max pins the
// parameter to a constant.
type Range struct {
	Min float64
	Max float64
}

func (r Range) validate(field string) error {
	if r.Max < r.Min {
		return model.InvalidParam(field+".max", r.Max, "must be >= min")
	}
	return nil
}

// IntRange is a closed integer interval.
type IntRange struct {
	Min int
	Max int
}

// Config drives dataset construction.
type Config struct {
	Samples int    // Number of independent samples; 0 yields an empty dataset
	Seed    uint64 // Master seed; sample i draws from sub-stream (Seed, i)
	Workers int    // Parallel workers; <= 0 means GOMAXPROCS

	// Simulation parameter distributions, drawn per sample.
	Drift        Range
	Volatility   Range
	InitialPrice Range
	Horizon      Range
	Steps        IntRange

	// Option grid quoted at every sample's labeled price.
	Specs []model.OptionSpec

	// Label selects which path point becomes the training label.
	Label model.LabelPolicy
}

// Validate checks structural config consistency. Domain violations in the
// drawn values (e.g. a negative initial price inside a configured range)
// are surfaced by the simulator or pricer during Build, tagged with the
// sample index.
func (c Config) Validate() error {
	if len(c.Specs) == 0 {
		return model.ErrInsufficientConfig
	}
	if c.Samples < 0 {
		return model.InvalidParam("samples", float64(c.Samples), "must be >= 0")
	}
	for _, r := range []struct {
		name string
		rng  Range
	}{
		{"drift", c.Drift},
		{"volatility", c.Volatility},
		{"initial_price", c.InitialPrice},
		{"horizon", c.Horizon},
	} {
		if err := r.rng.validate(r.name); err != nil {
			return err
		}
	}
	if c.Steps.Max < c.Steps.Min {
		return model.InvalidParam("steps.max", float64(c.Steps.Max), "must be >= min")
	}
	if c.Steps.Min < 1 {
		return model.InvalidParam("steps.min", float64(c.Steps.Min), "must be >= 1")
	}
	if !c.Label.Terminal && c.Label.Step > c.Steps.Min {
		return model.InvalidParam("label.step", float64(c.Label.Step),
			"must not exceed the minimum step count")
	}
	if !c.Label.Terminal && c.Label.Step < 0 {
		return model.InvalidParam("label.step", float64(c.Label.Step), "must be >= 0")
	}
	return nil
}

// Builder constructs datasets from a Config.
type Builder struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Builder.
func New(cfg Config, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{cfg: cfg, logger: logger}
}

// Build generates cfg.Samples independent training samples. Samples are
// generated on parallel workers but slotted by index, so output order and
// content are independent of scheduling. The first simulator or pricer
// error aborts the build, wrapped with its sample index; samples are
// never silently skipped.
func (b *Builder) Build(ctx context.Context) (*model.Dataset, error) {
	if err := b.cfg.Validate(); err != nil {
		metrics.BuildErrors.WithLabelValues("config").Inc()
		return nil, err
	}

	start := time.Now()
	grid := make([]model.OptionSpec, len(b.cfg.Specs))
	copy(grid, b.cfg.Specs)

	ds := &model.Dataset{
		Grid:    grid,
		Samples: make([]model.TrainingSample, b.cfg.Samples),
	}
	if b.cfg.Samples == 0 {
		return ds, nil
	}

	workers := b.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < b.cfg.Samples; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sample, err := b.buildSample(i)
			if err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
			ds.Samples[i] = sample
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.BuildErrors.WithLabelValues("sample").Inc()
		return nil, err
	}

	metrics.SamplesGenerated.Add(float64(b.cfg.Samples))
	metrics.QuotesPriced.Add(float64(b.cfg.Samples * len(grid)))
	metrics.BuildDuration.Observe(time.Since(start).Seconds())

	b.logger.Info("dataset built",
		"samples", b.cfg.Samples,
		"quotes_per_sample", len(grid),
		"label_policy", b.cfg.Label.String(),
		"workers", workers,
		"duration", time.Since(start),
	)
	return ds, nil
}

// buildSample runs the simulate-then-price pipeline for one sample index
// on its own RNG sub-stream.
func (b *Builder) buildSample(index int) (model.TrainingSample, error) {
	g := rng.NewSub(b.cfg.Seed, index)

	params := model.SimulationParams{
		Drift:        g.Uniform(b.cfg.Drift.Min, b.cfg.Drift.Max),
		Volatility:   g.Uniform(b.cfg.Volatility.Min, b.cfg.Volatility.Max),
		InitialPrice: g.Uniform(b.cfg.InitialPrice.Min, b.cfg.InitialPrice.Max),
		Horizon:      g.Uniform(b.cfg.Horizon.Min, b.cfg.Horizon.Max),
		Steps:        g.IntBetween(b.cfg.Steps.Min, b.cfg.Steps.Max),
	}
	if err := params.Validate(); err != nil {
		return model.TrainingSample{}, err
	}

	increments, err := g.Increments(params.Steps, params.Dt())
	if err != nil {
		return model.TrainingSample{}, err
	}
	path, err := simulate.Path(params, increments)
	if err != nil {
		return model.TrainingSample{}, err
	}

	underlying := labelPrice(path, b.cfg.Label)
	return quoteSample(b.cfg.Specs, underlying)
}

// quoteSample prices the full grid at one underlying price.
func quoteSample(specs []model.OptionSpec, underlying float64) (model.TrainingSample, error) {
	quotes := make([]model.OptionQuote, len(specs))
	for j, spec := range specs {
		q, err := pricing.Quote(spec, underlying)
		if err != nil {
			return model.TrainingSample{}, fmt.Errorf("quote %s: %w", spec.ColumnName(), err)
		}
		quotes[j] = q
	}
	return model.TrainingSample{Underlying: underlying, Quotes: quotes}, nil
}

func labelPrice(path model.PricePath, policy model.LabelPolicy) float64 {
	if policy.Terminal || policy.Step >= len(path) {
		return path.Terminal().Price
	}
	return path[policy.Step].Price
}
