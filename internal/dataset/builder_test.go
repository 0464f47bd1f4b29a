package dataset

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/quantlab/optionsynth/internal/model"
)

func testConfig() Config {
	return Config{
		Samples:      50,
		Seed:         42,
		Workers:      4,
		Drift:        Range{Min: 0.0, Max: 0.1},
		Volatility:   Range{Min: 0.1, Max: 0.5},
		InitialPrice: Range{Min: 8, Max: 12},
		Horizon:      Range{Min: 0.5, Max: 1},
		Steps:        IntRange{Min: 50, Max: 100},
		Specs:        testGrid(),
		Label:        model.LabelPolicy{Terminal: true},
	}
}

func testGrid() []model.OptionSpec {
	var specs []model.OptionSpec
	for _, kind := range []model.OptionKind{model.Call, model.Put} {
		for _, strike := range []float64{8, 10, 12} {
			specs = append(specs, model.OptionSpec{
				Strike:     strike,
				Maturity:   0.5,
				Rate:       0.02,
				Volatility: 0.3,
				Kind:       kind,
			})
		}
	}
	return specs
}

func TestBuild_ShapeAndPositivity(t *testing.T) {
	cfg := testConfig()
	ds, err := New(cfg, nil).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(ds.Samples) != cfg.Samples {
		t.Fatalf("len(Samples) = %d, want %d", len(ds.Samples), cfg.Samples)
	}
	if len(ds.Grid) != len(cfg.Specs) {
		t.Fatalf("len(Grid) = %d, want %d", len(ds.Grid), len(cfg.Specs))
	}
	for i, sample := range ds.Samples {
		if sample.Underlying <= 0 {
			t.Errorf("sample %d: underlying = %v, want > 0", i, sample.Underlying)
		}
		if len(sample.Quotes) != len(ds.Grid) {
			t.Fatalf("sample %d: %d quotes, want %d", i, len(sample.Quotes), len(ds.Grid))
		}
		for j, q := range sample.Quotes {
			if q.Underlying != sample.Underlying {
				t.Errorf("sample %d quote %d: underlying %v != label %v", i, j, q.Underlying, sample.Underlying)
			}
			if q.Value < 0 {
				t.Errorf("sample %d quote %d: value = %v, want >= 0", i, j, q.Value)
			}
			if q.Spec != ds.Grid[j] {
				t.Errorf("sample %d quote %d: spec %+v, want grid spec %+v", i, j, q.Spec, ds.Grid[j])
			}
		}
	}
}

func TestBuild_Reproducible(t *testing.T) {
	cfg := testConfig()
	a, err := New(cfg, nil).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	b, err := New(cfg, nil).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	assertDatasetsEqual(t, a, b)
}

func TestBuild_ParallelMatchesSerial(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 1
	serial, err := New(cfg, nil).Build(context.Background())
	if err != nil {
		t.Fatalf("serial Build() error: %v", err)
	}

	cfg.Workers = 8
	parallel, err := New(cfg, nil).Build(context.Background())
	if err != nil {
		t.Fatalf("parallel Build() error: %v", err)
	}
	assertDatasetsEqual(t, serial, parallel)
}

func TestBuild_ZeroSamples(t *testing.T) {
	cfg := testConfig()
	cfg.Samples = 0
	ds, err := New(cfg, nil).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(ds.Samples) != 0 {
		t.Errorf("len(Samples) = %d, want 0", len(ds.Samples))
	}
	if len(ds.Grid) != len(cfg.Specs) {
		t.Errorf("len(Grid) = %d, want %d", len(ds.Grid), len(cfg.Specs))
	}
}

func TestBuild_NoSpecs(t *testing.T) {
	cfg := testConfig()
	cfg.Specs = nil
	_, err := New(cfg, nil).Build(context.Background())
	if !errors.Is(err, model.ErrInsufficientConfig) {
		t.Errorf("Build() = %v, want ErrInsufficientConfig", err)
	}
}

func TestBuild_PropagatesErrorWithSampleIndex(t *testing.T) {
	// A range that only produces invalid initial prices must abort the
	// build with the sample index in the error, not skip samples.
	cfg := testConfig()
	cfg.Samples = 3
	cfg.Workers = 1
	cfg.InitialPrice = Range{Min: -5, Max: -5}

	_, err := New(cfg, nil).Build(context.Background())
	if !errors.Is(err, model.ErrInvalidParameter) {
		t.Fatalf("Build() = %v, want ErrInvalidParameter", err)
	}
	if !strings.Contains(err.Error(), "sample ") {
		t.Errorf("error %q does not name the failing sample", err)
	}
}

func TestBuild_LabelPolicyStep(t *testing.T) {
	cfg := testConfig()
	cfg.Samples = 10
	cfg.Label = model.LabelPolicy{Step: 0}

	ds, err := New(cfg, nil).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	// Step 0 labels with S0, which is drawn from [8, 12].
	for i, sample := range ds.Samples {
		if sample.Underlying < 8 || sample.Underlying > 12 {
			t.Errorf("sample %d: label %v outside initial price range [8, 12]", i, sample.Underlying)
		}
	}
}

func TestBuild_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig()
	cfg.Samples = 1000
	_, err := New(cfg, nil).Build(ctx)
	if err == nil {
		t.Fatal("Build() with canceled context = nil error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Build() = %v, want context.Canceled", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no specs", func(c *Config) { c.Specs = nil }, model.ErrInsufficientConfig},
		{"negative samples", func(c *Config) { c.Samples = -1 }, model.ErrInvalidParameter},
		{"inverted drift range", func(c *Config) { c.Drift = Range{Min: 1, Max: 0} }, model.ErrInvalidParameter},
		{"inverted steps range", func(c *Config) { c.Steps = IntRange{Min: 10, Max: 5} }, model.ErrInvalidParameter},
		{"zero min steps", func(c *Config) { c.Steps = IntRange{Min: 0, Max: 5} }, model.ErrInvalidParameter},
		{"label step past path", func(c *Config) { c.Label = model.LabelPolicy{Step: 1000} }, model.ErrInvalidParameter},
		{"negative label step", func(c *Config) { c.Label = model.LabelPolicy{Step: -1} }, model.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func assertDatasetsEqual(t *testing.T, a, b *model.Dataset) {
	t.Helper()
	if len(a.Samples) != len(b.Samples) {
		t.Fatalf("sample counts differ: %d vs %d", len(a.Samples), len(b.Samples))
	}
	for i := range a.Samples {
		if a.Samples[i].Underlying != b.Samples[i].Underlying {
			t.Fatalf("sample %d: labels differ: %v vs %v", i, a.Samples[i].Underlying, b.Samples[i].Underlying)
		}
		for j := range a.Samples[i].Quotes {
			av, bv := a.Samples[i].Quotes[j].Value, b.Samples[i].Quotes[j].Value
			if av != bv {
				t.Fatalf("sample %d quote %d: values differ: %v vs %v", i, j, av, bv)
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	ds := &model.Dataset{
		Grid: testGrid(),
		Samples: []model.TrainingSample{
			{Underlying: 10},
			{Underlying: 12},
			{Underlying: 14},
		},
	}
	s := Summarize(ds)
	if s.Samples != 3 || s.Columns != len(ds.Grid) {
		t.Errorf("Summarize() shape = (%d, %d), want (3, %d)", s.Samples, s.Columns, len(ds.Grid))
	}
	if math.Abs(s.Mean-12) > 1e-12 {
		t.Errorf("Mean = %v, want 12", s.Mean)
	}
	if s.Min != 10 || s.Max != 14 {
		t.Errorf("Min/Max = %v/%v, want 10/14", s.Min, s.Max)
	}
	if math.Abs(s.StdDev-2) > 1e-12 {
		t.Errorf("StdDev = %v, want 2", s.StdDev)
	}

	empty := Summarize(&model.Dataset{Grid: testGrid()})
	if empty.Samples != 0 || empty.Mean != 0 {
		t.Errorf("Summarize(empty) = %+v, want zero stats", empty)
	}
}
