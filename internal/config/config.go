package config

import (
	"github.com/quantlab/optionsynth/internal/dataset"
	"github.com/quantlab/optionsynth/internal/model"
)

// GeneratorConfig is the root configuration for a generator run.
type GeneratorConfig struct {
	Run        RunConfig        `yaml:"run"`
	Simulation SimulationConfig `yaml:"simulation"`
	Options    OptionsConfig    `yaml:"options"`
	Output     OutputConfig     `yaml:"output"`
	Database   DatabaseConfig   `yaml:"database"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// RunConfig controls sample count, seeding, and parallelism.
type RunConfig struct {
	Samples int    `yaml:"samples"`
	Seed    uint64 `yaml:"seed"`
	Workers int    `yaml:"workers"` // 0 = GOMAXPROCS

	// Mode selects "independent" (one path per sample) or "series" (one
	// path, one sample per grid point).
	Mode string `yaml:"mode"`

	// LabelPolicy selects the path point used as the label: "terminal"
	// or "step". LabelStep applies only to "step".
	LabelPolicy string `yaml:"label_policy"`
	LabelStep   int    `yaml:"label_step"`

	// TrainFraction is the leading fraction used to fit the baseline
	// predictor; the remainder is the evaluation set.
	TrainFraction float64 `yaml:"train_fraction"`
}

// RangeConfig is a [min, max] draw interval. A single fixed value is
// expressed as min == max.
type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// SimulationConfig holds the per-sample GBM parameter distributions.
// Drift is a pointer because zero drift is a meaningful value: only an
// absent key falls back to the default.
type SimulationConfig struct {
	Drift        *RangeConfig `yaml:"drift"`
	Volatility   RangeConfig  `yaml:"volatility"`
	InitialPrice RangeConfig  `yaml:"initial_price"`
	Horizon      RangeConfig  `yaml:"horizon"`
	StepsMin     int          `yaml:"steps_min"`
	StepsMax     int          `yaml:"steps_max"`
}

// OptionsConfig enumerates the option grid quoted per sample. The grid is
// the cartesian product kinds x strikes x maturities x volatilities at a
// single risk-free rate. Rate is a pointer because a zero rate is a
// meaningful value: only an absent key falls back to the default.
type OptionsConfig struct {
	Rate         *float64  `yaml:"rate"`
	Strikes      []float64 `yaml:"strikes"`
	Maturities   []float64 `yaml:"maturities"`
	Volatilities []float64 `yaml:"volatilities"`
	Kinds        []string  `yaml:"kinds"`
}

// OutputConfig holds file export destinations.
type OutputConfig struct {
	DatasetCSV string `yaml:"dataset_csv"`
	PathCSV    string `yaml:"path_csv"` // diagnostic path dump, optional
}

// DatabaseConfig holds the optional Postgres destination.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// OptionGrid expands the configured option parameters into the ordered
// spec grid. Order is the deterministic cartesian product kinds x strikes
// x maturities x volatilities, so feature columns are stable across runs
// with equal config.
func (c *GeneratorConfig) OptionGrid() []model.OptionSpec {
	var rate float64
	if c.Options.Rate != nil {
		rate = *c.Options.Rate
	}
	var specs []model.OptionSpec
	for _, kind := range c.Options.Kinds {
		for _, strike := range c.Options.Strikes {
			for _, maturity := range c.Options.Maturities {
				for _, vol := range c.Options.Volatilities {
					specs = append(specs, model.OptionSpec{
						Strike:     strike,
						Maturity:   maturity,
						Rate:       rate,
						Volatility: vol,
						Kind:       model.OptionKind(kind),
					})
				}
			}
		}
	}
	return specs
}

// LabelPolicy converts the configured policy strings to the model value.
func (c *GeneratorConfig) LabelPolicy() model.LabelPolicy {
	if c.Run.LabelPolicy == LabelPolicyStep {
		return model.LabelPolicy{Step: c.Run.LabelStep}
	}
	return model.LabelPolicy{Terminal: true}
}

// BuilderConfig maps the loaded configuration onto the dataset builder.
func (c *GeneratorConfig) BuilderConfig() dataset.Config {
	drift := RangeConfig{}
	if c.Simulation.Drift != nil {
		drift = *c.Simulation.Drift
	}
	return dataset.Config{
		Samples:      c.Run.Samples,
		Seed:         c.Run.Seed,
		Workers:      c.Run.Workers,
		Drift:        dataset.Range{Min: drift.Min, Max: drift.Max},
		Volatility:   dataset.Range{Min: c.Simulation.Volatility.Min, Max: c.Simulation.Volatility.Max},
		InitialPrice: dataset.Range{Min: c.Simulation.InitialPrice.Min, Max: c.Simulation.InitialPrice.Max},
		Horizon:      dataset.Range{Min: c.Simulation.Horizon.Min, Max: c.Simulation.Horizon.Max},
		Steps:        dataset.IntRange{Min: c.Simulation.StepsMin, Max: c.Simulation.StepsMax},
		Specs:        c.OptionGrid(),
		Label:        c.LabelPolicy(),
	}
}

// SeriesConfig maps the loaded configuration onto series-mode building.
// Ranges collapse to their lower bound; series mode simulates exactly one
// path.
func (c *GeneratorConfig) SeriesConfig() dataset.SeriesConfig {
	var drift float64
	if c.Simulation.Drift != nil {
		drift = c.Simulation.Drift.Min
	}
	return dataset.SeriesConfig{
		Seed: c.Run.Seed,
		Params: model.SimulationParams{
			Drift:        drift,
			Volatility:   c.Simulation.Volatility.Min,
			InitialPrice: c.Simulation.InitialPrice.Min,
			Horizon:      c.Simulation.Horizon.Min,
			Steps:        c.Simulation.StepsMin,
		},
		Specs: c.OptionGrid(),
	}
}
