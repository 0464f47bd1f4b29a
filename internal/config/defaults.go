package config

// Run modes and label policies.
const (
	ModeIndependent = "independent"
	ModeSeries      = "series"

	LabelPolicyTerminal = "terminal"
	LabelPolicyStep     = "step"
)

// Default values for optional configuration fields. The simulation and
// option defaults reproduce the historical reference run: a one-year
// path of 1000 steps from S0=10 quoted on a 36-option grid.
const (
	DefaultSamples       = 1000
	DefaultSeed          = 55
	DefaultMode          = ModeIndependent
	DefaultLabelPolicy   = LabelPolicyTerminal
	DefaultTrainFraction = 0.8

	DefaultDrift        = 0.01
	DefaultVolatility   = 0.5
	DefaultInitialPrice = 10.0
	DefaultHorizon      = 1.0
	DefaultSteps        = 1000

	DefaultRate = 0.02

	DefaultDatasetCSV = "dataset.csv"

	DefaultDBPort    = 5432
	DefaultDBSSLMode = "prefer"
	DefaultMaxConns  = 10
	DefaultMinConns  = 2

	DefaultMetricsPort = 9090
	DefaultMetricsPath = "/metrics"
)

// Default option grid dimensions.
var (
	DefaultStrikes      = []float64{8, 10, 12}
	DefaultMaturities   = []float64{0.5, 0.75}
	DefaultVolatilities = []float64{0.2, 0.3, 0.5}
	DefaultKinds        = []string{"call", "put"}
)

func (c *GeneratorConfig) applyDefaults() {
	// Run defaults
	if c.Run.Samples == 0 {
		c.Run.Samples = DefaultSamples
	}
	if c.Run.Seed == 0 {
		c.Run.Seed = DefaultSeed
	}
	if c.Run.Mode == "" {
		c.Run.Mode = DefaultMode
	}
	if c.Run.LabelPolicy == "" {
		c.Run.LabelPolicy = DefaultLabelPolicy
	}
	if c.Run.TrainFraction == 0 {
		c.Run.TrainFraction = DefaultTrainFraction
	}

	// Simulation defaults. Drift defaults only when the key is absent;
	// an explicit {0, 0} pins zero drift.
	if c.Simulation.Drift == nil {
		c.Simulation.Drift = &RangeConfig{Min: DefaultDrift, Max: DefaultDrift}
	} else if c.Simulation.Drift.Max == 0 && c.Simulation.Drift.Min > 0 {
		c.Simulation.Drift.Max = c.Simulation.Drift.Min
	}
	applyRangeDefault(&c.Simulation.Volatility, DefaultVolatility)
	applyRangeDefault(&c.Simulation.InitialPrice, DefaultInitialPrice)
	applyRangeDefault(&c.Simulation.Horizon, DefaultHorizon)
	if c.Simulation.StepsMin == 0 {
		c.Simulation.StepsMin = DefaultSteps
	}
	if c.Simulation.StepsMax == 0 {
		c.Simulation.StepsMax = c.Simulation.StepsMin
	}

	// Options defaults. Rate defaults only when the key is absent; an
	// explicit 0 pins a zero rate.
	if c.Options.Rate == nil {
		rate := DefaultRate
		c.Options.Rate = &rate
	}
	if len(c.Options.Strikes) == 0 {
		c.Options.Strikes = DefaultStrikes
	}
	if len(c.Options.Maturities) == 0 {
		c.Options.Maturities = DefaultMaturities
	}
	if len(c.Options.Volatilities) == 0 {
		c.Options.Volatilities = DefaultVolatilities
	}
	if len(c.Options.Kinds) == 0 {
		c.Options.Kinds = DefaultKinds
	}

	// Output defaults
	if c.Output.DatasetCSV == "" {
		c.Output.DatasetCSV = DefaultDatasetCSV
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

// applyRangeDefault pins an unset range to a fixed default value and
// collapses a missing max onto min.
func applyRangeDefault(r *RangeConfig, def float64) {
	if r.Min == 0 && r.Max == 0 {
		r.Min, r.Max = def, def
		return
	}
	// A lone positive min pins the parameter to a constant.
	if r.Max == 0 && r.Min > 0 {
		r.Max = r.Min
	}
}
