package model

import (
	"fmt"
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------
// Simulation Types
// -----------------------------------------------------------------------------

// SimulationParams holds the Geometric Brownian Motion parameters for one
// underlying price path.
type SimulationParams struct {
	Drift        float64 // Annualized drift (mu)
	Volatility   float64 // Annualized volatility (sigma), >= 0
	InitialPrice float64 // Starting price S(0), > 0
	Horizon      float64 // Time horizon T in years, > 0
	Steps        int     // Number of discrete steps N, >= 1
}

// Dt returns the step size T/N.
func (p SimulationParams) Dt() float64 {
	return p.Horizon / float64(p.Steps)
}

// Validate checks the GBM parameter domain.
func (p SimulationParams) Validate() error {
	if p.Volatility < 0 {
		return InvalidParam("volatility", p.Volatility, "must be >= 0")
	}
	if p.InitialPrice <= 0 {
		return InvalidParam("initial_price", p.InitialPrice, "must be > 0")
	}
	if p.Horizon <= 0 {
		return InvalidParam("horizon", p.Horizon, "must be > 0")
	}
	if p.Steps < 1 {
		return InvalidParam("steps", float64(p.Steps), "must be >= 1")
	}
	return nil
}

// PricePoint is one (time, price) sample of a simulated path.
type PricePoint struct {
	Time  float64 // Years since path start
	Price float64 // Simulated price, always > 0
}

// PricePath is an ordered sequence of N+1 price points. The first point is
// (0, S0); every price is strictly positive by construction of the exact
// GBM update.
type PricePath []PricePoint

// Terminal returns the last point of the path.
func (p PricePath) Terminal() PricePoint {
	return p[len(p)-1]
}

// -----------------------------------------------------------------------------
// Option Types
// -----------------------------------------------------------------------------

// OptionKind distinguishes European calls from puts.
type OptionKind string

const (
	Call OptionKind = "call"
	Put  OptionKind = "put"
)

// Valid reports whether k is a recognized option kind.
func (k OptionKind) Valid() bool {
	return k == Call || k == Put
}

// OptionSpec is the contract definition of one European option to quote.
type OptionSpec struct {
	Strike     float64    // Strike price K, > 0
	Maturity   float64    // Time to maturity T in years, > 0
	Rate       float64    // Continuously compounded risk-free rate r
	Volatility float64    // Pricing volatility sigma, > 0
	Kind       OptionKind // call or put
}

// Validate checks the configured option domain. The pricer itself accepts
// the T=0 and sigma=0 limits; a configured grid spec must be strictly
// inside the domain.
func (s OptionSpec) Validate() error {
	if s.Strike <= 0 {
		return InvalidParam("strike", s.Strike, "must be > 0")
	}
	if s.Maturity <= 0 {
		return InvalidParam("maturity", s.Maturity, "must be > 0")
	}
	if s.Volatility <= 0 {
		return InvalidParam("spec volatility", s.Volatility, "must be > 0")
	}
	if !s.Kind.Valid() {
		return InvalidParam("kind", 0, fmt.Sprintf("unknown option kind %q", s.Kind))
	}
	return nil
}

// ColumnName returns the stable dataset column identifier for this spec,
// e.g. "call_k10_t0.5_r0.02_v0.3". Floats are formatted with 'g'/-1 so
// the name parses back to bit-identical values.
func (s OptionSpec) ColumnName() string {
	return string(s.Kind) +
		"_k" + strconv.FormatFloat(s.Strike, 'g', -1, 64) +
		"_t" + strconv.FormatFloat(s.Maturity, 'g', -1, 64) +
		"_r" + strconv.FormatFloat(s.Rate, 'g', -1, 64) +
		"_v" + strconv.FormatFloat(s.Volatility, 'g', -1, 64)
}

// ParseColumnName reverses ColumnName.
func ParseColumnName(name string) (OptionSpec, error) {
	parts := strings.Split(name, "_")
	if len(parts) != 5 {
		return OptionSpec{}, fmt.Errorf("malformed column name %q", name)
	}
	kind := OptionKind(parts[0])
	if !kind.Valid() {
		return OptionSpec{}, fmt.Errorf("malformed column name %q: unknown kind %q", name, parts[0])
	}
	spec := OptionSpec{Kind: kind}
	fields := []struct {
		prefix string
		dst    *float64
	}{
		{"k", &spec.Strike},
		{"t", &spec.Maturity},
		{"r", &spec.Rate},
		{"v", &spec.Volatility},
	}
	for i, f := range fields {
		part := parts[i+1]
		if !strings.HasPrefix(part, f.prefix) {
			return OptionSpec{}, fmt.Errorf("malformed column name %q: expected %s-field, got %q", name, f.prefix, part)
		}
		v, err := strconv.ParseFloat(part[len(f.prefix):], 64)
		if err != nil {
			return OptionSpec{}, fmt.Errorf("malformed column name %q: %w", name, err)
		}
		*f.dst = v
	}
	return spec, nil
}

// OptionQuote is a priced option: the spec plus the underlying price it
// was quoted at and the resulting Black-Scholes fair value.
type OptionQuote struct {
	Spec       OptionSpec
	Underlying float64 // Underlying price S used for pricing
	Value      float64 // Fair value; >= 0, call <= S, put <= K*exp(-rT)
}

// -----------------------------------------------------------------------------
// Dataset Types
// -----------------------------------------------------------------------------

// TrainingSample pairs one ground-truth underlying price (the label) with
// the option quotes priced at it (the features). All quotes share the same
// underlying price.
type TrainingSample struct {
	Underlying float64
	Quotes     []OptionQuote
}

// Features returns the quote values in grid order.
func (s TrainingSample) Features() []float64 {
	out := make([]float64, len(s.Quotes))
	for i, q := range s.Quotes {
		out[i] = q.Value
	}
	return out
}

// Dataset is an ordered collection of training samples quoted on a shared
// option grid. Sample order is insertion order and carries no semantics;
// shuffling before training is the consumer's responsibility.
type Dataset struct {
	Grid    []OptionSpec
	Samples []TrainingSample
}

// LabelPolicy selects which point of a simulated path becomes the
// training label.
type LabelPolicy struct {
	// Terminal selects S(T). When false, Step selects a fixed path index.
	Terminal bool
	Step     int
}

func (p LabelPolicy) String() string {
	if p.Terminal {
		return "terminal"
	}
	return fmt.Sprintf("step:%d", p.Step)
}
