package pricing

import (
	"math"

	"github.com/quantlab/optionsynth/internal/model"
)

// Greeks holds the standard Black-Scholes sensitivities. Theta is per
// year; Vega and Rho are per unit change in volatility and rate.
type Greeks struct {
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64
}

// ComputeGreeks evaluates the sensitivities of spec at the underlying.
// The degenerate limits T=0 and sigma=0 are outside the Greeks' domain.
func ComputeGreeks(spec model.OptionSpec, underlying float64) (Greeks, error) {
	S, K, r, sigma, T := underlying, spec.Strike, spec.Rate, spec.Volatility, spec.Maturity

	if err := validate(S, K, sigma, T); err != nil {
		return Greeks{}, err
	}
	if T == 0 || sigma == 0 {
		return Greeks{}, model.InvalidParam("maturity/volatility", 0,
			"greeks undefined in the zero-maturity or zero-volatility limit")
	}

	d1, d2 := d1d2(S, K, r, sigma, T)
	sqrtT := math.Sqrt(T)
	disc := K * math.Exp(-r*T)

	g := Greeks{
		Gamma: NormPDF(d1) / (S * sigma * sqrtT),
		Vega:  S * sqrtT * NormPDF(d1),
	}
	if spec.Kind == model.Call {
		g.Delta = NormCDF(d1)
		g.Theta = -S*NormPDF(d1)*sigma/(2*sqrtT) - r*disc*NormCDF(d2)
		g.Rho = T * disc * NormCDF(d2)
	} else {
		g.Delta = NormCDF(d1) - 1
		g.Theta = -S*NormPDF(d1)*sigma/(2*sqrtT) + r*disc*NormCDF(-d2)
		g.Rho = -T * disc * NormCDF(-d2)
	}
	return g, nil
}
