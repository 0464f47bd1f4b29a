// Command pricer evaluates a single Black-Scholes price (and optionally
// the Greeks) from the command line, for spot-checking generated data.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quantlab/optionsynth/internal/model"
	"github.com/quantlab/optionsynth/internal/pricing"
)

func main() {
	underlying := flag.Float64("underlying", 100, "underlying price S")
	strike := flag.Float64("strike", 100, "strike price K")
	maturity := flag.Float64("maturity", 1, "time to maturity T in years")
	rate := flag.Float64("rate", 0.05, "risk-free rate r")
	vol := flag.Float64("vol", 0.2, "volatility sigma")
	kind := flag.String("kind", "call", "option kind (call or put)")
	greeks := flag.Bool("greeks", false, "also print the Greeks")
	flag.Parse()

	spec := model.OptionSpec{
		Strike:     *strike,
		Maturity:   *maturity,
		Rate:       *rate,
		Volatility: *vol,
		Kind:       model.OptionKind(*kind),
	}

	value, err := pricing.Price(spec, *underlying)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pricing failed:", err)
		os.Exit(1)
	}
	fmt.Printf("%s S=%g K=%g T=%g r=%g sigma=%g: %.6f\n",
		spec.Kind, *underlying, spec.Strike, spec.Maturity, spec.Rate, spec.Volatility, value)

	if *greeks {
		g, err := pricing.ComputeGreeks(spec, *underlying)
		if err != nil {
			fmt.Fprintln(os.Stderr, "greeks failed:", err)
			os.Exit(1)
		}
		fmt.Printf("delta=%.6f gamma=%.6f vega=%.6f theta=%.6f rho=%.6f\n",
			g.Delta, g.Gamma, g.Vega, g.Theta, g.Rho)
	}
}
