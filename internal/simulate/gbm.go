package simulate

import (
	"math"

	"github.com/quantlab/optionsynth/internal/model"
)

// Path simulates an underlying price path under GBM using the exact
// discrete solution
//
//	S(t+dt) = S(t) * exp((mu - sigma^2/2)*dt + sigma*dW)
//
// where dW are the supplied increments, one per step. The returned path
// has len(increments)+1 points and starts at (0, S0).
func Path(params model.SimulationParams, increments []float64) (model.PricePath, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(increments) != params.Steps {
		return nil, model.InvalidParam("increments", float64(len(increments)),
			"length must equal step count")
	}

	dt := params.Dt()
	drift := (params.Drift - 0.5*params.Volatility*params.Volatility) * dt

	path := make(model.PricePath, params.Steps+1)
	path[0] = model.PricePoint{Time: 0, Price: params.InitialPrice}
	price := params.InitialPrice
	for i, dw := range increments {
		price *= math.Exp(drift + params.Volatility*dw)
		path[i+1] = model.PricePoint{
			Time:  float64(i+1) * dt,
			Price: price,
		}
	}
	return path, nil
}
