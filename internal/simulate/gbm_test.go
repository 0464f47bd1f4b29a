package simulate

import (
	"errors"
	"math"
	"testing"

	"github.com/quantlab/optionsynth/internal/model"
	"github.com/quantlab/optionsynth/internal/rng"
)

func TestPath_ReferenceScenario(t *testing.T) {
	// S0=100, mu=0.05, sigma=0.2, T=1, N=252, seed=42.
	params := model.SimulationParams{
		Drift:        0.05,
		Volatility:   0.2,
		InitialPrice: 100,
		Horizon:      1,
		Steps:        252,
	}
	g := rng.New(42)
	incs, err := g.Increments(params.Steps, params.Dt())
	if err != nil {
		t.Fatalf("Increments() error: %v", err)
	}

	path, err := Path(params, incs)
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	if len(path) != 253 {
		t.Fatalf("len(path) = %d, want 253", len(path))
	}
	if path[0].Time != 0 || path[0].Price != 100 {
		t.Errorf("path[0] = %+v, want (0, 100)", path[0])
	}
	for i, pt := range path {
		if pt.Price <= 0 {
			t.Fatalf("path[%d].Price = %v, want > 0", i, pt.Price)
		}
	}
	if got, want := path.Terminal().Time, 1.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("terminal time = %v, want %v", got, want)
	}
}

func TestPath_StrictPositivityUnderExtremeIncrements(t *testing.T) {
	// Large negative shocks must still produce positive prices; the exact
	// multiplicative update cannot cross zero.
	params := model.SimulationParams{
		Drift:        -0.5,
		Volatility:   2.0,
		InitialPrice: 0.01,
		Horizon:      5,
		Steps:        50,
	}
	incs := make([]float64, params.Steps)
	for i := range incs {
		incs[i] = -3.0 // ~ -9.5 sigma per step at dt=0.1
	}
	path, err := Path(params, incs)
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	for i, pt := range path {
		if pt.Price <= 0 {
			t.Fatalf("path[%d].Price = %v, want > 0", i, pt.Price)
		}
	}
}

func TestPath_ExactUpdate(t *testing.T) {
	params := model.SimulationParams{
		Drift:        0.1,
		Volatility:   0.3,
		InitialPrice: 50,
		Horizon:      0.5,
		Steps:        2,
	}
	incs := []float64{0.2, -0.1}

	path, err := Path(params, incs)
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}

	dt := params.Dt()
	drift := (0.1 - 0.5*0.3*0.3) * dt
	want1 := 50 * math.Exp(drift+0.3*0.2)
	want2 := want1 * math.Exp(drift+0.3*-0.1)

	if math.Abs(path[1].Price-want1) > 1e-12 {
		t.Errorf("path[1].Price = %v, want %v", path[1].Price, want1)
	}
	if math.Abs(path[2].Price-want2) > 1e-12 {
		t.Errorf("path[2].Price = %v, want %v", path[2].Price, want2)
	}
}

func TestPath_ZeroVolatilityIsDeterministicGrowth(t *testing.T) {
	params := model.SimulationParams{
		Drift:        0.05,
		Volatility:   0,
		InitialPrice: 100,
		Horizon:      1,
		Steps:        10,
	}
	incs := make([]float64, 10)
	path, err := Path(params, incs)
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	want := 100 * math.Exp(0.05)
	if got := path.Terminal().Price; math.Abs(got-want) > 1e-9 {
		t.Errorf("terminal price = %v, want %v", got, want)
	}
}

func TestPath_Deterministic(t *testing.T) {
	params := model.SimulationParams{
		Drift:        0.01,
		Volatility:   0.5,
		InitialPrice: 10,
		Horizon:      1,
		Steps:        100,
	}
	incs, err := rng.New(55).Increments(params.Steps, params.Dt())
	if err != nil {
		t.Fatalf("Increments() error: %v", err)
	}
	a, err := Path(params, incs)
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	b, err := Path(params, incs)
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("path[%d]: %+v != %+v for identical inputs", i, a[i], b[i])
		}
	}
}

func TestPath_InvalidInputs(t *testing.T) {
	valid := model.SimulationParams{
		Drift:        0.05,
		Volatility:   0.2,
		InitialPrice: 100,
		Horizon:      1,
		Steps:        4,
	}
	incs := make([]float64, 4)

	tests := []struct {
		name   string
		params model.SimulationParams
		incs   []float64
	}{
		{"negative volatility", model.SimulationParams{Drift: 0, Volatility: -0.2, InitialPrice: 100, Horizon: 1, Steps: 4}, incs},
		{"non-positive S0", model.SimulationParams{Drift: 0, Volatility: 0.2, InitialPrice: 0, Horizon: 1, Steps: 4}, incs},
		{"non-positive horizon", model.SimulationParams{Drift: 0, Volatility: 0.2, InitialPrice: 100, Horizon: 0, Steps: 4}, incs},
		{"zero steps", model.SimulationParams{Drift: 0, Volatility: 0.2, InitialPrice: 100, Horizon: 1, Steps: 0}, incs},
		{"increment length mismatch", valid, make([]float64, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Path(tt.params, tt.incs)
			if !errors.Is(err, model.ErrInvalidParameter) {
				t.Errorf("Path() = %v, want ErrInvalidParameter", err)
			}
		})
	}
}
