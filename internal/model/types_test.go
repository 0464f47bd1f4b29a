package model

import (
	"errors"
	"testing"
)

func TestSimulationParams_Validate(t *testing.T) {
	valid := SimulationParams{
		Drift:        0.05,
		Volatility:   0.2,
		InitialPrice: 100,
		Horizon:      1,
		Steps:        252,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if dt := valid.Dt(); dt <= 0 {
		t.Errorf("Dt() = %v, want > 0", dt)
	}

	tests := []struct {
		name   string
		mutate func(*SimulationParams)
	}{
		{"negative volatility", func(p *SimulationParams) { p.Volatility = -0.1 }},
		{"zero initial price", func(p *SimulationParams) { p.InitialPrice = 0 }},
		{"negative initial price", func(p *SimulationParams) { p.InitialPrice = -10 }},
		{"zero horizon", func(p *SimulationParams) { p.Horizon = 0 }},
		{"zero steps", func(p *SimulationParams) { p.Steps = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Validate() = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestOptionSpec_Validate(t *testing.T) {
	valid := OptionSpec{Strike: 100, Maturity: 1, Rate: 0.05, Volatility: 0.2, Kind: Call}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*OptionSpec)
	}{
		{"zero strike", func(s *OptionSpec) { s.Strike = 0 }},
		{"negative strike", func(s *OptionSpec) { s.Strike = -5 }},
		{"zero maturity", func(s *OptionSpec) { s.Maturity = 0 }},
		{"zero volatility", func(s *OptionSpec) { s.Volatility = 0 }},
		{"unknown kind", func(s *OptionSpec) { s.Kind = "straddle" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Validate() = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestOptionSpec_ColumnNameRoundTrip(t *testing.T) {
	specs := []OptionSpec{
		{Strike: 8, Maturity: 0.5, Rate: 0.02, Volatility: 0.2, Kind: Call},
		{Strike: 10, Maturity: 0.75, Rate: 0.02, Volatility: 0.3, Kind: Put},
		{Strike: 102.625, Maturity: 1.0 / 3.0, Rate: 0.0475, Volatility: 0.1875, Kind: Call},
	}
	for _, want := range specs {
		name := want.ColumnName()
		got, err := ParseColumnName(name)
		if err != nil {
			t.Fatalf("ParseColumnName(%q) error: %v", name, err)
		}
		if got != want {
			t.Errorf("ParseColumnName(%q) = %+v, want %+v", name, got, want)
		}
	}
}

func TestParseColumnName_Malformed(t *testing.T) {
	bad := []string{
		"",
		"underlying",
		"call_k10",
		"straddle_k10_t1_r0.02_v0.2",
		"call_x10_t1_r0.02_v0.2",
		"call_kten_t1_r0.02_v0.2",
	}
	for _, name := range bad {
		if _, err := ParseColumnName(name); err == nil {
			t.Errorf("ParseColumnName(%q) = nil error, want malformed", name)
		}
	}
}

func TestInvalidParameterError_Is(t *testing.T) {
	err := InvalidParam("strike", -1, "must be > 0")
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("errors.Is(InvalidParam, ErrInvalidParameter) = false, want true")
	}
	if errors.Is(err, ErrInsufficientConfig) {
		t.Errorf("errors.Is(InvalidParam, ErrInsufficientConfig) = true, want false")
	}
}

func TestLabelPolicy_String(t *testing.T) {
	if got := (LabelPolicy{Terminal: true}).String(); got != "terminal" {
		t.Errorf("String() = %q, want terminal", got)
	}
	if got := (LabelPolicy{Step: 400}).String(); got != "step:400" {
		t.Errorf("String() = %q, want step:400", got)
	}
}
