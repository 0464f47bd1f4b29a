package config

import (
	"errors"
	"fmt"

	"github.com/quantlab/optionsynth/internal/model"
)

// Validate checks that all required fields are set and values are valid.
func (c *GeneratorConfig) Validate() error {
	if c.Run.Samples < 0 {
		return fmt.Errorf("run.samples must be >= 0, got %d", c.Run.Samples)
	}
	if c.Run.Mode != ModeIndependent && c.Run.Mode != ModeSeries {
		return fmt.Errorf("run.mode must be %q or %q, got %q", ModeIndependent, ModeSeries, c.Run.Mode)
	}
	if c.Run.LabelPolicy != LabelPolicyTerminal && c.Run.LabelPolicy != LabelPolicyStep {
		return fmt.Errorf("run.label_policy must be %q or %q, got %q", LabelPolicyTerminal, LabelPolicyStep, c.Run.LabelPolicy)
	}
	if c.Run.LabelPolicy == LabelPolicyStep && c.Run.LabelStep < 0 {
		return fmt.Errorf("run.label_step must be >= 0, got %d", c.Run.LabelStep)
	}
	if c.Run.TrainFraction <= 0 || c.Run.TrainFraction >= 1 {
		return fmt.Errorf("run.train_fraction must be in (0, 1), got %v", c.Run.TrainFraction)
	}

	if c.Simulation.Drift != nil {
		if err := validateRange("simulation.drift", *c.Simulation.Drift); err != nil {
			return err
		}
	}
	if err := validateRange("simulation.volatility", c.Simulation.Volatility); err != nil {
		return err
	}
	if c.Simulation.Volatility.Min < 0 {
		return fmt.Errorf("simulation.volatility.min must be >= 0, got %v", c.Simulation.Volatility.Min)
	}
	if err := validateRange("simulation.initial_price", c.Simulation.InitialPrice); err != nil {
		return err
	}
	if c.Simulation.InitialPrice.Min <= 0 {
		return fmt.Errorf("simulation.initial_price.min must be > 0, got %v", c.Simulation.InitialPrice.Min)
	}
	if err := validateRange("simulation.horizon", c.Simulation.Horizon); err != nil {
		return err
	}
	if c.Simulation.Horizon.Min <= 0 {
		return fmt.Errorf("simulation.horizon.min must be > 0, got %v", c.Simulation.Horizon.Min)
	}
	if c.Simulation.StepsMin < 1 {
		return fmt.Errorf("simulation.steps_min must be >= 1, got %d", c.Simulation.StepsMin)
	}
	if c.Simulation.StepsMax < c.Simulation.StepsMin {
		return fmt.Errorf("simulation.steps_max must be >= steps_min, got %d", c.Simulation.StepsMax)
	}

	grid := c.OptionGrid()
	if len(grid) == 0 {
		return errors.New("options: at least one strike, maturity, volatility, and kind are required")
	}
	for _, spec := range grid {
		if err := spec.Validate(); err != nil {
			var ipe *model.InvalidParameterError
			if errors.As(err, &ipe) {
				return fmt.Errorf("options: %w", err)
			}
			return err
		}
	}

	if c.Database.Enabled {
		if c.Database.Host == "" {
			return errors.New("database.host is required when database.enabled")
		}
		if c.Database.Name == "" {
			return errors.New("database.name is required when database.enabled")
		}
		if c.Database.User == "" {
			return errors.New("database.user is required when database.enabled")
		}
		if c.Database.MaxConns < 1 {
			return fmt.Errorf("database.max_conns must be >= 1, got %d", c.Database.MaxConns)
		}
		if c.Database.MinConns < 0 {
			return fmt.Errorf("database.min_conns must be >= 0, got %d", c.Database.MinConns)
		}
	}

	if c.Metrics.Enabled && (c.Metrics.Port < 1 || c.Metrics.Port > 65535) {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}

	return nil
}

func validateRange(key string, r RangeConfig) error {
	if r.Max < r.Min {
		return fmt.Errorf("%s.max must be >= %s.min, got [%v, %v]", key, key, r.Min, r.Max)
	}
	return nil
}
