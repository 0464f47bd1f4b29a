package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's error taxonomy. All errors are
// deterministic functions of input; nothing here is retriable.
var (
	// ErrInvalidParameter marks malformed simulation or option parameters.
	// Matched via errors.Is against InvalidParameterError values.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientConfig marks a builder configuration with no option
	// specs to quote.
	ErrInsufficientConfig = errors.New("insufficient config: no option specs configured")

	// ErrNumericalDegeneracy marks pricer inputs outside the stable
	// evaluation domain where the intrinsic-value fallback is itself
	// undefined.
	ErrNumericalDegeneracy = errors.New("numerical degeneracy")
)

// InvalidParameterError names the offending field so callers can surface
// it directly.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Is reports equivalence with ErrInvalidParameter for errors.Is matching.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// InvalidParam builds an InvalidParameterError.
func InvalidParam(field string, value float64, reason string) error {
	return &InvalidParameterError{Field: field, Value: value, Reason: reason}
}
