package core

import (
	"fmt"
	"math"
	"strings"
)

// SequenceError reports a protein sequence that cannot be analysed.
type SequenceError struct {
	Empty   bool   // no valid residues were found
	Invalid []rune // unrecognized characters, deduplicated, in order of appearance
}

func (e *SequenceError) Error() string {
	if len(e.Invalid) > 0 {
		parts := make([]string, len(e.Invalid))
		for i, r := range e.Invalid {
			parts[i] = string(r)
		}
		return fmt.Sprintf("sequence contains unrecognized characters: %s", strings.Join(parts, ", "))
	}
	return "sequence is empty or contains no valid residues"
}

// InsufficientDataError reports a fit requested on too few qualifying points.
type InsufficientDataError struct {
	Points   int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d points in range, at least %d required", e.Points, e.Required)
}

// DomainError reports a derived quantity that is undefined for the given input.
type DomainError struct {
	Quantity string
	Value    float64
	Message  string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s undefined (%g): %s", e.Quantity, e.Value, e.Message)
}

// MissingParameterError reports a required scalar that is absent or non-numeric.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing or non-numeric parameter: %s", e.Name)
}

// RequireFinite returns a MissingParameterError when v is NaN or infinite.
func RequireFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &MissingParameterError{Name: name}
	}
	return nil
}

// RequirePositive is RequireFinite plus v > 0.
func RequirePositive(name string, v float64) error {
	if err := RequireFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return &MissingParameterError{Name: name}
	}
	return nil
}

// Param is a named scalar input.
type Param struct {
	Name  string
	Value float64
}

// RequireAllPositive checks every parameter, failing on the first bad one.
func RequireAllPositive(params ...Param) error {
	for _, p := range params {
		if err := RequirePositive(p.Name, p.Value); err != nil {
			return err
		}
	}
	return nil
}
