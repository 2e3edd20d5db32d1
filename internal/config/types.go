package config

import (
	"encoding/json"
	"fmt"

	"github.com/calebw/forecfg/internal/quarter"
)

// Method selects how a variable's forecast input is filled.
type Method string

const (
	// SingleValueFill applies one scalar value uniformly.
	SingleValueFill Method = "single_value_fill"

	// QuarterlyValuesFill supplies one value per quarter in an expanded
	// range, index-aligned with the range's labels.
	QuarterlyValuesFill Method = "quarterly_values_fill"
)

// Valid reports whether m is one of the two known methods.
func (m Method) Valid() bool {
	return m == SingleValueFill || m == QuarterlyValuesFill
}

// Input is a variable's fill payload: either a Scalar or a Sequence.
type Input interface {
	isInput()

	// Clone returns an independently mutable copy.
	Clone() Input
}

// Scalar is a single fill value. The underlying json.Number keeps the
// literal source text ("0" and "0.0" stay distinct representations of the
// same value).
type Scalar json.Number

func (Scalar) isInput() {}

// Clone implements Input. Scalars are immutable so the value itself is the
// copy.
func (s Scalar) Clone() Input { return s }

// Float returns the scalar as a float64.
func (s Scalar) Float() (float64, error) {
	return json.Number(s).Float64()
}

// Sequence is an ordered series of quarterly fill values.
type Sequence []json.Number

func (Sequence) isInput() {}

// Clone implements Input. The returned sequence shares no storage with the
// receiver - required so that batch-applied variables stay independently
// editable.
func (q Sequence) Clone() Input {
	out := make(Sequence, len(q))
	copy(out, q)
	return out
}

// ZeroSequence returns a Sequence of n literal-zero values. Used by the
// length-mismatch reconciliation rule: when a quarterly input does not align
// with its expanded range, it resets to zeros of the correct length.
func ZeroSequence(n int) Sequence {
	out := make(Sequence, n)
	for i := range out {
		out[i] = json.Number("0")
	}
	return out
}

// VariableSpec configures one named forecast-input quantity.
type VariableSpec struct {
	// Category is the grouping label. Non-unique; defines section
	// membership in the presentation layer.
	Category string

	// Method selects scalar vs quarterly fill.
	Method Method

	// Input is a Scalar when Method is SingleValueFill, a Sequence
	// index-aligned with the expanded quarter range otherwise.
	Input Input

	// Quarters is nil for SingleValueFill and the inclusive range
	// descriptor for QuarterlyValuesFill.
	Quarters *quarter.Range
}

// Clone returns a deep copy of the spec.
func (v *VariableSpec) Clone() *VariableSpec {
	out := &VariableSpec{
		Category: v.Category,
		Method:   v.Method,
	}
	if v.Input != nil {
		out.Input = v.Input.Clone()
	}
	if v.Quarters != nil {
		r := *v.Quarters
		out.Quarters = &r
	}
	return out
}

// Validate checks the cross-field invariant. The returned error describes
// the violation; callers wanting the variable name attached wrap it into a
// MalformedSpecError.
func (v *VariableSpec) Validate() error {
	if !v.Method.Valid() {
		return fmt.Errorf("unknown method %q", v.Method)
	}
	switch input := v.Input.(type) {
	case Scalar:
		if v.Method != SingleValueFill {
			return fmt.Errorf("method %q requires a sequence input, got a scalar", v.Method)
		}
		if v.Quarters != nil {
			return fmt.Errorf("method %q forbids a quarters range", v.Method)
		}
	case Sequence:
		if v.Method != QuarterlyValuesFill {
			return fmt.Errorf("method %q requires a scalar input, got a sequence", v.Method)
		}
		if v.Quarters == nil {
			return fmt.Errorf("method %q requires a quarters range", v.Method)
		}
		if got, want := len(input), v.Quarters.Len(); got != want {
			return fmt.Errorf("input length %d does not match quarter range %s (%d quarters)", got, v.Quarters, want)
		}
	case nil:
		return fmt.Errorf("missing input")
	default:
		return fmt.Errorf("unsupported input type %T", input)
	}
	return nil
}
