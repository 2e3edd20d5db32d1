package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebw/forecfg/internal/quarter"
)

func mustRange(t *testing.T, s string) *quarter.Range {
	t.Helper()
	r, err := quarter.ParseRange(s)
	require.NoError(t, err)
	return &r
}

func TestMethod_Valid(t *testing.T) {
	assert.True(t, SingleValueFill.Valid())
	assert.True(t, QuarterlyValuesFill.Valid())
	assert.False(t, Method("linear_interpolation").Valid())
	assert.False(t, Method("").Valid())
}

func TestSequence_CloneIsIndependent(t *testing.T) {
	orig := Sequence{"1", "2", "3"}
	clone := orig.Clone().(Sequence)
	clone[0] = "99"
	assert.Equal(t, json.Number("1"), orig[0])
}

func TestZeroSequence(t *testing.T) {
	assert.Equal(t, Sequence{"0", "0", "0"}, ZeroSequence(3))
	assert.Empty(t, ZeroSequence(0))
}

func TestVariableSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    VariableSpec
		wantErr string
	}{
		{
			"valid scalar",
			VariableSpec{Category: "C", Method: SingleValueFill, Input: Scalar("2.5")},
			"",
		},
		{
			"valid quarterly",
			VariableSpec{Category: "C", Method: QuarterlyValuesFill, Input: Sequence{"1", "2"}, Quarters: mustRange(t, "2024Q1:2024Q2")},
			"",
		},
		{
			"scalar with quarters",
			VariableSpec{Method: SingleValueFill, Input: Scalar("1"), Quarters: mustRange(t, "2024Q1:2024Q2")},
			"forbids a quarters range",
		},
		{
			"scalar under quarterly method",
			VariableSpec{Method: QuarterlyValuesFill, Input: Scalar("1"), Quarters: mustRange(t, "2024Q1:2024Q2")},
			"requires a sequence input",
		},
		{
			"sequence under single method",
			VariableSpec{Method: SingleValueFill, Input: Sequence{"1"}},
			"requires a scalar input",
		},
		{
			"quarterly without quarters",
			VariableSpec{Method: QuarterlyValuesFill, Input: Sequence{"1"}},
			"requires a quarters range",
		},
		{
			"length mismatch",
			VariableSpec{Method: QuarterlyValuesFill, Input: Sequence{"1"}, Quarters: mustRange(t, "2024Q1:2024Q4")},
			"does not match quarter range",
		},
		{
			"unknown method",
			VariableSpec{Method: Method("spline"), Input: Scalar("1")},
			"unknown method",
		},
		{
			"missing input",
			VariableSpec{Method: SingleValueFill},
			"missing input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVariableSpec_CloneIsDeep(t *testing.T) {
	orig := &VariableSpec{
		Category: "C",
		Method:   QuarterlyValuesFill,
		Input:    Sequence{"1", "2"},
		Quarters: mustRange(t, "2024Q1:2024Q2"),
	}

	clone := orig.Clone()
	clone.Input.(Sequence)[0] = "77"
	clone.Quarters.Start = quarter.MustParseLabel("1990Q1")

	assert.Equal(t, json.Number("1"), orig.Input.(Sequence)[0])
	assert.Equal(t, "2024Q1:2024Q2", orig.Quarters.String())
}

func TestConfiguration_SetKeepsPosition(t *testing.T) {
	cfg := New()
	cfg.Set("a", &VariableSpec{Category: "C", Method: SingleValueFill, Input: Scalar("1")})
	cfg.Set("b", &VariableSpec{Category: "C", Method: SingleValueFill, Input: Scalar("2")})
	cfg.Set("a", &VariableSpec{Category: "C", Method: SingleValueFill, Input: Scalar("3")})

	assert.Equal(t, []string{"a", "b"}, cfg.Names(), "overwrite keeps document position")
	spec, _ := cfg.Get("a")
	assert.Equal(t, Scalar("3"), spec.Input)
}

func TestConfiguration_CloneIsDeep(t *testing.T) {
	cfg := New()
	cfg.Set("a", &VariableSpec{Category: "C", Method: SingleValueFill, Input: Scalar("1")})

	clone := cfg.Clone()
	clone.Set("a", &VariableSpec{Category: "C", Method: SingleValueFill, Input: Scalar("2")})
	clone.Set("b", &VariableSpec{Category: "C", Method: SingleValueFill, Input: Scalar("9")})

	spec, _ := cfg.Get("a")
	assert.Equal(t, Scalar("1"), spec.Input)
	assert.Equal(t, 1, cfg.Len())
	assert.False(t, cfg.Has("b"))
}

func TestConfiguration_NamesIsACopy(t *testing.T) {
	cfg := New()
	cfg.Set("a", &VariableSpec{Category: "C", Method: SingleValueFill, Input: Scalar("1")})

	names := cfg.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"a"}, cfg.Names())
}
