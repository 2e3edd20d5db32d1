package config

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderedDoc = `{
  "zeta": {"category": "B", "method": "single_value_fill", "input": 1, "quarters": null},
  "alpha": {"category": "A", "method": "quarterly_values_fill", "input": [0, 0.0, 2.50], "quarters": "2024Q1:2024Q3"},
  "mid": {"category": "B", "method": "single_value_fill", "input": -3.5e2, "quarters": null}
}`

func TestDecode_PreservesKeyOrder(t *testing.T) {
	cfg, err := Decode(strings.NewReader(orderedDoc))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, cfg.Names())
}

func TestDecode_PreservesNumberLiterals(t *testing.T) {
	cfg, err := Decode(strings.NewReader(orderedDoc))
	require.NoError(t, err)

	spec, ok := cfg.Get("alpha")
	require.True(t, ok)
	seq, ok := spec.Input.(Sequence)
	require.True(t, ok)
	assert.Equal(t, Sequence{"0", "0.0", "2.50"}, seq, "literals must survive decoding")

	scalar, ok := cfg.vars["mid"].Input.(Scalar)
	require.True(t, ok)
	assert.Equal(t, Scalar("-3.5e2"), scalar)
}

// Round-trip law: serialize-then-parse yields an identical document, and a
// second serialization is byte-identical to the first.
func TestRoundTrip_Stable(t *testing.T) {
	cfg, err := Decode(strings.NewReader(orderedDoc))
	require.NoError(t, err)

	first, err := cfg.MarshalJSON()
	require.NoError(t, err)

	reparsed := New()
	require.NoError(t, reparsed.UnmarshalJSON(first))
	second, err := reparsed.MarshalJSON()
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, cfg.Names(), reparsed.Names())
}

func TestEncode_IndentedWithTrailingNewline(t *testing.T) {
	cfg := New()
	cfg.Set("a", &VariableSpec{Category: "C", Method: SingleValueFill, Input: Scalar("1.5")})

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))

	want := `{
  "a": {
    "category": "C",
    "method": "single_value_fill",
    "input": 1.5,
    "quarters": null
  }
}
`
	assert.Equal(t, want, buf.String())
}

func TestDecode_TopLevelNotObject(t *testing.T) {
	_, err := Decode(strings.NewReader(`[1,2,3]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top level")
}

func TestDecode_DuplicateKey(t *testing.T) {
	doc := `{
  "a": {"category": "C", "method": "single_value_fill", "input": 1, "quarters": null},
  "a": {"category": "C", "method": "single_value_fill", "input": 2, "quarters": null}
}`
	_, err := Decode(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestDecode_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"category", `{"a": {"method": "single_value_fill", "input": 1, "quarters": null}}`, "missing category"},
		{"method", `{"a": {"category": "C", "input": 1, "quarters": null}}`, "missing method"},
		{"input", `{"a": {"category": "C", "method": "single_value_fill", "quarters": null}}`, "missing input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecode_BadQuartersString(t *testing.T) {
	doc := `{"a": {"category": "C", "method": "quarterly_values_fill", "input": [1], "quarters": "2024Q5:2024Q6"}}`
	_, err := Decode(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quarter label")
}

func TestVariableSpec_MarshalFieldOrder(t *testing.T) {
	spec := &VariableSpec{Category: "C", Method: SingleValueFill, Input: Scalar("0")}
	out, err := json.Marshal(spec)
	require.NoError(t, err)
	assert.Equal(t, `{"category":"C","method":"single_value_fill","input":0,"quarters":null}`, string(out))
}

func TestEncodeInput_RejectsInvalidLiteral(t *testing.T) {
	_, err := encodeInput(Scalar("not-a-number"))
	require.Error(t, err)
}
