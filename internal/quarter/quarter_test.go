package quarter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabel_Valid(t *testing.T) {
	tests := []struct {
		in      string
		year    int
		quarter int
	}{
		{"2024Q1", 2024, 1},
		{"2024Q4", 2024, 4},
		{"1999Q2", 1999, 2},
		{"0001Q3", 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l, err := ParseLabel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.year, l.Year)
			assert.Equal(t, tt.quarter, l.Quarter)
			assert.Equal(t, tt.in, l.String())
		})
	}
}

func TestParseLabel_Invalid(t *testing.T) {
	inputs := []string{
		"2024",
		"Q12024",
		"2024Q5",
		"abcdQ1",
		"2024Q0",
		"2024q1",
		"2024Q1 ",
		" 2024Q1",
		"24Q1",
		"20245Q1",
		"",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseLabel(in)
			require.Error(t, err)
			assert.True(t, IsFormatError(err), "want FormatError, got %T", err)
		})
	}
}

func TestLabel_Next_RollsOverYear(t *testing.T) {
	assert.Equal(t, Label{Year: 2024, Quarter: 2}, Label{Year: 2024, Quarter: 1}.Next())
	assert.Equal(t, Label{Year: 2025, Quarter: 1}, Label{Year: 2024, Quarter: 4}.Next())
}

func TestExpandRange_Example(t *testing.T) {
	labels, err := ExpandRange("2024Q1", "2024Q4")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024Q1", "2024Q2", "2024Q3", "2024Q4"}, labels)
}

func TestExpandRange_CrossesYears(t *testing.T) {
	labels, err := ExpandRange("2024Q3", "2025Q2")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024Q3", "2024Q4", "2025Q1", "2025Q2"}, labels)
}

func TestExpandRange_SingleQuarter(t *testing.T) {
	labels, err := ExpandRange("2024Q2", "2024Q2")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024Q2"}, labels)
}

func TestExpandRange_EndBeforeStart_Empty(t *testing.T) {
	labels, err := ExpandRange("2025Q1", "2024Q4")
	require.NoError(t, err, "inverted range is empty, not an error")
	assert.Empty(t, labels)
	assert.NotNil(t, labels)
}

func TestExpandRange_InvalidEndpoint(t *testing.T) {
	_, err := ExpandRange("2024Q1", "2024Q5")
	assert.True(t, IsFormatError(err))

	_, err = ExpandRange("nope", "2024Q4")
	assert.True(t, IsFormatError(err))
}

// Length law: for start <= end, the expansion has quarter-distance + 1
// labels.
func TestExpandRange_LengthLaw(t *testing.T) {
	starts := []string{"2020Q1", "2020Q3", "2023Q4"}
	ends := []string{"2020Q1", "2021Q2", "2026Q3"}

	for _, s := range starts {
		for _, e := range ends {
			sl := MustParseLabel(s)
			el := MustParseLabel(e)
			if sl.Compare(el) > 0 {
				continue
			}
			labels, err := ExpandRange(s, e)
			require.NoError(t, err)
			distance := (el.Year*4 + el.Quarter) - (sl.Year*4 + sl.Quarter)
			assert.Len(t, labels, distance+1, "%s..%s", s, e)
		}
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("2024Q1:2027Q4")
	require.NoError(t, err)
	assert.Equal(t, "2024Q1:2027Q4", r.String())
	assert.Equal(t, 16, r.Len())
	assert.Len(t, r.Expand(), 16)
}

func TestParseRange_Invalid(t *testing.T) {
	for _, in := range []string{"2024Q1", "2024Q1-2024Q4", "2024Q1:2024Q5", "2024Q9:2024Q1", ":", ""} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseRange(in)
			assert.True(t, IsFormatError(err), "want FormatError for %q", in)
		})
	}
}

func TestRange_Len_Inverted(t *testing.T) {
	r := Range{Start: MustParseLabel("2025Q1"), End: MustParseLabel("2024Q1")}
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Expand())
}

func TestRange_TextRoundTrip(t *testing.T) {
	var r Range
	require.NoError(t, r.UnmarshalText([]byte("2024Q2:2025Q1")))
	out, err := r.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2024Q2:2025Q1", string(out))
}

func TestMustParseLabel_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustParseLabel("bogus") })
}
