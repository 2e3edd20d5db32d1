// Package quarter parses and expands calendar-quarter labels of the form
// "YYYYQ#" (e.g. "2024Q3") and inclusive ranges of them ("2024Q1:2027Q4").
//
// All functions are pure: no I/O, no global state, safe to call repeatedly.
// Expansion of an inverted range (end before start) yields an empty sequence
// rather than an error - callers treat empty as "nothing to edit".
package quarter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var labelPattern = regexp.MustCompile(`^\d{4}Q[1-4]$`)

// Label identifies one calendar quarter.
type Label struct {
	Year    int
	Quarter int // 1-4
}

// ParseLabel parses a "YYYYQ#" label.
// Returns a *FormatError unless the input matches ^\d{4}Q[1-4]$.
func ParseLabel(s string) (Label, error) {
	if !labelPattern.MatchString(s) {
		return Label{}, &FormatError{Input: s}
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		// Unreachable given the pattern match; kept for defense in depth
		// against pattern edits.
		return Label{}, &FormatError{Input: s}
	}
	return Label{Year: year, Quarter: int(s[5] - '0')}, nil
}

// MustParseLabel parses a label and panics on failure.
// Intended for tests and fixtures with known-good labels.
func MustParseLabel(s string) Label {
	l, err := ParseLabel(s)
	if err != nil {
		panic(err)
	}
	return l
}

// String formats the label as "YYYYQ#".
func (l Label) String() string {
	return fmt.Sprintf("%04dQ%d", l.Year, l.Quarter)
}

// Next returns the quarter immediately after l.
// Quarter 4 of year Y rolls over to quarter 1 of year Y+1.
func (l Label) Next() Label {
	if l.Quarter == 4 {
		return Label{Year: l.Year + 1, Quarter: 1}
	}
	return Label{Year: l.Year, Quarter: l.Quarter + 1}
}

// index maps the label onto a monotonic quarter count, so ordering and
// distance reduce to integer arithmetic.
func (l Label) index() int {
	return l.Year*4 + (l.Quarter - 1)
}

// Compare returns -1, 0, or +1 as l is before, equal to, or after other.
func (l Label) Compare(other Label) int {
	switch {
	case l.index() < other.index():
		return -1
	case l.index() > other.index():
		return 1
	default:
		return 0
	}
}

// ExpandRange produces every quarter label from start through end inclusive.
// Both endpoints are validated with ParseLabel; either failing returns a
// *FormatError. If end precedes start the result is an empty sequence and
// no error.
func ExpandRange(start, end string) ([]string, error) {
	s, err := ParseLabel(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseLabel(end)
	if err != nil {
		return nil, err
	}
	return expand(s, e), nil
}

func expand(start, end Label) []string {
	if start.Compare(end) > 0 {
		return []string{}
	}
	labels := make([]string, 0, end.index()-start.index()+1)
	for cur := start; cur.Compare(end) <= 0; cur = cur.Next() {
		labels = append(labels, cur.String())
	}
	return labels
}

// Range is an inclusive span of quarters, serialized as "start:end".
type Range struct {
	Start Label
	End   Label
}

// ParseRange parses a "<start>:<end>" descriptor.
// Returns a *FormatError if the shape or either endpoint is invalid.
func ParseRange(s string) (Range, error) {
	start, end, ok := strings.Cut(s, ":")
	if !ok {
		return Range{}, &FormatError{Input: s}
	}
	sl, err := ParseLabel(start)
	if err != nil {
		return Range{}, err
	}
	el, err := ParseLabel(end)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: sl, End: el}, nil
}

// Expand returns every label in the range, in order. Empty if End precedes
// Start.
func (r Range) Expand() []string {
	return expand(r.Start, r.End)
}

// Len returns the number of quarters the range expands to, without
// materializing the labels.
func (r Range) Len() int {
	n := r.End.index() - r.Start.index() + 1
	if n < 0 {
		return 0
	}
	return n
}

// String formats the range as "start:end".
func (r Range) String() string {
	return r.Start.String() + ":" + r.End.String()
}

// MarshalText implements encoding.TextMarshaler.
func (r Range) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Range) UnmarshalText(text []byte) error {
	parsed, err := ParseRange(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
