// Package testutil provides shared fixtures for session tests: a canonical
// baseline document, file helpers, and a fixed clock for deterministic
// artifact names.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/calebw/forecfg/internal/config"
)

// BaselineJSON is the canonical test baseline: two categories, both fill
// methods, key order deliberately interleaved so grouping and ordering
// behavior is exercised.
const BaselineJSON = `{
  "gdp_growth": {
    "category": "Macro",
    "method": "single_value_fill",
    "input": 2.5,
    "quarters": null
  },
  "unemployment": {
    "category": "Labor",
    "method": "single_value_fill",
    "input": 4,
    "quarters": null
  },
  "cpi": {
    "category": "Macro",
    "method": "quarterly_values_fill",
    "input": [1.1, 1.2, 1.3, 1.4],
    "quarters": "2024Q1:2024Q4"
  },
  "wage_index": {
    "category": "Labor",
    "method": "quarterly_values_fill",
    "input": [100, 101, 102, 103, 104, 105, 106, 107],
    "quarters": "2024Q1:2025Q4"
  }
}
`

// WriteBaseline writes BaselineJSON into dir and returns the file path.
func WriteBaseline(t *testing.T, dir string) string {
	t.Helper()
	return WriteSpec(t, dir, BaselineJSON)
}

// WriteSpec writes an arbitrary specification document into dir as
// dummy_spec.json and returns the file path.
func WriteSpec(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "dummy_spec.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return path
}

// MustConfig decodes a configuration document or fails the test.
func MustConfig(t *testing.T, doc string) *config.Configuration {
	t.Helper()
	cfg, err := config.Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return cfg
}

// FixedClock returns a clock pinned to 2024-01-15 10:30:00 UTC, giving
// deterministic artifact names (config_20240115_103000.json).
func FixedClock() func() time.Time {
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}
