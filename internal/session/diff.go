package session

import (
	"github.com/calebw/forecfg/internal/config"
	"github.com/calebw/forecfg/internal/quarter"
)

// ChangedSet compares the committed document against the baseline and
// returns the names of every changed variable.
//
// A variable is changed if its method differs, its quarters range differs,
// or its input differs. The input comparison is deliberately asymmetric:
//
//   - scalar inputs compare numerically (coerced to float64, so the
//     literals "0" and "0.0" are equal) - single-value fills tolerate
//     representation drift;
//   - sequence inputs compare element-wise on the literal number text
//     ("0" and "0.0" differ) - quarterly sequences do not.
//
// A variable present in committed but absent from baseline counts as
// changed. Both documents derive from the same key set so this is not
// expected, but a lookup miss must never fail the diff.
func ChangedSet(committed, baseline *config.Configuration) map[string]struct{} {
	changed := make(map[string]struct{})
	for _, name := range committed.Names() {
		cur, _ := committed.Get(name)
		orig, ok := baseline.Get(name)
		if !ok || specChanged(cur, orig) {
			changed[name] = struct{}{}
		}
	}
	return changed
}

func specChanged(cur, orig *config.VariableSpec) bool {
	if cur.Method != orig.Method {
		return true
	}
	if !rangesEqual(cur.Quarters, orig.Quarters) {
		return true
	}
	return inputChanged(cur.Input, orig.Input)
}

func rangesEqual(a, b *quarter.Range) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	default:
		return *a == *b
	}
}

func inputChanged(cur, orig config.Input) bool {
	switch c := cur.(type) {
	case config.Scalar:
		o, ok := orig.(config.Scalar)
		if !ok {
			return true
		}
		return scalarChanged(c, o)
	case config.Sequence:
		o, ok := orig.(config.Sequence)
		if !ok {
			return true
		}
		if len(c) != len(o) {
			return true
		}
		for i := range c {
			if c[i] != o[i] {
				return true
			}
		}
		return false
	default:
		// nil input never survives validation; treat any drift as a change.
		return cur != orig
	}
}

// scalarChanged compares scalars numerically. If either literal does not
// parse as a float the comparison falls back to the literal text, so a
// malformed value still diffs deterministically instead of erroring.
func scalarChanged(cur, orig config.Scalar) bool {
	cf, cerr := cur.Float()
	of, oerr := orig.Float()
	if cerr != nil || oerr != nil {
		return cur != orig
	}
	return cf != of
}
