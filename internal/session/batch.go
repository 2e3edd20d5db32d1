package session

import (
	"fmt"

	"github.com/calebw/forecfg/internal/config"
	"github.com/calebw/forecfg/internal/quarter"
)

// Settings is one payload applied to many variables by ApplyBatch. The
// caller shapes it before the call: the quarter range already expanded and
// validated, the input already sized to match.
type Settings struct {
	Method   config.Method
	Input    config.Input
	Quarters *quarter.Range
}

// validate checks that the settings satisfy the VariableSpec cross-field
// invariant, independent of any target variable.
func (st Settings) validate() error {
	probe := config.VariableSpec{
		Method:   st.Method,
		Input:    st.Input,
		Quarters: st.Quarters,
	}
	return probe.Validate()
}

// ApplyBatch applies the same settings to every named variable,
// overwriting prior values unconditionally. Each variable receives an
// independent copy of the input, so later per-variable edits never leak
// across the batch.
//
// All-or-nothing: settings and every name are checked before the first
// write, so an error never leaves the committed document partially
// mutated. Any draft buffer for an affected variable is discarded - the
// batch supersedes in-progress edits.
func (s *Session) ApplyBatch(names []string, settings Settings) error {
	if len(names) == 0 {
		return nil
	}
	if err := settings.validate(); err != nil {
		return fmt.Errorf("apply batch: %w", err)
	}
	for _, name := range names {
		if !s.committed.Has(name) {
			return fmt.Errorf("apply batch: %q: %w", name, ErrUnknownVariable)
		}
	}

	for _, name := range names {
		current, _ := s.committed.Get(name)
		spec := &config.VariableSpec{
			Category: current.Category,
			Method:   settings.Method,
			Input:    settings.Input.Clone(),
		}
		if settings.Quarters != nil {
			r := *settings.Quarters
			spec.Quarters = &r
		}
		s.committed.Set(name, spec)
		s.DiscardDraft(name)
	}
	return s.persist()
}
