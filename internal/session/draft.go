package session

import (
	"encoding/json"
	"fmt"

	"github.com/calebw/forecfg/internal/config"
	"github.com/calebw/forecfg/internal/quarter"
)

// Draft is the editable buffer for one variable. It accumulates in-progress
// edits without touching the committed document; Apply folds it in
// atomically and discards it.
type Draft struct {
	session *Session
	name    string

	method   config.Method
	input    config.Input
	quarters *quarter.Range
}

// Draft returns the draft buffer for name, creating it from the committed
// state on first touch. Returns ErrUnknownVariable for names not in the
// document.
func (s *Session) Draft(name string) (*Draft, error) {
	if d, ok := s.drafts[name]; ok {
		return d, nil
	}
	spec, ok := s.committed.Get(name)
	if !ok {
		return nil, fmt.Errorf("draft %q: %w", name, ErrUnknownVariable)
	}
	d := &Draft{
		session: s,
		name:    name,
		method:  spec.Method,
		input:   spec.Input.Clone(),
	}
	if spec.Quarters != nil {
		r := *spec.Quarters
		d.quarters = &r
	}
	s.drafts[name] = d
	return d, nil
}

// DiscardDraft drops the draft buffer for name, if one exists. Committed
// state is untouched.
func (s *Session) DiscardDraft(name string) {
	delete(s.drafts, name)
}

// HasDraft reports whether a draft buffer exists for name.
func (s *Session) HasDraft(name string) bool {
	_, ok := s.drafts[name]
	return ok
}

// Name returns the variable this draft edits.
func (d *Draft) Name() string { return d.name }

// SetMethod records a fill-method change in the draft.
func (d *Draft) SetMethod(m config.Method) error {
	if !m.Valid() {
		return fmt.Errorf("draft %q: unknown method %q", d.name, m)
	}
	d.method = m
	return nil
}

// SetScalar records a single fill value in the draft.
func (d *Draft) SetScalar(n json.Number) {
	d.input = config.Scalar(n)
}

// SetQuarters records a quarter range in the draft.
func (d *Draft) SetQuarters(r quarter.Range) {
	d.quarters = &r
}

// SetValues records a quarterly value sequence in the draft. The slice is
// copied.
func (d *Draft) SetValues(values []json.Number) {
	d.input = config.Sequence(values).Clone()
}

// Apply folds the draft into the committed document and discards the
// draft. The fold is all-or-nothing: the replacement spec is fully built
// and validated before the committed document is touched.
//
// Reconciliation rules applied while building the spec:
//
//   - single_value_fill: the quarters range is cleared; a non-scalar input
//     resets to the scalar 0.
//   - quarterly_values_fill: a quarters range is required (error if the
//     draft has none); an input that is not a sequence of exactly the
//     expanded range length resets to a zero-filled sequence of the correct
//     length.
//
// After a successful fold the committed document is handed to the session's
// persister. A persist failure is returned but the mutation stands; the
// snapshot write is retried on the next mutation.
func (d *Draft) Apply() error {
	current, ok := d.session.committed.Get(d.name)
	if !ok {
		return fmt.Errorf("apply draft %q: %w", d.name, ErrUnknownVariable)
	}

	spec := &config.VariableSpec{
		Category: current.Category,
		Method:   d.method,
	}

	switch d.method {
	case config.SingleValueFill:
		scalar, isScalar := d.input.(config.Scalar)
		if !isScalar {
			scalar = config.Scalar(json.Number("0"))
		}
		spec.Input = scalar
		spec.Quarters = nil

	case config.QuarterlyValuesFill:
		if d.quarters == nil {
			return fmt.Errorf("apply draft %q: method %q requires a quarters range", d.name, d.method)
		}
		r := *d.quarters
		spec.Quarters = &r
		want := r.Len()
		seq, isSeq := d.input.(config.Sequence)
		if !isSeq || len(seq) != want {
			seq = config.ZeroSequence(want)
		}
		spec.Input = seq.Clone().(config.Sequence)

	default:
		return fmt.Errorf("apply draft %q: unknown method %q", d.name, d.method)
	}

	if err := spec.Validate(); err != nil {
		return fmt.Errorf("apply draft %q: %w", d.name, err)
	}

	d.session.committed.Set(d.name, spec)
	d.session.DiscardDraft(d.name)
	return d.session.persist()
}
