package config

import (
	"errors"
	"fmt"
)

// MissingBaselineError indicates the baseline specification file does not
// exist. Fatal to session start: no partial session is ever constructed.
type MissingBaselineError struct {
	Path string
}

// Error implements the error interface.
func (e *MissingBaselineError) Error() string {
	return fmt.Sprintf("baseline specification not found: %s", e.Path)
}

// IsMissingBaseline returns true if the error is a missing-baseline error.
// Uses errors.As to handle wrapped errors.
func IsMissingBaseline(err error) bool {
	var me *MissingBaselineError
	return errors.As(err, &me)
}

// MalformedSpecError indicates the baseline file exists but violates the
// document schema or the VariableSpec cross-field invariant. Fatal to
// session start.
type MalformedSpecError struct {
	// Path is the file that failed validation.
	Path string

	// Variable names the offending record when the violation is
	// attributable to one; empty for document-level problems.
	Variable string

	// Reason describes the violation.
	Reason string
}

// Error implements the error interface.
func (e *MalformedSpecError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("malformed specification %s: variable %q: %s", e.Path, e.Variable, e.Reason)
	}
	return fmt.Sprintf("malformed specification %s: %s", e.Path, e.Reason)
}

// IsMalformedSpec returns true if the error is a malformed-spec error.
// Uses errors.As to handle wrapped errors.
func IsMalformedSpec(err error) bool {
	var me *MalformedSpecError
	return errors.As(err, &me)
}
