package quarter

import (
	"errors"
	"fmt"
)

// FormatError reports a quarter label or range that does not match the
// required shape. It is recoverable: the caller reports it to the operator
// and aborts the current edit without touching committed state.
type FormatError struct {
	// Input is the rejected text, verbatim.
	Input string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid quarter label %q: want YYYYQ# with quarter 1-4", e.Input)
}

// IsFormatError returns true if the error is a quarter format error.
// Uses errors.As to handle wrapped errors.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
