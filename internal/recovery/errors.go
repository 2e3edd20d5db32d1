package recovery

import (
	"errors"
	"fmt"
)

// SnapshotDecodeError records a recovery snapshot that existed but failed
// to decode. It is recovered automatically - the corrupt file is deleted
// and the session starts fresh - so it surfaces only through
// Manager.CorruptionDiscarded, never as a returned error.
type SnapshotDecodeError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *SnapshotDecodeError) Error() string {
	return fmt.Sprintf("corrupt recovery snapshot %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *SnapshotDecodeError) Unwrap() error {
	return e.Err
}

// PersistError reports a failed snapshot or artifact write with enough
// context (operation, path) for the operator to retry.
type PersistError struct {
	// Op names the failed operation: "persist snapshot", "commit final",
	// "remove snapshot".
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// IsPersistError returns true if the error is a persist error.
// Uses errors.As to handle wrapped errors.
func IsPersistError(err error) bool {
	var pe *PersistError
	return errors.As(err, &pe)
}
