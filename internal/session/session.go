package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/calebw/forecfg/internal/config"
)

// ErrUnknownVariable is returned when an operation names a variable that is
// not a key of the committed document.
var ErrUnknownVariable = errors.New("unknown variable")

// Persister receives the committed document after every mutation.
// Implemented by recovery.Manager. A persist failure is reported to the
// caller but does not roll back the mutation; the next mutation retries the
// write.
type Persister interface {
	Persist(*config.Configuration) error
}

// Session is the editing context for one configuration document.
type Session struct {
	// ID is a time-sortable UUIDv7 identifying this session in logs and
	// status output.
	ID string

	baseline  *config.Configuration
	committed *config.Configuration
	drafts    map[string]*Draft
	persister Persister
}

// New creates a session over the given documents. baseline is treated as
// immutable from here on; committed is owned exclusively by the session.
// persister may be nil (tests, dry runs).
func New(baseline, committed *config.Configuration, persister Persister) *Session {
	return &Session{
		ID:        uuid.Must(uuid.NewV7()).String(),
		baseline:  baseline,
		committed: committed,
		drafts:    make(map[string]*Draft),
		persister: persister,
	}
}

// Baseline returns the original document. Callers must not mutate it.
func (s *Session) Baseline() *config.Configuration {
	return s.baseline
}

// Committed returns the working document. Callers must not mutate it
// directly; all edits go through drafts or ApplyBatch.
func (s *Session) Committed() *config.Configuration {
	return s.committed
}

// Changed returns the set of variables whose committed state differs from
// the baseline.
func (s *Session) Changed() map[string]struct{} {
	return ChangedSet(s.committed, s.baseline)
}

// ChangedNames returns the changed variables in document order.
func (s *Session) ChangedNames() []string {
	changed := s.Changed()
	var names []string
	for _, name := range s.committed.Names() {
		if _, ok := changed[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// persist hands the committed document to the persister, if any.
func (s *Session) persist() error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Persist(s.committed); err != nil {
		return fmt.Errorf("persist after mutation: %w", err)
	}
	return nil
}
