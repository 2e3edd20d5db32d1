package recovery

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/calebw/forecfg/internal/config"
	"github.com/calebw/forecfg/internal/session"
)

// State is the recovery manager's position in its state machine.
type State string

const (
	// StateNoSnapshot: no snapshot file exists; the session seeds from the
	// baseline file.
	StateNoSnapshot State = "no_snapshot"

	// StatePromptPending: a snapshot exists and the resume-or-discard
	// choice has not been made. The session must not proceed.
	StatePromptPending State = "prompt_pending"

	// StateResumed: terminal; committed state came from the snapshot.
	StateResumed State = "resumed"

	// StateFresh: terminal; committed state came from the baseline file.
	StateFresh State = "fresh"
)

// SnapshotFilename is the well-known recovery snapshot name inside the
// working directory.
const SnapshotFilename = "temp_config.json"

// artifactTimeFormat produces names like config_20240115_103000.json.
const artifactTimeFormat = "20060102_150405"

// Manager drives the recovery state machine for one working directory.
// Not safe for concurrent use; one manager per session.
type Manager struct {
	dir      string
	specPath string

	state    State
	snapshot *config.Configuration // decoded once by CheckSnapshot
	corrupt  *SnapshotDecodeError

	now func() time.Time
}

// NewManager creates a manager persisting to dir, seeding sessions from the
// baseline specification at specPath.
func NewManager(dir, specPath string) *Manager {
	return &Manager{
		dir:      dir,
		specPath: specPath,
		now:      time.Now,
	}
}

// SetClock overrides the timestamp source for artifact naming. For tests.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// State returns the manager's current state. Zero value before
// CheckSnapshot has run is the empty string.
func (m *Manager) State() State {
	return m.state
}

// SnapshotPath returns the snapshot file location.
func (m *Manager) SnapshotPath() string {
	return filepath.Join(m.dir, SnapshotFilename)
}

// CorruptionDiscarded returns the decode error of a corrupt snapshot that
// CheckSnapshot deleted, or nil. Informational only - corruption is never
// fatal.
func (m *Manager) CorruptionDiscarded() error {
	if m.corrupt == nil {
		return nil
	}
	return m.corrupt
}

// CheckSnapshot inspects the snapshot file and moves the manager to
// StateNoSnapshot or StatePromptPending. The snapshot is read and decoded
// exactly once, here. A snapshot that fails to decode is deleted and
// treated as absent.
func (m *Manager) CheckSnapshot() (State, error) {
	path := m.SnapshotPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		m.state = StateNoSnapshot
		return m.state, nil
	}
	if err != nil {
		return "", fmt.Errorf("read snapshot %s: %w", path, err)
	}

	snap, decodeErr := config.Decode(bytes.NewReader(data))
	if decodeErr == nil {
		for _, name := range snap.Names() {
			spec, _ := snap.Get(name)
			if err := spec.Validate(); err != nil {
				decodeErr = fmt.Errorf("variable %q: %w", name, err)
				break
			}
		}
	}
	if decodeErr != nil {
		m.corrupt = &SnapshotDecodeError{Path: path, Err: decodeErr}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return "", &PersistError{Op: "remove snapshot", Path: path, Err: err}
		}
		m.state = StateNoSnapshot
		return m.state, nil
	}

	m.snapshot = snap
	m.state = StatePromptPending
	return m.state, nil
}

// Fresh seeds a session from the baseline file: baseline and committed both
// start as the loaded document, committed as a deep copy. Valid from
// StateNoSnapshot (and from the zero state, where it implies a prior
// CheckSnapshot would have found nothing).
func (m *Manager) Fresh() (*session.Session, error) {
	if m.state == StatePromptPending {
		return nil, fmt.Errorf("recovery: snapshot exists; choose Resume or Discard")
	}
	baseline, err := config.LoadBaseline(m.specPath)
	if err != nil {
		return nil, err
	}
	m.state = StateFresh
	return session.New(baseline, baseline.Clone(), m), nil
}

// Resume seeds a session from the snapshot: committed is the snapshot
// contents, baseline is reloaded from the canonical specification file -
// never from the snapshot - so diffing reflects true original values.
// Valid only from StatePromptPending.
func (m *Manager) Resume() (*session.Session, error) {
	if m.state != StatePromptPending {
		return nil, fmt.Errorf("recovery: no snapshot to resume (state %s)", m.state)
	}
	baseline, err := config.LoadBaseline(m.specPath)
	if err != nil {
		return nil, err
	}
	m.state = StateResumed
	return session.New(baseline, m.snapshot, m), nil
}

// Discard deletes the snapshot and seeds a fresh session. Valid only from
// StatePromptPending.
func (m *Manager) Discard() (*session.Session, error) {
	if m.state != StatePromptPending {
		return nil, fmt.Errorf("recovery: no snapshot to discard (state %s)", m.state)
	}
	path := m.SnapshotPath()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, &PersistError{Op: "remove snapshot", Path: path, Err: err}
	}
	m.snapshot = nil
	m.state = StateNoSnapshot
	return m.Fresh()
}

// Persist overwrites the snapshot with the committed document. Called by
// the session after every mutation. The write goes to a temp file in the
// same directory and renames into place, so a crash mid-write never leaves
// a truncated snapshot.
func (m *Manager) Persist(cfg *config.Configuration) error {
	path := m.SnapshotPath()
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		return &PersistError{Op: "persist snapshot", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(m.dir, SnapshotFilename+".*")
	if err != nil {
		return &PersistError{Op: "persist snapshot", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistError{Op: "persist snapshot", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &PersistError{Op: "persist snapshot", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &PersistError{Op: "persist snapshot", Path: path, Err: err}
	}
	return nil
}

// CommitFinal writes the committed document to a new timestamp-named
// artifact and deletes the snapshot. Returns the artifact filename
// (relative to the working directory).
//
// The artifact is created with O_EXCL and never overwritten; a collision
// within the one-second timestamp resolution bumps a numeric suffix. If the
// write fails the snapshot is left intact so recovery remains possible.
func (m *Manager) CommitFinal(cfg *config.Configuration) (string, error) {
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		return "", &PersistError{Op: "commit final", Path: m.dir, Err: err}
	}

	stamp := m.now().Format(artifactTimeFormat)
	name, err := m.createArtifact(stamp, buf.Bytes())
	if err != nil {
		return "", err
	}

	snapPath := m.SnapshotPath()
	if err := os.Remove(snapPath); err != nil && !os.IsNotExist(err) {
		// The artifact is written; report the leftover snapshot rather
		// than pretending the commit failed.
		return name, &PersistError{Op: "remove snapshot", Path: snapPath, Err: err}
	}
	return name, nil
}

func (m *Manager) createArtifact(stamp string, data []byte) (string, error) {
	for attempt := 0; ; attempt++ {
		name := fmt.Sprintf("config_%s.json", stamp)
		if attempt > 0 {
			name = fmt.Sprintf("config_%s_%d.json", stamp, attempt)
		}
		path := filepath.Join(m.dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", &PersistError{Op: "commit final", Path: path, Err: err}
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return "", &PersistError{Op: "commit final", Path: path, Err: err}
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", &PersistError{Op: "commit final", Path: path, Err: err}
		}
		return name, nil
	}
}
