package cli

import (
	"log/slog"

	"github.com/calebw/forecfg/internal/config"
	"github.com/calebw/forecfg/internal/recovery"
	"github.com/calebw/forecfg/internal/session"
)

// openSession runs the recovery state machine and returns a ready session.
//
// When a recovery snapshot exists, the operator must resolve the
// resume-or-discard choice explicitly with --resume or --fresh; without a
// choice the command refuses to proceed. This is the prompt-pending rule in
// a non-interactive surface: the core never guesses which state the
// operator wants.
func openSession(opts *RootOptions) (*session.Session, *recovery.Manager, error) {
	mgr := recovery.NewManager(opts.Dir, opts.Spec)

	state, err := mgr.CheckSnapshot()
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to check recovery snapshot", err)
	}
	if discarded := mgr.CorruptionDiscarded(); discarded != nil {
		slog.Warn("discarded corrupt recovery snapshot", "error", discarded)
	}

	var sess *session.Session
	switch state {
	case recovery.StateNoSnapshot:
		sess, err = mgr.Fresh()
	case recovery.StatePromptPending:
		switch {
		case opts.Resume:
			sess, err = mgr.Resume()
		case opts.Fresh:
			sess, err = mgr.Discard()
		default:
			return nil, nil, NewExitError(ExitCommandError,
				"a previous session snapshot exists at "+mgr.SnapshotPath()+
					": pass --resume to continue it or --fresh to discard it")
		}
	}
	if err != nil {
		return nil, nil, baselineExitError(err)
	}

	slog.Debug("session opened", "id", sess.ID, "state", string(mgr.State()), "spec", opts.Spec)
	return sess, mgr, nil
}

// baselineExitError maps baseline-loading failures onto exit codes:
// a malformed document is a validation failure, everything else a command
// error.
func baselineExitError(err error) error {
	if config.IsMalformedSpec(err) {
		return WrapExitError(ExitFailure, "baseline validation failed", err)
	}
	return WrapExitError(ExitCommandError, "failed to open session", err)
}
