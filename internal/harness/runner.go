package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/calebw/forecfg/internal/config"
	"github.com/calebw/forecfg/internal/quarter"
	"github.com/calebw/forecfg/internal/recovery"
	"github.com/calebw/forecfg/internal/session"
)

// scenarioClock pins artifact timestamps so artifact names are
// deterministic across runs.
var scenarioClock = func() time.Time {
	return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
}

// Result captures the observable outcome of a scenario run.
type Result struct {
	// State is the recovery manager's state after the last step.
	State recovery.State

	// Changed is the changed-variable set in document order.
	Changed []string

	// SnapshotExists reports whether the snapshot file remains.
	SnapshotExists bool

	// Artifacts lists final artifact filenames in creation order.
	Artifacts []string

	// Committed is the final committed document.
	Committed *config.Configuration
}

// runner threads one manager/session pair through the steps, replacing
// both on restart steps.
type runner struct {
	dir      string
	specPath string
	mgr      *recovery.Manager
	sess     *session.Session
	result   *Result
}

// Run executes the scenario inside dir (a fresh directory owned by the
// caller) and returns the outcome.
func Run(sc *Scenario, dir string) (*Result, error) {
	specPath := filepath.Join(dir, "dummy_spec.json")
	if err := os.WriteFile(specPath, []byte(sc.Baseline), 0o644); err != nil {
		return nil, fmt.Errorf("write baseline: %w", err)
	}

	r := &runner{dir: dir, specPath: specPath, result: &Result{}}
	if err := r.open(""); err != nil {
		return nil, err
	}

	for i, step := range sc.Steps {
		if err := r.runStep(step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	r.result.State = r.mgr.State()
	r.result.Changed = r.sess.ChangedNames()
	if _, err := os.Stat(r.mgr.SnapshotPath()); err == nil {
		r.result.SnapshotExists = true
	}
	r.result.Committed = r.sess.Committed()
	return r.result, nil
}

// open runs the recovery state machine the way a process start would.
// choice resolves a pending snapshot ("resume" or "discard"); it must be
// empty when no snapshot exists.
func (r *runner) open(choice string) error {
	mgr := recovery.NewManager(r.dir, r.specPath)
	mgr.SetClock(scenarioClock)

	state, err := mgr.CheckSnapshot()
	if err != nil {
		return err
	}

	var sess *session.Session
	switch state {
	case recovery.StateNoSnapshot:
		if choice != "" {
			return fmt.Errorf("restart choice %q given but no snapshot exists", choice)
		}
		sess, err = mgr.Fresh()
	case recovery.StatePromptPending:
		switch choice {
		case "resume":
			sess, err = mgr.Resume()
		case "discard":
			sess, err = mgr.Discard()
		default:
			return fmt.Errorf("snapshot exists: restart step needs choice resume or discard, got %q", choice)
		}
	}
	if err != nil {
		return err
	}

	r.mgr = mgr
	r.sess = sess
	return nil
}

func (r *runner) runStep(step Step) error {
	switch {
	case step.Set != nil:
		return r.runSet(step.Set)
	case step.Batch != nil:
		return r.runBatch(step.Batch)
	case step.Save:
		artifact, err := r.mgr.CommitFinal(r.sess.Committed())
		if err != nil {
			return err
		}
		r.result.Artifacts = append(r.result.Artifacts, artifact)
		return nil
	case step.Restart != nil:
		return r.open(step.Restart.Choice)
	case step.CorruptSnapshot:
		return os.WriteFile(r.mgr.SnapshotPath(), []byte("{not json"), 0o644)
	default:
		return fmt.Errorf("empty step")
	}
}

func (r *runner) runSet(st *SetStep) error {
	draft, err := r.sess.Draft(st.Variable)
	if err != nil {
		return err
	}
	if err := draft.SetMethod(config.Method(st.Method)); err != nil {
		return err
	}
	if st.Value != "" {
		n, err := parseNumber(st.Value)
		if err != nil {
			return err
		}
		draft.SetScalar(n)
	}
	if st.Quarters != "" {
		rg, err := quarter.ParseRange(st.Quarters)
		if err != nil {
			return err
		}
		draft.SetQuarters(rg)
	}
	if len(st.Values) > 0 {
		values, err := parseNumbers(st.Values)
		if err != nil {
			return err
		}
		draft.SetValues(values)
	}
	return draft.Apply()
}

func (r *runner) runBatch(st *BatchStep) error {
	settings := session.Settings{Method: config.Method(st.Method)}

	switch settings.Method {
	case config.SingleValueFill:
		value := json.Number("0")
		if st.Value != "" {
			n, err := parseNumber(st.Value)
			if err != nil {
				return err
			}
			value = n
		}
		settings.Input = config.Scalar(value)

	case config.QuarterlyValuesFill:
		rg, err := quarter.ParseRange(st.Quarters)
		if err != nil {
			return err
		}
		settings.Quarters = &rg
		if len(st.Values) > 0 {
			values, err := parseNumbers(st.Values)
			if err != nil {
				return err
			}
			settings.Input = config.Sequence(values)
		} else {
			settings.Input = config.ZeroSequence(rg.Len())
		}

	default:
		return fmt.Errorf("unknown method %q", st.Method)
	}

	return r.sess.ApplyBatch(st.Variables, settings)
}

func parseNumber(s string) (json.Number, error) {
	var n json.Number
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &n); err != nil {
		return "", fmt.Errorf("not a number: %q", s)
	}
	return n, nil
}

func parseNumbers(ss []string) ([]json.Number, error) {
	out := make([]json.Number, 0, len(ss))
	for _, s := range ss {
		n, err := parseNumber(s)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
