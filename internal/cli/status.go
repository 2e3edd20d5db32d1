package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebw/forecfg/internal/recovery"
)

// SessionStatus describes the recovery state before any choice is made.
type SessionStatus struct {
	State            string `json:"state"`
	SnapshotPath     string `json:"snapshot_path"`
	CorruptDiscarded bool   `json:"corrupt_discarded,omitempty"`
}

// NewSessionCommand creates the session command group.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or discard the recovery snapshot",
	}

	cmd.AddCommand(newSessionStatusCommand(rootOpts))
	cmd.AddCommand(newSessionDiscardCommand(rootOpts))
	return cmd
}

func newSessionStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether a previous session snapshot exists",
		Long: `Check the recovery snapshot. A snapshot that exists but fails to
decode is deleted here, exactly as it would be at session start.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionStatus(rootOpts, cmd)
		},
	}
}

func runSessionStatus(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	mgr := recovery.NewManager(opts.Dir, opts.Spec)
	state, err := mgr.CheckSnapshot()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to check recovery snapshot", err)
	}

	status := SessionStatus{
		State:            string(state),
		SnapshotPath:     mgr.SnapshotPath(),
		CorruptDiscarded: mgr.CorruptionDiscarded() != nil,
	}
	if opts.Format == "json" {
		return formatter.Success(status)
	}

	switch state {
	case recovery.StatePromptPending:
		return formatter.Success(fmt.Sprintf("previous session snapshot at %s: pass --resume or --fresh to the next command", status.SnapshotPath))
	default:
		if status.CorruptDiscarded {
			return formatter.Success("corrupt snapshot discarded; no previous session")
		}
		return formatter.Success("no previous session snapshot")
	}
}

func newSessionDiscardCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "discard",
		Short: "Delete the recovery snapshot",
		Long:  `Delete the recovery snapshot so the next command starts fresh from the baseline.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionDiscard(rootOpts, cmd)
		},
	}
}

func runSessionDiscard(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	mgr := recovery.NewManager(opts.Dir, opts.Spec)
	state, err := mgr.CheckSnapshot()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to check recovery snapshot", err)
	}
	if state != recovery.StatePromptPending {
		return formatter.Success("no previous session snapshot to discard")
	}

	if _, err := mgr.Discard(); err != nil {
		return baselineExitError(err)
	}
	return formatter.Success("snapshot discarded; next command starts fresh")
}
