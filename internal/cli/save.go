package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SaveResult reports the final artifact written by save.
type SaveResult struct {
	Artifact string `json:"artifact"`
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Write the final timestamped configuration artifact",
		Long: `Write the committed document to a new artifact named by the current
timestamp and delete the recovery snapshot. If the artifact write fails the
snapshot stays intact, so nothing is lost.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(rootOpts, cmd)
		},
	}

	return cmd
}

func runSave(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	sess, mgr, err := openSession(opts)
	if err != nil {
		return err
	}

	artifact, err := mgr.CommitFinal(sess.Committed())
	if err != nil {
		if artifact != "" {
			// Artifact written; only the snapshot cleanup failed.
			formatter.VerboseLog("warning: %v", err)
		} else {
			return WrapExitError(ExitCommandError, "final save failed; recovery snapshot left intact", err)
		}
	}

	if opts.Format == "json" {
		return formatter.Success(SaveResult{Artifact: artifact})
	}
	return formatter.Success(fmt.Sprintf("saved %s", artifact))
}
