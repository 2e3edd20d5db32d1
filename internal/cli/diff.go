package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// DiffResult lists the variables whose committed state differs from the
// baseline, in document order.
type DiffResult struct {
	Changed []string `json:"changed"`
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "List variables changed from the baseline",
		Long: `Compare the committed document against the original baseline and list
every changed variable. Scalar inputs compare numerically; quarterly value
sequences compare element-wise on their literal representation.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(rootOpts, cmd)
		},
	}

	return cmd
}

func runDiff(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	sess, _, err := openSession(opts)
	if err != nil {
		return err
	}

	changed := sess.ChangedNames()
	if opts.Format == "json" {
		if changed == nil {
			changed = []string{}
		}
		return formatter.Success(DiffResult{Changed: changed})
	}

	if len(changed) == 0 {
		return formatter.Success("no changes from baseline")
	}
	return formatter.Success(fmt.Sprintf("changed (%d): %s", len(changed), strings.Join(changed, ", ")))
}
