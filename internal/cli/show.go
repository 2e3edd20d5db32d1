package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebw/forecfg/internal/config"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [variable...]",
		Short: "Print the committed configuration",
		Long: `Print the committed document as indented JSON, either whole or
restricted to the named variables. Output preserves document order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, names []string, cmd *cobra.Command) error {
	sess, _, err := openSession(opts)
	if err != nil {
		return err
	}

	doc := sess.Committed()
	if len(names) > 0 {
		subset := config.New()
		for _, name := range names {
			spec, ok := doc.Get(name)
			if !ok {
				return NewExitError(ExitCommandError, fmt.Sprintf("unknown variable %q", name))
			}
			subset.Set(name, spec)
		}
		doc = subset
	}

	// Both formats emit the document itself; the JSON envelope would just
	// wrap JSON in JSON.
	if err := doc.Encode(cmd.OutOrStdout()); err != nil {
		return WrapExitError(ExitCommandError, "failed to encode configuration", err)
	}
	return nil
}
