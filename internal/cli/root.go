// Package cli is the operator surface over the session core: one cobra
// command per user action, with session continuity carried by the recovery
// snapshot between invocations. Commands call only the core entry points
// (config.LoadBaseline, config.GroupByCategory, session operations, the
// recovery manager) and never touch the session files directly.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Spec is the baseline specification file.
	Spec string

	// Dir is the working directory holding the recovery snapshot and
	// final artifacts.
	Dir string

	// Resume / Fresh resolve the resume-or-discard choice when a
	// recovery snapshot exists. Exactly one may be set.
	Resume bool
	Fresh  bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the forecfg CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "forecfg",
		Short: "forecfg - forecast input configuration editor",
		Long: `Edit a categorized set of forecast-input variables and persist the
result as JSON. Every committed change is auto-saved to a recovery snapshot;
an interrupted session can be resumed or discarded on the next invocation.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Resume && opts.Fresh {
				return fmt.Errorf("--resume and --fresh are mutually exclusive")
			}

			logLevel := slog.LevelInfo
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Spec, "spec", "dummy_spec.json", "baseline specification file")
	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", ".", "working directory for snapshot and artifacts")
	cmd.PersistentFlags().BoolVar(&opts.Resume, "resume", false, "resume from an existing recovery snapshot")
	cmd.PersistentFlags().BoolVar(&opts.Fresh, "fresh", false, "discard an existing recovery snapshot and start fresh")

	// Add subcommands
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewCategoriesCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewSaveCommand(opts))
	cmd.AddCommand(NewSessionCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
