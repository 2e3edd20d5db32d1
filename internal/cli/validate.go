package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calebw/forecfg/internal/config"
)

// ValidationResult holds validation results for the baseline file.
type ValidationResult struct {
	Valid      bool   `json:"valid"`
	Path       string `json:"path"`
	Variables  int    `json:"variables"`
	Categories int    `json:"categories"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the baseline specification file",
		Long: `Load the baseline specification and check it against the document
schema and the per-variable invariants, without opening a session.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	cfg, err := config.LoadBaseline(opts.Spec)
	if err != nil {
		code := "MALFORMED_SPEC"
		if config.IsMissingBaseline(err) {
			code = "MISSING_BASELINE"
		}
		_ = formatter.Error(code, err.Error(), nil)
		if config.IsMalformedSpec(err) {
			return WrapExitError(ExitFailure, "baseline validation failed", err)
		}
		return WrapExitError(ExitCommandError, "failed to load baseline", err)
	}

	index := config.GroupByCategory(cfg)
	result := ValidationResult{
		Valid:      true,
		Path:       opts.Spec,
		Variables:  cfg.Len(),
		Categories: len(index.Categories()),
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("%s: valid (%d variables, %d categories: %s)",
		result.Path, result.Variables, result.Categories,
		strings.Join(index.Categories(), ", ")))
}
