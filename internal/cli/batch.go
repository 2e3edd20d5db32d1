package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebw/forecfg/internal/config"
	"github.com/calebw/forecfg/internal/quarter"
	"github.com/calebw/forecfg/internal/session"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Vars     []string
	Category string
	Method   string
	Value    string
	Quarters string
	Values   string
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Apply one settings payload to many variables",
		Long: `Apply the same method, input, and quarter range to every selected
variable, overwriting prior values. Selection is by explicit --vars list or
by --category. Each variable receives an independent copy of the values.

Examples:
  forecfg batch --vars gdp_growth,cpi --method single_value_fill --value 0
  forecfg batch --category Macro --method quarterly_values_fill --quarters 2024Q1:2024Q4 --values 1,2,3,4`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Vars, "vars", nil, "comma-separated variable names")
	cmd.Flags().StringVar(&opts.Category, "category", "", "select every variable in a category")
	cmd.Flags().StringVar(&opts.Method, "method", "", "fill method (single_value_fill|quarterly_values_fill)")
	cmd.Flags().StringVar(&opts.Value, "value", "", "scalar fill value (single_value_fill)")
	cmd.Flags().StringVar(&opts.Quarters, "quarters", "", "inclusive quarter range, e.g. 2024Q1:2027Q4")
	cmd.Flags().StringVar(&opts.Values, "values", "", "comma-separated quarterly values, one per quarter")
	_ = cmd.MarkFlagRequired("method")

	return cmd
}

func runBatch(opts *BatchOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if len(opts.Vars) == 0 && opts.Category == "" {
		return NewExitError(ExitCommandError, "select variables with --vars or --category")
	}
	if len(opts.Vars) > 0 && opts.Category != "" {
		return NewExitError(ExitCommandError, "--vars and --category are mutually exclusive")
	}

	settings, err := buildSettings(opts)
	if err != nil {
		return err
	}

	sess, _, err := openSession(opts.RootOptions)
	if err != nil {
		return err
	}

	names := opts.Vars
	if opts.Category != "" {
		index := config.GroupByCategory(sess.Committed())
		if !index.Has(opts.Category) {
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown category %q", opts.Category))
		}
		names = index.Variables(opts.Category)
	}

	if err := sess.ApplyBatch(names, settings); err != nil {
		return applyExitError(err)
	}

	return reportApply(formatter, opts.RootOptions, sess, names)
}

// buildSettings shapes the batch payload before the core sees it: the
// quarter range is expanded and validated, the input sized to match.
// Missing quarterly values zero-fill; an explicit count mismatch is
// rejected here rather than silently reshaped.
func buildSettings(opts *BatchOptions) (session.Settings, error) {
	method := config.Method(opts.Method)
	if !method.Valid() {
		return session.Settings{}, NewExitError(ExitCommandError, fmt.Sprintf("unknown method %q: want %q or %q",
			opts.Method, config.SingleValueFill, config.QuarterlyValuesFill))
	}

	switch method {
	case config.SingleValueFill:
		if opts.Quarters != "" || opts.Values != "" {
			return session.Settings{}, NewExitError(ExitCommandError, "--quarters and --values are only valid with quarterly_values_fill")
		}
		value := json.Number("0")
		if opts.Value != "" {
			n, err := parseNumber(opts.Value)
			if err != nil {
				return session.Settings{}, WrapExitError(ExitCommandError, "invalid --value", err)
			}
			value = n
		}
		return session.Settings{Method: method, Input: config.Scalar(value)}, nil

	default: // QuarterlyValuesFill
		if opts.Value != "" {
			return session.Settings{}, NewExitError(ExitCommandError, "--value is only valid with single_value_fill")
		}
		if opts.Quarters == "" {
			return session.Settings{}, NewExitError(ExitCommandError, "quarterly_values_fill requires --quarters")
		}
		r, err := quarter.ParseRange(opts.Quarters)
		if err != nil {
			return session.Settings{}, WrapExitError(ExitCommandError, "invalid --quarters", err)
		}

		values := config.ZeroSequence(r.Len())
		if opts.Values != "" {
			parsed, err := parseNumberList(opts.Values)
			if err != nil {
				return session.Settings{}, WrapExitError(ExitCommandError, "invalid --values", err)
			}
			if len(parsed) != r.Len() {
				return session.Settings{}, NewExitError(ExitCommandError, fmt.Sprintf(
					"--values has %d entries but %s expands to %d quarters", len(parsed), r, r.Len()))
			}
			values = config.Sequence(parsed)
		}
		return session.Settings{Method: method, Input: values, Quarters: &r}, nil
	}
}
