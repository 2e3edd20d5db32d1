package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calebw/forecfg/internal/config"
	"github.com/calebw/forecfg/internal/quarter"
	"github.com/calebw/forecfg/internal/recovery"
	"github.com/calebw/forecfg/internal/session"
)

// SetOptions holds flags for the set command.
type SetOptions struct {
	*RootOptions
	Method   string
	Value    string
	Quarters string
	Values   string
}

// ApplyResult reports a committed mutation: the affected variables and the
// resulting changed set.
type ApplyResult struct {
	Applied []string `json:"applied"`
	Changed []string `json:"changed"`
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <variable>",
		Short: "Edit one variable and commit the change",
		Long: `Stage an edit to a single variable in a draft buffer and apply it to
the committed document. The recovery snapshot is rewritten on success.

A quarterly edit whose value count does not match the expanded quarter
range resets to a zero-filled sequence of the correct length.

Examples:
  forecfg set gdp_growth --method single_value_fill --value 2.5
  forecfg set cpi --method quarterly_values_fill --quarters 2024Q1:2024Q4 --values 1,2,3,4`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Method, "method", "", "fill method (single_value_fill|quarterly_values_fill)")
	cmd.Flags().StringVar(&opts.Value, "value", "", "scalar fill value (single_value_fill)")
	cmd.Flags().StringVar(&opts.Quarters, "quarters", "", "inclusive quarter range, e.g. 2024Q1:2027Q4")
	cmd.Flags().StringVar(&opts.Values, "values", "", "comma-separated quarterly values, one per quarter")
	_ = cmd.MarkFlagRequired("method")

	return cmd
}

func runSet(opts *SetOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	method := config.Method(opts.Method)
	if !method.Valid() {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown method %q: want %q or %q",
			opts.Method, config.SingleValueFill, config.QuarterlyValuesFill))
	}
	if method == config.SingleValueFill && (opts.Quarters != "" || opts.Values != "") {
		return NewExitError(ExitCommandError, "--quarters and --values are only valid with quarterly_values_fill")
	}
	if method == config.QuarterlyValuesFill && opts.Value != "" {
		return NewExitError(ExitCommandError, "--value is only valid with single_value_fill")
	}

	sess, _, err := openSession(opts.RootOptions)
	if err != nil {
		return err
	}

	draft, err := sess.Draft(name)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot edit variable", err)
	}
	if err := draft.SetMethod(method); err != nil {
		return WrapExitError(ExitCommandError, "cannot edit variable", err)
	}

	switch method {
	case config.SingleValueFill:
		if opts.Value != "" {
			n, err := parseNumber(opts.Value)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --value", err)
			}
			draft.SetScalar(n)
		}
	case config.QuarterlyValuesFill:
		if opts.Quarters != "" {
			r, err := quarter.ParseRange(opts.Quarters)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --quarters", err)
			}
			draft.SetQuarters(r)
		}
		if opts.Values != "" {
			values, err := parseNumberList(opts.Values)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --values", err)
			}
			draft.SetValues(values)
		}
	}

	if err := draft.Apply(); err != nil {
		return applyExitError(err)
	}

	return reportApply(formatter, opts.RootOptions, sess, []string{name})
}

// applyExitError maps a failed apply onto an exit code. A persist failure
// is fatal here: between CLI invocations the snapshot is the only carrier
// of committed state, so an unwritten snapshot means the edit is lost.
func applyExitError(err error) error {
	if recovery.IsPersistError(err) {
		return WrapExitError(ExitCommandError, "edit applied but snapshot write failed; the edit is not saved", err)
	}
	return WrapExitError(ExitCommandError, "apply failed", err)
}

func reportApply(formatter *OutputFormatter, opts *RootOptions, sess *session.Session, applied []string) error {
	changed := sess.ChangedNames()
	if changed == nil {
		changed = []string{}
	}

	if opts.Format == "json" {
		return formatter.Success(ApplyResult{Applied: applied, Changed: changed})
	}
	return formatter.Success(fmt.Sprintf("applied %s; changed from baseline: %d",
		strings.Join(applied, ", "), len(changed)))
}

// parseNumber parses one JSON number literal, keeping its representation.
func parseNumber(s string) (json.Number, error) {
	var n json.Number
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &n); err != nil {
		return "", fmt.Errorf("not a number: %q", s)
	}
	return n, nil
}

// parseNumberList parses a comma-separated list of JSON number literals.
func parseNumberList(s string) ([]json.Number, error) {
	parts := strings.Split(s, ",")
	out := make([]json.Number, 0, len(parts))
	for _, part := range parts {
		n, err := parseNumber(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
