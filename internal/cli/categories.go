package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calebw/forecfg/internal/config"
)

// CategoryListing is one category and its variables, in document order.
type CategoryListing struct {
	Category  string   `json:"category"`
	Variables []string `json:"variables"`
}

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories and their variables",
		Long: `Derive the category grouping from the committed document. Categories
appear in first-seen order; variables keep document order within each.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(rootOpts, cmd)
		},
	}

	return cmd
}

func runCategories(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	sess, _, err := openSession(opts)
	if err != nil {
		return err
	}

	index := config.GroupByCategory(sess.Committed())
	listings := make([]CategoryListing, 0, len(index.Categories()))
	for _, cat := range index.Categories() {
		listings = append(listings, CategoryListing{
			Category:  cat,
			Variables: index.Variables(cat),
		})
	}

	if opts.Format == "json" {
		return formatter.Success(listings)
	}

	var b strings.Builder
	for i, listing := range listings {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s:\n", listing.Category)
		for _, name := range listing.Variables {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), b.String())
	return nil
}
