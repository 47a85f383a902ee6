package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/release-changelog/internal/app"
)

// newTagsCommand creates the tags command.
func newTagsCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the changelog tags recognized in PR descriptions",
		Long: `List the tag registry in match order. A PR description line
"<TAG>: text" adds "text" to the bucket of the tag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			extractor := appConfig(c).Extractor()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "TAG\tBUCKET\tNOTES")
			for _, rule := range extractor.Rules() {
				var notes []string
				if rule.Deprecated {
					notes = append(notes, "deprecated")
				}
				if extractor.IsSingleValue(rule.Bucket) {
					notes = append(notes, "last value wins")
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", rule.Tag, rule.Bucket, strings.Join(notes, ", "))
			}
			return w.Flush()
		},
	}
}
