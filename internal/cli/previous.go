package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/release-changelog/internal/app"
	"github.com/runoshun/release-changelog/internal/usecase"
)

// newPreviousCommand creates the previous command.
func newPreviousCommand(c *app.Container) *cobra.Command {
	var channel string

	cmd := &cobra.Command{
		Use:   "previous [version]",
		Short: "Show the release a version is compared against",
		Long: `Show the previous release of a version and the two release branches
whose commits make up the changelog. Pull requests are not fetched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			version, ch := releaseArgs(appConfig(c), args, channel)

			uc, err := c.FindPreviousReleaseUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.FindPreviousReleaseInput{
				CurrentVersion: version,
				Channel:        ch,
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "Current version:\t%s\n", version)
			_, _ = fmt.Fprintf(w, "Previous version:\t%s\n", out.PreviousVersion)
			_, _ = fmt.Fprintf(w, "Current branch:\t%s\n", out.CurrentBranch)
			_, _ = fmt.Fprintf(w, "Previous branch:\t%s\n", out.PreviousBranch)
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&channel, "channel", "c", "", "Release channel (default from config, \"stable\")")

	return cmd
}
