package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/release-changelog/internal/app"
	"github.com/runoshun/release-changelog/internal/domain"
	"github.com/runoshun/release-changelog/internal/infra/render"
	"github.com/runoshun/release-changelog/internal/usecase"
)

// actionsOutputName is the step output the changelog is published under.
const actionsOutputName = "changelog"

// newGenerateCommand creates the generate command.
func newGenerateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Channel      string
		Format       string
		GitHubOutput bool
	}

	cmd := &cobra.Command{
		Use:   "generate [version]",
		Short: "Generate the changelog of a release",
		Long: `Generate the changelog of a release.

The version defaults to $CURRENT_VERSION. The changelog lists every tagged
line of the pull requests merged into the release branch since the previous
release of the channel.

With --github-output the JSON changelog is also written to $GITHUB_OUTPUT as
the "changelog" step output.`,
		Example: `  changelog generate v0.2022.04.11.09.09.stable_02
  CURRENT_VERSION=v0.2022.04.11.09.09.stable_02 changelog generate --format text`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			cfg := appConfig(c)
			version, channel := releaseArgs(cfg, args, opts.Channel)
			format := opts.Format
			if format == "" {
				format = cfg.Changelog.Format
			}
			if err := domain.ValidateFormat(format); err != nil {
				return err
			}

			uc, err := c.GenerateChangelogUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.GenerateChangelogInput{
				CurrentVersion: version,
				Channel:        channel,
			})
			if err != nil {
				return err
			}

			if opts.GitHubOutput {
				data, err := json.Marshal(out.Changelog)
				if err != nil {
					return err
				}
				if err := render.WriteActionsOutput(os.Getenv(render.EnvGitHubOutput), actionsOutputName, string(data)); err != nil {
					return fmt.Errorf("write step output: %w", err)
				}
			}

			return render.Changelog(cmd.OutOrStdout(), out.Changelog, format)
		},
	}

	cmd.Flags().StringVarP(&opts.Channel, "channel", "c", "", "Release channel (default from config, \"stable\")")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: json, yaml or text (default from config, \"json\")")
	cmd.Flags().BoolVar(&opts.GitHubOutput, "github-output", false, "Also write the changelog to $GITHUB_OUTPUT")

	return cmd
}
