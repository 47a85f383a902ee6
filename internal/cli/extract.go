package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/release-changelog/internal/app"
	"github.com/runoshun/release-changelog/internal/domain"
	"github.com/runoshun/release-changelog/internal/infra/render"
)

// newExtractCommand creates the extract command.
func newExtractCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "extract [file...]",
		Short: "Extract changelog entries from local PR descriptions",
		Long: `Extract changelog entries from pull request descriptions stored in files.
Each file is one description, processed in argument order. Without files a
single description is read from stdin.

Useful to check a PR description or template before merging.`,
		Example: `  changelog extract pr-body.md
  gh pr view 123 --json body -q .body | changelog extract --format text`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appConfig(c)
			if format == "" {
				format = cfg.Changelog.Format
			}
			if err := domain.ValidateFormat(format); err != nil {
				return err
			}

			descriptions, err := readDescriptions(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			cl := cfg.Extractor().Extract(descriptions)
			return render.Changelog(cmd.OutOrStdout(), cl, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json, yaml or text (default from config, \"json\")")

	return cmd
}

// readDescriptions reads one description per file, or stdin when files is empty.
func readDescriptions(stdin io.Reader, files []string) ([]string, error) {
	if len(files) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []string{string(data)}, nil
	}

	descriptions := make([]string, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		descriptions = append(descriptions, string(data))
	}
	return descriptions, nil
}
