// Package cli provides the command-line interface for release-changelog.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/release-changelog/internal/app"
	"github.com/runoshun/release-changelog/internal/domain"
)

// Command group IDs.
const (
	groupRelease = "release"
	groupTools   = "tools"
)

// NewRootCommand creates the root command for release-changelog.
// It receives the container for dependency injection and version for display.
// A nil container means no git repository was found; only commands that do not
// need one will work.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "changelog",
		Short: "Release changelog generator",
		Long: `release-changelog builds the changelog of a release from the pull requests
merged since the previous release of the same channel.

Commits are taken from the difference between the two release branches
(<remote>/<channel>_release/<version>), and changelog entries are the
"CHANGELOG-<KIND>: text" lines of each pull request description.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: groupTools, Title: "Tools:"},
	)

	// Release commands
	generateCmd := newGenerateCommand(c)
	generateCmd.GroupID = groupRelease

	previousCmd := newPreviousCommand(c)
	previousCmd.GroupID = groupRelease

	// Tools
	extractCmd := newExtractCommand(c)
	extractCmd.GroupID = groupTools

	tagsCmd := newTagsCommand(c)
	tagsCmd.GroupID = groupTools

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupTools

	root.AddCommand(generateCmd, previousCmd, extractCmd, tagsCmd, configCmd)

	return root
}

// appConfig returns the loaded configuration, or the defaults without a container.
func appConfig(c *app.Container) *domain.Config {
	if c == nil || c.AppConfig == nil {
		return domain.NewDefaultConfig()
	}
	return c.AppConfig
}

// requireContainer fails commands that need a git repository.
func requireContainer(c *app.Container) error {
	if c == nil {
		return domain.ErrNotGitRepository
	}
	return nil
}

// releaseArgs resolves the version and channel of a release command.
// The positional version wins over CURRENT_VERSION; the --channel flag wins
// over the configured channel.
func releaseArgs(cfg *domain.Config, args []string, channel string) (string, string) {
	version := cfg.CurrentVersion
	if len(args) > 0 {
		version = args[0]
	}
	if channel == "" {
		channel = cfg.Changelog.Channel
	}
	return version, channel
}
