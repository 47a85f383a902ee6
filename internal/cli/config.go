package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/release-changelog/internal/app"
	"github.com/runoshun/release-changelog/internal/domain"
	"github.com/runoshun/release-changelog/internal/infra/config"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage release-changelog configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigTemplateCommand())
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging the global file, the
repository file and the environment. The token is never printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if c.ConfigManager != nil {
				_, _ = fmt.Fprintln(w, "[Loaded from]")
				for _, info := range []domain.ConfigInfo{
					c.ConfigManager.GetGlobalConfigInfo(),
					c.ConfigManager.GetRepoConfigInfo(),
				} {
					if info.Path == "" {
						continue
					}
					if info.Exists {
						_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
					} else {
						_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
					}
				}
				_, _ = fmt.Fprintln(w)
			}

			token := "not set"
			if c.AppConfig.Token != "" {
				token = "set"
			}
			_, _ = fmt.Fprintf(w, "[Environment]\ntoken: %s\n", token)
			if c.AppConfig.CurrentVersion != "" {
				_, _ = fmt.Fprintf(w, "current version: %s\n", c.AppConfig.CurrentVersion)
			}
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Effective Config]")
			data, err := config.Marshal(c.AppConfig)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		},
	}
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the default configuration template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Template()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with default values",
		Long: `Create .changelog.toml in the repository root, or the global
config file with --global. Existing files are never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var manager domain.ConfigManager
			if c != nil && c.ConfigManager != nil {
				manager = c.ConfigManager
			} else {
				manager = config.NewManager("")
			}

			if global {
				if err := manager.InitGlobalConfig(); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", manager.GetGlobalConfigInfo().Path)
				return nil
			}

			if err := manager.InitRepoConfig(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", manager.GetRepoConfigInfo().Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "Create the global config file instead")

	return cmd
}
