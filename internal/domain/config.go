package domain

import (
	"fmt"
	"path/filepath"
	"slices"
)

// ConfigFileName is the repository config file, relative to the repository root.
const ConfigFileName = ".changelog.toml"

// GlobalConfigFileName is the config file inside the global config directory.
const GlobalConfigFileName = "config.toml"

// GlobalConfigDir returns the global config directory under configHome
// (usually $XDG_CONFIG_HOME or ~/.config).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "release-changelog")
}

// Git backends for the commit differ.
const (
	GitBackendCLI   = "cli"
	GitBackendGoGit = "go-git"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// DefaultChannel is the release channel used when none is configured.
const DefaultChannel = "stable"

// DefaultGitHubAPIURL is the public GitHub API endpoint.
const DefaultGitHubAPIURL = "https://api.github.com/"

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings       []string        `toml:"-"`
	Token          string          `toml:"-"` // Never written back to disk
	CurrentVersion string          `toml:"-"` // From CURRENT_VERSION
	GitHub         GitHubConfig    `toml:"github"`
	Git            GitConfig       `toml:"git"`
	Changelog      ChangelogConfig `toml:"changelog"`
	Log            LogConfig       `toml:"log"`
}

// GitHubConfig holds settings from the [github] section.
type GitHubConfig struct {
	Owner  string `toml:"owner,omitempty"`   // Repository owner (inferred from the remote when empty)
	Repo   string `toml:"repo,omitempty"`    // Repository name (inferred from the remote when empty)
	APIURL string `toml:"api_url,omitempty"` // API base URL, for GitHub Enterprise
}

// GitConfig holds settings from the [git] section.
type GitConfig struct {
	Remote  string `toml:"remote,omitempty"`  // Remote holding the release branches (default: origin)
	Backend string `toml:"backend,omitempty"` // "cli" (default) or "go-git"
}

// ChangelogConfig holds settings from the [changelog] section.
type ChangelogConfig struct {
	Channel            string      `toml:"channel,omitempty"`
	Format             string      `toml:"format,omitempty"`
	SingleValueBuckets []BucketKey `toml:"single_value_buckets,omitempty"`
	Tags               []TagRule   `toml:"tags,omitempty"` // Replaces the default registry when set
}

// LogConfig holds settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
	File  string `toml:"file,omitempty"`  // Optional file to append logs to
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIURL: DefaultGitHubAPIURL,
		},
		Git: GitConfig{
			Remote:  DefaultRemote,
			Backend: GitBackendCLI,
		},
		Changelog: ChangelogConfig{
			Channel:            DefaultChannel,
			Format:             FormatJSON,
			SingleValueBuckets: DefaultSingleValueBuckets(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// TagRules returns the configured tag registry, or the default one.
func (c *Config) TagRules() []TagRule {
	if len(c.Changelog.Tags) > 0 {
		return slices.Clone(c.Changelog.Tags)
	}
	return DefaultTagRules()
}

// Extractor returns an Extractor for the configured tag registry.
func (c *Config) Extractor() *Extractor {
	return NewExtractor(c.TagRules(), c.Changelog.SingleValueBuckets)
}

// Validate checks values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch c.Git.Backend {
	case "", GitBackendCLI, GitBackendGoGit:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Git.Backend)
	}
	if err := ValidateFormat(c.Changelog.Format); err != nil {
		return err
	}
	for i, t := range c.Changelog.Tags {
		if t.Tag == "" || t.Bucket == "" {
			return fmt.Errorf("changelog.tags[%d]: tag and bucket are required", i)
		}
	}
	return nil
}

// ValidateFormat checks that format is a known output format.
func ValidateFormat(format string) error {
	switch format {
	case "", FormatJSON, FormatYAML, FormatText:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
