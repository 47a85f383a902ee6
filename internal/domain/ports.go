package domain

import "context"

// ReleaseSource lists published releases.
type ReleaseSource interface {
	// ListReleases returns up to MaxReleases releases ordered by creation time, newest first.
	ListReleases(ctx context.Context) ([]Release, error)
}

// CommitDiffer compares release branches.
type CommitDiffer interface {
	// CommitsUniqueTo returns the full hashes of commits reachable from newBranch
	// but not from oldBranch, newest first. An empty result is not an error.
	CommitsUniqueTo(ctx context.Context, newBranch, oldBranch string) ([]string, error)
}

// PullRequestFetcher resolves commits to pull request descriptions.
type PullRequestFetcher interface {
	// FetchPullRequestBodies returns the body of the first pull request associated
	// with each commit, in commit order. Commits without a pull request are dropped.
	FetchPullRequestBodies(ctx context.Context, commits []string) ([]string, error)
}

// ConfigLoader loads configuration from files and the environment.
type ConfigLoader interface {
	// Load returns the merged configuration (global <- repo <- environment).
	Load() (*Config, error)
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	GetRepoConfigInfo() ConfigInfo
	GetGlobalConfigInfo() ConfigInfo
	InitRepoConfig() error
	InitGlobalConfig() error
}

// Logger writes diagnostic messages.
type Logger interface {
	Info(category, msg string)
	Debug(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards all messages.
type NopLogger struct{}

// Info implements Logger.
func (NopLogger) Info(_, _ string) {}

// Debug implements Logger.
func (NopLogger) Debug(_, _ string) {}

// Warn implements Logger.
func (NopLogger) Warn(_, _ string) {}

// Error implements Logger.
func (NopLogger) Error(_, _ string) {}
