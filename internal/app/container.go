// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/runoshun/release-changelog/internal/domain"
	"github.com/runoshun/release-changelog/internal/infra/config"
	"github.com/runoshun/release-changelog/internal/infra/git"
	"github.com/runoshun/release-changelog/internal/infra/github"
	"github.com/runoshun/release-changelog/internal/infra/gogit"
	"github.com/runoshun/release-changelog/internal/infra/logging"
	"github.com/runoshun/release-changelog/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	RepoRoot string // Root directory of the git repository
	GitDir   string // Path to .git directory
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Releases      domain.ReleaseSource      // Built on first use when nil
	PullRequests  domain.PullRequestFetcher // Built on first use when nil
	Commits       domain.CommitDiffer
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// Pointer fields
	AppConfig *domain.Config
	remoteURL func(remote string) (string, error)
	closer    io.Closer

	// Configuration
	Config Config
}

// New creates a new Container by detecting the git repository from the given directory.
func New(dir string) (*Container, error) {
	// Detect git repository
	gitClient, err := git.NewClient(dir)
	if err != nil {
		return nil, err
	}
	cfg := Config{
		RepoRoot: gitClient.RepoRoot(),
		GitDir:   gitClient.GitDir(),
	}

	configLoader := config.NewLoader(cfg.RepoRoot)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(os.Stderr, appConfig.Log.File, logging.ParseLevel(appConfig.Log.Level))

	// Create commit differ based on config
	// Default is the git CLI; use go-git only if explicitly specified
	var commits domain.CommitDiffer = gitClient
	if appConfig.Git.Backend == domain.GitBackendGoGit {
		differ, err := gogit.Open(cfg.RepoRoot)
		if err != nil {
			_ = logger.Close()
			return nil, err
		}
		commits = differ
	}

	return &Container{
		Commits:       commits,
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(cfg.RepoRoot),
		Logger:        logger,
		AppConfig:     appConfig,
		remoteURL:     gitClient.RemoteURL,
		closer:        logger,
		Config:        cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, releases domain.ReleaseSource, commits domain.CommitDiffer, prs domain.PullRequestFetcher, logger domain.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Container{
		Releases:     releases,
		PullRequests: prs,
		Commits:      commits,
		Logger:       logger,
		AppConfig:    appConfig,
		Config:       cfg,
	}
}

// Close releases resources held by the container, such as the log file.
func (c *Container) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// Repository returns the GitHub repository to query.
// Explicit configuration wins; otherwise it is inferred from the configured remote.
func (c *Container) Repository() (domain.Repository, error) {
	gh := c.AppConfig.GitHub
	if gh.Owner != "" && gh.Repo != "" {
		return domain.Repository{Owner: gh.Owner, Name: gh.Repo}, nil
	}
	if c.remoteURL == nil {
		return domain.Repository{}, domain.ErrRepositoryNotConfigured
	}
	url, err := c.remoteURL(c.remote())
	if err != nil {
		return domain.Repository{}, fmt.Errorf("%w: %w", domain.ErrRepositoryNotConfigured, err)
	}
	return domain.RepositoryFromRemoteURL(url)
}

func (c *Container) remote() string {
	if c.AppConfig.Git.Remote == "" {
		return domain.DefaultRemote
	}
	return c.AppConfig.Git.Remote
}

// ensureGitHub builds the GitHub client for any port that is still unset.
func (c *Container) ensureGitHub(ctx context.Context) error {
	if c.Releases != nil && c.PullRequests != nil {
		return nil
	}
	if c.AppConfig.Token == "" {
		return domain.ErrMissingToken
	}
	repo, err := c.Repository()
	if err != nil {
		return err
	}
	client, err := github.NewClient(ctx, repo, github.Options{
		Token:   c.AppConfig.Token,
		BaseURL: c.AppConfig.GitHub.APIURL,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}
	c.Logger.Debug("github", "using repository "+repo.String())
	if c.Releases == nil {
		c.Releases = client
	}
	if c.PullRequests == nil {
		c.PullRequests = client
	}
	return nil
}

// UseCase factory methods

// FindPreviousReleaseUseCase returns a new FindPreviousRelease use case.
func (c *Container) FindPreviousReleaseUseCase(ctx context.Context) (*usecase.FindPreviousRelease, error) {
	if err := c.ensureGitHub(ctx); err != nil {
		return nil, err
	}
	return usecase.NewFindPreviousRelease(c.Releases, c.Logger, c.remote()), nil
}

// GenerateChangelogUseCase returns a new GenerateChangelog use case.
func (c *Container) GenerateChangelogUseCase(ctx context.Context) (*usecase.GenerateChangelog, error) {
	if err := c.ensureGitHub(ctx); err != nil {
		return nil, err
	}
	return usecase.NewGenerateChangelog(c.Releases, c.Commits, c.PullRequests, c.AppConfig.Extractor(), c.Logger, c.remote()), nil
}
