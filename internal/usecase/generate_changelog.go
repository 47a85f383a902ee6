package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/release-changelog/internal/domain"
)

// GenerateChangelogInput contains the parameters for generating a changelog.
type GenerateChangelogInput struct {
	CurrentVersion string // Version being released (required)
	Channel        string // Release channel, e.g. "stable" (required)
}

// GenerateChangelogOutput contains the generated changelog and how it was derived.
// Fields are ordered to minimize memory padding.
type GenerateChangelogOutput struct {
	Changelog       *domain.Changelog
	Commits         []string // Commits unique to the current release, newest first
	PreviousVersion string
	CurrentBranch   string
	PreviousBranch  string
	PullRequests    int // Number of pull request descriptions parsed
}

// GenerateChangelog is the use case for building a release changelog from
// the pull requests merged since the previous release.
type GenerateChangelog struct {
	previous  *FindPreviousRelease
	commits   domain.CommitDiffer
	prs       domain.PullRequestFetcher
	extractor *domain.Extractor
	logger    domain.Logger
}

// NewGenerateChangelog creates a new GenerateChangelog use case.
func NewGenerateChangelog(
	releases domain.ReleaseSource,
	commits domain.CommitDiffer,
	prs domain.PullRequestFetcher,
	extractor *domain.Extractor,
	logger domain.Logger,
	remote string,
) *GenerateChangelog {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	if extractor == nil {
		extractor = domain.DefaultExtractor()
	}
	return &GenerateChangelog{
		previous:  NewFindPreviousRelease(releases, logger, remote),
		commits:   commits,
		prs:       prs,
		extractor: extractor,
		logger:    logger,
	}
}

// Execute generates the changelog for in.CurrentVersion.
// Processing:
//   - Find the previous release and both release branches
//   - List commits in the current branch that are not in the previous one
//   - Fetch the pull request description of each commit in one request
//   - Extract tagged changelog lines from the descriptions
//
// When the branches have no differing commits, an all-absent changelog is
// returned without fetching pull requests.
func (uc *GenerateChangelog) Execute(ctx context.Context, in GenerateChangelogInput) (*GenerateChangelogOutput, error) {
	prev, err := uc.previous.Execute(ctx, FindPreviousReleaseInput(in))
	if err != nil {
		return nil, err
	}

	uc.logger.Info("git", fmt.Sprintf("Comparing %s with %s", prev.CurrentBranch, prev.PreviousBranch))
	commits, err := uc.commits.CommitsUniqueTo(ctx, prev.CurrentBranch, prev.PreviousBranch)
	if err != nil {
		return nil, fmt.Errorf("diff release branches: %w", err)
	}
	uc.logger.Info("git", fmt.Sprintf("Found commits %s", strings.Join(commits, ",")))

	out := &GenerateChangelogOutput{
		Commits:         commits,
		PreviousVersion: prev.PreviousVersion,
		CurrentBranch:   prev.CurrentBranch,
		PreviousBranch:  prev.PreviousBranch,
	}

	if len(commits) == 0 {
		out.Changelog = uc.extractor.Empty()
		return out, nil
	}

	bodies, err := uc.prs.FetchPullRequestBodies(ctx, commits)
	if err != nil {
		return nil, fmt.Errorf("fetch pull request descriptions: %w", err)
	}
	uc.logger.Debug("github", fmt.Sprintf("%d of %d commits have a pull request", len(bodies), len(commits)))

	out.PullRequests = len(bodies)
	out.Changelog = uc.extractor.Extract(bodies)
	return out, nil
}
