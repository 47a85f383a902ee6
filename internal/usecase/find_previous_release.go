// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/release-changelog/internal/domain"
)

// FindPreviousReleaseInput contains the parameters for finding the previous release.
type FindPreviousReleaseInput struct {
	CurrentVersion string // Version being released (required)
	Channel        string // Release channel, e.g. "stable" (required)
}

// FindPreviousReleaseOutput contains the selected release and the branches to compare.
type FindPreviousReleaseOutput struct {
	PreviousVersion string // Tag of the previous release
	CurrentBranch   string // Release branch of the current version
	PreviousBranch  string // Release branch of the previous version
}

// FindPreviousRelease is the use case for locating the release to diff against.
type FindPreviousRelease struct {
	releases domain.ReleaseSource
	logger   domain.Logger
	remote   string
}

// NewFindPreviousRelease creates a new FindPreviousRelease use case.
func NewFindPreviousRelease(releases domain.ReleaseSource, logger domain.Logger, remote string) *FindPreviousRelease {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &FindPreviousRelease{
		releases: releases,
		logger:   logger,
		remote:   remote,
	}
}

// Execute finds the previous release of in.CurrentVersion on in.Channel.
// Preconditions:
//   - CurrentVersion and Channel are set
//   - CurrentVersion contains the "_" cherrypick separator
//
// Processing:
//   - Fetch the most recent releases
//   - Select the newest older release of the channel outside the current release family
//   - Resolve both release branches
func (uc *FindPreviousRelease) Execute(ctx context.Context, in FindPreviousReleaseInput) (*FindPreviousReleaseOutput, error) {
	if in.CurrentVersion == "" {
		return nil, domain.ErrEmptyVersion
	}
	if in.Channel == "" {
		return nil, domain.ErrEmptyChannel
	}

	// Fail on a malformed version before any network round trip.
	currentBranch, err := domain.RemoteBranchFor(uc.remote, in.CurrentVersion, in.Channel)
	if err != nil {
		return nil, err
	}

	releases, err := uc.releases.ListReleases(ctx)
	if err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}
	uc.logger.Debug("release", fmt.Sprintf("fetched %d releases", len(releases)))

	previous, err := domain.SelectPreviousRelease(releases, in.CurrentVersion, in.Channel)
	if err != nil {
		return nil, fmt.Errorf("%w (version %s, channel %s)", err, in.CurrentVersion, in.Channel)
	}
	uc.logger.Info("release", fmt.Sprintf("Previous release is %s", previous))

	previousBranch, err := domain.RemoteBranchFor(uc.remote, previous, in.Channel)
	if err != nil {
		return nil, fmt.Errorf("previous release: %w", err)
	}

	return &FindPreviousReleaseOutput{
		PreviousVersion: previous,
		CurrentBranch:   currentBranch,
		PreviousBranch:  previousBranch,
	}, nil
}
