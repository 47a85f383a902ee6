package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/release-changelog/internal/domain"
	"github.com/runoshun/release-changelog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerateChangelog() (*GenerateChangelog, *testutil.MockCommitDiffer, *testutil.MockPullRequestFetcher, *testutil.MockLogger) {
	releases := &testutil.MockReleaseSource{Releases: testReleases()}
	differ := &testutil.MockCommitDiffer{}
	fetcher := testutil.NewMockPullRequestFetcher()
	logger := testutil.NewMockLogger()
	uc := NewGenerateChangelog(releases, differ, fetcher, domain.DefaultExtractor(), logger, "")
	return uc, differ, fetcher, logger
}

func stableInput() GenerateChangelogInput {
	return GenerateChangelogInput{CurrentVersion: testCurrentVersion, Channel: "stable"}
}

func TestGenerateChangelog_Execute_Success(t *testing.T) {
	// Setup
	uc, differ, fetcher, logger := newTestGenerateChangelog()
	differ.Commits = []string{"c3", "c2", "c1"}
	fetcher.Bodies["c3"] = "Adds search.\n\nCHANGELOG-NEW-FEATURE: Search bar\nCHANGELOG-IMAGE: img-3"
	fetcher.Bodies["c1"] = "CHANGELOG-BUG-FIX: Crash on start\r\nCHANGELOG-IMAGE: img-1\nCHANGELOG-IMPROVEMENT: {{ describe }}"

	// Execute
	out, err := uc.Execute(context.Background(), stableInput())

	// Assert
	require.NoError(t, err)
	require.Len(t, differ.Calls, 1)
	assert.Equal(t, testutil.DiffCall{
		NewBranch: "origin/stable_release/v0.2022.04.11.09.09.stable",
		OldBranch: "origin/stable_release/v0.2022.04.04.09.09.stable",
	}, differ.Calls[0])
	require.Len(t, fetcher.Calls, 1)
	assert.Equal(t, []string{"c3", "c2", "c1"}, fetcher.Calls[0])

	assert.Equal(t, testPreviousVersion, out.PreviousVersion)
	assert.Equal(t, 2, out.PullRequests)
	assert.Equal(t, []string{"Search bar"}, out.Changelog.Get(domain.BucketNewFeatures))
	assert.Nil(t, out.Changelog.Get(domain.BucketImprovements), "template text should be dropped")
	assert.Equal(t, []string{"Crash on start"}, out.Changelog.Get(domain.BucketBugFixes))
	assert.Equal(t, []string{"img-1"}, out.Changelog.Get(domain.BucketImages), "last image in commit order wins")

	info := logger.Entries("INFO")
	assert.Contains(t, info, "[git] Comparing origin/stable_release/v0.2022.04.11.09.09.stable with origin/stable_release/v0.2022.04.04.09.09.stable")
	assert.Contains(t, info, "[git] Found commits c3,c2,c1")
}

func TestGenerateChangelog_Execute_EmptyDiff(t *testing.T) {
	uc, _, fetcher, _ := newTestGenerateChangelog()

	out, err := uc.Execute(context.Background(), stableInput())

	require.NoError(t, err)
	assert.Empty(t, fetcher.Calls, "fetcher should not be invoked")
	assert.True(t, out.Changelog.IsEmpty())
	for _, key := range out.Changelog.Keys() {
		assert.Nil(t, out.Changelog.Get(key), key)
	}
}

func TestGenerateChangelog_Execute_NoTaggedLines(t *testing.T) {
	uc, differ, fetcher, _ := newTestGenerateChangelog()
	differ.Commits = []string{"c1"}
	fetcher.Bodies["c1"] = "Refactors internals without user-facing changes."

	out, err := uc.Execute(context.Background(), stableInput())

	require.NoError(t, err)
	assert.Len(t, fetcher.Calls, 1)
	assert.True(t, out.Changelog.IsEmpty())
}

func TestGenerateChangelog_Execute_PreviousNotFound(t *testing.T) {
	releases := &testutil.MockReleaseSource{}
	differ := &testutil.MockCommitDiffer{}
	fetcher := testutil.NewMockPullRequestFetcher()
	uc := NewGenerateChangelog(releases, differ, fetcher, nil, nil, "")

	out, err := uc.Execute(context.Background(), stableInput())

	require.ErrorIs(t, err, domain.ErrPreviousReleaseNotFound)
	assert.Nil(t, out)
	assert.Empty(t, differ.Calls)
	assert.Empty(t, fetcher.Calls)
}

func TestGenerateChangelog_Execute_InvalidVersion(t *testing.T) {
	uc, differ, _, _ := newTestGenerateChangelog()

	_, err := uc.Execute(context.Background(), GenerateChangelogInput{
		CurrentVersion: "v0.2022.04.11",
		Channel:        "stable",
	})

	require.ErrorIs(t, err, domain.ErrInvalidVersion)
	assert.Empty(t, differ.Calls)
}

func TestGenerateChangelog_Execute_DifferError(t *testing.T) {
	uc, differ, fetcher, _ := newTestGenerateChangelog()
	diffErr := errors.New("unknown revision")
	differ.Err = diffErr

	_, err := uc.Execute(context.Background(), stableInput())

	require.ErrorIs(t, err, diffErr)
	assert.Contains(t, err.Error(), "diff release branches")
	assert.Empty(t, fetcher.Calls)
}

func TestGenerateChangelog_Execute_FetcherError(t *testing.T) {
	uc, differ, fetcher, _ := newTestGenerateChangelog()
	differ.Commits = []string{"c1"}
	fetchErr := errors.New("401 Unauthorized")
	fetcher.Err = fetchErr

	_, err := uc.Execute(context.Background(), stableInput())

	require.ErrorIs(t, err, fetchErr)
	assert.Contains(t, err.Error(), "fetch pull request descriptions")
}

func TestGenerateChangelog_Execute_CustomRegistry(t *testing.T) {
	releases := &testutil.MockReleaseSource{Releases: testReleases()}
	differ := &testutil.MockCommitDiffer{Commits: []string{"c1"}}
	fetcher := testutil.NewMockPullRequestFetcher()
	fetcher.Bodies["c1"] = "CHANGELOG-TEAMS: Shared channels\nCHANGELOG-NEW-FEATURE: Ignored here"
	extractor := domain.NewExtractor([]domain.TagRule{
		{Tag: "CHANGELOG-TEAMS", Bucket: "teamsSpecific"},
	}, nil)
	uc := NewGenerateChangelog(releases, differ, fetcher, extractor, nil, "")

	out, err := uc.Execute(context.Background(), stableInput())

	require.NoError(t, err)
	assert.Equal(t, []domain.BucketKey{"teamsSpecific"}, out.Changelog.Keys())
	assert.Equal(t, []string{"Shared channels"}, out.Changelog.Get("teamsSpecific"))
}
