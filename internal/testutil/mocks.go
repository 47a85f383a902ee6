// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/runoshun/release-changelog/internal/domain"
)

// MockReleaseSource is a test double for domain.ReleaseSource.
type MockReleaseSource struct {
	Err      error
	Releases []domain.Release
	Calls    int
}

// ListReleases returns the configured releases.
func (m *MockReleaseSource) ListReleases(_ context.Context) ([]domain.Release, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return slices.Clone(m.Releases), nil
}

// DiffCall records the arguments of a CommitsUniqueTo call.
type DiffCall struct {
	NewBranch string
	OldBranch string
}

// MockCommitDiffer is a test double for domain.CommitDiffer.
type MockCommitDiffer struct {
	Err     error
	Commits []string
	Calls   []DiffCall
}

// CommitsUniqueTo records the call and returns the configured commits.
func (m *MockCommitDiffer) CommitsUniqueTo(_ context.Context, newBranch, oldBranch string) ([]string, error) {
	m.Calls = append(m.Calls, DiffCall{NewBranch: newBranch, OldBranch: oldBranch})
	if m.Err != nil {
		return nil, m.Err
	}
	return slices.Clone(m.Commits), nil
}

// MockPullRequestFetcher is a test double for domain.PullRequestFetcher.
// Bodies maps commit hash to pull request body; commits missing from the map
// have no pull request.
type MockPullRequestFetcher struct {
	Err    error
	Bodies map[string]string
	Calls  [][]string
}

// NewMockPullRequestFetcher creates a MockPullRequestFetcher with an initialized map.
func NewMockPullRequestFetcher() *MockPullRequestFetcher {
	return &MockPullRequestFetcher{Bodies: make(map[string]string)}
}

// FetchPullRequestBodies returns the bodies of known commits in commit order.
func (m *MockPullRequestFetcher) FetchPullRequestBodies(_ context.Context, commits []string) ([]string, error) {
	m.Calls = append(m.Calls, slices.Clone(commits))
	if m.Err != nil {
		return nil, m.Err
	}
	var out []string
	for _, c := range commits {
		if body, ok := m.Bodies[c]; ok {
			out = append(out, body)
		}
	}
	return out, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a MockConfigLoader returning the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockLogger records log entries as "LEVEL [category] msg".
type MockLogger struct {
	entries map[string][]string
	mu      sync.Mutex
}

// NewMockLogger creates a new MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{entries: make(map[string][]string)}
}

func (m *MockLogger) record(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[level] = append(m.entries[level], fmt.Sprintf("[%s] %s", category, msg))
}

// Entries returns the messages logged at level (DEBUG, INFO, WARN, ERROR).
func (m *MockLogger) Entries(level string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries[level])
}

// Info records an info message.
func (m *MockLogger) Info(category, msg string) { m.record("INFO", category, msg) }

// Debug records a debug message.
func (m *MockLogger) Debug(category, msg string) { m.record("DEBUG", category, msg) }

// Warn records a warning message.
func (m *MockLogger) Warn(category, msg string) { m.record("WARN", category, msg) }

// Error records an error message.
func (m *MockLogger) Error(category, msg string) { m.record("ERROR", category, msg) }

// Compile-time interface checks.
var (
	_ domain.ReleaseSource      = (*MockReleaseSource)(nil)
	_ domain.CommitDiffer       = (*MockCommitDiffer)(nil)
	_ domain.PullRequestFetcher = (*MockPullRequestFetcher)(nil)
	_ domain.ConfigLoader       = (*MockConfigLoader)(nil)
	_ domain.Logger             = (*MockLogger)(nil)
)
