package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/runoshun/release-changelog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupGitRepo creates a temporary git repository for testing.
func setupGitRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	commitFile(t, dir, "README.md", "Initial commit")

	return dir
}

// runGit executes a git command and fails the test if it errors.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, out)
	return strings.TrimSpace(string(out))
}

// commitFile writes a file, commits it and returns the commit hash.
func commitFile(t *testing.T, dir, name, msg string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(msg+"\n"), 0o644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", msg)
	return runGit(t, dir, "rev-parse", "HEAD")
}

// =============================================================================
// NewClient Tests
// =============================================================================

func TestNewClient_Success(t *testing.T) {
	dir := setupGitRepo(t)

	client, err := NewClient(dir)
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, dir, client.RepoRoot())
	assert.Equal(t, filepath.Join(dir, ".git"), client.GitDir())
}

func TestNewClient_NotGitRepo(t *testing.T) {
	dir := t.TempDir() // Not a git repository

	client, err := NewClient(dir)
	assert.ErrorIs(t, err, domain.ErrNotGitRepository)
	assert.Nil(t, client)
}

// =============================================================================
// CommitsUniqueTo Tests
// =============================================================================

func TestClient_CommitsUniqueTo(t *testing.T) {
	dir := setupGitRepo(t)
	runGit(t, dir, "update-ref", "refs/remotes/origin/stable_release/v0.2022.04.04.09.09.stable", "HEAD")

	var want []string
	for i := 1; i <= 3; i++ {
		want = append([]string{commitFile(t, dir, fmt.Sprintf("f%d.txt", i), fmt.Sprintf("change %d", i))}, want...)
	}
	runGit(t, dir, "update-ref", "refs/remotes/origin/stable_release/v0.2022.04.11.09.09.stable", "HEAD")

	client, err := NewClient(dir)
	require.NoError(t, err)

	got, err := client.CommitsUniqueTo(context.Background(),
		"origin/stable_release/v0.2022.04.11.09.09.stable",
		"origin/stable_release/v0.2022.04.04.09.09.stable")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	for _, h := range got {
		assert.Len(t, h, 40)
	}
}

func TestClient_CommitsUniqueTo_Empty(t *testing.T) {
	dir := setupGitRepo(t)
	runGit(t, dir, "branch", "old")
	runGit(t, dir, "branch", "new")

	client, err := NewClient(dir)
	require.NoError(t, err)

	got, err := client.CommitsUniqueTo(context.Background(), "new", "old")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_CommitsUniqueTo_ExcludesOldBranchHistory(t *testing.T) {
	dir := setupGitRepo(t)
	runGit(t, dir, "branch", "old")
	onlyNew := commitFile(t, dir, "new.txt", "new only")
	runGit(t, dir, "branch", "new")

	// A commit only on the old branch never shows up.
	runGit(t, dir, "checkout", "old")
	commitFile(t, dir, "old.txt", "old only")

	client, err := NewClient(dir)
	require.NoError(t, err)

	got, err := client.CommitsUniqueTo(context.Background(), "new", "old")
	require.NoError(t, err)
	assert.Equal(t, []string{onlyNew}, got)
}

func TestClient_CommitsUniqueTo_UnknownBranch(t *testing.T) {
	dir := setupGitRepo(t)

	client, err := NewClient(dir)
	require.NoError(t, err)

	_, err = client.CommitsUniqueTo(context.Background(), "origin/missing", "HEAD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list commits")
}

// =============================================================================
// RemoteURL Tests
// =============================================================================

func TestClient_RemoteURL(t *testing.T) {
	dir := setupGitRepo(t)
	runGit(t, dir, "remote", "add", "origin", "git@github.com:acme/widgets.git")

	client, err := NewClient(dir)
	require.NoError(t, err)

	url, err := client.RemoteURL("origin")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:acme/widgets.git", url)

	_, err = client.RemoteURL("upstream")
	assert.Error(t, err)
}
