// Package git provides git operations backed by the git CLI.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/runoshun/release-changelog/internal/domain"
)

// Client provides git operations.
type Client struct {
	repoRoot string // Toplevel of the working tree
	gitDir   string // Common .git directory
}

// Ensure Client implements domain.CommitDiffer interface.
var _ domain.CommitDiffer = (*Client)(nil)

// NewClient creates a new git client by detecting the repository from the given directory.
func NewClient(dir string) (*Client, error) {
	repoRoot, gitDir, err := findGitRoot(dir)
	if err != nil {
		return nil, err
	}
	return &Client{
		repoRoot: repoRoot,
		gitDir:   gitDir,
	}, nil
}

// RepoRoot returns the repository root directory.
func (c *Client) RepoRoot() string {
	return c.repoRoot
}

// GitDir returns the .git directory path.
func (c *Client) GitDir() string {
	return c.gitDir
}

// CommitsUniqueTo returns the commits in newBranch that are not in oldBranch,
// newest first, using `git log ^old new`.
func (c *Client) CommitsUniqueTo(ctx context.Context, newBranch, oldBranch string) ([]string, error) {
	//nolint:gosec // branch names are passed as arguments, not through a shell
	cmd := exec.CommandContext(ctx, "git", "--no-pager", "log", "^"+oldBranch, newBranch, "--pretty=format:%H")
	cmd.Dir = c.repoRoot
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list commits in %s but not %s: %w%s", newBranch, oldBranch, err, stderrOf(err))
	}

	var commits []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			commits = append(commits, line)
		}
	}
	return commits, nil
}

// RemoteURL returns the fetch URL of a remote.
func (c *Client) RemoteURL(remote string) (string, error) {
	cmd := exec.Command("git", "remote", "get-url", remote)
	cmd.Dir = c.repoRoot
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get url of remote %s: %w%s", remote, err, stderrOf(err))
	}
	return strings.TrimSpace(string(out)), nil
}

// stderrOf returns ": <stderr>" for a failed command, or "".
func stderrOf(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return ": " + strings.TrimSpace(string(exitErr.Stderr))
	}
	return ""
}

// findGitRoot finds the working tree root and the common .git directory from dir.
func findGitRoot(dir string) (repoRoot, gitDir string, err error) {
	cmd := exec.Command("git", "rev-parse", "--git-common-dir")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", "", domain.ErrNotGitRepository
	}
	gitDir = strings.TrimSpace(string(out))

	cmd = exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	toplevel, err := cmd.Output()
	if err != nil {
		return "", "", fmt.Errorf("failed to find toplevel: %w", err)
	}
	repoRoot = strings.TrimSpace(string(toplevel))

	// Make gitDir absolute if it's relative
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(dir, gitDir)
	}
	return repoRoot, filepath.Clean(gitDir), nil
}
