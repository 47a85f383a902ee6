// Package gogit provides a pure-Go commit differ backed by go-git.
package gogit

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/runoshun/release-changelog/internal/domain"
)

// Differ implements domain.CommitDiffer by walking repository history with go-git.
// It needs no git binary.
type Differ struct {
	repo *git.Repository
}

// Ensure Differ implements domain.CommitDiffer interface.
var _ domain.CommitDiffer = (*Differ)(nil)

// Open opens the repository containing dir.
func Open(dir string) (*Differ, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, domain.ErrNotGitRepository
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return &Differ{repo: repo}, nil
}

// NewWithRepo creates a Differ for an already opened repository.
func NewWithRepo(repo *git.Repository) *Differ {
	return &Differ{repo: repo}
}

// CommitsUniqueTo returns the commits reachable from newBranch but not from
// oldBranch, ordered by committer time, newest first.
func (d *Differ) CommitsUniqueTo(ctx context.Context, newBranch, oldBranch string) ([]string, error) {
	newHash, err := d.resolve(newBranch)
	if err != nil {
		return nil, err
	}
	oldHash, err := d.resolve(oldBranch)
	if err != nil {
		return nil, err
	}

	excluded := make(map[plumbing.Hash]struct{})
	oldIter, err := d.repo.Log(&git.LogOptions{From: oldHash})
	if err != nil {
		return nil, fmt.Errorf("walk history of %s: %w", oldBranch, err)
	}
	err = oldIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		excluded[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk history of %s: %w", oldBranch, err)
	}

	newIter, err := d.repo.Log(&git.LogOptions{From: newHash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("walk history of %s: %w", newBranch, err)
	}
	var commits []string
	err = newIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := excluded[c.Hash]; !ok {
			commits = append(commits, c.Hash.String())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk history of %s: %w", newBranch, err)
	}
	return commits, nil
}

// resolve resolves a branch name such as "origin/stable_release/v1" to a commit hash.
// Remote-tracking refs are found through the usual refs/remotes/ lookup rules.
func (d *Differ) resolve(rev string) (plumbing.Hash, error) {
	h, err := d.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve %s: %w", rev, err)
	}
	return *h, nil
}
