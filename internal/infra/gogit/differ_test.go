package gogit

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/release-changelog/internal/domain"
)

type testRepo struct {
	repo *git.Repository
	dir  string
	when time.Time
}

func setupTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	return &testRepo{
		repo: repo,
		dir:  dir,
		when: time.Date(2022, 4, 1, 9, 0, 0, 0, time.UTC),
	}
}

// commit creates a commit one minute after the previous one and returns its hash.
func (r *testRepo) commit(t *testing.T, name string) plumbing.Hash {
	t.Helper()

	wt, err := r.repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(r.dir, name), []byte(name), 0o644))
	_, err = wt.Add(name)
	require.NoError(t, err)

	r.when = r.when.Add(time.Minute)
	h, err := wt.Commit("add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: r.when},
	})
	require.NoError(t, err)
	return h
}

// remoteBranch points refs/remotes/<name> at h.
func (r *testRepo) remoteBranch(t *testing.T, name string, h plumbing.Hash) {
	t.Helper()
	ref := plumbing.NewHashReference(plumbing.ReferenceName("refs/remotes/"+name), h)
	require.NoError(t, r.repo.Storer.SetReference(ref))
}

func TestDiffer_CommitsUniqueTo(t *testing.T) {
	r := setupTestRepo(t)
	base := r.commit(t, "README.md")
	r.remoteBranch(t, "origin/stable_release/v1", base)

	c1 := r.commit(t, "a.txt")
	c2 := r.commit(t, "b.txt")
	c3 := r.commit(t, "c.txt")
	r.remoteBranch(t, "origin/stable_release/v2", c3)

	d := NewWithRepo(r.repo)
	got, err := d.CommitsUniqueTo(context.Background(), "origin/stable_release/v2", "origin/stable_release/v1")
	require.NoError(t, err)
	assert.Equal(t, []string{c3.String(), c2.String(), c1.String()}, got)
}

func TestDiffer_CommitsUniqueTo_Empty(t *testing.T) {
	r := setupTestRepo(t)
	base := r.commit(t, "README.md")
	r.remoteBranch(t, "origin/stable_release/v1", base)
	r.remoteBranch(t, "origin/stable_release/v2", base)

	d := NewWithRepo(r.repo)
	got, err := d.CommitsUniqueTo(context.Background(), "origin/stable_release/v2", "origin/stable_release/v1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiffer_CommitsUniqueTo_NewerOldBranch(t *testing.T) {
	r := setupTestRepo(t)
	r.commit(t, "README.md")
	c1 := r.commit(t, "a.txt")
	r.remoteBranch(t, "origin/new", c1)
	c2 := r.commit(t, "b.txt")
	r.remoteBranch(t, "origin/old", c2)

	// Everything in new is also in old.
	d := NewWithRepo(r.repo)
	got, err := d.CommitsUniqueTo(context.Background(), "origin/new", "origin/old")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiffer_CommitsUniqueTo_UnknownBranch(t *testing.T) {
	r := setupTestRepo(t)
	base := r.commit(t, "README.md")
	r.remoteBranch(t, "origin/old", base)

	d := NewWithRepo(r.repo)
	_, err := d.CommitsUniqueTo(context.Background(), "origin/missing", "origin/old")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve origin/missing")
}

func TestDiffer_CommitsUniqueTo_Canceled(t *testing.T) {
	r := setupTestRepo(t)
	base := r.commit(t, "README.md")
	r.remoteBranch(t, "origin/old", base)
	r.remoteBranch(t, "origin/new", r.commit(t, "a.txt"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewWithRepo(r.repo)
	_, err := d.CommitsUniqueTo(ctx, "origin/new", "origin/old")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen(t *testing.T) {
	r := setupTestRepo(t)
	r.commit(t, "README.md")

	sub := filepath.Join(r.dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	d, err := Open(sub)
	require.NoError(t, err)
	assert.NotNil(t, d)
}

func TestOpen_NotGitRepo(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrNotGitRepository)
}
