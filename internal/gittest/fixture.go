// Package gittest builds small real repositories on disk for tests.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Epoch is the author time of the first fixture commit. Every further commit
// is one hour later so committer-time ordering is strict.
var Epoch = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

const (
	AuthorName  = "Test User"
	AuthorEmail = "test@example.com"
)

// Repo is a non-bare repository in a temporary directory
type Repo struct {
	Dir  string
	Repo *git.Repository

	t       testing.TB
	commits int
}

// New initialises an empty repository whose HEAD points at master
func New(t testing.TB) *Repo {
	t.Helper()
	return NewAt(t, filepath.Join(t.TempDir(), "repo"))
}

// NewAt initialises an empty repository at dir
func NewAt(t testing.TB, dir string) *Repo {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	// Pin the default branch name, go-git versions disagree on it
	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName("master"))
	require.NoError(t, repo.Storer.SetReference(head))

	return &Repo{Dir: dir, Repo: repo, t: t}
}

// Signature returns the fixed signature used for the n-th commit
func Signature(n int) *object.Signature {
	return &object.Signature{
		Name:  AuthorName,
		Email: AuthorEmail,
		When:  Epoch.Add(time.Duration(n) * time.Hour),
	}
}

// WriteFile writes a file in the working tree without staging it
func (r *Repo) WriteFile(path, content string) {
	r.t.Helper()

	full := filepath.Join(r.Dir, filepath.FromSlash(path))
	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(r.t, os.WriteFile(full, []byte(content), 0o644))
}

// RemoveFile deletes a file from the working tree and the index
func (r *Repo) RemoveFile(path string) {
	r.t.Helper()

	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	_, err = wt.Remove(path)
	require.NoError(r.t, err)
}

// Commit writes files, stages every change in the working tree and commits
func (r *Repo) Commit(message string, files map[string]string) string {
	r.t.Helper()

	for path, content := range files {
		r.WriteFile(path, content)
	}

	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	require.NoError(r.t, wt.AddWithOptions(&git.AddOptions{All: true}))

	sig := Signature(r.commits)
	r.commits++

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	require.NoError(r.t, err)

	return hash.String()
}

// Branch creates or moves a branch to point at id
func (r *Repo) Branch(name, id string) {
	r.t.Helper()

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), plumbing.NewHash(id))
	require.NoError(r.t, r.Repo.Storer.SetReference(ref))
}

// Checkout switches the working tree to an existing branch
func (r *Repo) Checkout(name string) {
	r.t.Helper()

	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	require.NoError(r.t, wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	}))
}

// AnnotatedTag creates a tag object pointing at id
func (r *Repo) AnnotatedTag(name, id, tagger string) {
	r.t.Helper()

	sig := Signature(r.commits)
	sig.Name = tagger

	_, err := r.Repo.CreateTag(name, plumbing.NewHash(id), &git.CreateTagOptions{
		Tagger:  sig,
		Message: "release " + name,
	})
	require.NoError(r.t, err)
}

// LightweightTag creates a plain tag reference pointing at id
func (r *Repo) LightweightTag(name, id string) {
	r.t.Helper()

	_, err := r.Repo.CreateTag(name, plumbing.NewHash(id), nil)
	require.NoError(r.t, err)
}

// Sidecar writes a metadata file such as owner or description into the
// repository directory
func (r *Repo) Sidecar(name, content string) {
	r.t.Helper()
	require.NoError(r.t, os.WriteFile(filepath.Join(r.Dir, name), []byte(content), 0o644))
}

// GitSidecar writes a metadata file inside the .git directory
func (r *Repo) GitSidecar(name, content string) {
	r.t.Helper()
	require.NoError(r.t, os.WriteFile(filepath.Join(r.Dir, ".git", name), []byte(content), 0o644))
}
