package snapshot

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/DimitrijeDobrota/startgit/internal/vcs"
)

// DefaultSpecial is the set of root-level documentation files rendered as
// standalone pages when nothing else is configured
var DefaultSpecial = []string{
	"BUILDING.md",
	"CODE_OF_CONDUCT.md",
	"CONTRIBUTING.md",
	"HACKING.md",
	"LICENSE.md",
	"README.md",
}

// Options controls how the entity graph is built
type Options struct {
	// Special lists root-level file names matched exactly, case-sensitive
	Special []string

	// ContextLines is the number of unchanged lines around each hunk
	ContextLines int
}

// DefaultOptions returns the options used by the command line tool
func DefaultOptions() Options {
	return Options{
		Special:      DefaultSpecial,
		ContextLines: vcs.DefaultDiffOptions().ContextLines,
	}
}

func (o Options) diffOptions() vcs.DiffOptions {
	opts := vcs.DefaultDiffOptions()
	opts.ContextLines = o.ContextLines
	return opts
}

func (o Options) specialSet() map[string]bool {
	set := make(map[string]bool, len(o.Special))
	for _, name := range o.Special {
		set[name] = true
	}
	return set
}

// Repository is the snapshot of one repository taken at open time
type Repository struct {
	Path        string
	Name        string
	URL         string
	Owner       string
	Description string
	Branches    []*Branch
	Tags        []Tag
}

// Open opens the repository at path and builds its snapshot.
// A path that is not a repository yields vcs.ErrNotARepository.
func Open(path string, opts Options) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	handle, err := vcs.Open(abs)
	if err != nil {
		return nil, err
	}

	return New(handle, abs, opts)
}

// New builds the snapshot from an already opened handle. path is used for the
// display name and metadata lookup.
func New(handle vcs.Repository, path string, opts Options) (*Repository, error) {
	repo := &Repository{
		Path:        path,
		Name:        repositoryName(path),
		URL:         ReadMetadata(path, "url"),
		Owner:       ReadMetadata(path, "owner"),
		Description: ReadMetadata(path, "description"),
	}

	refs, err := handle.Branches()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTraversal, repo.Name, err)
	}

	for _, ref := range refs {
		branch, err := newBranch(handle, ref, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to build branch %s of %s: %w", ref.Name, repo.Name, err)
		}
		repo.Branches = append(repo.Branches, branch)
	}

	tags, err := handle.Tags()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTraversal, repo.Name, err)
	}
	for _, info := range tags {
		repo.Tags = append(repo.Tags, newTag(info))
	}

	return repo, nil
}

// Branch looks a branch up by name
func (r *Repository) Branch(name string) *Branch {
	for _, b := range r.Branches {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// repositoryName is the path stem, so "/srv/git/foo.git" becomes "foo".
// Paths whose stem would be empty keep their base name.
func repositoryName(path string) string {
	base := filepath.Base(filepath.Clean(path))
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return base
}
