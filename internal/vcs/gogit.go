package vcs

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/filemode"
	fdiff "github.com/go-git/go-git/v6/plumbing/format/diff"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// goGitRepository implements Repository on top of go-git
type goGitRepository struct {
	repo *git.Repository
}

// Open opens a Git repository from a local path.
// Parent directories are not searched.
func Open(path string) (Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotARepository, path)
		}
		return nil, fmt.Errorf("failed to open repository %s: %w", path, err)
	}

	return wrap(repo), nil
}

// wrap exposes an opened go-git repository through the Repository interface
func wrap(repo *git.Repository) Repository {
	return &goGitRepository{repo: repo}
}

// Branches extracts all local branches from a repository
func (r *goGitRepository) Branches() ([]Reference, error) {
	iter, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}
	defer iter.Close()

	var branches []Reference
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		// Symbolic branch refs point at another branch, follow them
		if ref.Type() == plumbing.SymbolicReference {
			resolved, err := r.repo.Reference(ref.Name(), true)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", ref.Name(), err)
			}
			ref = resolved
		}

		branches = append(branches, Reference{
			Name:   ref.Name().Short(),
			Target: ref.Hash().String(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	sort.Slice(branches, func(i, j int) bool {
		return branches[i].Name < branches[j].Name
	})

	return branches, nil
}

// Tags extracts all tags from a repository.
// Lightweight tags report the author of the commit they point at as tagger.
func (r *goGitRepository) Tags() ([]TagInfo, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	defer iter.Close()

	var tags []TagInfo
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		info := TagInfo{
			Name:   ref.Name().Short(),
			Target: ref.Hash().String(),
		}

		tag, err := r.repo.TagObject(ref.Hash())
		switch {
		case err == nil:
			info.Target = tag.Target.String()
			info.Tagger = ParseSignature(tag.Tagger)
		case errors.Is(err, plumbing.ErrObjectNotFound):
			// Lightweight tag, may point at something other than a commit
			if commit, err := r.repo.CommitObject(ref.Hash()); err == nil {
				info.Tagger = ParseSignature(commit.Author)
			}
		default:
			return fmt.Errorf("failed to read tag %s: %w", info.Name, err)
		}

		tags = append(tags, info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	return tags, nil
}

// ResolveRef resolves any revision go-git understands to a commit id
func (r *goGitRepository) ResolveRef(name string) (string, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(name))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", name, err)
	}
	return hash.String(), nil
}

// WalkAncestry walks the history reachable from startID ordered by committer time
func (r *goGitRepository) WalkAncestry(startID string, fn func(CommitInfo) error) error {
	commitIter, err := r.repo.Log(&git.LogOptions{
		From:  plumbing.NewHash(startID),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return fmt.Errorf("failed to get log: %w", err)
	}
	defer commitIter.Close()

	err = commitIter.ForEach(func(c *object.Commit) error {
		return fn(ParseCommit(c))
	})
	if err != nil && !errors.Is(err, ErrStopWalk) {
		return fmt.Errorf("failed to iterate commits: %w", err)
	}

	return nil
}

// TreeEntries lists a tree's entries in stored order
func (r *goGitRepository) TreeEntries(treeID string) ([]TreeEntry, error) {
	tree, err := r.repo.TreeObject(plumbing.NewHash(treeID))
	if err != nil {
		return nil, fmt.Errorf("failed to get tree %s: %w", treeID, err)
	}

	entries := make([]TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		entries = append(entries, TreeEntry{
			Name: e.Name,
			Kind: kindOf(e.Mode),
			Mode: uint32(e.Mode),
			ID:   e.Hash.String(),
		})
	}

	return entries, nil
}

// kindOf maps a tree entry mode onto the object kind it references
func kindOf(mode filemode.FileMode) ObjectKind {
	switch mode {
	case filemode.Dir:
		return KindTree
	case filemode.Submodule:
		return KindCommit
	case filemode.Regular, filemode.Executable, filemode.Symlink, filemode.Deprecated:
		return KindBlob
	default:
		return KindInvalid
	}
}

func (r *goGitRepository) tree(id string) (*object.Tree, error) {
	// The empty tree sentinel for root commits
	if id == "" {
		return &object.Tree{}, nil
	}

	tree, err := r.repo.TreeObject(plumbing.NewHash(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get tree %s: %w", id, err)
	}
	return tree, nil
}

// DiffTrees computes a tree-to-tree diff and replays it through cb
func (r *goGitRepository) DiffTrees(oldTreeID, newTreeID string, opts DiffOptions, cb DiffCallbacks) error {
	from, err := r.tree(oldTreeID)
	if err != nil {
		return err
	}
	to, err := r.tree(newTreeID)
	if err != nil {
		return err
	}

	changes, err := object.DiffTree(from, to)
	if err != nil {
		return fmt.Errorf("failed to diff trees: %w", err)
	}

	for _, change := range changes {
		fromMode, toMode := change.From.TreeEntry.Mode, change.To.TreeEntry.Mode
		if fromMode == filemode.Submodule || toMode == filemode.Submodule {
			if opts.IgnoreSubmodules {
				continue
			}

			// Gitlinks have no blob to diff, report the path only
			if err := cb.File(submoduleHeader(change, opts)); err != nil {
				return err
			}
			continue
		}

		patch, err := change.Patch()
		if err != nil {
			return fmt.Errorf("failed to get patch for %s: %w", change.String(), err)
		}

		for _, filePatch := range patch.FilePatches() {
			if err := replayFilePatch(filePatch, opts, cb); err != nil {
				return err
			}
		}
	}

	return nil
}

func submoduleHeader(change *object.Change, opts DiffOptions) DeltaHeader {
	header := DeltaHeader{
		OldFile: DiffFile{
			Path: change.From.Name,
			Mode: uint32(change.From.TreeEntry.Mode),
			ID:   change.From.TreeEntry.Hash.String(),
		},
		NewFile: DiffFile{
			Path: change.To.Name,
			Mode: uint32(change.To.TreeEntry.Mode),
			ID:   change.To.TreeEntry.Hash.String(),
		},
	}

	switch {
	case change.From.Name == "":
		header.Status = StatusAdded
		header.OldFile.Path = change.To.Name
	case change.To.Name == "":
		header.Status = StatusDeleted
		header.NewFile.Path = change.From.Name
	default:
		header.Status = deltaStatus(header.OldFile.Mode, header.NewFile.Mode, opts)
	}

	return header
}

// deltaStatus picks Modified or TypeChange for a path present on both sides
func deltaStatus(oldMode, newMode uint32, opts DiffOptions) DeltaStatus {
	const typeMask = 0170000
	if opts.IncludeTypeChange && oldMode&typeMask != newMode&typeMask {
		return StatusTypeChange
	}
	return StatusModified
}

func diffFile(f fdiff.File) DiffFile {
	return DiffFile{
		Path: f.Path(),
		Mode: uint32(f.Mode()),
		ID:   f.Hash().String(),
	}
}

// replayFilePatch fires the file, hunk and line callbacks for one file patch
func replayFilePatch(filePatch fdiff.FilePatch, opts DiffOptions, cb DiffCallbacks) error {
	from, to := filePatch.Files()

	header := DeltaHeader{Binary: filePatch.IsBinary()}
	switch {
	case from == nil && to != nil:
		// File added, both sides carry the new path like libgit2 does
		header.Status = StatusAdded
		header.NewFile = diffFile(to)
		header.OldFile = DiffFile{Path: header.NewFile.Path}
	case from != nil && to == nil:
		header.Status = StatusDeleted
		header.OldFile = diffFile(from)
		header.NewFile = DiffFile{Path: header.OldFile.Path}
	case from != nil && to != nil:
		header.OldFile = diffFile(from)
		header.NewFile = diffFile(to)
		header.Status = deltaStatus(header.OldFile.Mode, header.NewFile.Mode, opts)
		if header.OldFile.Path != header.NewFile.Path {
			header.Status = StatusRenamed
		}
	default:
		return nil
	}

	if err := cb.File(header); err != nil {
		return err
	}

	if header.Binary {
		return nil
	}

	lines := flattenChunks(filePatch.Chunks())
	for _, span := range groupHunks(lines, opts.ContextLines) {
		if err := cb.Hunk(hunkHeader(lines, span)); err != nil {
			return err
		}
		for _, line := range lines[span.start:span.end] {
			if err := cb.Line(line); err != nil {
				return err
			}
		}
	}

	return nil
}

// flattenChunks turns go-git's whole-file chunks into numbered lines
func flattenChunks(chunks []fdiff.Chunk) []DiffLine {
	var lines []DiffLine
	oldNo, newNo := 1, 1

	for _, chunk := range chunks {
		for _, text := range splitLines(chunk.Content()) {
			switch chunk.Type() {
			case fdiff.Equal:
				lines = append(lines, DiffLine{Origin: OriginContext, Content: text, OldLineno: oldNo, NewLineno: newNo})
				oldNo++
				newNo++
			case fdiff.Add:
				lines = append(lines, DiffLine{Origin: OriginAddition, Content: text, OldLineno: -1, NewLineno: newNo})
				newNo++
			case fdiff.Delete:
				lines = append(lines, DiffLine{Origin: OriginDeletion, Content: text, OldLineno: oldNo, NewLineno: -1})
				oldNo++
			}
		}
	}

	return lines
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// BlobContent reads a blob fully into memory
func (r *goGitRepository) BlobContent(id string) ([]byte, error) {
	blob, err := r.repo.BlobObject(plumbing.NewHash(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get blob %s: %w", id, err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", id, err)
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

// BlobIsBinary uses go-git's NUL byte heuristic over the blob head
func (r *goGitRepository) BlobIsBinary(id string) (bool, error) {
	blob, err := r.repo.BlobObject(plumbing.NewHash(id))
	if err != nil {
		return false, fmt.Errorf("failed to get blob %s: %w", id, err)
	}

	return object.NewFile("", filemode.Regular, blob).IsBinary()
}

// BlobSize returns the raw blob size in bytes
func (r *goGitRepository) BlobSize(id string) (int64, error) {
	blob, err := r.repo.BlobObject(plumbing.NewHash(id))
	if err != nil {
		return 0, fmt.Errorf("failed to get blob %s: %w", id, err)
	}
	return blob.Size, nil
}

// ParseSignature converts go-git Signature to Signature
func ParseSignature(sig object.Signature) Signature {
	return Signature{
		Name:  sig.Name,
		Email: sig.Email,
		When:  sig.When,
	}
}

// ParseCommit converts a go-git Commit to CommitInfo
func ParseCommit(commit *object.Commit) CommitInfo {
	parents := make([]string, 0, len(commit.ParentHashes))
	for _, h := range commit.ParentHashes {
		parents = append(parents, h.String())
	}

	return CommitInfo{
		ID:        commit.Hash.String(),
		ParentIDs: parents,
		TreeID:    commit.TreeHash.String(),
		Author:    ParseSignature(commit.Author),
		Message:   commit.Message,
	}
}
