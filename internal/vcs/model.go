package vcs

import (
	"errors"
	"time"
)

// ErrNotARepository is returned by Open when the path is not a git repository
var ErrNotARepository = errors.New("not a repository")

// ObjectKind is the closed set of object kinds a tree entry can point at
type ObjectKind int

const (
	KindInvalid ObjectKind = iota
	KindBlob
	KindTree
	KindCommit // submodule gitlink
	KindTag
)

func (k ObjectKind) String() string {
	switch k {
	case KindBlob:
		return "blob"
	case KindTree:
		return "tree"
	case KindCommit:
		return "commit"
	case KindTag:
		return "tag"
	case KindInvalid:
		return "invalid"
	}
	return "unknown"
}

// Signature represents Git author/committer/tagger information
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Reference is a resolved named reference such as a local branch
type Reference struct {
	Name   string // short name, e.g. "master"
	Target string // hex object id the reference points at
}

// CommitInfo is the raw commit data handed out by the ancestry walk
type CommitInfo struct {
	ID        string
	ParentIDs []string
	TreeID    string
	Author    Signature
	Message   string
}

// TagInfo describes a tag at repository-open time
type TagInfo struct {
	Name   string
	Target string
	Tagger Signature
}

// TreeEntry is one entry of a tree object, in tree order
type TreeEntry struct {
	Name string
	Kind ObjectKind
	Mode uint32 // raw git mode, e.g. 0100644
	ID   string
}

// DeltaStatus mirrors the status codes a tree-to-tree diff reports per file
type DeltaStatus int

const (
	StatusUnmodified DeltaStatus = iota
	StatusAdded
	StatusDeleted
	StatusModified
	StatusRenamed
	StatusCopied
	StatusIgnored
	StatusUntracked
	StatusTypeChange
)

// DiffFile is one side of a delta
type DiffFile struct {
	Path string
	Mode uint32
	ID   string
}

// DeltaHeader is passed to the file callback
type DeltaHeader struct {
	Status  DeltaStatus
	OldFile DiffFile
	NewFile DiffFile
	Binary  bool
}

// HunkHeader is passed to the hunk callback
type HunkHeader struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Header   string
}

// Line origins as used in unified diffs
const (
	OriginContext  byte = ' '
	OriginAddition byte = '+'
	OriginDeletion byte = '-'
)

// DiffLine is passed to the line callback
type DiffLine struct {
	Origin    byte
	Content   string // without the trailing newline
	OldLineno int    // -1 for additions
	NewLineno int    // -1 for deletions
}

// DiffOptions controls DiffTrees.
// No pathspec filtering is ever applied, every changed path is reported.
type DiffOptions struct {
	IgnoreSubmodules  bool
	IncludeTypeChange bool
	ContextLines      int
}

// DefaultDiffOptions matches what the site renderer asks for
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{
		IgnoreSubmodules:  true,
		IncludeTypeChange: true,
		ContextLines:      3,
	}
}

// DiffCallbacks are fired by DiffTrees.
//
// For each delta File is called once, then for each of its hunks Hunk is called
// once followed by Line for every line of that hunk. Calls never interleave
// between deltas or hunks. Callbacks must not call back into the Repository.
type DiffCallbacks struct {
	File func(DeltaHeader) error
	Hunk func(HunkHeader) error
	Line func(DiffLine) error
}

// Repository is the capability surface the snapshot model needs from a
// version-control object store.
type Repository interface {
	// Branches lists local branches sorted by name
	Branches() ([]Reference, error)

	// Tags lists tags sorted by name
	Tags() ([]TagInfo, error)

	// ResolveRef resolves a branch, tag or full reference name to an object id
	ResolveRef(name string) (string, error)

	// WalkAncestry calls fn for startID and all its ancestors, newest first.
	// Returning ErrStopWalk from fn ends the walk without an error.
	WalkAncestry(startID string, fn func(CommitInfo) error) error

	// TreeEntries lists the entries of a tree in tree order
	TreeEntries(treeID string) ([]TreeEntry, error)

	// DiffTrees diffs oldTreeID against newTreeID. An empty oldTreeID means
	// the empty tree.
	DiffTrees(oldTreeID, newTreeID string, opts DiffOptions, cb DiffCallbacks) error

	BlobContent(id string) ([]byte, error)
	BlobIsBinary(id string) (bool, error)
	BlobSize(id string) (int64, error)
}

// ErrStopWalk can be returned from a WalkAncestry callback to stop early
var ErrStopWalk = errors.New("stop walk")
