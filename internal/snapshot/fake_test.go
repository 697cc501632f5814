package snapshot

import (
	"errors"
	"fmt"

	"github.com/DimitrijeDobrota/startgit/internal/vcs"
)

// fakeRepo is an in-memory vcs.Repository driven entirely by test data
type fakeRepo struct {
	branches []vcs.Reference
	tags     []vcs.TagInfo
	commits  map[string]vcs.CommitInfo
	trees    map[string][]vcs.TreeEntry
	blobs    map[string][]byte

	// diffs replays callbacks for a diff keyed by the new tree id
	diffs map[string]func(vcs.DiffCallbacks) error

	diffCalls int
	blobReads int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		commits: map[string]vcs.CommitInfo{},
		trees:   map[string][]vcs.TreeEntry{},
		blobs:   map[string][]byte{},
		diffs:   map[string]func(vcs.DiffCallbacks) error{},
	}
}

func (f *fakeRepo) Branches() ([]vcs.Reference, error) { return f.branches, nil }
func (f *fakeRepo) Tags() ([]vcs.TagInfo, error)       { return f.tags, nil }

func (f *fakeRepo) ResolveRef(name string) (string, error) {
	for _, b := range f.branches {
		if b.Name == name {
			return b.Target, nil
		}
	}
	return "", fmt.Errorf("unknown ref %s", name)
}

// WalkAncestry follows first parents only
func (f *fakeRepo) WalkAncestry(startID string, fn func(vcs.CommitInfo) error) error {
	for id := startID; id != ""; {
		info, ok := f.commits[id]
		if !ok {
			return fmt.Errorf("missing commit %s", id)
		}
		if err := fn(info); err != nil {
			if errors.Is(err, vcs.ErrStopWalk) {
				return nil
			}
			return err
		}
		id = ""
		if len(info.ParentIDs) > 0 {
			id = info.ParentIDs[0]
		}
	}
	return nil
}

func (f *fakeRepo) TreeEntries(treeID string) ([]vcs.TreeEntry, error) {
	entries, ok := f.trees[treeID]
	if !ok {
		return nil, fmt.Errorf("missing tree %s", treeID)
	}
	return entries, nil
}

func (f *fakeRepo) DiffTrees(oldTreeID, newTreeID string, opts vcs.DiffOptions, cb vcs.DiffCallbacks) error {
	f.diffCalls++
	replay, ok := f.diffs[newTreeID]
	if !ok {
		return fmt.Errorf("no diff for %s", newTreeID)
	}
	return replay(cb)
}

func (f *fakeRepo) BlobContent(id string) ([]byte, error) {
	f.blobReads++
	content, ok := f.blobs[id]
	if !ok {
		return nil, fmt.Errorf("missing blob %s", id)
	}
	return content, nil
}

func (f *fakeRepo) BlobIsBinary(id string) (bool, error) {
	content, err := f.BlobContent(id)
	if err != nil {
		return false, err
	}
	for _, b := range content {
		if b == 0 {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) BlobSize(id string) (int64, error) {
	content, err := f.BlobContent(id)
	return int64(len(content)), err
}

func blob(name, id string) vcs.TreeEntry {
	return vcs.TreeEntry{Name: name, Kind: vcs.KindBlob, Mode: 0100644, ID: id}
}

func subtree(name, id string) vcs.TreeEntry {
	return vcs.TreeEntry{Name: name, Kind: vcs.KindTree, Mode: 0040000, ID: id}
}

// script is a sequence of facade callback invocations
type script []any

func (s script) replay(cb vcs.DiffCallbacks) error {
	for _, step := range s {
		var err error
		switch v := step.(type) {
		case vcs.DeltaHeader:
			err = cb.File(v)
		case vcs.HunkHeader:
			err = cb.Hunk(v)
		case vcs.DiffLine:
			err = cb.Line(v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func added(path string) vcs.DeltaHeader {
	return vcs.DeltaHeader{
		Status:  vcs.StatusAdded,
		OldFile: vcs.DiffFile{Path: path},
		NewFile: vcs.DiffFile{Path: path},
	}
}

func modified(path string) vcs.DeltaHeader {
	return vcs.DeltaHeader{
		Status:  vcs.StatusModified,
		OldFile: vcs.DiffFile{Path: path},
		NewFile: vcs.DiffFile{Path: path},
	}
}

func addLine(s string) vcs.DiffLine { return vcs.DiffLine{Origin: vcs.OriginAddition, Content: s} }
func delLine(s string) vcs.DiffLine { return vcs.DiffLine{Origin: vcs.OriginDeletion, Content: s} }
func ctxLine(s string) vcs.DiffLine { return vcs.DiffLine{Origin: vcs.OriginContext, Content: s} }
