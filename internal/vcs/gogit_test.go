package vcs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DimitrijeDobrota/startgit/internal/gittest"
	"github.com/DimitrijeDobrota/startgit/internal/vcs"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/filemode"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	deltas []vcs.DeltaHeader
	hunks  []vcs.HunkHeader
	lines  []vcs.DiffLine
}

func (r *recorded) callbacks() vcs.DiffCallbacks {
	return vcs.DiffCallbacks{
		File: func(h vcs.DeltaHeader) error { r.deltas = append(r.deltas, h); return nil },
		Hunk: func(h vcs.HunkHeader) error { r.hunks = append(r.hunks, h); return nil },
		Line: func(l vcs.DiffLine) error { r.lines = append(r.lines, l); return nil },
	}
}

func TestOpen(t *testing.T) {
	t.Run("not a repository", func(t *testing.T) {
		_, err := vcs.Open(t.TempDir())
		require.ErrorIs(t, err, vcs.ErrNotARepository)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := vcs.Open(filepath.Join(t.TempDir(), "nope"))
		require.ErrorIs(t, err, vcs.ErrNotARepository)
	})

	t.Run("existing repository", func(t *testing.T) {
		fx := gittest.New(t)
		fx.Commit("init", map[string]string{"a.txt": "a\n"})

		repo, err := vcs.Open(fx.Dir)
		require.NoError(t, err)
		require.NotNil(t, repo)
	})
}

func TestBranchesAndWalk(t *testing.T) {
	fx := gittest.New(t)
	c1 := fx.Commit("first", map[string]string{"a.txt": "a\n"})
	c2 := fx.Commit("second", map[string]string{"b.txt": "b\n"})
	c3 := fx.Commit("third", map[string]string{"c.txt": "c\n"})
	fx.Branch("dev", c2)

	repo, err := vcs.Open(fx.Dir)
	require.NoError(t, err)

	branches, err := repo.Branches()
	require.NoError(t, err)
	assert.Equal(t, []vcs.Reference{
		{Name: "dev", Target: c2},
		{Name: "master", Target: c3},
	}, branches)

	id, err := repo.ResolveRef("master")
	require.NoError(t, err)
	assert.Equal(t, c3, id)

	var walked []string
	require.NoError(t, repo.WalkAncestry(c3, func(c vcs.CommitInfo) error {
		walked = append(walked, c.ID)
		return nil
	}))
	assert.Equal(t, []string{c3, c2, c1}, walked)

	t.Run("stop early", func(t *testing.T) {
		var seen int
		err := repo.WalkAncestry(c3, func(c vcs.CommitInfo) error {
			seen++
			return vcs.ErrStopWalk
		})
		require.NoError(t, err)
		assert.Equal(t, 1, seen)
	})

	t.Run("commit info", func(t *testing.T) {
		var infos []vcs.CommitInfo
		require.NoError(t, repo.WalkAncestry(c2, func(c vcs.CommitInfo) error {
			infos = append(infos, c)
			return nil
		}))
		require.Len(t, infos, 2)
		assert.Equal(t, []string{c1}, infos[0].ParentIDs)
		assert.Empty(t, infos[1].ParentIDs)
		assert.Equal(t, gittest.AuthorName, infos[0].Author.Name)
		assert.Equal(t, gittest.AuthorEmail, infos[0].Author.Email)
		assert.Equal(t, "second", infos[0].Message)
		assert.NotEmpty(t, infos[0].TreeID)
	})
}

func TestTags(t *testing.T) {
	fx := gittest.New(t)
	c1 := fx.Commit("first", map[string]string{"a.txt": "a\n"})
	c2 := fx.Commit("second", map[string]string{"a.txt": "b\n"})
	fx.AnnotatedTag("v1.0", c1, "Release Bot")
	fx.LightweightTag("v0.9", c2)

	repo, err := vcs.Open(fx.Dir)
	require.NoError(t, err)

	tags, err := repo.Tags()
	require.NoError(t, err)
	require.Len(t, tags, 2)

	assert.Equal(t, "v0.9", tags[0].Name)
	assert.Equal(t, c2, tags[0].Target)
	assert.Equal(t, gittest.AuthorName, tags[0].Tagger.Name)

	assert.Equal(t, "v1.0", tags[1].Name)
	assert.Equal(t, c1, tags[1].Target)
	assert.Equal(t, "Release Bot", tags[1].Tagger.Name)
}

func TestTreeEntriesAndBlobs(t *testing.T) {
	fx := gittest.New(t)
	c1 := fx.Commit("init", map[string]string{
		"README.md":   "hello\nworld\n",
		"src/main.go": "package main\n",
		"bin.dat":     "\x00\x01\x02",
	})

	repo, err := vcs.Open(fx.Dir)
	require.NoError(t, err)

	var tree string
	require.NoError(t, repo.WalkAncestry(c1, func(c vcs.CommitInfo) error {
		tree = c.TreeID
		return vcs.ErrStopWalk
	}))

	entries, err := repo.TreeEntries(tree)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byName := map[string]vcs.TreeEntry{}
	for _, e := range entries {
		byName[e.Name] = e
	}

	assert.Equal(t, vcs.KindBlob, byName["README.md"].Kind)
	assert.Equal(t, uint32(0100644), byName["README.md"].Mode)
	assert.Equal(t, vcs.KindTree, byName["src"].Kind)

	content, err := repo.BlobContent(byName["README.md"].ID)
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", string(content))

	size, err := repo.BlobSize(byName["README.md"].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), size)

	binary, err := repo.BlobIsBinary(byName["bin.dat"].ID)
	require.NoError(t, err)
	assert.True(t, binary)

	binary, err = repo.BlobIsBinary(byName["README.md"].ID)
	require.NoError(t, err)
	assert.False(t, binary)
}

func treeOf(t *testing.T, repo vcs.Repository, id string) string {
	t.Helper()
	var tree string
	require.NoError(t, repo.WalkAncestry(id, func(c vcs.CommitInfo) error {
		tree = c.TreeID
		return vcs.ErrStopWalk
	}))
	return tree
}

func TestDiffTrees(t *testing.T) {
	fx := gittest.New(t)
	c1 := fx.Commit("init", map[string]string{
		"keep.txt": "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n",
		"gone.txt": "bye\n",
	})
	fx.RemoveFile("gone.txt")
	c2 := fx.Commit("edit", map[string]string{
		"keep.txt": "1\n2\n3\n4\nfive\n6\n7\n8\n9\n10\n",
		"new.txt":  "fresh\n",
	})

	repo, err := vcs.Open(fx.Dir)
	require.NoError(t, err)

	t.Run("against the empty tree", func(t *testing.T) {
		var rec recorded
		require.NoError(t, repo.DiffTrees("", treeOf(t, repo, c1), vcs.DefaultDiffOptions(), rec.callbacks()))

		require.Len(t, rec.deltas, 2)
		for _, d := range rec.deltas {
			assert.Equal(t, vcs.StatusAdded, d.Status)
		}
		for _, l := range rec.lines {
			assert.Equal(t, vcs.OriginAddition, l.Origin)
		}
		assert.Len(t, rec.lines, 11)
	})

	t.Run("between commits", func(t *testing.T) {
		var rec recorded
		require.NoError(t, repo.DiffTrees(treeOf(t, repo, c1), treeOf(t, repo, c2), vcs.DefaultDiffOptions(), rec.callbacks()))

		statuses := map[string]vcs.DeltaStatus{}
		for _, d := range rec.deltas {
			statuses[d.NewFile.Path] = d.Status
		}
		assert.Equal(t, map[string]vcs.DeltaStatus{
			"gone.txt": vcs.StatusDeleted,
			"keep.txt": vcs.StatusModified,
			"new.txt":  vcs.StatusAdded,
		}, statuses)

		// one hunk per file, keep.txt has three lines of context either side
		require.Len(t, rec.hunks, 3)

		var keep *vcs.HunkHeader
		for i := range rec.hunks {
			if rec.hunks[i].OldLines == 7 {
				keep = &rec.hunks[i]
			}
		}
		require.NotNil(t, keep)
		assert.Equal(t, "@@ -2,7 +2,7 @@", keep.Header)
	})

	t.Run("callback error aborts", func(t *testing.T) {
		cb := vcs.DiffCallbacks{
			File: func(vcs.DeltaHeader) error { return os.ErrClosed },
			Hunk: func(vcs.HunkHeader) error { return nil },
			Line: func(vcs.DiffLine) error { return nil },
		}
		err := repo.DiffTrees("", treeOf(t, repo, c1), vcs.DefaultDiffOptions(), cb)
		require.ErrorIs(t, err, os.ErrClosed)
	})
}

func storeBlob(t *testing.T, repo *git.Repository, content string) plumbing.Hash {
	t.Helper()

	obj := repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	hash, err := repo.Storer.SetEncodedObject(obj)
	require.NoError(t, err)
	return hash
}

// storeTree writes a tree object, entries must be sorted by name
func storeTree(t *testing.T, repo *git.Repository, entries ...object.TreeEntry) string {
	t.Helper()

	obj := repo.Storer.NewEncodedObject()
	require.NoError(t, (&object.Tree{Entries: entries}).Encode(obj))

	hash, err := repo.Storer.SetEncodedObject(obj)
	require.NoError(t, err)
	return hash.String()
}

func TestSubmoduleEntries(t *testing.T) {
	fx := gittest.New(t)
	blob := storeBlob(t, fx.Repo, "a\n")
	gitlink := plumbing.NewHash("0123456789abcdef0123456789abcdef01234567")

	before := storeTree(t, fx.Repo,
		object.TreeEntry{Name: "a.txt", Mode: filemode.Regular, Hash: blob},
	)
	after := storeTree(t, fx.Repo,
		object.TreeEntry{Name: "a.txt", Mode: filemode.Regular, Hash: blob},
		object.TreeEntry{Name: "sub", Mode: filemode.Submodule, Hash: gitlink},
	)

	repo, err := vcs.Open(fx.Dir)
	require.NoError(t, err)

	entries, err := repo.TreeEntries(after)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "sub", entries[1].Name)
	assert.Equal(t, vcs.KindCommit, entries[1].Kind)
	assert.Equal(t, uint32(0160000), entries[1].Mode)
	assert.Equal(t, gitlink.String(), entries[1].ID)

	t.Run("ignored by default", func(t *testing.T) {
		var rec recorded
		require.NoError(t, repo.DiffTrees(before, after, vcs.DefaultDiffOptions(), rec.callbacks()))
		assert.Empty(t, rec.deltas)
		assert.Empty(t, rec.hunks)
	})

	t.Run("reported as a path only", func(t *testing.T) {
		opts := vcs.DefaultDiffOptions()
		opts.IgnoreSubmodules = false

		var rec recorded
		require.NoError(t, repo.DiffTrees(before, after, opts, rec.callbacks()))
		require.Len(t, rec.deltas, 1)
		assert.Equal(t, vcs.StatusAdded, rec.deltas[0].Status)
		assert.Equal(t, "sub", rec.deltas[0].NewFile.Path)
		assert.Equal(t, "sub", rec.deltas[0].OldFile.Path)
		assert.Equal(t, uint32(0160000), rec.deltas[0].NewFile.Mode)
		assert.Empty(t, rec.hunks)
		assert.Empty(t, rec.lines)
	})
}

func TestTypeChange(t *testing.T) {
	fx := gittest.New(t)

	regular := storeTree(t, fx.Repo,
		object.TreeEntry{Name: "link", Mode: filemode.Regular, Hash: storeBlob(t, fx.Repo, "plain\n")},
	)
	symlink := storeTree(t, fx.Repo,
		object.TreeEntry{Name: "link", Mode: filemode.Symlink, Hash: storeBlob(t, fx.Repo, "target")},
	)

	repo, err := vcs.Open(fx.Dir)
	require.NoError(t, err)

	tests := []struct {
		name              string
		includeTypeChange bool
		want              vcs.DeltaStatus
	}{
		{name: "type change reported", includeTypeChange: true, want: vcs.StatusTypeChange},
		{name: "folded into modified", includeTypeChange: false, want: vcs.StatusModified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := vcs.DefaultDiffOptions()
			opts.IncludeTypeChange = tt.includeTypeChange

			var rec recorded
			require.NoError(t, repo.DiffTrees(regular, symlink, opts, rec.callbacks()))
			require.Len(t, rec.deltas, 1)
			assert.Equal(t, tt.want, rec.deltas[0].Status)
			assert.Equal(t, uint32(0100644), rec.deltas[0].OldFile.Mode)
			assert.Equal(t, uint32(0120000), rec.deltas[0].NewFile.Mode)
		})
	}
}
