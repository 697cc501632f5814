package snapshot

import (
	"fmt"

	"github.com/DimitrijeDobrota/startgit/internal/vcs"
)

// Branch is a local branch with its full history and the files of its tip
type Branch struct {
	Name string
	Head string

	// Commits runs from the tip to the root
	Commits []*Commit

	// Files lists every blob reachable from the tip tree
	Files []*File

	// Special holds the root-level documentation files of the tip tree
	Special []*File
}

func newBranch(handle vcs.Repository, ref vcs.Reference, opts Options) (*Branch, error) {
	branch := &Branch{Name: ref.Name, Head: ref.Target}
	if ref.Target == "" {
		return branch, nil
	}

	var infos []vcs.CommitInfo
	trees := make(map[string]string)
	err := handle.WalkAncestry(ref.Target, func(info vcs.CommitInfo) error {
		infos = append(infos, info)
		trees[info.ID] = info.TreeID
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %s: %w", ErrTraversal, ref.Name, err)
	}

	diffOpts := opts.diffOptions()
	for _, info := range infos {
		// The first parent is an ancestor, so the walk has already seen it
		parentTree := ""
		if len(info.ParentIDs) > 0 {
			parentTree = trees[info.ParentIDs[0]]
		}
		branch.Commits = append(branch.Commits, newCommit(handle, info, parentTree, diffOpts))
	}

	if len(infos) == 0 {
		return branch, nil
	}

	branch.Files, branch.Special, err = traverse(handle, infos[0].TreeID, opts.specialSet())
	if err != nil {
		return nil, err
	}

	return branch, nil
}

// LastCommit returns the tip commit, or nil for an empty branch
func (b *Branch) LastCommit() *Commit {
	if len(b.Commits) == 0 {
		return nil
	}
	return b.Commits[0]
}
