package snapshot

import (
	"fmt"
	"path"

	"github.com/DimitrijeDobrota/startgit/internal/vcs"
)

type treeWalker struct {
	handle  vcs.Repository
	special map[string]bool

	files    []*File
	specials []*File
}

// traverse walks a tree depth first. It returns every blob with its
// repo-relative path and the root-level blobs named in special, the latter
// in reverse encounter order.
func traverse(handle vcs.Repository, treeID string, special map[string]bool) ([]*File, []*File, error) {
	w := &treeWalker{handle: handle, special: special}
	if err := w.walk(treeID, ""); err != nil {
		return nil, nil, err
	}
	return w.files, w.specials, nil
}

func (w *treeWalker) walk(treeID, prefix string) error {
	entries, err := w.handle.TreeEntries(treeID)
	if err != nil {
		return fmt.Errorf("%w: tree %q: %w", ErrTraversal, prefix, err)
	}

	for _, entry := range entries {
		switch entry.Kind {
		case vcs.KindTree:
			if err := w.walk(entry.ID, path.Join(prefix, entry.Name)); err != nil {
				return err
			}
		case vcs.KindBlob:
			file := newFile(w.handle, entry, path.Join(prefix, entry.Name))
			w.files = append(w.files, file)
			if prefix == "" && w.special[entry.Name] {
				w.specials = append([]*File{file}, w.specials...)
			}
		case vcs.KindCommit, vcs.KindTag, vcs.KindInvalid:
			// submodules and anything unexpected have no content to show
		default:
			panic(fmt.Sprintf("snapshot: unhandled object kind %v", entry.Kind))
		}
	}

	return nil
}
