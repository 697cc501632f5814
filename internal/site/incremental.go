package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/DimitrijeDobrota/startgit/internal/snapshot"
)

// commitWriter renders one commit page to path
type commitWriter func(c *snapshot.Commit, path string) error

// writeCommits produces commit pages newest first and stops at the first
// commit whose page already exists. History only grows at the tip, so every
// older commit has a page too. With force every page is rewritten.
// It returns how many pages were written; the branch changed when that is
// non-zero.
func writeCommits(dir string, commits []*snapshot.Commit, force bool, write commitWriter) (int, error) {
	var written int

	for _, c := range commits {
		path := commitPage(dir, c.ID)

		if !force {
			exists, err := fileExists(path)
			if err != nil {
				return written, err
			}
			if exists {
				break
			}
		}

		if err := write(c, path); err != nil {
			return written, fmt.Errorf("failed to write commit %s: %w", c.ID, err)
		}
		written++
	}

	return written, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
}
