package site

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/DimitrijeDobrota/startgit/internal/snapshot"
	"github.com/DimitrijeDobrota/startgit/internal/vcs"
)

// BuildIndex writes <out>/index.html listing every repository that has the
// configured index branch. Paths that are not repositories and repositories
// without that branch are left out with a warning.
func (b *Builder) BuildIndex(paths []string) error {
	view := indexView{Title: b.cfg.Title, Description: b.cfg.Description}
	var errs []error

	for _, path := range paths {
		log := b.log.WithField("path", path)

		repo, err := snapshot.Open(path, b.snapshotOptions())
		switch {
		case errors.Is(err, vcs.ErrNotARepository):
			log.Warn("not a repository")
			continue
		case err != nil:
			log.WithError(err).Error("failed to open repository")
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}

		branch := repo.Branch(b.cfg.IndexBranch)
		if branch == nil {
			log.Warnf("no %s branch", b.cfg.IndexBranch)
			continue
		}

		row := indexRow{
			Href:        repo.Name + "/" + branch.Name + "/log.html",
			Name:        repo.Name,
			Description: repo.Description,
			Owner:       repo.Owner,
		}
		if last := branch.LastCommit(); last != nil {
			row.LastCommit = last.Time()
		}
		view.Rows = append(view.Rows, row)
	}

	data := page{
		Title:       b.cfg.Title,
		Description: b.cfg.Description,
		Author:      b.cfg.Author,
		ResourceURL: b.cfg.ResourceURL,
		RelPath:     relRoot(0),
		Content:     view,
	}
	if err := b.render.writePage(filepath.Join(b.cfg.OutputDir, "index.html"), "index", data); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
