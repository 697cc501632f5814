package site

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/DimitrijeDobrota/startgit/internal/config"
	"github.com/DimitrijeDobrota/startgit/internal/snapshot"
	"github.com/DimitrijeDobrota/startgit/internal/vcs"
	"github.com/sirupsen/logrus"
)

// BranchResult reports what a build did for one branch
type BranchResult struct {
	Branch  string
	Commits int

	// Written counts commit pages produced in this run
	Written int

	// Changed is true when derived pages were rendered
	Changed bool
}

// RepoResult reports what a build did for one repository
type RepoResult struct {
	Name     string
	Path     string
	Skipped  bool
	Branches []BranchResult
}

// Builder renders repositories into the configured output directory
type Builder struct {
	cfg    config.Config
	log    *logrus.Logger
	render *renderer
	hl     *highlighter
}

// NewBuilder validates cfg and prepares the templates
func NewBuilder(cfg config.Config, log *logrus.Logger) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	r, err := newRenderer()
	if err != nil {
		return nil, err
	}

	return &Builder{
		cfg:    cfg,
		log:    log,
		render: r,
		hl:     newHighlighter(cfg.HighlightStyle),
	}, nil
}

func (b *Builder) snapshotOptions() snapshot.Options {
	opts := snapshot.DefaultOptions()
	opts.Special = b.cfg.Special
	return opts
}

// Run builds every repository in order. Paths that are not repositories are
// skipped with a warning. Any other failure aborts only that repository and
// is returned joined with the others once all paths were processed.
func (b *Builder) Run(paths []string) ([]RepoResult, error) {
	var (
		results []RepoResult
		errs    []error
	)

	for _, path := range paths {
		result, err := b.BuildRepository(path)
		switch {
		case errors.Is(err, vcs.ErrNotARepository):
			b.log.WithField("path", path).Warn("not a repository")
			result.Skipped = true
		case err != nil:
			b.log.WithField("path", path).WithError(err).Error("failed to build repository")
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		results = append(results, result)
	}

	return results, errors.Join(errs...)
}

// BuildRepository renders every branch of the repository at path
func (b *Builder) BuildRepository(path string) (RepoResult, error) {
	result := RepoResult{Path: path}

	repo, err := snapshot.Open(path, b.snapshotOptions())
	if err != nil {
		return result, err
	}
	result.Name = repo.Name

	for _, branch := range repo.Branches {
		br, err := b.buildBranch(repo, branch)
		if err != nil {
			return result, fmt.Errorf("branch %s: %w", branch.Name, err)
		}
		result.Branches = append(result.Branches, br)
	}

	return result, nil
}

func (b *Builder) buildBranch(repo *snapshot.Repository, branch *snapshot.Branch) (BranchResult, error) {
	result := BranchResult{Branch: branch.Name, Commits: len(branch.Commits)}
	dir := branchDir(b.cfg.OutputDir, repo.Name, branch.Name)
	log := b.log.WithFields(logrus.Fields{"repository": repo.Name, "branch": branch.Name})

	if err := os.MkdirAll(filepath.Join(dir, commitDir), 0o755); err != nil {
		return result, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	// A new branch or tag must show up even when no commit is new
	if err := b.writeRefs(dir, repo, branch); err != nil {
		return result, err
	}

	written, err := writeCommits(dir, branch.Commits, b.cfg.Force, func(c *snapshot.Commit, path string) error {
		log.WithField("commit", c.ShortID).Debug("writing commit page")
		return b.writeCommit(path, repo, branch, c)
	})
	result.Written = written
	if err != nil {
		return result, err
	}

	if !b.cfg.Force && written == 0 {
		log.Debug("no new commits")
		return result, nil
	}
	result.Changed = true

	steps := []func(string, *snapshot.Repository, *snapshot.Branch) error{
		b.writeLog,
		b.writeFiles,
		b.writeSpecials,
		b.writeFilePages,
		b.writeFeeds,
	}
	for _, step := range steps {
		if err := step(dir, repo, branch); err != nil {
			return result, err
		}
	}

	log.WithField("commits", written).Info("branch updated")
	return result, nil
}

// branchPage fills the parts shared by every page of a branch
func (b *Builder) branchPage(repo *snapshot.Repository, branch *snapshot.Branch, description, rel string, content any) page {
	return page{
		Title:       fmt.Sprintf("%s (%s) - %s", repo.Name, branch.Name, repo.Description),
		Description: description,
		Author:      repo.Owner,
		ResourceURL: b.cfg.ResourceURL,
		RelPath:     rel,
		HasFeed:     true,
		Header:      newHeader(repo, branch, rel),
		Content:     content,
	}
}

func (b *Builder) writeRefs(dir string, repo *snapshot.Repository, branch *snapshot.Branch) error {
	data := b.branchPage(repo, branch, "Refs list", relRoot(0), newRefsView(repo, branch))
	return b.render.writePage(filepath.Join(dir, "refs.html"), "refs", data)
}

func (b *Builder) writeCommit(path string, repo *snapshot.Repository, branch *snapshot.Branch, c *snapshot.Commit) error {
	view, err := newCommitView(c, b.cfg.DiffstatWidth)
	if err != nil {
		return err
	}
	data := b.branchPage(repo, branch, c.Summary(), relRoot(1), view)
	return b.render.writePage(path, "commit", data)
}

func (b *Builder) writeLog(dir string, repo *snapshot.Repository, branch *snapshot.Branch) error {
	view, err := newLogView(branch)
	if err != nil {
		return err
	}
	data := b.branchPage(repo, branch, "Commit list", relRoot(0), view)
	return b.render.writePage(filepath.Join(dir, "log.html"), "log", data)
}

func (b *Builder) writeFiles(dir string, repo *snapshot.Repository, branch *snapshot.Branch) error {
	view, err := newFilesView(branch)
	if err != nil {
		return err
	}
	data := b.branchPage(repo, branch, "File list", relRoot(0), view)
	return b.render.writePage(filepath.Join(dir, "files.html"), "files", data)
}

func (b *Builder) writeSpecials(dir string, repo *snapshot.Repository, branch *snapshot.Branch) error {
	for _, f := range branch.Special {
		content, err := f.Content()
		if err != nil {
			return err
		}
		view := specialView{Content: renderDocument(f.Path, content)}
		data := b.branchPage(repo, branch, f.Path, relRoot(0), view)
		if err := b.render.writePage(filepath.Join(dir, specialPage(f.Path)), "special", data); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) writeFilePages(dir string, repo *snapshot.Repository, branch *snapshot.Branch) error {
	for _, f := range branch.Files {
		view, err := newFileView(f, b.hl)
		if err != nil {
			return err
		}
		data := b.branchPage(repo, branch, f.Path, relRoot(filePageDepth(f.Path)), view)
		if err := b.render.writePage(filePage(dir, f.Path), "file", data); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) writeFeeds(dir string, repo *snapshot.Repository, branch *snapshot.Branch) error {
	feed := b.newFeed(branch, feedURL(b.cfg.BaseURL, repo.Name, branch.Name))

	if err := writeFile(filepath.Join(dir, "atom.xml"), func(w io.Writer) error {
		return writeAtom(w, feed)
	}); err != nil {
		return err
	}

	return writeFile(filepath.Join(dir, "rss.xml"), func(w io.Writer) error {
		return writeRSS(w, feed)
	})
}
