package site

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/DimitrijeDobrota/startgit/internal/snapshot"
	"github.com/dustin/go-humanize"
)

// page is the data every repository page template receives
type page struct {
	Title       string
	Description string
	Author      string
	ResourceURL string
	RelPath     string
	HasFeed     bool

	Header  *header
	Content any
}

// header is the repository title block shown on top of every branch page
type header struct {
	Name        string
	Description string
	CloneURL    string
	Nav         []link
}

type link struct {
	Href  string
	Label string
}

type logRow struct {
	Time       string
	Href       string
	Summary    string
	Author     string
	Files      int
	Insertions int
	Deletions  int
}

type fileRow struct {
	Mode string
	Href string
	Path string
	Size string
}

type refRow struct {
	Current bool
	Href    string
	Name    string
	Time    string
	Author  string
}

type logView struct {
	Rows []logRow
}

type filesView struct {
	Rows []fileRow
}

type refsView struct {
	Branches []refRow
	Tags     []snapshot.Tag
}

type statRow struct {
	Marker string
	Anchor string
	Path   string
	Adds   string
	Dels   string
}

type deltaView struct {
	Anchor  string
	OldPath string
	NewPath string
	OldHref string
	NewHref string
	Binary  bool
	Hunks   []*snapshot.Hunk
}

type commitView struct {
	ID          string
	Href        string
	ParentID    string
	ParentHref  string
	AuthorName  string
	AuthorEmail string
	Date        string
	Message     string

	Stats        []statRow
	FilesChanged int
	Insertions   int
	Deletions    int
	Deltas       []deltaView
}

type fileView struct {
	Name    string
	Size    string
	Binary  bool
	Content template.HTML
}

type specialView struct {
	Content template.HTML
}

type indexRow struct {
	Href        string
	Name        string
	Description string
	Owner       string
	LastCommit  string
}

type indexView struct {
	Title       string
	Description string
	Rows        []indexRow
}

func newHeader(repo *snapshot.Repository, branch *snapshot.Branch, rel string) *header {
	h := &header{
		Name:        repo.Name,
		Description: repo.Description,
		CloneURL:    repo.URL,
		Nav: []link{
			{Href: rel + "log.html", Label: "Log"},
			{Href: rel + "files.html", Label: "Files"},
			{Href: rel + "refs.html", Label: "Refs"},
		},
	}
	for _, f := range branch.Special {
		h.Nav = append(h.Nav, link{Href: rel + specialPage(f.Path), Label: specialStem(f.Path)})
	}
	return h
}

func newLogView(branch *snapshot.Branch) (logView, error) {
	var view logView
	for _, c := range branch.Commits {
		diff, err := c.Diff()
		if err != nil {
			return logView{}, err
		}
		view.Rows = append(view.Rows, logRow{
			Time:       c.Time(),
			Href:       "./" + commitDir + "/" + c.ID + ".html",
			Summary:    c.Summary(),
			Author:     c.AuthorName,
			Files:      diff.FilesChanged,
			Insertions: diff.Insertions,
			Deletions:  diff.Deletions,
		})
	}
	return view, nil
}

// fileSize is a byte size for binary files and a line count otherwise
func fileSize(f *snapshot.File) (string, error) {
	binary, err := f.IsBinary()
	if err != nil {
		return "", err
	}
	if binary {
		size, err := f.Size()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%dB", size), nil
	}

	lines, err := f.Lines()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%dL", lines), nil
}

func newFilesView(branch *snapshot.Branch) (filesView, error) {
	var view filesView
	for _, f := range branch.Files {
		size, err := fileSize(f)
		if err != nil {
			return filesView{}, err
		}
		view.Rows = append(view.Rows, fileRow{
			Mode: f.Mode,
			Href: "./" + fileDir + "/" + f.Path + ".html",
			Path: f.Path,
			Size: size,
		})
	}
	return view, nil
}

func newRefsView(repo *snapshot.Repository, current *snapshot.Branch) refsView {
	var view refsView

	// Branch names may hold slashes, each one is a directory level
	toRepo := relRoot(1 + strings.Count(current.Name, "/"))
	for _, b := range repo.Branches {
		row := refRow{Name: b.Name, Current: b.Name == current.Name}
		if !row.Current {
			row.Href = toRepo + b.Name + "/refs.html"
		}
		if last := b.LastCommit(); last != nil {
			row.Time = last.Time()
			row.Author = last.AuthorName
		}
		view.Branches = append(view.Branches, row)
	}
	view.Tags = repo.Tags
	return view
}

func newCommitView(c *snapshot.Commit, width int) (commitView, error) {
	diff, err := c.Diff()
	if err != nil {
		return commitView{}, err
	}

	view := commitView{
		ID:           c.ID,
		Href:         "../" + commitDir + "/" + c.ID + ".html",
		AuthorName:   c.AuthorName,
		AuthorEmail:  c.AuthorEmail,
		Date:         c.TimeLong(),
		Message:      c.Message,
		FilesChanged: diff.FilesChanged,
		Insertions:   diff.Insertions,
		Deletions:    diff.Deletions,
	}
	if c.ParentCount > 0 {
		view.ParentID = c.ParentID
		view.ParentHref = "../" + commitDir + "/" + c.ParentID + ".html"
	}

	for _, d := range diff.Deltas {
		adds, dels := snapshot.ScaleDiffstat(d.Adds, d.Dels, width)
		view.Stats = append(view.Stats, statRow{
			Marker: d.Status.Marker(),
			Anchor: "#" + d.NewPath,
			Path:   d.NewPath,
			Adds:   strings.Repeat("+", adds),
			Dels:   strings.Repeat("-", dels),
		})
		view.Deltas = append(view.Deltas, deltaView{
			Anchor:  d.NewPath,
			OldPath: d.OldPath,
			NewPath: d.NewPath,
			OldHref: "../" + fileDir + "/" + d.OldPath + ".html",
			NewHref: "../" + fileDir + "/" + d.NewPath + ".html",
			Binary:  d.Binary,
			Hunks:   d.Hunks,
		})
	}

	return view, nil
}

func newFileView(f *snapshot.File, hl *highlighter) (fileView, error) {
	size, err := f.Size()
	if err != nil {
		return fileView{}, err
	}
	binary, err := f.IsBinary()
	if err != nil {
		return fileView{}, err
	}

	name := f.Path
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}

	view := fileView{
		Name:   name,
		Size:   humanize.Bytes(uint64(size)),
		Binary: binary,
	}
	if binary {
		return view, nil
	}

	content, err := f.Content()
	if err != nil {
		return fileView{}, err
	}
	view.Content, err = hl.highlight(f.Path, content)
	if err != nil {
		return fileView{}, err
	}

	return view, nil
}
