package snapshot

import (
	"strings"
	"sync"
	"time"

	"github.com/DimitrijeDobrota/startgit/internal/vcs"
)

const (
	summaryLimit  = 50
	summaryMarker = "...."

	shortIDLength = 7

	// TimeShort is the layout of list views
	TimeShort = "2006-01-02 15:04"

	// TimeLong is the layout of the commit page date row
	TimeLong = "Mon, _2 Jan 2006 15:04:05 -0700"
)

// Commit is one commit of a branch history
type Commit struct {
	ID          string
	ShortID     string
	ParentID    string
	ParentCount int
	AuthorName  string
	AuthorEmail string
	When        time.Time
	Message     string

	summary string
	diff    func() (*Diff, error)
}

func newCommit(handle vcs.Repository, info vcs.CommitInfo, parentTree string, opts vcs.DiffOptions) *Commit {
	c := &Commit{
		ID:          info.ID,
		ShortID:     shortID(info.ID),
		ParentCount: len(info.ParentIDs),
		AuthorName:  info.Author.Name,
		AuthorEmail: info.Author.Email,
		When:        info.Author.When,
		Message:     info.Message,
		summary:     Summarize(info.Message),
	}
	if len(info.ParentIDs) > 0 {
		c.ParentID = info.ParentIDs[0]
	}

	treeID := info.TreeID
	c.diff = sync.OnceValues(func() (*Diff, error) {
		return computeDiff(handle, c.ID, parentTree, treeID, opts)
	})

	return c
}

// Diff returns the diff against the first parent, or against the empty tree
// for a root commit. It is computed on first use and cached.
func (c *Commit) Diff() (*Diff, error) {
	return c.diff()
}

// Summary returns the first line of the message, truncated for list views
func (c *Commit) Summary() string {
	return c.summary
}

// Time formats the author time for list views, in UTC
func (c *Commit) Time() string {
	return c.When.UTC().Format(TimeShort)
}

// TimeLong formats the author time in the author's own zone
func (c *Commit) TimeLong() string {
	return c.When.Format(TimeLong)
}

// Summarize extracts the first line of a commit message and caps it at 50
// runes. When cut, the last four runes are replaced by periods.
func Summarize(message string) string {
	summary := strings.TrimLeft(message, " \t\r\n")
	if i := strings.IndexByte(summary, '\n'); i >= 0 {
		summary = summary[:i]
	}
	summary = strings.TrimRight(summary, " \t\r")

	runes := []rune(summary)
	if len(runes) <= summaryLimit {
		return summary
	}

	return string(runes[:summaryLimit-len(summaryMarker)]) + summaryMarker
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}
