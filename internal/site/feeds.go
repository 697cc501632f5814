package site

import (
	"fmt"
	"io"
	"time"

	"github.com/DimitrijeDobrota/startgit/internal/snapshot"
	"github.com/gorilla/feeds"
)

// newFeed lists every commit of a branch. base is the absolute URL of the
// branch directory.
func (b *Builder) newFeed(branch *snapshot.Branch, base string) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       b.cfg.Title,
		Description: b.cfg.Description,
		Id:          base + "/",
		Link:        &feeds.Link{Href: base + "/", Rel: "alternate"},
		Author:      &feeds.Author{Name: b.cfg.Author},
	}

	// Derived from history so unchanged branches produce identical feeds
	if last := branch.LastCommit(); last != nil {
		feed.Updated = last.When
		feed.Created = last.When
	} else {
		feed.Updated = time.Unix(0, 0).UTC()
	}

	for _, c := range branch.Commits {
		url := fmt.Sprintf("%s/%s/%s.html", base, commitDir, c.ID)
		feed.Items = append(feed.Items, &feeds.Item{
			Id:      url,
			Title:   c.Summary(),
			Link:    &feeds.Link{Href: url},
			Author:  &feeds.Author{Name: c.AuthorName, Email: c.AuthorEmail},
			Created: c.When,
			Updated: c.When,
			Content: c.Message,
		})
	}

	return feed
}

func writeAtom(w io.Writer, feed *feeds.Feed) error {
	if err := feed.WriteAtom(w); err != nil {
		return fmt.Errorf("failed to write atom feed: %w", err)
	}
	return nil
}

func writeRSS(w io.Writer, feed *feeds.Feed) error {
	if err := feed.WriteRss(w); err != nil {
		return fmt.Errorf("failed to write rss feed: %w", err)
	}
	return nil
}
