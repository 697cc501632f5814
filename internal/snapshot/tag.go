package snapshot

import "github.com/DimitrijeDobrota/startgit/internal/vcs"

// Tag is captured when the repository is opened
type Tag struct {
	Name   string
	Target string
	Tagger string
	Time   string
}

func newTag(info vcs.TagInfo) Tag {
	tag := Tag{
		Name:   info.Name,
		Target: info.Target,
		Tagger: info.Tagger.Name,
	}
	if !info.Tagger.When.IsZero() {
		tag.Time = info.Tagger.When.UTC().Format(TimeShort)
	}
	return tag
}
