package snapshot

import (
	"fmt"
	"math"

	"github.com/DimitrijeDobrota/startgit/internal/vcs"
)

// DiffstatWidth is the default visual budget of a diffstat bar
const DiffstatWidth = 80

// Status is the change kind of a delta
type Status vcs.DeltaStatus

const statusMarkers = " ADMRC  T"

// Marker returns the one letter diffstat marker of the status
func (s Status) Marker() string {
	if s < 0 || int(s) >= len(statusMarkers) {
		return " "
	}
	return statusMarkers[s : s+1]
}

// Diff is the structured diff of a commit against its first parent
type Diff struct {
	Deltas       []*Delta
	FilesChanged int
	Insertions   int
	Deletions    int
}

// Delta is the change to a single path
type Delta struct {
	Status  Status
	OldPath string
	NewPath string
	Binary  bool
	Hunks   []*Hunk

	// Adds and Dels are summed from the hunk lines once the delta is complete
	Adds int
	Dels int
}

// Hunk is a contiguous block of changed lines with its context
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Header   string
	Lines    []Line
}

// Line is one line of a hunk
type Line struct {
	Origin    byte
	Content   string
	OldLineno int
	NewLineno int
}

func (l Line) IsAdd() bool { return l.Origin == vcs.OriginAddition }
func (l Line) IsDel() bool { return l.Origin == vcs.OriginDeletion }

// diffBuilder collects the facade callbacks into deltas. The facade fires
// file, then hunk, then line callbacks without interleaving, so the builder
// only tracks the delta and hunk currently being filled.
type diffBuilder struct {
	deltas []*Delta
	delta  *Delta
	hunk   *Hunk
}

func (b *diffBuilder) callbacks() vcs.DiffCallbacks {
	return vcs.DiffCallbacks{
		File: b.onFile,
		Hunk: b.onHunk,
		Line: b.onLine,
	}
}

func (b *diffBuilder) onFile(h vcs.DeltaHeader) error {
	b.delta = &Delta{
		Status:  Status(h.Status),
		OldPath: h.OldFile.Path,
		NewPath: h.NewFile.Path,
		Binary:  h.Binary,
	}
	b.hunk = nil
	b.deltas = append(b.deltas, b.delta)
	return nil
}

func (b *diffBuilder) onHunk(h vcs.HunkHeader) error {
	if b.delta == nil {
		panic("snapshot: hunk callback before any file callback")
	}

	b.hunk = &Hunk{
		OldStart: h.OldStart,
		OldLines: h.OldLines,
		NewStart: h.NewStart,
		NewLines: h.NewLines,
		Header:   h.Header,
	}
	b.delta.Hunks = append(b.delta.Hunks, b.hunk)
	return nil
}

func (b *diffBuilder) onLine(l vcs.DiffLine) error {
	if b.hunk == nil {
		panic("snapshot: line callback before any hunk callback")
	}

	b.hunk.Lines = append(b.hunk.Lines, Line{
		Origin:    l.Origin,
		Content:   l.Content,
		OldLineno: l.OldLineno,
		NewLineno: l.NewLineno,
	})
	return nil
}

// finish sums the per-delta counts. Hunks are appended before their lines
// arrive, so this cannot happen during the callback pass.
func (b *diffBuilder) finish() *Diff {
	diff := &Diff{Deltas: b.deltas, FilesChanged: len(b.deltas)}

	for _, delta := range b.deltas {
		for _, hunk := range delta.Hunks {
			for _, line := range hunk.Lines {
				if line.IsAdd() {
					delta.Adds++
				}
				if line.IsDel() {
					delta.Dels++
				}
			}
		}
		diff.Insertions += delta.Adds
		diff.Deletions += delta.Dels
	}

	return diff
}

func computeDiff(handle vcs.Repository, id, parentTree, tree string, opts vcs.DiffOptions) (*Diff, error) {
	var b diffBuilder
	if err := handle.DiffTrees(parentTree, tree, opts, b.callbacks()); err != nil {
		return nil, fmt.Errorf("%w: commit %s: %w", ErrDiff, id, err)
	}
	return b.finish(), nil
}

// ScaleDiffstat fits a delta's add and delete counts into budget columns.
// Counts whose sum is within budget are returned unchanged. Otherwise both
// are scaled proportionally and each non-zero count gets one extra column so
// a changed file never collapses to nothing.
func ScaleDiffstat(adds, dels, budget int) (int, int) {
	sum := adds + dels
	if sum <= budget {
		return adds, dels
	}

	ratio := float64(budget) / float64(sum)
	if adds > 0 {
		adds = int(math.Round(ratio*float64(adds))) + 1
	}
	if dels > 0 {
		dels = int(math.Round(ratio*float64(dels))) + 1
	}

	return adds, dels
}
