package vcs

import "fmt"

// hunkSpan is a half-open range of lines forming one hunk
type hunkSpan struct {
	start, end int
}

// groupHunks surrounds every changed line with up to context lines on each
// side and merges spans whose context overlaps or touches.
func groupHunks(lines []DiffLine, context int) []hunkSpan {
	if context < 0 {
		context = 0
	}

	var spans []hunkSpan
	for i, line := range lines {
		if line.Origin == OriginContext {
			continue
		}

		lo := max(i-context, 0)
		hi := min(i+context+1, len(lines))

		if n := len(spans); n > 0 && lo <= spans[n-1].end {
			spans[n-1].end = max(spans[n-1].end, hi)
			continue
		}
		spans = append(spans, hunkSpan{start: lo, end: hi})
	}

	return spans
}

// hunkHeader computes the unified diff range header for a span
func hunkHeader(lines []DiffLine, span hunkSpan) HunkHeader {
	var oldBefore, newBefore int
	for _, line := range lines[:span.start] {
		if line.Origin != OriginAddition {
			oldBefore++
		}
		if line.Origin != OriginDeletion {
			newBefore++
		}
	}

	var h HunkHeader
	for _, line := range lines[span.start:span.end] {
		if line.Origin != OriginAddition {
			h.OldLines++
		}
		if line.Origin != OriginDeletion {
			h.NewLines++
		}
	}

	// An empty side starts at the line preceding the hunk
	h.OldStart = oldBefore
	if h.OldLines > 0 {
		h.OldStart++
	}
	h.NewStart = newBefore
	if h.NewLines > 0 {
		h.NewStart++
	}

	h.Header = fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
	return h
}
