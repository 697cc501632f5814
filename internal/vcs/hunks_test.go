package vcs

import (
	"reflect"
	"testing"
)

func numbered(ops string) []DiffLine {
	var lines []DiffLine
	oldNo, newNo := 1, 1
	for _, op := range []byte(ops) {
		switch op {
		case ' ':
			lines = append(lines, DiffLine{Origin: op, OldLineno: oldNo, NewLineno: newNo})
			oldNo++
			newNo++
		case '+':
			lines = append(lines, DiffLine{Origin: op, OldLineno: -1, NewLineno: newNo})
			newNo++
		case '-':
			lines = append(lines, DiffLine{Origin: op, OldLineno: oldNo, NewLineno: -1})
			oldNo++
		}
	}
	return lines
}

func TestGroupHunks(t *testing.T) {
	tests := []struct {
		name    string
		ops     string
		context int
		want    []hunkSpan
	}{
		{name: "no changes", ops: "     ", context: 3, want: nil},
		{name: "single change in the middle", ops: "          +          ", context: 3, want: []hunkSpan{{7, 14}}},
		{name: "change at start", ops: "-      ", context: 3, want: []hunkSpan{{0, 4}}},
		{name: "close changes merge", ops: "  -      +  ", context: 3, want: []hunkSpan{{0, 12}}},
		{name: "distant changes split", ops: "-        +", context: 3, want: []hunkSpan{{0, 4}, {6, 10}}},
		{name: "zero context", ops: "  -  +", context: 0, want: []hunkSpan{{2, 3}, {5, 6}}},
		{name: "negative context acts as zero", ops: " + ", context: -1, want: []hunkSpan{{1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := groupHunks(numbered(tt.ops), tt.context)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected spans %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHunkHeader(t *testing.T) {
	tests := []struct {
		name   string
		ops    string
		header string
	}{
		{name: "modification with context", ops: "     -+     ", header: "@@ -3,7 +3,7 @@"},
		{name: "new file", ops: "+++", header: "@@ -0,0 +1,3 @@"},
		{name: "deleted file", ops: "--", header: "@@ -1,2 +0,0 @@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := numbered(tt.ops)
			spans := groupHunks(lines, 3)
			if len(spans) != 1 {
				t.Fatalf("Expected 1 hunk, got %d", len(spans))
			}

			h := hunkHeader(lines, spans[0])
			if h.Header != tt.header {
				t.Errorf("Expected header %q, got %q", tt.header, h.Header)
			}
		})
	}

	lines := numbered("     -+     ")
	h := hunkHeader(lines, groupHunks(lines, 3)[0])
	if h.OldStart != 3 || h.OldLines != 7 || h.NewStart != 3 || h.NewLines != 7 {
		t.Errorf("Expected ranges 3,7 3,7, got %d,%d %d,%d", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
	}
}

func TestSplitLines(t *testing.T) {
	if got := splitLines(""); got != nil {
		t.Errorf("Expected nil for empty content, got %q", got)
	}

	tests := []struct {
		in   string
		want []string
	}{
		{in: "\n", want: []string{""}},
		{in: "a\nb\n", want: []string{"a", "b"}},
		{in: "a\nb", want: []string{"a", "b"}},
	}
	for _, tt := range tests {
		if got := splitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitLines(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestDeltaStatus(t *testing.T) {
	opts := DefaultDiffOptions()
	if got := deltaStatus(0100644, 0100755, opts); got != StatusModified {
		t.Errorf("Expected mode change to be Modified, got %v", got)
	}
	if got := deltaStatus(0100644, 0120000, opts); got != StatusTypeChange {
		t.Errorf("Expected kind change to be TypeChange, got %v", got)
	}

	opts.IncludeTypeChange = false
	if got := deltaStatus(0100644, 0120000, opts); got != StatusModified {
		t.Errorf("Expected kind change without IncludeTypeChange to be Modified, got %v", got)
	}
}
