package site

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ExportFormat represents supported export formats
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
)

// BranchExport is the exported form of a branch result
type BranchExport struct {
	Branch  string `json:"branch"`
	Commits int    `json:"commits"`
	Written int    `json:"written"`
	Changed bool   `json:"changed"`
}

// RepoExport is the exported form of a repository result
type RepoExport struct {
	Name     string         `json:"name,omitempty"`
	Path     string         `json:"path"`
	Skipped  bool           `json:"skipped"`
	Written  int            `json:"written"`
	Branches []BranchExport `json:"branches"`
}

// ExportResults writes build results in the given format
func ExportResults(results []RepoResult, format string, writer io.Writer) error {
	if ExportFormat(strings.ToLower(format)) != FormatJSON {
		return fmt.Errorf("unsupported export format: %s (supported: json)", format)
	}

	exports := make([]RepoExport, len(results))
	for i, r := range results {
		exports[i] = toExport(r)
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exports)
}

func toExport(r RepoResult) RepoExport {
	export := RepoExport{
		Name:     r.Name,
		Path:     r.Path,
		Skipped:  r.Skipped,
		Branches: make([]BranchExport, len(r.Branches)),
	}
	for i, b := range r.Branches {
		export.Branches[i] = BranchExport{
			Branch:  b.Branch,
			Commits: b.Commits,
			Written: b.Written,
			Changed: b.Changed,
		}
		export.Written += b.Written
	}
	return export
}
