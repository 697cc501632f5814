package site

import (
	"path"
	"path/filepath"
	"strings"
)

const (
	commitDir = "commit"
	fileDir   = "file"
)

// branchDir is <out>/<repo>/<branch>
func branchDir(out, repo, branch string) string {
	return filepath.Join(out, repo, branch)
}

// commitPage is the artifact path of a commit. The full id keeps the key
// stable across runs.
func commitPage(dir, id string) string {
	return filepath.Join(dir, commitDir, id+".html")
}

// filePage is the viewer page of a repo-relative file path
func filePage(dir, file string) string {
	return filepath.Join(dir, fileDir, filepath.FromSlash(file)+".html")
}

// specialPage maps README.md to README.html
func specialPage(file string) string {
	return specialStem(file) + ".html"
}

// specialStem maps README.md to README
func specialStem(file string) string {
	return strings.TrimSuffix(file, path.Ext(file))
}

// relRoot is the relative path from a page back to its branch directory.
// depth counts the directories between the two.
func relRoot(depth int) string {
	if depth <= 0 {
		return "./"
	}
	return strings.Repeat("../", depth)
}

// filePageDepth is the depth of file/<path>.html below the branch directory
func filePageDepth(file string) int {
	return 1 + strings.Count(file, "/")
}

// feedURL is the absolute URL of a branch directory used in feeds
func feedURL(base, repo, branch string) string {
	return base + "/" + repo + "/" + branch
}
