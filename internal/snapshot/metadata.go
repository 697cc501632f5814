package snapshot

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// MetadataDefault is used when a sidecar file does not exist
const MetadataDefault = "Unknown"

// ReadMetadata returns the first line of the sidecar file name, looked up in
// the repository directory and then in its .git directory. It never fails,
// missing or unreadable files resolve to MetadataDefault.
func ReadMetadata(repoPath, name string) string {
	for _, candidate := range []string{
		filepath.Join(repoPath, name),
		filepath.Join(repoPath, ".git", name),
	} {
		if line, ok := firstLine(candidate); ok {
			return line
		}
	}
	return MetadataDefault
}

func firstLine(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return "", false
	}

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", scanner.Err() == nil
	}
	return strings.TrimRight(scanner.Text(), "\r"), true
}
