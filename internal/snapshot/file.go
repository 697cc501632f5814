package snapshot

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/DimitrijeDobrota/startgit/internal/vcs"
)

// File is a blob reachable from a branch tip. Content is read from the
// repository on first use and cached.
type File struct {
	Path string
	Mode string
	ID   string

	binary  func() (bool, error)
	size    func() (int64, error)
	content func() ([]byte, error)
	lines   func() (int, error)
}

func newFile(handle vcs.Repository, entry vcs.TreeEntry, path string) *File {
	f := &File{
		Path: path,
		Mode: FileMode(entry.Mode),
		ID:   entry.ID,
	}

	f.binary = sync.OnceValues(func() (bool, error) {
		binary, err := handle.BlobIsBinary(f.ID)
		if err != nil {
			return false, fmt.Errorf("failed to inspect %s: %w", f.Path, err)
		}
		return binary, nil
	})
	f.size = sync.OnceValues(func() (int64, error) {
		size, err := handle.BlobSize(f.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to size %s: %w", f.Path, err)
		}
		return size, nil
	})
	f.content = sync.OnceValues(func() ([]byte, error) {
		content, err := handle.BlobContent(f.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
		}
		return content, nil
	})
	f.lines = sync.OnceValues(func() (int, error) {
		content, err := f.content()
		if err != nil {
			return 0, err
		}
		return bytes.Count(content, []byte{'\n'}), nil
	})

	return f
}

// IsBinary reports whether the blob looks like binary data
func (f *File) IsBinary() (bool, error) { return f.binary() }

// Size is the raw blob size in bytes
func (f *File) Size() (int64, error) { return f.size() }

// Content returns the raw blob bytes
func (f *File) Content() ([]byte, error) { return f.content() }

// Lines counts newline bytes in the content
func (f *File) Lines() (int, error) { return f.lines() }
