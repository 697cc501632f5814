package snapshot

import "errors"

var (
	// ErrTraversal wraps failures while walking history or trees of a branch
	ErrTraversal = errors.New("traversal failed")

	// ErrDiff wraps failures while computing the diff of a commit
	ErrDiff = errors.New("diff failed")
)
