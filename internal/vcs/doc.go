// Package vcs is the version-control access facade.
//
// Repository describes the small capability surface the snapshot model reads
// from: refs, the ancestry walk, tree entries, blobs and a callback driven
// tree-to-tree diff. Open returns the go-git backed implementation.
package vcs
