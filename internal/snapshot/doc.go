// Package snapshot builds the read-only entity graph of a repository for one
// site build: branches with their commit history, file lists and special
// documentation files, lazily computed diffs and tags.
//
// Everything is read through vcs.Repository. Renderers consume the values
// returned here and never talk to the version-control layer themselves.
package snapshot
