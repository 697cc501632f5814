// Package site renders repository snapshots into a static HTML tree.
//
// For every branch the refs page is always rewritten, then commit pages are
// produced newest first until one that already exists is reached. The log,
// file list, special file pages, per-file pages and feeds are only rendered
// again when that pass wrote at least one commit page or when forced.
package site
