// Package filesystem provides the filesystem seam used by the link
// reconciler, the chore modules and the continuation-state store.
//
// FS mirrors the subset of package os that polka needs. Faults wraps any
// FS to fail chosen operations, so tests can exercise permission and I/O
// failures without depending on who runs them.
package filesystem
