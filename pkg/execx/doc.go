// Package execx runs external collaborators with a bounded wait.
//
// Status modules never see an error from a child process. Any failure
// (missing binary, non-zero exit, timeout, cancelled context) collapses to
// an unavailable Result, and the next poll cycle is the retry.
package execx
