// Package format turns parsed state into display text.
//
// Every function here is pure: no clock reads, no I/O. Callers pass the
// current time in when a rendering depends on it.
package format
