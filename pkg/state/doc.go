// Package state persists the small continuation state status modules
// carry between invocations.
//
// Reads never fail: a missing, empty, corrupt or invalid file yields the
// store's default value. Writes go to a temporary file in the target
// directory which is then renamed over the target, so readers see either
// the old file or the new one. Read-modify-write cycles through Update hold
// an exclusive flock on a sidecar "<file>.lock", which serializes writers
// from different processes sharing one state file.
package state
