// Package timer implements the countdown timer behind the timer status
// module.
//
// A timer is none, running, paused or finished. Only the first three are
// ever written to disk: finished is derived whenever a running timer is
// read after its duration has elapsed. Running timers store an absolute
// start time, paused timers store the remaining seconds, so the countdown
// is exact regardless of how often the status bar polls.
//
// Every mutation goes through state.Store.Update and therefore holds the
// state file lock, so key bindings and the watch loop can share one file.
package timer
