package timer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/polka-dots/polka/pkg/format"
)

// Unit is the granularity used for adjust steps
type Unit string

const (
	UnitMinutes Unit = "minutes"
	UnitHours   Unit = "hours"
	UnitSeconds Unit = "seconds"
)

// Units lists units in cycling order
var Units = []Unit{UnitMinutes, UnitHours, UnitSeconds}

// Valid reports whether u is a known unit
func (u Unit) Valid() bool {
	switch u {
	case UnitMinutes, UnitHours, UnitSeconds:
		return true
	}
	return false
}

// Seconds returns the length of one unit
func (u Unit) Seconds() int {
	switch u {
	case UnitHours:
		return 3600
	case UnitSeconds:
		return 1
	default:
		return 60
	}
}

// DefaultStep is the number of units one adjust moves by
func (u Unit) DefaultStep() int {
	if u == UnitSeconds {
		return 5
	}
	return 1
}

// Next returns the unit after u in cycling order
func (u Unit) Next() Unit {
	for i, v := range Units {
		if v == u {
			return Units[(i+1)%len(Units)]
		}
	}
	return UnitMinutes
}

// ParseUnit accepts full names and single letters; unknown input falls back
// to minutes.
func ParseUnit(s string) Unit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "hour", "hours":
		return UnitHours
	case "s", "sec", "second", "seconds":
		return UnitSeconds
	default:
		return UnitMinutes
	}
}

// Phase is the display category of a timer
type Phase string

const (
	PhaseNone     Phase = "none"
	PhaseRunning  Phase = "running"
	PhasePaused   Phase = "paused"
	PhaseFinished Phase = "finished"
)

// State is the persisted timer. Duration is the total length while
// running and the remaining seconds while paused.
type State struct {
	Duration         int        `json:"duration"`
	StartTime        *time.Time `json:"start_time"`
	PausedAt         *time.Time `json:"paused_at"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	Unit             Unit       `json:"unit,omitempty"`
	FinishedNotified bool       `json:"finished_notified,omitempty"`
}

// Valid rejects negative durations and unknown units
func (s State) Valid() bool {
	if s.Duration < 0 {
		return false
	}
	return s.Unit == "" || s.Unit.Valid()
}

// CurrentUnit returns the stored unit, defaulting to minutes
func (s State) CurrentUnit() Unit {
	if s.Unit.Valid() {
		return s.Unit
	}
	return UnitMinutes
}

// Phase derives the category at now
func (s State) Phase(now time.Time) Phase {
	if s.Duration <= 0 {
		return PhaseNone
	}
	if s.PausedAt != nil {
		return PhasePaused
	}
	if s.StartTime == nil {
		return PhaseNone
	}
	if now.Sub(*s.StartTime) >= time.Duration(s.Duration)*time.Second {
		return PhaseFinished
	}
	return PhaseRunning
}

// Remaining returns whole seconds left at now; never negative and never
// more than the stored duration.
func (s State) Remaining(now time.Time) int {
	switch s.Phase(now) {
	case PhasePaused:
		return s.Duration
	case PhaseRunning:
		elapsed := now.Sub(*s.StartTime)
		if elapsed < 0 {
			return s.Duration
		}
		left := time.Duration(s.Duration)*time.Second - elapsed
		return int(left / time.Second)
	default:
		return 0
	}
}

var suffixedAmount = regexp.MustCompile(`^\d+\s*[hms]$`)

// AdjustDelta converts an adjust amount to seconds. Suffixed amounts
// ("5m", "30s", "1h") are absolute; a bare integer counts units; anything
// else counts as one unit.
func AdjustDelta(amount string, unit Unit) int {
	amount = strings.ToLower(strings.TrimSpace(amount))
	if suffixedAmount.MatchString(amount) {
		return format.ParseDuration(amount)
	}
	n, err := strconv.Atoi(amount)
	if err != nil {
		n = 1
	}
	return n * unit.Seconds()
}
