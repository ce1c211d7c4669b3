package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/polka-dots/polka/pkg/format"
	"github.com/polka-dots/polka/pkg/payload"
)

// Render builds the status payload for s at now
func Render(s State, now time.Time, icons Icons) payload.Payload {
	switch s.Phase(now) {
	case PhaseFinished:
		return payload.Payload{
			Text:    withIcon(icons.Finished, "DONE!"),
			Tooltip: "Timer finished!",
			Class:   "finished urgent",
			Alt:     "timer",
		}
	case PhasePaused:
		left := format.Clock(s.Remaining(now))
		return payload.Payload{
			Text:    withIcon(icons.Paused, left),
			Tooltip: fmt.Sprintf("Paused — %s left", left),
			Class:   string(PhasePaused),
			Alt:     "timer",
		}
	case PhaseRunning:
		left := format.Clock(s.Remaining(now))
		return payload.Payload{
			Text:    withIcon(icons.forUnit(s.CurrentUnit()), left),
			Tooltip: fmt.Sprintf("Running — %s remaining (%s)", left, s.CurrentUnit()),
			Class:   string(PhaseRunning),
			Alt:     "timer",
		}
	default:
		return payload.Empty()
	}
}

// StatusLine is the short textual report: "RUN 04:59", "PAUSE 02:00" or
// "None".
func StatusLine(s State, now time.Time) string {
	switch s.Phase(now) {
	case PhaseRunning, PhaseFinished:
		return "RUN " + format.Clock(s.Remaining(now))
	case PhasePaused:
		return "PAUSE " + format.Clock(s.Remaining(now))
	default:
		return "None"
	}
}

func withIcon(icon, text string) string {
	return strings.TrimSpace(icon + " " + text)
}
