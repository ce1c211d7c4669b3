package player

import "math"

// Marquee scrolls text that is wider than its window
type Marquee struct {
	MinWidth  int
	MaxWidth  int
	Step      int
	Separator string
	Speed     float64
}

// Window returns the display width for a text of n runes: n clamped to
// [MinWidth, MaxWidth], rounded down to a multiple of Step, never below
// MinWidth.
func (m Marquee) Window(n int) int {
	w := n
	if w < m.MinWidth {
		w = m.MinWidth
	}
	if w > m.MaxWidth {
		w = m.MaxWidth
	}
	if m.Step > 0 {
		w = (w / m.Step) * m.Step
	}
	if w < m.MinWidth {
		w = m.MinWidth
	}
	return w
}

// Head returns the first window of text, used when a new track starts
func (m Marquee) Head(text string) string {
	runes := []rune(text)
	w := m.Window(len(runes))
	if len(runes) <= w {
		return text
	}
	return string(runes[:w])
}

// Advance moves the scroll position by elapsed seconds and returns the new
// position with the visible slice. Text that fits its window does not
// scroll and resets the position to 0.
func (m Marquee) Advance(text string, pos, elapsed float64) (float64, string) {
	runes := []rune(text)
	w := m.Window(len(runes))
	if len(runes) <= w {
		return 0, text
	}

	cycle := append(runes, []rune(m.Separator)...)
	n := float64(len(cycle))
	if elapsed < 0 {
		elapsed = 0
	}
	pos = math.Mod(pos+elapsed*m.Speed, n)
	if pos < 0 {
		pos += n
	}

	start := int(pos)
	looped := append(append([]rune{}, cycle...), cycle...)
	return pos, string(looped[start : start+w])
}
