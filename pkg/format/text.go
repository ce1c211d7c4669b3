package format

// Ellipsis is the default truncation marker
const Ellipsis = "…"

// Truncate shortens s to at most max runes. When s is longer, the result
// is exactly max runes long and ends with marker. Cuts happen on rune
// boundaries, so multi-byte glyphs are never split.
func Truncate(s string, max int, marker string) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	m := []rune(marker)
	if len(m) >= max {
		return string(m[:max])
	}
	return string(runes[:max-len(m)]) + marker
}

// RuneLen returns the number of runes in s
func RuneLen(s string) int {
	return len([]rune(s))
}
