package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	unitPattern  = regexp.MustCompile(`(\d+)\s*([hms])`)
	clockPattern = regexp.MustCompile(`[:\s]+`)
)

var unitSeconds = map[string]int{"h": 3600, "m": 60, "s": 1}

// Clock renders seconds as H:MM:SS, or MM:SS when there is no hour part.
// Negative input renders as 00:00.
func Clock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// ParseDuration reads a human duration and returns whole seconds.
//
// Accepted forms: unit suffixes ("1h30m", "25m", "45s"), a bare number of
// minutes ("90"), "MM:SS" and "HH:MM:SS". Anything unreadable is 0.
func ParseDuration(text string) int {
	text = strings.ToLower(strings.TrimSpace(text))

	total := 0
	for _, m := range unitPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		total += n * unitSeconds[m[2]]
	}
	if total > 0 {
		return total
	}

	var parts []int
	for _, p := range clockPattern.Split(text, -1) {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			continue
		}
		parts = append(parts, n)
	}
	switch len(parts) {
	case 1:
		total = parts[0] * 60
	case 2:
		total = parts[0]*60 + parts[1]
	case 3:
		total = parts[0]*3600 + parts[1]*60 + parts[2]
	}
	if total < 0 {
		return 0
	}
	return total
}
