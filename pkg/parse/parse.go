// Package parse holds the noise-stripping helpers shared by the
// line-oriented adapters that read external tool output.
package parse

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

var trailingHexID = regexp.MustCompile(`\s+[a-fA-F0-9]{40}$`)

// StripANSI removes terminal escape sequences
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// TrimHexID drops a trailing 40 character hex identifier (torrent info
// hashes, git object ids) and the whitespace before it.
func TrimHexID(s string) string {
	return trailingHexID.ReplaceAllString(s, "")
}

// Lines splits s into trimmed, non-empty lines
func Lines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Fields splits an ANSI-cleaned line into whitespace separated columns
func Fields(s string) []string {
	return strings.Fields(StripANSI(s))
}

// After returns the trimmed text following the first occurrence of marker,
// and whether the marker was present.
func After(line, marker string) (string, bool) {
	_, rest, ok := strings.Cut(line, marker)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
