package ui

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/polka-dots/polka/pkg/errors"
)

// Format selects how a chore report is written
type Format string

const (
	FormatAuto     Format = "auto"
	FormatTerminal Format = "terminal"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

var formatAliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
}

// FormatNames lists the accepted --format values, for shell completion
func FormatNames() []string {
	names := make([]string, 0, len(formatAliases))
	for name := range formatAliases {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ParseFormat accepts a format name or one of its aliases, ignoring case
func ParseFormat(s string) (Format, error) {
	f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format %q", s).
			WithDetail("valid", strings.Join(FormatNames(), ", "))
	}
	return f, nil
}

// Resolve turns FormatAuto into a concrete format for w. Anything that is
// not a color-capable terminal gets plain text.
func (f Format) Resolve(w io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	file, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(file).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
