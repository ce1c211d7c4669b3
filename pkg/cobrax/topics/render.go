package topics

import "github.com/charmbracelet/glamour"

// Renderer turns a topic's markdown into what gets printed
type Renderer func(markdown string) string

// Plain prints topics as written
func Plain(markdown string) string {
	return markdown
}

// Glamour renders markdown with a glamour style: "auto", "dark", "light",
// "notty" or the path of a style file. Text wraps at width when it is
// positive. A rendering failure prints the markdown unchanged.
func Glamour(style string, width int) Renderer {
	var opts []glamour.TermRendererOption
	switch style {
	case "", "auto":
		opts = append(opts, glamour.WithAutoStyle())
	case "dark", "light", "notty":
		opts = append(opts, glamour.WithStandardStyle(style))
	default:
		opts = append(opts, glamour.WithStylePath(style))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	return func(markdown string) string {
		r, err := glamour.NewTermRenderer(opts...)
		if err != nil {
			return markdown
		}
		out, err := r.Render(markdown)
		if err != nil {
			return markdown
		}
		return out
	}
}
