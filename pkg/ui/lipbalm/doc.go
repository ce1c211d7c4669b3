/*
Package lipbalm is a small template engine for styled terminal output.

Go templates are executed first, then XML-like tags are expanded into
lipgloss styles looked up by tag name:

	styles := lipbalm.StyleMap{"Linked": lipgloss.NewStyle().Bold(true)}
	out, err := lipbalm.Render(`<Linked>{{.Target | html}}</Linked>`, entry, styles)

Unknown tags keep their text. Content inside <no-format> is only shown when
the terminal has no color support, so plain output can carry markers the
styled output conveys through color. StripTags removes all tags for plain
text. Input that is not well-formed markup is passed through unchanged;
template values should go through the html function so paths with & or <
stay well-formed.
*/
package lipbalm
