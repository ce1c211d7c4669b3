package lipbalm

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/beevik/etree"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// StyleMap maps tag names to styles
type StyleMap map[string]lipgloss.Style

// noFormatTag content is only shown when colors are off
const noFormatTag = "no-format"

var (
	mu       sync.RWMutex
	renderer = lipgloss.DefaultRenderer()
)

// SetDefaultRenderer sets the renderer whose color profile decides
// whether styles are applied
func SetDefaultRenderer(r *lipgloss.Renderer) {
	mu.Lock()
	defer mu.Unlock()
	renderer = r
}

func colorEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return renderer.ColorProfile() != termenv.Ascii
}

// Render executes tmpl with data, then expands the style tags
func Render(tmpl string, data interface{}, styles StyleMap) (string, error) {
	out, err := execute(tmpl, data)
	if err != nil {
		return "", err
	}
	return ExpandTags(out, styles)
}

// RenderPlain executes tmpl with data and strips every tag, keeping the
// <no-format> content
func RenderPlain(tmpl string, data interface{}) (string, error) {
	out, err := execute(tmpl, data)
	if err != nil {
		return "", err
	}
	return StripTags(out), nil
}

func execute(tmpl string, data interface{}) (string, error) {
	t, err := template.New("lipbalm").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// ExpandTags replaces style tags with styled text. Input that is not
// well-formed markup is returned unchanged.
func ExpandTags(input string, styles StyleMap) (string, error) {
	root, ok := parse(input)
	if !ok {
		return input, nil
	}
	return expand(root, styles, colorEnabled()), nil
}

// StripTags removes all tags, keeping their text
func StripTags(input string) string {
	root, ok := parse(input)
	if !ok {
		return input
	}
	return text(root)
}

func parse(input string) (*etree.Element, bool) {
	if input == "" || !strings.Contains(input, "<") {
		return nil, false
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString("<lipbalm>" + input + "</lipbalm>"); err != nil {
		return nil, false
	}
	return doc.Root(), doc.Root() != nil
}

func expand(el *etree.Element, styles StyleMap, color bool) string {
	var sb strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			if t.Tag == noFormatTag {
				if !color {
					sb.WriteString(text(t))
				}
				continue
			}
			inner := expand(t, styles, color)
			if style, ok := styles[t.Tag]; ok && color {
				inner = style.Render(inner)
			}
			sb.WriteString(inner)
		}
	}
	return sb.String()
}

func text(el *etree.Element) string {
	var sb strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			sb.WriteString(text(t))
		}
	}
	return sb.String()
}
