package lipbalm_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/polka-dots/polka/pkg/ui/lipbalm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Action string
	Target string
}

func colorRenderer(t *testing.T, profile termenv.Profile) *lipgloss.Renderer {
	t.Helper()
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(profile)
	lipbalm.SetDefaultRenderer(r)
	t.Cleanup(func() { lipbalm.SetDefaultRenderer(lipgloss.DefaultRenderer()) })
	return r
}

func TestRender_Styled(t *testing.T) {
	r := colorRenderer(t, termenv.TrueColor)
	styles := lipbalm.StyleMap{
		"Linked":  r.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		"Skipped": r.NewStyle().Faint(true),
	}

	out, err := lipbalm.Render(`<Linked>{{.Action}}</Linked> {{.Target}}`, entry{"linked", "~/.zshrc"}, styles)
	require.NoError(t, err)
	assert.Equal(t, styles["Linked"].Render("linked")+" ~/.zshrc", out)

	out, err = lipbalm.Render(`<Missing>{{.Action}}</Missing>`, entry{Action: "pruned"}, styles)
	require.NoError(t, err)
	assert.Equal(t, "pruned", out, "unknown tags keep their text")
}

func TestRender_NoFormat(t *testing.T) {
	tmpl := `<Linked>ok</Linked><no-format> [linked]</no-format>`
	styles := lipbalm.StyleMap{"Linked": lipgloss.NewStyle().Bold(true)}

	colorRenderer(t, termenv.TrueColor)
	out, err := lipbalm.Render(tmpl, nil, styles)
	require.NoError(t, err)
	assert.NotContains(t, out, "[linked]")

	colorRenderer(t, termenv.Ascii)
	out, err = lipbalm.Render(tmpl, nil, styles)
	require.NoError(t, err)
	assert.Equal(t, "ok [linked]", out)
}

func TestRender_Nested(t *testing.T) {
	r := colorRenderer(t, termenv.TrueColor)
	styles := lipbalm.StyleMap{
		"row":  r.NewStyle().Bold(true),
		"path": r.NewStyle().Underline(true),
	}

	out, err := lipbalm.Render(`<row>into <path>/home</path></row>`, nil, styles)
	require.NoError(t, err)
	assert.Equal(t, styles["row"].Render("into "+styles["path"].Render("/home")), out)
}

func TestRender_Errors(t *testing.T) {
	_, err := lipbalm.Render(`<Linked>{{.Target</Linked>`, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse template")

	_, err = lipbalm.Render(`{{.Missing}}`, entry{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute template")
}

func TestRenderPlain(t *testing.T) {
	out, err := lipbalm.RenderPlain(`<Linked>{{.Action}}</Linked> {{.Target | html}}<no-format>!</no-format>`,
		entry{"linked", "~/Rock & Roll"})
	require.NoError(t, err)
	assert.Equal(t, "linked ~/Rock & Roll!", out)
}

func TestExpandTags_MalformedPassesThrough(t *testing.T) {
	colorRenderer(t, termenv.TrueColor)
	for _, in := range []string{"", "no tags here", "1 < 2", "<open>never closed"} {
		out, err := lipbalm.ExpandTags(in, lipbalm.StyleMap{})
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "a b c", lipbalm.StripTags("<x>a</x> <y>b <z>c</z></y>"))
	assert.Equal(t, "a < b", lipbalm.StripTags("a < b"))
	assert.Equal(t, "a & b", lipbalm.StripTags("<x>a &amp; b</x>"))
}
