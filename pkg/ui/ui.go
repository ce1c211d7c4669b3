// Package ui renders the human-facing output of polka's chore commands.
// Status modules never come through here: their stdout is the bar payload.
package ui

import (
	"encoding/json"
	"io"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/linker"
	"github.com/polka-dots/polka/pkg/ui/lipbalm"
	"github.com/polka-dots/polka/pkg/ui/styles"
)

// LinkView selects what a link report shows
type LinkView struct {
	DryRun bool
	// Verbose includes skipped entries, which are otherwise only counted
	Verbose bool
}

const linkTemplate = `{{if .DryRun}}<DryRun>dry run: nothing was changed</DryRun>
{{end}}{{range .Entries}}<{{.Style}}>{{.Action}}</{{.Style}}><no-format> </no-format><Path>{{.Target | html}}</Path> <Muted>-> {{.Source | html}}</Muted>
{{end}}<Summary>Linked {{.Linked}}, skipped {{.Skipped}}{{if .Pruned}}, pruned {{.Pruned}}{{end}}</Summary>
`

type linkEntry struct {
	Source string        `json:"source"`
	Target string        `json:"target"`
	Action linker.Action `json:"action"`
	Style  string        `json:"-"`
}

type linkReport struct {
	DryRun  bool        `json:"dry_run"`
	Linked  int         `json:"linked"`
	Skipped int         `json:"skipped"`
	Pruned  int         `json:"pruned"`
	Entries []linkEntry `json:"entries"`
}

func newLinkReport(res *linker.Result, view LinkView, all bool) linkReport {
	r := linkReport{DryRun: view.DryRun, Linked: res.Linked, Skipped: res.Skipped, Pruned: res.Pruned, Entries: []linkEntry{}}
	for _, e := range res.Entries {
		if e.Action == linker.ActionSkipped && !view.Verbose && !all {
			continue
		}
		r.Entries = append(r.Entries, linkEntry{
			Source: e.Source,
			Target: e.Target,
			Action: e.Action,
			Style:  actionStyle(e.Action),
		})
	}
	return r
}

func actionStyle(a linker.Action) string {
	switch a {
	case linker.ActionLinked:
		return "Linked"
	case linker.ActionMissing, linker.ActionPruned:
		return "Missing"
	default:
		return "Skipped"
	}
}

// RenderLink writes a link run report in the given format
func RenderLink(w io.Writer, format Format, res *linker.Result, view LinkView) error {
	var out string
	switch format.Resolve(w) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newLinkReport(res, view, true)); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode link report")
		}
		return nil
	case FormatTerminal:
		rendered, err := lipbalm.Render(linkTemplate, newLinkReport(res, view, false), styles.Default())
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to render link report")
		}
		out = rendered
	case FormatText:
		rendered, err := lipbalm.RenderPlain(linkTemplate, newLinkReport(res, view, false))
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to render link report")
		}
		out = rendered
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}

	if _, err := io.WriteString(w, out); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to write link report")
	}
	return nil
}
