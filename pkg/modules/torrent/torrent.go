// Package torrent reports the torrent daemon's download activity
package torrent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/format"
	"github.com/polka-dots/polka/pkg/parse"
	"github.com/polka-dots/polka/pkg/payload"
	"github.com/polka-dots/polka/pkg/procscan"
)

// Category of the daemon's activity
type Category string

const (
	Downloading Category = "downloading"
	Seeding     Category = "seeding"
	Idle        Category = "idle"
)

// Config holds the torrent module settings
type Config struct {
	Process     string        `koanf:"process" toml:"process"`
	Command     []string      `koanf:"command" toml:"command"`
	Timeout     time.Duration `koanf:"timeout" toml:"timeout"`
	MaxName     int           `koanf:"max_name" toml:"max_name"`
	Icon        string        `koanf:"icon" toml:"icon"`
	SeedMarker  string        `koanf:"seed_marker" toml:"seed_marker"`
	Interval    time.Duration `koanf:"interval" toml:"interval"`
	IdleTooltip string        `koanf:"idle_tooltip" toml:"idle_tooltip"`
}

// Download is one torrent with a known ETA
type Download struct {
	Name string
	ETA  string
}

// Parse extracts downloads from console listing output. Header lines look
// like "[State] name <40-hex id>" and are followed by a line holding
// "ETA:". Entries without an ETA, or with "-", are dropped.
func Parse(output string, maxName int) []Download {
	var (
		downloads []Download
		name      string
		haveName  bool
	)
	for _, line := range strings.Split(parse.StripANSI(output), "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "["):
			_, rest, ok := strings.Cut(line, "]")
			if !ok {
				haveName = false
				continue
			}
			name = format.Truncate(parse.TrimHexID(strings.TrimSpace(rest)), maxName, format.Ellipsis)
			haveName = true
		case haveName && strings.Contains(line, "ETA:"):
			eta, _ := parse.After(line, "ETA:")
			if eta != "-" && eta != "" {
				downloads = append(downloads, Download{Name: name, ETA: eta})
			}
			haveName = false
		}
	}
	return downloads
}

// Classify picks the category for a listing
func Classify(output string, downloads []Download, seedMarker string) Category {
	if len(downloads) > 0 {
		return Downloading
	}
	if seedMarker != "" && strings.Contains(output, seedMarker) {
		return Seeding
	}
	return Idle
}

// Format renders the payload for a listing
func Format(output string, cfg Config) payload.Payload {
	downloads := Parse(output, cfg.MaxName)
	category := Classify(output, downloads, cfg.SeedMarker)

	p := payload.Payload{Text: cfg.Icon, Class: string(category)}
	if category != Downloading {
		p.Tooltip = cfg.IdleTooltip
		return p
	}

	lines := make([]string, 0, len(downloads))
	for _, d := range downloads {
		lines = append(lines, fmt.Sprintf("%s\nETA: %s", d.Name, d.ETA))
	}
	p.Tooltip = strings.Join(lines, "\n")
	return p
}

// Module is the torrent status module
type Module struct {
	cfg     Config
	runner  execx.Runner
	scanner procscan.Scanner
}

// New creates the module
func New(cfg Config, r execx.Runner, s procscan.Scanner) *Module {
	if cfg.MaxName <= 0 {
		cfg.MaxName = 30
	}
	if len(cfg.Command) == 0 {
		cfg.Command = []string{"deluge-console", "info"}
	}
	return &Module{cfg: cfg, runner: r, scanner: s}
}

// Render queries the daemon. When it is not running, or the console
// fails, the module is blanked.
func (m *Module) Render(ctx context.Context) (payload.Payload, bool) {
	if !m.scanner.Running(ctx, m.cfg.Process) {
		return payload.Empty(), true
	}

	res := m.runner.Run(ctx, execx.Command{
		Name:    m.cfg.Command[0],
		Args:    m.cfg.Command[1:],
		Timeout: m.cfg.Timeout,
		Env:     []string{"PYTHONWARNINGS=ignore"},
	})
	if res.Err != nil {
		return payload.Empty(), true
	}
	return Format(res.Stdout, m.cfg), true
}
