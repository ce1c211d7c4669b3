// Package player renders the now-playing status with a scrolling title
// and the default sink volume.
package player

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/logging"
	"github.com/polka-dots/polka/pkg/parse"
	"github.com/polka-dots/polka/pkg/payload"
	"github.com/polka-dots/polka/pkg/state"
)

// Config holds the player module settings
type Config struct {
	StateFile   string        `koanf:"state_file" toml:"state_file"`
	Exclude     []string      `koanf:"exclude" toml:"exclude"`
	Interval    time.Duration `koanf:"interval" toml:"interval"`
	Timeout     time.Duration `koanf:"timeout" toml:"timeout"`
	Speed       float64       `koanf:"speed" toml:"speed"`
	MinWidth    int           `koanf:"min_width" toml:"min_width"`
	MaxWidth    int           `koanf:"max_width" toml:"max_width"`
	WidthStep   int           `koanf:"width_step" toml:"width_step"`
	Separator   string        `koanf:"separator" toml:"separator"`
	VolumeIcons []string      `koanf:"volume_icons" toml:"volume_icons"`
}

// Scroll is the persisted marquee position for the current track
type Scroll struct {
	Track string    `json:"track"`
	Pos   float64   `json:"pos"`
	TS    time.Time `json:"ts"`
}

// Valid rejects negative positions
func (s Scroll) Valid() bool {
	return s.Pos >= 0
}

var percentPattern = regexp.MustCompile(`(\d+)%`)

// ParseVolume averages the first two percentages of a sink volume report
func ParseVolume(out string) int {
	var vols []int
	for _, m := range percentPattern.FindAllStringSubmatch(out, 2) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			vols = append(vols, n)
		}
	}
	if len(vols) == 0 {
		return 0
	}
	sum := 0
	for _, v := range vols {
		sum += v
	}
	return sum / len(vols)
}

// VolumeIcon picks one of four icons: muted, up to 33, up to 66, above
func VolumeIcon(icons []string, vol int) string {
	if len(icons) < 4 {
		return ""
	}
	switch {
	case vol <= 0:
		return icons[0]
	case vol <= 33:
		return icons[1]
	case vol <= 66:
		return icons[2]
	default:
		return icons[3]
	}
}

// Module is the now-playing status module
type Module struct {
	cfg     Config
	runner  execx.Runner
	store   *state.Store[Scroll]
	marquee Marquee
	now     func() time.Time
}

// New creates the module
func New(cfg Config, r execx.Runner, store *state.Store[Scroll]) *Module {
	return &Module{
		cfg:    cfg,
		runner: r,
		store:  store,
		marquee: Marquee{
			MinWidth:  cfg.MinWidth,
			MaxWidth:  cfg.MaxWidth,
			Step:      cfg.WidthStep,
			Separator: cfg.Separator,
			Speed:     cfg.Speed,
		},
		now: time.Now,
	}
}

// WithClock replaces the time source
func (m *Module) WithClock(now func() time.Time) *Module {
	m.now = now
	return m
}

func (m *Module) playerctl(ctx context.Context, args ...string) (string, bool) {
	return execx.Query(ctx, m.runner, m.cfg.Timeout, "playerctl", args...)
}

// ActivePlayer returns the first non-excluded player reporting Playing
func (m *Module) ActivePlayer(ctx context.Context) (string, bool) {
	out, ok := m.playerctl(ctx, "-l")
	if !ok {
		return "", false
	}
	for _, p := range parse.Lines(out) {
		if p == "No players found" || m.excluded(p) {
			continue
		}
		if status, ok := m.playerctl(ctx, "--player", p, "status"); ok && status == "Playing" {
			return p, true
		}
	}
	return "", false
}

func (m *Module) excluded(player string) bool {
	for _, e := range m.cfg.Exclude {
		if e == player {
			return true
		}
	}
	return false
}

// Track returns "artist – title", or just the title without an artist
func (m *Module) Track(ctx context.Context, player string) string {
	artist, _ := m.playerctl(ctx, "--player", player, "metadata", "xesam:artist")
	title, _ := m.playerctl(ctx, "--player", player, "metadata", "xesam:title")
	if artist != "" {
		return artist + " – " + title
	}
	return title
}

// Volume returns the default sink volume, 0 when unknown
func (m *Module) Volume(ctx context.Context) int {
	out, ok := execx.Query(ctx, m.runner, m.cfg.Timeout, "pactl", "get-sink-volume", "@DEFAULT_SINK@")
	if !ok {
		return 0
	}
	return ParseVolume(out)
}

// Render builds one payload, advancing the persisted scroll position
func (m *Module) Render(ctx context.Context) (payload.Payload, bool) {
	volume := m.Volume(ctx)
	icon := VolumeIcon(m.cfg.VolumeIcons, volume)

	player, ok := m.ActivePlayer(ctx)
	if !ok {
		return payload.Payload{
			Text:    icon,
			Tooltip: fmt.Sprintf("%d%%", volume),
			Class:   "stopped",
		}, true
	}

	track := m.Track(ctx, player)
	now := m.now()

	var display string
	_, err := m.store.Update(func(s *Scroll) error {
		if track != s.Track {
			display = m.marquee.Head(track)
			*s = Scroll{Track: track, Pos: 0, TS: now}
			return nil
		}
		elapsed := 0.0
		if !s.TS.IsZero() {
			elapsed = now.Sub(s.TS).Seconds()
		}
		s.Pos, display = m.marquee.Advance(track, s.Pos, elapsed)
		s.TS = now
		return nil
	})
	if err != nil {
		logger := logging.GetLogger("player")
		logger.Debug().Err(err).Msg("Scroll state not saved")
		if display == "" {
			display = m.marquee.Head(track)
		}
	}

	text := icon + "<span size='4pt'> </span><span size='9pt'>" + html.EscapeString(display) + "</span>"
	return payload.Payload{
		Text:    strings.TrimSpace(text),
		Tooltip: fmt.Sprintf("%d%%\n%s", volume, html.EscapeString(track)),
		Class:   "playing",
	}, true
}
