// pkg/modules/player/player_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: execx.Fake, real state file (t.TempDir), injected clock
// PURPOSE: Test marquee windowing, scroll persistence and volume rendering

package player

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/filesystem"
	"github.com/polka-dots/polka/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var marquee = Marquee{MinWidth: 6, MaxWidth: 12, Step: 4, Separator: "  ", Speed: 1}

func TestMarquee_Window(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 6}, {3, 6}, {6, 6}, {7, 6}, {8, 8}, {11, 8}, {12, 12}, {40, 12},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, marquee.Window(tt.n), "n=%d", tt.n)
	}
}

func TestMarquee_Advance(t *testing.T) {
	text := "Artist – A Long Title"

	pos, window := marquee.Advance(text, 0, 0)
	assert.Equal(t, 0.0, pos)
	assert.Equal(t, "Artist – A L", window)

	pos, window = marquee.Advance(text, pos, 3)
	assert.Equal(t, 3.0, pos)
	assert.Equal(t, "ist – A Long", window)

	// the cycle is text + separator: 21 + 2 runes
	pos, window = marquee.Advance(text, 20, 2)
	assert.Equal(t, 22.0, pos)
	assert.Equal(t, " Artist – A ", window)

	pos, _ = marquee.Advance(text, 22, 2)
	assert.Equal(t, 1.0, pos, "position wraps around the cycle")
}

func TestMarquee_ShortTextDoesNotScroll(t *testing.T) {
	pos, window := marquee.Advance("Short", 4, 10)
	assert.Equal(t, 0.0, pos)
	assert.Equal(t, "Short", window)
	assert.Equal(t, "Short", marquee.Head("Short"))
}

func TestParseVolume(t *testing.T) {
	out := "Volume: front-left: 32768 /  50% / -18.06 dB,   front-right: 19661 /  30% / -31.37 dB\n        balance 0.00"
	assert.Equal(t, 40, ParseVolume(out))
	assert.Equal(t, 0, ParseVolume("garbage"))
}

func TestVolumeIcon(t *testing.T) {
	icons := []string{"mute", "low", "mid", "high"}
	assert.Equal(t, "mute", VolumeIcon(icons, 0))
	assert.Equal(t, "low", VolumeIcon(icons, 33))
	assert.Equal(t, "mid", VolumeIcon(icons, 34))
	assert.Equal(t, "mid", VolumeIcon(icons, 66))
	assert.Equal(t, "high", VolumeIcon(icons, 100))
	assert.Equal(t, "", VolumeIcon(nil, 50))
}

func newModule(t *testing.T, fake *execx.Fake) (*Module, *time.Time) {
	t.Helper()
	cfg := Config{
		Exclude:     []string{"JBL_Go_4"},
		Speed:       1,
		MinWidth:    6,
		MaxWidth:    12,
		WidthStep:   4,
		Separator:   "  ",
		VolumeIcons: []string{"M", "L", "D", "H"},
	}
	store := state.New[Scroll](filesystem.NewOS(), filepath.Join(t.TempDir(), "scroll.json"), nil)
	now := time.Date(2026, 10, 3, 20, 0, 0, 0, time.UTC)
	m := New(cfg, fake, store).WithClock(func() time.Time { return now })
	return m, &now
}

func TestModule_RenderStopped(t *testing.T) {
	fake := execx.NewFake().
		On("pactl get-sink-volume @DEFAULT_SINK@", "Volume: front-left: 0 / 70% / 0 dB, front-right: 0 / 70% / 0 dB").
		On("playerctl -l", "No players found")
	m, _ := newModule(t, fake)

	p, ok := m.Render(context.Background())
	require.True(t, ok)
	assert.Equal(t, "H", p.Text)
	assert.Equal(t, "70%", p.Tooltip)
	assert.Equal(t, "stopped", p.Class)
}

func TestModule_RenderScrolls(t *testing.T) {
	fake := execx.NewFake().
		On("pactl get-sink-volume @DEFAULT_SINK@", "front-left: 20% front-right: 20%").
		On("playerctl -l", "JBL_Go_4\nspotify").
		On("playerctl --player JBL_Go_4 status", "Playing").
		On("playerctl --player spotify status", "Playing").
		On("playerctl --player spotify metadata xesam:artist", "Tom & Jerry").
		On("playerctl --player spotify metadata xesam:title", "<Theme> Song Extended")
	m, now := newModule(t, fake)
	ctx := context.Background()

	p, ok := m.Render(ctx)
	require.True(t, ok)
	assert.Equal(t, "playing", p.Class)
	assert.Equal(t, "L<span size='4pt'> </span><span size='9pt'>Tom &amp; Jerry </span>", p.Text)
	assert.Equal(t, "20%\nTom &amp; Jerry – &lt;Theme&gt; Song Extended", p.Tooltip)

	*now = now.Add(2 * time.Second)
	p, _ = m.Render(ctx)
	assert.Contains(t, p.Text, ">m &amp; Jerry – <")

	saved := m.store.Load()
	assert.Equal(t, 2.0, saved.Pos)
	assert.Equal(t, "Tom & Jerry – <Theme> Song Extended", saved.Track)

	for _, c := range fake.Calls {
		assert.NotEqual(t, "playerctl --player JBL_Go_4 status", c.String(), "excluded players are not queried")
	}
}
