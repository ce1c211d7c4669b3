package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/polka-dots/polka/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.Exec.Timeout)
	assert.Equal(t, time.Second, cfg.Timer.Interval)
	assert.Equal(t, 15*time.Minute, cfg.Weather.CacheTTL)
	assert.Equal(t, 3, cfg.Weather.HourlyStep)
	assert.Equal(t, []string{"deluge-console", "info"}, cfg.Torrent.Command)
	assert.Equal(t, 30, cfg.Torrent.MaxName)
	assert.Len(t, cfg.Player.VolumeIcons, 4)
	assert.Equal(t, [][]string{{"hyprctl", "reload"}}, cfg.Link.PostHooks)
	assert.Len(t, cfg.Link.Individual, 3)
	assert.Equal(t, "~/.config/task", cfg.Link.Individual[1].Target)
	assert.Equal(t, []string{"04-15", "10-15"}, cfg.Tasks.Dated[0].Dates)
	assert.Equal(t, 14, cfg.Tasks.Recurring[0].Every)
	assert.Equal(t, "TLP_DEFAULT_MODE=BAT\nTLP_PERSISTENT_DEFAULT=1\n", cfg.Power.TLP.Battery.Content)
	assert.Equal(t, "hyprsunset.service", cfg.Sunset.Service)

	w, err := cfg.Proc.Find("steam")
	require.NoError(t, err)
	assert.Equal(t, "Steam is running", w.Tooltip)
}

func TestLoad_Layers(t *testing.T) {
	path := writeConfig(t, `
[weather]
latitude = 52.37
celsius = true

[timer]
interval = "2s"
`)
	t.Setenv("POLKA_WEATHER_CACHE_TTL", "1h")
	t.Setenv("POLKA_TIMER_ICONS__PAUSED", "P")
	t.Setenv("POLKA_PLAYER_EXCLUDE", "mpv,vlc")

	cfg, err := Load(Options{
		File:      path,
		Overrides: map[string]string{"timer.interval": "5s", "weather.longitude": "4.89"},
	})
	require.NoError(t, err)

	assert.Equal(t, 52.37, cfg.Weather.Latitude)
	assert.Equal(t, 4.89, cfg.Weather.Longitude)
	assert.True(t, cfg.Weather.Celsius)
	assert.Equal(t, time.Hour, cfg.Weather.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.Timer.Interval, "overrides win over the file")
	assert.Equal(t, "P", cfg.Timer.Icons.Paused)
	assert.Equal(t, []string{"mpv", "vlc"}, cfg.Player.Exclude)
	assert.Equal(t, 30, cfg.Torrent.MaxName, "untouched keys keep defaults")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(Options{File: filepath.Join(t.TempDir(), "absent.toml")})
	require.NoError(t, err)
	assert.Equal(t, "polka", cfg.Notify.App)
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, "[weather\nlatitude = ")
	_, err := Load(Options{File: path})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		want      string
	}{
		{"zero timeout", map[string]string{"exec.timeout": "0s"}, "exec.timeout"},
		{"latitude", map[string]string{"weather.latitude": "123"}, "weather.latitude"},
		{"hourly step", map[string]string{"weather.hourly_step": "0"}, "hourly_step"},
		{"widths", map[string]string{"player.min_width": "40"}, "player widths"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(Options{Overrides: tt.overrides})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"POLKA_WEATHER_LATITUDE", "weather.latitude"},
		{"POLKA_WEATHER_CACHE_TTL", "weather.cache_ttl"},
		{"POLKA_TIMER_ICONS__PAUSED", "timer.icons.paused"},
		{"POLKA_CACHE_DIR", ""},
		{"POLKA_DEBUG", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.in))
		})
	}
}

func TestGenerate(t *testing.T) {
	content, err := Generate(false)
	require.NoError(t, err)

	var back map[string]interface{}
	require.NoError(t, toml.Unmarshal([]byte(content), &back))
	assert.Contains(t, back, "weather")
	assert.Equal(t, "15m", back["weather"].(map[string]interface{})["cache_ttl"])

	// the generated file loads back to the same configuration
	path := writeConfig(t, content)
	fromFile, err := Load(Options{File: path})
	require.NoError(t, err)
	def, err := Default()
	require.NoError(t, err)
	assert.Equal(t, def, fromFile)
}

func TestGenerate_Commented(t *testing.T) {
	content, err := Generate(true)
	require.NoError(t, err)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "[["), "uncommented line %q", line)
	}

	// a commented file is a no-op on top of the defaults
	path := writeConfig(t, content)
	cfg, err := Load(Options{File: path})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Exec.Timeout)
}
