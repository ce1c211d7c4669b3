package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/notify"
	"github.com/polka-dots/polka/pkg/procscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	app      *app
	dir      string
	fake     *execx.Fake
	notes    *notify.Recorder
	launched *execx.Launched
}

func newHarness(t *testing.T, running ...string) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("POLKA_CACHE_DIR", filepath.Join(dir, "cache"))
	t.Setenv("POLKA_CONFIG_DIR", filepath.Join(dir, "config"))
	t.Setenv("POLKA_STATE_DIR", filepath.Join(dir, "state"))

	h := &harness{
		dir:      dir,
		fake:     execx.NewFake(),
		notes:    &notify.Recorder{},
		launched: &execx.Launched{},
	}
	h.app = &app{
		runner:   h.fake,
		notifier: h.notes,
		launcher: h.launched,
		scanner:  procscan.Static(running),
	}
	return h
}

// run executes one command line against a fresh root sharing the harness
// collaborators
func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := &app{
		runner:   h.app.runner,
		notifier: h.app.notifier,
		launcher: h.app.launcher,
		scanner:  h.app.scanner,
	}
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "polka version dev")
	assert.Contains(t, out, "commit: unknown")
}

func TestNoCommandIsAnError(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t)
	require.Error(t, err)
	assert.Equal(t, 1, errors.ExitCode(err))
}

func TestGenConfigCmd(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "[weather]")
	assert.Contains(t, out, "hourly_step = 3")

	out, err = h.run(t, "genconfig", "--commented")
	require.NoError(t, err)
	assert.Contains(t, out, "# hourly_step = 3")

	out, err = h.run(t, "--set", "weather.hourly_step=6", "genconfig", "--effective")
	require.NoError(t, err)
	var merged map[string]interface{}
	require.NoError(t, toml.Unmarshal([]byte(out), &merged))
	weather, ok := merged["weather"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "6", fmt.Sprint(weather["hourly_step"]))
}

func TestSetFlagNeedsKeyValue(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "--set", "weather.celsius", "version")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestUserConfigFileIsLoaded(t *testing.T) {
	h := newHarness(t)
	cfgDir := filepath.Join(h.dir, "config")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte("[weather]\nhourly_step = 0\n"), 0644))

	_, err := h.run(t, "version")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestTimerLifecycle(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "timer", "status")
	require.NoError(t, err)
	assert.Equal(t, "None\n", out)

	_, err = h.run(t, "timer", "start", "5m")
	require.NoError(t, err)

	out, err = h.run(t, "timer", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "RUN 0")

	_, err = h.run(t, "timer", "pause")
	require.NoError(t, err)

	out, err = h.run(t, "timer", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "PAUSE 0")

	// pausing twice only notifies
	_, err = h.run(t, "timer", "pause")
	require.NoError(t, err)
	assert.Contains(t, h.notes.Bodies(), "Not running")

	_, err = h.run(t, "timer", "toggle")
	require.NoError(t, err)
	out, err = h.run(t, "timer", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "RUN 0")

	_, err = h.run(t, "timer", "stop")
	require.NoError(t, err)
	out, err = h.run(t, "timer", "status")
	require.NoError(t, err)
	assert.Equal(t, "None\n", out)
}

func TestTimerWithoutTimer(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "timer", "toggle")
	assert.NoError(t, err)

	_, err = h.run(t, "timer", "up")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoTimer))

	_, err = h.run(t, "timer", "start", "nonsense")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestTimerUnit(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "timer", "unit")
	require.NoError(t, err)
	assert.Equal(t, "hours\n", out)

	out, err = h.run(t, "timer", "unit", "s")
	require.NoError(t, err)
	assert.Equal(t, "seconds\n", out)
}

func TestTimerPrompt(t *testing.T) {
	h := newHarness(t)
	h.fake.On("zenity --entry --width=450 --title Timer --text "+MsgTimerPromptText, "10m\n")

	_, err := h.run(t, "timer", "prompt")
	require.NoError(t, err)

	out, err := h.run(t, "timer", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "RUN 0")
}

func TestTimerPromptDismissed(t *testing.T) {
	h := newHarness(t)
	h.fake.OnFail("zenity --entry --width=450 --title Timer --text "+MsgTimerPromptText, 1)

	_, err := h.run(t, "timer", "prompt")
	require.Error(t, err)
	assert.Equal(t, 0, errors.ExitCode(err))
}

func TestStatusProc(t *testing.T) {
	h := newHarness(t, "steam")

	out, err := h.run(t, "status", "proc", "steam")
	require.NoError(t, err)
	assert.Contains(t, out, `"tooltip":"Steam is running"`)

	out, err = h.run(t, "status", "proc", "telegram")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = h.run(t, "status", "proc", "discord")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestStatusTorrentIdle(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "status", "torrent")
	require.NoError(t, err)
	assert.Equal(t, "{\"text\":\"\"}\n", out)
}

func TestStatusWatchStopsOnCancel(t *testing.T) {
	h := newHarness(t, "steam")
	root := newRootCmd(&app{runner: h.fake, notifier: h.notes, launcher: h.launched, scanner: procscan.Static{"steam"}})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"status", "proc", "steam", "--watch"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, root.ExecuteContext(ctx))
}

func TestFoldersCmds(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "folders", "up")
	require.NoError(t, err)

	out, err := h.run(t, "status", "folders")
	require.NoError(t, err)
	assert.Contains(t, out, "Polka</span>")
	assert.Contains(t, out, `"class":"visible"`)

	_, err = h.run(t, "folders", "exec")
	require.NoError(t, err)
	require.Len(t, h.launched.Commands, 1)
	assert.Equal(t, "xdg-open", h.launched.Commands[0].Name)

	_, err = h.run(t, "folders", "toggle")
	require.NoError(t, err)
	out, err = h.run(t, "status", "folders")
	require.NoError(t, err)
	assert.Contains(t, out, `"class":"hidden"`)
}

func TestLinkCmd(t *testing.T) {
	h := newHarness(t)
	src := filepath.Join(h.dir, "Polka")
	home := filepath.Join(h.dir, "home")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.MkdirAll(home, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "zshrc"), []byte("export X=1\n"), 0644))

	sets := []string{"--set", "link.source_root=" + src, "--set", "link.target_root=" + home}

	out, err := h.run(t, append(sets, "link", "--dry-run", "--format", "text")...)
	require.NoError(t, err)
	assert.Contains(t, out, "dry run")
	assert.Contains(t, out, "Linked 1")
	_, err = os.Lstat(filepath.Join(home, ".zshrc"))
	assert.True(t, os.IsNotExist(err))

	out, err = h.run(t, append(sets, "link", "--format", "text")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Linked 1")
	target, err := os.Readlink(filepath.Join(home, ".zshrc"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("..", "Polka", "zshrc"), target)

	out, err = h.run(t, append(sets, "link", "--format", "text")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Linked 0")
}

func TestLinkCmdMissingSourceRoot(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "--set", "link.source_root="+filepath.Join(h.dir, "nope"), "link")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestPowerTLPRejectsUnknownMode(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "power", "tlp", "turbo")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestHelpTopics(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "waybar")
	assert.Contains(t, out, "state")
	assert.Contains(t, out, "config")

	out, err = h.run(t, "help", "timer")
	require.NoError(t, err)
	assert.Contains(t, out, "countdown")
}

func TestParseSets(t *testing.T) {
	got, err := parseSets([]string{"a.b=1", "c.d=x=y", "e.f="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.b": "1", "c.d": "x=y", "e.f": ""}, got)

	got, err = parseSets(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseSets([]string{"=1"})
	assert.Error(t, err)
}

func TestManCmd(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "man")
	require.NoError(t, err)
	assert.Contains(t, out, ".TH \"POLKA\"")

	dir := filepath.Join(h.dir, "man")
	require.NoError(t, os.MkdirAll(dir, 0755))
	_, err = h.run(t, "man", dir)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "polka-timer-start.1"))
	assert.NoError(t, err)
}

func TestUsageFuncs(t *testing.T) {
	plain := usageFuncs(false)
	assert.Equal(t, "FLAGS", plain["heading"].(func(string) string)("Flags"))
	assert.Equal(t, "Status", plain["bold"].(func(string) string)("Status"))
}
