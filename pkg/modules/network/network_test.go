package network

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/filesystem"
	"github.com/polka-dots/polka/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const getNetworks = "                               Available networks\n" +
	"--------------------------------------------------------------------------------\n" +
	"      Network name                      Security            Signal\n" +
	"--------------------------------------------------------------------------------\n" +
	"\x1b[0m  \x1b[1;90m> \x1b[0m  Home Net                     psk                 ****\x1b[0m\n" +
	"      Cafe                              open                ***\x1b[1;90m*\x1b[0m\n" +
	"      Office                            8021x               **\x1b[1;90m**\x1b[0m\n" +
	"      Neighbour                         psk                 *\x1b[1;90m***\x1b[0m\n"

var icons = []string{"s1", "s2", "s3", "s4"}

func TestParseNetworks(t *testing.T) {
	nets := ParseNetworks(getNetworks)
	assert.Equal(t, []Network{
		{Name: "Home Net", Security: "psk", Strength: 4},
		{Name: "Office", Security: "8021x", Strength: 2},
		{Name: "Neighbour", Security: "psk", Strength: 1},
	}, nets)
}

func TestSignalIcon(t *testing.T) {
	assert.Equal(t, "s1", SignalIcon(icons, 0))
	assert.Equal(t, "s3", SignalIcon(icons, 3))
	assert.Equal(t, "s4", SignalIcon(icons, 9))
	assert.Equal(t, "", SignalIcon(nil, 2))
}

func TestActiveInterfaces(t *testing.T) {
	out := "interface: proton-nl\n  public key: abc\n\ninterface: home\n  listening port: 51820\n"
	assert.Equal(t, []string{"proton-nl", "home"}, ActiveInterfaces(out))
}

func TestFindStation(t *testing.T) {
	objs := managedObjects{
		"/net/connman/iwd/0": {"net.connman.iwd.Adapter": {}},
		"/net/connman/iwd/0/5": {
			iwdStation: {},
			iwdDevice:  {"Name": dbus.MakeVariant("wlan0")},
		},
	}
	st, err := findStation(objs)
	require.NoError(t, err)
	assert.Equal(t, Station{Path: "/net/connman/iwd/0/5", Name: "wlan0"}, st)

	_, err = findStation(managedObjects{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

type scriptedMenu struct {
	choices []string
	shown   [][]string
}

func (s *scriptedMenu) Choose(_ context.Context, options []string) (string, error) {
	s.shown = append(s.shown, options)
	if len(s.choices) == 0 || s.choices[0] == "" {
		return "", errors.New(errors.ErrCancelled, "menu dismissed")
	}
	c := s.choices[0]
	s.choices = s.choices[1:]
	return c, nil
}

type staticPrompt struct {
	password string
}

func (p staticPrompt) Password(context.Context, string) (string, error) {
	if p.password == "" {
		return "", errors.New(errors.ErrCancelled, "password entry cancelled")
	}
	return p.password, nil
}

type fakeWireless struct {
	scans int
}

func (f *fakeWireless) Station(context.Context) (Station, error) {
	return Station{Path: "/net/connman/iwd/0/5", Name: "wlan0"}, nil
}

func (f *fakeWireless) Scan(context.Context, Station) error {
	f.scans++
	return nil
}

type fixture struct {
	m        *Manager
	runner   *execx.Fake
	menu     *scriptedMenu
	wireless *fakeWireless
	notes    *notify.Recorder
	list     string
}

func newFixture(t *testing.T, password string, choices ...string) *fixture {
	t.Helper()
	f := &fixture{
		runner:   execx.NewFake(),
		menu:     &scriptedMenu{choices: choices},
		wireless: &fakeWireless{},
		notes:    &notify.Recorder{},
		list:     filepath.Join(t.TempDir(), "connections.list"),
	}
	cfg := Config{ScanWait: 3 * time.Second, ConnectionsList: f.list, SignalIcons: icons}
	f.m = New(cfg, f.runner, f.menu, staticPrompt{password}, f.wireless, filesystem.NewOS(), f.notes)
	f.m.sleep = func(context.Context, time.Duration) error { return nil }
	return f
}

func TestRun_CancelExitsQuietly(t *testing.T) {
	for _, choices := range [][]string{{ChoiceCancel}, {""}, {ChoiceWiFi, ""}} {
		f := newFixture(t, "", choices...)
		f.runner.On("iwctl station wlan0 get-networks", getNetworks)

		err := f.m.Run(context.Background())
		assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled), "choices %q", choices)
		assert.Equal(t, 0, errors.ExitCode(err))
	}
}

func TestWiFi_Connect(t *testing.T) {
	f := newFixture(t, "hunter2", ChoiceWiFi, "Home Net s4")
	f.runner.On("iwctl station wlan0 get-networks", getNetworks)
	f.runner.On("iwctl station wlan0 scan", "")
	f.runner.On("iwctl station wlan0 connect Home Net --passphrase hunter2", "")

	require.NoError(t, f.m.Run(context.Background()))
	assert.Equal(t, []string{"Scan", "Home Net s4", "Office s2", "Neighbour s1", "Back"}, f.menu.shown[1])
	assert.Equal(t, []string{"Connected to Home Net"}, f.notes.Bodies())
}

func TestWiFi_ScanThenBack(t *testing.T) {
	f := newFixture(t, "", ChoiceWiFi, "Scan", "Back", ChoiceCancel)
	f.runner.On("iwctl station wlan0 get-networks", getNetworks)

	err := f.m.Run(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
	assert.Equal(t, 1, f.wireless.scans)
	assert.Equal(t, []string{"Scanning 3s"}, f.notes.Bodies())
	assert.Len(t, f.menu.shown, 4)
}

func TestWiFi_PasswordCancelled(t *testing.T) {
	f := newFixture(t, "", ChoiceWiFi, "Office s2")
	f.runner.On("iwctl station wlan0 get-networks", getNetworks)

	err := f.m.Run(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
	assert.False(t, f.runner.Called("iwctl station wlan0 scan"))
}

func TestWiFi_ConnectFails(t *testing.T) {
	f := newFixture(t, "bad", ChoiceWiFi, "Office s2")
	f.runner.On("iwctl station wlan0 get-networks", getNetworks)
	f.runner.On("iwctl station wlan0 scan", "")
	f.runner.OnFail("iwctl station wlan0 connect Office --passphrase bad", 1)

	err := f.m.Run(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
}

func TestWiFi_NoBus(t *testing.T) {
	f := newFixture(t, "", ChoiceWiFi)
	f.m.wireless = nil

	err := f.m.Run(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnavailable))
}

func TestVPN_Switch(t *testing.T) {
	f := newFixture(t, "", ChoiceVPN, "proton-ch")
	require.NoError(t, os.WriteFile(f.list, []byte("proton-nl\nproton-ch\n"), 0644))
	f.runner.On("wg show", "interface: proton-nl\n  public key: abc\n")
	f.runner.On("wg-quick down proton-nl", "")
	f.runner.On("wg-quick up proton-ch", "")

	require.NoError(t, f.m.Run(context.Background()))
	assert.Equal(t, []string{"proton-nl", "proton-ch", "Back"}, f.menu.shown[1])
	assert.True(t, f.runner.Called("wg-quick down proton-nl"))
	assert.Equal(t, []string{"Connected to proton-ch"}, f.notes.Bodies())
}

func TestVPN_Sudo(t *testing.T) {
	f := newFixture(t, "", ChoiceVPN, "home")
	f.m.cfg.Sudo = []string{"sudo", "-A"}
	require.NoError(t, os.WriteFile(f.list, []byte("home\n"), 0644))
	f.runner.OnFail("wg show", 1)
	f.runner.On("sudo -A wg-quick up home", "")

	require.NoError(t, f.m.Run(context.Background()))
}

func TestVPN_MissingList(t *testing.T) {
	f := newFixture(t, "", ChoiceVPN)

	err := f.m.Run(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Equal(t, 1, errors.ExitCode(err))
}

func TestVPN_UpFails(t *testing.T) {
	f := newFixture(t, "", ChoiceVPN, "home")
	require.NoError(t, os.WriteFile(f.list, []byte("home\n"), 0644))
	f.runner.On("wg show", "")
	f.runner.OnFail("wg-quick up home", 1)

	err := f.m.Run(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
}

func TestFuzzel(t *testing.T) {
	r := execx.NewFake()
	r.On("fuzzel --dmenu --hide-prompt --width=7 --lines 3", "VPN\n")
	choice, err := Fuzzel{Runner: r}.Choose(context.Background(), []string{"WiFi", "VPN", "Cancel"})
	require.NoError(t, err)
	assert.Equal(t, "VPN", choice)
	assert.Equal(t, "WiFi\nVPN\nCancel", r.Calls[0].Stdin)

	r = execx.NewFake()
	r.OnFail("fuzzel --dmenu --hide-prompt --width=7 --lines 3", 2)
	_, err = Fuzzel{Runner: r}.Choose(context.Background(), []string{"WiFi", "VPN", "Cancel"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
}

func TestZenity(t *testing.T) {
	r := execx.NewFake()
	r.On("zenity --password --title=Enter password for Office", "secret\n")
	pw, err := Zenity{Runner: r}.Password(context.Background(), "Enter password for Office")
	require.NoError(t, err)
	assert.Equal(t, "secret", pw)
}
