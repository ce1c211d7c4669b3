// Package network is the interactive WiFi and WireGuard menu
package network

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/filesystem"
	"github.com/polka-dots/polka/pkg/logging"
	"github.com/polka-dots/polka/pkg/notify"
)

// Main menu entries
const (
	ChoiceWiFi   = "WiFi"
	ChoiceVPN    = "VPN"
	ChoiceCancel = "Cancel"

	choiceScan = "Scan"
	choiceBack = "Back"
)

const interactiveTimeout = 10 * time.Minute

// errBack returns from a submenu to the main menu
var errBack = stderrors.New("back")

// Config holds the network menu settings
type Config struct {
	Menu            string        `koanf:"menu" toml:"menu"`
	MenuConfig      string        `koanf:"menu_config" toml:"menu_config"`
	Device          string        `koanf:"device" toml:"device"`
	ScanWait        time.Duration `koanf:"scan_wait" toml:"scan_wait"`
	Timeout         time.Duration `koanf:"timeout" toml:"timeout"`
	ConnectionsList string        `koanf:"connections_list" toml:"connections_list"`
	// Sudo prefixes the wg-quick invocations, e.g. ["sudo", "-A"]
	Sudo        []string `koanf:"sudo" toml:"sudo"`
	SignalIcons []string `koanf:"signal_icons" toml:"signal_icons"`
}

// Manager runs the menu
type Manager struct {
	cfg      Config
	runner   execx.Runner
	menu     Menu
	prompt   Prompt
	wireless Wireless
	fs       filesystem.FS
	notifier notify.Notifier
	sleep    func(ctx context.Context, d time.Duration) error
}

// New creates a Manager. wireless may be nil when the system bus is
// unavailable; the WiFi entry then fails with ErrUnavailable.
func New(cfg Config, r execx.Runner, menu Menu, prompt Prompt, w Wireless, fsys filesystem.FS, n notify.Notifier) *Manager {
	return &Manager{
		cfg:      cfg,
		runner:   r,
		menu:     menu,
		prompt:   prompt,
		wireless: w,
		fs:       fsys,
		notifier: n,
		sleep:    sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run shows the main menu until an action completes or the user cancels.
// Cancelling any prompt returns an ErrCancelled error.
func (m *Manager) Run(ctx context.Context) error {
	for {
		choice, err := m.menu.Choose(ctx, []string{ChoiceWiFi, ChoiceVPN, ChoiceCancel})
		if err != nil {
			return err
		}

		switch choice {
		case ChoiceWiFi:
			err = m.WiFi(ctx)
		case ChoiceVPN:
			err = m.VPN(ctx)
		case ChoiceCancel:
			return errors.New(errors.ErrCancelled, "menu cancelled")
		default:
			continue
		}
		if stderrors.Is(err, errBack) {
			continue
		}
		return err
	}
}

func (m *Manager) run(ctx context.Context, name string, args ...string) execx.Result {
	return m.runner.Run(ctx, execx.Command{Name: name, Args: args, Timeout: m.cfg.Timeout})
}

func (m *Manager) station(ctx context.Context) (Station, error) {
	if m.wireless == nil {
		return Station{}, errors.New(errors.ErrUnavailable, "iwd is not reachable")
	}
	st, err := m.wireless.Station(ctx)
	if err != nil {
		return Station{}, err
	}
	if m.cfg.Device != "" {
		st.Name = m.cfg.Device
	}
	if st.Name == "" {
		return Station{}, errors.Newf(errors.ErrNotFound, "station %s has no device name", st.Path)
	}
	return st, nil
}

// Networks lists the secure networks the station currently sees
func (m *Manager) Networks(ctx context.Context, st Station) ([]Network, error) {
	res := m.run(ctx, "iwctl", "station", st.Name, "get-networks")
	if !res.Available() {
		return nil, errors.Newf(errors.ErrCommandFailed, "iwctl get-networks failed: %s", res.Stderr)
	}
	return ParseNetworks(res.Stdout), nil
}

// WiFi lists networks, rescans on request and connects to the choice
func (m *Manager) WiFi(ctx context.Context) error {
	logger := logging.GetLogger("network")

	for {
		st, err := m.station(ctx)
		if err != nil {
			return err
		}
		nets, err := m.Networks(ctx, st)
		if err != nil {
			return err
		}

		options := []string{choiceScan}
		byLabel := make(map[string]string, len(nets))
		for _, n := range nets {
			label := n.Name
			if icon := SignalIcon(m.cfg.SignalIcons, n.Strength); icon != "" {
				label += " " + icon
			}
			byLabel[label] = n.Name
			options = append(options, label)
		}
		options = append(options, choiceBack)

		choice, err := m.menu.Choose(ctx, options)
		if err != nil {
			return err
		}

		switch choice {
		case choiceBack:
			return errBack
		case choiceScan:
			m.notifier.Notify(ctx, "Network", fmt.Sprintf("Scanning %s", m.cfg.ScanWait))
			if err := m.wireless.Scan(ctx, st); err != nil {
				logger.Warn().Err(err).Msg("Scan failed")
			}
			if err := m.sleep(ctx, m.cfg.ScanWait); err != nil {
				return err
			}
			continue
		}

		ssid, ok := byLabel[choice]
		if !ok {
			continue
		}
		return m.Connect(ctx, st, ssid)
	}
}

// Connect asks for the passphrase and joins ssid
func (m *Manager) Connect(ctx context.Context, st Station, ssid string) error {
	pw, err := m.prompt.Password(ctx, "Enter password for "+ssid)
	if err != nil {
		return err
	}

	if res := m.run(ctx, "iwctl", "station", st.Name, "scan"); !res.Available() {
		logger := logging.GetLogger("network")
		logger.Debug().Str("stderr", res.Stderr).Msg("Pre-connect scan failed")
	}

	res := m.runner.Run(ctx, execx.Command{
		Name:    "iwctl",
		Args:    []string{"station", st.Name, "connect", ssid, "--passphrase", pw},
		Timeout: m.cfg.Timeout,
	})
	if !res.Available() {
		m.notifier.Notify(ctx, "Network", "Connection to "+ssid+" failed")
		return errors.Newf(errors.ErrCommandFailed, "cannot connect to %s", ssid)
	}
	m.notifier.Notify(ctx, "Network", "Connected to "+ssid)
	return nil
}

// VPN switches the active WireGuard tunnel to the chosen connection
func (m *Manager) VPN(ctx context.Context) error {
	data, err := m.fs.ReadFile(m.cfg.ConnectionsList)
	if err != nil {
		return errors.Wrapf(err, errors.ErrNotFound, "VPN connections list %s not found", m.cfg.ConnectionsList)
	}

	options := append(ParseConnections(string(data)), choiceBack)
	choice, err := m.menu.Choose(ctx, options)
	if err != nil {
		return err
	}
	if choice == choiceBack {
		return errBack
	}

	for _, iface := range m.Active(ctx) {
		if res := m.wgQuick(ctx, "down", iface); !res.Available() {
			return errors.Newf(errors.ErrCommandFailed, "cannot bring down %s", iface)
		}
	}

	if res := m.wgQuick(ctx, "up", choice); !res.Available() {
		m.notifier.Notify(ctx, "VPN", "Connection to "+choice+" failed")
		return errors.Newf(errors.ErrCommandFailed, "cannot bring up %s", choice)
	}
	m.notifier.Notify(ctx, "VPN", "Connected to "+choice)
	return nil
}

// Active lists the interfaces `wg show` reports, empty when it fails
func (m *Manager) Active(ctx context.Context) []string {
	out, ok := execx.Query(ctx, m.runner, m.cfg.Timeout, "wg", "show")
	if !ok {
		return nil
	}
	return ActiveInterfaces(out)
}

func (m *Manager) wgQuick(ctx context.Context, verb, name string) execx.Result {
	argv := append(append([]string{}, m.cfg.Sudo...), "wg-quick", verb, name)
	return m.run(ctx, argv[0], argv[1:]...)
}
