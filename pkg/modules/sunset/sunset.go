// Package sunset cycles the screen temperature daemon through a directory
// of profiles.
package sunset

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/filesystem"
	"github.com/polka-dots/polka/pkg/logging"
	"github.com/polka-dots/polka/pkg/paths"
	"github.com/polka-dots/polka/pkg/state"
)

// Config holds the sunset module settings
type Config struct {
	ProfileDir string        `koanf:"profile_dir" toml:"profile_dir"`
	Active     string        `koanf:"active" toml:"active"`
	StateFile  string        `koanf:"state_file" toml:"state_file"`
	Service    string        `koanf:"service" toml:"service"`
	Process    string        `koanf:"process" toml:"process"`
	Timeout    time.Duration `koanf:"timeout" toml:"timeout"`
}

// Module applies profiles in name order
type Module struct {
	cfg    Config
	fs     filesystem.FS
	runner execx.Runner
	index  *state.Scalar
}

// New creates the module. index stores the position of the last applied
// profile.
func New(cfg Config, fsys filesystem.FS, r execx.Runner, index *state.Scalar) *Module {
	cfg.ProfileDir = paths.ExpandHome(cfg.ProfileDir)
	cfg.Active = paths.ExpandHome(cfg.Active)
	return &Module{cfg: cfg, fs: fsys, runner: r, index: index}
}

// Profiles returns the sorted *.conf file names in the profile directory
func (m *Module) Profiles() ([]string, error) {
	entries, err := m.fs.ReadDir(m.cfg.ProfileDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "cannot read profiles in %s", m.cfg.ProfileDir)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".conf") {
			continue
		}
		// the active file may live alongside the profiles
		if filepath.Join(m.cfg.ProfileDir, e.Name()) == m.cfg.Active {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, errors.Newf(errors.ErrNotFound, "no profiles found in %s", m.cfg.ProfileDir)
	}
	sort.Strings(names)
	return names, nil
}

// Next applies the profile after the last applied one, or the first on a
// fresh start, and returns its name.
func (m *Module) Next(ctx context.Context) (string, error) {
	profiles, err := m.Profiles()
	if err != nil {
		return "", err
	}

	next := 0
	if cur := m.index.LoadInt(-1); cur >= 0 {
		next = (cur + 1) % len(profiles)
	}
	name := profiles[next]

	data, err := m.fs.ReadFile(filepath.Join(m.cfg.ProfileDir, name))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read profile %s", name)
	}
	if err := state.WriteAtomic(m.fs, m.cfg.Active, data, 0644); err != nil {
		return "", err
	}
	if err := m.index.SaveInt(next); err != nil {
		return "", err
	}
	return name, m.Restart(ctx)
}

func (m *Module) systemctl(ctx context.Context, verb string) execx.Result {
	return m.runner.Run(ctx, execx.Command{
		Name:    "systemctl",
		Args:    []string{"--user", verb, m.cfg.Service},
		Timeout: m.cfg.Timeout,
	})
}

// Restart restarts the user service. When that fails the daemon is killed
// and the unit stopped and started again.
func (m *Module) Restart(ctx context.Context) error {
	if m.systemctl(ctx, "restart").Available() {
		return nil
	}

	logger := logging.GetLogger("sunset")
	logger.Warn().Str("service", m.cfg.Service).Msg("Restart failed, killing the daemon")

	m.runner.Run(ctx, execx.Command{Name: "pkill", Args: []string{"-f", m.cfg.Process}, Timeout: m.cfg.Timeout})
	m.systemctl(ctx, "stop")
	if res := m.systemctl(ctx, "start"); !res.Available() {
		return errors.Newf(errors.ErrCommandFailed, "cannot start %s", m.cfg.Service).WithDetail("stderr", res.Stderr)
	}
	return nil
}
