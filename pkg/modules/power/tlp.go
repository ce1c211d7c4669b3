// Package power switches laptop power profiles: TLP drop-ins and the
// compositor game mode.
package power

import (
	"context"
	stderrors "errors"
	"io/fs"
	"time"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/filesystem"
	"github.com/polka-dots/polka/pkg/logging"
	"github.com/polka-dots/polka/pkg/state"
)

// Mode is a TLP profile selection
type Mode string

const (
	ModeBattery Mode = "batmode"
	ModeDefault Mode = "default"
	ModeNone    Mode = "none"
)

// Modes lists the accepted modes in display order
var Modes = []Mode{ModeBattery, ModeDefault, ModeNone}

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown tlp mode %q (want batmode, default or none)", s)
}

// DropIn is a file placed in the TLP configuration directory
type DropIn struct {
	Path    string `koanf:"path" toml:"path"`
	Content string `koanf:"content" toml:"content"`
}

// TLPConfig holds the drop-ins and the service to restart
type TLPConfig struct {
	Battery  DropIn        `koanf:"battery" toml:"battery"`
	Defaults DropIn        `koanf:"defaults" toml:"defaults"`
	Service  string        `koanf:"service" toml:"service"`
	Timeout  time.Duration `koanf:"timeout" toml:"timeout"`
}

// Change is one file operation performed by Apply
type Change struct {
	Path   string
	Action string
}

// TLP writes or removes drop-ins and restarts the daemon
type TLP struct {
	cfg    TLPConfig
	fs     filesystem.FS
	runner execx.Runner
}

// NewTLP creates the switcher
func NewTLP(cfg TLPConfig, fsys filesystem.FS, r execx.Runner) *TLP {
	if cfg.Service == "" {
		cfg.Service = "tlp.service"
	}
	return &TLP{cfg: cfg, fs: fsys, runner: r}
}

// Apply switches to mode and restarts TLP. Nothing is restarted when a
// file operation fails.
func (t *TLP) Apply(ctx context.Context, mode Mode) ([]Change, error) {
	var changes []Change
	var err error

	switch mode {
	case ModeBattery:
		changes, err = t.write(t.cfg.Battery)
	case ModeDefault:
		changes, err = t.write(t.cfg.Defaults)
	case ModeNone:
		for _, d := range []DropIn{t.cfg.Battery, t.cfg.Defaults} {
			c, rerr := t.remove(d.Path)
			if rerr != nil {
				return changes, rerr
			}
			changes = append(changes, c)
		}
	default:
		_, err = ParseMode(string(mode))
	}
	if err != nil {
		return changes, err
	}

	res := t.runner.Run(ctx, execx.Command{
		Name:    "systemctl",
		Args:    []string{"restart", t.cfg.Service},
		Timeout: t.cfg.Timeout,
	})
	if !res.Available() {
		return changes, errors.Newf(errors.ErrCommandFailed, "failed to restart %s", t.cfg.Service).
			WithDetail("stderr", res.Stderr)
	}
	return changes, nil
}

func (t *TLP) write(d DropIn) ([]Change, error) {
	if err := state.WriteAtomic(t.fs, d.Path, []byte(d.Content), 0644); err != nil {
		return nil, permissionError(err, d.Path)
	}
	return []Change{{Path: d.Path, Action: "wrote"}}, nil
}

func (t *TLP) remove(path string) (Change, error) {
	err := t.fs.Remove(path)
	switch {
	case err == nil:
		return Change{Path: path, Action: "deleted"}, nil
	case stderrors.Is(err, fs.ErrNotExist):
		logger := logging.GetLogger("power")
		logger.Debug().Str("path", path).Msg("Drop-in already absent")
		return Change{Path: path, Action: "absent"}, nil
	default:
		return Change{}, permissionError(err, path)
	}
}

func permissionError(err error, path string) error {
	if stderrors.Is(err, fs.ErrPermission) {
		return errors.Wrapf(err, errors.ErrPermission, "permission denied: cannot change %s", path)
	}
	return errors.Wrapf(err, errors.ErrFileAccess, "cannot change %s", path)
}
