package power

import (
	"context"
	stderrors "errors"
	"io/fs"
	"strings"
	"time"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/filesystem"
	"github.com/polka-dots/polka/pkg/logging"
	"github.com/polka-dots/polka/pkg/paths"
	"github.com/polka-dots/polka/pkg/state"
)

// GamemodeConfig describes the include file and the services to pause
type GamemodeConfig struct {
	Include  string        `koanf:"include" toml:"include"`
	Normal   string        `koanf:"normal" toml:"normal"`
	Game     string        `koanf:"game" toml:"game"`
	Services []string      `koanf:"services" toml:"services"`
	Timeout  time.Duration `koanf:"timeout" toml:"timeout"`
}

// Gamemode flips the compositor between its normal and game includes
type Gamemode struct {
	cfg    GamemodeConfig
	fs     filesystem.FS
	runner execx.Runner
}

// NewGamemode creates the toggler
func NewGamemode(cfg GamemodeConfig, fsys filesystem.FS, r execx.Runner) *Gamemode {
	cfg.Include = paths.ExpandHome(cfg.Include)
	return &Gamemode{cfg: cfg, fs: fsys, runner: r}
}

// Enabled reports whether the include currently holds anything other than
// the normal content. A missing include counts as normal.
func (g *Gamemode) Enabled() (bool, error) {
	data, err := g.fs.ReadFile(g.cfg.Include)
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", g.cfg.Include)
	}
	return strings.TrimSpace(string(data)) != strings.TrimSpace(g.cfg.Normal), nil
}

// Toggle switches the include and stops or starts the services. It
// returns whether game mode is now on.
func (g *Gamemode) Toggle(ctx context.Context) (bool, error) {
	on, err := g.Enabled()
	if err != nil {
		return false, err
	}

	content, verb := g.cfg.Game, "stop"
	if on {
		content, verb = g.cfg.Normal, "start"
	}
	if err := state.WriteAtomic(g.fs, g.cfg.Include, []byte(content), 0644); err != nil {
		return on, err
	}

	logger := logging.GetLogger("power")
	for _, svc := range g.cfg.Services {
		res := g.runner.Run(ctx, execx.Command{
			Name:    "systemctl",
			Args:    []string{"--user", verb, svc},
			Timeout: g.cfg.Timeout,
		})
		if !res.Available() {
			logger.Warn().Str("service", svc).Str("action", verb).Msg("Service change failed")
		}
	}
	return !on, nil
}
