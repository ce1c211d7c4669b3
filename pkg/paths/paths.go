package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/polka-dots/polka/pkg/errors"
)

// Environment variable names
const (
	// EnvCacheDir overrides the XDG cache directory for polka
	EnvCacheDir = "POLKA_CACHE_DIR"

	// EnvConfigDir overrides the XDG config directory for polka
	EnvConfigDir = "POLKA_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for polka
	EnvStateDir = "POLKA_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// DirName is the directory name used under every XDG base dir
	DirName = "polka"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "polka.log"
)

// Paths provides centralized path management for polka
type Paths interface {
	CacheDir() string
	ConfigDir() string
	StateDir() string
	ConfigFilePath() string
	LogFilePath() string
	StatePath(name string) string
	HomeDir() string
}

type paths struct {
	xdgCache  string
	xdgConfig string
	xdgState  string
	home      string
}

// New creates a new Paths instance, respecting environment overrides.
func New() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
	}
	if home == "" {
		return nil, errors.New(errors.ErrFileAccess, "cannot determine home directory")
	}

	p := &paths{home: home}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		p.xdgCache = expandHome(dir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, DirName)
	}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.xdgConfig = expandHome(dir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, DirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.xdgState = expandHome(dir)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, DirName)
	}

	return p, nil
}

// CacheDir returns the directory holding continuation state files
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// ConfigDir returns the XDG config directory for polka
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// StateDir returns the XDG state directory for polka
func (p *paths) StateDir() string {
	return p.xdgState
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// StatePath returns the path of a module's state file inside the cache dir.
// Absolute names are returned unchanged so config can point elsewhere.
func (p *paths) StatePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.xdgCache, name)
}

func (p *paths) HomeDir() string {
	return p.home
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ExpandHome expands a leading ~ in path
func ExpandHome(path string) string {
	return expandHome(path)
}
