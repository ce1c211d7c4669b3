// Package procwatch shows an icon while a given application runs
package procwatch

import (
	"context"
	"time"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/payload"
	"github.com/polka-dots/polka/pkg/procscan"
)

// Watcher describes one watched application
type Watcher struct {
	Name    string `koanf:"name" toml:"name"`
	Match   string `koanf:"match" toml:"match"`
	Icon    string `koanf:"icon" toml:"icon"`
	Tooltip string `koanf:"tooltip" toml:"tooltip"`
	Class   string `koanf:"class" toml:"class"`
}

// Config holds the procwatch module settings
type Config struct {
	Interval time.Duration `koanf:"interval" toml:"interval"`
	Watchers []Watcher     `koanf:"watchers" toml:"watchers"`
}

// Find returns the watcher called name
func (c Config) Find(name string) (Watcher, error) {
	for _, w := range c.Watchers {
		if w.Name == name {
			return w, nil
		}
	}
	return Watcher{}, errors.Newf(errors.ErrNotFound, "no process watcher named %q", name)
}

// Module is a single process watcher
type Module struct {
	w       Watcher
	scanner procscan.Scanner
}

// New creates the module for one watcher
func New(w Watcher, s procscan.Scanner) *Module {
	if w.Match == "" {
		w.Match = w.Name
	}
	return &Module{w: w, scanner: s}
}

// Render shows the icon while a matching process runs. Otherwise nothing
// is printed and the status bar hides the module.
func (m *Module) Render(ctx context.Context) (payload.Payload, bool) {
	if !m.scanner.Running(ctx, m.w.Match) {
		return payload.Payload{}, false
	}
	return payload.Payload{
		Text:    m.w.Icon,
		Tooltip: m.w.Tooltip,
		Class:   m.w.Class,
	}, true
}
