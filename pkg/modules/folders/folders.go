// Package folders is a cycling launcher: the bar shows one entry at a
// time, scrolling moves between entries and a click opens the current one.
package folders

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/paths"
	"github.com/polka-dots/polka/pkg/payload"
	"github.com/polka-dots/polka/pkg/state"
)

// Entry is one launcher item
type Entry struct {
	Icon    string `koanf:"icon" toml:"icon"`
	Command string `koanf:"command" toml:"command"`
}

// Label is the last path element of the command, used as the visible name
func (e Entry) Label() string {
	argv := e.argv()
	if len(argv) == 0 {
		return ""
	}
	return filepath.Base(argv[len(argv)-1])
}

func (e Entry) argv() []string {
	fields := strings.Fields(e.Command)
	for i, f := range fields {
		fields[i] = paths.ExpandHome(os.ExpandEnv(f))
	}
	return fields
}

// Config holds the folders module settings
type Config struct {
	StateFile string  `koanf:"state_file" toml:"state_file"`
	Entries   []Entry `koanf:"entries" toml:"entries"`
}

// State is the persisted cursor
type State struct {
	Index  int  `json:"index"`
	Hidden bool `json:"hidden"`
}

// Valid rejects negative indexes
func (s State) Valid() bool {
	return s.Index >= 0
}

// Module is the folders launcher
type Module struct {
	cfg      Config
	store    *state.Store[State]
	launcher execx.Launcher
}

// New creates the module
func New(cfg Config, store *state.Store[State], l execx.Launcher) *Module {
	return &Module{cfg: cfg, store: store, launcher: l}
}

// current clamps the stored index to the configured entries, which may
// have shrunk since it was saved.
func (m *Module) current(s State) int {
	n := len(m.cfg.Entries)
	if n == 0 {
		return 0
	}
	return s.Index % n
}

func (m *Module) move(delta int) (State, error) {
	n := len(m.cfg.Entries)
	if n == 0 {
		return State{}, errors.New(errors.ErrNotFound, "no folder entries configured")
	}
	return m.store.Update(func(s *State) error {
		s.Index = ((m.current(*s)+delta)%n + n) % n
		return nil
	})
}

// Up selects the next entry
func (m *Module) Up() (State, error) {
	return m.move(1)
}

// Down selects the previous entry
func (m *Module) Down() (State, error) {
	return m.move(-1)
}

// Toggle flips whether the label is shown
func (m *Module) Toggle() (State, error) {
	return m.store.Update(func(s *State) error {
		s.Hidden = !s.Hidden
		return nil
	})
}

// Exec starts the current entry's command detached from polka
func (m *Module) Exec(_ context.Context) error {
	if len(m.cfg.Entries) == 0 {
		return errors.New(errors.ErrNotFound, "no folder entries configured")
	}
	e := m.cfg.Entries[m.current(m.store.Load())]
	argv := e.argv()
	if len(argv) == 0 {
		return errors.Newf(errors.ErrInvalidInput, "folder entry %q has no command", e.Icon)
	}
	if err := m.launcher.Launch(argv[0], argv[1:]...); err != nil {
		return errors.Wrapf(err, errors.ErrCommandFailed, "cannot start %s", argv[0])
	}
	return nil
}

// Render shows the current entry's icon and, unless hidden, its label
func (m *Module) Render(_ context.Context) (payload.Payload, bool) {
	if len(m.cfg.Entries) == 0 {
		return payload.Empty(), true
	}
	s := m.store.Load()
	e := m.cfg.Entries[m.current(s)]

	class, name := "visible", " "+e.Label()
	if s.Hidden {
		class, name = "hidden", ""
	}
	return payload.Payload{
		Text:  fmt.Sprintf("%s<span size='8pt'>%s</span>", e.Icon, name),
		Class: class,
	}, true
}
