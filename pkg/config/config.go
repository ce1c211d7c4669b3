package config

import (
	"time"

	"github.com/polka-dots/polka/pkg/linker"
	"github.com/polka-dots/polka/pkg/modules/folders"
	"github.com/polka-dots/polka/pkg/modules/network"
	"github.com/polka-dots/polka/pkg/modules/player"
	"github.com/polka-dots/polka/pkg/modules/power"
	"github.com/polka-dots/polka/pkg/modules/procwatch"
	"github.com/polka-dots/polka/pkg/modules/sunset"
	"github.com/polka-dots/polka/pkg/modules/tasks"
	"github.com/polka-dots/polka/pkg/modules/torrent"
	"github.com/polka-dots/polka/pkg/modules/weather"
	"github.com/polka-dots/polka/pkg/timer"
)

// Config is the complete polka configuration
type Config struct {
	Exec    Exec             `koanf:"exec"`
	Notify  Notify           `koanf:"notify"`
	Link    Link             `koanf:"link"`
	Timer   timer.Config     `koanf:"timer"`
	Torrent torrent.Config   `koanf:"torrent"`
	Player  player.Config    `koanf:"player"`
	Tasks   tasks.Config     `koanf:"tasks"`
	Weather weather.Config   `koanf:"weather"`
	Proc    procwatch.Config `koanf:"proc"`
	Folders folders.Config   `koanf:"folders"`
	Network network.Config   `koanf:"network"`
	Power   Power            `koanf:"power"`
	Sunset  sunset.Config    `koanf:"sunset"`
}

// Exec configures external command invocation
type Exec struct {
	Timeout time.Duration `koanf:"timeout"`
}

// Notify configures desktop notifications
type Notify struct {
	Command string        `koanf:"command"`
	App     string        `koanf:"app"`
	Timeout time.Duration `koanf:"timeout"`
}

// Link configures the dotfile link reconciler
type Link struct {
	SourceRoot  string           `koanf:"source_root"`
	TargetRoot  string           `koanf:"target_root"`
	Exclude     []string         `koanf:"exclude"`
	Directories []string         `koanf:"directories"`
	Individual  []linker.Mapping `koanf:"individual"`
	// PostHooks run after a successful, non-dry link. Hooks whose binary
	// is not installed are skipped.
	PostHooks [][]string `koanf:"post_hooks"`
}

// Power groups the power profile switches
type Power struct {
	TLP      power.TLPConfig      `koanf:"tlp"`
	Gamemode power.GamemodeConfig `koanf:"gamemode"`
}
