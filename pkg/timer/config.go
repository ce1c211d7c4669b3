package timer

import "time"

// Config holds the timer module settings
type Config struct {
	// StateFile is relative to the cache dir unless absolute
	StateFile string        `koanf:"state_file" toml:"state_file"`
	App       string        `koanf:"app" toml:"app"`
	Interval  time.Duration `koanf:"interval" toml:"interval"`
	Icons     Icons         `koanf:"icons" toml:"icons"`
}

// Icons are the glyphs shown in front of the countdown
type Icons struct {
	Minutes  string `koanf:"minutes" toml:"minutes"`
	Hours    string `koanf:"hours" toml:"hours"`
	Seconds  string `koanf:"seconds" toml:"seconds"`
	Paused   string `koanf:"paused" toml:"paused"`
	Finished string `koanf:"finished" toml:"finished"`
}

func (i Icons) forUnit(u Unit) string {
	switch u {
	case UnitHours:
		return i.Hours
	case UnitSeconds:
		return i.Seconds
	default:
		return i.Minutes
	}
}
