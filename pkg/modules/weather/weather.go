// Package weather renders an Open-Meteo forecast: the current condition
// as the status text, hourly and daily rows in the tooltip.
package weather

import (
	"context"
	"time"

	"github.com/polka-dots/polka/pkg/logging"
	"github.com/polka-dots/polka/pkg/payload"
	"github.com/polka-dots/polka/pkg/state"
)

// Config holds the weather module settings
type Config struct {
	Latitude   float64       `koanf:"latitude" toml:"latitude"`
	Longitude  float64       `koanf:"longitude" toml:"longitude"`
	Timezone   string        `koanf:"timezone" toml:"timezone"`
	Celsius    bool          `koanf:"celsius" toml:"celsius"`
	HourlyStep int           `koanf:"hourly_step" toml:"hourly_step"`
	Endpoint   string        `koanf:"endpoint" toml:"endpoint"`
	Timeout    time.Duration `koanf:"timeout" toml:"timeout"`
	CacheFile  string        `koanf:"cache_file" toml:"cache_file"`
	CacheTTL   time.Duration `koanf:"cache_ttl" toml:"cache_ttl"`
	Interval   time.Duration `koanf:"interval" toml:"interval"`
}

// Cache is the persisted last good response
type Cache struct {
	FetchedAt time.Time `json:"fetched_at"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Forecast  *Forecast `json:"forecast"`
}

// Fetcher retrieves a forecast
type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64, timezone string) (*Forecast, error)
}

// Module is the weather status module
type Module struct {
	cfg     Config
	fetcher Fetcher
	cache   *state.Store[Cache]
	now     func() time.Time
}

// New creates the module
func New(cfg Config, f Fetcher, cache *state.Store[Cache]) *Module {
	if cfg.HourlyStep <= 0 {
		cfg.HourlyStep = 1
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "auto"
	}
	return &Module{cfg: cfg, fetcher: f, cache: cache, now: time.Now}
}

// WithClock replaces the time source
func (m *Module) WithClock(now func() time.Time) *Module {
	m.now = now
	return m
}

// Forecast returns a cached forecast younger than the TTL, otherwise
// fetches a new one. A failed fetch falls back to any cached forecast for
// the same position.
func (m *Module) Forecast(ctx context.Context) (*Forecast, bool) {
	logger := logging.GetLogger("weather")
	now := m.now()

	cached := m.cache.Load()
	samePlace := cached.Forecast != nil &&
		cached.Latitude == m.cfg.Latitude &&
		cached.Longitude == m.cfg.Longitude
	if samePlace && now.Sub(cached.FetchedAt) < m.cfg.CacheTTL {
		logger.Debug().Time("fetched_at", cached.FetchedAt).Msg("Using cached forecast")
		return cached.Forecast, true
	}

	f, err := m.fetcher.Fetch(ctx, m.cfg.Latitude, m.cfg.Longitude, m.cfg.Timezone)
	if err != nil {
		logger.Debug().Err(err).Msg("Forecast unavailable")
		if samePlace {
			return cached.Forecast, true
		}
		return nil, false
	}

	err = m.cache.Save(Cache{
		FetchedAt: now,
		Latitude:  m.cfg.Latitude,
		Longitude: m.cfg.Longitude,
		Forecast:  f,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to cache forecast")
	}
	return f, true
}

// Render builds the payload. Without any forecast the module is blanked.
func (m *Module) Render(ctx context.Context) (payload.Payload, bool) {
	f, ok := m.Forecast(ctx)
	if !ok {
		return payload.Empty(), true
	}
	return Build(f, m.now(), m.cfg), true
}

// Build renders a forecast as of now
func Build(f *Forecast, now time.Time, cfg Config) payload.Payload {
	days := f.Days()
	hours := upcoming(f.Hours(), now, cfg.HourlyStep)
	markSunEvents(hours, days, time.Duration(cfg.HourlyStep)*time.Hour)

	if len(hours) == 0 {
		return payload.Empty()
	}
	current := hours[0]
	cond := Lookup(current.Code)

	return payload.Payload{
		Text:    Icon(current.Code, current.IsDay),
		Tooltip: Tooltip(now.In(f.Location()), hours, days, cfg.Celsius),
		Class:   Group(current.Code),
		Alt:     cond.Description,
	}
}

// upcoming returns every step-th hour in the 24 hours starting at the
// hour containing now
func upcoming(hours []Hour, now time.Time, step int) []Hour {
	first := now.Add(-time.Hour)
	last := now.Add(23 * time.Hour)

	var out []Hour
	n := 0
	for _, h := range hours {
		if !h.Time.After(first) || h.Time.After(last) {
			continue
		}
		if n%step == 0 {
			out = append(out, h)
		}
		n++
	}
	return out
}
