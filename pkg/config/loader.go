package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/logging"
	"github.com/polka-dots/polka/pkg/paths"
)

// EnvPrefix marks environment variables that override configuration
const EnvPrefix = "POLKA_"

// Options controls where Load reads from
type Options struct {
	// File is the user configuration file; missing files are ignored
	File string
	// Overrides are dotted key=value pairs applied last
	Overrides map[string]string
}

// Load layers defaults, the user file, the environment and overrides
func Load(opts Options) (*Config, error) {
	k, err := load(opts)
	if err != nil {
		return nil, err
	}
	return decode(k)
}

// Default returns the embedded defaults alone
func Default() (*Config, error) {
	k, err := defaults()
	if err != nil {
		return nil, err
	}
	return decode(k)
}

func defaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(bytesProvider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return k, nil
}

func load(opts Options) (*koanf.Koanf, error) {
	logger := logging.GetLogger("config")

	k, err := defaults()
	if err != nil {
		return nil, err
	}

	if opts.File != "" {
		if _, err := os.Stat(opts.File); err == nil {
			if err := k.Load(file.Provider(opts.File), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", opts.File)
			}
			logger.Debug().Str("path", opts.File).Msg("Loaded user config")
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	if len(opts.Overrides) > 0 {
		m := make(map[string]interface{}, len(opts.Overrides))
		for key, v := range opts.Overrides {
			m[key] = v
		}
		if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	return k, nil
}

// envKey maps POLKA_WEATHER_CACHE_TTL to weather.cache_ttl. A double
// underscore reaches deeper tables: POLKA_TIMER_ICONS__PAUSED is
// timer.icons.paused. The directory overrides are not configuration keys.
func envKey(s string) string {
	switch s {
	case paths.EnvCacheDir, paths.EnvConfigDir, paths.EnvStateDir:
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok || rest == "" {
		return ""
	}
	return section + "." + strings.ReplaceAll(rest, "__", ".")
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no module can work with
func (c *Config) Validate() error {
	var problems []string
	if c.Exec.Timeout <= 0 {
		problems = append(problems, "exec.timeout must be positive")
	}
	if c.Weather.HourlyStep <= 0 {
		problems = append(problems, "weather.hourly_step must be positive")
	}
	if c.Weather.Latitude < -90 || c.Weather.Latitude > 90 {
		problems = append(problems, fmt.Sprintf("weather.latitude %v out of range", c.Weather.Latitude))
	}
	if c.Weather.Longitude < -180 || c.Weather.Longitude > 180 {
		problems = append(problems, fmt.Sprintf("weather.longitude %v out of range", c.Weather.Longitude))
	}
	if c.Player.MinWidth <= 0 || c.Player.MaxWidth < c.Player.MinWidth {
		problems = append(problems, "player widths must satisfy 0 < min_width <= max_width")
	}
	for _, w := range c.Proc.Watchers {
		if w.Name == "" {
			problems = append(problems, "proc.watchers entries need a name")
			break
		}
	}
	if len(problems) > 0 {
		return errors.New(errors.ErrConfigParse, "invalid configuration: "+strings.Join(problems, "; "))
	}
	return nil
}

// Raw returns the merged key tree, for display and generation
func Raw(opts Options) (map[string]interface{}, error) {
	k, err := load(opts)
	if err != nil {
		return nil, err
	}
	return k.Raw(), nil
}
