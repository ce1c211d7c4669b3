// Package paths provides centralized path handling for polka.
//
// It implements the XDG Base Directory specification for the three places
// polka touches on disk:
//
//   - Cache: $XDG_CACHE_HOME/polka (continuation state for status modules)
//   - Config: $XDG_CONFIG_HOME/polka (config.toml)
//   - State: $XDG_STATE_HOME/polka (log file)
//
// # Environment Variables
//
//   - POLKA_CACHE_DIR: Override the cache directory
//   - POLKA_CONFIG_DIR: Override the config directory
//   - POLKA_STATE_DIR: Override the state directory
//
// # Usage
//
//	p, err := paths.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	timerState := p.StatePath("timer.json") // ~/.cache/polka/timer.json
package paths
