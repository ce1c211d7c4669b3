// Package config loads polka's configuration. Embedded defaults are
// layered under the user's TOML file, POLKA_* environment variables and
// --set overrides, then decoded into one Config value whose sections are
// handed to the modules.
package config
