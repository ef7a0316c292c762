// Package config loads an optional wfl.toml settings file into the
// Options interp/pkg-wfl construction reads from, following
// other_examples/iter's TOML-file-to-struct loading pattern.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config mirrors the tunables an embedder can set via pkg/wfl.Option,
// plus the capability toggles and server settings spec.md §1 names as
// external-driver concerns. EventQueueDepth, AllowFilesystem,
// AllowNetwork and DefaultPort are loaded and defaulted here, but no
// code outside this package reads them, so nothing is gated by them.
type Config struct {
	Interp InterpConfig `toml:"interp"`
	Stdlib StdlibConfig `toml:"stdlib"`
	Server ServerConfig `toml:"server"`
}

// InterpConfig configures the pattern VM and event loop.
type InterpConfig struct {
	PatternStepBudget int `toml:"pattern_step_budget"`
	EventQueueDepth   int `toml:"event_queue_depth"`
}

// StdlibConfig holds the stdlib capability toggles and random seed.
type StdlibConfig struct {
	AllowFilesystem bool   `toml:"allow_filesystem"`
	AllowNetwork    bool   `toml:"allow_network"`
	RandomSeed      uint64 `toml:"random_seed"`
}

// ServerConfig configures the `listen`/`wait for request` HTTP surface.
type ServerConfig struct {
	DefaultPort int `toml:"default_port"`
}

// Default returns the zero-configuration settings: no pattern-step
// override (the pattern package's own default applies), filesystem and
// network both allowed, unseeded randomness.
func Default() Config {
	return Config{
		Stdlib: StdlibConfig{AllowFilesystem: true, AllowNetwork: true},
		Server: ServerConfig{DefaultPort: 8080},
	}
}

// Load reads and parses a wfl.toml file at path. A missing file is not
// an error; Load returns Default() in that case so callers don't need
// to special-case an absent config.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
