// Package config loads host settings from defaults, an optional YAML file and
// the environment, in that order.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds settings shared by the CLI hosts.
type Config struct {
	Addr       string        `yaml:"addr"`
	LogLevel   string        `yaml:"log-level"`
	LogFormat  string        `yaml:"log-format"`
	GameTTL    time.Duration `yaml:"game-ttl"`
	SweepEvery time.Duration `yaml:"sweep-every"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:       ":8080",
		LogLevel:   "info",
		LogFormat:  "console",
		GameTTL:    2 * time.Hour,
		SweepEvery: 5 * time.Minute,
	}
}

// Load applies the YAML file at path (if path is non-empty) and then the
// TTT_* environment variables on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse %s", path)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("TTT_ADDR"); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup("TTT_LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("TTT_LOG_FORMAT"); ok && v != "" {
		c.LogFormat = v
	}
	for key, dst := range map[string]*time.Duration{
		"TTT_GAME_TTL":    &c.GameTTL,
		"TTT_SWEEP_EVERY": &c.SweepEvery,
	} {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "%s", key)
		}
		*dst = d
	}
	return nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "log-level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return errors.Errorf("log-format %q: want console or json", c.LogFormat)
	}
	if c.GameTTL <= 0 {
		return errors.Errorf("game-ttl must be positive, got %s", c.GameTTL)
	}
	if c.SweepEvery <= 0 {
		return errors.Errorf("sweep-every must be positive, got %s", c.SweepEvery)
	}
	return nil
}
