package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ttt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9000\"\nlog-level: debug\ngame-ttl: 30m\n"), 0o600))
	t.Setenv("TTT_LOG_FORMAT", "json")
	t.Setenv("TTT_SWEEP_EVERY", "10s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Minute, cfg.GameTTL)
	assert.Equal(t, 10*time.Second, cfg.SweepEvery)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ttt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9000\"\n"), 0o600))
	t.Setenv("TTT_ADDR", "127.0.0.1:7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("addr: [\n"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)

	t.Setenv("TTT_GAME_TTL", "soon")
	_, err = Load("")
	require.ErrorContains(t, err, "TTT_GAME_TTL")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty addr":     func(c *Config) { c.Addr = "" },
		"bad level":      func(c *Config) { c.LogLevel = "loud" },
		"bad format":     func(c *Config) { c.LogFormat = "xml" },
		"zero ttl":       func(c *Config) { c.GameTTL = 0 },
		"negative sweep": func(c *Config) { c.SweepEvery = -time.Second },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoggerJSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	cfg := Default()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	l := cfg.Logger(&buf)
	l.Info().Msg("hidden")
	l.Warn().Str("k", "v").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"k":"v"`)
	assert.Contains(t, out, `"message":"shown"`)
}
