package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Ernest-Sab/IPR-Tool/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, 2, cfg.Defaults.Iterations)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
server:
  listen_addr: ":9191"
redis:
  addr: "localhost:6379"
  key_prefix: studio
  ttl: 1h
defaults:
  iterations: 4
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9191", cfg.Server.ListenAddr)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "studio", cfg.Redis.KeyPrefix)
	assert.Equal(t, time.Hour, cfg.Redis.TTL.Std())
	assert.Equal(t, 4, cfg.Defaults.Iterations)

	// Keys the file omits keep their defaults.
	assert.Equal(t, 1.0, cfg.Defaults.Strength)
	assert.Equal(t, 2, cfg.Defaults.SmoothRadius)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"defaults":{"iterations":3,"strength":2.5,"smooth_radius":1}}`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Defaults.Iterations)
	assert.Equal(t, 2.5, cfg.Defaults.Strength)
	assert.Equal(t, 1, cfg.Defaults.SmoothRadius)
}

func TestLoad_ValidatesPrivacySettings(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(
		"privacy:\n  encryption_key: "+strings.Repeat("ab", 32)+"\n  redaction_patterns: ['secret_\\w+']\n"), 0o644))
	cfg, err := config.Load(good)
	require.NoError(t, err)
	key, err := cfg.Privacy.DecodeKey(cfg.Privacy.EncryptionKey)
	require.NoError(t, err)
	assert.Len(t, key, 32)

	short := filepath.Join(dir, "short.yaml")
	require.NoError(t, os.WriteFile(short, []byte("privacy:\n  encryption_key: deadbeef\n"), 0o644))
	_, err = config.Load(short)
	assert.ErrorContains(t, err, "32 bytes")

	badPattern := filepath.Join(dir, "pattern.yaml")
	require.NoError(t, os.WriteFile(badPattern, []byte("privacy:\n  redaction_patterns: ['[']\n"), 0o644))
	_, err = config.Load(badPattern)
	assert.ErrorContains(t, err, "redaction_patterns")
}

func TestLoad_RejectsNegativeDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  iterations: -1\n"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iterations")
}
