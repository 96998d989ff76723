package config

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
)

// Duration parses "90s" / "1h" style values from YAML and JSON config.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard-library duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ServerConfig configures the HTTP API surface.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr" json:"listen_addr"`
}

// RedisConfig configures the optional redis-backed operation store. An empty
// Addr means records stay in process memory.
type RedisConfig struct {
	Addr      string   `yaml:"addr" json:"addr"`
	Password  string   `yaml:"password" json:"password"`
	DB        int      `yaml:"db" json:"db"`
	KeyPrefix string   `yaml:"key_prefix" json:"key_prefix"`
	TTL       Duration `yaml:"ttl" json:"ttl"`
}

// DefaultsConfig carries the slider defaults offered to callers that omit
// parameters.
type DefaultsConfig struct {
	Iterations   int     `yaml:"iterations" json:"iterations"`
	Strength     float64 `yaml:"strength" json:"strength"`
	SmoothRadius int     `yaml:"smooth_radius" json:"smooth_radius"`
}

// PrivacyConfig enables the operation-store middlewares for shared
// infrastructure. Keys are hex-encoded 32-byte AES-256 keys; patterns are
// regular expressions matched against asset names before records persist.
type PrivacyConfig struct {
	EncryptionKey     string   `yaml:"encryption_key" json:"encryption_key"`
	FallbackKeys      []string `yaml:"fallback_keys" json:"fallback_keys"`
	RedactionPatterns []string `yaml:"redaction_patterns" json:"redaction_patterns"`
}

// Config is the root configuration of the service binaries.
type Config struct {
	LogLevel  string         `yaml:"log_level" json:"log_level"`
	LogFormat string         `yaml:"log_format" json:"log_format"`
	Server    ServerConfig   `yaml:"server" json:"server"`
	Redis     RedisConfig    `yaml:"redis" json:"redis"`
	Defaults  DefaultsConfig `yaml:"defaults" json:"defaults"`
	Privacy   PrivacyConfig  `yaml:"privacy" json:"privacy"`
}

// Default returns the built-in configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Server: ServerConfig{
			ListenAddr: ":8080",
		},
		Redis: RedisConfig{
			KeyPrefix: "iprescue",
		},
		Defaults: DefaultsConfig{
			Iterations:   domain.DefaultIterations,
			Strength:     domain.DefaultStrength,
			SmoothRadius: domain.DefaultSmoothRadius,
		},
	}
}

// Load reads a configuration file (YAML or JSON) over the defaults. A missing
// file at the default path is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Defaults.Iterations < 0 {
		return fmt.Errorf("defaults.iterations must not be negative, got %d", c.Defaults.Iterations)
	}
	if c.Defaults.SmoothRadius < 0 {
		return fmt.Errorf("defaults.smooth_radius must not be negative, got %d", c.Defaults.SmoothRadius)
	}
	if c.Defaults.Strength < 0 {
		return fmt.Errorf("defaults.strength must not be negative, got %v", c.Defaults.Strength)
	}
	if c.Privacy.EncryptionKey != "" {
		if _, err := c.Privacy.DecodeKey(c.Privacy.EncryptionKey); err != nil {
			return fmt.Errorf("privacy.encryption_key: %w", err)
		}
	}
	for i, k := range c.Privacy.FallbackKeys {
		if _, err := c.Privacy.DecodeKey(k); err != nil {
			return fmt.Errorf("privacy.fallback_keys[%d]: %w", i, err)
		}
	}
	for i, p := range c.Privacy.RedactionPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("privacy.redaction_patterns[%d]: %w", i, err)
		}
	}
	return nil
}

// DecodeKey decodes a hex-encoded AES-256 key.
func (p PrivacyConfig) DecodeKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("key must be hex encoded: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
