// Package config loads server configuration from YAML files with
// environment variable overrides.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/edulab/stepwise/pkg/domain"
)

// Config is the full configuration of the serve command.
type Config struct {
	Listen   string         `mapstructure:"listen"`
	LogLevel string         `mapstructure:"log_level"`
	Store    StoreConfig    `mapstructure:"store"`
	Trace    TraceConfig    `mapstructure:"trace"`
	Playback PlaybackConfig `mapstructure:"playback"`
}

// StoreConfig selects and configures the snapshot store.
type StoreConfig struct {
	// Backend is "memory" or "redis".
	Backend  string        `mapstructure:"backend"`
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`

	// EncryptionKey enables at-rest encryption of persisted snapshots.
	// Base64-encoded, must decode to 32 bytes.
	EncryptionKey string `mapstructure:"encryption_key"`

	// RedactPatterns masks the values of matching variable names before
	// snapshots are persisted.
	RedactPatterns []string `mapstructure:"redact"`
}

// TraceConfig bounds the trace builder.
type TraceConfig struct {
	ForLoopCap   int `mapstructure:"for_loop_cap"`
	WhileLoopCap int `mapstructure:"while_loop_cap"`
}

// PlaybackConfig sets playback defaults.
type PlaybackConfig struct {
	AutoPlayInterval time.Duration `mapstructure:"auto_play_interval"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen:   ":8080",
		LogLevel: "info",
		Store: StoreConfig{
			Backend: "memory",
			Address: "localhost:6379",
		},
		Trace: TraceConfig{
			ForLoopCap:   domain.DefaultForLoopCap,
			WhileLoopCap: domain.DefaultWhileLoopCap,
		},
		Playback: PlaybackConfig{
			AutoPlayInterval: domain.DefaultAutoPlayInterval,
		},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// YAML goes through a generic map first so mapstructure can apply
		// decode hooks (duration strings like "500ms").
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           cfg,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("invalid config file: %w", err)
		}
	}

	applyEnv(cfg)

	if cfg.Store.Backend != "memory" && cfg.Store.Backend != "redis" {
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	if _, err := cfg.Store.DecodedEncryptionKey(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DecodedEncryptionKey returns the raw 32-byte key, or nil when
// encryption is not configured.
func (s StoreConfig) DecodedEncryptionKey() ([]byte, error) {
	if s.EncryptionKey == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(s.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}

// applyEnv overrides file settings from STEPWISE_* variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("STEPWISE_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("STEPWISE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STEPWISE_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("STEPWISE_REDIS_ADDRESS"); v != "" {
		cfg.Store.Address = v
	}
	if v := os.Getenv("STEPWISE_REDIS_PASSWORD"); v != "" {
		cfg.Store.Password = v
	}
	if v := os.Getenv("STEPWISE_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Store.DB = db
		}
	}
	if v := os.Getenv("STEPWISE_STORE_KEY"); v != "" {
		cfg.Store.EncryptionKey = v
	}
}
