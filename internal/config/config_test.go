package config_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab/stepwise/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stepwise.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 10, cfg.Trace.ForLoopCap)
	assert.Equal(t, 5, cfg.Trace.WhileLoopCap)
	assert.Equal(t, time.Second, cfg.Playback.AutoPlayInterval)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
listen: ":9000"
log_level: debug
store:
  backend: redis
  address: redis.internal:6379
  db: 3
  ttl: 24h
trace:
  for_loop_cap: 20
playback:
  auto_play_interval: 500ms
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis.internal:6379", cfg.Store.Address)
	assert.Equal(t, 3, cfg.Store.DB)
	assert.Equal(t, 24*time.Hour, cfg.Store.TTL)
	assert.Equal(t, 20, cfg.Trace.ForLoopCap)
	assert.Equal(t, 5, cfg.Trace.WhileLoopCap, "unset keys keep their defaults")
	assert.Equal(t, 500*time.Millisecond, cfg.Playback.AutoPlayInterval)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "store:\n  backend: cassandra\n")

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "cassandra")
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STEPWISE_LISTEN", ":7070")
	t.Setenv("STEPWISE_STORE_BACKEND", "redis")
	t.Setenv("STEPWISE_REDIS_DB", "7")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Listen)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, 7, cfg.Store.DB)
}

func TestEncryptionKeyDecoding(t *testing.T) {
	key := make([]byte, 32)
	encoded := base64.StdEncoding.EncodeToString(key)

	cfg, err := config.Load(writeConfig(t, "store:\n  encryption_key: "+encoded+"\n"))
	require.NoError(t, err)

	decoded, err := cfg.Store.DecodedEncryptionKey()
	require.NoError(t, err)
	assert.Len(t, decoded, 32)
}

func TestEncryptionKeyRejectsWrongSize(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("short"))

	_, err := config.Load(writeConfig(t, "store:\n  encryption_key: "+encoded+"\n"))
	assert.ErrorContains(t, err, "32 bytes")
}

func TestEncryptionKeyFromEnv(t *testing.T) {
	key := make([]byte, 32)
	t.Setenv("STEPWISE_STORE_KEY", base64.StdEncoding.EncodeToString(key))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Store.EncryptionKey)
}
