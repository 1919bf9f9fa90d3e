package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("LUMMY_CONFIG", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, SourceRedis, cfg.EventSource)
	assert.Equal(t, "events:index", cfg.EventIndexKey)
	assert.Equal(t, 5, cfg.MaxEventLookups)
	assert.Equal(t, time.Duration(0), cfg.SourceReadTimeout)
	assert.Equal(t, uint32(20), cfg.Breaker.MaxRequests)
	assert.Equal(t, 0.6, cfg.Breaker.FailureRatio)
	assert.True(t, cfg.EnableMetrics)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("LUMMY_CONFIG", "")
	t.Setenv("EVENT_SOURCE", SourceHTTP)
	t.Setenv("EVENT_GATEWAY_URL", "http://gateway.local")
	t.Setenv("SOURCE_READ_TIMEOUT", "3s")
	t.Setenv("MAX_EVENT_LOOKUPS", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, SourceHTTP, cfg.EventSource)
	assert.Equal(t, "http://gateway.local", cfg.EventGatewayURL)
	assert.Equal(t, 3*time.Second, cfg.SourceReadTimeout)
	assert.Equal(t, 5, cfg.MaxEventLookups)
}

func TestLoadConfig_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lummy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
event_source: none
feed_channel: staging-feed
source_read_timeout: 1500ms
breaker:
  max_requests: 5
  failure_ratio: 0.5
`), 0o600))

	t.Setenv("LUMMY_CONFIG", path)
	t.Setenv("REDIS_URL", "redis:6380")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, SourceNone, cfg.EventSource)
	assert.Equal(t, "staging-feed", cfg.FeedChannel)
	assert.Equal(t, 1500*time.Millisecond, cfg.SourceReadTimeout)
	assert.Equal(t, uint32(5), cfg.Breaker.MaxRequests)
	assert.Equal(t, 0.5, cfg.Breaker.FailureRatio)
	assert.Equal(t, "redis:6380", cfg.RedisURL, "keys missing from the file keep env values")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("LUMMY_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		expectErr bool
	}{
		{"Redis source", func(c *Config) {}, false},
		{"HTTP without gateway", func(c *Config) { c.EventSource = SourceHTTP }, true},
		{"HTTP with gateway", func(c *Config) { c.EventSource = SourceHTTP; c.EventGatewayURL = "http://gw" }, false},
		{"Unknown source", func(c *Config) { c.EventSource = "ethereum" }, true},
		{"Zero lookups", func(c *Config) { c.MaxEventLookups = 0 }, true},
		{"Negative timeout", func(c *Config) { c.SourceReadTimeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EventSource: SourceRedis, MaxEventLookups: 5}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
