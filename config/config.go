package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"lummy/utils"

	"gopkg.in/yaml.v3"
)

const (
	SourceRedis = "redis"
	SourceHTTP  = "http"
	SourceNone  = "none"
)

type Config struct {
	// Redis configuration
	RedisURL      string `yaml:"redis_url"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// PubNub configuration
	PubNubPublishKey   string `yaml:"pubnub_publish_key"`
	PubNubSubscribeKey string `yaml:"pubnub_subscribe_key"`
	PubNubSecretKey    string `yaml:"pubnub_secret_key"`
	FeedChannel        string `yaml:"feed_channel"`

	// Event source configuration
	EventSource       string                `yaml:"event_source"`
	EventGatewayURL   string                `yaml:"event_gateway_url"`
	EventIndexKey     string                `yaml:"event_index_key"`
	MaxEventLookups   int                   `yaml:"max_event_lookups"`
	SourceReadTimeout time.Duration         `yaml:"source_read_timeout"`
	Breaker           utils.BreakerSettings `yaml:"breaker"`

	// Throttling
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`

	// Monitoring
	EnableMetrics bool `yaml:"enable_metrics"`
}

// LoadConfig reads the environment and, when LUMMY_CONFIG names a file,
// overlays it.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),
		FeedChannel:        getEnv("FEED_CHANNEL", "events-feed"),

		// Event source
		EventSource:       getEnv("EVENT_SOURCE", SourceRedis),
		EventGatewayURL:   getEnv("EVENT_GATEWAY_URL", ""),
		EventIndexKey:     getEnv("EVENT_INDEX_KEY", "events:index"),
		MaxEventLookups:   getEnvAsInt("MAX_EVENT_LOOKUPS", 5),
		SourceReadTimeout: getEnvAsDuration("SOURCE_READ_TIMEOUT", "0s"),
		Breaker: utils.BreakerSettings{
			MaxRequests:  uint32(getEnvAsInt("BREAKER_MAX_REQUESTS", 20)),
			Interval:     getEnvAsDuration("BREAKER_INTERVAL", "60s"),
			Timeout:      getEnvAsDuration("BREAKER_TIMEOUT", "30s"),
			FailureRatio: getEnvAsFloat("BREAKER_FAILURE_RATIO", 0.6),
		},

		// Throttling
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}

	if path := os.Getenv("LUMMY_CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes a YAML file over the current values. Keys missing from the
// file keep what the environment set.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.EventSource {
	case SourceRedis, SourceNone:
	case SourceHTTP:
		if c.EventGatewayURL == "" {
			return fmt.Errorf("config: event_source %q needs event_gateway_url", c.EventSource)
		}
	default:
		return fmt.Errorf("config: unknown event_source %q", c.EventSource)
	}
	if c.MaxEventLookups <= 0 {
		return fmt.Errorf("config: max_event_lookups must be positive, got %d", c.MaxEventLookups)
	}
	if c.SourceReadTimeout < 0 {
		return fmt.Errorf("config: source_read_timeout must not be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
