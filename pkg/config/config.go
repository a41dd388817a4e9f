package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string           `yaml:"environment"`
	Service     string           `yaml:"service"`
	Version     string           `yaml:"version"`
	Server      ServerConfig     `yaml:"server"`
	Log         LogConfig        `yaml:"log"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	RateLimit   RateLimitConfig  `yaml:"rate_limit"`
	Yahoo       YahooConfig      `yaml:"yahoo"`
	Aggregator  AggregatorConfig `yaml:"aggregator"`
	Cache       CacheConfig      `yaml:"cache"`
	Kafka       KafkaConfig      `yaml:"kafka"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORS            bool          `yaml:"cors"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
	Output string `yaml:"output"` // stdout, stderr or a file path
}

type MetricsConfig struct {
	Enabled       bool          `yaml:"enabled"`
	SlowThreshold time.Duration `yaml:"slow_threshold"`
}

type RateLimitConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Capacity     float64 `yaml:"capacity"`
	RefillPerSec float64 `yaml:"refill_per_sec"`
}

type YahooConfig struct {
	BaseURL   string        `yaml:"base_url"`
	CookieURL string        `yaml:"cookie_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

type AggregatorConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Backend       string        `yaml:"backend"` // memory, redis or layered
	TTL           time.Duration `yaml:"ttl"`
	MemoryMaxSize int           `yaml:"memory_max_size"`
	Redis         struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		PoolSize int    `yaml:"pool_size"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
}

type KafkaConfig struct {
	Enabled      bool     `yaml:"enabled"`
	Brokers      []string `yaml:"brokers"`
	Topic        string   `yaml:"topic"`
	RequiredAcks int      `yaml:"required_acks"`
	Compression  string   `yaml:"compression"`
	AutoCreate   bool     `yaml:"auto_create_topic"`
	Producer     struct {
		MaxAttempts  int           `yaml:"max_attempts"`
		Linger       time.Duration `yaml:"linger"`
		BatchBytes   int           `yaml:"batch_bytes"`
		BatchSize    int           `yaml:"batch_size"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		Async        bool          `yaml:"async"`
	} `yaml:"producer"`
	// Aggregated error logs go to LogTopic when set.
	LogTopic         string        `yaml:"log_topic"`
	LogFlushInterval time.Duration `yaml:"log_flush_interval"`
}

// Defaults returns a configuration the service can start with.
func Defaults() *Config {
	c := &Config{
		Environment: "development",
		Service:     "findoc",
		Version:     "1.0.0",
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORS:            true,
		},
		Log:        LogConfig{Level: "info", Format: "json", Output: "stdout"},
		Metrics:    MetricsConfig{Enabled: true, SlowThreshold: 5 * time.Second},
		RateLimit:  RateLimitConfig{Enabled: false, Capacity: 20, RefillPerSec: 5},
		Yahoo:      YahooConfig{BaseURL: "https://query2.finance.yahoo.com", CookieURL: "https://fc.yahoo.com", Timeout: 10 * time.Second},
		Aggregator: AggregatorConfig{Timeout: 20 * time.Second},
		Cache: CacheConfig{
			Enabled:       false,
			Backend:       "memory",
			TTL:           60 * time.Second,
			MemoryMaxSize: 1000,
		},
		Kafka: KafkaConfig{
			Enabled:          false,
			Brokers:          []string{"localhost:9092"},
			Topic:            "findoc.documents",
			RequiredAcks:     -1,
			Compression:      "gzip",
			LogFlushInterval: 30 * time.Second,
		},
	}
	c.Cache.Redis.Addr = "localhost:6379"
	c.Cache.Redis.PoolSize = 10
	c.Cache.Redis.Prefix = "findoc"
	c.Kafka.Producer.MaxAttempts = 3
	c.Kafka.Producer.Linger = time.Second
	c.Kafka.Producer.BatchBytes = 1048576
	c.Kafka.Producer.BatchSize = 100
	c.Kafka.Producer.WriteTimeout = 10 * time.Second
	c.Kafka.Producer.ReadTimeout = 10 * time.Second
	return c
}

// Load reads a YAML file over Defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	c := Defaults()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := c.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := get("YAHOO_BASE_URL"); ok {
		c.Yahoo.BaseURL = v
	}
	if v, ok := get("CACHE_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CACHE_ENABLED: %w", err)
		}
		c.Cache.Enabled = b
	}
	if v, ok := get("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := get("KAFKA_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("KAFKA_ENABLED: %w", err)
		}
		c.Kafka.Enabled = b
	}
	if v, ok := get("KAFKA_BROKERS"); ok {
		c.Kafka.Brokers = splitList(v)
	}
	if v, ok := get("KAFKA_TOPIC"); ok {
		c.Kafka.Topic = v
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error", "fatal", "panic", "trace":
	default:
		return fmt.Errorf("log.level '%s' is not supported", c.Log.Level)
	}
	if c.Yahoo.BaseURL == "" {
		return errors.New("yahoo.base_url is required")
	}
	if c.Aggregator.Timeout <= 0 {
		return errors.New("aggregator.timeout must be positive")
	}
	if c.RateLimit.Enabled && c.RateLimit.Capacity < 1 {
		return errors.New("rate_limit.capacity must be at least 1")
	}
	if c.Cache.Enabled {
		switch c.Cache.Backend {
		case "memory", "redis", "layered":
		default:
			return fmt.Errorf("cache.backend must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Backend)
		}
		if c.Cache.TTL <= 0 {
			return errors.New("cache.ttl must be positive")
		}
		if c.Cache.Backend != "memory" && c.Cache.Redis.Addr == "" {
			return errors.New("cache.redis.addr is required")
		}
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return errors.New("kafka.brokers cannot be empty")
		}
		if c.Kafka.Topic == "" {
			return errors.New("kafka.topic is required")
		}
	}
	return nil
}
