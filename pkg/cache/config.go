package cache

import (
	"fmt"
	"time"
)

// Backends accepted by New.
const (
	BackendMemory  = "memory"
	BackendRedis   = "redis"
	BackendLayered = "layered"
)

// Config selects and configures a backend for New.
type Config struct {
	Backend       string
	TTL           time.Duration // also bounds how long layered entries stay in memory
	MemoryMaxSize int
	Redis         RedisConfig
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	PoolTimeout  time.Duration
	MinIdleConns int
	Prefix       string
}

func (c RedisConfig) withDefaults() RedisConfig {
	if c.Addr == "" {
		c.Addr = "localhost:6379"
	}
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.PoolTimeout <= 0 {
		c.PoolTimeout = 30 * time.Second
	}
	if c.MinIdleConns <= 0 {
		c.MinIdleConns = c.PoolSize / 2
	}
	if c.Prefix == "" {
		c.Prefix = "findoc"
	}
	return c
}

// MemoryOption configures Memory cache.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	maxSize int
	cleanup time.Duration
}

// WithMemoryMaxSize caps the number of entries; the least recently used one is evicted.
func WithMemoryMaxSize(size int) MemoryOption {
	return func(c *memoryConfig) { c.maxSize = size }
}

// WithMemoryCleanup sets how often expired entries are swept.
func WithMemoryCleanup(interval time.Duration) MemoryOption {
	return func(c *memoryConfig) { c.cleanup = interval }
}

// New builds the backend named by cfg.Backend.
func New(cfg Config) (Service, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryCache(WithMemoryMaxSize(cfg.MemoryMaxSize)), nil
	case BackendRedis:
		return NewRedisCache(cfg.Redis)
	case BackendLayered:
		rc, err := NewRedisCache(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewLayeredCache(rc, cfg.MemoryMaxSize, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
