package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lrucache/pkg/errors"
	"lrucache/pkg/logger"
)

const (
	DefaultCapacity = 1024
	DefaultShards   = 1
	DefaultAddr     = ":8080"
)

type Config struct {
	Cache  CacheConfig  `yaml:"cache"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

type CacheConfig struct {
	// Capacity is the total number of entries across all shards
	Capacity int `yaml:"capacity"`
	// Shards > 1 selects the hashed, per-shard LRU store
	Shards int `yaml:"shards"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File is empty for console output on stdout
	File string `yaml:"file"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Capacity: DefaultCapacity,
			Shards:   DefaultShards,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
		Log: LogConfig{
			Level: logger.InfoLevel,
		},
	}
}

// FromFile reads a YAML config file over the defaults and validates it
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	conf := Default()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks the values the cache cannot start without
func (c *Config) Validate() error {
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("%w: cache.capacity=%d: %w", errors.ErrInvalidConfig, c.Cache.Capacity, errors.ErrInvalidCapacity)
	}
	if c.Cache.Shards < 1 {
		return fmt.Errorf("%w: cache.shards=%d: %w", errors.ErrInvalidConfig, c.Cache.Shards, errors.ErrInvalidShardCount)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", errors.ErrInvalidConfig)
	}
	return nil
}
