package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	NATS     NATSConfig     `yaml:"nats"`
	Cache    CacheConfig    `yaml:"cache"`
	Ranking  RankingConfig  `yaml:"ranking"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type NATSConfig struct {
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

type CacheConfig struct {
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
	TTLMs     int    `yaml:"ttl_ms"`
}

type RankingConfig struct {
	SensorWindow     int     `yaml:"sensor_window"`
	DefaultDuration  int     `yaml:"default_duration_minutes"`
	ConsistencyLimit float64 `yaml:"consistency_limit"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		NATS: NATSConfig{
			URL:     "nats://localhost:4222",
			Enabled: false,
		},
		Cache: CacheConfig{
			TTLMs: 30000,
		},
		Ranking: RankingConfig{
			SensorWindow:     10,
			DefaultDuration:  60,
			ConsistencyLimit: 0.1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ROOMRANK_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("ROOMRANK_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("ROOMRANK_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("ROOMRANK_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("ROOMRANK_NATS_URL"); v != "" {
		cfg.NATS.URL = v
		cfg.NATS.Enabled = true
	}
	if v := os.Getenv("ROOMRANK_NATS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NATS.Enabled = b
		}
	}
	if v := os.Getenv("ROOMRANK_REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("ROOMRANK_CACHE_TTL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLMs = n
		}
	}
	if v := os.Getenv("ROOMRANK_SENSOR_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Ranking.SensorWindow = n
		}
	}
	if v := os.Getenv("ROOMRANK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
