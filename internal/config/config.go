// Package config loads application configuration from an optional YAML file
// with environment variable overrides. Environment always wins so the same
// config file can be shared across compose, Helm, and local runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration values, applied before file and env layers.
const (
	DefaultServerHost = "0.0.0.0"
	DefaultServerPort = 8080

	DefaultPostgresHost = "localhost"
	DefaultPostgresPort = 5432
	DefaultPostgresUser = "postgres"
	DefaultPostgresDB   = "stackpad"

	DefaultRedisHost     = "localhost"
	DefaultRedisPort     = 6379
	DefaultRedisPoolSize = 10

	DefaultWatchBaseURL  = "http://localhost:8080"
	DefaultWatchInterval = 5 * time.Second

	DefaultWaitMaxWait        = 60 * time.Second
	DefaultWaitCheckInterval  = 2 * time.Second
	DefaultWaitAttemptTimeout = 2 * time.Second

	DefaultAuthSecret = "stackpad-dev-secret"
	DefaultAuthTTL    = 24 * time.Hour
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Watch    WatchConfig    `yaml:"watch"`
	Wait     WaitConfig     `yaml:"wait"`
	Auth     AuthConfig     `yaml:"auth"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Address returns the listen address (host:port).
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PostgresConfig holds Postgres connection configuration.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// DSN returns the Postgres connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// Addr returns the Redis address (host:port).
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WatchConfig holds settings for the recurring health watcher.
type WatchConfig struct {
	// BaseURL is the server the watcher polls; the composite health
	// endpoint is resolved under it.
	BaseURL string `yaml:"base_url"`
	// Interval is the fixed delay between evaluations. No backoff, no jitter.
	Interval time.Duration `yaml:"interval"`
}

// WaitConfig holds settings for the parallel readiness waiter.
type WaitConfig struct {
	// MaxWait is the cumulative budget per target before giving up.
	MaxWait time.Duration `yaml:"max_wait"`
	// CheckInterval is the delay between poll attempts.
	CheckInterval time.Duration `yaml:"check_interval"`
	// AttemptTimeout bounds a single attempt, independent of MaxWait.
	AttemptTimeout time.Duration `yaml:"attempt_timeout"`
}

// AuthConfig holds token signing configuration for the sample API.
type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// Load reads configuration from the given YAML file (optional, pass "" to
// skip) and applies environment overrides on top of defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultServerHost,
			Port: DefaultServerPort,
		},
		Postgres: PostgresConfig{
			Host:     DefaultPostgresHost,
			Port:     DefaultPostgresPort,
			User:     DefaultPostgresUser,
			Database: DefaultPostgresDB,
		},
		Redis: RedisConfig{
			Host:     DefaultRedisHost,
			Port:     DefaultRedisPort,
			PoolSize: DefaultRedisPoolSize,
		},
		Watch: WatchConfig{
			BaseURL:  DefaultWatchBaseURL,
			Interval: DefaultWatchInterval,
		},
		Wait: WaitConfig{
			MaxWait:        DefaultWaitMaxWait,
			CheckInterval:  DefaultWaitCheckInterval,
			AttemptTimeout: DefaultWaitAttemptTimeout,
		},
		Auth: AuthConfig{
			Secret:   DefaultAuthSecret,
			TokenTTL: DefaultAuthTTL,
		},
	}
}

func applyEnv(cfg *Config) {
	envString("SERVER_HOST", &cfg.Server.Host)
	envInt("PORT", &cfg.Server.Port)

	envString("PG_HOST", &cfg.Postgres.Host)
	envInt("PG_PORT", &cfg.Postgres.Port)
	envString("PG_USER", &cfg.Postgres.User)
	envString("PG_PASSWORD", &cfg.Postgres.Password)
	envString("PG_DB", &cfg.Postgres.Database)

	envString("REDIS_HOST", &cfg.Redis.Host)
	envInt("REDIS_PORT", &cfg.Redis.Port)
	envString("REDIS_PASSWORD", &cfg.Redis.Password)
	envInt("REDIS_DB", &cfg.Redis.DB)

	envString("API_BASE_URL", &cfg.Watch.BaseURL)
	envDuration("POLL_INTERVAL", &cfg.Watch.Interval)

	envDuration("MAX_WAIT", &cfg.Wait.MaxWait)
	envDuration("CHECK_INTERVAL", &cfg.Wait.CheckInterval)
	envDuration("ATTEMPT_TIMEOUT", &cfg.Wait.AttemptTimeout)

	envString("JWT_SECRET", &cfg.Auth.Secret)
	envDuration("JWT_TTL", &cfg.Auth.TokenTTL)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// envDuration accepts Go duration syntax ("5s") and, for compatibility with
// the shell tooling this replaces, bare integers interpreted as seconds.
func envDuration(key string, dst *time.Duration) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(n) * time.Second
	}
}
