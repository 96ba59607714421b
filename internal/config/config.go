package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Feed      FeedConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the lib/pq connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// RedisConfig is optional. An empty Addr means rate limiting falls back to
// the in-memory store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type FeedConfig struct {
	PageSize int
}

type RateLimitConfig struct {
	SubmitLimit    int
	SubmitWindow   time.Duration
	ReactionLimit  int
	ReactionWindow time.Duration
}

// Load reads configuration from the environment, applying defaults suited
// to local development.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "versus")
	v.SetDefault("POSTGRES_SSLMODE", "disable")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("FEED_PAGE_SIZE", 10)

	v.SetDefault("SUBMIT_LIMIT", 5)
	v.SetDefault("SUBMIT_WINDOW", "1h")
	v.SetDefault("REACTION_LIMIT", 60)
	v.SetDefault("REACTION_WINDOW", "1m")

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetString("POSTGRES_PORT"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			DBName:   v.GetString("POSTGRES_DB"),
			SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Feed: FeedConfig{
			PageSize: v.GetInt("FEED_PAGE_SIZE"),
		},
		RateLimit: RateLimitConfig{
			SubmitLimit:    v.GetInt("SUBMIT_LIMIT"),
			SubmitWindow:   v.GetDuration("SUBMIT_WINDOW"),
			ReactionLimit:  v.GetInt("REACTION_LIMIT"),
			ReactionWindow: v.GetDuration("REACTION_WINDOW"),
		},
	}

	if cfg.Server.Port <= 0 {
		return nil, fmt.Errorf("invalid SERVER_PORT: %d", cfg.Server.Port)
	}
	if cfg.Feed.PageSize <= 0 {
		return nil, fmt.Errorf("invalid FEED_PAGE_SIZE: %d", cfg.Feed.PageSize)
	}

	return cfg, nil
}
