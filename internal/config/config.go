package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Port        int `toml:"port"`
	MetricsPort int `toml:"metrics_port"`

	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`

	SentryEnabled bool `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort int    `toml:"redis_port"`

	// reconciliation sweep
	ReconcileLookbackDays  int `toml:"reconcile_lookback_days"`
	ReconcileBudgetSeconds int `toml:"reconcile_budget_seconds"`

	// recommendations
	RecommendationTTLDays int `toml:"recommendation_ttl_days"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func Load(env, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var t Toml
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.Environment = env
	cfg.applyDefaults()
	return cfg, nil
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func (c *Config) applyDefaults() {
	if c.ReconcileLookbackDays <= 0 {
		c.ReconcileLookbackDays = 14
	}
	if c.ReconcileBudgetSeconds <= 0 {
		c.ReconcileBudgetSeconds = 300
	}
	if c.RecommendationTTLDays <= 0 {
		c.RecommendationTTLDays = 7
	}
	if c.MetricsPort <= 0 {
		c.MetricsPort = 2112
	}
}
