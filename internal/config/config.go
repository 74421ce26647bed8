package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token    string  `yaml:"token"`
	Mode     string  `yaml:"mode"`    // polling | webhook (future)
	Workers  int     `yaml:"workers"` // polling workers
	AdminIDs []int64 `yaml:"admin_ids"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL            string `yaml:"url"`
	MigrationsPath string `yaml:"migrations_path"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// SessionTTL is the optional idle-timeout for abandoned dialogs.
	// Zero keeps sessions forever.
	SessionTTL time.Duration `yaml:"session_ttl"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
}

type SessionConfig struct {
	Backend string `yaml:"backend"` // redis | memory
}

type APIConfig struct {
	Port       int           `yaml:"port"`
	JWTSecret  string        `yaml:"jwt_secret"`
	AdminToken string        `yaml:"admin_token"` // shared secret exchanged for a JWT
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	API      APIConfig      `yaml:"api"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "polling"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.MigrationsPath == "" {
		cfg.Database.MigrationsPath = "migrations"
	}
	if cfg.Redis.CacheTTL <= 0 {
		cfg.Redis.CacheTTL = 5 * time.Minute
	}
	if cfg.Session.Backend == "" {
		cfg.Session.Backend = "redis"
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = 8000
	}
	if cfg.API.SessionTTL <= 0 {
		cfg.API.SessionTTL = 30 * time.Minute
	}

	// Minimal validation
	if cfg.Bot.Token == "" && !dev {
		return nil, errors.New("bot.token is required")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Session.Backend == "redis" && cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required when session.backend=redis")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
