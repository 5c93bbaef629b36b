// Package config loads runtime configuration from the environment and the
// optional tools table file.
package config

import (
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration of the gateway.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
	Insight   InsightConfig
	Admin     AdminConfig
	ToolsFile string `env:"TOOLS_CONFIG,default=config/tools.yaml"`
}

// AdminConfig controls dashboard housekeeping.
type AdminConfig struct {
	AuditFile          string `env:"ADMIN_AUDIT_FILE"`
	UsageRetentionDays int    `env:"USAGE_RETENTION_DAYS,default=90"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string `env:"SERVER_HOST,default=0.0.0.0"`
	Port            int    `env:"SERVER_PORT,default=8080"`
	AllowedOrigins  string `env:"CORS_ALLOWED_ORIGINS,default=*"`
	ShutdownTimeout int    `env:"SERVER_SHUTDOWN_TIMEOUT_SECONDS,default=10"`
}

// DatabaseConfig controls the optional PostgreSQL backend. With an empty DSN
// the gateway runs on the in-memory store.
type DatabaseConfig struct {
	DSN             string `env:"DATABASE_URL"`
	MaxOpenConns    int    `env:"DATABASE_MAX_OPEN_CONNS,default=10"`
	MaxIdleConns    int    `env:"DATABASE_MAX_IDLE_CONNS,default=5"`
	ConnMaxLifetime int    `env:"DATABASE_CONN_MAX_LIFETIME_SECONDS,default=300"`
}

// RedisConfig controls the optional shared rate-limit window store.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,default=0"`
}

// AuthConfig controls admin authentication.
type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
}

// RateLimitConfig controls per-client request throttling.
type RateLimitConfig struct {
	RequestsPerSecond int `env:"RATE_LIMIT_RPS,default=10"`
	Burst             int `env:"RATE_LIMIT_BURST,default=20"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL,default=info"`
	Format string `env:"LOG_FORMAT,default=text"`
}

// InsightConfig controls the optional external sentiment model.
type InsightConfig struct {
	ModelURL string `env:"INSIGHT_MODEL_URL"`
	ModelKey string `env:"INSIGHT_MODEL_KEY"`
}

// Load reads configuration from the environment. A local .env file is applied
// first when present.
func Load() (*Config, error) {
	_ = godotenv.Load() // allow .env for local runs

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT out of range: %d", cfg.Server.Port)
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	return &cfg, nil
}

// Origins splits the configured CORS origins list.
func (c ServerConfig) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
