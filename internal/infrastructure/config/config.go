package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=3500"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AllowedOrigins is the CORS allow list. Credentials are always enabled
	// because the refresh cookie flows cross-site.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=http://localhost:3000"`

	// LoginRPM caps login attempts per client IP per minute.
	LoginRPM int `env:"LOGIN_RPM, default=10"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	// The two signing secrets must be distinct, high-entropy values
	// provisioned out of band.
	AccessTokenSecret  string `env:"ACCESS_TOKEN_SECRET,  required"`
	RefreshTokenSecret string `env:"REFRESH_TOKEN_SECRET, required"`
	AuditLogPath       string `env:"AUTH_AUDIT_LOG, default=logs/auth_audit.log"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=notes2025"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
	// NotesCacheTTLSeconds bounds the staleness window of the notes listing.
	NotesCacheTTLSeconds int `env:"NOTES_CACHE_TTL_SECONDS, default=60"`
}

// NotesCacheTTL returns the listing cache TTL as a duration.
func (c RedisConfig) NotesCacheTTL() time.Duration {
	return time.Duration(c.NotesCacheTTLSeconds) * time.Second
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.AccessTokenSecret == cfg.Auth.RefreshTokenSecret {
		return nil, fmt.Errorf("config: access and refresh token secrets must differ")
	}
	return &cfg, nil
}
