package config

import (
	"context"
	"testing"
	"time"
)

func setRequiredSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredSecrets(t)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Port != "3500" {
		t.Fatalf("default port: %s", cfg.Port)
	}
	if cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("default env/level: %s/%s", cfg.Env, cfg.LogLevel)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("default origins: %v", cfg.AllowedOrigins)
	}
	if cfg.LoginRPM != 10 {
		t.Fatalf("default login rpm: %d", cfg.LoginRPM)
	}
	if cfg.Mongo.Database != "notes2025" {
		t.Fatalf("default mongo db: %s", cfg.Mongo.Database)
	}
	if cfg.Redis.NotesCacheTTL() != time.Minute {
		t.Fatalf("default cache ttl: %s", cfg.Redis.NotesCacheTTL())
	}
	if cfg.Auth.AuditLogPath != "logs/auth_audit.log" {
		t.Fatalf("default audit path: %s", cfg.Auth.AuditLogPath)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("PORT", "8080")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com,https://admin.example.com")
	t.Setenv("NOTES_CACHE_TTL_SECONDS", "120")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port override: %s", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("origin list override: %v", cfg.AllowedOrigins)
	}
	if cfg.Redis.NotesCacheTTL() != 2*time.Minute {
		t.Fatalf("cache ttl override: %s", cfg.Redis.NotesCacheTTL())
	}
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error when signing secrets are absent")
	}
}

func TestLoad_EqualSecretsRejected(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "same-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "same-secret")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error when both secrets match")
	}
}
