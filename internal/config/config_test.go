package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AppName != "studybuddy-backend" {
		t.Errorf("AppName = %q", cfg.AppName)
	}
	if cfg.Address() != "0.0.0.0:8080" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.Auth.SessionTTL)
	}
	if cfg.Gamification.StreakOncePerDay {
		t.Error("StreakOncePerDay should default to false")
	}
	if cfg.Database.URL == "" {
		t.Error("Database.URL not derived from parts")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("GAMIFICATION_STREAK_ONCE_PER_DAY", "true")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app?sslmode=disable")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTP.Port != "9000" {
		t.Errorf("Port = %q", cfg.HTTP.Port)
	}
	if !cfg.Gamification.StreakOncePerDay {
		t.Error("StreakOncePerDay override not applied")
	}
	if cfg.Auth.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v", cfg.Auth.SessionTTL)
	}
	if cfg.Database.URL != "postgres://u:p@db:5432/app?sslmode=disable" {
		t.Errorf("Database.URL = %q", cfg.Database.URL)
	}
}

func TestGetDuration_BareSecondsFallback(t *testing.T) {
	t.Setenv("SYNC_INTERVAL_SECONDS", "45")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Buffer.SyncInterval != 45*time.Second {
		t.Errorf("SyncInterval = %v, want 45s", cfg.Buffer.SyncInterval)
	}
}
