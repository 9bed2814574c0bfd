package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("unexpected default base URL: %s", cfg.BaseURL)
	}
	if cfg.Auth.LockoutThreshold != 5 {
		t.Errorf("expected lockout threshold 5, got %d", cfg.Auth.LockoutThreshold)
	}
	if cfg.Auth.LockoutWindow != 15*time.Minute {
		t.Errorf("expected 15m lockout window, got %v", cfg.Auth.LockoutWindow)
	}
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	t.Setenv("BASE_URL", "not a url")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for malformed BASE_URL")
	}
}

func TestLoad_InvalidLockoutThreshold(t *testing.T) {
	t.Setenv("LOCKOUT_THRESHOLD", "0")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for zero lockout threshold")
	}
}

func TestBaseOrigin(t *testing.T) {
	t.Setenv("BASE_URL", "https://courtside.example.com")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	origin := cfg.BaseOrigin()
	if origin.Scheme != "https" || origin.Host != "courtside.example.com" {
		t.Errorf("unexpected origin: %s", origin)
	}
}

func TestDSN_BuildsFromFields(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		User:     "courtside",
		Password: "p@ss/word",
		Name:     "courtside",
	}

	dsn := d.DSN()
	if !strings.Contains(dsn, "db.internal:3306") {
		t.Errorf("expected default port appended, got %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("expected parseTime=true, got %s", dsn)
	}
}

func TestDSN_OverrideWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "courtside:secret@tcp(override:3306)/courtside?parseTime=true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.DSN() != "courtside:secret@tcp(override:3306)/courtside?parseTime=true" {
		t.Errorf("expected DATABASE_URL to take precedence, got %s", cfg.Database.DSN())
	}
}
