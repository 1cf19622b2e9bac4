package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Address() != "0.0.0.0:8080" {
		t.Errorf("Expected default address 0.0.0.0:8080, got %s", cfg.Server.Address())
	}
	if cfg.Watch.Interval != 5*time.Second {
		t.Errorf("Expected default watch interval 5s, got %s", cfg.Watch.Interval)
	}
	if cfg.Wait.MaxWait != 60*time.Second {
		t.Errorf("Expected default max wait 60s, got %s", cfg.Wait.MaxWait)
	}
	if cfg.Wait.CheckInterval != 2*time.Second {
		t.Errorf("Expected default check interval 2s, got %s", cfg.Wait.CheckInterval)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PG_HOST", "db.internal")
	t.Setenv("PG_PORT", "5433")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("API_BASE_URL", "http://api:9000")
	t.Setenv("POLL_INTERVAL", "10s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Postgres.Host != "db.internal" || cfg.Postgres.Port != 5433 {
		t.Errorf("Postgres env override not applied: %+v", cfg.Postgres)
	}
	if cfg.Redis.Addr() != "cache.internal:6379" {
		t.Errorf("Expected redis addr cache.internal:6379, got %s", cfg.Redis.Addr())
	}
	if cfg.Watch.BaseURL != "http://api:9000" {
		t.Errorf("Expected base URL override, got %s", cfg.Watch.BaseURL)
	}
	if cfg.Watch.Interval != 10*time.Second {
		t.Errorf("Expected watch interval 10s, got %s", cfg.Watch.Interval)
	}
}

func TestLoadBareSecondsDuration(t *testing.T) {
	// The shell tooling this replaces exported MAX_WAIT=6 (plain seconds).
	t.Setenv("MAX_WAIT", "6")
	t.Setenv("CHECK_INTERVAL", "2")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Wait.MaxWait != 6*time.Second {
		t.Errorf("Expected max wait 6s, got %s", cfg.Wait.MaxWait)
	}
	if cfg.Wait.CheckInterval != 2*time.Second {
		t.Errorf("Expected check interval 2s, got %s", cfg.Wait.CheckInterval)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 9090\npostgres:\n  host: filedb\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090 from file, got %d", cfg.Server.Port)
	}
	if cfg.Postgres.Host != "filedb" {
		t.Errorf("Expected postgres host filedb, got %s", cfg.Postgres.Host)
	}

	// Env still wins over the file.
	t.Setenv("PG_HOST", "envdb")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Postgres.Host != "envdb" {
		t.Errorf("Expected env to override file, got %s", cfg.Postgres.Host)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}
