package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("REDIS_PASS", "pass")
	t.Setenv("DIRECTORY_API_URL", "http://localhost:8080")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != ":1812" {
		t.Errorf("ListenAddr: got %q, want %q", cfg.ListenAddr, ":1812")
	}
	if cfg.SyncIntervalSec != 60 {
		t.Errorf("SyncIntervalSec: got %d, want 60", cfg.SyncIntervalSec)
	}
	if !cfg.LogMaskUsername {
		t.Error("LogMaskUsername: got false, want true")
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("REDIS_PASS", "")
	t.Setenv("DIRECTORY_API_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error for missing DIRECTORY_API_URL")
	}
}

func TestLoadInvalidDirectoryURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DIRECTORY_API_URL", "ftp://example.com")

	if _, err := Load(); err == nil {
		t.Error("expected error for non-http URL")
	}
}

func TestLoadInvalidSyncInterval(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SYNC_INTERVAL_SEC", "0")

	if _, err := Load(); err == nil {
		t.Error("expected error for zero sync interval")
	}
}

func TestValkeyAddr(t *testing.T) {
	cfg := &Config{RedisHost: "valkey", RedisPort: "6380"}
	if got := cfg.ValkeyAddr(); got != "valkey:6380" {
		t.Errorf("ValkeyAddr: got %q, want %q", got, "valkey:6380")
	}
}

func TestSyncInterval(t *testing.T) {
	cfg := &Config{SyncIntervalSec: 90}
	if got := cfg.SyncInterval(); got != 90*time.Second {
		t.Errorf("SyncInterval: got %v, want %v", got, 90*time.Second)
	}
}
