package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv(envHome, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.Driver != "sqlite3" {
		t.Errorf("expected default driver sqlite3, got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.ReplaceUnreadable {
		t.Errorf("expected unreadable notebooks to be protected by default")
	}
	if cfg.Storage.Key != "vocnote_data" {
		t.Errorf("expected default key vocnote_data, got %q", cfg.Storage.Key)
	}
	if cfg.Autosave.Interval != 5*time.Minute {
		t.Errorf("expected autosave interval 5m, got %v", cfg.Autosave.Interval)
	}
	if !cfg.Seed.Examples {
		t.Errorf("expected example seeding to default on")
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Setenv(envHome, dir)
	file := filepath.Join(dir, "custom.yaml")
	content := "storage:\n  driver: postgres\n  dsn: postgres://u:p@localhost/voc\nautosave:\n  interval: 30s\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	viper.Set(FileKey, file)
	t.Setenv("VOCNOTE_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	driver, err := cfg.DatabaseDriver()
	if err != nil || driver != "postgres" {
		t.Fatalf("expected postgres driver, got %q (%v)", driver, err)
	}
	if cfg.Autosave.Interval != 30*time.Second {
		t.Errorf("expected 30s interval, got %v", cfg.Autosave.Interval)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected env override of log level, got %q", cfg.Log.Level)
	}
}

func TestDatabaseURL(t *testing.T) {
	t.Setenv(envHome, t.TempDir())

	cfg := &Config{Storage: StorageConfig{Driver: "sqlite"}}
	dsn, err := cfg.DatabaseURL()
	if err != nil {
		t.Fatalf("DatabaseURL returned error: %v", err)
	}
	if !strings.HasPrefix(dsn, "file:") || !strings.Contains(dsn, dbFilename) {
		t.Errorf("unexpected sqlite dsn %q", dsn)
	}

	cfg = &Config{Storage: StorageConfig{Driver: "pgx"}}
	if _, err := cfg.DatabaseURL(); err == nil {
		t.Errorf("expected error for pgx without dsn")
	}

	cfg = &Config{Storage: StorageConfig{Driver: "mysql"}}
	if _, err := cfg.DatabaseDriver(); err == nil {
		t.Errorf("expected unsupported driver error")
	}
}

func TestLocation(t *testing.T) {
	cfg := &Config{}
	loc, err := cfg.Location()
	if err != nil || loc != time.Local {
		t.Fatalf("expected local location, got %v (%v)", loc, err)
	}
	cfg.Review.Timezone = "UTC"
	loc, err = cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %v (%v)", loc, err)
	}
	cfg.Review.Timezone = "Nowhere/Invalid"
	if _, err := cfg.Location(); err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}
