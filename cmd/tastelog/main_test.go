package main

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/tastelog/tastelog/internal/observability"
)

func testLogger() *observability.Logger {
	return observability.NewLogger("test", io.Discard, slog.LevelError)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("TASTELOG_DATA", "")
	t.Setenv("TASTELOG_ADDR", "")
	t.Setenv("TASTELOG_LOG_LEVEL", "")

	cfg := loadConfig()
	if cfg.DataDir == "" {
		t.Error("DataDir empty")
	}
	if cfg.Addr != "127.0.0.1:8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TASTELOG_DATA", t.TempDir())
	t.Setenv("TASTELOG_ADDR", "127.0.0.1:9999")
	t.Setenv("TASTELOG_LOG_LEVEL", "debug")

	cfg := loadConfig()
	if cfg.Addr != "127.0.0.1:9999" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{DataDir: dir, Addr: "127.0.0.1:0"}

	store, kv, err := openStore(cfg, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer kv.Close()

	if !store.Ready() {
		t.Error("store not ready after openStore")
	}
	if _, err := os.Stat(dir + "/tastelog.db"); err != nil {
		t.Errorf("database file missing: %v", err)
	}
}
