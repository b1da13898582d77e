// Package main is the entry point for the tastelog service.
//
// Usage:
//
//	tastelog serve             — start the HTTP API
//	tastelog stats             — print stored collection sizes
//	tastelog clear             — wipe all stored data
//	tastelog version           — print version
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tastelog/tastelog/internal/api"
	"github.com/tastelog/tastelog/internal/draft"
	"github.com/tastelog/tastelog/internal/journal"
	"github.com/tastelog/tastelog/internal/kvstore"
	"github.com/tastelog/tastelog/internal/observability"
	"github.com/tastelog/tastelog/internal/recordstore"
)

const (
	version = "0.1.0"
	appName = "tastelog"
)

// Config holds the service configuration.
type Config struct {
	DataDir  string
	Addr     string
	LogLevel string
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch cmd := os.Args[1]; cmd {
	case "serve":
		runServe()
	case "stats":
		runStats()
	case "clear":
		runClear()
	case "version":
		fmt.Printf("%s v%s\n", appName, version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `%s v%s — tasting journal service

Usage:
  %s <command>

Commands:
  serve      Start the HTTP API
  stats      Print stored item and event counts
  clear      Delete all stored data and re-initialize
  version    Print version

Environment variables (also read from .env):
  TASTELOG_DATA       Data directory (default: ~/.tastelog)
  TASTELOG_ADDR       API listen address (default: 127.0.0.1:8080)
  TASTELOG_LOG_LEVEL  Log level: debug, info, warn, error (default: info)

`, appName, version, appName)
}

func loadConfig() Config {
	// A missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	dataDir := os.Getenv("TASTELOG_DATA")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dataDir = filepath.Join(home, ".tastelog")
	}

	addr := os.Getenv("TASTELOG_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	return Config{
		DataDir:  dataDir,
		Addr:     addr,
		LogLevel: os.Getenv("TASTELOG_LOG_LEVEL"),
	}
}

// openStore builds the storage stack: SQLite KV medium, record store on top.
func openStore(cfg Config, log *observability.Logger) (*recordstore.Store, *kvstore.SQLiteKV, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	kv, err := kvstore.NewSQLiteKV(filepath.Join(cfg.DataDir, "tastelog.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}

	store := recordstore.New(kv, log.WithComponent("recordstore"))
	if err := store.Initialize(context.Background()); err != nil {
		kv.Close()
		return nil, nil, err
	}
	return store, kv, nil
}

func runServe() {
	cfg := loadConfig()
	log := observability.NewLogger("main", nil, observability.ParseLevel(cfg.LogLevel))

	store, kv, err := openStore(cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	server := api.NewServer(
		journal.New(store),
		store,
		draft.NewHolder(),
		log.WithComponent("api"),
	)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("listening", "addr", cfg.Addr, "data_dir", cfg.DataDir)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}

func runStats() {
	cfg := loadConfig()
	log := observability.NewLogger("main", nil, observability.ParseLevel(cfg.LogLevel))

	store, kv, err := openStore(cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	stats, err := store.Stats(context.Background())
	if err != nil {
		log.Error("stats failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("items:  %d\nevents: %d\n", stats.Items, stats.Events)
}

func runClear() {
	cfg := loadConfig()
	log := observability.NewLogger("main", nil, observability.ParseLevel(cfg.LogLevel))

	store, kv, err := openStore(cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	if err := store.ClearAll(context.Background()); err != nil {
		log.Error("clear failed", "error", err)
		os.Exit(1)
	}
	fmt.Println("all data cleared")
}
