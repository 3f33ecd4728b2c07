package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bibliopi/bibliopi/internal/api"
	"github.com/bibliopi/bibliopi/internal/backup"
	"github.com/bibliopi/bibliopi/internal/config"
	"github.com/bibliopi/bibliopi/internal/state"
	"github.com/bibliopi/bibliopi/internal/storage"
)

func main() {
	// Command-line flags
	urlFlag := flag.String("url", "", "Server bind address (e.g., :8080 or 0.0.0.0:8080)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Determine bind address: flag takes precedence over env
	bindAddr := cfg.Addr
	if *urlFlag != "" {
		bindAddr = *urlFlag
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Pick the state slot: Postgres when configured, local SQLite otherwise
	var slot storage.Slot
	if cfg.PostgresURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slot, err = storage.NewPostgresSlot(ctx, cfg.PostgresURL)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
	} else {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		slot, err = storage.NewSQLiteSlot(filepath.Join(cfg.DataDir, "bibliopi.db"))
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
	}

	adapter := storage.NewAdapter(slot)
	defer adapter.Close()

	store := state.NewStore(adapter.Load(), adapter)

	if st := store.State(); backup.DueForBackup(st.BackupSettings, time.Now()) {
		log.Printf("Scheduled backup is due; export it from Settings or GET /api/backup")
	}

	handler := api.NewHandler(store)
	r := api.NewRouter(handler)

	log.Printf("bibliopi listening on %s", bindAddr)
	if err := r.Run(bindAddr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
