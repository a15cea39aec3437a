package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tatianab/petcare/internal/config"
	"github.com/tatianab/petcare/internal/engine"
	"github.com/tatianab/petcare/internal/logger"
	"github.com/tatianab/petcare/internal/session"
	"github.com/tatianab/petcare/internal/store"
	"github.com/tatianab/petcare/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := logger.New(logFile, cfg.LogLevel)

	var st store.Store
	switch cfg.Store {
	case config.StoreSQLite:
		st, err = store.NewSQLiteStore(cfg.SQLitePath())
	default:
		st, err = store.NewFileStore(cfg.SaveDir)
	}
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	opts := []engine.Option{engine.WithLogger(log)}
	if cfg.GeminiAPIKey != "" {
		teller, err := engine.NewGeminiStoryteller(ctx, cfg.GeminiAPIKey)
		if err != nil {
			fmt.Printf("Error creating storyteller: %v\n", err)
			os.Exit(1)
		}
		defer teller.Close()
		opts = append(opts, engine.WithStoryteller(teller))
	}

	sess := session.New(engine.NewEngine(opts...), st, log)
	if err := sess.Open(ctx); err != nil {
		fmt.Printf("Error loading pet: %v\n", err)
		os.Exit(1)
	}
	log.Info("petcare started", "store", cfg.Store, "save_dir", cfg.SaveDir, "storyteller", cfg.GeminiAPIKey != "")

	if err := tui.Run(sess); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
