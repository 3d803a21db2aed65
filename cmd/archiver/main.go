package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"FXArchive/internal/archive"
	"FXArchive/internal/config"
	"FXArchive/internal/fetcher"
	"FXArchive/internal/journal"
	"FXArchive/internal/notifier"
	"FXArchive/internal/scheduler"
	"FXArchive/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] FXArchive starting...")

	// .env is optional; variables already in the environment win.
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	av := fetcher.NewAlphaVantage(cfg.Source.BaseURL, cfg.Source.APIKey, cfg.Proxy,
		time.Duration(cfg.Source.TimeoutSeconds)*time.Second)
	av.OutputSize = cfg.Source.OutputSize
	log.Printf("[INFO] data source: %s", av.Name())

	// Init stores
	var stores []store.Store
	if cfg.Output.Format == config.FormatCSV || cfg.Output.Format == config.FormatBoth {
		stores = append(stores, store.NewCSVStore(cfg.CSVPath()))
	}
	if cfg.Output.Format == config.FormatParquet || cfg.Output.Format == config.FormatBoth {
		stores = append(stores, store.NewParquetStore(cfg.ParquetPath()))
	}

	// Init journal
	var jnl journal.Journal
	if cfg.Database.SQLitePath != "" {
		sj, err := journal.NewSQLiteJournal(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite journal failed, using noop: %v", err)
			jnl = journal.NewNoopJournal()
		} else {
			jnl = sj
			defer sj.Close()
		}
	} else {
		jnl = journal.NewNoopJournal()
	}

	arch := archive.NewArchiver(av, stores, jnl, cfg.Source.FromSymbol, cfg.Source.ToSymbol)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One-shot mode: no cron spec configured.
	if cfg.Schedule.DailyCron == "" {
		summary, err := arch.Run(ctx)
		if err != nil {
			log.Fatalf("[FATAL] archive run: %v", err)
		}
		fmt.Println(summary.Format())
		return
	}

	// Daemon mode
	wn := notifier.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Proxy)
	sched := scheduler.NewScheduler(ctx, arch, wn)
	if err := sched.RegisterDaily(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if last, err := jnl.RecentRuns(1); err == nil && len(last) == 1 {
		log.Printf("[INFO] last run: %s %s (%d rows) at %s",
			last[0].Status, last[0].Pair, last[0].Rows,
			last[0].Timestamp.Format("2006-01-02 15:04"))
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing archive now")
		go sched.RunNow()
	}

	log.Println("[INFO] FXArchive is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] FXArchive stopped")
}
