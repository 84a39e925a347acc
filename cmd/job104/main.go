package main

import (
	"context"
	"log"
	"os"

	"job104-crawler/internal/app"
	"job104-crawler/internal/config"
	"job104-crawler/internal/fetcher"
	"job104-crawler/internal/observability"
	"job104-crawler/internal/scraper"
)

func main() {
	// optional YAML overlay; defaults need no file
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := observability.NewLogger(observability.Options{
		LogPath:    cfg.Observability.LogPath,
		LogLevel:   cfg.Observability.LogLevel,
		MaxSizeMB:  cfg.Observability.LogMaxSizeMB,
		MaxBackups: cfg.Observability.LogMaxBackups,
		MaxAgeDays: cfg.Observability.LogMaxAgeDays,
	})
	defer func() { _ = logger.Close() }()

	ctx, stop := app.SignalContext(context.Background(), logger)
	defer stop()

	var source fetcher.PageSource = fetcher.NewFetcher(cfg, logger)
	if cfg.Rod.Enabled {
		bf, err := fetcher.NewBrowserFetcher(cfg, logger)
		if err != nil {
			log.Fatalf("Failed to start browser: %v", err)
		}
		defer func() { _ = bf.Close() }()
		source = bf
	}

	archive, err := app.OpenArchive(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}
	if archive != nil {
		defer func() { _ = archive.Close() }()
	}

	scr := scraper.NewScraper(cfg.Selectors, cfg.Site.LinkScheme)
	orch := app.NewOrchestrator(logger, source, scr, cfg.Site.SearchURL, os.Stdout)
	session := app.NewSession(cfg, logger, orch, archive, os.Stdin, os.Stdout)

	if err := session.Run(ctx); err != nil {
		logger.Error("Run failed", "error", err.Error())
		log.Fatalf("Run failed: %v", err)
	}
}
