// Package main runs one crawl cycle: collect the board list, fetch each
// post, and store new records.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vocradar/vocradar/internal/config"
	"github.com/vocradar/vocradar/internal/fetcher"
	"github.com/vocradar/vocradar/internal/ingest"
	"github.com/vocradar/vocradar/internal/storage"
)

func main() {
	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.ForumListURL == "" {
		log.Fatal().Msg("FORUM_LIST_URL environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	store, err := storage.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer store.Close(ctx)

	client := fetcher.NewClient(cfg.ForumListURL, cfg.FetchLimit, cfg.FetchDelay)

	res, err := ingest.Run(ctx, client, store)
	if err != nil {
		log.Fatal().Err(err).Msg("Crawl failed")
	}

	fmt.Printf("\nCrawl complete!\n")
	fmt.Printf("   Saved:   %d posts\n", res.Saved)
	fmt.Printf("   Skipped: %d posts\n", res.Skipped)
	fmt.Printf("   Failed:  %d posts\n", res.Failed)
}
