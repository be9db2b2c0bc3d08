// Package main writes the issue-ranking TOP10 section of the daily report,
// creating the report skeleton on the first run of the day.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vocradar/vocradar/internal/classify"
	"github.com/vocradar/vocradar/internal/config"
	"github.com/vocradar/vocradar/internal/report"
	"github.com/vocradar/vocradar/internal/storage"
)

func main() {
	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	date := flag.String("date", "", "report date (YYYY-MM-DD), defaults to today UTC")
	flag.Parse()

	day := *date
	if day == "" {
		day = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", day); err != nil {
		log.Fatal().Str("date", day).Msg("Date must be formatted YYYY-MM-DD")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	topics, err := config.LoadTopics(cfg.TopicsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load topic tables")
	}
	templates, err := config.LoadTemplates(cfg.TemplatesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load card templates")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := storage.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer store.Close(ctx)

	cls := classify.New(topics.Topics, topics.NegativeWords)
	gen := report.NewGenerator(store, cls, templates, cfg.ReportsDir, cfg.RecentLimit)

	if err := gen.GenerateTop10(ctx, day); err != nil {
		log.Fatal().Err(err).Msg("Failed to write TOP10 section")
	}
}
