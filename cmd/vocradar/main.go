// VOC Radar - community voice-of-customer monitoring.
// Crawls forum posts, classifies them into VOC topics, and maintains a
// daily markdown report.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vocradar/vocradar/internal/api"
	"github.com/vocradar/vocradar/internal/classify"
	"github.com/vocradar/vocradar/internal/config"
	"github.com/vocradar/vocradar/internal/fetcher"
	"github.com/vocradar/vocradar/internal/ingest"
	"github.com/vocradar/vocradar/internal/report"
	"github.com/vocradar/vocradar/internal/scheduler"
	"github.com/vocradar/vocradar/internal/storage"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	log.Info().Msg("VOC Radar - Starting report engine")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Load keyword/template tables
	topics, err := config.LoadTopics(cfg.TopicsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load topic tables")
	}
	templates, err := config.LoadTemplates(cfg.TemplatesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load card templates")
	}
	log.Info().Int("topics", len(topics.Topics)).Msg("Keyword tables loaded")

	ctx := context.Background()

	// Initialize storage
	store, err := storage.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer store.Close(ctx)

	// Initialize core engine
	cls := classify.New(topics.Topics, topics.NegativeWords)
	generator := report.NewGenerator(store, cls, templates, cfg.ReportsDir, cfg.RecentLimit)
	log.Info().Msg("Report generator initialized")

	// Initialize forum client
	client := fetcher.NewClient(cfg.ForumListURL, cfg.FetchLimit, cfg.FetchDelay)

	// Initialize scheduler
	sched := scheduler.NewScheduler()

	if cfg.ForumListURL != "" {
		sched.AddJob(&scheduler.Job{
			Name: "crawl",
			Schedule: scheduler.Schedule{
				Type:     scheduler.ScheduleInterval,
				Interval: cfg.FetchInterval,
			},
			Handler: func(ctx context.Context) error {
				_, err := ingest.Run(ctx, client, store)
				return err
			},
		})
	}

	sched.AddJob(&scheduler.Job{
		Name: "daily-report",
		Schedule: scheduler.Schedule{
			Type: scheduler.ScheduleDaily,
			Hour: cfg.ReportHour,
		},
		Handler: func(ctx context.Context) error {
			day := time.Now().UTC().Format("2006-01-02")
			return generator.RunDaily(ctx, day)
		},
	})

	// Initialize API server
	apiServer := api.NewServer(store, generator, sched, cfg.ReportsDir, cfg.HTTPAddr)

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start services
	go func() {
		if err := apiServer.Start(); err != nil {
			log.Error().Err(err).Msg("API server error")
		}
	}()
	sched.Start()

	log.Info().
		Str("api", cfg.HTTPAddr).
		Msg("VOC Radar engine running")

	// Wait for shutdown signal
	<-sigChan
	log.Info().Msg("Shutdown signal received")

	// Graceful shutdown
	shutdownCtx := context.Background()
	sched.Stop()
	apiServer.Shutdown(shutdownCtx)

	log.Info().Msg("VOC Radar engine stopped")
}
