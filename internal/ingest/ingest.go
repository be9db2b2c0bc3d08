// Package ingest runs one crawl cycle: collect the list page, fetch each
// post, and insert new records into storage.
package ingest

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vocradar/vocradar/internal/fetcher"
	"github.com/vocradar/vocradar/internal/storage"
)

// Result counts the outcome of a crawl cycle. Skipped covers duplicate
// URLs already in storage; Failed covers fetch errors and unparseable
// pages. Both are tolerated, counted conditions, not run failures.
type Result struct {
	Saved   int `json:"saved"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Run executes one full crawl cycle. It only returns an error when the
// list page itself cannot be collected; per-post problems are counted in
// the Result and processing continues.
func Run(ctx context.Context, client *fetcher.Client, store *storage.Store) (Result, error) {
	var res Result

	urls, err := client.CollectList(ctx)
	if err != nil {
		return res, err
	}
	log.Info().Int("urls", len(urls)).Msg("Collected post URLs")

	for i, u := range urls {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		if i > 0 {
			client.Pause(ctx)
		}

		post, err := client.FetchPost(ctx, u)
		if err != nil {
			res.Failed++
			log.Warn().Err(err).Str("url", u).Msg("Skipping post")
			continue
		}

		inserted, err := store.InsertIfAbsent(ctx, post)
		if err != nil {
			res.Failed++
			log.Warn().Err(err).Str("url", u).Msg("Failed to store post")
			continue
		}
		if inserted {
			res.Saved++
			log.Debug().Str("title", post.Title).Msg("Saved post")
		} else {
			res.Skipped++
		}
	}

	log.Info().
		Int("saved", res.Saved).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Msg("Crawl cycle finished")
	return res, nil
}
