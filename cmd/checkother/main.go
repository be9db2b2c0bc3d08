// Package main audits the OTHER bucket: it prints the posts the keyword
// tables failed to classify so the tables can be tuned.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vocradar/vocradar/internal/classify"
	"github.com/vocradar/vocradar/internal/config"
	"github.com/vocradar/vocradar/internal/models"
	"github.com/vocradar/vocradar/internal/storage"
)

func main() {
	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	sample := flag.Int("sample", 50, "number of OTHER posts to list")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	topics, err := config.LoadTopics(cfg.TopicsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load topic tables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := storage.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer store.Close(ctx)

	posts, err := store.QueryRecent(ctx, cfg.RecentLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to query posts")
	}

	cls := classify.New(topics.Topics, topics.NegativeWords)

	var others []models.Post
	negCount := 0
	for i := range posts {
		text := posts[i].CombinedText()
		if topic, _ := cls.Classify(text); topic != classify.TopicOther {
			continue
		}
		others = append(others, posts[i])
		if cls.IsNegative(text) {
			negCount++
		}
	}

	fmt.Printf("[OTHER] %d posts (neg=%d)\n\n", len(others), negCount)

	// Leading title words hint at recurring patterns worth a keyword.
	headCounts := make(map[string]int)
	for i := range others {
		fields := strings.Fields(others[i].Title)
		if len(fields) > 0 {
			headCounts[fields[0]]++
		}
	}
	type headCount struct {
		word  string
		count int
	}
	heads := make([]headCount, 0, len(headCounts))
	for w, c := range headCounts {
		heads = append(heads, headCount{w, c})
	}
	sort.SliceStable(heads, func(i, j int) bool { return heads[i].count > heads[j].count })

	fmt.Println("[OTHER title head top10]")
	for i, h := range heads {
		if i >= 10 {
			break
		}
		fmt.Printf("- %s: %d\n", h.word, h.count)
	}
	fmt.Println()

	fmt.Println("[SAMPLE OTHER LIST]")
	for i := range others {
		if i >= *sample {
			break
		}
		title := others[i].Title
		if runes := []rune(title); len(runes) > 60 {
			title = string(runes[:60])
		}
		negTag := ""
		if cls.IsNegative(others[i].CombinedText()) {
			negTag = " (NEG)"
		}
		fmt.Printf("%02d. %s%s\n", i+1, title, negTag)
		fmt.Printf("    %s\n", others[i].URL)
	}
}
