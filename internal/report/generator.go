// Package report produces the daily VOC report: it classifies stored
// posts, computes rankings and deltas, renders markdown fragments, and
// upserts them into the day's report document. Every entry point shares
// this generator, so each run owns exactly one section of the document.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/vocradar/vocradar/internal/classify"
	"github.com/vocradar/vocradar/internal/config"
	"github.com/vocradar/vocradar/internal/document"
	"github.com/vocradar/vocradar/internal/models"
	"github.com/vocradar/vocradar/internal/ranking"
	"github.com/vocradar/vocradar/internal/storage"
)

// Section headers. Merge targeting is by exact literal text, so these are
// the single source of truth for the report layout.
const (
	SectionTop10      = "## Today's Issue TOP10"
	SectionTrending   = "## Rising TOP3 (vs yesterday)"
	SectionCards      = "## Issue → Action Cards"
	SectionHighlights = "## Today's New Post Highlights (TOP3)"

	reportTitle = "VOC Radar Report"
)

// SkeletonHeaders is the fixed three-section scaffold created on the first
// run of a day. The highlights section is appended by its own run.
var SkeletonHeaders = []string{SectionTop10, SectionTrending, SectionCards}

// Generator creates report sections from stored posts.
type Generator struct {
	store       *storage.Store
	cls         *classify.Classifier
	tpl         *config.Templates
	reportsDir  string
	recentLimit int
}

// NewGenerator creates a new report generator.
func NewGenerator(store *storage.Store, cls *classify.Classifier, tpl *config.Templates, reportsDir string, recentLimit int) *Generator {
	return &Generator{
		store:       store,
		cls:         cls,
		tpl:         tpl,
		reportsDir:  reportsDir,
		recentLimit: recentLimit,
	}
}

// ReportPath returns the report file path for a calendar day (2006-01-02).
func (g *Generator) ReportPath(day string) string {
	return filepath.Join(g.reportsDir, day+".md")
}

// EnsureSkeleton loads the day's report, creating the fixed skeleton if the
// file does not exist yet.
func (g *Generator) EnsureSkeleton(day string) (*document.Document, error) {
	path := g.ReportPath(day)
	if _, err := os.Stat(path); err == nil {
		return document.Load(path)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat report %s: %w", path, err)
	}

	doc := document.Skeleton(reportTitle, day, SkeletonHeaders)
	if err := doc.Save(path); err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Msg("Created report skeleton")
	return doc, nil
}

// classify derives the full tag for one post's text.
func (g *Generator) classify(text string) models.Classification {
	topic, hits := g.cls.Classify(text)
	return models.Classification{
		Topic:    topic,
		Hits:     hits,
		Negative: g.cls.IsNegative(text),
	}
}

// classifyAll tags every post and returns the aggregate plus posts grouped
// by topic. The input is newest-first from storage, so the per-topic lists
// stay newest-first too; card evidence relies on that order.
func (g *Generator) classifyAll(posts []models.Post) (*ranking.Aggregate, map[string][]models.Post) {
	agg := ranking.NewAggregate()
	byTopic := make(map[string][]models.Post)

	for i := range posts {
		tag := g.classify(posts[i].CombinedText())
		agg.Add(tag.Topic, tag.Negative)
		byTopic[tag.Topic] = append(byTopic[tag.Topic], posts[i])
	}
	return agg, byTopic
}

// GenerateTop10 computes the issue ranking over the most recent posts and
// upserts the TOP10 section of the day's report.
func (g *Generator) GenerateTop10(ctx context.Context, day string) error {
	posts, err := g.store.QueryRecent(ctx, g.recentLimit)
	if err != nil {
		return fmt.Errorf("failed to query posts: %w", err)
	}

	agg, _ := g.classifyAll(posts)
	top := agg.TopN(10)

	doc, err := g.EnsureSkeleton(day)
	if err != nil {
		return err
	}
	doc.Upsert(SectionTop10, renderTop10(top, agg))
	if err := doc.Save(g.ReportPath(day)); err != nil {
		return err
	}

	log.Info().
		Str("day", day).
		Int("posts", len(posts)).
		Int("topics", len(top)).
		Float64("noise_ratio", agg.NoiseRatio()).
		Msg("TOP10 section written")
	return nil
}

// GenerateTrending compares the two most recent distinct days in storage
// and upserts the rising-topics section. The day's report must already
// exist; a missing skeleton is a missing prerequisite, not something this
// run creates.
func (g *Generator) GenerateTrending(ctx context.Context, day string) error {
	path := g.ReportPath(day)
	doc, err := document.Load(path)
	if err != nil {
		return fmt.Errorf("report skeleton missing, run the TOP10 step first: %w", err)
	}

	res, err := g.dayOverDay(ctx)
	if err != nil {
		return err
	}

	doc.Upsert(SectionTrending, renderDelta(res))
	if err := doc.Save(path); err != nil {
		return err
	}

	log.Info().
		Str("day", day).
		Stringer("state", res.State).
		Msg("Rising TOP3 section written")
	return nil
}

// dayOverDay classifies the two most recent distinct days and computes the
// delta ranking, or the explicit insufficient-data result when storage
// holds fewer than two days.
func (g *Generator) dayOverDay(ctx context.Context) (ranking.DeltaResult, error) {
	dates, err := g.store.DistinctDates(ctx)
	if err != nil {
		return ranking.DeltaResult{}, fmt.Errorf("failed to list distinct dates: %w", err)
	}
	if len(dates) < 2 {
		return ranking.InsufficientDelta(), nil
	}

	todayDate, ydayDate := dates[0], dates[1]

	aggFor := func(ymd string) (*ranking.Aggregate, error) {
		posts, err := g.store.QueryByDate(ctx, ymd)
		if err != nil {
			return nil, fmt.Errorf("failed to query posts for %s: %w", ymd, err)
		}
		agg, _ := g.classifyAll(posts)
		return agg, nil
	}

	today, err := aggFor(todayDate)
	if err != nil {
		return ranking.DeltaResult{}, err
	}
	yesterday, err := aggFor(ydayDate)
	if err != nil {
		return ranking.DeltaResult{}, err
	}

	return ranking.DayOverDay(today, yesterday, todayDate, ydayDate, 3), nil
}

// GenerateCards builds issue→action cards for the top-3 topics and upserts
// the cards section of the day's report.
func (g *Generator) GenerateCards(ctx context.Context, day string) error {
	posts, err := g.store.QueryRecent(ctx, g.recentLimit)
	if err != nil {
		return fmt.Errorf("failed to query posts: %w", err)
	}

	agg, byTopic := g.classifyAll(posts)
	cards := g.buildCards(agg.TopN(3), byTopic)

	doc, err := g.EnsureSkeleton(day)
	if err != nil {
		return err
	}
	doc.Upsert(SectionCards, renderCards(cards))
	if err := doc.Save(g.ReportPath(day)); err != nil {
		return err
	}

	log.Info().
		Str("day", day).
		Int("cards", len(cards)).
		Msg("Action cards section written")
	return nil
}

// GenerateHighlights selects today's most actionable posts and upserts the
// highlights section of the day's report.
func (g *Generator) GenerateHighlights(ctx context.Context, day string) error {
	posts, err := g.store.QueryByDate(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to query posts for %s: %w", day, err)
	}

	picked := g.selectHighlights(posts, 3)

	doc, err := g.EnsureSkeleton(day)
	if err != nil {
		return err
	}
	doc.Upsert(SectionHighlights, g.renderHighlights(picked))
	if err := doc.Save(g.ReportPath(day)); err != nil {
		return err
	}

	log.Info().
		Str("day", day).
		Int("highlights", len(picked)).
		Msg("Highlights section written")
	return nil
}

// RunDaily produces every section of the day's report in order. The TOP10
// step runs first so the skeleton exists before the trending step, which
// treats a missing report as a missing prerequisite.
func (g *Generator) RunDaily(ctx context.Context, day string) error {
	if err := g.GenerateTop10(ctx, day); err != nil {
		return err
	}
	if err := g.GenerateTrending(ctx, day); err != nil {
		return err
	}
	if err := g.GenerateCards(ctx, day); err != nil {
		return err
	}
	return g.GenerateHighlights(ctx, day)
}

// RankingSnapshot returns the current top-N ranking and noise ratio over
// the most recent posts. Used by the read API.
func (g *Generator) RankingSnapshot(ctx context.Context, n int) ([]ranking.TopicStat, float64, error) {
	posts, err := g.store.QueryRecent(ctx, g.recentLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query posts: %w", err)
	}
	agg, _ := g.classifyAll(posts)
	return agg.TopN(n), agg.NoiseRatio(), nil
}
