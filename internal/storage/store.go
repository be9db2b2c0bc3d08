// Package storage provides MongoDB storage for VOC Radar.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vocradar/vocradar/internal/models"
)

// Store provides access to the posts collection.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	posts  *mongo.Collection
}

// NewStore creates a new storage connection.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	log.Info().Str("db", dbName).Msg("Connected to MongoDB")

	store := &Store{
		client: client,
		db:     db,
		posts:  db.Collection("posts"),
	}

	if err := store.createIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to create some indexes")
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// createIndexes creates the indexes the query paths depend on. The unique
// index on url is what makes InsertIfAbsent write-once.
func (s *Store) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "url", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "fetched_at", Value: -1}}},
	}
	if _, err := s.posts.Indexes().CreateMany(ctx, indexes); err != nil {
		return err
	}
	return nil
}

// InsertIfAbsent stores a post unless its URL already exists. It returns
// true when the post was actually inserted; an existing URL is a silent
// no-op, never an update.
func (s *Store) InsertIfAbsent(ctx context.Context, post *models.Post) (bool, error) {
	if post.URL == "" {
		return false, fmt.Errorf("post has no url")
	}
	if post.FetchedAt.IsZero() {
		post.FetchedAt = time.Now().UTC()
	}

	filter := bson.M{"url": post.URL}
	update := bson.M{"$setOnInsert": bson.M{
		"url":        post.URL,
		"title":      post.Title,
		"body":       post.Body,
		"posted_at":  post.PostedAt,
		"views":      post.Views,
		"fetched_at": post.FetchedAt,
	}}
	opts := options.Update().SetUpsert(true)

	res, err := s.posts.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// QueryRecent returns the most recently fetched posts, newest first.
func (s *Store) QueryRecent(ctx context.Context, limit int) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "fetched_at", Value: -1}}).
		SetLimit(int64(limit))

	return s.findPosts(ctx, bson.M{}, opts)
}

// QueryByDate returns all posts fetched on the given UTC calendar day
// (ymd formatted 2006-01-02), newest first.
func (s *Store) QueryByDate(ctx context.Context, ymd string) ([]models.Post, error) {
	day, err := time.ParseInLocation("2006-01-02", ymd, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", ymd, err)
	}

	filter := bson.M{"fetched_at": bson.M{
		"$gte": day,
		"$lt":  day.Add(24 * time.Hour),
	}}
	opts := options.Find().SetSort(bson.D{{Key: "fetched_at", Value: -1}})
	return s.findPosts(ctx, filter, opts)
}

// DistinctDates returns the distinct UTC calendar days present in storage,
// sorted descending (most recent first).
func (s *Store) DistinctDates(ctx context.Context) ([]string, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$fetched_at"}},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": -1}}},
	}

	cursor, err := s.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Date string `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Date != "" {
			dates = append(dates, r.Date)
		}
	}
	return dates, nil
}

func (s *Store) findPosts(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Post, error) {
	cursor, err := s.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Stats holds general statistics.
type Stats struct {
	TotalPosts int64 `json:"total_posts"`
	TodayPosts int64 `json:"today_posts"`
}

// GetStats returns general statistics.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var err error
	stats.TotalPosts, err = s.posts.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	stats.TodayPosts, err = s.posts.CountDocuments(ctx, bson.M{
		"fetched_at": bson.M{"$gte": today},
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}
