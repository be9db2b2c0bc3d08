// Package models defines the core data structures for VOC Radar.
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a single forum post captured from the community board.
// Posts are write-once: the URL is the unique key and a second observation
// of the same URL is a no-op at the storage layer.
type Post struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// URL is the canonical post URL and the unique identifier.
	URL string `bson:"url" json:"url"`

	// Content
	Title string `bson:"title" json:"title"`
	Body  string `bson:"body" json:"body"`

	// PostedAt is the raw creation timestamp text scraped from the page.
	// It is display-only; all date bucketing uses FetchedAt.
	PostedAt string `bson:"posted_at,omitempty" json:"posted_at,omitempty"`

	// Views is the view counter if the page exposed one.
	Views *int `bson:"views,omitempty" json:"views,omitempty"`

	// FetchedAt is when we first stored the post (UTC).
	FetchedAt time.Time `bson:"fetched_at" json:"fetched_at"`
}

// CombinedText returns the text the classifier operates on.
func (p *Post) CombinedText() string {
	return strings.TrimSpace(p.Title + " " + p.Body)
}

// Classification is the derived tag for a post. It is recomputed on every
// report run from the current keyword tables and never persisted, so edits
// to the tables apply retroactively.
type Classification struct {
	Topic    string `json:"topic"`
	Hits     int    `json:"hits"`
	Negative bool   `json:"negative"`
}
