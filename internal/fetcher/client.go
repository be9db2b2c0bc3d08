// Package fetcher collects raw forum posts: a list collector that turns a
// board page into post URLs, and a post fetcher that turns a post page
// into a raw record. Dedup and persistence belong to the storage layer.
package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/vocradar/vocradar/internal/models"
)

const (
	// DefaultTimeout for page fetches.
	DefaultTimeout = 15 * time.Second

	browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client fetches board pages over HTTP.
type Client struct {
	http    *resty.Client
	listURL string
	limit   int
	delay   time.Duration
}

// NewClient creates a forum client. listURL is the board list page, limit
// caps how many post URLs a list collection returns, and delay is the
// polite pause between consecutive post fetches.
func NewClient(listURL string, limit int, delay time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetTimeout(DefaultTimeout).
			SetRetryCount(2).
			SetRetryWaitTime(1 * time.Second).
			SetHeader("User-Agent", browserUA).
			SetHeader("Accept-Language", "en-US,en;q=0.9"),
		listURL: listURL,
		limit:   limit,
		delay:   delay,
	}
}

// CollectList fetches the board list page and returns up to the configured
// number of post URLs in page order.
func (c *Client) CollectList(ctx context.Context) ([]string, error) {
	if c.listURL == "" {
		return nil, fmt.Errorf("no list URL configured")
	}

	resp, err := c.http.R().SetContext(ctx).Get(c.listURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch list page: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list page returned %s", resp.Status())
	}

	urls, err := ParseListPage(resp.Body(), c.listURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse list page: %w", err)
	}
	if len(urls) > c.limit {
		urls = urls[:c.limit]
	}
	return urls, nil
}

// FetchPost fetches and parses one post page.
func (c *Client) FetchPost(ctx context.Context, postURL string) (*models.Post, error) {
	resp, err := c.http.R().SetContext(ctx).Get(postURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", postURL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s returned %s", postURL, resp.Status())
	}

	return ParsePostPage(resp.Body(), postURL)
}

// Pause sleeps the configured crawl delay, returning early on context
// cancellation.
func (c *Client) Pause(ctx context.Context) {
	if c.delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(c.delay):
	}
}
