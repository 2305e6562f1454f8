// Package feed provides implementations for fetching RSS/Atom feeds.
// It uses the gofeed library to parse feed content.
package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"personal-site/internal/usecase/mediumsync"
	"personal-site/internal/utils/text"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

const (
	fetchTimeout = 10 * time.Second
	userAgent    = "Mozilla/5.0 (compatible; PersonalSite/1.0)"

	excerptMaxRunes = 300
)

// RSSFetcher implements mediumsync.FeedFetcher using the gofeed library.
type RSSFetcher struct {
	client    *http.Client
	sanitizer *bluemonday.Policy
}

// NewRSSFetcher creates a new RSSFetcher. A nil client gets a default
// client with a 10 second timeout.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &RSSFetcher{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Fetch retrieves and parses an RSS/Atom feed from the given URL.
// Entries without a link or GUID are skipped because they cannot be
// keyed for upserts.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]mediumsync.FeedItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	fp.Client = f.client

	parsed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, classify(err)
	}

	items := make([]mediumsync.FeedItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		id := it.Link
		if id == "" {
			id = it.GUID
		}
		if id == "" {
			continue
		}

		title := strings.TrimSpace(it.Title)
		if title == "" {
			title = "Untitled"
		}

		pubAt := time.Now()
		if it.PublishedParsed != nil {
			pubAt = *it.PublishedParsed
		}

		items = append(items, mediumsync.FeedItem{
			MediumID:    id,
			Title:       title,
			URL:         it.Link,
			Excerpt:     f.excerpt(it),
			PublishedAt: pubAt,
		})
	}

	return items, nil
}

// excerpt prefers the feed description; Medium only puts the full body in
// Content, which needs its markup stripped before truncation.
func (f *RSSFetcher) excerpt(it *gofeed.Item) string {
	body := strings.TrimSpace(it.Description)
	if body == "" {
		body = strings.TrimSpace(f.sanitizer.Sanitize(it.Content))
	}
	return text.TruncateRunes(body, excerptMaxRunes)
}

// classify separates transport failures from malformed feed payloads.
func classify(err error) error {
	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Errorf("%w: %s", mediumsync.ErrFeedFetch, httpErr.Status)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", mediumsync.ErrFeedFetch, urlErr)
	}
	return fmt.Errorf("%w: %v", mediumsync.ErrFeedParse, err)
}
