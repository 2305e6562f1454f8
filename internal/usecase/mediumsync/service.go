// Package mediumsync provides the Medium feed synchronization use case.
// It fetches a Medium RSS feed, normalizes its entries and upserts them
// into the local article cache keyed by their Medium identifier.
package mediumsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"personal-site/internal/domain/entity"
	"personal-site/internal/repository"
)

// FeedItem is a normalized feed entry ready for upsert.
type FeedItem struct {
	MediumID    string
	Title       string
	URL         string
	Excerpt     string
	PublishedAt time.Time
}

// FeedFetcher retrieves and normalizes entries from a feed URL.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]FeedItem, error)
}

// Stats summarizes the outcome of one synchronization run.
type Stats struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// Service provides Medium feed synchronization use cases.
type Service struct {
	Repo    repository.MediumArticleRepository
	Fetcher FeedFetcher
}

// List retrieves all cached Medium articles, newest first.
func (s *Service) List(ctx context.Context) ([]*entity.MediumArticle, error) {
	articles, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list medium articles: %w", err)
	}
	return articles, nil
}

// Sync fetches the feed identified by source and upserts every entry.
// Source may be a full feed URL or a bare Medium handle. Entries are
// written sequentially; on a repository error the entries already
// written are kept and the error is returned.
func (s *Service) Sync(ctx context.Context, source string) (*Stats, error) {
	feedURL, err := resolveSource(source)
	if err != nil {
		return nil, err
	}

	items, err := s.Fetcher.Fetch(ctx, feedURL)
	if err != nil {
		if errors.Is(err, ErrFeedFetch) || errors.Is(err, ErrFeedParse) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}

	stats := &Stats{Total: len(items)}
	for _, item := range items {
		created, err := s.upsert(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("upsert medium article %q: %w", item.MediumID, err)
		}
		if created {
			stats.Created++
		} else {
			stats.Updated++
		}
	}

	return stats, nil
}

func (s *Service) upsert(ctx context.Context, item FeedItem) (created bool, err error) {
	category := "Medium"
	article := &entity.MediumArticle{
		MediumID:    item.MediumID,
		Title:       item.Title,
		Link:        item.URL,
		Category:    &category,
		PublishedAt: item.PublishedAt,
		SyncedAt:    time.Now(),
	}
	if item.Excerpt != "" {
		article.Excerpt = &item.Excerpt
	}

	existing, err := s.Repo.GetByMediumID(ctx, item.MediumID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		if err := s.Repo.Create(ctx, article); err != nil {
			return false, err
		}
		return true, nil
	}

	if err := s.Repo.UpdateByMediumID(ctx, article); err != nil {
		return false, err
	}
	return false, nil
}

// resolveSource turns a Medium handle into its feed URL and validates
// explicit URLs against the fetch policy.
func resolveSource(source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", fmt.Errorf("%w: source is required", entity.ErrInvalidInput)
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if err := entity.ValidateFeedURL(source); err != nil {
			return "", err
		}
		return source, nil
	}

	handle := strings.TrimPrefix(source, "@")
	if handle == "" {
		return "", fmt.Errorf("%w: invalid medium handle", entity.ErrInvalidInput)
	}
	return "https://medium.com/feed/@" + handle, nil
}
