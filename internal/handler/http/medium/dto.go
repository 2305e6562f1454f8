// Package medium provides HTTP handlers for the Medium article cache:
// listing synced articles and triggering a feed synchronization run.
package medium

import (
	"time"

	"personal-site/internal/domain/entity"
)

// DTO represents the JSON structure for a synced Medium article.
type DTO struct {
	ID          int64     `json:"id" example:"1"`
	MediumID    string    `json:"medium_id" example:"https://medium.com/@user/some-post-abc123"`
	Title       string    `json:"title" example:"Designing a Sync Engine"`
	Link        string    `json:"link" example:"https://medium.com/@user/some-post-abc123"`
	Excerpt     *string   `json:"excerpt,omitempty"`
	Category    *string   `json:"category,omitempty"`
	PublishedAt time.Time `json:"published_at" example:"2025-10-26T10:00:00Z"`
	SyncedAt    time.Time `json:"synced_at" example:"2025-10-26T12:00:00Z"`
}

func toDTO(a *entity.MediumArticle) DTO {
	return DTO{
		ID:          a.ID,
		MediumID:    a.MediumID,
		Title:       a.Title,
		Link:        a.Link,
		Excerpt:     a.Excerpt,
		Category:    a.Category,
		PublishedAt: a.PublishedAt,
		SyncedAt:    a.SyncedAt,
	}
}
