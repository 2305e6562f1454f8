// Package post provides HTTP handlers for the blog post endpoints.
// It includes handlers for listing, fetching, creating, updating and
// deleting posts. Write endpoints require admin authentication.
package post

import (
	"time"

	"personal-site/internal/domain/entity"
)

// DTO represents the JSON structure for post data transfer.
type DTO struct {
	ID          int64      `json:"id" example:"1"`
	Slug        string     `json:"slug" example:"my-first-post"`
	Title       string     `json:"title" example:"My First Post"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Content     string     `json:"content"`
	Category    *string    `json:"category,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" example:"2025-10-26T12:00:00Z"`
	UpdatedAt   time.Time  `json:"updated_at" example:"2025-10-26T12:00:00Z"`
}

func toDTOs(posts []*entity.Post) []DTO {
	out := make([]DTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toDTO(p))
	}
	return out
}

func toDTO(p *entity.Post) DTO {
	return DTO{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		Category:    p.Category,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
