// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Post, MediumArticle, Resume and
// Template, along with their validation rules and domain-specific errors.
package entity

import "time"

// Post represents a locally authored blog post.
// A nil PublishedAt means the post is a draft.
type Post struct {
	ID          int64
	Slug        string
	Title       string
	Excerpt     *string
	Content     string
	Category    *string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Published reports whether the post is visible on the public blog.
func (p *Post) Published() bool {
	return p.PublishedAt != nil
}
