package repository

import (
	"context"

	"personal-site/internal/domain/entity"
)

type PostRepository interface {
	// List retrieves all posts ordered by published_at (drafts last) descending.
	List(ctx context.Context) ([]*entity.Post, error)
	// ListPublished retrieves only posts with a non-null published_at.
	ListPublished(ctx context.Context) ([]*entity.Post, error)
	// Get returns (nil, nil) if the post is not found.
	Get(ctx context.Context, id int64) (*entity.Post, error)
	// GetBySlug returns (nil, nil) if no post has the given slug.
	GetBySlug(ctx context.Context, slug string) (*entity.Post, error)
	// Create inserts the post and fills in its generated ID.
	// Returns entity.ErrDuplicateSlug if the slug is already taken.
	Create(ctx context.Context, post *entity.Post) error
	// Update persists all mutable fields of the post.
	// Returns entity.ErrDuplicateSlug if the new slug is already taken.
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id int64) error
}
