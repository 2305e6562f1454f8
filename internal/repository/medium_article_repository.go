package repository

import (
	"context"

	"personal-site/internal/domain/entity"
)

type MediumArticleRepository interface {
	// List retrieves all synced articles ordered by published_at descending.
	List(ctx context.Context) ([]*entity.MediumArticle, error)
	// GetByMediumID returns (nil, nil) if no row matches the external identifier.
	GetByMediumID(ctx context.Context, mediumID string) (*entity.MediumArticle, error)
	// Create inserts a new synced article and fills in its generated ID.
	Create(ctx context.Context, article *entity.MediumArticle) error
	// UpdateByMediumID updates all mutable fields of the row keyed by
	// the external identifier.
	UpdateByMediumID(ctx context.Context, article *entity.MediumArticle) error
}
