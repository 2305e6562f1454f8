package repository

import (
	"context"

	"personal-site/internal/domain/entity"
)

type ResumeRepository interface {
	// List retrieves all resumes ordered by uploaded_at descending.
	List(ctx context.Context) ([]*entity.Resume, error)
	// Get returns (nil, nil) if the resume is not found.
	Get(ctx context.Context, id int64) (*entity.Resume, error)
	// Create inserts the resume record and fills in its generated ID.
	Create(ctx context.Context, resume *entity.Resume) error
	// Rename updates only the display name. Returns entity.ErrNotFound
	// if no row matches the id.
	Rename(ctx context.Context, id int64, displayName string) error
	Delete(ctx context.Context, id int64) error
}

type TemplateRepository interface {
	// List retrieves all templates ordered by uploaded_at descending.
	List(ctx context.Context) ([]*entity.Template, error)
	// GetBySlug returns (nil, nil) if no template has the given slug.
	GetBySlug(ctx context.Context, slug string) (*entity.Template, error)
	// ExistsBySlug reports whether a template with the slug exists.
	// Used as the fast path of slug allocation; the unique constraint
	// remains the authority under concurrent inserts.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// Create inserts the template record and fills in its generated ID.
	// Returns entity.ErrDuplicateSlug on a slug constraint violation.
	Create(ctx context.Context, template *entity.Template) error
	// IncrementCounter atomically increments one usage counter by a single
	// UPDATE statement, never read-then-write.
	IncrementCounter(ctx context.Context, slug string, counter entity.Counter) error
}
