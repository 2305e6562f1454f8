// Package post provides the blog post authoring use cases.
// It handles business logic for post operations and delegates
// persistence to the repository.
package post

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"personal-site/internal/domain/entity"
	"personal-site/internal/repository"
	"personal-site/internal/utils/text"
)

// 衝突時にサフィックスを付けて再試行する上限
const maxSlugAttempts = 5

const slugFallback = "doc"

// Archiver mirrors posts to a secondary store. Writes are best-effort:
// the use case logs failures but never fails the mutation over them.
type Archiver interface {
	WritePost(ctx context.Context, post *entity.Post) error
	RemovePost(ctx context.Context, slug string) error
}

// CreateInput represents the input parameters for creating a new post.
type CreateInput struct {
	Title       string
	Slug        string // optional; derived from Title when empty
	Excerpt     *string
	Content     string
	Category    *string
	PublishedAt *time.Time
}

// UpdateInput represents the input parameters for updating an existing post.
// Fields with nil values will not be updated. PublishedAt is special: the
// SetPublishedAt flag distinguishes "set to null" (unpublish) from
// "leave unchanged".
type UpdateInput struct {
	ID             int64
	Title          *string
	Slug           *string
	Excerpt        *string
	Content        *string
	Category       *string
	PublishedAt    *time.Time
	SetPublishedAt bool
}

// Service provides post management use cases.
type Service struct {
	Repo    repository.PostRepository
	Archive Archiver // optional
}

// List retrieves all posts, drafts included.
func (s *Service) List(ctx context.Context) ([]*entity.Post, error) {
	posts, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// ListPublished retrieves only published posts.
func (s *Service) ListPublished(ctx context.Context) ([]*entity.Post, error) {
	posts, err := s.Repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return posts, nil
}

// Get retrieves a post by ID. Returns entity.ErrNotFound if it does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Post, error) {
	post, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post == nil {
		return nil, entity.ErrNotFound
	}
	return post, nil
}

// GetBySlug retrieves a post by slug. Returns entity.ErrNotFound if it
// does not exist.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	post, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	if post == nil {
		return nil, entity.ErrNotFound
	}
	return post, nil
}

// Create inserts a new post. The slug is derived from the input (explicit
// slug preferred over title) and suffixed on collision; the unique
// constraint decides the winner under concurrency.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Post, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", entity.ErrInvalidInput)
	}

	seed := in.Slug
	if seed == "" {
		seed = in.Title
	}
	base := text.Slugify(seed, slugFallback)

	now := time.Now()
	post := &entity.Post{
		Title:       in.Title,
		Excerpt:     in.Excerpt,
		Content:     in.Content,
		Category:    in.Category,
		PublishedAt: in.PublishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		post.Slug = base
		if attempt > 1 {
			post.Slug = fmt.Sprintf("%s-%d", base, attempt)
		}
		err := s.Repo.Create(ctx, post)
		if err == nil {
			s.mirror(ctx, post)
			return post, nil
		}
		if !errors.Is(err, entity.ErrDuplicateSlug) {
			return nil, fmt.Errorf("create post: %w", err)
		}
	}
	return nil, fmt.Errorf("create post: %w after %d attempts", entity.ErrDuplicateSlug, maxSlugAttempts)
}

// Update applies the non-nil fields of in to the stored post and
// refreshes updated_at.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Post, error) {
	post, err := s.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	oldSlug := post.Slug

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Slug != nil {
		post.Slug = text.Slugify(*in.Slug, slugFallback)
	}
	if in.Excerpt != nil {
		post.Excerpt = in.Excerpt
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Category != nil {
		post.Category = in.Category
	}
	if in.SetPublishedAt {
		post.PublishedAt = in.PublishedAt
	}
	post.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, post); err != nil {
		if errors.Is(err, entity.ErrDuplicateSlug) {
			return nil, err
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	if oldSlug != post.Slug {
		s.removeMirror(ctx, oldSlug)
	}
	s.mirror(ctx, post)
	return post, nil
}

// Delete removes a post and its mirror file.
func (s *Service) Delete(ctx context.Context, id int64) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.removeMirror(ctx, post.Slug)
	return nil
}

// mirror kicks off a best-effort archive write. The request context may
// be canceled as soon as the response is sent, so the copy runs detached.
func (s *Service) mirror(ctx context.Context, post *entity.Post) {
	if s.Archive == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	snapshot := *post
	go func() {
		if err := s.Archive.WritePost(detached, &snapshot); err != nil {
			slog.Warn("post mirror write failed",
				slog.String("slug", snapshot.Slug),
				slog.String("error", err.Error()))
		}
	}()
}

func (s *Service) removeMirror(ctx context.Context, slug string) {
	if s.Archive == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	go func() {
		if err := s.Archive.RemovePost(detached, slug); err != nil {
			slog.Warn("post mirror remove failed",
				slog.String("slug", slug),
				slog.String("error", err.Error()))
		}
	}()
}
