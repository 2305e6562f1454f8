// Package template provides the public document template use cases:
// upload dispatch with slug allocation, counted streaming and sharing.
package template

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"personal-site/internal/domain/entity"
	"personal-site/internal/infra/blob"
	"personal-site/internal/repository"
	"personal-site/internal/utils/text"
)

// allowedExtensions is the template upload allow-list. Templates accept
// the résumé document types plus HTML.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".html": true,
	".htm":  true,
}

// 衝突時にサフィックスを付けて再試行する上限
const maxSlugAttempts = 5

const slugFallback = "doc"

// FileInput is one file from a multipart upload.
type FileInput struct {
	Filename    string
	Data        []byte
	ContentType string
}

// Service provides template management use cases.
type Service struct {
	Repo    repository.TemplateRepository
	Store   blob.Store
	SiteURL string
}

// List retrieves all template records with their usage counters.
func (s *Service) List(ctx context.Context) ([]*entity.Template, error) {
	templates, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// Dispatch stores each allowed file, allocates a unique slug from its
// filename and inserts the record. See the résumé dispatcher for the
// batch semantics; templates only add the slug step.
func (s *Service) Dispatch(ctx context.Context, files []FileInput) ([]*entity.Template, error) {
	var added []*entity.Template
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Filename))
		if !allowedExtensions[ext] {
			continue
		}

		storedKey := uuid.NewString() + ext
		if err := s.Store.Put(ctx, storedKey, f.Data, f.ContentType); err != nil {
			return added, fmt.Errorf("%w: put %q: %v", ErrStorage, f.Filename, err)
		}

		rec := &entity.Template{
			DisplayName: f.Filename,
			StoredKey:   storedKey,
			UploadedAt:  time.Now(),
		}
		if f.ContentType != "" {
			ct := f.ContentType
			rec.MimeType = &ct
		}
		if err := s.createWithSlug(ctx, rec, f.Filename); err != nil {
			return added, err
		}
		added = append(added, rec)
	}

	if len(added) == 0 {
		return nil, ErrNoValidFiles
	}
	return added, nil
}

// createWithSlug derives the slug from the filename base and inserts.
// ExistsBySlug is only a fast probe; the unique constraint decides the
// winner under concurrent uploads, so duplicates from Create retry with
// the next suffix.
func (s *Service) createWithSlug(ctx context.Context, rec *entity.Template, filename string) error {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base := text.Slugify(name, slugFallback)

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		slug := base
		if attempt > 1 {
			slug = fmt.Sprintf("%s-%d", base, attempt)
		}

		taken, err := s.Repo.ExistsBySlug(ctx, slug)
		if err != nil {
			return fmt.Errorf("probe slug %q: %w", slug, err)
		}
		if taken {
			continue
		}

		rec.Slug = slug
		err = s.Repo.Create(ctx, rec)
		if err == nil {
			return nil
		}
		if !errors.Is(err, entity.ErrDuplicateSlug) {
			return fmt.Errorf("create template record %q: %w", filename, err)
		}
	}
	return fmt.Errorf("allocate slug for %q: %w after %d attempts", filename, entity.ErrDuplicateSlug, maxSlugAttempts)
}

// Stream opens the stored blob for a template and counts the access:
// inline views bump view_count, attachment downloads bump
// download_count. Returns entity.ErrNotFound when either the record or
// the blob is missing.
func (s *Service) Stream(ctx context.Context, slug string, inline bool) (*entity.Template, io.ReadCloser, error) {
	rec, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("get template: %w", err)
	}
	if rec == nil {
		return nil, nil, entity.ErrNotFound
	}

	stream, err := s.Store.GetStream(ctx, rec.StoredKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open template blob: %w", err)
	}
	if stream == nil {
		return nil, nil, entity.ErrNotFound
	}

	counter := entity.CounterDownload
	if inline {
		counter = entity.CounterView
	}
	// カウンタ更新の失敗で配信は止めない
	if err := s.Repo.IncrementCounter(ctx, slug, counter); err != nil {
		slog.Warn("template counter increment failed",
			slog.String("slug", slug),
			slog.String("counter", string(counter)),
			slog.String("error", err.Error()))
	}

	return rec, stream, nil
}

// Share increments the share counter and returns the public URL for
// the template.
func (s *Service) Share(ctx context.Context, slug string) (string, error) {
	rec, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("get template: %w", err)
	}
	if rec == nil {
		return "", entity.ErrNotFound
	}

	if err := s.Repo.IncrementCounter(ctx, slug, entity.CounterShare); err != nil {
		return "", fmt.Errorf("increment share counter: %w", err)
	}

	return strings.TrimRight(s.SiteURL, "/") + "/templates/" + slug, nil
}
