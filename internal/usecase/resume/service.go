// Package resume provides the gated résumé document use cases: upload
// dispatch, streaming, rename and deletion.
package resume

import (
	"context"
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
)

// allowedExtensions is the résumé upload allow-list. Files outside it
// are skipped without failing the batch.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// FileInput is one file from a multipart upload.
type FileInput struct {
	Filename    string
	Data        []byte
	ContentType string
}

// Service provides résumé management use cases.
type Service struct {
	Repo  repository.ResumeRepository
	Store blob.Store
}

// List retrieves all résumé records, newest first.
func (s *Service) List(ctx context.Context) ([]*entity.Resume, error) {
	resumes, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return resumes, nil
}

// Dispatch stores each allowed file and inserts its record. Disallowed
// extensions are skipped; a batch where nothing survives the filter
// returns ErrNoValidFiles. A storage failure aborts the remaining
// files; records written before the failure are kept.
func (s *Service) Dispatch(ctx context.Context, files []FileInput) ([]*entity.Resume, error) {
	var added []*entity.Resume
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Filename))
		if !allowedExtensions[ext] {
			continue
		}

		storedKey := uuid.NewString() + ext
		if err := s.Store.Put(ctx, storedKey, f.Data, f.ContentType); err != nil {
			return added, fmt.Errorf("%w: put %q: %v", ErrStorage, f.Filename, err)
		}

		rec := &entity.Resume{
			DisplayName: f.Filename,
			StoredKey:   storedKey,
			UploadedAt:  time.Now(),
		}
		if f.ContentType != "" {
			ct := f.ContentType
			rec.MimeType = &ct
		}
		if err := s.Repo.Create(ctx, rec); err != nil {
			return added, fmt.Errorf("create resume record %q: %w", f.Filename, err)
		}
		added = append(added, rec)
	}

	if len(added) == 0 {
		return nil, ErrNoValidFiles
	}
	return added, nil
}

// Stream opens the stored blob for a résumé. Returns entity.ErrNotFound
// when either the record or the blob is missing.
func (s *Service) Stream(ctx context.Context, id int64) (*entity.Resume, io.ReadCloser, error) {
	rec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get resume: %w", err)
	}
	if rec == nil {
		return nil, nil, entity.ErrNotFound
	}

	stream, err := s.Store.GetStream(ctx, rec.StoredKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open resume blob: %w", err)
	}
	if stream == nil {
		return nil, nil, entity.ErrNotFound
	}
	return rec, stream, nil
}

// Rename updates the display name only; the stored blob is untouched.
func (s *Service) Rename(ctx context.Context, id int64, displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return fmt.Errorf("%w: displayName is required", entity.ErrInvalidInput)
	}
	if err := s.Repo.Rename(ctx, id, displayName); err != nil {
		return fmt.Errorf("rename resume: %w", err)
	}
	return nil
}

// Delete removes the blob best-effort, then the record. A second delete
// of the same id returns entity.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	rec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get resume: %w", err)
	}
	if rec == nil {
		return entity.ErrNotFound
	}

	// レコードが消えればblobは孤児になるだけなので、削除失敗は警告に留める
	if err := s.Store.Delete(ctx, rec.StoredKey); err != nil {
		slog.Warn("resume blob delete failed",
			slog.String("stored_key", rec.StoredKey),
			slog.String("error", err.Error()))
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete resume record: %w", err)
	}
	return nil
}
