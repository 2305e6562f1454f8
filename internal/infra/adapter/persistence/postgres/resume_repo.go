package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"personal-site/internal/domain/entity"
	"personal-site/internal/repository"
)

type ResumeRepo struct {
	db *sql.DB
}

func NewResumeRepo(db *sql.DB) repository.ResumeRepository {
	return &ResumeRepo{db: db}
}

func (repo *ResumeRepo) List(ctx context.Context) ([]*entity.Resume, error) {
	const query = `
SELECT id, display_name, stored_key, mime_type, uploaded_at
FROM resumes
ORDER BY uploaded_at DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	resumes := make([]*entity.Resume, 0, 20)
	for rows.Next() {
		var r entity.Resume
		if err := rows.Scan(&r.ID, &r.DisplayName, &r.StoredKey, &r.MimeType, &r.UploadedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		resumes = append(resumes, &r)
	}
	return resumes, rows.Err()
}

func (repo *ResumeRepo) Get(ctx context.Context, id int64) (*entity.Resume, error) {
	const query = `
SELECT id, display_name, stored_key, mime_type, uploaded_at
FROM resumes
WHERE id = $1`
	var r entity.Resume
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&r.ID, &r.DisplayName, &r.StoredKey, &r.MimeType, &r.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &r, nil
}

func (repo *ResumeRepo) Create(ctx context.Context, resume *entity.Resume) error {
	const query = `
INSERT INTO resumes (display_name, stored_key, mime_type, uploaded_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		resume.DisplayName, resume.StoredKey, resume.MimeType, resume.UploadedAt,
	).Scan(&resume.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ResumeRepo) Rename(ctx context.Context, id int64, displayName string) error {
	const query = `UPDATE resumes SET display_name = $1 WHERE id = $2`
	res, err := repo.db.ExecContext(ctx, query, displayName, id)
	if err != nil {
		return fmt.Errorf("Rename: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Rename: RowsAffected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (repo *ResumeRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM resumes WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
