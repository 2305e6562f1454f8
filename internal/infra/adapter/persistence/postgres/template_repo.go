package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"personal-site/internal/domain/entity"
	"personal-site/internal/repository"
)

type TemplateRepo struct {
	db *sql.DB
}

func NewTemplateRepo(db *sql.DB) repository.TemplateRepository {
	return &TemplateRepo{db: db}
}

const templateColumns = `id, slug, display_name, stored_key, mime_type, uploaded_at, view_count, download_count, share_count`

func scanTemplate(row interface{ Scan(...any) error }) (*entity.Template, error) {
	var tpl entity.Template
	err := row.Scan(&tpl.ID, &tpl.Slug, &tpl.DisplayName, &tpl.StoredKey, &tpl.MimeType,
		&tpl.UploadedAt, &tpl.ViewCount, &tpl.DownloadCount, &tpl.ShareCount)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (repo *TemplateRepo) List(ctx context.Context) ([]*entity.Template, error) {
	const query = `
SELECT ` + templateColumns + `
FROM templates
ORDER BY uploaded_at DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	templates := make([]*entity.Template, 0, 20)
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

func (repo *TemplateRepo) GetBySlug(ctx context.Context, slug string) (*entity.Template, error) {
	const query = `
SELECT ` + templateColumns + `
FROM templates
WHERE slug = $1`
	tpl, err := scanTemplate(repo.db.QueryRowContext(ctx, query, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	return tpl, nil
}

func (repo *TemplateRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM templates WHERE slug = $1)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsBySlug: %w", err)
	}
	return exists, nil
}

func (repo *TemplateRepo) Create(ctx context.Context, template *entity.Template) error {
	const query = `
INSERT INTO templates (slug, display_name, stored_key, mime_type, uploaded_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		template.Slug, template.DisplayName, template.StoredKey,
		template.MimeType, template.UploadedAt,
	).Scan(&template.ID)
	if isUniqueViolation(err) {
		return entity.ErrDuplicateSlug
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// counterColumns whitelists counter names to their column expressions.
// The counter name never reaches the SQL text directly.
var counterColumns = map[entity.Counter]string{
	entity.CounterView:     "view_count",
	entity.CounterDownload: "download_count",
	entity.CounterShare:    "share_count",
}

func (repo *TemplateRepo) IncrementCounter(ctx context.Context, slug string, counter entity.Counter) error {
	column, ok := counterColumns[counter]
	if !ok {
		return fmt.Errorf("IncrementCounter: unknown counter %q", counter)
	}
	// 単一UPDATE文によるアトミックなインクリメント(read-then-write禁止)
	query := fmt.Sprintf(`UPDATE templates SET %s = %s + 1 WHERE slug = $1`, column, column)
	res, err := repo.db.ExecContext(ctx, query, slug)
	if err != nil {
		return fmt.Errorf("IncrementCounter: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("IncrementCounter: RowsAffected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
