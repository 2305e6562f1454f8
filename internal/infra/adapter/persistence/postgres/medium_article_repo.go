package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"personal-site/internal/domain/entity"
	"personal-site/internal/repository"
)

type MediumArticleRepo struct {
	db *sql.DB
}

func NewMediumArticleRepo(db *sql.DB) repository.MediumArticleRepository {
	return &MediumArticleRepo{db: db}
}

const mediumColumns = `id, medium_id, title, link, excerpt, category, published_at, synced_at`

func scanMediumArticle(row interface{ Scan(...any) error }) (*entity.MediumArticle, error) {
	var art entity.MediumArticle
	err := row.Scan(&art.ID, &art.MediumID, &art.Title, &art.Link,
		&art.Excerpt, &art.Category, &art.PublishedAt, &art.SyncedAt)
	if err != nil {
		return nil, err
	}
	return &art, nil
}

func (repo *MediumArticleRepo) List(ctx context.Context) ([]*entity.MediumArticle, error) {
	const query = `
SELECT ` + mediumColumns + `
FROM medium_articles
ORDER BY published_at DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	articles := make([]*entity.MediumArticle, 0, 100)
	for rows.Next() {
		art, err := scanMediumArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		articles = append(articles, art)
	}
	return articles, rows.Err()
}

func (repo *MediumArticleRepo) GetByMediumID(ctx context.Context, mediumID string) (*entity.MediumArticle, error) {
	const query = `
SELECT ` + mediumColumns + `
FROM medium_articles
WHERE medium_id = $1`
	art, err := scanMediumArticle(repo.db.QueryRowContext(ctx, query, mediumID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByMediumID: %w", err)
	}
	return art, nil
}

func (repo *MediumArticleRepo) Create(ctx context.Context, article *entity.MediumArticle) error {
	const query = `
INSERT INTO medium_articles (medium_id, title, link, excerpt, category, published_at, synced_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		article.MediumID, article.Title, article.Link, article.Excerpt,
		article.Category, article.PublishedAt, article.SyncedAt,
	).Scan(&article.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *MediumArticleRepo) UpdateByMediumID(ctx context.Context, article *entity.MediumArticle) error {
	const query = `
UPDATE medium_articles
SET title = $1, link = $2, excerpt = $3, category = $4, published_at = $5, synced_at = $6
WHERE medium_id = $7`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Link, article.Excerpt, article.Category,
		article.PublishedAt, article.SyncedAt, article.MediumID)
	if err != nil {
		return fmt.Errorf("UpdateByMediumID: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateByMediumID: RowsAffected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
