package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"personal-site/internal/domain/entity"
	"personal-site/internal/repository"
)

type PostRepo struct {
	db *sql.DB
}

func NewPostRepo(db *sql.DB) repository.PostRepository {
	return &PostRepo{db: db}
}

const postColumns = `id, slug, title, excerpt, content, category, published_at, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*entity.Post, error) {
	var post entity.Post
	err := row.Scan(&post.ID, &post.Slug, &post.Title, &post.Excerpt,
		&post.Content, &post.Category, &post.PublishedAt, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (repo *PostRepo) List(ctx context.Context) ([]*entity.Post, error) {
	const query = `
SELECT ` + postColumns + `
FROM posts
ORDER BY published_at DESC NULLS LAST, created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*entity.Post, 0, 50)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (repo *PostRepo) ListPublished(ctx context.Context) ([]*entity.Post, error) {
	const query = `
SELECT ` + postColumns + `
FROM posts
WHERE published_at IS NOT NULL
ORDER BY published_at DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListPublished: %w", err)
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*entity.Post, 0, 50)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("ListPublished: Scan: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (repo *PostRepo) Get(ctx context.Context, id int64) (*entity.Post, error) {
	const query = `
SELECT ` + postColumns + `
FROM posts
WHERE id = $1`
	post, err := scanPost(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return post, nil
}

func (repo *PostRepo) GetBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	const query = `
SELECT ` + postColumns + `
FROM posts
WHERE slug = $1`
	post, err := scanPost(repo.db.QueryRowContext(ctx, query, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	return post, nil
}

func (repo *PostRepo) Create(ctx context.Context, post *entity.Post) error {
	const query = `
INSERT INTO posts (slug, title, excerpt, content, category, published_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		post.Slug, post.Title, post.Excerpt, post.Content, post.Category,
		post.PublishedAt, post.CreatedAt, post.UpdatedAt,
	).Scan(&post.ID)
	if isUniqueViolation(err) {
		return entity.ErrDuplicateSlug
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *PostRepo) Update(ctx context.Context, post *entity.Post) error {
	const query = `
UPDATE posts
SET slug = $1, title = $2, excerpt = $3, content = $4, category = $5,
    published_at = $6, updated_at = $7
WHERE id = $8`
	res, err := repo.db.ExecContext(ctx, query,
		post.Slug, post.Title, post.Excerpt, post.Content, post.Category,
		post.PublishedAt, post.UpdatedAt, post.ID)
	if isUniqueViolation(err) {
		return entity.ErrDuplicateSlug
	}
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (repo *PostRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM posts WHERE id = $1`
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
