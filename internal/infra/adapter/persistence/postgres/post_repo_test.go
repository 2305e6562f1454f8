package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"personal-site/internal/domain/entity"
	"personal-site/internal/infra/adapter/persistence/postgres"
)

func postRow(p *entity.Post) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "slug", "title", "excerpt", "content", "category",
		"published_at", "created_at", "updated_at",
	}).AddRow(
		p.ID, p.Slug, p.Title, p.Excerpt, p.Content, p.Category,
		p.PublishedAt, p.CreatedAt, p.UpdatedAt,
	)
}

func TestPostRepo_GetBySlug(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	want := &entity.Post{
		ID: 1, Slug: "hello-world", Title: "Hello World",
		Content: "# Hi", PublishedAt: &now, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id`)).
		WithArgs("hello-world").
		WillReturnRows(postRow(want))

	repo := postgres.NewPostRepo(db)
	got, err := repo.GetBySlug(context.Background(), "hello-world")
	if err != nil {
		t.Fatalf("GetBySlug err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPostRepo_ListPublished_ExcludesDrafts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery(`WHERE published_at IS NOT NULL`).
		WillReturnRows(postRow(&entity.Post{
			ID: 1, Slug: "published", Title: "Published",
			Content: "x", PublishedAt: &now, CreatedAt: now, UpdatedAt: now,
		}))

	repo := postgres.NewPostRepo(db)
	got, err := repo.ListPublished(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("ListPublished err=%v len=%d", err, len(got))
	}
}

func TestPostRepo_Create_DuplicateSlug(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "posts_slug_key"})

	repo := postgres.NewPostRepo(db)
	err := repo.Create(context.Background(), &entity.Post{
		Slug: "hello-world", Title: "Hello World", Content: "x",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	if !errors.Is(err, entity.ErrDuplicateSlug) {
		t.Fatalf("err = %v, want ErrDuplicateSlug", err)
	}
}

func TestPostRepo_Update_Missing(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE posts`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := postgres.NewPostRepo(db)
	err := repo.Update(context.Background(), &entity.Post{ID: 99, Slug: "x", Title: "x"})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPostRepo_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := postgres.NewPostRepo(db)
	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
}
