package post_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/post"
	postUC "personal-site/internal/usecase/post"
)

/* ───────── スタブ実装 ───────── */

type stubRepo struct {
	posts  map[int64]*entity.Post
	nextID int64

	listErr error
}

func newStubRepo(posts ...*entity.Post) *stubRepo {
	r := &stubRepo{posts: map[int64]*entity.Post{}, nextID: 1}
	for _, p := range posts {
		cp := *p
		r.posts[cp.ID] = &cp
		if cp.ID >= r.nextID {
			r.nextID = cp.ID + 1
		}
	}
	return r
}

func (r *stubRepo) List(_ context.Context) ([]*entity.Post, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*entity.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubRepo) ListPublished(_ context.Context) ([]*entity.Post, error) {
	var out []*entity.Post
	for _, p := range r.posts {
		if p.Published() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubRepo) Get(_ context.Context, id int64) (*entity.Post, error) {
	return r.posts[id], nil
}

func (r *stubRepo) GetBySlug(_ context.Context, slug string) (*entity.Post, error) {
	for _, p := range r.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) Create(_ context.Context, p *entity.Post) error {
	for _, existing := range r.posts {
		if existing.Slug == p.Slug {
			return entity.ErrDuplicateSlug
		}
	}
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.posts[cp.ID] = &cp
	return nil
}

func (r *stubRepo) Update(_ context.Context, p *entity.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return entity.ErrNotFound
	}
	cp := *p
	r.posts[cp.ID] = &cp
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id int64) error {
	delete(r.posts, id)
	return nil
}

func published(t time.Time) *time.Time { return &t }

/* ───────── テスト ───────── */

func TestListHandler_PublishedOnly(t *testing.T) {
	repo := newStubRepo(
		&entity.Post{ID: 1, Slug: "live", Title: "Live", PublishedAt: published(time.Now())},
		&entity.Post{ID: 2, Slug: "draft", Title: "Draft"},
	)
	h := post.ListHandler{Svc: &postUC.Service{Repo: repo}}

	req := httptest.NewRequest("GET", "/posts", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var got []post.DTO
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "live" {
		t.Errorf("expected only the published post, got %+v", got)
	}
}

func TestListHandler_All(t *testing.T) {
	repo := newStubRepo(
		&entity.Post{ID: 1, Slug: "live", Title: "Live", PublishedAt: published(time.Now())},
		&entity.Post{ID: 2, Slug: "draft", Title: "Draft"},
	)
	h := post.ListHandler{Svc: &postUC.Service{Repo: repo}}

	req := httptest.NewRequest("GET", "/posts?all=1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var got []post.DTO
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 posts, got %d", len(got))
	}
}

func TestGetHandler(t *testing.T) {
	repo := newStubRepo(
		&entity.Post{ID: 7, Slug: "hello-world", Title: "Hello World"},
	)
	h := post.GetHandler{Svc: &postUC.Service{Repo: repo}}

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantSlug string
	}{
		{"by id", "/posts/7", http.StatusOK, "hello-world"},
		{"by slug", "/posts/hello-world", http.StatusOK, "hello-world"},
		{"id not found", "/posts/99", http.StatusNotFound, ""},
		{"slug not found", "/posts/missing-post", http.StatusNotFound, ""},
		{"invalid segment", "/posts/..%2Fetc", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			if tt.wantSlug == "" {
				return
			}
			var got post.DTO
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if got.Slug != tt.wantSlug {
				t.Errorf("expected slug %q, got %q", tt.wantSlug, got.Slug)
			}
		})
	}
}

func TestCreateHandler(t *testing.T) {
	repo := newStubRepo()
	h := post.CreateHandler{Svc: &postUC.Service{Repo: repo}}

	body := `{"title":"My First Post","content":"hello","published_at":"2025-06-01T09:00:00Z"}`
	req := httptest.NewRequest("POST", "/posts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got post.DTO
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Slug != "my-first-post" {
		t.Errorf("expected slug derived from title, got %q", got.Slug)
	}
	if got.PublishedAt == nil {
		t.Error("expected published_at to be set")
	}
}

func TestCreateHandler_MissingTitle(t *testing.T) {
	h := post.CreateHandler{Svc: &postUC.Service{Repo: newStubRepo()}}

	req := httptest.NewRequest("POST", "/posts", strings.NewReader(`{"content":"x"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestUpdateHandler_Unpublish(t *testing.T) {
	repo := newStubRepo(
		&entity.Post{ID: 3, Slug: "live", Title: "Live", PublishedAt: published(time.Now())},
	)
	h := post.UpdateHandler{Svc: &postUC.Service{Repo: repo}}

	// published_at: null で下書きに戻す
	req := httptest.NewRequest("PUT", "/posts/3", strings.NewReader(`{"published_at":null}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got post.DTO
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.PublishedAt != nil {
		t.Errorf("expected draft after update, got published_at %v", got.PublishedAt)
	}
}

func TestUpdateHandler_NotFound(t *testing.T) {
	h := post.UpdateHandler{Svc: &postUC.Service{Repo: newStubRepo()}}

	req := httptest.NewRequest("PUT", "/posts/42", strings.NewReader(`{"title":"x"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestDeleteHandler(t *testing.T) {
	repo := newStubRepo(&entity.Post{ID: 5, Slug: "bye", Title: "Bye"})
	h := post.DeleteHandler{Svc: &postUC.Service{Repo: repo}}

	req := httptest.NewRequest("DELETE", "/posts/5", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}

	// 2回目は404
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("DELETE", "/posts/5", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 on second delete, got %d", rec.Code)
	}
}
