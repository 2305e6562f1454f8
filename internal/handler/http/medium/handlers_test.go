package medium_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/medium"
	syncUC "personal-site/internal/usecase/mediumsync"
)

/* ───────── スタブ実装 ───────── */

type stubRepo struct {
	articles map[string]*entity.MediumArticle
}

func newStubRepo(articles ...*entity.MediumArticle) *stubRepo {
	r := &stubRepo{articles: map[string]*entity.MediumArticle{}}
	for _, a := range articles {
		cp := *a
		r.articles[cp.MediumID] = &cp
	}
	return r
}

func (r *stubRepo) List(_ context.Context) ([]*entity.MediumArticle, error) {
	out := make([]*entity.MediumArticle, 0, len(r.articles))
	for _, a := range r.articles {
		out = append(out, a)
	}
	return out, nil
}

func (r *stubRepo) GetByMediumID(_ context.Context, mediumID string) (*entity.MediumArticle, error) {
	return r.articles[mediumID], nil
}

func (r *stubRepo) Create(_ context.Context, a *entity.MediumArticle) error {
	cp := *a
	r.articles[cp.MediumID] = &cp
	return nil
}

func (r *stubRepo) UpdateByMediumID(_ context.Context, a *entity.MediumArticle) error {
	cp := *a
	r.articles[cp.MediumID] = &cp
	return nil
}

type stubFetcher struct {
	items   []syncUC.FeedItem
	err     error
	lastURL string
}

func (f *stubFetcher) Fetch(_ context.Context, feedURL string) ([]syncUC.FeedItem, error) {
	f.lastURL = feedURL
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

/* ───────── テスト ───────── */

func TestListHandler(t *testing.T) {
	repo := newStubRepo(&entity.MediumArticle{
		ID:          1,
		MediumID:    "https://medium.com/@me/post-1",
		Title:       "Post 1",
		Link:        "https://medium.com/@me/post-1",
		PublishedAt: time.Now(),
	})
	h := medium.ListHandler{Svc: &syncUC.Service{Repo: repo}}

	req := httptest.NewRequest("GET", "/medium", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var got []medium.DTO
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Post 1" {
		t.Errorf("unexpected list response: %+v", got)
	}
}

func TestSyncHandler(t *testing.T) {
	now := time.Now()
	excerpt := "already cached"
	repo := newStubRepo(&entity.MediumArticle{
		ID:          1,
		MediumID:    "https://medium.com/@me/old",
		Title:       "Old Title",
		Link:        "https://medium.com/@me/old",
		Excerpt:     &excerpt,
		PublishedAt: now,
	})
	fetcher := &stubFetcher{items: []syncUC.FeedItem{
		{MediumID: "https://medium.com/@me/old", Title: "Old Updated", URL: "https://medium.com/@me/old", PublishedAt: now},
		{MediumID: "https://medium.com/@me/new-1", Title: "New 1", URL: "https://medium.com/@me/new-1", PublishedAt: now},
		{MediumID: "https://medium.com/@me/new-2", Title: "New 2", URL: "https://medium.com/@me/new-2", PublishedAt: now},
	}}
	h := medium.SyncHandler{Svc: &syncUC.Service{Repo: repo, Fetcher: fetcher}}

	req := httptest.NewRequest("POST", "/medium/sync", strings.NewReader(`{"username":"me"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		OK      bool `json:"ok"`
		Total   int  `json:"total"`
		Created int  `json:"created"`
		Updated int  `json:"updated"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !got.OK || got.Total != 3 || got.Created != 2 || got.Updated != 1 {
		t.Errorf("unexpected sync stats: %+v", got)
	}
	if fetcher.lastURL != "https://medium.com/feed/@me" {
		t.Errorf("expected handle to expand to feed URL, got %q", fetcher.lastURL)
	}
}

func TestSyncHandler_QueryFeedURL(t *testing.T) {
	fetcher := &stubFetcher{}
	h := medium.SyncHandler{Svc: &syncUC.Service{Repo: newStubRepo(), Fetcher: fetcher}}

	req := httptest.NewRequest("POST", "/medium/sync?feedUrl=https://medium.com/feed/@someone", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if fetcher.lastURL != "https://medium.com/feed/@someone" {
		t.Errorf("expected feedUrl query to win, got %q", fetcher.lastURL)
	}
}

func TestSyncHandler_NoSource(t *testing.T) {
	h := medium.SyncHandler{Svc: &syncUC.Service{Repo: newStubRepo(), Fetcher: &stubFetcher{}}}

	t.Setenv("MEDIUM_USERNAME", "")
	t.Setenv("MEDIUM_FEED_URL", "")

	req := httptest.NewRequest("POST", "/medium/sync", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 without a source, got %d", rec.Code)
	}
}

func TestSyncHandler_EnvFallback(t *testing.T) {
	fetcher := &stubFetcher{}
	h := medium.SyncHandler{Svc: &syncUC.Service{Repo: newStubRepo(), Fetcher: fetcher}}

	t.Setenv("MEDIUM_USERNAME", "envuser")
	t.Setenv("MEDIUM_FEED_URL", "")

	req := httptest.NewRequest("POST", "/medium/sync", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if fetcher.lastURL != "https://medium.com/feed/@envuser" {
		t.Errorf("expected env username fallback, got %q", fetcher.lastURL)
	}
}

func TestSyncHandler_FetchFailure(t *testing.T) {
	fetcher := &stubFetcher{err: syncUC.ErrFeedFetch}
	h := medium.SyncHandler{Svc: &syncUC.Service{Repo: newStubRepo(), Fetcher: fetcher}}

	req := httptest.NewRequest("POST", "/medium/sync?username=me", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500 on fetch failure, got %d", rec.Code)
	}
}
