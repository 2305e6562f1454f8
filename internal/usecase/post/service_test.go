package post_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"personal-site/internal/domain/entity"
	postUC "personal-site/internal/usecase/post"
)

/* ───────── スタブ実装 ───────── */

// 最小限のインメモリ PostRepository(slug一意制約を再現)
type stubRepo struct {
	mu     sync.Mutex
	data   map[int64]*entity.Post
	nextID int64
	err    error
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Post{}, nextID: 1}
}

func (s *stubRepo) slugTaken(slug string, exceptID int64) bool {
	for _, p := range s.data {
		if p.Slug == slug && p.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *stubRepo) List(_ context.Context) ([]*entity.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Post
	for _, p := range s.data {
		out = append(out, p)
	}
	return out, s.err
}

func (s *stubRepo) ListPublished(_ context.Context) ([]*entity.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Post
	for _, p := range s.data {
		if p.Published() {
			out = append(out, p)
		}
	}
	return out, s.err
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[id], s.err
}

func (s *stubRepo) GetBySlug(_ context.Context, slug string) (*entity.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.data {
		if p.Slug == slug {
			return p, s.err
		}
	}
	return nil, s.err
}

func (s *stubRepo) Create(_ context.Context, p *entity.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.slugTaken(p.Slug, 0) {
		return entity.ErrDuplicateSlug
	}
	p.ID = s.nextID
	s.nextID++
	cp := *p
	s.data[p.ID] = &cp
	return nil
}

func (s *stubRepo) Update(_ context.Context, p *entity.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[p.ID]; !ok {
		return entity.ErrNotFound
	}
	if s.slugTaken(p.Slug, p.ID) {
		return entity.ErrDuplicateSlug
	}
	cp := *p
	s.data[p.ID] = &cp
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.data, id)
	return nil
}

// ミラー書き込みを記録するスタブ
type stubArchive struct {
	mu      sync.Mutex
	written []string
	removed []string
	done    chan struct{}
}

func newStubArchive(expected int) *stubArchive {
	return &stubArchive{done: make(chan struct{}, expected)}
}

func (a *stubArchive) WritePost(_ context.Context, p *entity.Post) error {
	a.mu.Lock()
	a.written = append(a.written, p.Slug)
	a.mu.Unlock()
	a.done <- struct{}{}
	return nil
}

func (a *stubArchive) RemovePost(_ context.Context, slug string) error {
	a.mu.Lock()
	a.removed = append(a.removed, slug)
	a.mu.Unlock()
	a.done <- struct{}{}
	return nil
}

func (a *stubArchive) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-a.done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for archive call")
		}
	}
}

/* ───────── テスト ───────── */

func TestService_Create_DerivesSlugFromTitle(t *testing.T) {
	svc := &postUC.Service{Repo: newStub()}

	p, err := svc.Create(context.Background(), postUC.CreateInput{
		Title:   "My First Post!",
		Content: "body",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.Slug != "my-first-post" {
		t.Errorf("slug = %q, want my-first-post", p.Slug)
	}
	if p.Published() {
		t.Error("post without publishedAt must be a draft")
	}
}

func TestService_Create_SlugCollisionSuffix(t *testing.T) {
	repo := newStub()
	svc := &postUC.Service{Repo: repo}
	ctx := context.Background()

	first, err := svc.Create(ctx, postUC.CreateInput{Title: "Same Title", Content: "a"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Create(ctx, postUC.CreateInput{Title: "Same Title", Content: "b"})
	if err != nil {
		t.Fatal(err)
	}
	third, err := svc.Create(ctx, postUC.CreateInput{Title: "Same Title", Content: "c"})
	if err != nil {
		t.Fatal(err)
	}

	if first.Slug != "same-title" || second.Slug != "same-title-2" || third.Slug != "same-title-3" {
		t.Errorf("slugs = %q, %q, %q", first.Slug, second.Slug, third.Slug)
	}
}

func TestService_Create_EmptyTitle(t *testing.T) {
	svc := &postUC.Service{Repo: newStub()}

	_, err := svc.Create(context.Background(), postUC.CreateInput{Content: "body"})
	if !errors.Is(err, entity.ErrInvalidInput) {
		t.Fatalf("Create() error = %v, want ErrInvalidInput", err)
	}
}

func TestService_Create_MirrorsToArchive(t *testing.T) {
	archive := newStubArchive(1)
	svc := &postUC.Service{Repo: newStub(), Archive: archive}

	if _, err := svc.Create(context.Background(), postUC.CreateInput{Title: "Mirrored", Content: "x"}); err != nil {
		t.Fatal(err)
	}
	archive.wait(t, 1)

	if len(archive.written) != 1 || archive.written[0] != "mirrored" {
		t.Errorf("archive written = %v", archive.written)
	}
}

func TestService_Update_TogglesDraftState(t *testing.T) {
	repo := newStub()
	svc := &postUC.Service{Repo: repo}
	ctx := context.Background()

	publishedAt := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	p, err := svc.Create(ctx, postUC.CreateInput{Title: "Live", Content: "x", PublishedAt: &publishedAt})
	if err != nil {
		t.Fatal(err)
	}

	// SetPublishedAtフラグ付きのnilで下書きに戻す
	updated, err := svc.Update(ctx, postUC.UpdateInput{ID: p.ID, SetPublishedAt: true})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Published() {
		t.Error("expected draft after unpublish")
	}
	if !updated.UpdatedAt.After(p.UpdatedAt) && !updated.UpdatedAt.Equal(p.UpdatedAt) {
		t.Error("updated_at must be refreshed")
	}

	// フラグなしのnilは既存値を保持する
	title := "Live again"
	kept, err := svc.Update(ctx, postUC.UpdateInput{ID: p.ID, Title: &title})
	if err != nil {
		t.Fatal(err)
	}
	if kept.Title != "Live again" {
		t.Errorf("title = %q", kept.Title)
	}
}

func TestService_Update_SlugChangeRemovesOldMirror(t *testing.T) {
	archive := newStubArchive(3)
	svc := &postUC.Service{Repo: newStub(), Archive: archive}
	ctx := context.Background()

	p, err := svc.Create(ctx, postUC.CreateInput{Title: "Old Name", Content: "x"})
	if err != nil {
		t.Fatal(err)
	}
	archive.wait(t, 1)

	newSlug := "new-name"
	if _, err := svc.Update(ctx, postUC.UpdateInput{ID: p.ID, Slug: &newSlug}); err != nil {
		t.Fatal(err)
	}
	archive.wait(t, 2)

	archive.mu.Lock()
	defer archive.mu.Unlock()
	if len(archive.removed) != 1 || archive.removed[0] != "old-name" {
		t.Errorf("removed = %v, want [old-name]", archive.removed)
	}
	if archive.written[len(archive.written)-1] != "new-name" {
		t.Errorf("written = %v", archive.written)
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc := &postUC.Service{Repo: newStub()}

	_, err := svc.Update(context.Background(), postUC.UpdateInput{ID: 42})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestService_Delete(t *testing.T) {
	repo := newStub()
	archive := newStubArchive(2)
	svc := &postUC.Service{Repo: repo, Archive: archive}
	ctx := context.Background()

	p, err := svc.Create(ctx, postUC.CreateInput{Title: "Doomed", Content: "x"})
	if err != nil {
		t.Fatal(err)
	}
	archive.wait(t, 1)

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	archive.wait(t, 1)

	if _, err := svc.Get(ctx, p.ID); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, p.ID); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("second Delete = %v, want ErrNotFound", err)
	}
}
