package template_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"personal-site/internal/domain/entity"
	"personal-site/internal/infra/blob"
	templateUC "personal-site/internal/usecase/template"
)

/* ───────── スタブ実装 ───────── */

// slug一意制約を再現するインメモリ TemplateRepository
type stubRepo struct {
	mu       sync.Mutex
	data     map[string]*entity.Template
	nextID   int64
	counters map[string]map[entity.Counter]int
	incErr   error
}

func newStub() *stubRepo {
	return &stubRepo{
		data:     map[string]*entity.Template{},
		nextID:   1,
		counters: map[string]map[entity.Counter]int{},
	}
}

func (s *stubRepo) List(_ context.Context) ([]*entity.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Template
	for _, t := range s.data {
		out = append(out, t)
	}
	return out, nil
}

func (s *stubRepo) GetBySlug(_ context.Context, slug string) (*entity.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[slug], nil
}

func (s *stubRepo) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[slug]
	return ok, nil
}

func (s *stubRepo) Create(_ context.Context, t *entity.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[t.Slug]; ok {
		return entity.ErrDuplicateSlug
	}
	t.ID = s.nextID
	s.nextID++
	s.data[t.Slug] = t
	return nil
}

func (s *stubRepo) IncrementCounter(_ context.Context, slug string, counter entity.Counter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incErr != nil {
		return s.incErr
	}
	if _, ok := s.data[slug]; !ok {
		return entity.ErrNotFound
	}
	if s.counters[slug] == nil {
		s.counters[slug] = map[entity.Counter]int{}
	}
	s.counters[slug][counter]++
	return nil
}

func (s *stubRepo) count(slug string, counter entity.Counter) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[slug][counter]
}

func newService() (*templateUC.Service, *stubRepo, *blob.MemoryStore) {
	repo := newStub()
	store := blob.NewMemoryStore()
	svc := &templateUC.Service{Repo: repo, Store: store, SiteURL: "https://example.com/"}
	return svc, repo, store
}

func htmlFile(name string) templateUC.FileInput {
	return templateUC.FileInput{Filename: name, Data: []byte("<html></html>"), ContentType: "text/html"}
}

/* ───────── テスト ───────── */

func TestService_Dispatch_AllocatesSlugs(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	added, err := svc.Dispatch(ctx, []templateUC.FileInput{
		htmlFile("Invoice Template.html"),
		htmlFile("Invoice Template.html"),
		htmlFile("Invoice Template.html"),
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(added) != 3 {
		t.Fatalf("added = %d, want 3", len(added))
	}

	want := []string{"invoice-template", "invoice-template-2", "invoice-template-3"}
	for i, rec := range added {
		if rec.Slug != want[i] {
			t.Errorf("slug[%d] = %q, want %q", i, rec.Slug, want[i])
		}
	}
}

func TestService_Dispatch_SlugFallback(t *testing.T) {
	svc, _, _ := newService()

	added, err := svc.Dispatch(context.Background(), []templateUC.FileInput{htmlFile("___.html")})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if added[0].Slug != "doc" {
		t.Errorf("slug = %q, want doc", added[0].Slug)
	}
}

func TestService_Dispatch_HTMLAllowedPNGNot(t *testing.T) {
	svc, _, store := newService()

	added, err := svc.Dispatch(context.Background(), []templateUC.FileInput{
		htmlFile("page.htm"),
		{Filename: "logo.png", Data: []byte("x")},
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("added = %d, want 1", len(added))
	}
	if store.Len() != 1 {
		t.Errorf("store blobs = %d, want 1", store.Len())
	}
}

func TestService_Dispatch_StorageFailureAborts(t *testing.T) {
	svc, _, store := newService()
	store.PutErr = errors.New("bucket gone")

	_, err := svc.Dispatch(context.Background(), []templateUC.FileInput{htmlFile("a.html")})
	if !errors.Is(err, templateUC.ErrStorage) {
		t.Fatalf("Dispatch() error = %v, want ErrStorage", err)
	}
}

func TestService_Stream_CountsByDisposition(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	if _, err := svc.Dispatch(ctx, []templateUC.FileInput{htmlFile("counted.html")}); err != nil {
		t.Fatal(err)
	}

	// inline=ビュー、attachment=ダウンロード
	for i := 0; i < 2; i++ {
		rec, stream, err := svc.Stream(ctx, "counted", true)
		if err != nil {
			t.Fatalf("Stream(inline) error = %v", err)
		}
		_, _ = io.ReadAll(stream)
		_ = stream.Close()
		if rec.DisplayName != "counted.html" {
			t.Errorf("DisplayName = %q", rec.DisplayName)
		}
	}
	if _, stream, err := svc.Stream(ctx, "counted", false); err != nil {
		t.Fatalf("Stream(attachment) error = %v", err)
	} else {
		_ = stream.Close()
	}

	if got := repo.count("counted", entity.CounterView); got != 2 {
		t.Errorf("view count = %d, want 2", got)
	}
	if got := repo.count("counted", entity.CounterDownload); got != 1 {
		t.Errorf("download count = %d, want 1", got)
	}
}

func TestService_Stream_ConcurrentViews(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	if _, err := svc.Dispatch(ctx, []templateUC.FileInput{htmlFile("popular.html")}); err != nil {
		t.Fatal(err)
	}

	// 同時アクセスでもビュー数は1件も取りこぼさない
	const viewers = 25
	var wg sync.WaitGroup
	for i := 0; i < viewers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, stream, err := svc.Stream(ctx, "popular", true)
			if err != nil {
				t.Errorf("Stream() error = %v", err)
				return
			}
			_, _ = io.ReadAll(stream)
			_ = stream.Close()
		}()
	}
	wg.Wait()

	if got := repo.count("popular", entity.CounterView); got != viewers {
		t.Errorf("view count = %d, want %d", got, viewers)
	}
	if got := repo.count("popular", entity.CounterDownload); got != 0 {
		t.Errorf("download count = %d, want 0", got)
	}
}

func TestService_Stream_CounterFailureStillStreams(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	if _, err := svc.Dispatch(ctx, []templateUC.FileInput{htmlFile("resilient.html")}); err != nil {
		t.Fatal(err)
	}
	repo.incErr = errors.New("deadlock")

	_, stream, err := svc.Stream(ctx, "resilient", true)
	if err != nil {
		t.Fatalf("Stream() error = %v, counter failure must not block delivery", err)
	}
	_ = stream.Close()
}

func TestService_Stream_NotFound(t *testing.T) {
	svc, _, _ := newService()

	_, _, err := svc.Stream(context.Background(), "ghost", true)
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("Stream() error = %v, want ErrNotFound", err)
	}
}

func TestService_Share(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	if _, err := svc.Dispatch(ctx, []templateUC.FileInput{htmlFile("shared.html")}); err != nil {
		t.Fatal(err)
	}

	url, err := svc.Share(ctx, "shared")
	if err != nil {
		t.Fatalf("Share() error = %v", err)
	}
	if url != "https://example.com/templates/shared" {
		t.Errorf("url = %q", url)
	}
	if got := repo.count("shared", entity.CounterShare); got != 1 {
		t.Errorf("share count = %d, want 1", got)
	}

	if _, err := svc.Share(ctx, "ghost"); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("Share(ghost) = %v, want ErrNotFound", err)
	}
}
