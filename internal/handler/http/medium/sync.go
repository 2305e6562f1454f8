package medium

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/respond"
	"personal-site/internal/observability/metrics"
	syncUC "personal-site/internal/usecase/mediumsync"
)

type SyncHandler struct{ Svc *syncUC.Service }

type syncResponse struct {
	OK      bool `json:"ok"`
	Total   int  `json:"total"`
	Created int  `json:"created"`
	Updated int  `json:"updated"`
}

// ServeHTTP Medium同期実行
// @Summary      Medium同期実行
// @Description  Mediumフィードを取得し、記事キャッシュを更新します。
//
//	同期元は username / feedUrl パラメータ、JSONボディ、
//	環境変数 MEDIUM_USERNAME / MEDIUM_FEED_URL の順で解決されます。
//
// @Tags         medium
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Success      200 {object} syncResponse "同期結果"
// @Failure      400 {string} string "Bad request - no sync source configured"
// @Failure      500 {string} string "Internal server error - feed fetch or parse failed"
// @Router       /medium/sync [post]
func (h SyncHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	source := h.resolveSource(r)
	if source == "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("no sync source: provide username or feedUrl, or set MEDIUM_USERNAME"))
		return
	}

	stats, err := h.Svc.Sync(r.Context(), source)
	metrics.RecordSyncRun(err == nil, time.Since(start))
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrInvalidInput) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}
	metrics.RecordArticlesUpserted(stats.Created, stats.Updated)

	respond.JSON(w, http.StatusOK, syncResponse{
		OK:      true,
		Total:   stats.Total,
		Created: stats.Created,
		Updated: stats.Updated,
	})
}

// resolveSource picks the feed source in priority order: query parameters,
// JSON body, then environment variables.
func (h SyncHandler) resolveSource(r *http.Request) string {
	q := r.URL.Query()
	if v := q.Get("feedUrl"); v != "" {
		return v
	}
	if v := q.Get("username"); v != "" {
		return v
	}

	if r.Body != nil && r.Method == http.MethodPost {
		var body struct {
			Username string `json:"username"`
			FeedURL  string `json:"feedUrl"`
		}
		// ボディなしは許容する
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			if body.FeedURL != "" {
				return body.FeedURL
			}
			if body.Username != "" {
				return body.Username
			}
		}
	}

	if v := os.Getenv("MEDIUM_FEED_URL"); v != "" {
		return v
	}
	return os.Getenv("MEDIUM_USERNAME")
}
