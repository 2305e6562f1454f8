package template

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/pathutil"
	"personal-site/internal/handler/http/respond"
	"personal-site/internal/observability/metrics"
	templateUC "personal-site/internal/usecase/template"
)

type StreamHandler struct{ Svc *templateUC.Service }

// ServeHTTP テンプレートダウンロード
// @Summary      テンプレートダウンロード
// @Description  ファイル本体を返し、利用カウンタを加算します。view=1 でブラウザ内表示になります。
// @Tags         templates
// @Produce      application/octet-stream
// @Param        slug path string true "テンプレートスラッグ"
// @Param        view query bool false "inline表示"
// @Success      200 "ファイル本体"
// @Failure      404 {string} string "Not found"
// @Router       /templates/{slug} [get]
func (h StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug, err := pathutil.ExtractSlug(r.URL.Path, "/templates/", "")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	view := r.URL.Query().Get("view")
	inline := view == "1" || view == "true"

	tpl, stream, err := h.Svc.Stream(r.Context(), slug, inline)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}
	defer func() { _ = stream.Close() }()
	metrics.RecordAssetStream("templates", inline)

	contentType := "application/octet-stream"
	if tpl.MimeType != nil && *tpl.MimeType != "" {
		contentType = *tpl.MimeType
	}
	kind := "attachment"
	if inline {
		kind = "inline"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType(kind, map[string]string{"filename": tpl.DisplayName}))

	if _, err := io.Copy(w, stream); err != nil {
		slog.Warn("asset stream interrupted",
			slog.String("slug", slug),
			slog.String("error", err.Error()))
	}
}
