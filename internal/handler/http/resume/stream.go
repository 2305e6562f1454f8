package resume

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
	resumeUC "personal-site/internal/usecase/resume"
)

type StreamHandler struct{ Svc *resumeUC.Service }

// ServeHTTP 履歴書ダウンロード
// @Summary      履歴書ダウンロード
// @Description  ファイル本体を返します。view=1 でブラウザ内表示になります。
// @Tags         resumes
// @Produce      application/octet-stream
// @Param        id path int true "履歴書ID"
// @Param        view query bool false "inline表示"
// @Success      200 "ファイル本体"
// @Failure      404 {string} string "Not found"
// @Router       /resumes/{id} [get]
func (h StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/resumes/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	view := r.URL.Query().Get("view")
	inline := view == "1" || view == "true"

	rec, stream, err := h.Svc.Stream(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}
	defer func() { _ = stream.Close() }()
	metrics.RecordAssetStream("resumes", inline)

	writeFileResponse(w, stream, rec.DisplayName, rec.MimeType, inline)
}

// writeFileResponse streams blob bytes with a correctly encoded
// Content-Disposition header. Non-ASCII display names are handled by
// mime.FormatMediaType per RFC 2231.
func writeFileResponse(w http.ResponseWriter, stream io.Reader, name string, mimeType *string, inline bool) {
	contentType := "application/octet-stream"
	if mimeType != nil && *mimeType != "" {
		contentType = *mimeType
	}

	kind := "attachment"
	if inline {
		kind = "inline"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType(kind, map[string]string{"filename": name}))

	if _, err := io.Copy(w, stream); err != nil {
		// ヘッダ送信後はエラー応答を返せない
		slog.Warn("asset stream interrupted", slog.String("error", err.Error()))
	}
}
