package template

import (
	"errors"
	"net/http"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/pathutil"
	"personal-site/internal/handler/http/respond"
	templateUC "personal-site/internal/usecase/template"
)

type ShareHandler struct{ Svc *templateUC.Service }

// ServeHTTP 共有リンク発行
// @Summary      共有リンク発行
// @Description  テンプレートの公開URLを返し、共有カウンタを加算します
// @Tags         templates
// @Produce      json
// @Param        slug path string true "テンプレートスラッグ"
// @Success      200 {object} object "共有URL"
// @Failure      404 {string} string "Not found"
// @Router       /templates/{slug}/share [post]
func (h ShareHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug, err := pathutil.ExtractSlug(r.URL.Path, "/templates/", "/share")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	url, err := h.Svc.Share(r.Context(), slug)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"url": url})
}
