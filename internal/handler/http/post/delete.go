package post

import (
	"errors"
	"net/http"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/pathutil"
	"personal-site/internal/handler/http/respond"
	postUC "personal-site/internal/usecase/post"
)

type DeleteHandler struct{ Svc *postUC.Service }

// ServeHTTP 記事削除
// @Summary      記事削除
// @Tags         posts
// @Security     BearerAuth
// @Param        id path int true "記事ID"
// @Success      204 "No Content"
// @Failure      404 {string} string "Not found"
// @Router       /posts/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/posts/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
