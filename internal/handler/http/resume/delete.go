package resume

import (
	"errors"
	"net/http"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/pathutil"
	"personal-site/internal/handler/http/respond"
	resumeUC "personal-site/internal/usecase/resume"
)

type DeleteHandler struct{ Svc *resumeUC.Service }

// ServeHTTP 履歴書削除
// @Summary      履歴書削除
// @Tags         resumes
// @Security     BearerAuth
// @Param        id path int true "履歴書ID"
// @Success      204 "No Content"
// @Failure      404 {string} string "Not found"
// @Router       /resumes/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/resumes/")
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
