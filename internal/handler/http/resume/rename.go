package resume

import (
	"encoding/json"
	"errors"
	"net/http"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/pathutil"
	"personal-site/internal/handler/http/respond"
	resumeUC "personal-site/internal/usecase/resume"
)

type RenameHandler struct{ Svc *resumeUC.Service }

// ServeHTTP 表示名変更
// @Summary      表示名変更
// @Tags         resumes
// @Security     BearerAuth
// @Accept       json
// @Param        id path int true "履歴書ID"
// @Success      204 "No Content"
// @Failure      400 {string} string "Bad request - display_name is required"
// @Failure      404 {string} string "Not found"
// @Router       /resumes/{id} [patch]
func (h RenameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/resumes/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Rename(r.Context(), id, req.DisplayName); err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, entity.ErrInvalidInput):
			code = http.StatusBadRequest
		case errors.Is(err, entity.ErrNotFound):
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
