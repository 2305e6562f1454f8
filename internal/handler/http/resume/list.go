package resume

import (
	"net/http"

	"personal-site/internal/handler/http/respond"
	resumeUC "personal-site/internal/usecase/resume"
)

type ListHandler struct{ Svc *resumeUC.Service }

// ServeHTTP 履歴書一覧取得
// @Summary      履歴書一覧取得
// @Tags         resumes
// @Produce      json
// @Success      200 {array} DTO "履歴書一覧"
// @Failure      401 {string} string "Unauthorized - folder is locked"
// @Router       /resumes [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resumes, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(resumes))
}
