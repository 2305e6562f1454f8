package medium

import (
	"net/http"

	"personal-site/internal/handler/http/respond"
	syncUC "personal-site/internal/usecase/mediumsync"
)

type ListHandler struct{ Svc *syncUC.Service }

// ServeHTTP Medium記事一覧取得
// @Summary      Medium記事一覧取得
// @Description  同期済みのMedium記事を新しい順に返します
// @Tags         medium
// @Produce      json
// @Success      200 {array} DTO "記事一覧"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /medium [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	respond.JSON(w, http.StatusOK, out)
}
