package template

import (
	"net/http"

	"personal-site/internal/handler/http/respond"
	templateUC "personal-site/internal/usecase/template"
)

type ListHandler struct{ Svc *templateUC.Service }

// ServeHTTP テンプレート一覧取得
// @Summary      テンプレート一覧取得
// @Description  利用カウンタ付きでテンプレートを返します
// @Tags         templates
// @Produce      json
// @Success      200 {array} DTO "テンプレート一覧"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /templates [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(templates))
}
