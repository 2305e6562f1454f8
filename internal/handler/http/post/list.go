package post

import (
	"net/http"

	"personal-site/internal/handler/http/respond"
	postUC "personal-site/internal/usecase/post"
)

type ListHandler struct{ Svc *postUC.Service }

// ServeHTTP 記事一覧取得
// @Summary      記事一覧取得
// @Description  公開済みの記事を取得します。all=1 を指定すると下書きも含めて返します。
// @Tags         posts
// @Produce      json
// @Param        all query bool false "下書きを含める"
// @Success      200 {array} DTO "記事一覧"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /posts [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var (
		posts []DTO
		err   error
	)
	if all := r.URL.Query().Get("all"); all == "1" || all == "true" {
		posts, err = h.list(r)
	} else {
		posts, err = h.listPublished(r)
	}
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, posts)
}

func (h ListHandler) list(r *http.Request) ([]DTO, error) {
	posts, err := h.Svc.List(r.Context())
	if err != nil {
		return nil, err
	}
	return toDTOs(posts), nil
}

func (h ListHandler) listPublished(r *http.Request) ([]DTO, error) {
	posts, err := h.Svc.ListPublished(r.Context())
	if err != nil {
		return nil, err
	}
	return toDTOs(posts), nil
}
