package post

import (
	"errors"
	"net/http"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/pathutil"
	"personal-site/internal/handler/http/respond"
	postUC "personal-site/internal/usecase/post"
)

type GetHandler struct{ Svc *postUC.Service }

// ServeHTTP 記事詳細取得
// @Summary      記事詳細取得
// @Description  ID もしくはスラッグで記事を取得します
// @Tags         posts
// @Produce      json
// @Param        id path string true "記事IDまたはスラッグ"
// @Success      200 {object} DTO "記事詳細"
// @Failure      400 {string} string "Bad request - invalid identifier"
// @Failure      404 {string} string "Not found"
// @Router       /posts/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var (
		found *entity.Post
		err   error
	)

	// 数値ならID、それ以外はスラッグとして扱う
	if id, idErr := pathutil.ExtractID(r.URL.Path, "/posts/"); idErr == nil {
		found, err = h.Svc.Get(r.Context(), id)
	} else {
		slug, slugErr := pathutil.ExtractSlug(r.URL.Path, "/posts/", "")
		if slugErr != nil {
			respond.SafeError(w, http.StatusBadRequest, slugErr)
			return
		}
		found, err = h.Svc.GetBySlug(r.Context(), slug)
	}

	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(found))
}
