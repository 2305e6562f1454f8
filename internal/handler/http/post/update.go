package post

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/pathutil"
	"personal-site/internal/handler/http/respond"
	postUC "personal-site/internal/usecase/post"
)

type UpdateHandler struct{ Svc *postUC.Service }

// ServeHTTP 記事更新
// @Summary      記事更新
// @Description  記事を部分更新します。published_at に null を指定すると下書きに戻ります。
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "記事ID"
// @Param        post body object true "更新内容"
// @Success      200 {object} DTO "更新後の記事"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      404 {string} string "Not found"
// @Failure      409 {string} string "Conflict - slug already exists"
// @Router       /posts/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/posts/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	// 未指定のフィールドと null 指定を区別するため、一旦 RawMessage で受ける
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	in := postUC.UpdateInput{ID: id}
	if err := assignString(raw, "title", &in.Title); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := assignString(raw, "slug", &in.Slug); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := assignString(raw, "excerpt", &in.Excerpt); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := assignString(raw, "content", &in.Content); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := assignString(raw, "category", &in.Category); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if v, ok := raw["published_at"]; ok {
		in.SetPublishedAt = true
		if string(v) != "null" {
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				respond.SafeError(w, http.StatusBadRequest, err)
				return
			}
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				respond.SafeError(w, http.StatusBadRequest,
					errors.New("published_at must be in RFC3339 format"))
				return
			}
			in.PublishedAt = &t
		}
	}

	updated, err := h.Svc.Update(r.Context(), in)
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, entity.ErrNotFound):
			code = http.StatusNotFound
		case errors.Is(err, entity.ErrInvalidInput):
			code = http.StatusBadRequest
		case errors.Is(err, entity.ErrDuplicateSlug):
			code = http.StatusConflict
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(updated))
}

func assignString(raw map[string]json.RawMessage, key string, dst **string) error {
	v, ok := raw[key]
	if !ok || string(v) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return errors.New(key + " must be a string")
	}
	*dst = &s
	return nil
}
