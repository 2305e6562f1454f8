package post

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/respond"
	postUC "personal-site/internal/usecase/post"
)

type CreateHandler struct{ Svc *postUC.Service }

// ServeHTTP 記事作成
// @Summary      記事作成
// @Description  新しい記事を作成します。スラッグ省略時はタイトルから生成されます。
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        post body object true "記事情報"
// @Success      201 {object} DTO "作成された記事"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required"
// @Failure      409 {string} string "Conflict - slug already exists"
// @Router       /posts [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string  `json:"title"`
		Slug        string  `json:"slug"`
		Excerpt     *string `json:"excerpt"`
		Content     string  `json:"content"`
		Category    *string `json:"category"`
		PublishedAt *string `json:"published_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Title == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("title is required"))
		return
	}

	var publishedAt *time.Time
	if req.PublishedAt != nil {
		t, err := time.Parse(time.RFC3339, *req.PublishedAt)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("published_at must be in RFC3339 format"))
			return
		}
		publishedAt = &t
	}

	created, err := h.Svc.Create(r.Context(), postUC.CreateInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		Category:    req.Category,
		PublishedAt: publishedAt,
	})
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, entity.ErrInvalidInput):
			code = http.StatusBadRequest
		case errors.Is(err, entity.ErrDuplicateSlug):
			code = http.StatusConflict
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(created))
}
