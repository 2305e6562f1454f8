package post

import (
	"net/http"

	"personal-site/internal/handler/http/auth"
	postUC "personal-site/internal/usecase/post"
)

// Register registers all post-related HTTP handlers with the given mux.
// Read endpoints are public; create, update and delete require admin
// authentication.
func Register(mux *http.ServeMux, svc *postUC.Service) {
	mux.Handle("GET    /posts", ListHandler{svc})
	mux.Handle("GET    /posts/", GetHandler{svc})

	mux.Handle("POST   /posts", auth.Authz(CreateHandler{svc}))
	mux.Handle("PUT    /posts/", auth.Authz(UpdateHandler{svc}))
	mux.Handle("DELETE /posts/", auth.Authz(DeleteHandler{svc}))
}
