package medium

import (
	"net/http"

	"personal-site/internal/handler/http/auth"
	syncUC "personal-site/internal/usecase/mediumsync"
)

// Register registers the Medium article endpoints with the given mux.
// The article list is public; triggering a sync requires admin
// authentication.
func Register(mux *http.ServeMux, svc *syncUC.Service) {
	mux.Handle("GET    /medium", ListHandler{svc})
	mux.Handle("POST   /medium/sync", auth.Authz(SyncHandler{svc}))
}
