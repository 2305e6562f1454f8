package template

import (
	"net/http"

	"personal-site/internal/handler/http/auth"
	templateUC "personal-site/internal/usecase/template"
)

// Register registers the template gallery endpoints with the given mux.
// The gallery is public; uploading requires admin authentication.
func Register(mux *http.ServeMux, svc *templateUC.Service) {
	mux.Handle("GET    /templates", ListHandler{svc})
	mux.Handle("GET    /templates/", StreamHandler{svc})
	mux.Handle("POST   /templates/{slug}/share", ShareHandler{svc})

	mux.Handle("POST   /templates", auth.Authz(UploadHandler{svc}))
}
