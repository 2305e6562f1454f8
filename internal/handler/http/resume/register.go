package resume

import (
	"net/http"

	hhttp "personal-site/internal/handler/http"
	"personal-site/internal/handler/http/auth"
	"personal-site/internal/service/gate"
	resumeUC "personal-site/internal/usecase/resume"
)

// Register registers the résumé folder endpoints with the given mux.
// Reading requires the unlock cookie issued by POST /resumes/unlock;
// uploading, renaming and deleting require admin authentication.
func Register(mux *http.ServeMux, svc *resumeUC.Service, g *gate.Gate, limiter *hhttp.RateLimiter) {
	gated := Gated(g)

	mux.Handle("POST   /resumes/unlock", UnlockHandler{Gate: g, Limiter: limiter})

	mux.Handle("GET    /resumes", gated(ListHandler{svc}))
	mux.Handle("GET    /resumes/", gated(StreamHandler{svc}))

	mux.Handle("POST   /resumes", auth.Authz(UploadHandler{svc}))
	mux.Handle("PATCH  /resumes/", auth.Authz(RenameHandler{svc}))
	mux.Handle("DELETE /resumes/", auth.Authz(DeleteHandler{svc}))
}
