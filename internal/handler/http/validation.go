package http

import (
	"net/http"
)

// InputValidation returns middleware that enforces limits on request
// metadata:
//   - Authorization header size (8KB)
//   - URI path length (2KB)
//
// Body size limits are handled separately by LimitRequestBody, since
// upload endpoints need a much larger cap than JSON endpoints.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// JWTは通常1KB未満だが、余裕を持たせる
			if len(r.Header.Get("Authorization")) > 8192 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"authorization header too large"}`))
				return
			}

			if len(r.URL.Path) > 2048 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestURITooLong)
				_, _ = w.Write([]byte(`{"error":"URI too long"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
