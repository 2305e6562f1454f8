package resume

import (
	"encoding/json"
	"errors"
	"net/http"

	hhttp "personal-site/internal/handler/http"
	"personal-site/internal/handler/http/respond"
	"personal-site/internal/observability/metrics"
	"personal-site/internal/service/gate"
)

type UnlockHandler struct {
	Gate    *gate.Gate
	Limiter *hhttp.RateLimiter
}

// ServeHTTP 閲覧パスワード認証
// @Summary      閲覧パスワード認証
// @Description  共有パスワードを検証し、アクセス用クッキーを発行します
// @Tags         resumes
// @Accept       json
// @Success      200 "Unlocked"
// @Failure      400 {string} string "Bad request - password is required"
// @Failure      401 {string} string "Unauthorized - wrong password"
// @Failure      429 {string} string "Too many requests"
// @Failure      503 {string} string "Service unavailable - folder password not configured"
// @Router       /resumes/unlock [post]
func (h UnlockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.Gate.Configured() {
		metrics.RecordUnlockAttempt("unconfigured")
		respond.SafeError(w, http.StatusServiceUnavailable,
			errors.New("resume access is not configured"))
		return
	}

	// パスワード総当たり対策
	if h.Limiter != nil && !h.Limiter.Allow(hhttp.ExtractIP(r)) {
		metrics.RecordUnlockAttempt("rate_limited")
		respond.SafeError(w, http.StatusTooManyRequests,
			errors.New("too many unlock attempts"))
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("password is required"))
		return
	}

	token, ok := h.Gate.Unlock(req.Password)
	if !ok {
		metrics.RecordUnlockAttempt("failure")
		respond.SafeError(w, http.StatusUnauthorized, errors.New("wrong password"))
		return
	}
	metrics.RecordUnlockAttempt("success")

	http.SetCookie(w, &http.Cookie{
		Name:     h.Gate.CookieName(),
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Gate.CookieMaxAge().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Gated is a middleware that requires a valid unlock cookie. It returns
// 503 when no folder password is configured and 401 when the cookie is
// missing or stale.
func Gated(g *gate.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.Configured() {
				respond.SafeError(w, http.StatusServiceUnavailable,
					errors.New("resume access is not configured"))
				return
			}
			cookie, err := r.Cookie(g.CookieName())
			if err != nil || !g.Verify(cookie.Value) {
				respond.SafeError(w, http.StatusUnauthorized,
					errors.New("resume folder is locked"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
