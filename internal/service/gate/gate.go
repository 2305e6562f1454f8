// Package gate implements the access gate protecting the résumé
// endpoints. A single shared password unlocks a cookie token; the
// token is a salted hash of the password, so the cookie never carries
// the password itself.
package gate

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

// Gate verifies unlock passwords and issued cookie tokens.
// The zero password means the gate is unconfigured and every gated
// endpoint must answer 503 rather than 401.
type Gate struct {
	expected     string // token for the configured password, "" when unconfigured
	salt         string
	cookieName   string
	cookieMaxAge time.Duration
}

// Option configures a Gate.
type Option func(*Gate)

// WithSalt overrides the token salt.
func WithSalt(salt string) Option {
	return func(g *Gate) { g.salt = salt }
}

// WithCookie overrides the cookie name and lifetime.
func WithCookie(name string, maxAge time.Duration) Option {
	return func(g *Gate) {
		g.cookieName = name
		g.cookieMaxAge = maxAge
	}
}

// New creates a Gate for the given shared password. An empty password
// produces an unconfigured gate.
func New(password string, opts ...Option) *Gate {
	g := &Gate{
		salt:         "resumes-private-folder",
		cookieName:   "resumes_access",
		cookieMaxAge: 7 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(g)
	}
	if password != "" {
		g.expected = g.token(password)
	}
	return g
}

// Configured reports whether a password has been set.
func (g *Gate) Configured() bool {
	return g.expected != ""
}

// Unlock checks the password and, on success, returns the cookie token.
func (g *Gate) Unlock(password string) (string, bool) {
	if !g.Configured() || password == "" {
		return "", false
	}
	candidate := g.token(password)
	if !constantTimeEqual(candidate, g.expected) {
		return "", false
	}
	return candidate, true
}

// Verify reports whether token is the valid cookie token.
func (g *Gate) Verify(token string) bool {
	return g.Configured() && constantTimeEqual(token, g.expected)
}

// CookieName returns the name of the access cookie.
func (g *Gate) CookieName() string {
	return g.cookieName
}

// CookieMaxAge returns the lifetime of the access cookie.
func (g *Gate) CookieMaxAge() time.Duration {
	return g.cookieMaxAge
}

func (g *Gate) token(password string) string {
	sum := sha256.Sum256([]byte(password + g.salt))
	return hex.EncodeToString(sum[:])
}

// タイミング攻撃対策として一定時間での比較を行う
func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
