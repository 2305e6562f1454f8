package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func setAdminEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "correct-horse-battery-staple")
	t.Setenv("JWT_SECRET", testSecret)
}

func TestTokenHandler_Success(t *testing.T) {
	setAdminEnv(t)

	handler := TokenHandler(24 * time.Hour)

	body := `{"email":"admin@example.com","password":"correct-horse-battery-staple"}`
	req := httptest.NewRequest("POST", "/auth/token", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp tokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected non-empty token")
	}

	// 発行されたトークンの中身を検証する
	tok, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if claims["sub"] != "admin@example.com" {
		t.Errorf("expected sub 'admin@example.com', got %v", claims["sub"])
	}
	if claims["role"] != "admin" {
		t.Errorf("expected role 'admin', got %v", claims["role"])
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatal("expected exp claim")
	}
	wantExp := time.Now().Add(24 * time.Hour).Unix()
	if diff := wantExp - int64(exp); diff < -60 || diff > 60 {
		t.Errorf("exp claim off by %d seconds", diff)
	}
}

func TestTokenHandler_InvalidCredentials(t *testing.T) {
	setAdminEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"admin@example.com","password":"wrong"}`},
		{"wrong email", `{"email":"other@example.com","password":"correct-horse-battery-staple"}`},
		{"empty credentials", `{"email":"","password":""}`},
	}

	handler := TokenHandler(24 * time.Hour)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/auth/token", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
			}
		})
	}
}

func TestTokenHandler_InvalidBody(t *testing.T) {
	setAdminEnv(t)

	handler := TokenHandler(24 * time.Hour)

	req := httptest.NewRequest("POST", "/auth/token", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestTokenHandler_UnconfiguredAdmin(t *testing.T) {
	// 管理者アカウント未設定時はどの資格情報も拒否する
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("JWT_SECRET", testSecret)

	handler := TokenHandler(24 * time.Hour)

	req := httptest.NewRequest("POST", "/auth/token", strings.NewReader(`{"email":"","password":""}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}
