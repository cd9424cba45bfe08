// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"autoparts-api/config"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func authConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: testSecret, Issuer: "autoparts-store"}
}

func signToken(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func baseClaims() Claims {
	return Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "autoparts-store",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func runAuth(t *testing.T, token string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	am := NewAuthMiddleware(authConfig(), zap.NewNop())

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	am.Require(next).ServeHTTP(rec, req)

	return rec, gotUserID
}

func TestAuthRequireValidToken(t *testing.T) {
	rec, userID := runAuth(t, signToken(t, baseClaims(), testSecret))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if userID != "user-1" {
		t.Errorf("user id = %q, want user-1", userID)
	}
}

func TestAuthRequireMissingHeader(t *testing.T) {
	rec, _ := runAuth(t, "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthRequireBadSignature(t *testing.T) {
	rec, _ := runAuth(t, signToken(t, baseClaims(), "wrong-secret"))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestAuthRequireWrongIssuer(t *testing.T) {
	claims := baseClaims()
	claims.Issuer = "someone-else"
	rec, _ := runAuth(t, signToken(t, claims, testSecret))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestAuthRequireExpiredToken(t *testing.T) {
	claims := baseClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	rec, _ := runAuth(t, signToken(t, claims, testSecret))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestAuthRequireSubjectFallback(t *testing.T) {
	claims := baseClaims()
	claims.UserID = ""
	rec, userID := runAuth(t, signToken(t, claims, testSecret))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if userID != "user-1" {
		t.Errorf("user id = %q, want subject fallback user-1", userID)
	}
}
