// internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"autoparts-api/config"
	"autoparts-api/pkg/response"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const ContextUserID contextKey = "userID"

type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies HMAC-signed bearer tokens issued by the
// storefront's identity provider and places the subject user ID in the
// request context.
type AuthMiddleware struct {
	cfg    config.AuthConfig
	logger *zap.Logger
}

func NewAuthMiddleware(cfg config.AuthConfig, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg, logger: logger}
}

func (am *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Error(w, http.StatusUnauthorized, "no token provided")
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims := new(Claims)
		parser := jwt.NewParser(
			jwt.WithIssuer(am.cfg.Issuer),
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			return []byte(am.cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			am.logger.Warn("rejected bearer token",
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err))
			response.Error(w, http.StatusForbidden, "invalid token")
			return
		}

		userID := claims.UserID
		if userID == "" {
			userID = claims.Subject
		}
		if userID == "" {
			response.Error(w, http.StatusForbidden, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ContextUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated user ID, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ContextUserID).(string)
	return userID, ok && userID != ""
}
