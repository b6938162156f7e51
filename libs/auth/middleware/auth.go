package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/learnpath/backend/libs/auth/service"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenValidator validates an access token and returns its claims
type TokenValidator interface {
	ValidateAccessToken(token string) (*service.Claims, error)
}

// AuthMiddleware validates the JWT access token and stores the caller's claims in the context
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return RoleMiddleware(validator, service.RoleStudent)
}

// RoleMiddleware validates the JWT access token and checks that the caller's role is >= requiredRole
func RoleMiddleware(validator TokenValidator, requiredRole int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if claims.Role < requiredRole {
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// extractToken reads the token from the Authorization header, then from the access_token cookie
func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}

// WithClaims stores the caller's claims in the context
func WithClaims(ctx context.Context, claims *service.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) (int, bool) {
	claims, ok := ctx.Value(claimsKey).(*service.Claims)
	if !ok || claims == nil {
		return 0, false
	}
	return claims.UserID, true
}

// GetRole retrieves the caller's role from context
func GetRole(ctx context.Context) (int, bool) {
	claims, ok := ctx.Value(claimsKey).(*service.Claims)
	if !ok || claims == nil {
		return 0, false
	}
	return claims.Role, true
}
