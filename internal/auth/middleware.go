// internal/auth/middleware.go
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

const claimsKey contextKey = "claims"

// BearerVerifier turns a bearer token into claims. OIDC is one.
type BearerVerifier interface {
	VerifyBearer(ctx context.Context, raw string) (*Claims, error)
}

// Middleware authenticates admin requests with the service's own HS256
// tokens, falling back to fallback (if any) for tokens it did not mint.
func Middleware(fallback BearerVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeUnauthorized(w, "missing or invalid Authorization header")
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")
			claims, err := ValidateToken(tokenStr)
			if err != nil && fallback != nil {
				claims, err = fallback.VerifyBearer(r.Context(), tokenStr)
			}
			if err != nil {
				writeUnauthorized(w, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// JWTAuthMiddleware accepts only tokens minted by GenerateToken.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return Middleware(nil)(next)
}

// FromContext returns the authenticated claims, or nil.
func FromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsKey).(*Claims)
	return c
}

// WithClaims attaches claims to ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// GetTenantID extracts tenant_id from context
func GetTenantID(r *http.Request) string {
	if c := FromContext(r.Context()); c != nil {
		return c.TenantID
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
