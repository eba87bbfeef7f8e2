package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// RoleAdmin may manage every tenant.
	RoleAdmin = "admin"
	// RoleTenantAdmin may manage only the tenant named in its token.
	RoleTenantAdmin = "tenant_admin"
)

// DefaultTTL is the lifetime of tokens minted by GenerateToken.
const DefaultTTL = 24 * time.Hour

var JWTSecret []byte

// SetSecret sets the JWT secret key (e.g., from config)
func SetSecret(secret string) {
	JWTSecret = []byte(secret)
}

// Claims represents the JWT payload
type Claims struct {
	TenantID string `json:"tenant_id,omitempty"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// CanAccessTenant reports whether the holder may act on tenantID.
func (c *Claims) CanAccessTenant(tenantID string) bool {
	if c == nil {
		return false
	}
	return c.Role == RoleAdmin || (c.Role == RoleTenantAdmin && c.TenantID == tenantID)
}

// GenerateToken creates a signed JWT for the given subject
func GenerateToken(subject, role, tenantID string) (string, error) {
	if len(JWTSecret) == 0 {
		return "", errors.New("JWT secret not set")
	}
	if role != RoleAdmin && role != RoleTenantAdmin {
		return "", fmt.Errorf("unknown role %q", role)
	}
	if role == RoleTenantAdmin && tenantID == "" {
		return "", errors.New("tenant_admin tokens need a tenant id")
	}

	claims := Claims{
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(DefaultTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// ValidateToken parses and verifies a JWT string
func ValidateToken(tokenStr string) (*Claims, error) {
	if len(JWTSecret) == 0 {
		return nil, errors.New("JWT secret not set")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	if claims.Role != RoleAdmin && claims.Role != RoleTenantAdmin {
		return nil, errors.New("invalid role")
	}

	return claims, nil
}
