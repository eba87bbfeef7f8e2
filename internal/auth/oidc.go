package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc"
	"golang.org/x/oauth2"
)

const stateCookie = "oauthstate"

type OIDCConfig struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// OIDC lets dashboard operators sign in through an OpenID Connect issuer
// (normally the zkey service itself). Successful logins are exchanged for
// the service's own admin tokens.
type OIDC struct {
	oauth2Config *oauth2.Config
	verifier     *oidc.IDTokenVerifier
	apiVerifier  *oidc.IDTokenVerifier
}

func NewOIDC(ctx context.Context, cfg OIDCConfig) (*OIDC, error) {
	if cfg.Issuer == "" || cfg.ClientID == "" {
		return nil, errors.New("oidc: issuer and client id are required")
	}
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc: discover %s: %w", cfg.Issuer, err)
	}
	return &OIDC{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		// Access tokens usually carry an API audience, not our client id.
		apiVerifier: provider.Verifier(&oidc.Config{SkipClientIDCheck: true}),
	}, nil
}

type idClaims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
}

func (c idClaims) toClaims(subject string) (*Claims, error) {
	out := &Claims{Email: c.Email, TenantID: c.TenantID}
	out.Subject = subject
	switch {
	case c.Role == RoleAdmin:
		out.Role = RoleAdmin
	case c.TenantID != "":
		out.Role = RoleTenantAdmin
	default:
		return nil, errors.New("oidc: token grants no tenant")
	}
	return out, nil
}

// VerifyBearer validates a bearer token issued by the OIDC provider.
func (o *OIDC) VerifyBearer(ctx context.Context, raw string) (*Claims, error) {
	tok, err := o.apiVerifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	var c idClaims
	if err := tok.Claims(&c); err != nil {
		return nil, err
	}
	return c.toClaims(tok.Subject)
}

// LoginHandler starts the authorization code flow.
func (o *OIDC) LoginHandler(w http.ResponseWriter, r *http.Request) {
	state, err := generateState()
	if err != nil {
		http.Error(w, "failed to generate state", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, o.oauth2Config.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// CallbackHandler finishes the flow and responds with an admin token.
func (o *OIDC) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil || r.URL.Query().Get("state") != cookie.Value {
		http.Error(w, "invalid state", http.StatusBadRequest)
		return
	}

	token, err := o.oauth2Config.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		http.Error(w, "token exchange failed", http.StatusBadGateway)
		return
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		http.Error(w, "no id_token in token response", http.StatusBadGateway)
		return
	}
	idToken, err := o.verifier.Verify(r.Context(), rawIDToken)
	if err != nil {
		http.Error(w, "failed to verify id token", http.StatusUnauthorized)
		return
	}

	var c idClaims
	if err := idToken.Claims(&c); err != nil {
		http.Error(w, "failed to parse token claims", http.StatusUnauthorized)
		return
	}
	claims, err := c.toClaims(idToken.Subject)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	access, err := GenerateToken(claims.Subject, claims.Role, claims.TenantID)
	if err != nil {
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"access_token": access,
		"token_type":   "Bearer",
	})
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
