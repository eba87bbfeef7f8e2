// internal/model/application.go
package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	LoginOTPPhone = "otp_phone"
	LoginOTPEmail = "otp_email"
	LoginPassword = "password"
	LoginWallet   = "wallet"
)

// Branding is the look of the hosted login widget. Empty fields fall back to
// the tenant's branding settings.
type Branding struct {
	LogoURL         string `json:"logo_url,omitempty"`
	PrimaryColor    string `json:"primary_color,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	Title           string `json:"title,omitempty"`
}

// Application is an OIDC client registered with the zkey auth service.
type Application struct {
	ID                     uuid.UUID `db:"id" json:"id"`
	TenantID               uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name                   string    `db:"name" json:"name"`
	ClientID               string    `db:"client_id" json:"client_id"`
	ClientSecretHash       string    `db:"client_secret_hash" json:"-"`
	RedirectURIs           []string  `db:"redirect_uris" json:"redirect_uris"`
	PostLogoutRedirectURIs []string  `db:"post_logout_redirect_uris" json:"post_logout_redirect_uris"`
	LoginMethods           []string  `db:"login_methods" json:"login_methods"`
	Branding               Branding  `db:"branding" json:"branding"`
	DefaultLocale          string    `db:"default_locale" json:"default_locale"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time `db:"updated_at" json:"updated_at"`
}

// HasLoginMethod reports whether method is enabled for the application.
func (a *Application) HasLoginMethod(method string) bool {
	for _, m := range a.LoginMethods {
		if m == method {
			return true
		}
	}
	return false
}
