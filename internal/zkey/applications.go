package zkey

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tenant-platform/internal/model"
)

// ApplicationStore is the persistence behind Applications and the widget.
type ApplicationStore interface {
	GetTenant(ctx context.Context, id uuid.UUID) (*model.Tenant, error)
	CreateApplication(ctx context.Context, a *model.Application) error
	GetApplication(ctx context.Context, id uuid.UUID) (*model.Application, error)
	GetApplicationByClientID(ctx context.Context, clientID string) (*model.Application, error)
	ListApplications(ctx context.Context, tenantID uuid.UUID) ([]model.Application, error)
	UpdateApplication(ctx context.Context, a *model.Application) error
	UpdateApplicationSecret(ctx context.Context, id uuid.UUID, secretHash string) error
	DeleteApplication(ctx context.Context, id uuid.UUID) error
}

type CreateApplicationInput struct {
	Name                   string         `json:"name"`
	RedirectURIs           []string       `json:"redirect_uris"`
	PostLogoutRedirectURIs []string       `json:"post_logout_redirect_uris"`
	LoginMethods           []string       `json:"login_methods"`
	Branding               model.Branding `json:"branding"`
	DefaultLocale          string         `json:"default_locale"`
}

type UpdateApplicationInput struct {
	Name                   *string         `json:"name"`
	RedirectURIs           *[]string       `json:"redirect_uris"`
	PostLogoutRedirectURIs *[]string       `json:"post_logout_redirect_uris"`
	LoginMethods           *[]string       `json:"login_methods"`
	Branding               *model.Branding `json:"branding"`
	DefaultLocale          *string         `json:"default_locale"`
}

// Credentials carries the plaintext client secret, which is only ever
// returned on create and rotate.
type Credentials struct {
	Application  *model.Application `json:"application"`
	ClientSecret string             `json:"client_secret"`
}

// Applications manages OIDC client registrations.
type Applications struct {
	store   ApplicationStore
	locales *Localizer
}

func NewApplications(store ApplicationStore, locales *Localizer) *Applications {
	return &Applications{store: store, locales: locales}
}

func (s *Applications) Create(ctx context.Context, tenantID uuid.UUID, in CreateApplicationInput) (*Credentials, error) {
	if _, err := s.store.GetTenant(ctx, tenantID); err != nil {
		return nil, err
	}

	app := &model.Application{
		ID:                     uuid.New(),
		TenantID:               tenantID,
		Name:                   strings.TrimSpace(in.Name),
		RedirectURIs:           nonNil(in.RedirectURIs),
		PostLogoutRedirectURIs: nonNil(in.PostLogoutRedirectURIs),
		LoginMethods:           in.LoginMethods,
		Branding:               in.Branding,
		DefaultLocale:          in.DefaultLocale,
	}
	if err := s.validate(app); err != nil {
		return nil, err
	}

	clientID, err := newClientID()
	if err != nil {
		return nil, err
	}
	secret, hash, err := newSecret()
	if err != nil {
		return nil, err
	}
	app.ClientID = clientID
	app.ClientSecretHash = hash

	if err := s.store.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	return &Credentials{Application: app, ClientSecret: secret}, nil
}

func (s *Applications) Get(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	return s.store.GetApplication(ctx, id)
}

func (s *Applications) List(ctx context.Context, tenantID uuid.UUID) ([]model.Application, error) {
	if _, err := s.store.GetTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	apps, err := s.store.ListApplications(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []model.Application{}
	}
	return apps, nil
}

func (s *Applications) Update(ctx context.Context, id uuid.UUID, in UpdateApplicationInput) (*model.Application, error) {
	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		app.Name = strings.TrimSpace(*in.Name)
	}
	if in.RedirectURIs != nil {
		app.RedirectURIs = nonNil(*in.RedirectURIs)
	}
	if in.PostLogoutRedirectURIs != nil {
		app.PostLogoutRedirectURIs = nonNil(*in.PostLogoutRedirectURIs)
	}
	if in.LoginMethods != nil {
		app.LoginMethods = *in.LoginMethods
	}
	if in.Branding != nil {
		app.Branding = *in.Branding
	}
	if in.DefaultLocale != nil {
		app.DefaultLocale = *in.DefaultLocale
	}
	if err := s.validate(app); err != nil {
		return nil, err
	}
	if err := s.store.UpdateApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *Applications) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteApplication(ctx, id)
}

// RotateSecret replaces the client secret; the old one stops working.
func (s *Applications) RotateSecret(ctx context.Context, id uuid.UUID) (*Credentials, error) {
	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	secret, hash, err := newSecret()
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateApplicationSecret(ctx, id, hash); err != nil {
		return nil, err
	}
	app.ClientSecretHash = hash
	return &Credentials{Application: app, ClientSecret: secret}, nil
}

// VerifySecret authenticates a client. Unknown client ids and wrong secrets
// both return ErrForbidden.
func (s *Applications) VerifySecret(ctx context.Context, clientID, secret string) (*model.Application, error) {
	app, err := s.store.GetApplicationByClientID(ctx, clientID)
	if err != nil {
		return nil, model.ErrForbidden
	}
	if secret == "" {
		return nil, model.ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(app.ClientSecretHash), []byte(secret)); err != nil {
		return nil, model.ErrForbidden
	}
	return app, nil
}

func (s *Applications) validate(app *model.Application) error {
	if app.Name == "" || len(app.Name) > 120 {
		return invalid("name must be 1 to 120 characters")
	}
	if len(app.RedirectURIs) == 0 {
		return invalid("at least one redirect uri is required")
	}
	if err := validateRedirectURIs(app.RedirectURIs); err != nil {
		return err
	}
	if err := validateRedirectURIs(app.PostLogoutRedirectURIs); err != nil {
		return err
	}
	methods, err := normalizeLoginMethods(app.LoginMethods)
	if err != nil {
		return err
	}
	app.LoginMethods = methods
	if err := validateBranding(app.Branding); err != nil {
		return err
	}
	if app.DefaultLocale == "" {
		app.DefaultLocale = "en"
	}
	if s.locales != nil && !s.locales.Supports(app.DefaultLocale) {
		return invalid("default locale %q is not supported", app.DefaultLocale)
	}
	return nil
}

func newClientID() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate client id: %w", err)
	}
	return "zk_" + hex.EncodeToString(b), nil
}

func newSecret() (secret, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate secret: %w", err)
	}
	secret = base64.RawURLEncoding.EncodeToString(b)
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("hash secret: %w", err)
	}
	return secret, string(h), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
