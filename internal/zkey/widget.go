package zkey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"tenant-platform/internal/model"
	"tenant-platform/internal/settings"
)

// ErrRateLimited is returned when an interaction exceeds its attempt budget.
var ErrRateLimited = errors.New("too many attempts")

// View is everything the login page needs to render.
type View struct {
	UID             string            `json:"uid"`
	Prompt          string            `json:"prompt"`
	ClientID        string            `json:"client_id"`
	ApplicationName string            `json:"application_name"`
	TenantName      string            `json:"tenant_name"`
	Locale          string            `json:"locale"`
	Branding        model.Branding    `json:"branding"`
	Methods         []string          `json:"methods"`
	Messages        map[string]string `json:"messages"`
}

// Widget serves the hosted login page for an interaction and proxies each
// login step to the auth service.
type Widget struct {
	client         *Client
	store          ApplicationStore
	locales        *Localizer
	limiter        *Limiter
	walletLinkBase string
}

func NewWidget(client *Client, store ApplicationStore, locales *Localizer, limiter *Limiter, walletLinkBase string) *Widget {
	return &Widget{
		client:         client,
		store:          store,
		locales:        locales,
		limiter:        limiter,
		walletLinkBase: walletLinkBase,
	}
}

type session struct {
	interaction *Interaction
	app         *model.Application
	tenant      *model.Tenant
}

func (w *Widget) load(ctx context.Context, uid string) (*session, error) {
	in, err := w.client.GetInteraction(ctx, uid)
	if err != nil {
		return nil, err
	}
	app, err := w.store.GetApplicationByClientID(ctx, in.ClientID)
	if err != nil {
		return nil, fmt.Errorf("application for client %q: %w", in.ClientID, err)
	}
	tenant, err := w.store.GetTenant(ctx, app.TenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant for application %s: %w", app.ID, err)
	}
	return &session{interaction: in, app: app, tenant: tenant}, nil
}

func (w *Widget) View(ctx context.Context, uid, acceptLanguage string) (*View, error) {
	s, err := w.load(ctx, uid)
	if err != nil {
		return nil, err
	}

	branding, err := mergeBranding(s.tenant, s.app)
	if err != nil {
		return nil, err
	}
	locale := w.locales.Negotiate(acceptLanguage, s.app.DefaultLocale)

	msgs := Messages(locale)
	title := branding.Title
	if title == "" {
		title = s.app.Name
	}
	msgs["title"] = fmt.Sprintf(msgs["title"], title)

	methods, _ := normalizeLoginMethods(s.app.LoginMethods)
	return &View{
		UID:             s.interaction.UID,
		Prompt:          s.interaction.Prompt,
		ClientID:        s.app.ClientID,
		ApplicationName: s.app.Name,
		TenantName:      s.tenant.Name,
		Locale:          locale,
		Branding:        branding,
		Methods:         methods,
		Messages:        msgs,
	}, nil
}

// mergeBranding layers the application's branding over the tenant's
// settings.branding object. The tenant logo is the last fallback.
func mergeBranding(t *model.Tenant, app *model.Application) (model.Branding, error) {
	var out model.Branding
	doc, err := settings.Decode(t.Settings)
	if err != nil {
		return out, fmt.Errorf("tenant %s settings: %w", t.ID, err)
	}
	base, _ := doc["branding"].(map[string]any)

	raw, err := json.Marshal(app.Branding)
	if err != nil {
		return out, err
	}
	var overlay map[string]any
	if err := json.Unmarshal(raw, &overlay); err != nil {
		return out, err
	}

	merged, err := json.Marshal(settings.Merge(base, overlay))
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return out, fmt.Errorf("tenant %s branding: %w", t.ID, err)
	}
	if out.LogoURL == "" {
		out.LogoURL = t.LogoURL
	}
	return out, nil
}

// attempt rate limits the caller and loads the interaction, failing with
// ErrForbidden when method is disabled for the application.
func (w *Widget) attempt(ctx context.Context, uid, remote, method string) (*session, error) {
	if !w.limiter.Allow(uid + "|" + remote) {
		log.Warn().Str("uid", uid).Str("remote", remote).Msg("[Widget] rate limited")
		return nil, ErrRateLimited
	}
	s, err := w.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	s.app.LoginMethods, _ = normalizeLoginMethods(s.app.LoginMethods)
	if s.app.HasLoginMethod(method) {
		return s, nil
	}
	return nil, fmt.Errorf("%w: login method %s is disabled for %s", model.ErrForbidden, method, s.app.ClientID)
}

func channelMethod(channel string) string {
	if channel == "email" {
		return model.LoginOTPEmail
	}
	return model.LoginOTPPhone
}

func (w *Widget) SendOTP(ctx context.Context, uid, remote, channel, identifier string) (*OTPResult, error) {
	id, err := validateIdentifier(channel, identifier)
	if err != nil {
		return nil, err
	}
	if _, err := w.attempt(ctx, uid, remote, channelMethod(channel)); err != nil {
		return nil, err
	}
	return w.client.SendOTP(ctx, uid, channel, id)
}

func (w *Widget) VerifyOTP(ctx context.Context, uid, remote, channel, identifier, code string) (*LoginResult, error) {
	id, err := validateIdentifier(channel, identifier)
	if err != nil {
		return nil, err
	}
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if _, err := w.attempt(ctx, uid, remote, channelMethod(channel)); err != nil {
		return nil, err
	}
	return w.client.VerifyOTP(ctx, uid, channel, id, code)
}

// Password accepts either a phone number or an email as the identifier.
func (w *Widget) Password(ctx context.Context, uid, remote, identifier, password string) (*LoginResult, error) {
	id, err := validateIdentifier("email", identifier)
	if err != nil {
		if id, err = validateIdentifier("phone", identifier); err != nil {
			return nil, invalid("identifier must be a phone number or an email")
		}
	}
	if password == "" {
		return nil, invalid("password is required")
	}
	if _, err := w.attempt(ctx, uid, remote, model.LoginPassword); err != nil {
		return nil, err
	}
	return w.client.PasswordLogin(ctx, uid, id, password)
}

func (w *Widget) WalletNonce(ctx context.Context, uid, remote, address string) (*WalletChallenge, error) {
	if err := validateWallet(address); err != nil {
		return nil, err
	}
	if _, err := w.attempt(ctx, uid, remote, model.LoginWallet); err != nil {
		return nil, err
	}
	return w.client.WalletNonce(ctx, uid, address)
}

func (w *Widget) WalletVerify(ctx context.Context, uid, remote, address, signature string) (*LoginResult, error) {
	if err := validateWallet(address); err != nil {
		return nil, err
	}
	if err := validateSignature(signature); err != nil {
		return nil, err
	}
	if _, err := w.attempt(ctx, uid, remote, model.LoginWallet); err != nil {
		return nil, err
	}
	return w.client.WalletLogin(ctx, uid, address, signature)
}

func (w *Widget) Abort(ctx context.Context, uid string) (*LoginResult, error) {
	return w.client.AbortInteraction(ctx, uid)
}
