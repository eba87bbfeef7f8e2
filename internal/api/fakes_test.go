package api

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/google/uuid"

	"tenant-platform/internal/booking"
	"tenant-platform/internal/contacts"
	"tenant-platform/internal/manager"
	"tenant-platform/internal/model"
	"tenant-platform/internal/settings"
	"tenant-platform/internal/storage"
	"tenant-platform/internal/zkey"
)

type fakeTenants struct {
	mu       sync.Mutex
	tenants  map[uuid.UUID]*model.Tenant
	workers  map[uuid.UUID]int
	logos    map[uuid.UUID][]byte
	messages []model.ChatMessage
}

func newFakeTenants() *fakeTenants {
	return &fakeTenants{
		tenants: make(map[uuid.UUID]*model.Tenant),
		workers: make(map[uuid.UUID]int),
		logos:   make(map[uuid.UUID][]byte),
	}
}

func (f *fakeTenants) get(id uuid.UUID) (*model.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return t, nil
}

func (f *fakeTenants) AddTenant(_ context.Context, in manager.CreateTenantInput) (*model.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Name == "" {
		return nil, model.ErrValidation
	}
	slug := in.Slug
	if slug == "" {
		slug = manager.Slugify(in.Name)
	}
	for _, t := range f.tenants {
		if t.Slug == slug {
			return nil, storage.ErrConflict
		}
	}
	t := &model.Tenant{ID: uuid.New(), Name: in.Name, Slug: slug, Settings: json.RawMessage("{}"), Concurrency: 1}
	f.tenants[t.ID] = t
	return t, nil
}

func (f *fakeTenants) GetTenant(_ context.Context, id uuid.UUID) (*model.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(id)
}

func (f *fakeTenants) ListTenants(context.Context) ([]model.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Tenant{}
	for _, t := range f.tenants {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTenants) UpdateTenant(_ context.Context, id uuid.UUID, in manager.UpdateTenantInput) (*model.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.get(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Domain != nil {
		t.Domain = *in.Domain
	}
	return t, nil
}

func (f *fakeTenants) RemoveTenant(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.get(id); err != nil {
		return err
	}
	delete(f.tenants, id)
	return nil
}

func (f *fakeTenants) Settings(_ context.Context, id uuid.UUID) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.get(id)
	if err != nil {
		return nil, err
	}
	return t.Settings, nil
}

func (f *fakeTenants) UpdateSettings(_ context.Context, id uuid.UUID, patch []byte) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.get(id)
	if err != nil {
		return nil, err
	}
	merged, err := settings.MergeJSON(t.Settings, patch)
	if err != nil {
		return nil, model.ErrValidation
	}
	t.Settings = merged
	return merged, nil
}

func (f *fakeTenants) UploadLogo(_ context.Context, id uuid.UUID, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.get(id); err != nil {
		return "", err
	}
	f.logos[id] = data
	return "http://localhost:8080/uploads/tenants/" + id.String() + "/logo.png", nil
}

func (f *fakeTenants) GetTenantContacts(_ context.Context, id uuid.UUID) ([]contacts.TenantContact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.get(id); err != nil {
		return nil, err
	}
	return []contacts.TenantContact{{Key: "user:1", Name: "Rina", Phone: "628123456789", Sources: []string{contacts.SourceUser}, Match: contacts.MatchExact}}, nil
}

func (f *fakeTenants) ListMessages(_ context.Context, id uuid.UUID, cursor string, limit int) ([]model.ChatMessage, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cursor == "bad" {
		return nil, "", storage.ErrInvalidCursor
	}
	var out []model.ChatMessage
	for _, m := range f.messages {
		if m.TenantID == id {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		return out[:limit], out[limit-1].ID.String(), nil
	}
	return out, "", nil
}

func (f *fakeTenants) SetWorkerCount(_ context.Context, id uuid.UUID, n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n <= 0 || n > 64 {
		return model.ErrValidation
	}
	if _, err := f.get(id); err != nil {
		return err
	}
	f.workers[id] = n
	return nil
}

type fakeApps struct {
	mu   sync.Mutex
	apps map[uuid.UUID]*model.Application
}

func (f *fakeApps) Create(_ context.Context, tenantID uuid.UUID, in zkey.CreateApplicationInput) (*zkey.Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(in.RedirectURIs) == 0 {
		return nil, model.ErrValidation
	}
	app := &model.Application{ID: uuid.New(), TenantID: tenantID, Name: in.Name, ClientID: "zk_test", RedirectURIs: in.RedirectURIs}
	f.apps[app.ID] = app
	return &zkey.Credentials{Application: app, ClientSecret: "s3cret"}, nil
}

func (f *fakeApps) Get(_ context.Context, id uuid.UUID) (*model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return a, nil
}

func (f *fakeApps) List(_ context.Context, tenantID uuid.UUID) ([]model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Application{}
	for _, a := range f.apps {
		if a.TenantID == tenantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApps) Update(_ context.Context, id uuid.UUID, in zkey.UpdateApplicationInput) (*model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if in.Name != nil {
		a.Name = *in.Name
	}
	return a, nil
}

func (f *fakeApps) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.apps, id)
	return nil
}

func (f *fakeApps) RotateSecret(_ context.Context, id uuid.UUID) (*zkey.Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &zkey.Credentials{Application: a, ClientSecret: "rotated"}, nil
}

func (f *fakeApps) VerifySecret(_ context.Context, clientID, secret string) (*model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.ClientID == clientID && secret == "s3cret" {
			return a, nil
		}
	}
	return nil, model.ErrForbidden
}

// fakeWidget records the remote address of the last call and returns
// canned answers keyed by interaction uid.
type fakeWidget struct {
	mu         sync.Mutex
	lastRemote string
	lastArgs   []string
}

func (f *fakeWidget) record(remote string, args ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastRemote = remote
	f.lastArgs = args
}

func widgetErr(uid string) error {
	switch uid {
	case "limited":
		return zkey.ErrRateLimited
	case "disabled":
		return model.ErrForbidden
	case "expired":
		return &zkey.Error{Status: 404, Code: "interaction_not_found", Message: "interaction expired"}
	case "down":
		return &zkey.Error{Status: 503, Message: "unavailable"}
	}
	return nil
}

func (f *fakeWidget) View(_ context.Context, uid, acceptLanguage string) (*zkey.View, error) {
	if err := widgetErr(uid); err != nil {
		return nil, err
	}
	return &zkey.View{UID: uid, Locale: acceptLanguage, Methods: []string{model.LoginOTPEmail}}, nil
}

func (f *fakeWidget) SendOTP(_ context.Context, uid, remote, channel, identifier string) (*zkey.OTPResult, error) {
	f.record(remote, channel, identifier)
	if err := widgetErr(uid); err != nil {
		return nil, err
	}
	return &zkey.OTPResult{Sent: true, ExpiresIn: 300}, nil
}

func (f *fakeWidget) VerifyOTP(_ context.Context, uid, remote, channel, identifier, code string) (*zkey.LoginResult, error) {
	f.record(remote, channel, identifier, code)
	if err := widgetErr(uid); err != nil {
		return nil, err
	}
	return &zkey.LoginResult{RedirectTo: "https://app.example.com/cb"}, nil
}

func (f *fakeWidget) Password(_ context.Context, uid, remote, identifier, password string) (*zkey.LoginResult, error) {
	f.record(remote, identifier, password)
	if err := widgetErr(uid); err != nil {
		return nil, err
	}
	return &zkey.LoginResult{RedirectTo: "https://app.example.com/cb"}, nil
}

func (f *fakeWidget) WalletNonce(_ context.Context, uid, remote, address string) (*zkey.WalletChallenge, error) {
	f.record(remote, address)
	if err := widgetErr(uid); err != nil {
		return nil, err
	}
	return &zkey.WalletChallenge{Nonce: "n1"}, nil
}

func (f *fakeWidget) WalletVerify(_ context.Context, uid, remote, address, signature string) (*zkey.LoginResult, error) {
	f.record(remote, address, signature)
	if err := widgetErr(uid); err != nil {
		return nil, err
	}
	return &zkey.LoginResult{RedirectTo: "https://app.example.com/cb"}, nil
}

func (f *fakeWidget) WalletQR(_ context.Context, uid, remote string) ([]byte, error) {
	f.record(remote)
	if err := widgetErr(uid); err != nil {
		return nil, err
	}
	return []byte("\x89PNG fake"), nil
}

func (f *fakeWidget) Abort(_ context.Context, uid string) (*zkey.LoginResult, error) {
	if err := widgetErr(uid); err != nil {
		return nil, err
	}
	return &zkey.LoginResult{RedirectTo: "https://app.example.com/cb?error=access_denied"}, nil
}

type fakeBooking struct {
	venues map[string]booking.Venue
}

func (f *fakeBooking) ListVenues(context.Context) ([]booking.Venue, error) {
	out := []booking.Venue{}
	for _, v := range f.venues {
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeBooking) GetVenue(_ context.Context, id string) (*booking.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return &v, nil
}

func (f *fakeBooking) CreateVenue(_ context.Context, v booking.Venue) (*booking.Venue, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	v.ID = "v" + string(rune('0'+len(f.venues)+1))
	f.venues[v.ID] = v
	return &v, nil
}

func (f *fakeBooking) UpdateVenue(_ context.Context, id string, v booking.Venue) (*booking.Venue, error) {
	v.ID = id
	f.venues[id] = v
	return &v, nil
}

func (f *fakeBooking) DeleteVenue(_ context.Context, id string) error {
	delete(f.venues, id)
	return nil
}

func (f *fakeBooking) ListSpaces(context.Context, string) ([]booking.Space, error) {
	return []booking.Space{}, nil
}

func (f *fakeBooking) GetSpace(context.Context, string) (*booking.Space, error) {
	return nil, &booking.Error{Status: 500, Message: "boom"}
}

func (f *fakeBooking) CreateSpace(_ context.Context, venueID string, s booking.Space) (*booking.Space, error) {
	s.VenueID = venueID
	s.ID = "s1"
	return &s, nil
}

func (f *fakeBooking) UpdateSpace(_ context.Context, id string, s booking.Space) (*booking.Space, error) {
	s.ID = id
	return &s, nil
}

func (f *fakeBooking) DeleteSpace(context.Context, string) error { return nil }
