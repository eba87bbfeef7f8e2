package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "tenant-platform/docs"
	"tenant-platform/internal/auth"
	"tenant-platform/internal/booking"
	"tenant-platform/internal/config"
	"tenant-platform/internal/contacts"
	"tenant-platform/internal/logging"
	"tenant-platform/internal/manager"
	"tenant-platform/internal/metrics"
	"tenant-platform/internal/model"
	"tenant-platform/internal/storage"
	"tenant-platform/internal/zkey"
)

// TenantService is the tenant admin surface; *manager.TenantManager
// implements it.
type TenantService interface {
	AddTenant(ctx context.Context, in manager.CreateTenantInput) (*model.Tenant, error)
	GetTenant(ctx context.Context, id uuid.UUID) (*model.Tenant, error)
	ListTenants(ctx context.Context) ([]model.Tenant, error)
	UpdateTenant(ctx context.Context, id uuid.UUID, in manager.UpdateTenantInput) (*model.Tenant, error)
	RemoveTenant(ctx context.Context, id uuid.UUID) error
	Settings(ctx context.Context, id uuid.UUID) (json.RawMessage, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, patch []byte) (json.RawMessage, error)
	UploadLogo(ctx context.Context, id uuid.UUID, r io.Reader) (string, error)
	GetTenantContacts(ctx context.Context, id uuid.UUID) ([]contacts.TenantContact, error)
	ListMessages(ctx context.Context, id uuid.UUID, cursor string, limit int) ([]model.ChatMessage, string, error)
	SetWorkerCount(ctx context.Context, id uuid.UUID, n int) error
}

type ApplicationService interface {
	Create(ctx context.Context, tenantID uuid.UUID, in zkey.CreateApplicationInput) (*zkey.Credentials, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Application, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]model.Application, error)
	Update(ctx context.Context, id uuid.UUID, in zkey.UpdateApplicationInput) (*model.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RotateSecret(ctx context.Context, id uuid.UUID) (*zkey.Credentials, error)
	VerifySecret(ctx context.Context, clientID, secret string) (*model.Application, error)
}

type LoginWidget interface {
	View(ctx context.Context, uid, acceptLanguage string) (*zkey.View, error)
	SendOTP(ctx context.Context, uid, remote, channel, identifier string) (*zkey.OTPResult, error)
	VerifyOTP(ctx context.Context, uid, remote, channel, identifier, code string) (*zkey.LoginResult, error)
	Password(ctx context.Context, uid, remote, identifier, password string) (*zkey.LoginResult, error)
	WalletNonce(ctx context.Context, uid, remote, address string) (*zkey.WalletChallenge, error)
	WalletVerify(ctx context.Context, uid, remote, address, signature string) (*zkey.LoginResult, error)
	WalletQR(ctx context.Context, uid, remote string) ([]byte, error)
	Abort(ctx context.Context, uid string) (*zkey.LoginResult, error)
}

type BookingService interface {
	ListVenues(ctx context.Context) ([]booking.Venue, error)
	GetVenue(ctx context.Context, id string) (*booking.Venue, error)
	CreateVenue(ctx context.Context, v booking.Venue) (*booking.Venue, error)
	UpdateVenue(ctx context.Context, id string, v booking.Venue) (*booking.Venue, error)
	DeleteVenue(ctx context.Context, id string) error
	ListSpaces(ctx context.Context, venueID string) ([]booking.Space, error)
	GetSpace(ctx context.Context, id string) (*booking.Space, error)
	CreateSpace(ctx context.Context, venueID string, s booking.Space) (*booking.Space, error)
	UpdateSpace(ctx context.Context, id string, s booking.Space) (*booking.Space, error)
	DeleteSpace(ctx context.Context, id string) error
}

type API struct {
	Tenants      TenantService
	Applications ApplicationService
	Widget       LoginWidget
	Cfg          *config.Config

	// Optional. Booking routes and OIDC login are mounted only when set.
	Booking BookingService
	OIDC    *auth.OIDC
}

func NewAPI(tenants TenantService, apps ApplicationService, widget LoginWidget, cfg *config.Config) *API {
	return &API{
		Tenants:      tenants,
		Applications: apps,
		Widget:       widget,
		Cfg:          cfg,
	}
}

// ConcurrencyConfig is the body of PUT /admin/tenants/{id}/config/concurrency.
type ConcurrencyConfig struct {
	Workers int `json:"workers"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Requests)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Instrument)

	// Public
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.With(inertContent).Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(a.Cfg.Server.UploadsDir))))

	r.Route("/interaction/{uid}", a.widgetRoutes)
	r.Post("/clients/authenticate", a.AuthenticateClient)

	var fallback auth.BearerVerifier
	if a.OIDC != nil {
		r.Get("/admin/login", a.OIDC.LoginHandler)
		r.Get("/admin/callback", a.OIDC.CallbackHandler)
		fallback = a.OIDC
	}

	// Secured
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.Middleware(fallback))

		r.Route("/tenants", func(r chi.Router) {
			r.With(requireAdmin).Post("/", a.CreateTenant)
			r.Get("/", a.ListTenants)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(tenantAccess)
				r.Get("/", a.GetTenant)
				r.Put("/", a.UpdateTenant)
				r.With(requireAdmin).Delete("/", a.DeleteTenant)
				r.Get("/settings", a.GetSettings)
				r.Patch("/settings", a.PatchSettings)
				r.Post("/logo", a.UploadLogo)
				r.Get("/contacts", a.ListContacts)
				r.Get("/messages", a.ListMessages)
				r.Put("/config/concurrency", a.UpdateConcurrency)
				r.Get("/applications", a.ListApplications)
				r.Post("/applications", a.CreateApplication)
			})
		})

		r.Route("/applications/{id}", func(r chi.Router) {
			r.Get("/", a.GetApplication)
			r.Put("/", a.UpdateApplication)
			r.Delete("/", a.DeleteApplication)
			r.Post("/secret", a.RotateSecret)
		})

		if a.Booking != nil {
			r.Route("/booking", a.bookingRoutes)
		}
	})

	return r
}

// inertContent stops uploaded files (SVG logos in particular) from running
// script or being sniffed into another type on this origin.
func inertContent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; sandbox")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

type tenantKey struct{}

// tenantAccess parses {id} and checks the caller may act on that tenant.
func tenantAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid tenant id")
			return
		}
		if !auth.FromContext(r.Context()).CanAccessTenant(id.String()) {
			writeErrorMessage(w, http.StatusForbidden, "no access to this tenant")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tenantKey{}, id)))
	})
}

func tenantID(r *http.Request) uuid.UUID {
	id, _ := r.Context().Value(tenantKey{}).(uuid.UUID)
	return id
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c := auth.FromContext(r.Context()); c == nil || c.Role != auth.RoleAdmin {
			writeErrorMessage(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "bad request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("[API] failed to write response")
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeError maps service errors to HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		zerr *zkey.Error
		berr *booking.Error
	)
	status := http.StatusInternalServerError
	msg := err.Error()

	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, booking.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, storage.ErrConflict):
		status, msg = http.StatusConflict, "already exists or still referenced"
	case errors.Is(err, model.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, zkey.ErrRateLimited):
		status = http.StatusTooManyRequests
	case manager.IsNoConsumer(err):
		status = http.StatusConflict
	case errors.As(err, &zerr):
		status, msg = upstreamStatus(zerr.Status), zerr.Message
	case errors.As(err, &berr):
		status, msg = upstreamStatus(berr.Status), berr.Message
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Str("request_id", middleware.GetReqID(r.Context())).Msg("[API] request failed")
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
	}
	writeErrorMessage(w, status, msg)
}

// upstreamStatus passes client errors through and reports anything else as
// a bad gateway.
func upstreamStatus(status int) int {
	if status >= 400 && status < 500 {
		return status
	}
	return http.StatusBadGateway
}
