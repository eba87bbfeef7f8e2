package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"tenant-platform/internal/auth"
	"tenant-platform/internal/manager"
	"tenant-platform/internal/model"
)

// MessagePage is the body of GET /admin/tenants/{id}/messages.
type MessagePage struct {
	Data       []model.ChatMessage `json:"data"`
	NextCursor string              `json:"next_cursor"`
}

// @Summary Create a tenant
// @Tags Tenants
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body manager.CreateTenantInput true "Tenant"
// @Success 201 {object} model.Tenant
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/tenants [post]
func (a *API) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var in manager.CreateTenantInput
	if !decodeJSON(w, r, &in) {
		return
	}
	t, err := a.Tenants.AddTenant(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Info().Str("tenant", t.ID.String()).Msg("[API] Created tenant")
	writeJSON(w, http.StatusCreated, t)
}

// @Summary List tenants visible to the caller
// @Tags Tenants
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} model.Tenant
// @Router /admin/tenants [get]
func (a *API) ListTenants(w http.ResponseWriter, r *http.Request) {
	all, err := a.Tenants.ListTenants(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	claims := auth.FromContext(r.Context())
	out := make([]model.Tenant, 0, len(all))
	for _, t := range all {
		if claims.CanAccessTenant(t.ID.String()) {
			out = append(out, t)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// @Summary Get a tenant
// @Tags Tenants
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Tenant UUID"
// @Success 200 {object} model.Tenant
// @Failure 404 {object} ErrorResponse
// @Router /admin/tenants/{id} [get]
func (a *API) GetTenant(w http.ResponseWriter, r *http.Request) {
	t, err := a.Tenants.GetTenant(r.Context(), tenantID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// @Summary Update a tenant's name or domain
// @Tags Tenants
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Tenant UUID"
// @Param body body manager.UpdateTenantInput true "Fields to change"
// @Success 200 {object} model.Tenant
// @Router /admin/tenants/{id} [put]
func (a *API) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	var in manager.UpdateTenantInput
	if !decodeJSON(w, r, &in) {
		return
	}
	t, err := a.Tenants.UpdateTenant(r.Context(), tenantID(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// @Summary Delete a tenant
// @Tags Tenants
// @Security ApiKeyAuth
// @Param id path string true "Tenant UUID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /admin/tenants/{id} [delete]
func (a *API) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	id := tenantID(r)
	if err := a.Tenants.RemoveTenant(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	log.Info().Str("tenant", id.String()).Msg("[API] Deleted tenant")
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Get tenant settings
// @Tags Settings
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Tenant UUID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/tenants/{id}/settings [get]
func (a *API) GetSettings(w http.ResponseWriter, r *http.Request) {
	doc, err := a.Tenants.Settings(r.Context(), tenantID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, doc)
}

// @Summary Merge a patch into tenant settings
// @Description Objects merge key by key, null deletes a key, anything else replaces.
// @Tags Settings
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Tenant UUID"
// @Param body body map[string]interface{} true "Settings patch"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /admin/tenants/{id}/settings [patch]
func (a *API) PatchSettings(w http.ResponseWriter, r *http.Request) {
	patch, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "bad request body")
		return
	}
	doc, err := a.Tenants.UpdateSettings(r.Context(), tenantID(r), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, doc)
}

func writeRaw(w http.ResponseWriter, doc []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// @Summary Upload the tenant logo
// @Tags Tenants
// @Security ApiKeyAuth
// @Accept mpfd
// @Produce json
// @Param id path string true "Tenant UUID"
// @Param logo formData file true "PNG, JPEG, WebP or SVG image"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Router /admin/tenants/{id}/logo [post]
func (a *API) UploadLogo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, manager.MaxLogoBytes+maxBodyBytes)
	file, _, err := r.FormFile("logo")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeErrorMessage(w, http.StatusRequestEntityTooLarge, "logo is too large")
			return
		}
		writeErrorMessage(w, http.StatusBadRequest, "multipart field \"logo\" is required")
		return
	}
	defer file.Close()

	url, err := a.Tenants.UploadLogo(r.Context(), tenantID(r), file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"logo_url": url})
}

// @Summary List the tenant's merged contacts
// @Description Users, chatbot contacts and WhatsApp contacts merged by phone, email and JID.
// @Tags Contacts
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Tenant UUID"
// @Success 200 {array} contacts.TenantContact
// @Router /admin/tenants/{id}/contacts [get]
func (a *API) ListContacts(w http.ResponseWriter, r *http.Request) {
	rows, err := a.Tenants.GetTenantContacts(r.Context(), tenantID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// @Summary List chat messages by tenant
// @Tags Messages
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Tenant UUID"
// @Param cursor query string false "Pagination cursor"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} MessagePage
// @Router /admin/tenants/{id}/messages [get]
func (a *API) ListMessages(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = n
	}

	messages, next, err := a.Tenants.ListMessages(r.Context(), tenantID(r), r.URL.Query().Get("cursor"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, MessagePage{Data: messages, NextCursor: next})
}

// @Summary Update worker pool concurrency
// @Tags Tenants
// @Security ApiKeyAuth
// @Accept json
// @Param id path string true "Tenant UUID"
// @Param body body ConcurrencyConfig true "Concurrency config"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /admin/tenants/{id}/config/concurrency [put]
func (a *API) UpdateConcurrency(w http.ResponseWriter, r *http.Request) {
	var body ConcurrencyConfig
	if !decodeJSON(w, r, &body) {
		return
	}
	if err := a.Tenants.SetWorkerCount(r.Context(), tenantID(r), body.Workers); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
