package api

import (
	"errors"
	"net/http"

	"tenant-platform/internal/auth"
	"tenant-platform/internal/model"
	"tenant-platform/internal/zkey"
)

// @Summary List the tenant's login applications
// @Tags Applications
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Tenant UUID"
// @Success 200 {array} model.Application
// @Router /admin/tenants/{id}/applications [get]
func (a *API) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := a.Applications.List(r.Context(), tenantID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// @Summary Register a login application
// @Description The client secret is only returned here and on rotation.
// @Tags Applications
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Tenant UUID"
// @Param body body zkey.CreateApplicationInput true "Application"
// @Success 201 {object} zkey.Credentials
// @Failure 400 {object} ErrorResponse
// @Router /admin/tenants/{id}/applications [post]
func (a *API) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var in zkey.CreateApplicationInput
	if !decodeJSON(w, r, &in) {
		return
	}
	creds, err := a.Applications.Create(r.Context(), tenantID(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, creds)
}

// loadApplication fetches {id} and checks the caller may see its tenant.
// Applications of other tenants look missing.
func (a *API) loadApplication(w http.ResponseWriter, r *http.Request) (*model.Application, bool) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return nil, false
	}
	app, err := a.Applications.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	if !auth.FromContext(r.Context()).CanAccessTenant(app.TenantID.String()) {
		writeErrorMessage(w, http.StatusNotFound, "not found")
		return nil, false
	}
	return app, true
}

// @Summary Get a login application
// @Tags Applications
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Application UUID"
// @Success 200 {object} model.Application
// @Failure 404 {object} ErrorResponse
// @Router /admin/applications/{id} [get]
func (a *API) GetApplication(w http.ResponseWriter, r *http.Request) {
	app, ok := a.loadApplication(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// @Summary Update a login application
// @Tags Applications
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Application UUID"
// @Param body body zkey.UpdateApplicationInput true "Fields to change"
// @Success 200 {object} model.Application
// @Failure 400 {object} ErrorResponse
// @Router /admin/applications/{id} [put]
func (a *API) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	app, ok := a.loadApplication(w, r)
	if !ok {
		return
	}
	var in zkey.UpdateApplicationInput
	if !decodeJSON(w, r, &in) {
		return
	}
	updated, err := a.Applications.Update(r.Context(), app.ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// @Summary Delete a login application
// @Tags Applications
// @Security ApiKeyAuth
// @Param id path string true "Application UUID"
// @Success 204
// @Router /admin/applications/{id} [delete]
func (a *API) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	app, ok := a.loadApplication(w, r)
	if !ok {
		return
	}
	if err := a.Applications.Delete(r.Context(), app.ID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Rotate the client secret
// @Tags Applications
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Application UUID"
// @Success 200 {object} zkey.Credentials
// @Router /admin/applications/{id}/secret [post]
func (a *API) RotateSecret(w http.ResponseWriter, r *http.Request) {
	app, ok := a.loadApplication(w, r)
	if !ok {
		return
	}
	creds, err := a.Applications.RotateSecret(r.Context(), app.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, creds)
}

// @Summary Authenticate a login application
// @Description Checks client_secret_basic credentials (HTTP Basic, client id and secret) and returns the application.
// @Tags Applications
// @Produce json
// @Success 200 {object} model.Application
// @Failure 401 {object} ErrorResponse
// @Router /clients/authenticate [post]
func (a *API) AuthenticateClient(w http.ResponseWriter, r *http.Request) {
	clientID, secret, ok := r.BasicAuth()
	if !ok {
		w.Header().Set("WWW-Authenticate", `Basic realm="clients"`)
		writeErrorMessage(w, http.StatusUnauthorized, "client credentials required")
		return
	}
	app, err := a.Applications.VerifySecret(r.Context(), clientID, secret)
	if errors.Is(err, model.ErrForbidden) {
		w.Header().Set("WWW-Authenticate", `Basic realm="clients"`)
		writeErrorMessage(w, http.StatusUnauthorized, "invalid client credentials")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}
