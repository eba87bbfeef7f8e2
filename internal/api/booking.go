package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tenant-platform/internal/booking"
)

func (a *API) bookingRoutes(r chi.Router) {
	r.Get("/venues", a.ListVenues)
	r.Post("/venues", a.CreateVenue)
	r.Get("/venues/{id}", a.GetVenue)
	r.Put("/venues/{id}", a.UpdateVenue)
	r.Delete("/venues/{id}", a.DeleteVenue)
	r.Get("/venues/{id}/spaces", a.ListSpaces)
	r.Post("/venues/{id}/spaces", a.CreateSpace)
	r.Get("/spaces/{id}", a.GetSpace)
	r.Put("/spaces/{id}", a.UpdateSpace)
	r.Delete("/spaces/{id}", a.DeleteSpace)
}

// @Summary List venues
// @Tags Booking
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} booking.Venue
// @Router /admin/booking/venues [get]
func (a *API) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := a.Booking.ListVenues(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, venues)
}

// @Summary Create a venue
// @Tags Booking
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body booking.Venue true "Venue"
// @Success 201 {object} booking.Venue
// @Failure 400 {object} ErrorResponse
// @Router /admin/booking/venues [post]
func (a *API) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var v booking.Venue
	if !decodeJSON(w, r, &v) {
		return
	}
	out, err := a.Booking.CreateVenue(r.Context(), v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// @Summary Get a venue
// @Tags Booking
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Venue id"
// @Success 200 {object} booking.Venue
// @Router /admin/booking/venues/{id} [get]
func (a *API) GetVenue(w http.ResponseWriter, r *http.Request) {
	v, err := a.Booking.GetVenue(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// @Summary Update a venue
// @Tags Booking
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Venue id"
// @Param body body booking.Venue true "Venue"
// @Success 200 {object} booking.Venue
// @Router /admin/booking/venues/{id} [put]
func (a *API) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	var v booking.Venue
	if !decodeJSON(w, r, &v) {
		return
	}
	out, err := a.Booking.UpdateVenue(r.Context(), chi.URLParam(r, "id"), v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// @Summary Delete a venue
// @Tags Booking
// @Security ApiKeyAuth
// @Param id path string true "Venue id"
// @Success 204
// @Router /admin/booking/venues/{id} [delete]
func (a *API) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	if err := a.Booking.DeleteVenue(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary List a venue's spaces
// @Tags Booking
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Venue id"
// @Success 200 {array} booking.Space
// @Router /admin/booking/venues/{id}/spaces [get]
func (a *API) ListSpaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := a.Booking.ListSpaces(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spaces)
}

// @Summary Add a space to a venue
// @Tags Booking
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Venue id"
// @Param body body booking.Space true "Space"
// @Success 201 {object} booking.Space
// @Router /admin/booking/venues/{id}/spaces [post]
func (a *API) CreateSpace(w http.ResponseWriter, r *http.Request) {
	var s booking.Space
	if !decodeJSON(w, r, &s) {
		return
	}
	out, err := a.Booking.CreateSpace(r.Context(), chi.URLParam(r, "id"), s)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// @Summary Get a space
// @Tags Booking
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Space id"
// @Success 200 {object} booking.Space
// @Router /admin/booking/spaces/{id} [get]
func (a *API) GetSpace(w http.ResponseWriter, r *http.Request) {
	s, err := a.Booking.GetSpace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// @Summary Update a space
// @Tags Booking
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Space id"
// @Param body body booking.Space true "Space"
// @Success 200 {object} booking.Space
// @Router /admin/booking/spaces/{id} [put]
func (a *API) UpdateSpace(w http.ResponseWriter, r *http.Request) {
	var s booking.Space
	if !decodeJSON(w, r, &s) {
		return
	}
	out, err := a.Booking.UpdateSpace(r.Context(), chi.URLParam(r, "id"), s)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// @Summary Delete a space
// @Tags Booking
// @Security ApiKeyAuth
// @Param id path string true "Space id"
// @Success 204
// @Router /admin/booking/spaces/{id} [delete]
func (a *API) DeleteSpace(w http.ResponseWriter, r *http.Request) {
	if err := a.Booking.DeleteSpace(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
