package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenant-platform/internal/model"
)

func newFakeService(t *testing.T) *httptest.Server {
	t.Helper()
	venues := map[string]Venue{"v1": {ID: "v1", Name: "Hall", Timezone: "Asia/Jakarta", Capacity: 100}}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-API-Key") != "k3y" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"bad api key"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Get("/venues", func(w http.ResponseWriter, r *http.Request) {
		out := []Venue{}
		for _, v := range venues {
			out = append(out, v)
		}
		_ = json.NewEncoder(w).Encode(out)
	})
	r.Get("/venues/{id}", func(w http.ResponseWriter, r *http.Request) {
		v, ok := venues[chi.URLParam(r, "id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(v)
	})
	r.Post("/venues", func(w http.ResponseWriter, r *http.Request) {
		var v Venue
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&v))
		v.ID = "v2"
		venues[v.ID] = v
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(v)
	})
	r.Delete("/venues/{id}", func(w http.ResponseWriter, r *http.Request) {
		delete(venues, chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/venues/{id}/spaces", func(w http.ResponseWriter, r *http.Request) {
		var s Space
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&s))
		assert.Equal(t, chi.URLParam(r, "id"), s.VenueID)
		s.ID = "s1"
		_ = json.NewEncoder(w).Encode(s)
	})
	r.Put("/spaces/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"space is booked"}`))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestVenueCRUD(t *testing.T) {
	c := NewClient(newFakeService(t).URL, "k3y", nil)
	ctx := context.Background()

	venues, err := c.ListVenues(ctx)
	require.NoError(t, err)
	require.Len(t, venues, 1)

	v, err := c.GetVenue(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "Hall", v.Name)

	created, err := c.CreateVenue(ctx, Venue{Name: " Rooftop ", Capacity: 40})
	require.NoError(t, err)
	assert.Equal(t, "v2", created.ID)
	assert.Equal(t, "Rooftop", created.Name)
	assert.Equal(t, "UTC", created.Timezone)

	require.NoError(t, c.DeleteVenue(ctx, "v2"))
	_, err = c.GetVenue(ctx, "v2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSpace(t *testing.T) {
	c := NewClient(newFakeService(t).URL, "k3y", nil)

	s, err := c.CreateSpace(context.Background(), "v1", Space{Name: "Room A", Capacity: 8, HourlyRate: 25})
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, "v1", s.VenueID)
}

func TestUpstreamErrors(t *testing.T) {
	srv := newFakeService(t)
	ctx := context.Background()

	_, err := NewClient(srv.URL, "wrong", nil).ListVenues(ctx)
	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, http.StatusUnauthorized, berr.Status)
	assert.Equal(t, "bad api key", berr.Message)

	_, err = NewClient(srv.URL, "k3y", nil).UpdateSpace(ctx, "s1", Space{Name: "A", Capacity: 1})
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, "space is booked", berr.Message)
}

func TestValidation(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", "", nil)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
	}{
		{"venue without name", func() error { _, err := c.CreateVenue(ctx, Venue{Name: "  "}); return err }},
		{"negative capacity", func() error { _, err := c.CreateVenue(ctx, Venue{Name: "x", Capacity: -1}); return err }},
		{"bad timezone", func() error { _, err := c.UpdateVenue(ctx, "v1", Venue{Name: "x", Timezone: "Mars/Olympus"}); return err }},
		{"space without capacity", func() error { _, err := c.CreateSpace(ctx, "v1", Space{Name: "x"}); return err }},
		{"negative rate", func() error { _, err := c.UpdateSpace(ctx, "s1", Space{Name: "x", Capacity: 1, HourlyRate: -5}); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.call(), model.ErrValidation)
		})
	}
}
