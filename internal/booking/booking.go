// Package booking wraps the booking service REST API used by the venue
// admin screens.
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tenant-platform/internal/metrics"
	"tenant-platform/internal/model"
)

// ErrNotFound is returned when the booking service answers 404.
var ErrNotFound = errors.New("booking: not found")

type Venue struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id,omitempty"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	Timezone    string    `json:"timezone"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

type Space struct {
	ID          string    `json:"id"`
	VenueID     string    `json:"venue_id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	HourlyRate  float64   `json:"hourly_rate"`
	Amenities   []string  `json:"amenities,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// Error is a non-2xx answer other than 404.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("booking: %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, http: httpClient}
}

func (v *Venue) Validate() error {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return fmt.Errorf("%w: venue name is required", model.ErrValidation)
	}
	if v.Capacity < 0 {
		return fmt.Errorf("%w: venue capacity must not be negative", model.ErrValidation)
	}
	if v.Timezone == "" {
		v.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(v.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", model.ErrValidation, v.Timezone)
	}
	return nil
}

func (s *Space) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return fmt.Errorf("%w: space name is required", model.ErrValidation)
	}
	if s.Capacity <= 0 {
		return fmt.Errorf("%w: space capacity must be positive", model.ErrValidation)
	}
	if s.HourlyRate < 0 {
		return fmt.Errorf("%w: hourly rate must not be negative", model.ErrValidation)
	}
	return nil
}

func (c *Client) ListVenues(ctx context.Context) ([]Venue, error) {
	out := []Venue{}
	if err := c.do(ctx, "list_venues", http.MethodGet, "/venues", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetVenue(ctx context.Context, id string) (*Venue, error) {
	var out Venue
	if err := c.do(ctx, "get_venue", http.MethodGet, "/venues/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateVenue(ctx context.Context, v Venue) (*Venue, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	var out Venue
	if err := c.do(ctx, "create_venue", http.MethodPost, "/venues", v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateVenue(ctx context.Context, id string, v Venue) (*Venue, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	var out Venue
	if err := c.do(ctx, "update_venue", http.MethodPut, "/venues/"+url.PathEscape(id), v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteVenue(ctx context.Context, id string) error {
	return c.do(ctx, "delete_venue", http.MethodDelete, "/venues/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListSpaces(ctx context.Context, venueID string) ([]Space, error) {
	out := []Space{}
	if err := c.do(ctx, "list_spaces", http.MethodGet, "/venues/"+url.PathEscape(venueID)+"/spaces", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSpace(ctx context.Context, id string) (*Space, error) {
	var out Space
	if err := c.do(ctx, "get_space", http.MethodGet, "/spaces/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSpace(ctx context.Context, venueID string, s Space) (*Space, error) {
	s.VenueID = venueID
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var out Space
	if err := c.do(ctx, "create_space", http.MethodPost, "/venues/"+url.PathEscape(venueID)+"/spaces", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSpace(ctx context.Context, id string, s Space) (*Space, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var out Space
	if err := c.do(ctx, "update_space", http.MethodPut, "/spaces/"+url.PathEscape(id), s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSpace(ctx context.Context, id string) error {
	return c.do(ctx, "delete_space", http.MethodDelete, "/spaces/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstream("booking", op, 0, start)
		return fmt.Errorf("booking %s: %w", op, err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream("booking", op, resp.StatusCode, start)

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("booking %s: read body: %w", op, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("booking %s: %w", op, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(data, &payload)
		msg := payload.Message
		if msg == "" {
			msg = payload.Error
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("booking %s: decode response: %w", op, err)
	}
	return nil
}
