// Package portal is a client for the investor and project owner portal
// auth API.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"tenant-platform/internal/metrics"
)

var ErrNotSignedIn = errors.New("portal: not signed in")

const (
	RoleInvestor     = "investor"
	RoleProjectOwner = "project_owner"
)

type User struct {
	ID            string `json:"id"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	WalletAddress string `json:"walletAddress,omitempty"`
	Role          string `json:"role,omitempty"`
	Registered    bool   `json:"registered"`
}

// Session is what a successful login returns.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user,omitempty"`
}

type WalletChallenge struct {
	Nonce   string `json:"nonce"`
	Message string `json:"message"`
}

type RegisterInput struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// Error is a non-2xx answer from the auth API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("portal: %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore

	refreshMu sync.Mutex
}

func NewClient(baseURL string, store TokenStore, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient, store: store}
}

func (c *Client) RequestPhoneOTP(ctx context.Context, phone string) error {
	return c.call(ctx, "phone_otp", http.MethodPost, "/auth/phone/otp", map[string]string{"phone": phone}, nil, false)
}

func (c *Client) VerifyPhoneOTP(ctx context.Context, phone, code string) (*Session, error) {
	return c.login(ctx, "phone_verify", "/auth/phone/verify", map[string]string{"phone": phone, "code": code})
}

func (c *Client) RequestEmailOTP(ctx context.Context, email string) error {
	return c.call(ctx, "email_otp", http.MethodPost, "/auth/email/otp", map[string]string{"email": email}, nil, false)
}

func (c *Client) VerifyEmailOTP(ctx context.Context, email, code string) (*Session, error) {
	return c.login(ctx, "email_verify", "/auth/email/verify", map[string]string{"email": email, "code": code})
}

func (c *Client) WalletNonce(ctx context.Context, address string) (*WalletChallenge, error) {
	var out WalletChallenge
	if err := c.call(ctx, "wallet_nonce", http.MethodPost, "/auth/wallet/nonce", map[string]string{"address": address}, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) WalletLogin(ctx context.Context, address, signature string) (*Session, error) {
	return c.login(ctx, "wallet_login", "/auth/wallet/login", map[string]string{"address": address, "signature": signature})
}

// Register completes the profile of a freshly verified user.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*User, error) {
	var out User
	if err := c.call(ctx, "register", http.MethodPost, "/auth/register", in, &out, true); err != nil {
		return nil, err
	}
	c.rememberUser(&out)
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.call(ctx, "profile", http.MethodGet, "/auth/profile", nil, &out, true); err != nil {
		return nil, err
	}
	c.rememberUser(&out)
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) (*User, error) {
	var out User
	if err := c.call(ctx, "update_profile", http.MethodPut, "/auth/profile", in, &out, true); err != nil {
		return nil, err
	}
	c.rememberUser(&out)
	return &out, nil
}

// Refresh trades the stored refresh token for a new session.
func (c *Client) Refresh(ctx context.Context) (*Session, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *Client) refreshLocked(ctx context.Context) (*Session, error) {
	cur, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if cur == nil || cur.RefreshToken == "" {
		return nil, ErrNotSignedIn
	}
	var next Session
	if err := c.send(ctx, "refresh", http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": cur.RefreshToken}, &next, ""); err != nil {
		return nil, err
	}
	if next.RefreshToken == "" {
		next.RefreshToken = cur.RefreshToken
	}
	if next.User == nil {
		next.User = cur.User
	}
	if err := c.store.Save(&next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Logout tells the server and always clears the local session.
func (c *Client) Logout(ctx context.Context) error {
	err := c.call(ctx, "logout", http.MethodPost, "/auth/logout", nil, nil, true)
	if cerr := c.store.Clear(); cerr != nil {
		return cerr
	}
	var perr *Error
	if errors.Is(err, ErrNotSignedIn) || (errors.As(err, &perr) && perr.Status == http.StatusUnauthorized) {
		return nil
	}
	return err
}

func (c *Client) login(ctx context.Context, op, path string, body any) (*Session, error) {
	var s Session
	if err := c.call(ctx, op, http.MethodPost, path, body, &s, false); err != nil {
		return nil, err
	}
	if s.AccessToken == "" {
		return nil, fmt.Errorf("portal %s: response has no access token", op)
	}
	if err := c.store.Save(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) rememberUser(u *User) {
	s, err := c.store.Load()
	if err != nil || s == nil {
		return
	}
	s.User = u
	if err := c.store.Save(s); err != nil {
		log.Warn().Err(err).Msg("[Portal] failed to store user")
	}
}

// call sends the request, attaching the stored access token when authed is
// set. A 401 on an authenticated call refreshes the session and retries
// once.
func (c *Client) call(ctx context.Context, op, method, path string, in, out any, authed bool) error {
	if !authed {
		return c.send(ctx, op, method, path, in, out, "")
	}

	s, err := c.store.Load()
	if err != nil {
		return err
	}
	if s == nil {
		return ErrNotSignedIn
	}

	err = c.send(ctx, op, method, path, in, out, s.AccessToken)
	var perr *Error
	if !errors.As(err, &perr) || perr.Status != http.StatusUnauthorized {
		return err
	}

	c.refreshMu.Lock()
	next, rerr := c.store.Load()
	if rerr != nil || next == nil || next.AccessToken == s.AccessToken {
		next, rerr = c.refreshLocked(ctx)
	}
	c.refreshMu.Unlock()
	if rerr != nil {
		log.Debug().Err(rerr).Str("op", op).Msg("[Portal] refresh failed")
		return perr
	}
	return c.send(ctx, op, method, path, in, out, next.AccessToken)
}

func (c *Client) send(ctx context.Context, op, method, path string, in, out any, token string) error {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstream("portal", op, 0, start)
		return fmt.Errorf("portal %s: %w", op, err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream("portal", op, resp.StatusCode, start)

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("portal %s: read body: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("portal %s: decode response: %w", op, err)
	}
	return nil
}

// decodeError accepts both {"message": "..."} and the framework's
// {"message": ["...", "..."]} validation shape.
func decodeError(status int, data []byte) error {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	_ = json.Unmarshal(data, &payload)

	e := &Error{Status: status}
	var single string
	var many []string
	switch {
	case json.Unmarshal(payload.Message, &single) == nil && single != "":
		e.Message = single
	case json.Unmarshal(payload.Message, &many) == nil && len(many) > 0:
		e.Message = strings.Join(many, "; ")
	case payload.Error != "":
		e.Message = payload.Error
	default:
		e.Message = http.StatusText(status)
	}
	return e
}
