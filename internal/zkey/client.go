// Package zkey manages OIDC applications and serves the hosted login widget
// on top of the external zkey auth service.
package zkey

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tenant-platform/internal/metrics"
)

// Interaction is an in-flight login session held by the auth service.
type Interaction struct {
	UID       string            `json:"uid"`
	ClientID  string            `json:"client_id"`
	Prompt    string            `json:"prompt"`
	Params    map[string]string `json:"params,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// LoginResult tells the browser where to continue after a step succeeds.
type LoginResult struct {
	RedirectTo string `json:"redirect_to"`
}

type OTPResult struct {
	Sent      bool `json:"sent"`
	ExpiresIn int  `json:"expires_in,omitempty"`
}

type WalletChallenge struct {
	Nonce   string `json:"nonce"`
	Message string `json:"message,omitempty"`
}

// Error is a non-2xx answer from the auth service.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("zkey: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("zkey: %d: %s", e.Status, e.Message)
}

// Client calls the auth service at ZKEY_SERVICE_URL.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) GetInteraction(ctx context.Context, uid string) (*Interaction, error) {
	var out Interaction
	if err := c.do(ctx, "get_interaction", http.MethodGet, interactionPath(uid), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SendOTP(ctx context.Context, uid, channel, identifier string) (*OTPResult, error) {
	var out OTPResult
	body := map[string]string{"channel": channel, "identifier": identifier}
	if err := c.do(ctx, "send_otp", http.MethodPost, interactionPath(uid, "otp", "send"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyOTP(ctx context.Context, uid, channel, identifier, code string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"channel": channel, "identifier": identifier, "code": code}
	if err := c.do(ctx, "verify_otp", http.MethodPost, interactionPath(uid, "otp", "verify"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PasswordLogin(ctx context.Context, uid, identifier, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"identifier": identifier, "password": password}
	if err := c.do(ctx, "password_login", http.MethodPost, interactionPath(uid, "password"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WalletNonce asks for a challenge to sign. address may be empty when the
// wallet is not known yet (QR flow).
func (c *Client) WalletNonce(ctx context.Context, uid, address string) (*WalletChallenge, error) {
	var out WalletChallenge
	body := map[string]string{"address": address}
	if err := c.do(ctx, "wallet_nonce", http.MethodPost, interactionPath(uid, "wallet", "nonce"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) WalletLogin(ctx context.Context, uid, address, signature string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"address": address, "signature": signature}
	if err := c.do(ctx, "wallet_login", http.MethodPost, interactionPath(uid, "wallet", "verify"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AbortInteraction(ctx context.Context, uid string) (*LoginResult, error) {
	var out LoginResult
	if err := c.do(ctx, "abort", http.MethodPost, interactionPath(uid, "abort"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func interactionPath(uid string, parts ...string) string {
	p := "/interaction/" + url.PathEscape(uid)
	for _, part := range parts {
		p += "/" + part
	}
	return p
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

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstream("zkey", op, 0, start)
		return fmt.Errorf("zkey %s: %w", op, err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream("zkey", op, resp.StatusCode, start)

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("zkey %s: read body: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("zkey %s: decode response: %w", op, err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	var payload struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Message          string `json:"message"`
		Code             string `json:"code"`
	}
	_ = json.Unmarshal(data, &payload)

	e := &Error{Status: status, Code: payload.Code}
	switch {
	case payload.Message != "":
		e.Message = payload.Message
	case payload.ErrorDescription != "":
		e.Message = payload.ErrorDescription
	case payload.Error != "":
		e.Message = payload.Error
	default:
		e.Message = http.StatusText(status)
	}
	if e.Code == "" && payload.Error != "" && payload.Error != e.Message {
		e.Code = payload.Error
	}
	return e
}
