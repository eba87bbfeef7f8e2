package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakePortal(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/email/otp", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/auth/email/verify", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"accessToken":"t1","refreshToken":"r1","user":{"id":"u1","registered":true}}`))
	})
	mux.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer t1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","name":"Budi","registered":true}`))
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoginProfileLogout(t *testing.T) {
	srv := fakePortal(t)
	session := filepath.Join(t.TempDir(), "session.json")
	common := []string{"--api-url", srv.URL, "--session", session}

	out, err := run(t, "424242\n", append([]string{"login", "email", "budi@example.com"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Code sent to budi@example.com")
	assert.Contains(t, out, "Signed in.")

	out, err = run(t, "", append([]string{"profile", "get"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Budi"`)

	out, err = run(t, "", append([]string{"logout"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out.")

	_, err = run(t, "", append([]string{"profile", "get"}, common...)...)
	assert.Error(t, err)
}

func TestRequiresAPIURL(t *testing.T) {
	t.Setenv("PORTAL_API_URL", "")
	_, err := run(t, "", "profile", "get")
	assert.ErrorContains(t, err, "portal API URL is required")
}

func TestProfileSetNeedsAField(t *testing.T) {
	srv := fakePortal(t)
	_, err := run(t, "", "profile", "set", "--api-url", srv.URL, "--session", filepath.Join(t.TempDir(), "s.json"))
	assert.ErrorContains(t, err, "nothing to update")
}
