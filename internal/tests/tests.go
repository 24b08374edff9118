// Package tests contains helpers for the route tests.
package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/search"
	"github.com/lk16/reversi/internal/services"
	"github.com/lk16/reversi/internal/session"
	"github.com/stretchr/testify/require"
)

const (
	TestToken    = "test-token"
	TestUser     = "test-user"
	TestPassword = "test-password"
)

// NewTestApp creates an app with in-memory games. With auth enabled, requests
// need TestToken or the basic auth credentials of TestUser.
func NewTestApp(auth bool) *fiber.App {
	cfg := &config.ServerConfig{
		ServerHost:        "localhost",
		ServerPort:        "0",
		DefaultDifficulty: search.Easy,
	}

	if auth {
		cfg.Token = TestToken
		cfg.BasicAuthUsername = TestUser
		cfg.BasicAuthPassword = TestPassword
	}

	return internal.BuildApp(cfg, &services.Services{Games: session.NewManager()})
}

// Do sends a request with an optional JSON body and token to the app.
func Do(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("X-Token", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

// Decode decodes a JSON response body and closes it.
func Decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}
