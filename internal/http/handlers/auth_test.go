package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/innerventory/server/internal/auth"
	"github.com/innerventory/server/internal/middleware"
	"github.com/innerventory/server/internal/models/dto"
	"github.com/innerventory/server/internal/storage/sqlite"
)

func newAuthServer(t *testing.T) (*httptest.Server, *auth.TokenManager) {
	t.Helper()
	store, err := sqlite.NewStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(store.Close)

	tokens := auth.NewTokenManager("test-secret", "innerventory-test", time.Hour)
	mux := http.NewServeMux()
	guards := Guards{Auth: middleware.RequireAuth(tokens)}
	NewAuthHandler(store.Users(), tokens).Register(mux, guards, middleware.NewRateLimiter(0))

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, tokens
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	ts, tokens := newAuthServer(t)
	creds := map[string]string{"email": "fitter@example.com", "password": "hunter2"}

	resp := postJSON(t, ts.URL+"/register", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var registered dto.RegisterResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&registered))
	require.True(t, registered.Success)
	require.NotEmpty(t, registered.UserID)

	resp = postJSON(t, ts.URL+"/register", creds)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/login", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loggedIn dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loggedIn))
	require.True(t, loggedIn.Success)

	claims, err := tokens.Validate(loggedIn.Token)
	require.NoError(t, err)
	require.Equal(t, registered.UserID, claims.UserID())
	require.Equal(t, "Staff", claims.Role)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/protected", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+loggedIn.Token)
	protected, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer protected.Body.Close()
	require.Equal(t, http.StatusOK, protected.StatusCode)
}

func TestLoginFailures(t *testing.T) {
	ts, _ := newAuthServer(t)
	postJSON(t, ts.URL+"/register", map[string]string{"email": "a@example.com", "password": "right"})

	resp := postJSON(t, ts.URL+"/login", map[string]string{"email": "a@example.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, false, body["success"])
	require.NotContains(t, body, "token")

	resp = postJSON(t, ts.URL+"/login", map[string]string{"email": "nobody@example.com", "password": "x"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/register", map[string]string{"email": "not-an-email", "password": "x"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err := http.Get(ts.URL + "/protected")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
