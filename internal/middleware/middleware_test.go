package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/innerventory/server/internal/auth"
	"github.com/innerventory/server/internal/models"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequestIDAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	var seen string
	handler := RequestID(logger)(Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusAccepted)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/bras", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	require.Equal(t, "abc-123", seen)
	require.Equal(t, "abc-123", res.Header().Get("X-Request-ID"))
	require.Contains(t, buf.String(), `"request_id":"abc-123"`)
	require.Contains(t, buf.String(), `"status":202`)

	res = httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, res.Header().Get("X-Request-ID"), 36)
}

func TestRequireAuthAndRole(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "test", time.Hour)
	staff, err := tokens.Generate(models.User{ID: "u1", Role: models.RoleStaff})
	require.NoError(t, err)
	admin, err := tokens.Generate(models.User{ID: "u2", Role: models.RoleAdmin})
	require.NoError(t, err)

	var subject string
	adminOnly := RequireAuth(tokens)(RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		subject = claims.UserID()
	})))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"staff", "Bearer " + staff, http.StatusForbidden},
		{"admin", "Bearer " + admin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/events/1", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			res := httptest.NewRecorder()
			adminOnly.ServeHTTP(res, req)
			require.Equal(t, tc.status, res.Code)
		})
	}
	require.Equal(t, "u2", subject)
}

func TestRateLimiterPerClient(t *testing.T) {
	handler := NewRateLimiter(2).Limit(ok)

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		return res.Code
	}

	require.Equal(t, http.StatusOK, call("10.0.0.1:1000"))
	require.Equal(t, http.StatusOK, call("10.0.0.1:1001"))
	require.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1002"))
	require.Equal(t, http.StatusOK, call("10.0.0.2:1000"))

	unlimited := NewRateLimiter(0).Limit(ok)
	for i := 0; i < 5; i++ {
		res := httptest.NewRecorder()
		unlimited.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusOK, res.Code)
	}
}

func TestCORS(t *testing.T) {
	handler := CORS([]string{"https://app.example.com/"}, ok)

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "https://APP.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	require.Equal(t, http.StatusNoContent, res.Code)
	require.Equal(t, "https://APP.example.com", res.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", res.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
	require.Empty(t, res.Header().Get("Access-Control-Allow-Origin"))
}
