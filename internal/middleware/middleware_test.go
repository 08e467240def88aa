package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/metrics"
	"storeadmin-be/internal/user"
	"storeadmin-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testSecret = "test-secret"

func TestAuthMiddleware(t *testing.T) {
	var gotEmail, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail = utils.GetUserEmailFromContext(r.Context())
		gotRole = utils.GetUserRoleFromContext(r.Context())
	})
	handler := AuthMiddleware(testSecret)(next)

	token, err := user.GenerateJWT(testSecret, "admin@example.com", "admin")
	require.NoError(t, err)

	t.Run("No token", func(t *testing.T) {
		gotEmail, gotRole = "", ""
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Empty(t, gotEmail)
		assert.Empty(t, gotRole)
	})

	t.Run("Valid bearer token", func(t *testing.T) {
		gotEmail, gotRole = "", ""
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "admin@example.com", gotEmail)
		assert.Equal(t, "admin", gotRole)
	})

	t.Run("Valid cookie", func(t *testing.T) {
		gotEmail, gotRole = "", ""
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "admin@example.com", gotEmail)
	})

	t.Run("Invalid token passes through", func(t *testing.T) {
		gotEmail, gotRole = "", ""
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, gotEmail)
	})
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Strict tier on sign-up", func(t *testing.T) {
		handler := NewLimiter("").RateLimitMiddleware(ok)

		codes := map[int]int{}
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodPost, "/users", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes[w.Code]++
		}

		assert.Equal(t, burstStrict, codes[http.StatusOK])
		assert.Equal(t, 1, codes[http.StatusTooManyRequests])
	})

	t.Run("Separate buckets per identity", func(t *testing.T) {
		handler := NewLimiter("").RateLimitMiddleware(ok)

		for i := 0; i < burstStrict; i++ {
			req := httptest.NewRequest(http.MethodPost, "/users", nil)
			req.RemoteAddr = "10.0.0.2:1234"
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest(http.MethodPost, "/users", nil)
		req.RemoteAddr = "10.0.0.3:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Rejection body is JSON", func(t *testing.T) {
		handler := NewLimiter("").RateLimitMiddleware(ok)

		var w *httptest.ResponseRecorder
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodGet, "/orders", nil)
			req.Header.Set("X-Action", "auth")
			req.Header.Set("X-Device-ID", "device-1")
			w = httptest.NewRecorder()
			handler.ServeHTTP(w, req)
		}

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.JSONEq(t, `{"error":"Too Many Requests"}`, w.Body.String())
	})
}

func TestResolveRateTier(t *testing.T) {
	l := NewLimiter("internal-key")

	tests := []struct {
		name    string
		method  string
		path    string
		headers map[string]string
		tier    string
	}{
		{name: "Internal", method: http.MethodGet, path: "/orders", headers: map[string]string{"X-Service-Auth": "internal-key"}, tier: "internal"},
		{name: "Wrong internal key", method: http.MethodGet, path: "/orders", headers: map[string]string{"X-Service-Auth": "nope"}, tier: "general"},
		{name: "Sign-up", method: http.MethodPost, path: "/users", tier: "strict"},
		{name: "List users", method: http.MethodGet, path: "/users", tier: "general"},
		{name: "Auth action", method: http.MethodGet, path: "/", headers: map[string]string{"X-Action": "auth"}, tier: "strict"},
		{name: "Frontend", method: http.MethodGet, path: "/products", headers: map[string]string{"X-Client-Type": "frontend-heavy"}, tier: "frontend"},
		{name: "Default", method: http.MethodGet, path: "/products", tier: "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			_, _, tier := l.resolveRateTier(req)
			assert.Equal(t, tt.tier, tier)
		})
	}
}

func TestIdentityOf(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "ip:192.0.2.1", identityOf(req))

	req.Header.Set("X-Device-ID", "abc")
	assert.Equal(t, "device:abc", identityOf(req))

	req = req.WithContext(utils.SetUserContext(req.Context(), "a@example.com", "admin"))
	assert.Equal(t, "user:a@example.com", identityOf(req))
}

func TestLimiterCleanup(t *testing.T) {
	l := NewLimiter("")
	now := time.Now()
	l.now = func() time.Time { return now }

	l.getVisitor("ip:1:general", limitGeneral, burstGeneral)
	now = now.Add(visitorTTL + time.Second)
	l.getVisitor("ip:2:general", limitGeneral, burstGeneral)

	l.cleanup()

	assert.NotContains(t, l.visitors, "ip:1:general")
	assert.Contains(t, l.visitors, "ip:2:general")
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	handler := logger.RequestIDMiddleware(LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(logger.RequestIDHeader, "req-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "/orders", first["path"])
	assert.EqualValues(t, http.StatusOK, first["status"])
	assert.EqualValues(t, 2, first["bytes"])
	assert.Equal(t, "req-1", first["request_id"])
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

	assert.EqualValues(t, http.StatusNotFound, entries[1].ContextMap()["status"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.Get("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/orders/{id}", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}
