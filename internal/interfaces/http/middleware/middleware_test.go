package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"task-prompt-api/internal/config"

	"github.com/gin-gonic/gin"
)

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (l *fakeLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, int, error) {
	l.keys = append(l.keys, key)
	if !l.allowed {
		return false, 0, l.err
	}
	return true, limit - 1, l.err
}

func newEngine(userID string, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(ContextKeyUserID, userID)
		}
		c.Next()
	})
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	cfg := RateLimitConfig{Enabled: true, Requests: 10, Window: time.Minute, Scope: "api"}

	t.Run("allowed", func(t *testing.T) {
		limiter := &fakeLimiter{allowed: true}
		w := serve(newEngine("u1", RateLimit(cfg, limiter)), httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK || w.Header().Get("X-RateLimit-Remaining") != "9" {
			t.Fatalf("status=%d headers=%v", w.Code, w.Header())
		}
		if len(limiter.keys) != 1 || limiter.keys[0] != "ratelimit:u1:api" {
			t.Fatalf("keys = %v", limiter.keys)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		w := serve(newEngine("u1", RateLimit(cfg, &fakeLimiter{})), httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") != "60" {
			t.Fatalf("status=%d headers=%v", w.Code, w.Header())
		}
	})

	t.Run("limiter failure fails open", func(t *testing.T) {
		limiter := &fakeLimiter{err: errors.New("redis down")}
		w := serve(newEngine("u1", RateLimit(cfg, limiter)), httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		limiter := &fakeLimiter{}
		w := serve(newEngine("u1", RateLimit(RateLimitConfig{}, limiter)), httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK || len(limiter.keys) != 0 {
			t.Fatalf("status=%d keys=%v", w.Code, limiter.keys)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	setAdmin := func(admin bool) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set(ContextKeyIsAdmin, admin)
			c.Next()
		}
	}

	if w := serve(newEngine("u1", setAdmin(false), RequireAdmin()), httptest.NewRequest(http.MethodGet, "/ping", nil)); w.Code != http.StatusForbidden {
		t.Fatalf("non-admin: %d", w.Code)
	}
	if w := serve(newEngine("u1", setAdmin(true), RequireAdmin()), httptest.NewRequest(http.MethodGet, "/ping", nil)); w.Code != http.StatusOK {
		t.Fatalf("admin: %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine("", RequestID())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	if got := serve(r, req).Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("request id not propagated: %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
	if got := serve(r, req).Header().Get(RequestIDHeader); len(got) != 36 {
		t.Fatalf("oversized request id should be replaced, got %q", got)
	}
}

func TestValidRequestID(t *testing.T) {
	cases := map[string]bool{
		"":                false,
		"abc-123":         true,
		"has space":       false,
		"line\nbreak":     false,
		"trace:01/req.42": true,
	}
	for id, want := range cases {
		if got := validRequestID(id); got != want {
			t.Errorf("validRequestID(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestCORSWildcardDropsCredentials(t *testing.T) {
	r := newEngine("", CORS(config.CORSConfig{AllowedOrigins: []string{"*"}}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://example.com")
	w := serve(r, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin = %q, want *", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("credentials should not be allowed with wildcard origin, got %q", got)
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), `"error_code":"1007"`) {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}
