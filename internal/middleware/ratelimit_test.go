package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// =============================================================================
// Rate Limiter Tests
// =============================================================================

func newTestLimiter(t *testing.T, maxRequests int, window time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(maxRequests, window)
	t.Cleanup(rl.Close)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.mu.Lock()
	rl.now = func() time.Time { return now }
	rl.mu.Unlock()
	return rl, &now
}

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl, _ := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("fourth request should be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("other keys should not be affected")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl, now := newTestLimiter(t, 1, time.Minute)

	if !rl.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("k") {
		t.Fatal("second request should be limited")
	}

	*now = now.Add(30 * time.Second)
	if got := rl.TimeUntilReset("k"); got != 30*time.Second {
		t.Errorf("expected 30s until reset, got %v", got)
	}

	*now = now.Add(31 * time.Second)
	if !rl.Allow("k") {
		t.Error("request after window should be allowed")
	}
}

func TestRateLimiter_TimeUntilResetUnknownKey(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	if got := rl.TimeUntilReset("missing"); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

// =============================================================================
// Rate Limit Middleware Tests
// =============================================================================

func TestRateLimitMiddleware_JSON(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	wrapped := NewRateLimitMiddleware(rl, logger, false).Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/api/pager", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		return rec
	}

	if rec := send(); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}

	rec := send()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("expected Retry-After 60, got %q", rec.Header().Get("Retry-After"))
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != "rate_limit" {
		t.Errorf("expected code rate_limit, got %q", body.Error.Code)
	}
}

func TestRateLimitMiddleware_HTMLForHtmx(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	wrapped := NewRateLimitMiddleware(rl, logger, false).Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/pager", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		if i == 1 {
			if rec.Code != http.StatusTooManyRequests {
				t.Fatalf("expected 429, got %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
				t.Errorf("expected plain text, got %q", ct)
			}
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote addr", "192.0.2.1:1234", nil, false, "192.0.2.1"},
		{"remote addr without port", "192.0.2.1", nil, false, "192.0.2.1"},
		{"forwarded for behind proxy", "10.0.0.1:1", map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18"}, true, "203.0.113.195"},
		{"real ip behind proxy", "10.0.0.1:1", map[string]string{"X-Real-IP": " 198.51.100.4 "}, true, "198.51.100.4"},
		{"forwarded for ignored", "192.0.2.1:1234", map[string]string{"X-Forwarded-For": "203.0.113.195"}, false, "192.0.2.1"},
		{"real ip ignored", "192.0.2.1:1234", map[string]string{"X-Real-IP": "198.51.100.4"}, false, "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimitMiddleware_IgnoresSpoofedForwardedFor(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	wrapped := NewRateLimitMiddleware(rl, logger, false).Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 2)
	for _, xff := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest("GET", "/pager", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}
}

func TestStack_Order(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Stack(mark("outer"), mark("inner"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if len(order) != 3 || order[0] != "outer" || order[1] != "inner" || order[2] != "handler" {
		t.Errorf("unexpected order: %v", order)
	}
}
