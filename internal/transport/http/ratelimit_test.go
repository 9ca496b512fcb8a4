package httptransport

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterPerClient(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(RateLimit{RequestsPerMinute: 60, Burst: 2})
	l.now = func() time.Time { return now }

	if !l.allow("a") || !l.allow("a") {
		t.Fatalf("burst should allow two requests")
	}
	if l.allow("a") {
		t.Fatalf("third request within the same instant should be limited")
	}
	if !l.allow("b") {
		t.Fatalf("other clients have their own budget")
	}
	now = now.Add(time.Second)
	if !l.allow("a") {
		t.Fatalf("token should refill after one second")
	}
}

func TestRateLimiterForgetsIdleClients(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(RateLimit{RequestsPerMinute: 60, Burst: 1})
	l.now = func() time.Time { return now }
	l.allow("a")
	now = now.Add(10 * time.Minute)
	l.allow("b")
	if _, ok := l.visitors["a"]; ok {
		t.Fatalf("idle client was not swept")
	}
}

func TestAuthEndpointsRateLimited(t *testing.T) {
	ts := newTestServer(t, func(d *RouterDeps) {
		d.AuthRate = RateLimit{RequestsPerMinute: 1, Burst: 1}
	})
	body := map[string]string{"email": "x@example.com", "password": "password1"}

	rec := ts.do(t, http.MethodPost, "/api/auth/login", body, "")
	if rec.Code == http.StatusTooManyRequests {
		t.Fatalf("first request should not be limited")
	}
	rec = ts.do(t, http.MethodPost, "/api/auth/login", body, "")
	expectError(t, rec, http.StatusTooManyRequests, "rate_limited")
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After header")
	}

	// Reads are not throttled.
	if rec := ts.do(t, http.MethodGet, "/api/host-items/quote?net=100", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("quote status = %d", rec.Code)
	}
}

func TestClientIDUsesRemoteHost(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	if got := clientID(req); got != "203.0.113.7" {
		t.Fatalf("clientID = %q", got)
	}
	req.RemoteAddr = "203.0.113.7"
	if got := clientID(req); got != "203.0.113.7" {
		t.Fatalf("clientID without port = %q", got)
	}
}
