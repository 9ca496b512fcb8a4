package httptransport

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestRoutesRegistered(t *testing.T) {
	ts := newTestServer(t)
	want := map[string]bool{
		"GET /":                            false,
		"GET /healthz":                     false,
		"GET /metrics":                     false,
		"POST /users":                      false,
		"POST /login":                      false,
		"POST /api/auth/register":          false,
		"POST /api/auth/login":             false,
		"POST /api/auth/logout":            false,
		"POST /api/auth/forgot-password":   false,
		"POST /api/auth/reset-password":    false,
		"GET /api/auth/me":                 false,
		"POST /api/users/me/profile-image": false,
		"GET /api/users/me/images":         false,
		"GET /api/users":                   false,
		"PATCH /api/users/{user_id}/role":  false,
		"GET /api/host-items":              false,
		"POST /api/host-items":             false,
		"GET /api/host-items/quote":        false,
		"GET /api/host-items/{item_id}":    false,
	}
	err := chi.Walk(ts.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		key := method + " " + route
		if _, ok := want[key]; ok {
			want[key] = true
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	for route, seen := range want {
		if !seen {
			t.Fatalf("route %s not registered", route)
		}
	}
}

func TestRootAndHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/", nil, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ROFL backend is running") {
		t.Fatalf("root: %d %q", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/healthz", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
	var body map[string]any
	decode(t, rec, &body)
	if body["ok"] != true || body["db"] != "up" {
		t.Fatalf("healthz body = %v", body)
	}
}

func TestMetricsEndpointExposesCounters(t *testing.T) {
	ts := newTestServer(t)
	if rec := ts.do(t, http.MethodGet, "/api/host-items/quote?net=2000", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("quote status = %d", rec.Code)
	}
	ts.register(t, "metrics@example.com")

	rec := ts.do(t, http.MethodGet, "/metrics", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	out := rec.Body.String()
	for _, want := range []string{
		`rofl_pricing_calculations_total{result="ok"} 1`,
		`rofl_auth_events_total{event="register",result="ok"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}

func TestUploadsServedFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "profile"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "profile", "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	ts := newTestServer(t, func(d *RouterDeps) {
		d.UploadDir = dir
		d.UploadBaseURL = "/uploads"
	})

	rec := ts.do(t, http.MethodGet, "/uploads/profile/a.txt", nil, "")
	if rec.Code != http.StatusOK || rec.Body.String() != "hello" {
		t.Fatalf("upload fetch: %d %q", rec.Code, rec.Body.String())
	}
	rec = ts.do(t, http.MethodGet, "/uploads/profile/", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("directory listing status = %d, want 404", rec.Code)
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 50, 0},
		{"limit=10&offset=20", 10, 20},
		{"limit=0&offset=-3", 1, 0},
		{"limit=9999", 500, 0},
		{"limit=abc&offset=xyz", 50, 0},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/x?"+tt.query, nil)
		limit, offset := ParsePagination(req)
		if limit != tt.wantLimit || offset != tt.wantOffset {
			t.Fatalf("%q: got (%d,%d), want (%d,%d)", tt.query, limit, offset, tt.wantLimit, tt.wantOffset)
		}
	}
}

func TestCORSPreflightAllowsCredentials(t *testing.T) {
	ts := newTestServer(t, func(d *RouterDeps) {
		d.CORS = CORSConfig{AllowedOrigins: []string{"https://rofl.app"}}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/host-items", nil)
	req.Header.Set("Origin", "https://rofl.app")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK && rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://rofl.app" {
		t.Fatalf("allow origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("allow credentials = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) {
		t.Fatalf("allow methods = %q", got)
	}
}

func TestCORSRejectsUnlistedOrigin(t *testing.T) {
	ts := newTestServer(t, func(d *RouterDeps) {
		d.CORS = CORSConfig{AllowedOrigins: []string{"https://rofl.app"}}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/host-items/quote?net=2000", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestCORSDefaultEchoesAnyOrigin(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("allow credentials = %q", got)
	}
}
