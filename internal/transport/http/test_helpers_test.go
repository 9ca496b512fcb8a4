package httptransport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rofl-backend/internal/app/account"
	"rofl-backend/internal/app/hostitem"
	"rofl-backend/internal/auth"
	"rofl-backend/internal/testutil"

	"github.com/go-chi/chi/v5"
)

const adminEmail = "admin@example.com"

type testServer struct {
	router  *chi.Mux
	store   *testutil.MemoryStore
	codes   *testutil.MemoryCodes
	mailer  *testutil.RecordingMailer
	images  *testutil.MemoryImages
	tokens  *auth.TokenIssuer
	metrics *Metrics
}

func newTestServer(t *testing.T, mutate ...func(*RouterDeps)) *testServer {
	t.Helper()
	ts := &testServer{
		store:   testutil.NewMemoryStore(),
		codes:   testutil.NewMemoryCodes(),
		mailer:  &testutil.RecordingMailer{},
		images:  testutil.NewMemoryImages(),
		tokens:  auth.NewTokenIssuer("test-secret", "rofl", time.Hour),
		metrics: NewMetrics(),
	}
	accounts := account.NewService(account.Deps{
		Users:        ts.store,
		Codes:        ts.codes,
		Mailer:       ts.mailer,
		Images:       ts.images,
		Tokens:       ts.tokens,
		IsAdminEmail: func(email string) bool { return email == adminEmail },
	})
	deps := RouterDeps{
		Accounts:       accounts,
		HostItems:      hostitem.NewService(ts.store, ts.metrics.ObservePricing),
		Tokens:         ts.tokens,
		DB:             ts.store,
		Metrics:        ts.metrics,
		Cookie:         CookieConfig{Name: "token"},
		AuthRate:       RateLimit{RequestsPerMinute: 60000, Burst: 1000},
		MaxUploadBytes: 1 << 20,
	}
	for _, m := range mutate {
		m(&deps)
	}
	ts.router = NewRouter(deps)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) register(t *testing.T, email string) account.AuthResponse {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "password1",
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", email, rec.Code, rec.Body.String())
	}
	var resp account.AuthResponse
	decode(t, rec, &resp)
	return resp
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	var body map[string]any
	decode(t, rec, &body)
	if body["error"] != code {
		t.Fatalf("error = %v, want %q", body["error"], code)
	}
}
