package httptransport

import (
	"net/http"
	"testing"

	"rofl-backend/internal/app/account"
)

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	ts := newTestServer(t)
	user := ts.register(t, "user@example.com")
	admin := ts.register(t, adminEmail)
	if admin.User.Role != "admin" {
		t.Fatalf("admin email registered with role %q", admin.User.Role)
	}

	rec := ts.do(t, http.MethodGet, "/api/users", nil, "")
	expectError(t, rec, http.StatusUnauthorized, "not_authenticated")

	rec = ts.do(t, http.MethodGet, "/api/users", nil, user.Token)
	expectError(t, rec, http.StatusForbidden, "forbidden")

	rec = ts.do(t, http.MethodGet, "/api/users?limit=10", nil, admin.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list users status = %d", rec.Code)
	}
	var list struct {
		Items []account.UserView `json:"items"`
		Limit int                `json:"limit"`
	}
	decode(t, rec, &list)
	if len(list.Items) != 2 || list.Limit != 10 {
		t.Fatalf("unexpected users list: %+v", list)
	}
}

func TestAdminSetRole(t *testing.T) {
	ts := newTestServer(t)
	user := ts.register(t, "user@example.com")
	admin := ts.register(t, adminEmail)

	rec := ts.do(t, http.MethodPatch, "/api/users/"+user.User.ID+"/role", map[string]string{"role": "admin"}, user.Token)
	expectError(t, rec, http.StatusForbidden, "forbidden")

	rec = ts.do(t, http.MethodPatch, "/api/users/"+user.User.ID+"/role", map[string]string{"role": "admin"}, admin.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("set role status = %d body %s", rec.Code, rec.Body.String())
	}
	var v account.UserView
	decode(t, rec, &v)
	if v.Role != "admin" {
		t.Fatalf("role = %q, want admin", v.Role)
	}

	rec = ts.do(t, http.MethodPatch, "/api/users/"+user.User.ID+"/role", map[string]string{"role": "root"}, admin.Token)
	expectError(t, rec, http.StatusBadRequest, "invalid_role")

	rec = ts.do(t, http.MethodPatch, "/api/users/missing/role", map[string]string{"role": "user"}, admin.Token)
	expectError(t, rec, http.StatusNotFound, "user_not_found")
}
