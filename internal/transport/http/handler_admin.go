package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"rofl-backend/internal/app/account"

	"github.com/go-chi/chi/v5"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type AdminHandlers struct {
	db       Pinger
	accounts *account.Service
}

func NewAdminHandlers(db Pinger, accounts *account.Service) *AdminHandlers {
	return &AdminHandlers{db: db, accounts: accounts}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.db.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "db": "down"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "db": "up"})
	}
}

func (h *AdminHandlers) Users() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		resp, err := h.accounts.ListUsers(r.Context(), limit, offset)
		if err != nil {
			writeAccountError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": resp.Items, "limit": limit, "offset": offset})
	}
}

func (h *AdminHandlers) SetRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.accounts.SetRole(r.Context(), chi.URLParam(r, "user_id"), body.Role)
		if err != nil {
			writeAccountError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
