package httptransport

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"rofl-backend/internal/app/hostitem"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type HostItemHandlers struct {
	svc *hostitem.Service
}

func NewHostItemHandlers(svc *hostitem.Service) *HostItemHandlers {
	return &HostItemHandlers{svc: svc}
}

// payout accepts a JSON number or a numeric string, as sent by HTML forms.
type payout float64

func (p *payout) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return hostitem.ErrInvalidPayout
		}
		*p = payout(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = payout(v)
	return nil
}

func (h *HostItemHandlers) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "not_authenticated")
			return
		}
		var body struct {
			ItemTitle        string `json:"itemTitle"`
			SelectCategory   string `json:"selectCategory"`
			SelectTimeline   string `json:"selectTimeline"`
			Description      string `json:"description"`
			DesiredNetPayout payout `json:"desiredNetPayout"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			if errors.Is(err, hostitem.ErrInvalidPayout) {
				WriteHTTPError(w, http.StatusBadRequest, hostitem.ErrInvalidPayout.Error())
				return
			}
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.Create(r.Context(), p.UserID, hostitem.CreateInput{
			ItemTitle:        body.ItemTitle,
			SelectCategory:   body.SelectCategory,
			SelectTimeline:   body.SelectTimeline,
			Description:      body.Description,
			DesiredNetPayout: float64(body.DesiredNetPayout),
		})
		if err != nil {
			writeHostItemError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func (h *HostItemHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.Get(r.Context(), chi.URLParam(r, "item_id"))
		if err != nil {
			writeHostItemError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// List filters by ?owner_id= when present.
func (h *HostItemHandlers) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		resp, err := h.svc.List(r.Context(), r.URL.Query().Get("owner_id"), limit, offset)
		if err != nil {
			writeHostItemError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *HostItemHandlers) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.URL.Query().Get("net"))
		net, err := strconv.ParseFloat(raw, 64)
		if raw == "" || err != nil {
			WriteHTTPError(w, http.StatusBadRequest, hostitem.ErrInvalidPayout.Error())
			return
		}
		resp, err := h.svc.Quote(r.Context(), net)
		if err != nil {
			writeHostItemError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeHostItemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, hostitem.ErrInvalidRequest), errors.Is(err, hostitem.ErrInvalidPayout):
		WriteHTTPError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, hostitem.ErrNotFound):
		WriteHTTPError(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("host item request failed")
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
