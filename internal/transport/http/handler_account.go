package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"rofl-backend/internal/app/account"

	"github.com/rs/zerolog/log"
)

type CookieConfig struct {
	Name   string
	Secure bool
}

type AccountHandlers struct {
	svc            *account.Service
	cookie         CookieConfig
	metrics        *Metrics
	maxUploadBytes int64
}

func NewAccountHandlers(svc *account.Service, cookie CookieConfig, metrics *Metrics, maxUploadBytes int64) *AccountHandlers {
	if cookie.Name == "" {
		cookie.Name = "token"
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 << 20
	}
	return &AccountHandlers{svc: svc, cookie: cookie, metrics: metrics, maxUploadBytes: maxUploadBytes}
}

func (h *AccountHandlers) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.Register(r.Context(), account.RegisterInput{Name: body.Name, Email: body.Email, Password: body.Password})
		if err != nil {
			h.metrics.authEvent("register", resultError)
			writeAccountError(w, err)
			return
		}
		h.metrics.authEvent("register", resultOK)
		h.setSessionCookie(w, resp.Token, resp.ExpiresAt)
		writeJSON(w, http.StatusCreated, resp)
	}
}

func (h *AccountHandlers) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.Login(r.Context(), account.LoginInput{Email: body.Email, Password: body.Password})
		if err != nil {
			h.metrics.authEvent("login", resultError)
			writeAccountError(w, err)
			return
		}
		h.metrics.authEvent("login", resultOK)
		h.setSessionCookie(w, resp.Token, resp.ExpiresAt)
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *AccountHandlers) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     h.cookie.Name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   h.cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		h.metrics.authEvent("logout", resultOK)
		writeJSON(w, http.StatusOK, account.MessageResponse{Message: "Logged out"})
	}
}

func (h *AccountHandlers) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "not_authenticated")
			return
		}
		resp, err := h.svc.Me(r.Context(), p.UserID)
		if err != nil {
			writeAccountError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *AccountHandlers) ForgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.ForgotPassword(r.Context(), body.Email)
		if err != nil {
			if errors.Is(err, account.ErrTooManyRequests) {
				h.metrics.otpEmail(resultRejected)
			} else {
				h.metrics.otpEmail(resultError)
			}
			writeAccountError(w, err)
			return
		}
		h.metrics.otpEmail(resultOK)
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *AccountHandlers) ResetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email       string `json:"email"`
			Code        string `json:"code"`
			NewPassword string `json:"newPassword"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.ResetPassword(r.Context(), account.ResetPasswordInput{Email: body.Email, Code: body.Code, NewPassword: body.NewPassword})
		if err != nil {
			h.metrics.authEvent("reset_password", resultError)
			writeAccountError(w, err)
			return
		}
		h.metrics.authEvent("reset_password", resultOK)
		writeJSON(w, http.StatusOK, resp)
	}
}

// UploadProfileImage expects a multipart form with the file in field "image".
func (h *AccountHandlers) UploadProfileImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "not_authenticated")
			return
		}
		// Leave headroom for the multipart envelope; the storage layer enforces the file limit.
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1<<20)
		file, _, err := r.FormFile("image")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.metrics.upload(resultRejected)
				WriteHTTPError(w, http.StatusRequestEntityTooLarge, account.ErrImageTooLarge.Error())
				return
			}
			h.metrics.upload(resultRejected)
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		defer file.Close()

		resp, err := h.svc.UploadProfileImage(r.Context(), p.UserID, file)
		if err != nil {
			if errors.Is(err, account.ErrUnsupportedImage) || errors.Is(err, account.ErrImageTooLarge) {
				h.metrics.upload(resultRejected)
			} else {
				h.metrics.upload(resultError)
			}
			writeAccountError(w, err)
			return
		}
		h.metrics.upload(resultOK)
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *AccountHandlers) MyImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "not_authenticated")
			return
		}
		limit, offset := ParsePagination(r)
		resp, err := h.svc.ListImages(r.Context(), p.UserID, limit, offset)
		if err != nil {
			writeAccountError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *AccountHandlers) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeAccountError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrInvalidRequest),
		errors.Is(err, account.ErrInvalidEmail),
		errors.Is(err, account.ErrWeakPassword),
		errors.Is(err, account.ErrInvalidRole),
		errors.Is(err, account.ErrInvalidCode):
		WriteHTTPError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, account.ErrInvalidCredentials):
		WriteHTTPError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, account.ErrUserNotFound):
		WriteHTTPError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, account.ErrUserExists):
		WriteHTTPError(w, http.StatusConflict, err.Error())
	case errors.Is(err, account.ErrUnsupportedImage):
		WriteHTTPError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, account.ErrImageTooLarge):
		WriteHTTPError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, account.ErrTooManyRequests):
		WriteHTTPError(w, http.StatusTooManyRequests, err.Error())
	default:
		log.Error().Err(err).Msg("account request failed")
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
