package httptransport

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSConfig lists the browser origins allowed to call the API. An empty
// list, or "*", admits any origin.
type CORSConfig struct {
	AllowedOrigins []string
}

// CORS lets browser clients call the API with credentials, so the session
// cookie travels with cross-origin requests.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	// Credentialed responses may not carry a literal "*", so any-origin
	// echoes the caller's origin instead.
	if anyOrigin(cfg.AllowedOrigins) {
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	} else {
		opts.AllowedOrigins = cfg.AllowedOrigins
	}
	return cors.Handler(opts)
}

func anyOrigin(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
