package httptransport

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"rofl-backend/internal/app/account"
	"rofl-backend/internal/app/hostitem"
	"rofl-backend/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type RouterDeps struct {
	Accounts  *account.Service
	HostItems *hostitem.Service
	Tokens    TokenParser
	DB        Pinger
	Metrics   *Metrics
	Cookie    CookieConfig
	AuthRate  RateLimit
	CORS      CORSConfig

	// UploadDir is served read-only under UploadBaseURL when both are set.
	UploadDir      string
	UploadBaseURL  string
	MaxUploadBytes int64
}

func NewRouter(d RouterDeps) *chi.Mux {
	if d.Metrics == nil {
		d.Metrics = NewMetrics()
	}
	accountHandlers := NewAccountHandlers(d.Accounts, d.Cookie, d.Metrics, d.MaxUploadBytes)
	hostItemHandlers := NewHostItemHandlers(d.HostItems)
	adminHandlers := NewAdminHandlers(d.DB, d.Accounts)
	authenticate := AuthMiddleware(d.Tokens, accountHandlers.cookie.Name)
	limiter := NewRateLimiter(d.AuthRate)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(CORS(d.CORS))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ROFL backend is running\n"))
	})
	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())
	r.Handle("/metrics", d.Metrics.Handler())

	// Legacy paths kept for existing clients.
	r.Group(func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Use(limiter.Middleware)
		r.Post("/users", accountHandlers.Register())
		r.Post("/login", accountHandlers.Login())
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(limiter.Middleware)
				r.Post("/register", accountHandlers.Register())
				r.Post("/login", accountHandlers.Login())
				r.Post("/forgot-password", accountHandlers.ForgotPassword())
				r.Post("/reset-password", accountHandlers.ResetPassword())
			})
			r.Post("/logout", accountHandlers.Logout())
			r.With(authenticate).Get("/me", accountHandlers.Me())
		})

		r.Get("/host-items", hostItemHandlers.List())
		r.Get("/host-items/quote", hostItemHandlers.Quote())
		r.Get("/host-items/{item_id}", hostItemHandlers.Get())

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/host-items", hostItemHandlers.Create())
			r.Post("/users/me/profile-image", accountHandlers.UploadProfileImage())
			r.Get("/users/me/images", accountHandlers.MyImages())
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(RequireRole(store.RoleAdmin))
			r.Get("/users", adminHandlers.Users())
			r.Patch("/users/{user_id}/role", adminHandlers.SetRole())
		})
	})

	if d.UploadDir != "" && strings.HasPrefix(d.UploadBaseURL, "/") {
		base := strings.TrimRight(d.UploadBaseURL, "/")
		files := http.StripPrefix(base, noDirListing(http.FileServer(http.Dir(d.UploadDir))))
		r.Handle(base+"/*", files)
	} else if d.UploadDir != "" {
		log.Info().Str("base_url", d.UploadBaseURL).Msg("uploads served externally; skipping file route")
	}
	return r
}

func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 32)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
