package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/AlexanderWinters/the-score-card/internal/http/handlers"
	"github.com/AlexanderWinters/the-score-card/internal/http/middleware"
	"github.com/AlexanderWinters/the-score-card/internal/importer"
	"github.com/AlexanderWinters/the-score-card/internal/metrics"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Health    *handlers.HealthHandler
	Courses   *handlers.CourseHandler
	Bootstrap *handlers.BootstrapHandler
	Auth      *handlers.AuthHandler
	Rounds    *handlers.RoundHandler
	Sessions  *handlers.SessionHandler
}

// Options carries the cross-cutting pieces of the router.
type Options struct {
	Logger         *slog.Logger
	Recorder       *metrics.Recorder
	Authenticator  middleware.Authenticator
	AllowedOrigins []string
	// AuthLimiter throttles register and token requests per client IP. Nil disables it.
	AuthLimiter *middleware.IPRateLimiter
}

// NewRouter registers every HTTP route on a chi router.
func NewRouter(h Handlers, opts Options) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(func(next nethttp.Handler) nethttp.Handler {
		return middleware.LoggingMiddleware(opts.Logger, opts.Recorder, next)
	})
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", h.Health.Health)
	r.Get("/ready", h.Health.Ready)

	requireUser := middleware.RequireUser(opts.Authenticator, opts.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.Courses.List)
			r.Get("/{id}", h.Courses.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireUser)
				r.Post("/", h.Courses.Create)
				r.Put("/{id}", h.Courses.Update)
				r.Patch("/{id}/toggle-active", h.Courses.ToggleActive)
				r.Post("/json-upload", h.Courses.Upload(importer.FormatJSON))
				r.Post("/csv-upload", h.Courses.Upload(importer.FormatCSV))
				r.Post("/xlsx-upload", h.Courses.Upload(importer.FormatXLSX))
				r.Post("/yaml-upload", h.Courses.Upload(importer.FormatYAML))
			})
		})

		r.Post("/seed", h.Bootstrap.Seed)
		r.Get("/check-database", h.Bootstrap.CheckDatabase)

		r.Group(func(r chi.Router) {
			if opts.AuthLimiter != nil {
				r.Use(middleware.RateLimitMiddleware(opts.AuthLimiter))
			}
			r.Post("/register", h.Auth.Register)
			r.Post("/token", h.Auth.Token)
		})

		r.Post("/scorecard", h.Rounds.Scorecard)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Get("/users/me", h.Auth.Me)

			r.Post("/rounds", h.Rounds.Save)
			r.Get("/rounds", h.Rounds.History)
			r.Get("/rounds/chart.png", h.Rounds.Chart)

			r.Get("/session", h.Sessions.Get)
			r.Put("/session", h.Sessions.Update)
			r.Delete("/session", h.Sessions.Reset)
			r.Patch("/session/holes/{number}", h.Sessions.SetHole)
			r.Post("/session/submit", h.Sessions.Submit)
		})
	})

	return r
}
