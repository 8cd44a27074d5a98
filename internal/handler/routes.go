// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/speakercms/internal/cache"
	"github.com/olegiv/speakercms/internal/clientinfo"
	"github.com/olegiv/speakercms/internal/middleware"
	"github.com/olegiv/speakercms/internal/service"
	"github.com/olegiv/speakercms/internal/store"
	"github.com/olegiv/speakercms/internal/transfer"
	"github.com/olegiv/speakercms/internal/version"
	"github.com/olegiv/speakercms/internal/webhook"
)

// Cache lifetimes for static files, in seconds.
const (
	uploadsMaxAge = 604800 // 1 week
)

// RouterConfig holds everything the router needs.
type RouterConfig struct {
	DB       *sql.DB
	Sessions *scs.SessionManager
	Logger   *slog.Logger

	// Cache backs the public read cache. Nil disables it.
	Cache    cache.Cacher
	CacheTTL time.Duration

	UploadsDir  string
	PublicDir   string // optional built client
	CORSOrigins []string
	CSRFKey     []byte
	IsDev       bool
	Version     version.Info

	// LoginProtection is owned by the caller, which must Close it.
	// Nil disables login rate limiting and account lockout.
	LoginProtection *middleware.LoginProtection
	FormLimiter     *middleware.FormRateLimiter

	// Countries resolves client IPs in auth audit entries. Optional.
	Countries clientinfo.CountryLookup

	// Webhooks receives form submission events. Nil disables them.
	Webhooks *webhook.Dispatcher

	// SiteURL is the public origin used in sitemap.xml. Empty derives it
	// from the request host.
	SiteURL string
	// NoIndex asks crawlers to skip the whole site.
	NoIndex bool

	// AccessLog enables chi's request logger.
	AccessLog bool
}

// NewRouter builds the HTTP handler for the whole site.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	audit := service.NewAuditService(cfg.DB, logger)
	authService := service.NewAuthService(cfg.DB, logger)

	authHandler := NewAuthHandler(authService, audit, cfg.Sessions, cfg.LoginProtection,
		clientinfo.NewDescriber(cfg.Countries))
	formsHandler := NewFormsHandler(service.NewSubscriberService(cfg.DB), service.NewContactService(cfg.DB), audit, cfg.Webhooks)
	eventsHandler := NewEventsHandler(service.NewEventService(cfg.DB), audit)
	blogHandler := NewBlogHandler(service.NewBlogService(cfg.DB), audit)
	interviewsHandler := NewInterviewsHandler(service.NewInterviewService(cfg.DB), audit)
	singletonsHandler := NewSingletonsHandler(
		service.NewEbookService(cfg.DB),
		service.NewHeroService(cfg.DB),
		service.NewSettingsService(cfg.DB),
		audit,
	)
	uploadHandler := NewUploadHandler(service.NewUploadService(cfg.UploadsDir, logger), audit)
	activityHandler := NewActivityHandler(audit)
	exportHandler := NewExportHandler(transfer.NewExporter(store.New(cfg.DB), cfg.UploadsDir, logger), audit)
	healthHandler := NewHealthHandler(cfg.DB, cfg.UploadsDir, cfg.Version)
	seoHandler := NewSEOHandler(service.NewBlogService(cfg.DB), cfg.SiteURL, cfg.NoIndex)

	formLimiter := cfg.FormLimiter
	if formLimiter == nil {
		formLimiter = middleware.NewFormRateLimiter(1, 5)
	}

	csrf := middleware.CSRF(middleware.NewCSRFConfig(cfg.CSRFKey, cfg.CORSOrigins, cfg.IsDev))

	readCache := func(next http.Handler) http.Handler { return next }
	invalidate := readCache
	if cfg.Cache != nil {
		readCache = middleware.ResponseCache(cfg.Cache, cfg.CacheTTL)
		invalidate = middleware.InvalidateCache(cfg.Cache)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.AccessLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDev)))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(cfg.Sessions.LoadAndSave)
	r.Use(middleware.LoadUser(cfg.Sessions, authService))

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/sitemap.xml", seoHandler.Sitemap)
	r.Get("/robots.txt", seoHandler.Robots)

	uploads := http.StripPrefix(service.UploadURLPrefix, http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Handle(service.UploadURLPrefix+"*", middleware.StaticCache(uploadsMaxAge)(uploads))

	r.Route("/api", func(r chi.Router) {
		// Public reads
		r.Group(func(r chi.Router) {
			r.Use(readCache)
			r.Get("/events", eventsHandler.List)
			r.Get("/blog", blogHandler.ListPublished)
			r.Get("/blog/{slug}", blogHandler.GetBySlug)
			r.Get("/ebook", singletonsHandler.PublicEbook)
			r.Get("/hero", singletonsHandler.PublicHero)
			r.Get("/interviews", interviewsHandler.List)
			r.Get("/settings/{section}", singletonsHandler.PublicSettings)
		})

		// Public forms
		r.Group(func(r chi.Router) {
			r.Use(formLimiter.Middleware())
			r.Post("/subscribe", formsHandler.Subscribe)
			r.Post("/contact", formsHandler.Contact)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/session", authHandler.Session)

			login := r.With(csrf)
			if cfg.LoginProtection != nil {
				login = login.With(cfg.LoginProtection.Middleware())
			}
			login.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(audit))
				r.Use(csrf)
				r.Use(invalidate)

				r.Post("/logout", authHandler.Logout)

				r.Route("/events", func(r chi.Router) {
					r.Get("/", eventsHandler.List)
					r.Post("/", eventsHandler.Create)
					r.Get("/{id}", eventsHandler.Get)
					r.Put("/{id}", eventsHandler.Update)
					r.Delete("/{id}", eventsHandler.Delete)
				})

				r.Route("/blog", func(r chi.Router) {
					r.Get("/", blogHandler.List)
					r.Post("/", blogHandler.Create)
					r.Get("/{id}", blogHandler.Get)
					r.Put("/{id}", blogHandler.Update)
					r.Delete("/{id}", blogHandler.Delete)
				})

				r.Route("/interviews", func(r chi.Router) {
					r.Get("/", interviewsHandler.List)
					r.Post("/", interviewsHandler.Create)
					r.Post("/reorder", interviewsHandler.Reorder)
					r.Get("/{id}", interviewsHandler.Get)
					r.Put("/{id}", interviewsHandler.Update)
					r.Delete("/{id}", interviewsHandler.Delete)
					r.Post("/{id}/move", interviewsHandler.Move)
				})

				r.Get("/ebook", singletonsHandler.AdminEbook)
				r.Put("/ebook", singletonsHandler.UpdateEbook)
				r.Get("/hero", singletonsHandler.AdminHero)
				r.Put("/hero", singletonsHandler.UpdateHero)
				r.Get("/settings/{section}", singletonsHandler.AdminSettings)
				r.Put("/settings/{section}", singletonsHandler.UpdateSettings)

				r.Get("/subscribers", formsHandler.ListSubscribers)
				r.Get("/subscribers/{id}", formsHandler.GetSubscriber)
				r.Delete("/subscribers/{id}", formsHandler.DeleteSubscriber)
				r.Get("/contacts", formsHandler.ListContacts)
				r.Get("/contacts/{id}", formsHandler.GetContact)
				r.Delete("/contacts/{id}", formsHandler.DeleteContact)

				r.Post("/upload", uploadHandler.Upload)
				r.Get("/activity", activityHandler.List)
				r.Get("/export", exportHandler.Export)
			})
		})

		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			middleware.WriteError(w, http.StatusNotFound, "Not found", nil)
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		})
	})

	if cfg.PublicDir != "" {
		r.NotFound(NewFrontendHandler(cfg.PublicDir).ServeHTTP)
	} else {
		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			middleware.WriteError(w, http.StatusNotFound, "Not found", nil)
		})
	}

	return r
}
