package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/locale"
	"github.com/rpupo63/portfolio-backend/storage"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
	stop        context.CancelFunc
}

func NewServer(deps Deps, c map[string]string) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	// background work owned by the router stops with the server
	ctx, stop := context.WithCancel(context.Background())

	router, err := newRouter(ctx, deps, withConfig(c), withStartupTime(startupTime))
	if err != nil {
		stop()
		return Server{}, err
	}

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{Server: server, startupTime: startupTime, stop: stop}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(ctx context.Context, deps Deps, opts ...func(*router)) (*chi.Mux, error) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.config == nil {
		router.config = map[string]string{}
	}

	secret := config.GetString(router.config, "JWT_SECRET", "")
	if secret == "" {
		return nil, errs.NewEnvironmentVariableError("JWT_SECRET")
	}
	t := newTokens(secret, config.GetDuration(router.config, "JWT_TTL", 72*time.Hour))

	if deps.Locales == nil {
		deps.Locales = locale.NewResolver(locale.DefaultLocale, nil)
	}
	if deps.Catalog == nil {
		catalog, err := locale.Embedded()
		if err != nil {
			return nil, fmt.Errorf("load translations: %w", err)
		}
		deps.Catalog = catalog
	}

	trustedProxies, err := parseTrustedProxies(config.GetList(router.config, "TRUSTED_PROXIES", nil))
	if err != nil {
		return nil, errs.NewConfigError("TRUSTED_PROXIES", err)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(clientIPMiddleware(trustedProxies))
	chiRouter.Use(metricsMiddleware)
	chiRouter.Use(localeMiddleware(deps.Locales))
	chiRouter.Use(HTTPLoggingMiddleware)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS", []string{"*"})
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Language", "Retry-After"},
		AllowCredentials: !containsWildcard(acceptedOrigins),
		MaxAge:           300,
	}))

	maxBody := int64(config.GetInt(router.config, "MAX_BODY_BYTES", 64<<20))
	chiRouter.Use(maxBodyMiddleware(maxBody))

	handlers := initializeHandlers(deps, t)
	auth := newAuthMiddleware(t)
	contactLimiter := newRateLimiter(ctx,
		config.GetInt(router.config, "CONTACT_RATE_LIMIT", 5),
		config.GetDuration(router.config, "CONTACT_RATE_WINDOW", time.Minute),
		config.GetInt(router.config, "CONTACT_RATE_BURST", 5),
	)

	chiRouter.Get("/healthz", handlers.healthHandler.healthz())
	chiRouter.Handle("/metrics", promhttp.Handler())

	if local, ok := deps.Storage.(*storage.Local); ok {
		mount := "/" + strings.Trim(config.GetString(router.config, "STORAGE_MOUNT", "storage"), "/")
		chiRouter.Handle(mount+"/*", http.StripPrefix(mount+"/", http.FileServer(http.Dir(local.Root()))))
	}

	chiRouter.Route("/api", func(r chi.Router) {
		setupPublicRoutes(r, handlers, auth, contactLimiter)
		r.Route("/admin", func(r chi.Router) {
			setupAdminRoutes(r, handlers, auth)
		})
	})

	log.Info().
		Strs("origins", acceptedOrigins).
		Bool("contactLimiter", contactLimiter != nil).
		Int("trustedProxies", len(trustedProxies)).
		Time("startupTime", router.startupTime).
		Msg("Router ready")

	return chiRouter, nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")
	if s.stop != nil {
		defer s.stop()
	}

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
