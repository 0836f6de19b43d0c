// Package main is the entrypoint for the Hireboard API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/hireboard/hireboard/internal/cache"
	"github.com/hireboard/hireboard/internal/config"
	"github.com/hireboard/hireboard/internal/handler"
	"github.com/hireboard/hireboard/internal/metrics"
	"github.com/hireboard/hireboard/internal/middleware"
	"github.com/hireboard/hireboard/internal/repository"
	"github.com/hireboard/hireboard/internal/server"
	"github.com/hireboard/hireboard/internal/service"
)

func main() {
	ctx := context.Background()

	// Best effort; production supplies real environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Services
	recorder := metrics.NewInMemory()
	accountService := service.NewAccountService(repo, cacheClient, cfg.SessionTTL, recorder)
	jobService := service.NewJobService(repo, recorder)
	applicationService := service.NewApplicationService(repo, recorder)

	// Handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(recorder)
	accountHandler := handler.NewAccountHandler(accountService, logger, cfg.IsProduction())
	jobHandler := handler.NewJobHandler(jobService, logger)
	applicationHandler := handler.NewApplicationHandler(applicationService, logger)

	r := setupRouter(routerDeps{
		base:         h,
		health:       healthHandler,
		metrics:      metricsHandler,
		accounts:     accountHandler,
		jobs:         jobHandler,
		applications: applicationHandler,
		cache:        cacheClient,
		cfg:          cfg,
		logger:       logger,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	base         *handler.Handler
	health       *handler.HealthHandler
	metrics      *handler.MetricsHandler
	accounts     *handler.AccountHandler
	jobs         *handler.JobHandler
	applications *handler.ApplicationHandler
	cache        *cache.Cache
	cfg          *config.Config
	logger       *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      deps.cfg.IsDevelopment(),
		MaxRequestBodySize: deps.cfg.MaxRequestBodySize,
	}))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Health and metrics endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)

	// Root info endpoint
	r.Get("/", deps.base.Hello)

	authMW := middleware.Auth(middleware.AuthConfig{
		Logger: deps.logger,
		Cache:  deps.cache,
	})

	throttleMW := middleware.LoginThrottle(middleware.ThrottleConfig{
		Logger:  deps.logger,
		Cache:   deps.cache,
		Enabled: deps.cfg.LoginThrottleEnabled,
		Limit:   deps.cfg.LoginThrottleLimit,
		Window:  deps.cfg.LoginThrottleWindow,
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public: account creation and login
		r.Post("/auth/signup", deps.accounts.Signup)
		r.With(throttleMW).Post("/auth/login", deps.accounts.Login)

		// Everything else requires a session
		r.Group(func(r chi.Router) {
			r.Use(authMW)

			r.Post("/auth/logout", deps.accounts.Logout)
			r.Get("/auth/me", deps.accounts.Me)

			// Job board: seekers browse, employers manage their postings
			r.Route("/jobs", func(r chi.Router) {
				r.With(middleware.RequireJobSeeker()).Get("/", deps.jobs.List)
				r.With(middleware.RequireEmployer()).Post("/", deps.jobs.Create)
				r.Get("/{id}", deps.jobs.Get)
				r.With(middleware.RequireEmployer()).Patch("/{id}", deps.jobs.Update)
				r.With(middleware.RequireEmployer()).Delete("/{id}", deps.jobs.Delete)

				r.With(middleware.RequireJobSeeker()).Post("/{id}/apply", deps.applications.Apply)
				r.With(middleware.RequireEmployer()).Get("/{id}/applications", deps.applications.JobApplications)
			})

			r.With(middleware.RequireEmployer()).Get("/my/jobs", deps.jobs.MyJobs)
			r.Get("/my/applications", deps.applications.MyApplications)
			r.Get("/applications/{id}", deps.applications.Get)

			// Dashboards
			r.With(middleware.RequireEmployer()).Get("/dashboard/employer", deps.jobs.MyJobs)
			r.With(middleware.RequireJobSeeker()).Get("/dashboard/jobseeker", deps.applications.Dashboard)
		})
	})

	// 404 and 405 handlers
	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
