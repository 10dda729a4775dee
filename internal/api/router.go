package api

import (
	"log/slog"
	"net/http"
	"time"

	_ "library-store/docs"
	"library-store/internal/api/handler"
	mw "library-store/internal/api/middleware"
	"library-store/internal/auth"
	"library-store/internal/config"
	"library-store/internal/domain/account"
	"library-store/internal/domain/catalog"
	"library-store/internal/domain/customer"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Services bundles what the HTTP handlers call into.
type Services struct {
	Customers customer.CustomerService
	Catalog   catalog.Service
	Accounts  account.Manager
}

func SetupRouter(rateLimiter *mw.RateLimiterMiddleware, services Services, tokens *auth.TokenService, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, rateLimiter, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	authMiddleware := mw.AuthMiddleware(cfg.Server.Auth, tokens, logger)
	setupAuthRoutes(router, services.Accounts, tokens, logger)
	setupCustomerRoutes(router, authMiddleware, services.Customers, logger)
	setupCatalogRoutes(router, authMiddleware, services.Catalog, logger)

	return router
}

func setupMiddleware(router *chi.Mux, rateLimiter *mw.RateLimiterMiddleware, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	if rateLimiter != nil {
		router.Use(rateLimiter.Middleware)
	}
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, accounts account.Manager, tokens *auth.TokenService, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(accounts, tokens, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupCustomerRoutes(router chi.Router, authMiddleware func(http.Handler) http.Handler, svc customer.CustomerService, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svc, logger)
	guard := func(op auth.Operation) func(http.Handler) http.Handler {
		return mw.Authorize(op, logger)
	}

	router.Route("/customers", func(r chi.Router) {
		r.Use(authMiddleware)
		r.With(guard(auth.OpListCustomers)).Get("/", h.ListCustomers)
		r.With(guard(auth.OpNewCustomer)).Get("/new", h.NewCustomer)
		r.With(guard(auth.OpSaveCustomer)).Post("/save", h.SaveCustomer)
		r.Route("/{customerID}", func(r chi.Router) {
			r.With(guard(auth.OpViewCustomer)).Get("/", h.GetCustomer)
			r.With(guard(auth.OpEditCustomer)).Get("/edit", h.EditCustomer)
		})
	})
}

func setupCatalogRoutes(router chi.Router, authMiddleware func(http.Handler) http.Handler, svc catalog.Service, logger *slog.Logger) {
	h := handler.NewCatalogHandler(svc, logger)

	router.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(mw.Authorize(auth.OpReadCatalog, logger))
		r.Get("/books", h.ListBooks)
		r.Get("/books/{bookID}", h.GetBook)
		r.Get("/genres", h.ListGenres)
		r.Get("/membership-types", h.ListMembershipTypes)
	})
}
