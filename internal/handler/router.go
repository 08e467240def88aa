package handler

import (
	"net/http"
	"time"

	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/metrics"
	"storeadmin-be/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const requestTimeout = 30 * time.Second

type Deps struct {
	Orders    *OrderHandler
	Products  *ProductHandler
	Users     *UserHandler
	Companies *CompanyHandler
	Contacts  *ContactHandler

	UploadDir    string
	HealthChecks []HealthCheck
	JWTSecret    string
	Limiter      *middleware.Limiter
	Metrics      *metrics.Collectors
	Gatherer     prometheus.Gatherer
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", IdempotencyKeyHeader, logger.RequestIDHeader, "X-Device-ID", "X-Client-Type", "X-Action"},
		ExposedHeaders:   []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(logger.RequestIDMiddleware)
	r.Use(chimw.RealIP)
	r.Use(middleware.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	if d.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(d.Metrics))
	}
	r.Use(middleware.AuthMiddleware(d.JWTSecret))
	if d.Limiter != nil {
		r.Use(d.Limiter.RateLimitMiddleware)
	}
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/", Welcome)
	r.Get("/healthz", Health(d.HealthChecks))
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}
	if d.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadDir))))
	}

	if d.Orders != nil {
		r.Route("/orders", d.Orders.Routes)
	}
	if d.Products != nil {
		r.Route("/products", d.Products.Routes)
	}
	if d.Users != nil {
		r.Route("/users", d.Users.Routes)
	}
	if d.Companies != nil {
		r.Route("/company", d.Companies.Routes)
	}
	if d.Contacts != nil {
		r.Route("/contacts", d.Contacts.Routes)
	}

	return r
}
