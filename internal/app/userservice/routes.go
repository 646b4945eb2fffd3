// Package userservice wires the HTTP router, the store and the server of
// the user service.
package userservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	// Registers the generated OpenAPI document served under /docs.
	_ "github.com/magabrotheeeer/user-service/docs"
	"github.com/magabrotheeeer/user-service/internal/http/handlers/health"
	"github.com/magabrotheeeer/user-service/internal/http/handlers/user/create"
	"github.com/magabrotheeeer/user-service/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/user-service/internal/http/handlers/user/remove"
	"github.com/magabrotheeeer/user-service/internal/http/handlers/user/state"
	"github.com/magabrotheeeer/user-service/internal/http/middlewarectx"
	usersvc "github.com/magabrotheeeer/user-service/internal/services/user"
)

// RegisterRoutes mounts every endpoint of the service on r.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	userService *usersvc.Service,
	pinger health.Pinger,
	metrics *middlewarectx.Metrics,
	gatherer prometheus.Gatherer,
	limiter *rate.Limiter,
) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		metrics.Middleware,
	)

	listHandler := list.New(logger, userService)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.New(logger, pinger).ServeHTTP)

		r.Route("/users", func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))

			r.Post("/", create.New(logger, userService).ServeHTTP)
			r.Get("/active", listHandler.Active)
			r.Get("/inactive", listHandler.Inactive)
			r.Put("/{id:[0-9]+}/state", state.New(logger, userService).ServeHTTP)
			r.Delete("/{id:[0-9]+}", remove.New(logger, userService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
