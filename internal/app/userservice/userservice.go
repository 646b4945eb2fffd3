package userservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/user-service/internal/config"
	"github.com/magabrotheeeer/user-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-service/internal/lib/sl"
	usersvc "github.com/magabrotheeeer/user-service/internal/services/user"
	"github.com/magabrotheeeer/user-service/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App owns the HTTP server and the store for the lifetime of the process.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	storage *storage.Storage
}

// New opens the store and builds the HTTP server. The caller must call Run
// (which closes the store on exit) or Close.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	st, err := storage.New(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("storage is ready")

	router := NewRouter(cfg, logger, st)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		storage: st,
	}, nil
}

// NewRouter builds the fully wired router on top of st. Each call uses its
// own metrics registry.
func NewRouter(cfg *config.Config, logger *slog.Logger, st *storage.Storage) chi.Router {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := chi.NewRouter()
	RegisterRoutes(
		router,
		logger,
		usersvc.NewService(st, logger),
		st,
		middlewarectx.NewMetrics(reg),
		reg,
		middlewarectx.NewLimiter(cfg.RPS, cfg.Burst),
	)
	return router
}

// Run serves HTTP until ctx is canceled, then shuts the server down
// gracefully and closes the store.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}

// Close releases the store.
func (a *App) Close() {
	if err := a.storage.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
