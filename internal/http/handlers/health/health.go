// Package health implements the liveness endpoint.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-service/internal/http/response"
	"github.com/magabrotheeeer/user-service/internal/lib/sl"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log    *slog.Logger
	pinger Pinger
}

func New(log *slog.Logger, pinger Pinger) *Handler {
	return &Handler{
		log:    log,
		pinger: pinger,
	}
}

// ServeHTTP godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.log.Error("store is unreachable", slog.String("op", "handlers.health"), sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("store is unreachable"))
		return
	}
	render.JSON(w, r, response.OK())
}
