// Package list implements the HTTP handlers that list users by their
// active flag.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-service/internal/http/response"
	"github.com/magabrotheeeer/user-service/internal/lib/sl"
	"github.com/magabrotheeeer/user-service/internal/models"
)

// Handler serves GET /api/users/active and GET /api/users/inactive.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the listing logic.
type Service interface {
	ListByState(ctx context.Context, active bool) ([]models.UserResponse, error)
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// Active godoc
// @Summary List all active users
// @Tags Users
// @Produce json
// @Success 200 {array} models.UserResponse "List of active users"
// @Failure 500 {object} response.ErrorResponse "Store failure"
// @Router /users/active [get]
func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, true)
}

// Inactive godoc
// @Summary List all inactive users
// @Tags Users
// @Produce json
// @Success 200 {array} models.UserResponse "List of inactive users"
// @Failure 500 {object} response.ErrorResponse "Store failure"
// @Router /users/inactive [get]
func (h *Handler) Inactive(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, false)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, active bool) {
	const op = "handlers.user.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Bool("active", active),
	)

	users, err := h.service.ListByState(r.Context(), active)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list users"))
		return
	}

	log.Info("listed users", slog.Int("count", len(users)))
	render.JSON(w, r, users)
}
