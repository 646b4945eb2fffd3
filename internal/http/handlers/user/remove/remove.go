// Package remove implements the HTTP handler that deletes a user by id.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-service/internal/http/response"
	"github.com/magabrotheeeer/user-service/internal/lib/sl"
	userservice "github.com/magabrotheeeer/user-service/internal/services/user"
)

// Handler serves DELETE /api/users/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the user removal logic.
type Service interface {
	Remove(ctx context.Context, id int) error
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Delete a user
// @Description Physically removes the user row.
// @Tags Users
// @Produce json
// @Param id path int true "ID of the user to delete"
// @Success 204 "User deleted successfully"
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Failure 500 {object} response.ErrorResponse "Store failure"
// @Router /users/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	err = h.service.Remove(r.Context(), id)
	switch {
	case errors.Is(err, userservice.ErrNotFound):
		log.Info("user not found", slog.Int("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(userservice.ErrNotFound.Error()))
		return
	case err != nil:
		log.Error("failed to delete user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete user"))
		return
	}

	log.Info("user deleted", slog.Int("id", id))
	w.WriteHeader(http.StatusNoContent)
}
