// Package state implements the HTTP handler that activates or deactivates
// a user.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/user-service/internal/http/response"
	"github.com/magabrotheeeer/user-service/internal/lib/sl"
	"github.com/magabrotheeeer/user-service/internal/models"
	userservice "github.com/magabrotheeeer/user-service/internal/services/user"
)

// Handler serves PUT /api/users/{id}/state.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service describes the state update logic.
type Service interface {
	SetState(ctx context.Context, id int, active bool) error
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Update user's active state
// @Description Sets the active flag of a user. Any value may be set at any time.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "ID of the user to update"
// @Param request body models.DummyState true "Active state data"
// @Success 204 "User state updated successfully"
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Router /users/{id}/state [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.state"
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

	var req models.DummyState
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err = dec.Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	if err = h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err = h.service.SetState(r.Context(), id, *req.Active)
	switch {
	case errors.Is(err, userservice.ErrNotFound):
		log.Info("user not found", slog.Int("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(userservice.ErrNotFound.Error()))
		return
	case err != nil:
		log.Error("failed to update user state", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("user state updated", slog.Int("id", id), slog.Bool("active", *req.Active))
	w.WriteHeader(http.StatusNoContent)
}
