// Package create implements the HTTP handler that registers a new user.
//
// The handler decodes a strictly typed JSON body, checks that every required
// field is present, delegates parsing and persistence to the service and
// answers with the stored user.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/user-service/internal/http/response"
	"github.com/magabrotheeeer/user-service/internal/lib/sl"
	"github.com/magabrotheeeer/user-service/internal/models"
)

// Handler serves POST /api/users.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service describes the user creation logic.
type Service interface {
	Create(ctx context.Context, req models.DummyUser) (*models.UserResponse, error)
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
// @Summary Create a new user
// @Description Creates an active user from a name and an ISO birthdate (YYYY-MM-DD).
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.DummyUser true "User object"
// @Success 201 {object} models.UserResponse "User created successfully"
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Router /users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUser
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	log.Debug("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create user", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("user created", slog.Int("id", user.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, user)
}
