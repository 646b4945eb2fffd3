// Package user contains the business logic for the user resource: parsing
// incoming values into records and translating store errors.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/user-service/internal/models"
	"github.com/magabrotheeeer/user-service/internal/storage"
)

// ErrNotFound is returned when the addressed user does not exist.
var ErrNotFound = errors.New("User not found")

// Repository describes the store operations the service relies on.
type Repository interface {
	// CreateUser persists user and fills in its generated id.
	CreateUser(ctx context.Context, user *models.User) error
	// SetUserActive flips the active flag of a user.
	SetUserActive(ctx context.Context, id int, active bool) error
	// RemoveUser deletes a user.
	RemoveUser(ctx context.Context, id int) error
	// ListUsersByActive returns users filtered by the active flag.
	ListUsersByActive(ctx context.Context, active bool) ([]models.User, error)
}

// Service implements user operations on top of a Repository.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Create parses req, stores a new active user and returns its representation.
func (s *Service) Create(ctx context.Context, req models.DummyUser) (*models.UserResponse, error) {
	birthdate, err := time.Parse(models.DateLayout, req.Birthdate)
	if err != nil {
		return nil, fmt.Errorf("invalid birthdate: %w", err)
	}

	user := models.User{
		Name:      req.Name,
		Birthdate: birthdate,
		Active:    true,
	}
	if err = s.repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	s.log.Info("created new user", slog.Int("id", user.ID))

	resp := user.Response()
	return &resp, nil
}

// SetState sets the active flag of the user with the given id.
func (s *Service) SetState(ctx context.Context, id int, active bool) error {
	if err := s.repo.SetUserActive(ctx, id, active); err != nil {
		return translate(err)
	}
	s.log.Info("updated user state", slog.Int("id", id), slog.Bool("active", active))
	return nil
}

// Remove deletes the user with the given id.
func (s *Service) Remove(ctx context.Context, id int) error {
	if err := s.repo.RemoveUser(ctx, id); err != nil {
		return translate(err)
	}
	s.log.Info("removed user", slog.Int("id", id))
	return nil
}

// ListByState returns all users whose active flag equals active. The result
// is never nil.
func (s *Service) ListByState(ctx context.Context, active bool) ([]models.UserResponse, error) {
	users, err := s.repo.ListUsersByActive(ctx, active)
	if err != nil {
		return nil, err
	}

	result := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, u.Response())
	}
	return result, nil
}

func translate(err error) error {
	if errors.Is(err, storage.ErrUserNotFound) {
		return ErrNotFound
	}
	return err
}
