package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/storage"
)

// Service owns account lookup and removal. Account creation lives in the
// auth service because it is inseparable from credential handling.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, internal.ErrUserNotFound
		}
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, internal.ErrDatabaseOperation.WithCause(err)
	}
	return u, nil
}

// List returns every non-admin account; administrators are elided from the
// public listing.
func (s *Service) List(ctx context.Context) ([]View, error) {
	users, err := s.repo.ListNonAdmin(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.ErrDatabaseOperation.WithCause(err)
	}

	views := make([]View, 0, len(users))
	for _, u := range users {
		views = append(views, u.ToView())
	}
	return views, nil
}

// Delete removes the account. Dependent assignments and issues go with it
// through the store's referential cascade.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return internal.ErrUserNotFound
		}
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return internal.ErrDatabaseOperation.WithCause(err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
