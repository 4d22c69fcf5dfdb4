package asset

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/events"
	"github.com/frahmantamala/asset-management/internal/core/storage"
	"github.com/frahmantamala/asset-management/internal/user"
)

// UserGetter is the slice of the user domain the asset service consults for
// existence checks.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// Service owns the asset lifecycle: creation, assignment, unassignment and
// removal. All cross-entity invariants are checked here; races on the
// one-assignment-per-asset rule are settled by the store's unique index.
type Service struct {
	repo   Repository
	users  UserGetter
	events *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, users UserGetter, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		events: bus,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*Asset, error) {
	assets, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list assets", "error", err)
		return nil, internal.ErrDatabaseOperation.WithCause(err)
	}
	return assets, nil
}

// Add creates an asset in the available state, generating a serial number
// when the request carries none.
func (s *Service) Add(ctx context.Context, dto AssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	serial := dto.SerialNumber
	if serial == "" {
		serial = uuid.NewString()
	}

	now := time.Now().UTC()
	a := &Asset{
		SerialNumber: serial,
		Name:         dto.Name,
		Description:  dto.Description,
		Status:       StatusAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, internal.ErrAssetExists
		}
		s.logger.Error("failed to add asset", "error", err, "serial_number", serial)
		return nil, internal.ErrDatabaseOperation.WithCause(err)
	}

	s.logger.Info("asset added", "serial_number", serial, "name", a.Name)
	return a, nil
}

// Delete removes an asset; dependent assignments and issues are removed by
// the store's cascade.
func (s *Service) Delete(ctx context.Context, serialNumber string) error {
	if _, err := s.GetByID(ctx, serialNumber); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, serialNumber); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return internal.ErrAssetNotFound
		}
		s.logger.Error("failed to delete asset", "error", err, "serial_number", serialNumber)
		return internal.ErrDatabaseOperation.WithCause(err)
	}

	s.logger.Info("asset deleted", "serial_number", serialNumber)
	return nil
}

// Assign gives an available asset to a user. The assignment row and the
// status flip commit in one transaction; a concurrent assignment losing the
// race surfaces as the store's integrity signal and is reported as an
// already-assigned conflict.
func (s *Service) Assign(ctx context.Context, userID, assetID string) error {
	a, err := s.GetByID(ctx, assetID)
	if err != nil {
		return err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	if a.Status != StatusAvailable {
		return s.alreadyAssignedError(ctx, userID, assetID)
	}

	assignment := &Assignment{
		ID:         uuid.NewString(),
		UserID:     userID,
		AssetID:    assetID,
		AssignedAt: time.Now().UTC(),
	}

	if err := s.repo.Assign(ctx, assignment); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) || errors.Is(err, storage.ErrIntegrityViolation) {
			return s.alreadyAssignedError(ctx, userID, assetID)
		}
		s.logger.Error("failed to assign asset", "error", err, "user_id", userID, "asset_id", assetID)
		return internal.ErrDatabaseOperation.WithCause(err)
	}

	s.logger.Info("asset assigned", "user_id", userID, "asset_id", assetID, "assignment_id", assignment.ID)
	if s.events != nil {
		s.events.Publish(ctx, events.NewAssetAssignedEvent(userID, assetID, assignment.ID))
	}
	return nil
}

// Unassign returns an asset to the available state.
func (s *Service) Unassign(ctx context.Context, userID, assetID string) error {
	if _, err := s.GetByID(ctx, assetID); err != nil {
		return err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	held, err := s.IsAssigned(ctx, userID, assetID)
	if err != nil {
		return err
	}
	if !held {
		return internal.ErrAssetNotAssigned
	}

	if err := s.repo.Unassign(ctx, userID, assetID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return internal.ErrAssetNotAssigned
		}
		s.logger.Error("failed to unassign asset", "error", err, "user_id", userID, "asset_id", assetID)
		return internal.ErrDatabaseOperation.WithCause(err)
	}

	s.logger.Info("asset unassigned", "user_id", userID, "asset_id", assetID)
	if s.events != nil {
		s.events.Publish(ctx, events.NewAssetUnassignedEvent(userID, assetID))
	}
	return nil
}

// AssignedToUser lists the assets currently held by one user.
func (s *Service) AssignedToUser(ctx context.Context, userID string) (*UserAssets, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	assets, err := s.repo.ListAssignedToUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list assigned assets", "error", err, "user_id", userID)
		return nil, internal.ErrDatabaseOperation.WithCause(err)
	}

	return &UserAssets{UserID: userID, Assets: assets}, nil
}

// AllAssignments returns the grouped fleet-wide view: one entry per user
// holding at least one asset.
func (s *Service) AllAssignments(ctx context.Context) ([]UserAssignments, error) {
	grouped, err := s.repo.ListAllAssignments(ctx)
	if err != nil {
		s.logger.Error("failed to list assignments", "error", err)
		return nil, internal.ErrDatabaseOperation.WithCause(err)
	}
	return grouped, nil
}

// GetByID fetches a single asset.
func (s *Service) GetByID(ctx context.Context, serialNumber string) (*Asset, error) {
	a, err := s.repo.GetByID(ctx, serialNumber)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, internal.ErrAssetNotFound
		}
		s.logger.Error("failed to get asset", "error", err, "serial_number", serialNumber)
		return nil, internal.ErrDatabaseOperation.WithCause(err)
	}
	return a, nil
}

// IsAssigned reports whether the given user currently holds the given
// asset.
func (s *Service) IsAssigned(ctx context.Context, userID, assetID string) (bool, error) {
	held, err := s.repo.AssignmentExists(ctx, userID, assetID)
	if err != nil {
		s.logger.Error("failed to check assignment", "error", err, "user_id", userID, "asset_id", assetID)
		return false, internal.ErrDatabaseOperation.WithCause(err)
	}
	return held, nil
}

// alreadyAssignedError distinguishes a retry by the current holder from a
// conflict with another user. Both carry the same error code; only the
// message differs.
func (s *Service) alreadyAssignedError(ctx context.Context, userID, assetID string) error {
	held, err := s.repo.AssignmentExists(ctx, userID, assetID)
	if err != nil {
		return internal.ErrDatabaseOperation.WithCause(err)
	}
	if held {
		return internal.ErrAssignedToThisUser
	}
	return internal.ErrAssignedToOther
}
