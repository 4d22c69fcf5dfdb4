package issue

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/asset"
	"github.com/frahmantamala/asset-management/internal/core/events"
	"github.com/frahmantamala/asset-management/internal/user"
)

// AssetChecker is the slice of the asset domain the issue service consults:
// the asset must exist and be held by the reporter.
type AssetChecker interface {
	GetByID(ctx context.Context, serialNumber string) (*asset.Asset, error)
	IsAssigned(ctx context.Context, userID, assetID string) (bool, error)
}

// UserGetter resolves users for existence checks on the listing path.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// Service owns issue reporting. Reports are gated on a live assignment: only
// the current holder of an asset may file against it.
type Service struct {
	repo   Repository
	assets AssetChecker
	users  UserGetter
	events *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, assets AssetChecker, users UserGetter, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		assets: assets,
		users:  users,
		events: bus,
		logger: logger,
	}
}

// Report files an issue on behalf of reporterID.
func (s *Service) Report(ctx context.Context, reporterID string, dto ReportIssueDTO) (*Issue, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.assets.GetByID(ctx, dto.AssetID); err != nil {
		return nil, err
	}

	held, err := s.assets.IsAssigned(ctx, reporterID, dto.AssetID)
	if err != nil {
		return nil, err
	}
	if !held {
		return nil, internal.ErrAssetNotAssigned
	}

	issue := &Issue{
		ID:          uuid.NewString(),
		UserID:      reporterID,
		AssetID:     dto.AssetID,
		Description: dto.Description,
		ReportedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, issue); err != nil {
		s.logger.Error("failed to create issue", "error", err, "user_id", reporterID, "asset_id", dto.AssetID)
		return nil, internal.ErrDatabaseOperation.WithCause(err)
	}

	s.logger.Info("issue reported", "issue_id", issue.ID, "user_id", reporterID, "asset_id", dto.AssetID)
	if s.events != nil {
		s.events.Publish(ctx, events.NewIssueReportedEvent(issue.ID, reporterID, dto.AssetID))
	}
	return issue, nil
}

// ListAll returns every issue on record.
func (s *Service) ListAll(ctx context.Context) ([]*Issue, error) {
	issues, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list issues", "error", err)
		return nil, internal.ErrDatabaseOperation.WithCause(err)
	}
	return issues, nil
}

// ListForUser returns the issues filed by one user.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*Issue, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	issues, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list user issues", "error", err, "user_id", userID)
		return nil, internal.ErrDatabaseOperation.WithCause(err)
	}
	return issues, nil
}
