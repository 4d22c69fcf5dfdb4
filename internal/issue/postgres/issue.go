package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/frahmantamala/asset-management/internal/core/storage"
	"github.com/frahmantamala/asset-management/internal/issue"
)

type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) Create(ctx context.Context, i *issue.Issue) error {
	if err := r.db.WithContext(ctx).Create(i).Error; err != nil {
		return storage.Translate(err)
	}
	return nil
}

func (r *IssueRepository) ListAll(ctx context.Context) ([]*issue.Issue, error) {
	var issues []*issue.Issue
	if err := r.db.WithContext(ctx).Order("reported_at ASC").Find(&issues).Error; err != nil {
		return nil, storage.Translate(err)
	}
	return issues, nil
}

func (r *IssueRepository) ListByUser(ctx context.Context, userID string) ([]*issue.Issue, error) {
	var issues []*issue.Issue
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("reported_at ASC").
		Find(&issues).Error
	if err != nil {
		return nil, storage.Translate(err)
	}
	return issues, nil
}
