package issue

import (
	"context"
	"time"
)

// Issue is a problem report filed by the user currently holding an asset.
type Issue struct {
	ID          string    `json:"id" gorm:"primaryKey;column:id"`
	UserID      string    `json:"user_id" gorm:"column:user_id;not null"`
	AssetID     string    `json:"asset_id" gorm:"column:asset_id;not null"`
	Description string    `json:"description" gorm:"column:description;not null"`
	ReportedAt  time.Time `json:"reported_at" gorm:"column:reported_at"`
}

func (Issue) TableName() string {
	return "issues"
}

// Repository is the persistence contract for issue reports.
type Repository interface {
	Create(ctx context.Context, issue *Issue) error
	ListAll(ctx context.Context) ([]*Issue, error)
	ListByUser(ctx context.Context, userID string) ([]*Issue, error)
}
