package asset

import (
	"context"
	"time"
)

// Asset lifecycle states. Retired is reserved: no operation in the service
// enters it, but the store accepts it.
const (
	StatusAvailable = "available"
	StatusAssigned  = "assigned"
	StatusRetired   = "retired"
)

// Asset is a piece of corporate hardware, keyed by its serial number.
type Asset struct {
	SerialNumber string    `json:"serial_number" db:"serial_number" gorm:"primaryKey;column:serial_number"`
	Name         string    `json:"name" db:"name" gorm:"column:name;not null"`
	Description  string    `json:"description" db:"description" gorm:"column:description"`
	Status       string    `json:"status" db:"status" gorm:"column:status;not null"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" gorm:"column:updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}

// Assignment binds one user to one asset for the duration of possession.
// The store enforces at most one live assignment per asset.
type Assignment struct {
	ID         string    `json:"id" gorm:"primaryKey;column:id"`
	UserID     string    `json:"user_id" gorm:"column:user_id;not null"`
	AssetID    string    `json:"asset_id" gorm:"column:asset_id;uniqueIndex;not null"`
	AssignedAt time.Time `json:"assigned_at" gorm:"column:assigned_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// UserAssets is the per-user view of currently assigned assets.
type UserAssets struct {
	UserID string  `json:"user_id"`
	Assets []Asset `json:"assets"`
}

// UserAssignments is one entry of the grouped fleet-wide view: a user and
// the serial numbers currently assigned to them.
type UserAssignments struct {
	UserID   string   `json:"user_id"`
	AssetIDs []string `json:"asset_ids"`
}

// Repository is the persistence contract for assets and assignments.
// Assign and Unassign bundle the assignment-row mutation with the status
// update in a single transaction.
type Repository interface {
	Create(ctx context.Context, a *Asset) error
	GetByID(ctx context.Context, serialNumber string) (*Asset, error)
	Delete(ctx context.Context, serialNumber string) error
	List(ctx context.Context) ([]*Asset, error)

	Assign(ctx context.Context, assignment *Assignment) error
	Unassign(ctx context.Context, userID, assetID string) error
	AssignmentExists(ctx context.Context, userID, assetID string) (bool, error)
	ListAssignedToUser(ctx context.Context, userID string) ([]Asset, error)
	ListAllAssignments(ctx context.Context) ([]UserAssignments, error)
}
