package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/frahmantamala/asset-management/internal/asset"
	"github.com/frahmantamala/asset-management/internal/core/storage"
)

// AssetRepository implements asset.Repository. Writes go through gorm so
// the assignment mutation and the status flip share one transaction; the
// join and group-by read paths use sqlx on the same underlying connection.
type AssetRepository struct {
	db  *gorm.DB
	sdb *sqlx.DB
}

func NewAssetRepository(db *gorm.DB, sdb *sqlx.DB) *AssetRepository {
	return &AssetRepository{db: db, sdb: sdb}
}

func (r *AssetRepository) Create(ctx context.Context, a *asset.Asset) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return storage.Translate(err)
	}
	return nil
}

func (r *AssetRepository) GetByID(ctx context.Context, serialNumber string) (*asset.Asset, error) {
	var a asset.Asset
	if err := r.db.WithContext(ctx).Where("serial_number = ?", serialNumber).First(&a).Error; err != nil {
		return nil, storage.Translate(err)
	}
	return &a, nil
}

func (r *AssetRepository) Delete(ctx context.Context, serialNumber string) error {
	res := r.db.WithContext(ctx).Where("serial_number = ?", serialNumber).Delete(&asset.Asset{})
	if res.Error != nil {
		return storage.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *AssetRepository) List(ctx context.Context) ([]*asset.Asset, error) {
	var assets []*asset.Asset
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&assets).Error; err != nil {
		return nil, storage.Translate(err)
	}
	return assets, nil
}

// Assign inserts the assignment row and flips the asset to assigned in one
// transaction. The unique index on assignments.asset_id settles concurrent
// assignments; the loser sees a duplicate-key error.
func (r *AssetRepository) Assign(ctx context.Context, assignment *asset.Assignment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}
		return tx.Model(&asset.Asset{}).
			Where("serial_number = ?", assignment.AssetID).
			Update("status", asset.StatusAssigned).Error
	})
	return storage.Translate(err)
}

// Unassign deletes the assignment row and flips the asset back to available
// in one transaction.
func (r *AssetRepository) Unassign(ctx context.Context, userID, assetID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND asset_id = ?", userID, assetID).Delete(&asset.Assignment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&asset.Asset{}).
			Where("serial_number = ?", assetID).
			Update("status", asset.StatusAvailable).Error
	})
	return storage.Translate(err)
}

func (r *AssetRepository) AssignmentExists(ctx context.Context, userID, assetID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&asset.Assignment{}).
		Where("user_id = ? AND asset_id = ?", userID, assetID).
		Count(&count).Error
	if err != nil {
		return false, storage.Translate(err)
	}
	return count > 0, nil
}

func (r *AssetRepository) ListAssignedToUser(ctx context.Context, userID string) ([]asset.Asset, error) {
	const query = `
SELECT a.serial_number, a.name, a.description, a.status
FROM assets a
JOIN assignments aa ON a.serial_number = aa.asset_id
WHERE aa.user_id = ?
ORDER BY aa.assigned_at ASC`

	var assets []asset.Asset
	if err := r.sdb.SelectContext(ctx, &assets, r.sdb.Rebind(query), userID); err != nil {
		return nil, storage.Translate(err)
	}
	if assets == nil {
		assets = []asset.Asset{}
	}
	return assets, nil
}

// ListAllAssignments returns the grouped fleet view. Rows come back flat
// and are grouped in-process to keep the SQL portable across dialects.
func (r *AssetRepository) ListAllAssignments(ctx context.Context) ([]asset.UserAssignments, error) {
	const query = `
SELECT user_id, asset_id
FROM assignments
ORDER BY user_id, assigned_at ASC`

	var rows []struct {
		UserID  string `db:"user_id"`
		AssetID string `db:"asset_id"`
	}
	if err := r.sdb.SelectContext(ctx, &rows, query); err != nil {
		return nil, storage.Translate(err)
	}

	grouped := make([]asset.UserAssignments, 0)
	for _, row := range rows {
		if n := len(grouped); n > 0 && grouped[n-1].UserID == row.UserID {
			grouped[n-1].AssetIDs = append(grouped[n-1].AssetIDs, row.AssetID)
			continue
		}
		grouped = append(grouped, asset.UserAssignments{
			UserID:   row.UserID,
			AssetIDs: []string{row.AssetID},
		})
	}
	return grouped, nil
}
