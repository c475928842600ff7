package statuses

import (
	"context"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/internal/assets"
	"github.com/tracelabs/assetbook-backend/pkg/db"
	"github.com/tracelabs/assetbook-backend/pkg/db/models"
)

// Repository handles asset status persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to status operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new status row.
func (r *Repository) Create(ctx context.Context, status *models.AssetStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

// FindByID loads a status.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.AssetStatus, error) {
	var status models.AssetStatus
	if err := r.db.WithContext(ctx).First(&status, "status_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// List returns all statuses ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.AssetStatus, error) {
	var out []models.AssetStatus
	if err := r.db.WithContext(ctx).Order("status_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists the provided status.
func (r *Repository) Save(ctx context.Context, status *models.AssetStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

// Delete removes the status and, inside one transaction, every asset carrying
// it together with the assets' dependent rows.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return db.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var status models.AssetStatus
		if err := tx.First(&status, "status_id = ?", id).Error; err != nil {
			return err
		}
		if err := assets.DeleteByStatus(tx, id); err != nil {
			return err
		}
		return tx.Delete(&status).Error
	})
}

// Exists reports whether a status row with the id is present.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AssetStatus{}).Where("status_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
