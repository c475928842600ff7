package maintenances

import (
	"context"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
)

// Repository handles maintenance record persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to maintenance operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Asset")
}

// Create persists a new maintenance row.
func (r *Repository) Create(ctx context.Context, maintenance *models.Maintenance) error {
	return r.db.WithContext(ctx).Create(maintenance).Error
}

// FindByID loads a maintenance record with its asset.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Maintenance, error) {
	var maintenance models.Maintenance
	if err := r.preloaded(ctx).First(&maintenance, "maintenance_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &maintenance, nil
}

// List returns all maintenance records, most recent first.
func (r *Repository) List(ctx context.Context) ([]models.Maintenance, error) {
	var out []models.Maintenance
	if err := r.preloaded(ctx).Order("performed_on DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByAsset returns the asset's maintenance history, most recent first.
func (r *Repository) FindByAsset(ctx context.Context, assetID uint) ([]models.Maintenance, error) {
	var out []models.Maintenance
	if err := r.preloaded(ctx).Where("asset_id = ?", assetID).Order("performed_on DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists the provided maintenance record.
func (r *Repository) Save(ctx context.Context, maintenance *models.Maintenance) error {
	return r.db.WithContext(ctx).Save(maintenance).Error
}

// Delete removes the maintenance row.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("maintenance_id = ?", id).Delete(&models.Maintenance{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
