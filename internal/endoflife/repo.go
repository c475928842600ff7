package endoflife

import (
	"context"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
)

// Repository handles disposal record persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to disposal record operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Asset")
}

// Create persists a new disposal record.
func (r *Repository) Create(ctx context.Context, record *models.EndOfLife) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID loads a disposal record with its asset.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.EndOfLife, error) {
	var record models.EndOfLife
	if err := r.preloaded(ctx).First(&record, "eol_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns all disposal records, most recent disposal date first.
func (r *Repository) List(ctx context.Context) ([]models.EndOfLife, error) {
	var out []models.EndOfLife
	if err := r.preloaded(ctx).Order("eol_date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ExistsForAsset reports whether the asset already has a disposal record,
// optionally ignoring one record id (for updates).
func (r *Repository) ExistsForAsset(ctx context.Context, assetID uint, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.EndOfLife{}).Where("asset_id = ?", assetID)
	if excludeID != 0 {
		query = query.Where("eol_id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists the provided disposal record.
func (r *Repository) Save(ctx context.Context, record *models.EndOfLife) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes the disposal record.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("eol_id = ?", id).Delete(&models.EndOfLife{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
