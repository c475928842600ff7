package depreciations

import (
	"context"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
)

// Repository handles depreciation snapshot persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to depreciation operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Asset").Preload("Method")
}

// Create persists a new depreciation row.
func (r *Repository) Create(ctx context.Context, depreciation *models.Depreciation) error {
	return r.db.WithContext(ctx).Create(depreciation).Error
}

// FindByID loads a depreciation with its asset and method.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Depreciation, error) {
	var depreciation models.Depreciation
	if err := r.preloaded(ctx).First(&depreciation, "depreciation_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &depreciation, nil
}

// List returns all depreciations, most recent calculation first.
func (r *Repository) List(ctx context.Context) ([]models.Depreciation, error) {
	var out []models.Depreciation
	if err := r.preloaded(ctx).Order("calculated_on DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists the provided depreciation.
func (r *Repository) Save(ctx context.Context, depreciation *models.Depreciation) error {
	return r.db.WithContext(ctx).Save(depreciation).Error
}

// Delete removes the depreciation row.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("depreciation_id = ?", id).Delete(&models.Depreciation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
