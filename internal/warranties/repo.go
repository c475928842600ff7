package warranties

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
)

// Repository handles warranty persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to warranty operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Asset")
}

// Create persists a new warranty row.
func (r *Repository) Create(ctx context.Context, warranty *models.Warranty) error {
	return r.db.WithContext(ctx).Create(warranty).Error
}

// FindByID loads a warranty with its asset.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Warranty, error) {
	var warranty models.Warranty
	if err := r.preloaded(ctx).First(&warranty, "warranty_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &warranty, nil
}

// List returns all warranties, latest end date first.
func (r *Repository) List(ctx context.Context) ([]models.Warranty, error) {
	var out []models.Warranty
	if err := r.preloaded(ctx).Order("end_date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindExpiringBetween returns warranties whose end date falls in [from, to]
// inclusive.
func (r *Repository) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]models.Warranty, error) {
	var out []models.Warranty
	err := r.preloaded(ctx).
		Where("end_date >= ? AND end_date <= ?", from, to).
		Order("end_date ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists the provided warranty.
func (r *Repository) Save(ctx context.Context, warranty *models.Warranty) error {
	return r.db.WithContext(ctx).Save(warranty).Error
}

// Delete removes the warranty row.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("warranty_id = ?", id).Delete(&models.Warranty{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
