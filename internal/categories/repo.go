package categories

import (
	"context"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/internal/assets"
	"github.com/tracelabs/assetbook-backend/pkg/db"
	"github.com/tracelabs/assetbook-backend/pkg/db/models"
)

// Repository handles asset category persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to category operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new category row.
func (r *Repository) Create(ctx context.Context, category *models.AssetCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// FindByID loads a category.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.AssetCategory, error) {
	var category models.AssetCategory
	if err := r.db.WithContext(ctx).First(&category, "category_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns all categories ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.AssetCategory, error) {
	var out []models.AssetCategory
	if err := r.db.WithContext(ctx).Order("category_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists the provided category.
func (r *Repository) Save(ctx context.Context, category *models.AssetCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes the category and, inside one transaction, every asset in it
// together with the assets' dependent rows.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return db.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var category models.AssetCategory
		if err := tx.First(&category, "category_id = ?", id).Error; err != nil {
			return err
		}
		if err := assets.DeleteByCategory(tx, id); err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}

// Exists reports whether a category row with the id is present.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AssetCategory{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
