package assets

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db"
	"github.com/tracelabs/assetbook-backend/pkg/db/models"
)

// Repository handles asset persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to asset operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Category").
		Preload("Location").
		Preload("Vendor").
		Preload("Status")
}

// Create persists a new asset row.
func (r *Repository) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

// FindByID loads an asset with its related master rows.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := r.preloaded(ctx).First(&asset, "asset_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// List returns all assets, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Asset, error) {
	var out []models.Asset
	if err := r.preloaded(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns assets whose name, code, serial number, model number or
// brand contains q case-insensitively. An empty query returns everything.
func (r *Repository) Search(ctx context.Context, q string) ([]models.Asset, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return r.List(ctx)
	}
	pattern := "%" + strings.ToLower(q) + "%"
	var out []models.Asset
	err := r.preloaded(ctx).
		Where(
			"LOWER(asset_name) LIKE ? OR LOWER(asset_code) LIKE ? OR LOWER(serial_number) LIKE ? OR LOWER(model_number) LIKE ? OR LOWER(brand) LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindByStatus returns assets carrying the given status.
func (r *Repository) FindByStatus(ctx context.Context, statusID uint) ([]models.Asset, error) {
	var out []models.Asset
	if err := r.preloaded(ctx).Where("status_id = ?", statusID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByCategory returns assets in the given category.
func (r *Repository) FindByCategory(ctx context.Context, categoryID uint) ([]models.Asset, error) {
	var out []models.Asset
	if err := r.preloaded(ctx).Where("category_id = ?", categoryID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists the provided asset.
func (r *Repository) Save(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

// Delete removes the asset and, inside one transaction, every dependent row.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return db.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.First(&asset, "asset_id = ?", id).Error; err != nil {
			return err
		}
		if err := DeleteDependents(tx, []uint{id}); err != nil {
			return err
		}
		return tx.Delete(&asset).Error
	})
}

// Exists reports whether an asset row with the id is present.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Asset{}).Where("asset_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
