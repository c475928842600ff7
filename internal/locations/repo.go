package locations

import (
	"context"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/internal/assets"
	"github.com/tracelabs/assetbook-backend/pkg/db"
	"github.com/tracelabs/assetbook-backend/pkg/db/models"
)

// Repository handles location persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to location operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new location row.
func (r *Repository) Create(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// FindByID loads a location.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).First(&location, "location_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// List returns all locations ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Location, error) {
	var out []models.Location
	if err := r.db.WithContext(ctx).Order("location_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists the provided location.
func (r *Repository) Save(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// Delete removes the location and, inside one transaction, every asset placed
// there together with the assets' dependent rows.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return db.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var location models.Location
		if err := tx.First(&location, "location_id = ?", id).Error; err != nil {
			return err
		}
		if err := assets.DeleteByLocation(tx, id); err != nil {
			return err
		}
		return tx.Delete(&location).Error
	})
}

// Exists reports whether a location row with the id is present.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Location{}).Where("location_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
