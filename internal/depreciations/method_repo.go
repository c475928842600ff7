package depreciations

import (
	"context"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db"
	"github.com/tracelabs/assetbook-backend/pkg/db/models"
)

// MethodRepository handles depreciation method persistence.
type MethodRepository struct {
	db *gorm.DB
}

// NewMethodRepository binds a GORM DB to method operations.
func NewMethodRepository(db *gorm.DB) *MethodRepository {
	return &MethodRepository{db: db}
}

// Create persists a new method row.
func (r *MethodRepository) Create(ctx context.Context, method *models.DepreciationMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

// FindByID loads a method.
func (r *MethodRepository) FindByID(ctx context.Context, id uint) (*models.DepreciationMethod, error) {
	var method models.DepreciationMethod
	if err := r.db.WithContext(ctx).First(&method, "method_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

// List returns all methods ordered by name.
func (r *MethodRepository) List(ctx context.Context) ([]models.DepreciationMethod, error) {
	var out []models.DepreciationMethod
	if err := r.db.WithContext(ctx).Order("method_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists the provided method.
func (r *MethodRepository) Save(ctx context.Context, method *models.DepreciationMethod) error {
	return r.db.WithContext(ctx).Save(method).Error
}

// Delete removes the method and, inside one transaction, every depreciation
// snapshot recorded with it.
func (r *MethodRepository) Delete(ctx context.Context, id uint) error {
	return db.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var method models.DepreciationMethod
		if err := tx.First(&method, "method_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("method_id = ?", id).Delete(&models.Depreciation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&method).Error
	})
}

// Exists reports whether a method row with the id is present.
func (r *MethodRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.DepreciationMethod{}).Where("method_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
