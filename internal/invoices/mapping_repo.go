package invoices

import (
	"context"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
)

// MappingRepository handles asset-invoice link persistence.
type MappingRepository struct {
	db *gorm.DB
}

// NewMappingRepository binds a GORM DB to mapping operations.
func NewMappingRepository(db *gorm.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

func (r *MappingRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Asset").Preload("Invoice")
}

// Create persists a new mapping row.
func (r *MappingRepository) Create(ctx context.Context, mapping *models.AssetInvoiceMapping) error {
	return r.db.WithContext(ctx).Create(mapping).Error
}

// FindByID loads a mapping with its asset and invoice.
func (r *MappingRepository) FindByID(ctx context.Context, id uint) (*models.AssetInvoiceMapping, error) {
	var mapping models.AssetInvoiceMapping
	if err := r.preloaded(ctx).First(&mapping, "mapping_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &mapping, nil
}

// List returns all mappings, newest first.
func (r *MappingRepository) List(ctx context.Context) ([]models.AssetInvoiceMapping, error) {
	var out []models.AssetInvoiceMapping
	if err := r.preloaded(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists the provided mapping.
func (r *MappingRepository) Save(ctx context.Context, mapping *models.AssetInvoiceMapping) error {
	return r.db.WithContext(ctx).Save(mapping).Error
}

// Delete removes the mapping row.
func (r *MappingRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("mapping_id = ?", id).Delete(&models.AssetInvoiceMapping{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
