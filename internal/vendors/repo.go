package vendors

import (
	"context"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/internal/assets"
	"github.com/tracelabs/assetbook-backend/pkg/db"
	"github.com/tracelabs/assetbook-backend/pkg/db/models"
)

// Repository handles vendor persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to vendor operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new vendor row.
func (r *Repository) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

// FindByID loads a vendor.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "vendor_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// List returns all vendors ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Vendor, error) {
	var out []models.Vendor
	if err := r.db.WithContext(ctx).Order("vendor_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListActive returns vendors whose active flag is set, ordered by name.
func (r *Repository) ListActive(ctx context.Context) ([]models.Vendor, error) {
	var out []models.Vendor
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("vendor_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists the provided vendor.
func (r *Repository) Save(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

// Delete removes the vendor inside one transaction: first the vendor's
// assets with their dependents, then the vendor's invoices with their
// mapping rows, then the vendor itself.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return db.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var vendor models.Vendor
		if err := tx.First(&vendor, "vendor_id = ?", id).Error; err != nil {
			return err
		}
		if err := assets.DeleteByVendor(tx, id); err != nil {
			return err
		}
		var invoiceIDs []uint
		if err := tx.Model(&models.Invoice{}).Where("vendor_id = ?", id).Pluck("invoice_id", &invoiceIDs).Error; err != nil {
			return err
		}
		if len(invoiceIDs) > 0 {
			if err := tx.Where("invoice_id IN ?", invoiceIDs).Delete(&models.AssetInvoiceMapping{}).Error; err != nil {
				return err
			}
			if err := tx.Where("invoice_id IN ?", invoiceIDs).Delete(&models.Invoice{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&vendor).Error
	})
}

// Exists reports whether a vendor row with the id is present.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Vendor{}).Where("vendor_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
