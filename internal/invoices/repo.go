package invoices

import (
	"context"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db"
	"github.com/tracelabs/assetbook-backend/pkg/db/models"
)

// Repository handles invoice persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to invoice operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new invoice row.
func (r *Repository) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

// FindByID loads an invoice with its vendor.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).Preload("Vendor").First(&invoice, "invoice_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// List returns all invoices, most recent invoice date first.
func (r *Repository) List(ctx context.Context) ([]models.Invoice, error) {
	var out []models.Invoice
	if err := r.db.WithContext(ctx).Preload("Vendor").Order("invoice_date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists the provided invoice.
func (r *Repository) Save(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// Delete removes the invoice and its asset links inside one transaction.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return db.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.AssetInvoiceMapping{}).Error; err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})
}

// Exists reports whether an invoice row with the id is present.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Invoice{}).Where("invoice_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
