package vendors

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
)

func setupVendorTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS vendors (
  vendor_id INTEGER PRIMARY KEY AUTOINCREMENT,
  vendor_name TEXT NOT NULL,
  contact_person TEXT,
  contact_number TEXT,
  email TEXT,
  address TEXT,
  city TEXT,
  state TEXT,
  country TEXT,
  postal_code TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS assets (
  asset_id INTEGER PRIMARY KEY AUTOINCREMENT,
  asset_code TEXT NOT NULL UNIQUE,
  asset_name TEXT NOT NULL,
  category_id INTEGER NOT NULL,
  location_id INTEGER NOT NULL,
  vendor_id INTEGER NOT NULL,
  status_id INTEGER NOT NULL,
  purchase_date DATE NOT NULL,
  cost NUMERIC NOT NULL,
  end_of_life_date DATE,
  description TEXT,
  serial_number TEXT,
  model_number TEXT,
  brand TEXT,
  purchase_receipt_data BLOB,
  purchase_receipt_name TEXT,
  purchase_receipt_type TEXT,
  purchase_receipt_size INTEGER,
  manual_document_data BLOB,
  manual_document_name TEXT,
  manual_document_type TEXT,
  manual_document_size INTEGER,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS invoices (
  invoice_id INTEGER PRIMARY KEY AUTOINCREMENT,
  invoice_number TEXT NOT NULL UNIQUE,
  vendor_id INTEGER NOT NULL,
  invoice_date DATE NOT NULL,
  total_amount NUMERIC NOT NULL,
  currency TEXT NOT NULL DEFAULT 'USD',
  description TEXT,
  invoice_file_data BLOB,
  invoice_file_name TEXT,
  invoice_file_type TEXT,
  invoice_file_size INTEGER,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS asset_invoice_mappings (
  mapping_id INTEGER PRIMARY KEY AUTOINCREMENT,
  asset_id INTEGER NOT NULL,
  invoice_id INTEGER NOT NULL,
  created_at DATETIME,
  UNIQUE (asset_id, invoice_id)
);`,
		`CREATE TABLE IF NOT EXISTS warranties (
  warranty_id INTEGER PRIMARY KEY AUTOINCREMENT,
  asset_id INTEGER NOT NULL,
  start_date DATE NOT NULL,
  end_date DATE NOT NULL,
  coverage_details TEXT,
  warranty_provider TEXT,
  contact_info TEXT,
  warranty_document_data BLOB,
  warranty_document_name TEXT,
  warranty_document_type TEXT,
  warranty_document_size INTEGER,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS depreciations (
  depreciation_id INTEGER PRIMARY KEY AUTOINCREMENT,
  asset_id INTEGER NOT NULL,
  method_id INTEGER NOT NULL,
  rate NUMERIC NOT NULL,
  book_value NUMERIC NOT NULL,
  calculated_on DATE NOT NULL,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS maintenances (
  maintenance_id INTEGER PRIMARY KEY AUTOINCREMENT,
  asset_id INTEGER NOT NULL,
  maintenance_type TEXT NOT NULL,
  performed_on DATE NOT NULL,
  performed_by TEXT NOT NULL,
  cost NUMERIC NOT NULL,
  remarks TEXT,
  next_maintenance_date DATE,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS end_of_life (
  eol_id INTEGER PRIMARY KEY AUTOINCREMENT,
  asset_id INTEGER NOT NULL UNIQUE,
  eol_date DATE NOT NULL,
  disposal_method TEXT NOT NULL,
  final_value NUMERIC NOT NULL,
  remarks TEXT,
  disposal_company TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func TestVendorRepositoryListActive(t *testing.T) {
	db := setupVendorTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, db.Create(&models.Vendor{VendorName: "Walmart", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Vendor{VendorName: "Closed Shop", IsActive: false}).Error)
	require.NoError(t, db.Create(&models.Vendor{VendorName: "Amazon", IsActive: true}).Error)

	out, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Amazon", out[0].VendorName)
	assert.Equal(t, "Walmart", out[1].VendorName)
}

func TestVendorRepositoryDeleteCascades(t *testing.T) {
	db := setupVendorTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	doomed := models.Vendor{VendorName: "Best Buy", IsActive: true}
	require.NoError(t, db.Create(&doomed).Error)
	survivor := models.Vendor{VendorName: "IKEA", IsActive: true}
	require.NoError(t, db.Create(&survivor).Error)

	asset := models.Asset{
		AssetCode:    "AST-001",
		AssetName:    "Dell Laptop",
		CategoryID:   1,
		LocationID:   1,
		VendorID:     doomed.ID,
		StatusID:     1,
		PurchaseDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Cost:         decimal.RequireFromString("999.00"),
	}
	require.NoError(t, db.Create(&asset).Error)

	invoice := models.Invoice{
		InvoiceNumber: "INV-100",
		VendorID:      doomed.ID,
		InvoiceDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		TotalAmount:   decimal.RequireFromString("999.00"),
		Currency:      "USD",
	}
	require.NoError(t, db.Create(&invoice).Error)
	require.NoError(t, db.Create(&models.AssetInvoiceMapping{AssetID: asset.ID, InvoiceID: invoice.ID}).Error)

	keptInvoice := models.Invoice{
		InvoiceNumber: "INV-200",
		VendorID:      survivor.ID,
		InvoiceDate:   time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		TotalAmount:   decimal.RequireFromString("45.00"),
		Currency:      "USD",
	}
	require.NoError(t, db.Create(&keptInvoice).Error)

	require.NoError(t, repo.Delete(ctx, doomed.ID))

	var vendorRows, assetRows, invoiceRows, mappingRows int64
	require.NoError(t, db.Model(&models.Vendor{}).Count(&vendorRows).Error)
	require.NoError(t, db.Model(&models.Asset{}).Count(&assetRows).Error)
	require.NoError(t, db.Model(&models.Invoice{}).Count(&invoiceRows).Error)
	require.NoError(t, db.Model(&models.AssetInvoiceMapping{}).Count(&mappingRows).Error)
	assert.Equal(t, int64(1), vendorRows)
	assert.Zero(t, assetRows)
	assert.Equal(t, int64(1), invoiceRows)
	assert.Zero(t, mappingRows)

	var remaining models.Invoice
	require.NoError(t, db.First(&remaining, "invoice_id = ?", keptInvoice.ID).Error)
	assert.Equal(t, survivor.ID, remaining.VendorID)
}

func TestVendorRepositoryDeleteMissing(t *testing.T) {
	db := setupVendorTestDB(t)
	repo := NewRepository(db)

	err := repo.Delete(context.Background(), 77)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
