package assets

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

func setupAssetTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS asset_categories (
  category_id INTEGER PRIMARY KEY AUTOINCREMENT,
  category_name TEXT NOT NULL UNIQUE,
  description TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS asset_statuses (
  status_id INTEGER PRIMARY KEY AUTOINCREMENT,
  status_name TEXT NOT NULL UNIQUE,
  description TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS locations (
  location_id INTEGER PRIMARY KEY AUTOINCREMENT,
  location_name TEXT NOT NULL,
  address TEXT NOT NULL,
  city TEXT,
  state TEXT,
  country TEXT,
  postal_code TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
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
		`CREATE TABLE IF NOT EXISTS asset_invoice_mappings (
  mapping_id INTEGER PRIMARY KEY AUTOINCREMENT,
  asset_id INTEGER NOT NULL,
  invoice_id INTEGER NOT NULL,
  created_at DATETIME,
  UNIQUE (asset_id, invoice_id)
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedMasters(t *testing.T, db *gorm.DB) (category, location, vendor, status uint) {
	t.Helper()

	cat := models.AssetCategory{CategoryName: "Electronics"}
	require.NoError(t, db.Create(&cat).Error)
	loc := models.Location{LocationName: "Main House", Address: "123 Main Street"}
	require.NoError(t, db.Create(&loc).Error)
	ven := models.Vendor{VendorName: "Best Buy", IsActive: true}
	require.NoError(t, db.Create(&ven).Error)
	st := models.AssetStatus{StatusName: "Active"}
	require.NoError(t, db.Create(&st).Error)
	return cat.ID, loc.ID, ven.ID, st.ID
}

func newTestAsset(t *testing.T, db *gorm.DB, code, name string, category, location, vendor, status uint) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		AssetCode:    code,
		AssetName:    name,
		CategoryID:   category,
		LocationID:   location,
		VendorID:     vendor,
		StatusID:     status,
		PurchaseDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Cost:         decimal.RequireFromString("250.00"),
	}
	require.NoError(t, db.Create(asset).Error)
	return asset
}

func TestRepositorySearch(t *testing.T) {
	db := setupAssetTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	cat, loc, ven, st := seedMasters(t, db)

	laptop := newTestAsset(t, db, "AST-001", "Dell Laptop", cat, loc, ven, st)
	serial := "XPS-LAP-123"
	laptop.SerialNumber = &serial
	require.NoError(t, db.Save(laptop).Error)

	newTestAsset(t, db, "AST-002", "Office Chair", cat, loc, ven, st)

	brand := "Lapland Gear"
	bag := newTestAsset(t, db, "AST-003", "Travel Bag", cat, loc, ven, st)
	bag.Brand = &brand
	require.NoError(t, db.Save(bag).Error)

	// Case-insensitive substring across name, code, serial, model, brand.
	out, err := repo.Search(ctx, "LAP")
	require.NoError(t, err)
	require.Len(t, out, 2)
	codes := []string{out[0].AssetCode, out[1].AssetCode}
	assert.Contains(t, codes, "AST-001")
	assert.Contains(t, codes, "AST-003")
}

func TestRepositorySearchEmptyQueryReturnsAll(t *testing.T) {
	db := setupAssetTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	cat, loc, ven, st := seedMasters(t, db)

	newTestAsset(t, db, "AST-001", "Dell Laptop", cat, loc, ven, st)
	newTestAsset(t, db, "AST-002", "Office Chair", cat, loc, ven, st)

	out, err := repo.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestRepositorySearchNoMatches(t *testing.T) {
	db := setupAssetTestDB(t)
	repo := NewRepository(db)
	cat, loc, ven, st := seedMasters(t, db)

	newTestAsset(t, db, "AST-001", "Dell Laptop", cat, loc, ven, st)

	out, err := repo.Search(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRepositoryFindByStatus(t *testing.T) {
	db := setupAssetTestDB(t)
	repo := NewRepository(db)
	cat, loc, ven, st := seedMasters(t, db)

	other := models.AssetStatus{StatusName: "Retired"}
	require.NoError(t, db.Create(&other).Error)

	newTestAsset(t, db, "AST-001", "Dell Laptop", cat, loc, ven, st)
	retired := newTestAsset(t, db, "AST-002", "Old Printer", cat, loc, ven, other.ID)

	out, err := repo.FindByStatus(context.Background(), other.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, retired.ID, out[0].ID)
	require.NotNil(t, out[0].Status)
	assert.Equal(t, "Retired", out[0].Status.StatusName)
}

func TestRepositoryFindByIDPreloadsMasters(t *testing.T) {
	db := setupAssetTestDB(t)
	repo := NewRepository(db)
	cat, loc, ven, st := seedMasters(t, db)

	created := newTestAsset(t, db, "AST-001", "Dell Laptop", cat, loc, ven, st)

	asset, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, asset.Category)
	require.NotNil(t, asset.Vendor)
	assert.Equal(t, "Electronics", asset.Category.CategoryName)
	assert.Equal(t, "Best Buy", asset.Vendor.VendorName)
}

func TestRepositoryDeleteRemovesDependents(t *testing.T) {
	db := setupAssetTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	cat, loc, ven, st := seedMasters(t, db)

	asset := newTestAsset(t, db, "AST-001", "Dell Laptop", cat, loc, ven, st)
	keeper := newTestAsset(t, db, "AST-002", "Office Chair", cat, loc, ven, st)

	require.NoError(t, db.Create(&models.Warranty{
		AssetID:   asset.ID,
		StartDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}).Error)
	require.NoError(t, db.Create(&models.Maintenance{
		AssetID:         asset.ID,
		MaintenanceType: "preventive",
		PerformedOn:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		PerformedBy:     "Tech Shop",
		Cost:            decimal.RequireFromString("40.00"),
	}).Error)
	require.NoError(t, db.Create(&models.AssetInvoiceMapping{AssetID: asset.ID, InvoiceID: 1}).Error)
	require.NoError(t, db.Create(&models.Warranty{
		AssetID:   keeper.ID,
		StartDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}).Error)

	require.NoError(t, repo.Delete(ctx, asset.ID))

	var warranties, maintenances, mappings, assets int64
	require.NoError(t, db.Model(&models.Warranty{}).Where("asset_id = ?", asset.ID).Count(&warranties).Error)
	require.NoError(t, db.Model(&models.Maintenance{}).Where("asset_id = ?", asset.ID).Count(&maintenances).Error)
	require.NoError(t, db.Model(&models.AssetInvoiceMapping{}).Where("asset_id = ?", asset.ID).Count(&mappings).Error)
	require.NoError(t, db.Model(&models.Asset{}).Count(&assets).Error)
	assert.Zero(t, warranties)
	assert.Zero(t, maintenances)
	assert.Zero(t, mappings)
	assert.Equal(t, int64(1), assets)

	// The unrelated asset keeps its warranty.
	var kept int64
	require.NoError(t, db.Model(&models.Warranty{}).Where("asset_id = ?", keeper.ID).Count(&kept).Error)
	assert.Equal(t, int64(1), kept)
}

func TestRepositoryDeleteMissing(t *testing.T) {
	db := setupAssetTestDB(t)
	repo := NewRepository(db)
	seedMasters(t, db)

	err := repo.Delete(context.Background(), 999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryExists(t *testing.T) {
	db := setupAssetTestDB(t)
	repo := NewRepository(db)
	cat, loc, ven, st := seedMasters(t, db)

	asset := newTestAsset(t, db, "AST-001", "Dell Laptop", cat, loc, ven, st)

	ok, err := repo.Exists(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, ok)
}
