package assets

import (
	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
)

// The cascade chain is explicit: deleting an asset (directly or through a
// parent master row) removes, in order, its warranties, depreciation
// snapshots, maintenance history, disposal record and invoice links before
// the asset row itself. Every caller runs inside a transaction.

// DeleteDependents removes every row referencing the provided assets.
func DeleteDependents(tx *gorm.DB, assetIDs []uint) error {
	if len(assetIDs) == 0 {
		return nil
	}
	dependents := []any{
		&models.Warranty{},
		&models.Depreciation{},
		&models.Maintenance{},
		&models.EndOfLife{},
		&models.AssetInvoiceMapping{},
	}
	for _, model := range dependents {
		if err := tx.Where("asset_id IN ?", assetIDs).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteByCategory removes all assets in the category plus their dependents.
func DeleteByCategory(tx *gorm.DB, categoryID uint) error {
	return deleteByColumn(tx, "category_id", categoryID)
}

// DeleteByStatus removes all assets carrying the status plus their dependents.
func DeleteByStatus(tx *gorm.DB, statusID uint) error {
	return deleteByColumn(tx, "status_id", statusID)
}

// DeleteByLocation removes all assets at the location plus their dependents.
func DeleteByLocation(tx *gorm.DB, locationID uint) error {
	return deleteByColumn(tx, "location_id", locationID)
}

// DeleteByVendor removes all assets bought from the vendor plus their dependents.
func DeleteByVendor(tx *gorm.DB, vendorID uint) error {
	return deleteByColumn(tx, "vendor_id", vendorID)
}

func deleteByColumn(tx *gorm.DB, column string, id uint) error {
	var assetIDs []uint
	if err := tx.Model(&models.Asset{}).Where(column+" = ?", id).Pluck("asset_id", &assetIDs).Error; err != nil {
		return err
	}
	if err := DeleteDependents(tx, assetIDs); err != nil {
		return err
	}
	return tx.Where(column+" = ?", id).Delete(&models.Asset{}).Error
}
