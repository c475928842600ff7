package models

import "time"

// AssetInvoiceMapping links an asset to an invoice. The (asset, invoice)
// pair is unique; an asset cannot be linked to the same invoice twice.
type AssetInvoiceMapping struct {
	ID        uint `gorm:"column:mapping_id;primaryKey;autoIncrement"`
	AssetID   uint `gorm:"column:asset_id;not null;uniqueIndex:uq_asset_invoice"`
	InvoiceID uint `gorm:"column:invoice_id;not null;uniqueIndex:uq_asset_invoice"`

	Asset   *Asset   `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	Invoice *Invoice `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AssetInvoiceMapping) TableName() string { return "asset_invoice_mappings" }
