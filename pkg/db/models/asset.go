package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is the main registry row. Category, location, vendor and status are
// required references; deleting any of them removes the asset and, through
// the enumerated cascade, every dependent row.
type Asset struct {
	ID           uint            `gorm:"column:asset_id;primaryKey;autoIncrement"`
	AssetCode    string          `gorm:"column:asset_code;size:50;not null;uniqueIndex"`
	AssetName    string          `gorm:"column:asset_name;size:200;not null"`
	CategoryID   uint            `gorm:"column:category_id;not null"`
	LocationID   uint            `gorm:"column:location_id;not null"`
	VendorID     uint            `gorm:"column:vendor_id;not null"`
	StatusID     uint            `gorm:"column:status_id;not null"`
	PurchaseDate time.Time       `gorm:"column:purchase_date;type:date;not null"`
	Cost         decimal.Decimal `gorm:"column:cost;type:numeric(12,2);not null"`
	EndOfLife    *time.Time      `gorm:"column:end_of_life_date;type:date"`
	Description  *string         `gorm:"column:description"`
	SerialNumber *string         `gorm:"column:serial_number;size:100"`
	ModelNumber  *string         `gorm:"column:model_number;size:100"`
	Brand        *string         `gorm:"column:brand;size:100"`

	PurchaseReceipt FileDocument `gorm:"embedded;embeddedPrefix:purchase_receipt_"`
	ManualDocument  FileDocument `gorm:"embedded;embeddedPrefix:manual_document_"`

	Category *AssetCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Location *Location      `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE"`
	Vendor   *Vendor        `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
	Status   *AssetStatus   `gorm:"foreignKey:StatusID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Asset) TableName() string { return "assets" }
