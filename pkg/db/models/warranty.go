package models

import "time"

// Warranty covers an asset between two dates, optionally carrying the
// warranty document inline.
type Warranty struct {
	ID               uint      `gorm:"column:warranty_id;primaryKey;autoIncrement"`
	AssetID          uint      `gorm:"column:asset_id;not null"`
	StartDate        time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate          time.Time `gorm:"column:end_date;type:date;not null"`
	CoverageDetails  *string   `gorm:"column:coverage_details"`
	WarrantyProvider *string   `gorm:"column:warranty_provider;size:200"`
	ContactInfo      *string   `gorm:"column:contact_info"`

	WarrantyDocument FileDocument `gorm:"embedded;embeddedPrefix:warranty_document_"`

	Asset *Asset `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Warranty) TableName() string { return "warranties" }
