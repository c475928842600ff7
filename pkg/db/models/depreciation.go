package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Depreciation is a manually recorded book-value snapshot for an asset,
// not a generated schedule.
type Depreciation struct {
	ID           uint            `gorm:"column:depreciation_id;primaryKey;autoIncrement"`
	AssetID      uint            `gorm:"column:asset_id;not null"`
	MethodID     uint            `gorm:"column:method_id;not null"`
	Rate         decimal.Decimal `gorm:"column:rate;type:numeric(5,2);not null"`
	BookValue    decimal.Decimal `gorm:"column:book_value;type:numeric(12,2);not null"`
	CalculatedOn time.Time       `gorm:"column:calculated_on;type:date;not null"`
	Notes        *string         `gorm:"column:notes"`

	Asset  *Asset              `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	Method *DepreciationMethod `gorm:"foreignKey:MethodID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Depreciation) TableName() string { return "depreciations" }
