package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tracelabs/assetbook-backend/pkg/enums"
)

// Maintenance records a single maintenance visit against an asset.
type Maintenance struct {
	ID              uint                  `gorm:"column:maintenance_id;primaryKey;autoIncrement"`
	AssetID         uint                  `gorm:"column:asset_id;not null"`
	MaintenanceType enums.MaintenanceType `gorm:"column:maintenance_type;size:20;not null"`
	PerformedOn     time.Time             `gorm:"column:performed_on;type:date;not null"`
	PerformedBy     string                `gorm:"column:performed_by;size:200;not null"`
	Cost            decimal.Decimal       `gorm:"column:cost;type:numeric(10,2);not null"`
	Remarks         *string               `gorm:"column:remarks"`
	NextMaintenance *time.Time            `gorm:"column:next_maintenance_date;type:date"`

	Asset *Asset `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Maintenance) TableName() string { return "maintenances" }
