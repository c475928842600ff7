package models

import "time"

// AssetStatus is the master table for asset statuses.
type AssetStatus struct {
	ID          uint      `gorm:"column:status_id;primaryKey;autoIncrement"`
	StatusName  string    `gorm:"column:status_name;size:50;not null;uniqueIndex"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (AssetStatus) TableName() string { return "asset_statuses" }
