package models

import "time"

// AssetCategory is the master table for asset categories.
type AssetCategory struct {
	ID           uint      `gorm:"column:category_id;primaryKey;autoIncrement"`
	CategoryName string    `gorm:"column:category_name;size:100;not null;uniqueIndex"`
	Description  *string   `gorm:"column:description"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (AssetCategory) TableName() string { return "asset_categories" }
