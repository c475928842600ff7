package models

import "time"

// DepreciationMethod is the master table for depreciation methods.
type DepreciationMethod struct {
	ID          uint      `gorm:"column:method_id;primaryKey;autoIncrement"`
	MethodName  string    `gorm:"column:method_name;size:100;not null;uniqueIndex"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (DepreciationMethod) TableName() string { return "depreciation_methods" }
