package models

import "time"

// Location is the master table for physical locations.
type Location struct {
	ID           uint      `gorm:"column:location_id;primaryKey;autoIncrement"`
	LocationName string    `gorm:"column:location_name;size:100;not null"`
	Address      string    `gorm:"column:address;not null"`
	City         *string   `gorm:"column:city;size:100"`
	State        *string   `gorm:"column:state;size:100"`
	Country      *string   `gorm:"column:country;size:100"`
	PostalCode   *string   `gorm:"column:postal_code;size:20"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Location) TableName() string { return "locations" }
