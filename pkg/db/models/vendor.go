package models

import "time"

// Vendor holds supplier contact information.
type Vendor struct {
	ID            uint      `gorm:"column:vendor_id;primaryKey;autoIncrement"`
	VendorName    string    `gorm:"column:vendor_name;size:200;not null"`
	ContactPerson *string   `gorm:"column:contact_person;size:100"`
	ContactNumber *string   `gorm:"column:contact_number;size:20"`
	Email         *string   `gorm:"column:email;size:254"`
	Address       *string   `gorm:"column:address"`
	City          *string   `gorm:"column:city;size:100"`
	State         *string   `gorm:"column:state;size:100"`
	Country       *string   `gorm:"column:country;size:100"`
	PostalCode    *string   `gorm:"column:postal_code;size:20"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Vendor) TableName() string { return "vendors" }
