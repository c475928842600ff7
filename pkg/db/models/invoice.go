package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tracelabs/assetbook-backend/pkg/enums"
)

// Invoice is a vendor invoice with an optional embedded file.
type Invoice struct {
	ID            uint            `gorm:"column:invoice_id;primaryKey;autoIncrement"`
	InvoiceNumber string          `gorm:"column:invoice_number;size:100;not null;uniqueIndex"`
	VendorID      uint            `gorm:"column:vendor_id;not null"`
	InvoiceDate   time.Time       `gorm:"column:invoice_date;type:date;not null"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Currency      enums.Currency  `gorm:"column:currency;size:3;not null;default:USD"`
	Description   *string         `gorm:"column:description"`

	InvoiceFile FileDocument `gorm:"embedded;embeddedPrefix:invoice_file_"`

	Vendor *Vendor `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Invoice) TableName() string { return "invoices" }
