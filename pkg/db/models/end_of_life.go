package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tracelabs/assetbook-backend/pkg/enums"
)

// EndOfLife is the disposal record for an asset. At most one exists per
// asset; the unique index on asset_id enforces the one-to-one.
type EndOfLife struct {
	ID              uint                 `gorm:"column:eol_id;primaryKey;autoIncrement"`
	AssetID         uint                 `gorm:"column:asset_id;not null;uniqueIndex"`
	EOLDate         time.Time            `gorm:"column:eol_date;type:date;not null"`
	DisposalMethod  enums.DisposalMethod `gorm:"column:disposal_method;size:20;not null"`
	FinalValue      decimal.Decimal      `gorm:"column:final_value;type:numeric(10,2);not null"`
	Remarks         *string              `gorm:"column:remarks"`
	DisposalCompany *string              `gorm:"column:disposal_company;size:200"`

	Asset *Asset `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (EndOfLife) TableName() string { return "end_of_life" }
