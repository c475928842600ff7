package assets

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	"github.com/tracelabs/assetbook-backend/pkg/filedoc"
	"github.com/tracelabs/assetbook-backend/pkg/types"
)

// AssetDTO is the full projection: every stored field, denormalized master
// names, and read-only base64 document payloads. Raw bytes never appear.
type AssetDTO struct {
	ID           uint            `json:"asset_id"`
	AssetCode    string          `json:"asset_code"`
	AssetName    string          `json:"asset_name"`
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	LocationID   uint            `json:"location_id"`
	LocationName string          `json:"location_name"`
	VendorID     uint            `json:"vendor_id"`
	VendorName   string          `json:"vendor_name"`
	StatusID     uint            `json:"status_id"`
	StatusName   string          `json:"status_name"`
	PurchaseDate types.Date      `json:"purchase_date"`
	Cost         decimal.Decimal `json:"cost"`
	EndOfLife    *types.Date     `json:"end_of_life_date"`
	Description  *string         `json:"description"`
	SerialNumber *string         `json:"serial_number"`
	ModelNumber  *string         `json:"model_number"`
	Brand        *string         `json:"brand"`

	PurchaseReceiptName     *string `json:"purchase_receipt_name"`
	PurchaseReceiptType     *string `json:"purchase_receipt_type"`
	PurchaseReceiptSize     *int    `json:"purchase_receipt_size"`
	PurchaseReceiptDataRead *string `json:"purchase_receipt_data_read"`
	ManualDocumentName      *string `json:"manual_document_name"`
	ManualDocumentType      *string `json:"manual_document_type"`
	ManualDocumentSize      *int    `json:"manual_document_size"`
	ManualDocumentDataRead  *string `json:"manual_document_data_read"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssetSummaryDTO is the list projection: the reduced field set used for
// bulk responses. Document fields are deliberately absent.
type AssetSummaryDTO struct {
	ID           uint            `json:"asset_id"`
	AssetCode    string          `json:"asset_code"`
	AssetName    string          `json:"asset_name"`
	CategoryName string          `json:"category_name"`
	StatusName   string          `json:"status_name"`
	LocationName string          `json:"location_name"`
	VendorName   string          `json:"vendor_name"`
	PurchaseDate types.Date      `json:"purchase_date"`
	Cost         decimal.Decimal `json:"cost"`
	EndOfLife    *types.Date     `json:"end_of_life_date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FromModel builds the full projection.
func FromModel(asset *models.Asset) *AssetDTO {
	dto := &AssetDTO{
		ID:           asset.ID,
		AssetCode:    asset.AssetCode,
		AssetName:    asset.AssetName,
		CategoryID:   asset.CategoryID,
		LocationID:   asset.LocationID,
		VendorID:     asset.VendorID,
		StatusID:     asset.StatusID,
		PurchaseDate: types.NewDate(asset.PurchaseDate),
		Cost:         asset.Cost,
		EndOfLife:    optionalDate(asset.EndOfLife),
		Description:  asset.Description,
		SerialNumber: asset.SerialNumber,
		ModelNumber:  asset.ModelNumber,
		Brand:        asset.Brand,

		PurchaseReceiptName:     asset.PurchaseReceipt.Name,
		PurchaseReceiptType:     asset.PurchaseReceipt.Type,
		PurchaseReceiptSize:     asset.PurchaseReceipt.Size,
		PurchaseReceiptDataRead: filedoc.Encode(asset.PurchaseReceipt.Data),
		ManualDocumentName:      asset.ManualDocument.Name,
		ManualDocumentType:      asset.ManualDocument.Type,
		ManualDocumentSize:      asset.ManualDocument.Size,
		ManualDocumentDataRead:  filedoc.Encode(asset.ManualDocument.Data),

		CreatedAt: asset.CreatedAt,
		UpdatedAt: asset.UpdatedAt,
	}
	dto.CategoryName, dto.LocationName, dto.VendorName, dto.StatusName = relatedNames(asset)
	return dto
}

// SummaryFromModel builds the list projection.
func SummaryFromModel(asset *models.Asset) AssetSummaryDTO {
	dto := AssetSummaryDTO{
		ID:           asset.ID,
		AssetCode:    asset.AssetCode,
		AssetName:    asset.AssetName,
		PurchaseDate: types.NewDate(asset.PurchaseDate),
		Cost:         asset.Cost,
		EndOfLife:    optionalDate(asset.EndOfLife),
		CreatedAt:    asset.CreatedAt,
	}
	dto.CategoryName, dto.LocationName, dto.VendorName, dto.StatusName = relatedNames(asset)
	return dto
}

// SummariesFromModels projects a list result.
func SummariesFromModels(assets []models.Asset) []AssetSummaryDTO {
	out := make([]AssetSummaryDTO, 0, len(assets))
	for i := range assets {
		out = append(out, SummaryFromModel(&assets[i]))
	}
	return out
}

func relatedNames(asset *models.Asset) (category, location, vendor, status string) {
	if asset.Category != nil {
		category = asset.Category.CategoryName
	}
	if asset.Location != nil {
		location = asset.Location.LocationName
	}
	if asset.Vendor != nil {
		vendor = asset.Vendor.VendorName
	}
	if asset.Status != nil {
		status = asset.Status.StatusName
	}
	return category, location, vendor, status
}

func optionalDate(t *time.Time) *types.Date {
	if t == nil {
		return nil
	}
	d := types.NewDate(*t)
	return &d
}
