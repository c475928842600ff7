package assets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db"
	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
	"github.com/tracelabs/assetbook-backend/pkg/filedoc"
	"github.com/tracelabs/assetbook-backend/pkg/types"
)

var minCost = decimal.New(1, -2)

type assetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	FindByID(ctx context.Context, id uint) (*models.Asset, error)
	List(ctx context.Context) ([]models.Asset, error)
	Search(ctx context.Context, q string) ([]models.Asset, error)
	FindByStatus(ctx context.Context, statusID uint) ([]models.Asset, error)
	FindByCategory(ctx context.Context, categoryID uint) ([]models.Asset, error)
	Save(ctx context.Context, asset *models.Asset) error
	Delete(ctx context.Context, id uint) error
}

// referenceRepository answers existence checks for the master tables an
// asset points at.
type referenceRepository interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// References bundles the master-table repositories used to validate the
// four required foreign keys.
type References struct {
	Categories referenceRepository
	Locations  referenceRepository
	Vendors    referenceRepository
	Statuses   referenceRepository
}

// Service exposes asset registry operations.
type Service interface {
	List(ctx context.Context) ([]AssetSummaryDTO, error)
	Search(ctx context.Context, q string) ([]AssetSummaryDTO, error)
	ByStatus(ctx context.Context, statusID uint) ([]AssetSummaryDTO, error)
	ByCategory(ctx context.Context, categoryID uint) ([]AssetSummaryDTO, error)
	Get(ctx context.Context, id uint) (*AssetDTO, error)
	Create(ctx context.Context, input AssetInput) (*AssetDTO, error)
	Replace(ctx context.Context, id uint, input AssetInput) (*AssetDTO, error)
	Patch(ctx context.Context, id uint, input AssetPatch) (*AssetDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo assetRepository
	refs References
}

// NewService builds an asset service with the provided repositories.
func NewService(repo assetRepository, refs References) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("asset repository required")
	}
	if refs.Categories == nil || refs.Locations == nil || refs.Vendors == nil || refs.Statuses == nil {
		return nil, fmt.Errorf("reference repositories required")
	}
	return &service{repo: repo, refs: refs}, nil
}

// AssetInput is the create/replace payload.
type AssetInput struct {
	AssetCode    string          `json:"asset_code" validate:"required,max=50"`
	AssetName    string          `json:"asset_name" validate:"required,max=200"`
	CategoryID   uint            `json:"category_id" validate:"required"`
	LocationID   uint            `json:"location_id" validate:"required"`
	VendorID     uint            `json:"vendor_id" validate:"required"`
	StatusID     uint            `json:"status_id" validate:"required"`
	PurchaseDate types.Date      `json:"purchase_date"`
	Cost         decimal.Decimal `json:"cost"`
	EndOfLife    *types.Date     `json:"end_of_life_date"`
	Description  *string         `json:"description"`
	SerialNumber *string         `json:"serial_number" validate:"omitempty,max=100"`
	ModelNumber  *string         `json:"model_number" validate:"omitempty,max=100"`
	Brand        *string         `json:"brand" validate:"omitempty,max=100"`

	PurchaseReceiptData *string `json:"purchase_receipt_data"`
	PurchaseReceiptName *string `json:"purchase_receipt_name"`
	PurchaseReceiptType *string `json:"purchase_receipt_type"`
	PurchaseReceiptSize *int    `json:"purchase_receipt_size"`
	ManualDocumentData  *string `json:"manual_document_data"`
	ManualDocumentName  *string `json:"manual_document_name"`
	ManualDocumentType  *string `json:"manual_document_type"`
	ManualDocumentSize  *int    `json:"manual_document_size"`
}

func (in AssetInput) purchaseReceipt() filedoc.Input {
	return filedoc.Input{Data: in.PurchaseReceiptData, Name: in.PurchaseReceiptName, Type: in.PurchaseReceiptType, Size: in.PurchaseReceiptSize}
}

func (in AssetInput) manualDocument() filedoc.Input {
	return filedoc.Input{Data: in.ManualDocumentData, Name: in.ManualDocumentName, Type: in.ManualDocumentType, Size: in.ManualDocumentSize}
}

// AssetPatch is the partial-update payload. Nil fields stay untouched.
type AssetPatch struct {
	AssetCode    *string          `json:"asset_code" validate:"omitempty,max=50"`
	AssetName    *string          `json:"asset_name" validate:"omitempty,max=200"`
	CategoryID   *uint            `json:"category_id"`
	LocationID   *uint            `json:"location_id"`
	VendorID     *uint            `json:"vendor_id"`
	StatusID     *uint            `json:"status_id"`
	PurchaseDate *types.Date      `json:"purchase_date"`
	Cost         *decimal.Decimal `json:"cost"`
	EndOfLife    *types.Date      `json:"end_of_life_date"`
	Description  *string          `json:"description"`
	SerialNumber *string          `json:"serial_number" validate:"omitempty,max=100"`
	ModelNumber  *string          `json:"model_number" validate:"omitempty,max=100"`
	Brand        *string          `json:"brand" validate:"omitempty,max=100"`

	PurchaseReceiptData *string `json:"purchase_receipt_data"`
	PurchaseReceiptName *string `json:"purchase_receipt_name"`
	PurchaseReceiptType *string `json:"purchase_receipt_type"`
	PurchaseReceiptSize *int    `json:"purchase_receipt_size"`
	ManualDocumentData  *string `json:"manual_document_data"`
	ManualDocumentName  *string `json:"manual_document_name"`
	ManualDocumentType  *string `json:"manual_document_type"`
	ManualDocumentSize  *int    `json:"manual_document_size"`
}

func (s *service) List(ctx context.Context) ([]AssetSummaryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assets")
	}
	return SummariesFromModels(rows), nil
}

func (s *service) Search(ctx context.Context, q string) ([]AssetSummaryDTO, error) {
	rows, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search assets")
	}
	return SummariesFromModels(rows), nil
}

func (s *service) ByStatus(ctx context.Context, statusID uint) ([]AssetSummaryDTO, error) {
	ok, err := s.refs.Statuses.Exists(ctx, statusID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check status")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset status not found")
	}
	rows, err := s.repo.FindByStatus(ctx, statusID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assets by status")
	}
	return SummariesFromModels(rows), nil
}

func (s *service) ByCategory(ctx context.Context, categoryID uint) ([]AssetSummaryDTO, error) {
	ok, err := s.refs.Categories.Exists(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset category not found")
	}
	rows, err := s.repo.FindByCategory(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assets by category")
	}
	return SummariesFromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id uint) (*AssetDTO, error) {
	asset, err := s.loadAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(asset), nil
}

func (s *service) Create(ctx context.Context, input AssetInput) (*AssetDTO, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	asset := &models.Asset{
		AssetCode:    input.AssetCode,
		AssetName:    input.AssetName,
		CategoryID:   input.CategoryID,
		LocationID:   input.LocationID,
		VendorID:     input.VendorID,
		StatusID:     input.StatusID,
		PurchaseDate: input.PurchaseDate.Time,
		Cost:         input.Cost,
		EndOfLife:    optionalTime(input.EndOfLife),
		Description:  input.Description,
		SerialNumber: input.SerialNumber,
		ModelNumber:  input.ModelNumber,
		Brand:        input.Brand,
	}
	if err := input.purchaseReceipt().Apply(&asset.PurchaseReceipt); err != nil {
		return nil, err
	}
	if err := input.manualDocument().Apply(&asset.ManualDocument); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, asset); err != nil {
		return nil, storeError(err, "create asset")
	}
	return s.Get(ctx, asset.ID)
}

func (s *service) Replace(ctx context.Context, id uint, input AssetInput) (*AssetDTO, error) {
	asset, err := s.loadAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	asset.AssetCode = input.AssetCode
	asset.AssetName = input.AssetName
	asset.CategoryID = input.CategoryID
	asset.LocationID = input.LocationID
	asset.VendorID = input.VendorID
	asset.StatusID = input.StatusID
	asset.PurchaseDate = input.PurchaseDate.Time
	asset.Cost = input.Cost
	asset.EndOfLife = optionalTime(input.EndOfLife)
	asset.Description = input.Description
	asset.SerialNumber = input.SerialNumber
	asset.ModelNumber = input.ModelNumber
	asset.Brand = input.Brand

	// A replace rewrites the document slots from scratch.
	asset.PurchaseReceipt = models.FileDocument{}
	asset.ManualDocument = models.FileDocument{}
	if err := input.purchaseReceipt().Apply(&asset.PurchaseReceipt); err != nil {
		return nil, err
	}
	if err := input.manualDocument().Apply(&asset.ManualDocument); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, asset); err != nil {
		return nil, storeError(err, "update asset")
	}
	return s.Get(ctx, asset.ID)
}

func (s *service) Patch(ctx context.Context, id uint, input AssetPatch) (*AssetDTO, error) {
	asset, err := s.loadAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if err := s.requireRef(ctx, s.refs.Categories, *input.CategoryID, "asset category"); err != nil {
			return nil, err
		}
		asset.CategoryID = *input.CategoryID
	}
	if input.LocationID != nil {
		if err := s.requireRef(ctx, s.refs.Locations, *input.LocationID, "location"); err != nil {
			return nil, err
		}
		asset.LocationID = *input.LocationID
	}
	if input.VendorID != nil {
		if err := s.requireRef(ctx, s.refs.Vendors, *input.VendorID, "vendor"); err != nil {
			return nil, err
		}
		asset.VendorID = *input.VendorID
	}
	if input.StatusID != nil {
		if err := s.requireRef(ctx, s.refs.Statuses, *input.StatusID, "asset status"); err != nil {
			return nil, err
		}
		asset.StatusID = *input.StatusID
	}
	if input.AssetCode != nil {
		asset.AssetCode = *input.AssetCode
	}
	if input.AssetName != nil {
		asset.AssetName = *input.AssetName
	}
	if input.PurchaseDate != nil {
		asset.PurchaseDate = input.PurchaseDate.Time
	}
	if input.Cost != nil {
		if err := validateCost(*input.Cost); err != nil {
			return nil, err
		}
		asset.Cost = *input.Cost
	}
	if input.EndOfLife != nil {
		asset.EndOfLife = optionalTime(input.EndOfLife)
	}
	if input.Description != nil {
		asset.Description = input.Description
	}
	if input.SerialNumber != nil {
		asset.SerialNumber = input.SerialNumber
	}
	if input.ModelNumber != nil {
		asset.ModelNumber = input.ModelNumber
	}
	if input.Brand != nil {
		asset.Brand = input.Brand
	}

	receipt := filedoc.Input{Data: input.PurchaseReceiptData, Name: input.PurchaseReceiptName, Type: input.PurchaseReceiptType, Size: input.PurchaseReceiptSize}
	if err := receipt.Apply(&asset.PurchaseReceipt); err != nil {
		return nil, err
	}
	manual := filedoc.Input{Data: input.ManualDocumentData, Name: input.ManualDocumentName, Type: input.ManualDocumentType, Size: input.ManualDocumentSize}
	if err := manual.Apply(&asset.ManualDocument); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, asset); err != nil {
		return nil, storeError(err, "update asset")
	}
	return s.Get(ctx, asset.ID)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete asset")
	}
	return nil
}

func (s *service) loadAsset(ctx context.Context, id uint) (*models.Asset, error) {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load asset")
	}
	return asset, nil
}

func (s *service) validateInput(ctx context.Context, input AssetInput) error {
	if input.PurchaseDate.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "purchase_date is required")
	}
	if err := validateCost(input.Cost); err != nil {
		return err
	}
	if err := s.requireRef(ctx, s.refs.Categories, input.CategoryID, "asset category"); err != nil {
		return err
	}
	if err := s.requireRef(ctx, s.refs.Locations, input.LocationID, "location"); err != nil {
		return err
	}
	if err := s.requireRef(ctx, s.refs.Vendors, input.VendorID, "vendor"); err != nil {
		return err
	}
	return s.requireRef(ctx, s.refs.Statuses, input.StatusID, "asset status")
}

func (s *service) requireRef(ctx context.Context, repo referenceRepository, id uint, label string) error {
	ok, err := repo.Exists(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check "+label)
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, label+" not found")
	}
	return nil
}

func validateCost(cost decimal.Decimal) error {
	if cost.LessThan(minCost) {
		return pkgerrors.New(pkgerrors.CodeValidation, "cost must be at least 0.01").
			WithDetails(map[string]string{"cost": "must be at least 0.01"})
	}
	if !cost.Equal(cost.Round(2)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "cost allows at most two decimal places").
			WithDetails(map[string]string{"cost": "at most two decimal places"})
	}
	return nil
}

func storeError(err error, action string) error {
	if db.IsUniqueViolation(err, "asset_code") {
		return pkgerrors.New(pkgerrors.CodeValidation, "asset_code already in use").
			WithDetails(map[string]string{"asset_code": "must be unique"})
	}
	if db.IsForeignKeyViolation(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "referenced resource not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func optionalTime(d *types.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
