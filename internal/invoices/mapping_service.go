package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db"
	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
)

type mappingRepository interface {
	Create(ctx context.Context, mapping *models.AssetInvoiceMapping) error
	FindByID(ctx context.Context, id uint) (*models.AssetInvoiceMapping, error)
	List(ctx context.Context) ([]models.AssetInvoiceMapping, error)
	Save(ctx context.Context, mapping *models.AssetInvoiceMapping) error
	Delete(ctx context.Context, id uint) error
}

type assetChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type invoiceChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// MappingService exposes asset-invoice link operations.
type MappingService interface {
	List(ctx context.Context) ([]MappingDTO, error)
	Get(ctx context.Context, id uint) (*MappingDTO, error)
	Create(ctx context.Context, input MappingInput) (*MappingDTO, error)
	Replace(ctx context.Context, id uint, input MappingInput) (*MappingDTO, error)
	Patch(ctx context.Context, id uint, input MappingPatch) (*MappingDTO, error)
	Delete(ctx context.Context, id uint) error
}

type mappingService struct {
	repo     mappingRepository
	assets   assetChecker
	invoices invoiceChecker
}

// NewMappingService builds a mapping service.
func NewMappingService(repo mappingRepository, assets assetChecker, invoices invoiceChecker) (MappingService, error) {
	if repo == nil {
		return nil, fmt.Errorf("mapping repository required")
	}
	if assets == nil {
		return nil, fmt.Errorf("asset repository required")
	}
	if invoices == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	return &mappingService{repo: repo, assets: assets, invoices: invoices}, nil
}

// MappingDTO projects a link row with the asset name and invoice number.
type MappingDTO struct {
	ID            uint      `json:"mapping_id"`
	AssetID       uint      `json:"asset_id"`
	AssetName     string    `json:"asset_name"`
	InvoiceID     uint      `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// MappingInput is the create/replace payload.
type MappingInput struct {
	AssetID   uint `json:"asset_id" validate:"required"`
	InvoiceID uint `json:"invoice_id" validate:"required"`
}

// MappingPatch is the partial-update payload.
type MappingPatch struct {
	AssetID   *uint `json:"asset_id"`
	InvoiceID *uint `json:"invoice_id"`
}

// MappingFromModel projects a stored mapping.
func MappingFromModel(mapping *models.AssetInvoiceMapping) *MappingDTO {
	dto := &MappingDTO{
		ID:        mapping.ID,
		AssetID:   mapping.AssetID,
		InvoiceID: mapping.InvoiceID,
		CreatedAt: mapping.CreatedAt,
	}
	if mapping.Asset != nil {
		dto.AssetName = mapping.Asset.AssetName
	}
	if mapping.Invoice != nil {
		dto.InvoiceNumber = mapping.Invoice.InvoiceNumber
	}
	return dto
}

func (s *mappingService) List(ctx context.Context) ([]MappingDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list mappings")
	}
	out := make([]MappingDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *MappingFromModel(&rows[i]))
	}
	return out, nil
}

func (s *mappingService) Get(ctx context.Context, id uint) (*MappingDTO, error) {
	mapping, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return MappingFromModel(mapping), nil
}

func (s *mappingService) Create(ctx context.Context, input MappingInput) (*MappingDTO, error) {
	if err := s.requireRefs(ctx, input.AssetID, input.InvoiceID); err != nil {
		return nil, err
	}
	mapping := &models.AssetInvoiceMapping{AssetID: input.AssetID, InvoiceID: input.InvoiceID}
	if err := s.repo.Create(ctx, mapping); err != nil {
		return nil, mappingStoreError(err, "create mapping")
	}
	return s.Get(ctx, mapping.ID)
}

func (s *mappingService) Replace(ctx context.Context, id uint, input MappingInput) (*MappingDTO, error) {
	mapping, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireRefs(ctx, input.AssetID, input.InvoiceID); err != nil {
		return nil, err
	}
	mapping.AssetID = input.AssetID
	mapping.InvoiceID = input.InvoiceID
	if err := s.repo.Save(ctx, mapping); err != nil {
		return nil, mappingStoreError(err, "update mapping")
	}
	return s.Get(ctx, mapping.ID)
}

func (s *mappingService) Patch(ctx context.Context, id uint, input MappingPatch) (*MappingDTO, error) {
	mapping, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.AssetID != nil {
		ok, err := s.assets.Exists(ctx, *input.AssetID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check asset")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		mapping.AssetID = *input.AssetID
	}
	if input.InvoiceID != nil {
		ok, err := s.invoices.Exists(ctx, *input.InvoiceID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check invoice")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		mapping.InvoiceID = *input.InvoiceID
	}
	if err := s.repo.Save(ctx, mapping); err != nil {
		return nil, mappingStoreError(err, "update mapping")
	}
	return s.Get(ctx, mapping.ID)
}

func (s *mappingService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "mapping not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete mapping")
	}
	return nil
}

func (s *mappingService) load(ctx context.Context, id uint) (*models.AssetInvoiceMapping, error) {
	mapping, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "mapping not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load mapping")
	}
	return mapping, nil
}

func (s *mappingService) requireRefs(ctx context.Context, assetID, invoiceID uint) error {
	ok, err := s.assets.Exists(ctx, assetID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check asset")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
	}
	ok, err = s.invoices.Exists(ctx, invoiceID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check invoice")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
	}
	return nil
}

func mappingStoreError(err error, action string) error {
	if db.IsUniqueViolation(err, "uq_asset_invoice") {
		return pkgerrors.New(pkgerrors.CodeValidation, "asset is already linked to this invoice").
			WithDetails(map[string]string{"asset_id": "already linked to this invoice"})
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
