package warranties

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
	"github.com/tracelabs/assetbook-backend/pkg/filedoc"
	"github.com/tracelabs/assetbook-backend/pkg/types"
)

// DefaultExpiryWindowDays is the expiring_soon lookahead when the caller
// supplies no days parameter.
const DefaultExpiryWindowDays = 30

type warrantyRepository interface {
	Create(ctx context.Context, warranty *models.Warranty) error
	FindByID(ctx context.Context, id uint) (*models.Warranty, error)
	List(ctx context.Context) ([]models.Warranty, error)
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]models.Warranty, error)
	Save(ctx context.Context, warranty *models.Warranty) error
	Delete(ctx context.Context, id uint) error
}

type assetChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// Service exposes warranty operations.
type Service interface {
	List(ctx context.Context) ([]WarrantyDTO, error)
	ExpiringSoon(ctx context.Context, days int) ([]WarrantyDTO, error)
	Get(ctx context.Context, id uint) (*WarrantyDTO, error)
	Create(ctx context.Context, input WarrantyInput) (*WarrantyDTO, error)
	Replace(ctx context.Context, id uint, input WarrantyInput) (*WarrantyDTO, error)
	Patch(ctx context.Context, id uint, input WarrantyPatch) (*WarrantyDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo   warrantyRepository
	assets assetChecker
	now    func() time.Time
}

// NewService builds a warranty service.
func NewService(repo warrantyRepository, assets assetChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("warranty repository required")
	}
	if assets == nil {
		return nil, fmt.Errorf("asset repository required")
	}
	return &service{repo: repo, assets: assets, now: time.Now}, nil
}

// WarrantyDTO projects every stored field plus the asset name and code and
// the read-only base64 document payload.
type WarrantyDTO struct {
	ID               uint       `json:"warranty_id"`
	AssetID          uint       `json:"asset_id"`
	AssetName        string     `json:"asset_name"`
	AssetCode        string     `json:"asset_code"`
	StartDate        types.Date `json:"start_date"`
	EndDate          types.Date `json:"end_date"`
	CoverageDetails  *string    `json:"coverage_details"`
	WarrantyProvider *string    `json:"warranty_provider"`
	ContactInfo      *string    `json:"contact_info"`

	WarrantyDocumentName     *string `json:"warranty_document_name"`
	WarrantyDocumentType     *string `json:"warranty_document_type"`
	WarrantyDocumentSize     *int    `json:"warranty_document_size"`
	WarrantyDocumentDataRead *string `json:"warranty_document_data_read"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarrantyInput is the create/replace payload.
type WarrantyInput struct {
	AssetID          uint       `json:"asset_id" validate:"required"`
	StartDate        types.Date `json:"start_date"`
	EndDate          types.Date `json:"end_date"`
	CoverageDetails  *string    `json:"coverage_details"`
	WarrantyProvider *string    `json:"warranty_provider" validate:"omitempty,max=200"`
	ContactInfo      *string    `json:"contact_info"`

	WarrantyDocumentData *string `json:"warranty_document_data"`
	WarrantyDocumentName *string `json:"warranty_document_name"`
	WarrantyDocumentType *string `json:"warranty_document_type"`
	WarrantyDocumentSize *int    `json:"warranty_document_size"`
}

// WarrantyPatch is the partial-update payload.
type WarrantyPatch struct {
	AssetID          *uint       `json:"asset_id"`
	StartDate        *types.Date `json:"start_date"`
	EndDate          *types.Date `json:"end_date"`
	CoverageDetails  *string     `json:"coverage_details"`
	WarrantyProvider *string     `json:"warranty_provider" validate:"omitempty,max=200"`
	ContactInfo      *string     `json:"contact_info"`

	WarrantyDocumentData *string `json:"warranty_document_data"`
	WarrantyDocumentName *string `json:"warranty_document_name"`
	WarrantyDocumentType *string `json:"warranty_document_type"`
	WarrantyDocumentSize *int    `json:"warranty_document_size"`
}

// FromModel projects a stored warranty.
func FromModel(warranty *models.Warranty) *WarrantyDTO {
	dto := &WarrantyDTO{
		ID:               warranty.ID,
		AssetID:          warranty.AssetID,
		StartDate:        types.NewDate(warranty.StartDate),
		EndDate:          types.NewDate(warranty.EndDate),
		CoverageDetails:  warranty.CoverageDetails,
		WarrantyProvider: warranty.WarrantyProvider,
		ContactInfo:      warranty.ContactInfo,

		WarrantyDocumentName:     warranty.WarrantyDocument.Name,
		WarrantyDocumentType:     warranty.WarrantyDocument.Type,
		WarrantyDocumentSize:     warranty.WarrantyDocument.Size,
		WarrantyDocumentDataRead: filedoc.Encode(warranty.WarrantyDocument.Data),

		CreatedAt: warranty.CreatedAt,
		UpdatedAt: warranty.UpdatedAt,
	}
	if warranty.Asset != nil {
		dto.AssetName = warranty.Asset.AssetName
		dto.AssetCode = warranty.Asset.AssetCode
	}
	return dto
}

func projectAll(rows []models.Warranty) []WarrantyDTO {
	out := make([]WarrantyDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func (s *service) List(ctx context.Context) ([]WarrantyDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list warranties")
	}
	return projectAll(rows), nil
}

// ExpiringSoon returns warranties whose end date falls within
// [today, today+days] inclusive.
func (s *service) ExpiringSoon(ctx context.Context, days int) ([]WarrantyDTO, error) {
	if days < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "days must be non-negative").
			WithDetails(map[string]string{"days": "must be non-negative"})
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	until := today.AddDate(0, 0, days)
	rows, err := s.repo.FindExpiringBetween(ctx, today, until)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expiring warranties")
	}
	return projectAll(rows), nil
}

func (s *service) Get(ctx context.Context, id uint) (*WarrantyDTO, error) {
	warranty, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(warranty), nil
}

func (s *service) Create(ctx context.Context, input WarrantyInput) (*WarrantyDTO, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	warranty := &models.Warranty{
		AssetID:          input.AssetID,
		StartDate:        input.StartDate.Time,
		EndDate:          input.EndDate.Time,
		CoverageDetails:  input.CoverageDetails,
		WarrantyProvider: input.WarrantyProvider,
		ContactInfo:      input.ContactInfo,
	}
	doc := filedoc.Input{Data: input.WarrantyDocumentData, Name: input.WarrantyDocumentName, Type: input.WarrantyDocumentType, Size: input.WarrantyDocumentSize}
	if err := doc.Apply(&warranty.WarrantyDocument); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, warranty); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create warranty")
	}
	return s.Get(ctx, warranty.ID)
}

func (s *service) Replace(ctx context.Context, id uint, input WarrantyInput) (*WarrantyDTO, error) {
	warranty, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	warranty.AssetID = input.AssetID
	warranty.StartDate = input.StartDate.Time
	warranty.EndDate = input.EndDate.Time
	warranty.CoverageDetails = input.CoverageDetails
	warranty.WarrantyProvider = input.WarrantyProvider
	warranty.ContactInfo = input.ContactInfo

	warranty.WarrantyDocument = models.FileDocument{}
	doc := filedoc.Input{Data: input.WarrantyDocumentData, Name: input.WarrantyDocumentName, Type: input.WarrantyDocumentType, Size: input.WarrantyDocumentSize}
	if err := doc.Apply(&warranty.WarrantyDocument); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, warranty); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update warranty")
	}
	return s.Get(ctx, warranty.ID)
}

func (s *service) Patch(ctx context.Context, id uint, input WarrantyPatch) (*WarrantyDTO, error) {
	warranty, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.AssetID != nil {
		if err := s.requireAsset(ctx, *input.AssetID); err != nil {
			return nil, err
		}
		warranty.AssetID = *input.AssetID
	}
	if input.StartDate != nil {
		warranty.StartDate = input.StartDate.Time
	}
	if input.EndDate != nil {
		warranty.EndDate = input.EndDate.Time
	}
	if input.CoverageDetails != nil {
		warranty.CoverageDetails = input.CoverageDetails
	}
	if input.WarrantyProvider != nil {
		warranty.WarrantyProvider = input.WarrantyProvider
	}
	if input.ContactInfo != nil {
		warranty.ContactInfo = input.ContactInfo
	}

	doc := filedoc.Input{Data: input.WarrantyDocumentData, Name: input.WarrantyDocumentName, Type: input.WarrantyDocumentType, Size: input.WarrantyDocumentSize}
	if err := doc.Apply(&warranty.WarrantyDocument); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, warranty); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update warranty")
	}
	return s.Get(ctx, warranty.ID)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "warranty not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete warranty")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uint) (*models.Warranty, error) {
	warranty, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "warranty not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load warranty")
	}
	return warranty, nil
}

func (s *service) validateInput(ctx context.Context, input WarrantyInput) error {
	if input.StartDate.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "start_date is required")
	}
	if input.EndDate.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "end_date is required")
	}
	if input.EndDate.Before(input.StartDate.Time) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end_date must not precede start_date").
			WithDetails(map[string]string{"end_date": "must not precede start_date"})
	}
	return s.requireAsset(ctx, input.AssetID)
}

func (s *service) requireAsset(ctx context.Context, id uint) error {
	ok, err := s.assets.Exists(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check asset")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
	}
	return nil
}
