package depreciations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
	"github.com/tracelabs/assetbook-backend/pkg/types"
)

type depreciationRepository interface {
	Create(ctx context.Context, depreciation *models.Depreciation) error
	FindByID(ctx context.Context, id uint) (*models.Depreciation, error)
	List(ctx context.Context) ([]models.Depreciation, error)
	Save(ctx context.Context, depreciation *models.Depreciation) error
	Delete(ctx context.Context, id uint) error
}

type assetChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type methodChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// Service exposes depreciation snapshot operations.
type Service interface {
	List(ctx context.Context) ([]DepreciationDTO, error)
	Get(ctx context.Context, id uint) (*DepreciationDTO, error)
	Create(ctx context.Context, input DepreciationInput) (*DepreciationDTO, error)
	Replace(ctx context.Context, id uint, input DepreciationInput) (*DepreciationDTO, error)
	Patch(ctx context.Context, id uint, input DepreciationPatch) (*DepreciationDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo    depreciationRepository
	assets  assetChecker
	methods methodChecker
}

// NewService builds a depreciation service.
func NewService(repo depreciationRepository, assets assetChecker, methods methodChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("depreciation repository required")
	}
	if assets == nil {
		return nil, fmt.Errorf("asset repository required")
	}
	if methods == nil {
		return nil, fmt.Errorf("method repository required")
	}
	return &service{repo: repo, assets: assets, methods: methods}, nil
}

// DepreciationDTO projects every stored field plus the asset and method
// names.
type DepreciationDTO struct {
	ID           uint            `json:"depreciation_id"`
	AssetID      uint            `json:"asset_id"`
	AssetName    string          `json:"asset_name"`
	MethodID     uint            `json:"method_id"`
	MethodName   string          `json:"method_name"`
	Rate         decimal.Decimal `json:"rate"`
	BookValue    decimal.Decimal `json:"book_value"`
	CalculatedOn types.Date      `json:"calculated_on"`
	Notes        *string         `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// DepreciationInput is the create/replace payload.
type DepreciationInput struct {
	AssetID      uint            `json:"asset_id" validate:"required"`
	MethodID     uint            `json:"method_id" validate:"required"`
	Rate         decimal.Decimal `json:"rate"`
	BookValue    decimal.Decimal `json:"book_value"`
	CalculatedOn types.Date      `json:"calculated_on"`
	Notes        *string         `json:"notes"`
}

// DepreciationPatch is the partial-update payload.
type DepreciationPatch struct {
	AssetID      *uint            `json:"asset_id"`
	MethodID     *uint            `json:"method_id"`
	Rate         *decimal.Decimal `json:"rate"`
	BookValue    *decimal.Decimal `json:"book_value"`
	CalculatedOn *types.Date      `json:"calculated_on"`
	Notes        *string          `json:"notes"`
}

// FromModel projects a stored depreciation.
func FromModel(depreciation *models.Depreciation) *DepreciationDTO {
	dto := &DepreciationDTO{
		ID:           depreciation.ID,
		AssetID:      depreciation.AssetID,
		MethodID:     depreciation.MethodID,
		Rate:         depreciation.Rate,
		BookValue:    depreciation.BookValue,
		CalculatedOn: types.NewDate(depreciation.CalculatedOn),
		Notes:        depreciation.Notes,
		CreatedAt:    depreciation.CreatedAt,
		UpdatedAt:    depreciation.UpdatedAt,
	}
	if depreciation.Asset != nil {
		dto.AssetName = depreciation.Asset.AssetName
	}
	if depreciation.Method != nil {
		dto.MethodName = depreciation.Method.MethodName
	}
	return dto
}

func (s *service) List(ctx context.Context) ([]DepreciationDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list depreciations")
	}
	out := make([]DepreciationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uint) (*DepreciationDTO, error) {
	depreciation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(depreciation), nil
}

func (s *service) Create(ctx context.Context, input DepreciationInput) (*DepreciationDTO, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}
	depreciation := &models.Depreciation{
		AssetID:      input.AssetID,
		MethodID:     input.MethodID,
		Rate:         input.Rate,
		BookValue:    input.BookValue,
		CalculatedOn: input.CalculatedOn.Time,
		Notes:        input.Notes,
	}
	if err := s.repo.Create(ctx, depreciation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create depreciation")
	}
	return s.Get(ctx, depreciation.ID)
}

func (s *service) Replace(ctx context.Context, id uint, input DepreciationInput) (*DepreciationDTO, error) {
	depreciation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}
	depreciation.AssetID = input.AssetID
	depreciation.MethodID = input.MethodID
	depreciation.Rate = input.Rate
	depreciation.BookValue = input.BookValue
	depreciation.CalculatedOn = input.CalculatedOn.Time
	depreciation.Notes = input.Notes
	if err := s.repo.Save(ctx, depreciation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update depreciation")
	}
	return s.Get(ctx, depreciation.ID)
}

func (s *service) Patch(ctx context.Context, id uint, input DepreciationPatch) (*DepreciationDTO, error) {
	depreciation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.AssetID != nil {
		if err := requireRef(ctx, s.assets, *input.AssetID, "asset"); err != nil {
			return nil, err
		}
		depreciation.AssetID = *input.AssetID
	}
	if input.MethodID != nil {
		if err := requireRef(ctx, s.methods, *input.MethodID, "depreciation method"); err != nil {
			return nil, err
		}
		depreciation.MethodID = *input.MethodID
	}
	if input.Rate != nil {
		if err := validateRate(*input.Rate); err != nil {
			return nil, err
		}
		depreciation.Rate = *input.Rate
	}
	if input.BookValue != nil {
		if err := validateBookValue(*input.BookValue); err != nil {
			return nil, err
		}
		depreciation.BookValue = *input.BookValue
	}
	if input.CalculatedOn != nil {
		depreciation.CalculatedOn = input.CalculatedOn.Time
	}
	if input.Notes != nil {
		depreciation.Notes = input.Notes
	}
	if err := s.repo.Save(ctx, depreciation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update depreciation")
	}
	return s.Get(ctx, depreciation.ID)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "depreciation not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete depreciation")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uint) (*models.Depreciation, error) {
	depreciation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "depreciation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load depreciation")
	}
	return depreciation, nil
}

func (s *service) validateInput(ctx context.Context, input DepreciationInput) error {
	if input.CalculatedOn.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "calculated_on is required")
	}
	if err := validateRate(input.Rate); err != nil {
		return err
	}
	if err := validateBookValue(input.BookValue); err != nil {
		return err
	}
	if err := requireRef(ctx, s.assets, input.AssetID, "asset"); err != nil {
		return err
	}
	return requireRef(ctx, s.methods, input.MethodID, "depreciation method")
}

func requireRef(ctx context.Context, checker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}, id uint, label string) error {
	ok, err := checker.Exists(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check "+label)
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, label+" not found")
	}
	return nil
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "rate must be non-negative").
			WithDetails(map[string]string{"rate": "must be non-negative"})
	}
	if !rate.Equal(rate.Round(2)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "rate allows at most two decimal places").
			WithDetails(map[string]string{"rate": "at most two decimal places"})
	}
	return nil
}

func validateBookValue(value decimal.Decimal) error {
	if value.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "book_value must be non-negative").
			WithDetails(map[string]string{"book_value": "must be non-negative"})
	}
	if !value.Equal(value.Round(2)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "book_value allows at most two decimal places").
			WithDetails(map[string]string{"book_value": "at most two decimal places"})
	}
	return nil
}
