package endoflife

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db"
	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	"github.com/tracelabs/assetbook-backend/pkg/enums"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
	"github.com/tracelabs/assetbook-backend/pkg/types"
)

type recordRepository interface {
	Create(ctx context.Context, record *models.EndOfLife) error
	FindByID(ctx context.Context, id uint) (*models.EndOfLife, error)
	List(ctx context.Context) ([]models.EndOfLife, error)
	ExistsForAsset(ctx context.Context, assetID uint, excludeID uint) (bool, error)
	Save(ctx context.Context, record *models.EndOfLife) error
	Delete(ctx context.Context, id uint) error
}

type assetChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// Service exposes disposal record operations.
type Service interface {
	List(ctx context.Context) ([]RecordDTO, error)
	Get(ctx context.Context, id uint) (*RecordDTO, error)
	Create(ctx context.Context, input RecordInput) (*RecordDTO, error)
	Replace(ctx context.Context, id uint, input RecordInput) (*RecordDTO, error)
	Patch(ctx context.Context, id uint, input RecordPatch) (*RecordDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo   recordRepository
	assets assetChecker
}

// NewService builds a disposal record service.
func NewService(repo recordRepository, assets assetChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("end-of-life repository required")
	}
	if assets == nil {
		return nil, fmt.Errorf("asset repository required")
	}
	return &service{repo: repo, assets: assets}, nil
}

// RecordDTO projects every stored field plus the asset name and code.
type RecordDTO struct {
	ID              uint                 `json:"eol_id"`
	AssetID         uint                 `json:"asset_id"`
	AssetName       string               `json:"asset_name"`
	AssetCode       string               `json:"asset_code"`
	EOLDate         types.Date           `json:"eol_date"`
	DisposalMethod  enums.DisposalMethod `json:"disposal_method"`
	FinalValue      decimal.Decimal      `json:"final_value"`
	Remarks         *string              `json:"remarks"`
	DisposalCompany *string              `json:"disposal_company"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// RecordInput is the create/replace payload.
type RecordInput struct {
	AssetID         uint            `json:"asset_id" validate:"required"`
	EOLDate         types.Date      `json:"eol_date"`
	DisposalMethod  string          `json:"disposal_method" validate:"required"`
	FinalValue      decimal.Decimal `json:"final_value"`
	Remarks         *string         `json:"remarks"`
	DisposalCompany *string         `json:"disposal_company" validate:"omitempty,max=200"`
}

// RecordPatch is the partial-update payload.
type RecordPatch struct {
	AssetID         *uint            `json:"asset_id"`
	EOLDate         *types.Date      `json:"eol_date"`
	DisposalMethod  *string          `json:"disposal_method"`
	FinalValue      *decimal.Decimal `json:"final_value"`
	Remarks         *string          `json:"remarks"`
	DisposalCompany *string          `json:"disposal_company" validate:"omitempty,max=200"`
}

// FromModel projects a stored disposal record.
func FromModel(record *models.EndOfLife) *RecordDTO {
	dto := &RecordDTO{
		ID:              record.ID,
		AssetID:         record.AssetID,
		EOLDate:         types.NewDate(record.EOLDate),
		DisposalMethod:  record.DisposalMethod,
		FinalValue:      record.FinalValue,
		Remarks:         record.Remarks,
		DisposalCompany: record.DisposalCompany,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
	if record.Asset != nil {
		dto.AssetName = record.Asset.AssetName
		dto.AssetCode = record.Asset.AssetCode
	}
	return dto
}

func (s *service) List(ctx context.Context) ([]RecordDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list end-of-life records")
	}
	out := make([]RecordDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uint) (*RecordDTO, error) {
	record, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(record), nil
}

func (s *service) Create(ctx context.Context, input RecordInput) (*RecordDTO, error) {
	method, err := s.validateInput(ctx, input, 0)
	if err != nil {
		return nil, err
	}
	record := &models.EndOfLife{
		AssetID:         input.AssetID,
		EOLDate:         input.EOLDate.Time,
		DisposalMethod:  method,
		FinalValue:      input.FinalValue,
		Remarks:         input.Remarks,
		DisposalCompany: input.DisposalCompany,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, storeError(err, "create end-of-life record")
	}
	return s.Get(ctx, record.ID)
}

func (s *service) Replace(ctx context.Context, id uint, input RecordInput) (*RecordDTO, error) {
	record, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	method, err := s.validateInput(ctx, input, id)
	if err != nil {
		return nil, err
	}
	record.AssetID = input.AssetID
	record.EOLDate = input.EOLDate.Time
	record.DisposalMethod = method
	record.FinalValue = input.FinalValue
	record.Remarks = input.Remarks
	record.DisposalCompany = input.DisposalCompany
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, storeError(err, "update end-of-life record")
	}
	return s.Get(ctx, record.ID)
}

func (s *service) Patch(ctx context.Context, id uint, input RecordPatch) (*RecordDTO, error) {
	record, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.AssetID != nil {
		if err := s.requireAsset(ctx, *input.AssetID); err != nil {
			return nil, err
		}
		if err := s.requireNoOtherRecord(ctx, *input.AssetID, id); err != nil {
			return nil, err
		}
		record.AssetID = *input.AssetID
	}
	if input.EOLDate != nil {
		record.EOLDate = input.EOLDate.Time
	}
	if input.DisposalMethod != nil {
		method, err := enums.ParseDisposalMethod(*input.DisposalMethod)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error()).
				WithDetails(map[string]string{"disposal_method": "must be one of resold, scrapped, recycled, donated, returned"})
		}
		record.DisposalMethod = method
	}
	if input.FinalValue != nil {
		if err := validateFinalValue(*input.FinalValue); err != nil {
			return nil, err
		}
		record.FinalValue = *input.FinalValue
	}
	if input.Remarks != nil {
		record.Remarks = input.Remarks
	}
	if input.DisposalCompany != nil {
		record.DisposalCompany = input.DisposalCompany
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, storeError(err, "update end-of-life record")
	}
	return s.Get(ctx, record.ID)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "end-of-life record not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete end-of-life record")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uint) (*models.EndOfLife, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "end-of-life record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load end-of-life record")
	}
	return record, nil
}

func (s *service) validateInput(ctx context.Context, input RecordInput, excludeID uint) (enums.DisposalMethod, error) {
	if input.EOLDate.IsZero() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "eol_date is required")
	}
	method, err := enums.ParseDisposalMethod(input.DisposalMethod)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, err.Error()).
			WithDetails(map[string]string{"disposal_method": "must be one of resold, scrapped, recycled, donated, returned"})
	}
	if err := validateFinalValue(input.FinalValue); err != nil {
		return "", err
	}
	if err := s.requireAsset(ctx, input.AssetID); err != nil {
		return "", err
	}
	if err := s.requireNoOtherRecord(ctx, input.AssetID, excludeID); err != nil {
		return "", err
	}
	return method, nil
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

// requireNoOtherRecord enforces the one-disposal-per-asset invariant.
func (s *service) requireNoOtherRecord(ctx context.Context, assetID, excludeID uint) error {
	exists, err := s.repo.ExistsForAsset(ctx, assetID, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing record")
	}
	if exists {
		return pkgerrors.New(pkgerrors.CodeValidation, "asset already has an end-of-life record").
			WithDetails(map[string]string{"asset_id": "already has an end-of-life record"})
	}
	return nil
}

func validateFinalValue(value decimal.Decimal) error {
	if value.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "final_value must be non-negative").
			WithDetails(map[string]string{"final_value": "must be non-negative"})
	}
	if !value.Equal(value.Round(2)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "final_value allows at most two decimal places").
			WithDetails(map[string]string{"final_value": "at most two decimal places"})
	}
	return nil
}

func storeError(err error, action string) error {
	if db.IsUniqueViolation(err, "asset_id") {
		return pkgerrors.New(pkgerrors.CodeValidation, "asset already has an end-of-life record").
			WithDetails(map[string]string{"asset_id": "already has an end-of-life record"})
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
