package maintenances

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	"github.com/tracelabs/assetbook-backend/pkg/enums"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
	"github.com/tracelabs/assetbook-backend/pkg/types"
)

type maintenanceRepository interface {
	Create(ctx context.Context, maintenance *models.Maintenance) error
	FindByID(ctx context.Context, id uint) (*models.Maintenance, error)
	List(ctx context.Context) ([]models.Maintenance, error)
	FindByAsset(ctx context.Context, assetID uint) ([]models.Maintenance, error)
	Save(ctx context.Context, maintenance *models.Maintenance) error
	Delete(ctx context.Context, id uint) error
}

type assetChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// Service exposes maintenance record operations.
type Service interface {
	List(ctx context.Context) ([]MaintenanceDTO, error)
	ByAsset(ctx context.Context, assetID uint) ([]MaintenanceDTO, error)
	Get(ctx context.Context, id uint) (*MaintenanceDTO, error)
	Create(ctx context.Context, input MaintenanceInput) (*MaintenanceDTO, error)
	Replace(ctx context.Context, id uint, input MaintenanceInput) (*MaintenanceDTO, error)
	Patch(ctx context.Context, id uint, input MaintenancePatch) (*MaintenanceDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo   maintenanceRepository
	assets assetChecker
}

// NewService builds a maintenance service.
func NewService(repo maintenanceRepository, assets assetChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("maintenance repository required")
	}
	if assets == nil {
		return nil, fmt.Errorf("asset repository required")
	}
	return &service{repo: repo, assets: assets}, nil
}

// MaintenanceDTO projects every stored field plus the asset name and code.
type MaintenanceDTO struct {
	ID              uint                  `json:"maintenance_id"`
	AssetID         uint                  `json:"asset_id"`
	AssetName       string                `json:"asset_name"`
	AssetCode       string                `json:"asset_code"`
	MaintenanceType enums.MaintenanceType `json:"maintenance_type"`
	PerformedOn     types.Date            `json:"performed_on"`
	PerformedBy     string                `json:"performed_by"`
	Cost            decimal.Decimal       `json:"cost"`
	Remarks         *string               `json:"remarks"`
	NextMaintenance *types.Date           `json:"next_maintenance_date"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// MaintenanceInput is the create/replace payload.
type MaintenanceInput struct {
	AssetID         uint            `json:"asset_id" validate:"required"`
	MaintenanceType string          `json:"maintenance_type" validate:"required"`
	PerformedOn     types.Date      `json:"performed_on"`
	PerformedBy     string          `json:"performed_by" validate:"required,max=200"`
	Cost            decimal.Decimal `json:"cost"`
	Remarks         *string         `json:"remarks"`
	NextMaintenance *types.Date     `json:"next_maintenance_date"`
}

// MaintenancePatch is the partial-update payload.
type MaintenancePatch struct {
	AssetID         *uint            `json:"asset_id"`
	MaintenanceType *string          `json:"maintenance_type"`
	PerformedOn     *types.Date      `json:"performed_on"`
	PerformedBy     *string          `json:"performed_by" validate:"omitempty,max=200"`
	Cost            *decimal.Decimal `json:"cost"`
	Remarks         *string          `json:"remarks"`
	NextMaintenance *types.Date      `json:"next_maintenance_date"`
}

// FromModel projects a stored maintenance record.
func FromModel(maintenance *models.Maintenance) *MaintenanceDTO {
	dto := &MaintenanceDTO{
		ID:              maintenance.ID,
		AssetID:         maintenance.AssetID,
		MaintenanceType: maintenance.MaintenanceType,
		PerformedOn:     types.NewDate(maintenance.PerformedOn),
		PerformedBy:     maintenance.PerformedBy,
		Cost:            maintenance.Cost,
		Remarks:         maintenance.Remarks,
		CreatedAt:       maintenance.CreatedAt,
		UpdatedAt:       maintenance.UpdatedAt,
	}
	if maintenance.NextMaintenance != nil {
		d := types.NewDate(*maintenance.NextMaintenance)
		dto.NextMaintenance = &d
	}
	if maintenance.Asset != nil {
		dto.AssetName = maintenance.Asset.AssetName
		dto.AssetCode = maintenance.Asset.AssetCode
	}
	return dto
}

func projectAll(rows []models.Maintenance) []MaintenanceDTO {
	out := make([]MaintenanceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func (s *service) List(ctx context.Context) ([]MaintenanceDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list maintenances")
	}
	return projectAll(rows), nil
}

func (s *service) ByAsset(ctx context.Context, assetID uint) ([]MaintenanceDTO, error) {
	if err := s.requireAsset(ctx, assetID); err != nil {
		return nil, err
	}
	rows, err := s.repo.FindByAsset(ctx, assetID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list maintenances by asset")
	}
	return projectAll(rows), nil
}

func (s *service) Get(ctx context.Context, id uint) (*MaintenanceDTO, error) {
	maintenance, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(maintenance), nil
}

func (s *service) Create(ctx context.Context, input MaintenanceInput) (*MaintenanceDTO, error) {
	maintenanceType, err := s.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}
	maintenance := &models.Maintenance{
		AssetID:         input.AssetID,
		MaintenanceType: maintenanceType,
		PerformedOn:     input.PerformedOn.Time,
		PerformedBy:     input.PerformedBy,
		Cost:            input.Cost,
		Remarks:         input.Remarks,
		NextMaintenance: optionalTime(input.NextMaintenance),
	}
	if err := s.repo.Create(ctx, maintenance); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create maintenance")
	}
	return s.Get(ctx, maintenance.ID)
}

func (s *service) Replace(ctx context.Context, id uint, input MaintenanceInput) (*MaintenanceDTO, error) {
	maintenance, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	maintenanceType, err := s.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}
	maintenance.AssetID = input.AssetID
	maintenance.MaintenanceType = maintenanceType
	maintenance.PerformedOn = input.PerformedOn.Time
	maintenance.PerformedBy = input.PerformedBy
	maintenance.Cost = input.Cost
	maintenance.Remarks = input.Remarks
	maintenance.NextMaintenance = optionalTime(input.NextMaintenance)
	if err := s.repo.Save(ctx, maintenance); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update maintenance")
	}
	return s.Get(ctx, maintenance.ID)
}

func (s *service) Patch(ctx context.Context, id uint, input MaintenancePatch) (*MaintenanceDTO, error) {
	maintenance, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.AssetID != nil {
		if err := s.requireAsset(ctx, *input.AssetID); err != nil {
			return nil, err
		}
		maintenance.AssetID = *input.AssetID
	}
	if input.MaintenanceType != nil {
		maintenanceType, err := enums.ParseMaintenanceType(*input.MaintenanceType)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error()).
				WithDetails(map[string]string{"maintenance_type": "must be one of preventive, corrective, emergency, upgrade"})
		}
		maintenance.MaintenanceType = maintenanceType
	}
	if input.PerformedOn != nil {
		maintenance.PerformedOn = input.PerformedOn.Time
	}
	if input.PerformedBy != nil {
		maintenance.PerformedBy = *input.PerformedBy
	}
	if input.Cost != nil {
		if err := validateCost(*input.Cost); err != nil {
			return nil, err
		}
		maintenance.Cost = *input.Cost
	}
	if input.Remarks != nil {
		maintenance.Remarks = input.Remarks
	}
	if input.NextMaintenance != nil {
		maintenance.NextMaintenance = optionalTime(input.NextMaintenance)
	}
	if err := s.repo.Save(ctx, maintenance); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update maintenance")
	}
	return s.Get(ctx, maintenance.ID)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "maintenance not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete maintenance")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uint) (*models.Maintenance, error) {
	maintenance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "maintenance not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load maintenance")
	}
	return maintenance, nil
}

func (s *service) validateInput(ctx context.Context, input MaintenanceInput) (enums.MaintenanceType, error) {
	if input.PerformedOn.IsZero() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "performed_on is required")
	}
	maintenanceType, err := enums.ParseMaintenanceType(input.MaintenanceType)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, err.Error()).
			WithDetails(map[string]string{"maintenance_type": "must be one of preventive, corrective, emergency, upgrade"})
	}
	if err := validateCost(input.Cost); err != nil {
		return "", err
	}
	if err := s.requireAsset(ctx, input.AssetID); err != nil {
		return "", err
	}
	return maintenanceType, nil
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

func validateCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "cost must be non-negative").
			WithDetails(map[string]string{"cost": "must be non-negative"})
	}
	if !cost.Equal(cost.Round(2)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "cost allows at most two decimal places").
			WithDetails(map[string]string{"cost": "at most two decimal places"})
	}
	return nil
}

func optionalTime(d *types.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
