package maintenances

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
	"github.com/tracelabs/assetbook-backend/pkg/types"
)

type stubMaintenanceRepo struct {
	stored *models.Maintenance
	rows   []models.Maintenance

	lastAssetID uint
}

func (s *stubMaintenanceRepo) Create(_ context.Context, maintenance *models.Maintenance) error {
	maintenance.ID = 1
	s.stored = maintenance
	return nil
}

func (s *stubMaintenanceRepo) FindByID(_ context.Context, id uint) (*models.Maintenance, error) {
	if s.stored == nil || s.stored.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.stored, nil
}

func (s *stubMaintenanceRepo) List(_ context.Context) ([]models.Maintenance, error) {
	return s.rows, nil
}

func (s *stubMaintenanceRepo) FindByAsset(_ context.Context, assetID uint) ([]models.Maintenance, error) {
	s.lastAssetID = assetID
	return s.rows, nil
}

func (s *stubMaintenanceRepo) Save(_ context.Context, maintenance *models.Maintenance) error {
	s.stored = maintenance
	return nil
}

func (s *stubMaintenanceRepo) Delete(_ context.Context, _ uint) error {
	return nil
}

type stubAssetChecker struct {
	exists bool
}

func (s stubAssetChecker) Exists(_ context.Context, _ uint) (bool, error) {
	return s.exists, nil
}

func validMaintenanceInput(t *testing.T) MaintenanceInput {
	t.Helper()
	date, err := types.ParseDate("2024-05-20")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return MaintenanceInput{
		AssetID:         1,
		MaintenanceType: "preventive",
		PerformedOn:     date,
		PerformedBy:     "Tech Shop",
		Cost:            decimal.RequireFromString("40.00"),
	}
}

func TestMaintenanceCreateSuccess(t *testing.T) {
	repo := &stubMaintenanceRepo{}
	svc, err := NewService(repo, stubAssetChecker{exists: true})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), validMaintenanceInput(t))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.MaintenanceType != "preventive" {
		t.Fatalf("unexpected type %s", dto.MaintenanceType)
	}
}

func TestMaintenanceCreateUnknownType(t *testing.T) {
	svc, _ := NewService(&stubMaintenanceRepo{}, stubAssetChecker{exists: true})

	input := validMaintenanceInput(t)
	input.MaintenanceType = "routine"
	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["maintenance_type"] == "" {
		t.Fatalf("expected maintenance_type detail, got %v", typed.Details())
	}
}

func TestMaintenanceCreateNegativeCost(t *testing.T) {
	svc, _ := NewService(&stubMaintenanceRepo{}, stubAssetChecker{exists: true})

	input := validMaintenanceInput(t)
	input.Cost = decimal.RequireFromString("-5.00")
	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMaintenanceCreateZeroCostAllowed(t *testing.T) {
	svc, _ := NewService(&stubMaintenanceRepo{}, stubAssetChecker{exists: true})

	input := validMaintenanceInput(t)
	input.Cost = decimal.Zero
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("free maintenance must be accepted: %v", err)
	}
}

func TestByAssetUnknownAsset(t *testing.T) {
	svc, _ := NewService(&stubMaintenanceRepo{}, stubAssetChecker{exists: false})

	_, err := svc.ByAsset(context.Background(), 44)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing asset, got %v", err)
	}
}

func TestByAssetPassesID(t *testing.T) {
	repo := &stubMaintenanceRepo{}
	svc, _ := NewService(repo, stubAssetChecker{exists: true})

	if _, err := svc.ByAsset(context.Background(), 7); err != nil {
		t.Fatalf("by asset: %v", err)
	}
	if repo.lastAssetID != 7 {
		t.Fatalf("expected asset id 7, got %d", repo.lastAssetID)
	}
}
