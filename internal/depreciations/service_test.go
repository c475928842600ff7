package depreciations

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
	"github.com/tracelabs/assetbook-backend/pkg/types"
)

type stubDepreciationRepo struct {
	stored *models.Depreciation
	rows   []models.Depreciation
}

func (s *stubDepreciationRepo) Create(_ context.Context, depreciation *models.Depreciation) error {
	depreciation.ID = 1
	s.stored = depreciation
	return nil
}

func (s *stubDepreciationRepo) FindByID(_ context.Context, id uint) (*models.Depreciation, error) {
	if s.stored == nil || s.stored.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.stored, nil
}

func (s *stubDepreciationRepo) List(_ context.Context) ([]models.Depreciation, error) {
	return s.rows, nil
}

func (s *stubDepreciationRepo) Save(_ context.Context, depreciation *models.Depreciation) error {
	s.stored = depreciation
	return nil
}

func (s *stubDepreciationRepo) Delete(_ context.Context, _ uint) error {
	return nil
}

type stubExistsChecker struct {
	exists bool
}

func (s stubExistsChecker) Exists(_ context.Context, _ uint) (bool, error) {
	return s.exists, nil
}

func validDepreciationInput(t *testing.T) DepreciationInput {
	t.Helper()
	date, err := types.ParseDate("2024-12-31")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return DepreciationInput{
		AssetID:      1,
		MethodID:     2,
		Rate:         decimal.RequireFromString("12.50"),
		BookValue:    decimal.RequireFromString("1400.00"),
		CalculatedOn: date,
	}
}

func TestDepreciationCreateSuccess(t *testing.T) {
	repo := &stubDepreciationRepo{}
	svc, err := NewService(repo, stubExistsChecker{exists: true}, stubExistsChecker{exists: true})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), validDepreciationInput(t))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !dto.Rate.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("unexpected rate %s", dto.Rate)
	}
}

func TestDepreciationCreateNegativeRate(t *testing.T) {
	svc, _ := NewService(&stubDepreciationRepo{}, stubExistsChecker{exists: true}, stubExistsChecker{exists: true})

	input := validDepreciationInput(t)
	input.Rate = decimal.RequireFromString("-10.00")
	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["rate"] == "" {
		t.Fatalf("expected rate detail, got %v", typed.Details())
	}
}

func TestDepreciationCreateRateTooPrecise(t *testing.T) {
	svc, _ := NewService(&stubDepreciationRepo{}, stubExistsChecker{exists: true}, stubExistsChecker{exists: true})

	input := validDepreciationInput(t)
	input.Rate = decimal.RequireFromString("12.505")
	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for three decimal places, got %v", err)
	}
}

func TestDepreciationCreateZeroBookValueAllowed(t *testing.T) {
	svc, _ := NewService(&stubDepreciationRepo{}, stubExistsChecker{exists: true}, stubExistsChecker{exists: true})

	input := validDepreciationInput(t)
	input.BookValue = decimal.Zero
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("fully depreciated asset must be accepted: %v", err)
	}
}

func TestDepreciationCreateMissingCalculatedOn(t *testing.T) {
	svc, _ := NewService(&stubDepreciationRepo{}, stubExistsChecker{exists: true}, stubExistsChecker{exists: true})

	input := validDepreciationInput(t)
	input.CalculatedOn = types.Date{}
	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDepreciationCreateUnknownMethod(t *testing.T) {
	svc, _ := NewService(&stubDepreciationRepo{}, stubExistsChecker{exists: true}, stubExistsChecker{exists: false})

	_, err := svc.Create(context.Background(), validDepreciationInput(t))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing method, got %v", err)
	}
}

func TestDepreciationPatchKeepsOtherFields(t *testing.T) {
	notes := "year one"
	existing := &models.Depreciation{
		ID:        1,
		AssetID:   1,
		MethodID:  2,
		Rate:      decimal.RequireFromString("12.50"),
		BookValue: decimal.RequireFromString("1400.00"),
		Notes:     &notes,
	}
	repo := &stubDepreciationRepo{stored: existing}
	svc, _ := NewService(repo, stubExistsChecker{exists: true}, stubExistsChecker{exists: true})

	newValue := decimal.RequireFromString("1200.00")
	dto, err := svc.Patch(context.Background(), 1, DepreciationPatch{BookValue: &newValue})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if !dto.BookValue.Equal(newValue) {
		t.Fatalf("book value not updated: %s", dto.BookValue)
	}
	if !dto.Rate.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("rate must survive the patch, got %s", dto.Rate)
	}
	if dto.Notes == nil || *dto.Notes != "year one" {
		t.Fatalf("notes must survive the patch, got %v", dto.Notes)
	}
}

func TestDepreciationGetNotFound(t *testing.T) {
	svc, _ := NewService(&stubDepreciationRepo{}, stubExistsChecker{exists: true}, stubExistsChecker{exists: true})

	_, err := svc.Get(context.Background(), 9)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
