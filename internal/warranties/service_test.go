package warranties

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
	"github.com/tracelabs/assetbook-backend/pkg/types"
)

type stubWarrantyRepo struct {
	stored   *models.Warranty
	rows     []models.Warranty
	rangeErr error

	lastFrom time.Time
	lastTo   time.Time
}

func (s *stubWarrantyRepo) Create(_ context.Context, warranty *models.Warranty) error {
	warranty.ID = 1
	s.stored = warranty
	return nil
}

func (s *stubWarrantyRepo) FindByID(_ context.Context, id uint) (*models.Warranty, error) {
	if s.stored == nil || s.stored.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.stored, nil
}

func (s *stubWarrantyRepo) List(_ context.Context) ([]models.Warranty, error) {
	return s.rows, nil
}

func (s *stubWarrantyRepo) FindExpiringBetween(_ context.Context, from, to time.Time) ([]models.Warranty, error) {
	s.lastFrom = from
	s.lastTo = to
	return s.rows, s.rangeErr
}

func (s *stubWarrantyRepo) Save(_ context.Context, warranty *models.Warranty) error {
	s.stored = warranty
	return nil
}

func (s *stubWarrantyRepo) Delete(_ context.Context, _ uint) error {
	return nil
}

type stubAssetChecker struct {
	exists bool
	err    error
}

func (s stubAssetChecker) Exists(_ context.Context, _ uint) (bool, error) {
	return s.exists, s.err
}

func mustDate(t *testing.T, value string) types.Date {
	t.Helper()
	d, err := types.ParseDate(value)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}

func TestWarrantyServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(nil, stubAssetChecker{}); err == nil {
		t.Fatal("expected error without repo")
	}
	if _, err := NewService(&stubWarrantyRepo{}, nil); err == nil {
		t.Fatal("expected error without asset checker")
	}
}

func TestExpiringSoonWindow(t *testing.T) {
	repo := &stubWarrantyRepo{}
	svc, err := NewService(repo, stubAssetChecker{exists: true})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.(*service).now = func() time.Time {
		return time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	}

	if _, err := svc.ExpiringSoon(context.Background(), 10); err != nil {
		t.Fatalf("expiring soon: %v", err)
	}

	wantFrom := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC)
	if !repo.lastFrom.Equal(wantFrom) {
		t.Fatalf("window start: want %v got %v", wantFrom, repo.lastFrom)
	}
	if !repo.lastTo.Equal(wantTo) {
		t.Fatalf("window end: want %v got %v", wantTo, repo.lastTo)
	}
}

func TestExpiringSoonDefaultWindow(t *testing.T) {
	repo := &stubWarrantyRepo{}
	svc, _ := NewService(repo, stubAssetChecker{exists: true})
	svc.(*service).now = func() time.Time {
		return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	}

	if _, err := svc.ExpiringSoon(context.Background(), DefaultExpiryWindowDays); err != nil {
		t.Fatalf("expiring soon: %v", err)
	}
	wantTo := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	if !repo.lastTo.Equal(wantTo) {
		t.Fatalf("default window end: want %v got %v", wantTo, repo.lastTo)
	}
}

func TestExpiringSoonNegativeDays(t *testing.T) {
	svc, _ := NewService(&stubWarrantyRepo{}, stubAssetChecker{exists: true})

	_, err := svc.ExpiringSoon(context.Background(), -1)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWarrantyCreateRejectsInvertedDates(t *testing.T) {
	svc, _ := NewService(&stubWarrantyRepo{}, stubAssetChecker{exists: true})

	input := WarrantyInput{
		AssetID:   1,
		StartDate: mustDate(t, "2024-06-01"),
		EndDate:   mustDate(t, "2024-05-01"),
	}
	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for end before start, got %v", err)
	}
}

func TestWarrantyCreateRequiresDates(t *testing.T) {
	svc, _ := NewService(&stubWarrantyRepo{}, stubAssetChecker{exists: true})

	_, err := svc.Create(context.Background(), WarrantyInput{AssetID: 1, EndDate: mustDate(t, "2025-01-01")})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing start_date, got %v", err)
	}
}

func TestWarrantyCreateUnknownAsset(t *testing.T) {
	svc, _ := NewService(&stubWarrantyRepo{}, stubAssetChecker{exists: false})

	input := WarrantyInput{
		AssetID:   99,
		StartDate: mustDate(t, "2024-01-01"),
		EndDate:   mustDate(t, "2025-01-01"),
	}
	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing asset, got %v", err)
	}
}

func TestWarrantyCreateSameDayWindow(t *testing.T) {
	repo := &stubWarrantyRepo{}
	svc, _ := NewService(repo, stubAssetChecker{exists: true})

	input := WarrantyInput{
		AssetID:   1,
		StartDate: mustDate(t, "2024-06-01"),
		EndDate:   mustDate(t, "2024-06-01"),
	}
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("single-day warranty must be valid: %v", err)
	}
}
