package invoices

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
)

type stubMappingRepo struct {
	stored    *models.AssetInvoiceMapping
	createErr error
}

func (s *stubMappingRepo) Create(_ context.Context, mapping *models.AssetInvoiceMapping) error {
	if s.createErr != nil {
		return s.createErr
	}
	mapping.ID = 1
	s.stored = mapping
	return nil
}

func (s *stubMappingRepo) FindByID(_ context.Context, id uint) (*models.AssetInvoiceMapping, error) {
	if s.stored == nil || s.stored.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.stored, nil
}

func (s *stubMappingRepo) List(_ context.Context) ([]models.AssetInvoiceMapping, error) {
	if s.stored == nil {
		return nil, nil
	}
	return []models.AssetInvoiceMapping{*s.stored}, nil
}

func (s *stubMappingRepo) Save(_ context.Context, mapping *models.AssetInvoiceMapping) error {
	s.stored = mapping
	return nil
}

func (s *stubMappingRepo) Delete(_ context.Context, _ uint) error {
	return nil
}

type stubChecker struct {
	exists bool
}

func (s stubChecker) Exists(_ context.Context, _ uint) (bool, error) {
	return s.exists, nil
}

func TestMappingCreateSuccess(t *testing.T) {
	repo := &stubMappingRepo{}
	svc, err := NewMappingService(repo, stubChecker{exists: true}, stubChecker{exists: true})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), MappingInput{AssetID: 3, InvoiceID: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.AssetID != 3 || dto.InvoiceID != 5 {
		t.Fatalf("unexpected dto %+v", dto)
	}
}

func TestMappingCreateDuplicatePair(t *testing.T) {
	repo := &stubMappingRepo{createErr: errors.New("UNIQUE constraint failed: index 'uq_asset_invoice'")}
	svc, _ := NewMappingService(repo, stubChecker{exists: true}, stubChecker{exists: true})

	_, err := svc.Create(context.Background(), MappingInput{AssetID: 3, InvoiceID: 5})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for duplicate link, got %v", err)
	}
}

func TestMappingCreateUnknownAsset(t *testing.T) {
	svc, _ := NewMappingService(&stubMappingRepo{}, stubChecker{exists: false}, stubChecker{exists: true})

	_, err := svc.Create(context.Background(), MappingInput{AssetID: 99, InvoiceID: 5})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing asset, got %v", err)
	}
}

func TestMappingCreateUnknownInvoice(t *testing.T) {
	svc, _ := NewMappingService(&stubMappingRepo{}, stubChecker{exists: true}, stubChecker{exists: false})

	_, err := svc.Create(context.Background(), MappingInput{AssetID: 3, InvoiceID: 99})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing invoice, got %v", err)
	}
}
