package invoices

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	"github.com/tracelabs/assetbook-backend/pkg/enums"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
	"github.com/tracelabs/assetbook-backend/pkg/types"
)

type stubInvoiceRepo struct {
	stored    *models.Invoice
	createErr error
}

func (s *stubInvoiceRepo) Create(_ context.Context, invoice *models.Invoice) error {
	if s.createErr != nil {
		return s.createErr
	}
	invoice.ID = 1
	s.stored = invoice
	return nil
}

func (s *stubInvoiceRepo) FindByID(_ context.Context, id uint) (*models.Invoice, error) {
	if s.stored == nil || s.stored.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.stored, nil
}

func (s *stubInvoiceRepo) List(_ context.Context) ([]models.Invoice, error) {
	if s.stored == nil {
		return nil, nil
	}
	return []models.Invoice{*s.stored}, nil
}

func (s *stubInvoiceRepo) Save(_ context.Context, invoice *models.Invoice) error {
	s.stored = invoice
	return nil
}

func (s *stubInvoiceRepo) Delete(_ context.Context, _ uint) error {
	return nil
}

type stubVendorChecker struct {
	exists bool
}

func (s stubVendorChecker) Exists(_ context.Context, _ uint) (bool, error) {
	return s.exists, nil
}

func validInvoiceInput(t *testing.T) InvoiceInput {
	t.Helper()
	date, err := types.ParseDate("2024-02-01")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return InvoiceInput{
		InvoiceNumber: "INV-100",
		VendorID:      1,
		InvoiceDate:   date,
		TotalAmount:   decimal.RequireFromString("499.99"),
	}
}

func TestInvoiceCreateDefaultsCurrency(t *testing.T) {
	repo := &stubInvoiceRepo{}
	svc, err := NewService(repo, stubVendorChecker{exists: true})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), validInvoiceInput(t))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Currency != enums.CurrencyUSD {
		t.Fatalf("empty currency must default to USD, got %s", dto.Currency)
	}
}

func TestInvoiceCreateNormalizesCurrency(t *testing.T) {
	repo := &stubInvoiceRepo{}
	svc, _ := NewService(repo, stubVendorChecker{exists: true})

	input := validInvoiceInput(t)
	input.Currency = "eur"
	dto, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Currency != enums.Currency("EUR") {
		t.Fatalf("expected EUR, got %s", dto.Currency)
	}
}

func TestInvoiceCreateInvalidCurrency(t *testing.T) {
	svc, _ := NewService(&stubInvoiceRepo{}, stubVendorChecker{exists: true})

	input := validInvoiceInput(t)
	input.Currency = "DOLLARS"
	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestInvoiceCreateRejectsZeroAmount(t *testing.T) {
	svc, _ := NewService(&stubInvoiceRepo{}, stubVendorChecker{exists: true})

	input := validInvoiceInput(t)
	input.TotalAmount = decimal.Zero
	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for 0.00 amount, got %v", err)
	}
}

func TestInvoiceCreateUnknownVendor(t *testing.T) {
	svc, _ := NewService(&stubInvoiceRepo{}, stubVendorChecker{exists: false})

	_, err := svc.Create(context.Background(), validInvoiceInput(t))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing vendor, got %v", err)
	}
}

func TestInvoiceCreateDuplicateNumber(t *testing.T) {
	repo := &stubInvoiceRepo{createErr: errors.New("UNIQUE constraint failed: invoices.invoice_number")}
	svc, _ := NewService(repo, stubVendorChecker{exists: true})

	_, err := svc.Create(context.Background(), validInvoiceInput(t))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for duplicate number, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["invoice_number"] == "" {
		t.Fatalf("expected invoice_number detail, got %v", typed.Details())
	}
}

func TestInvoiceGetNotFound(t *testing.T) {
	svc, _ := NewService(&stubInvoiceRepo{}, stubVendorChecker{exists: true})

	_, err := svc.Get(context.Background(), 7)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
