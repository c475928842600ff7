package invoices

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
	"github.com/tracelabs/assetbook-backend/pkg/filedoc"
	"github.com/tracelabs/assetbook-backend/pkg/types"
)

var minAmount = decimal.New(1, -2)

type invoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	FindByID(ctx context.Context, id uint) (*models.Invoice, error)
	List(ctx context.Context) ([]models.Invoice, error)
	Save(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id uint) error
}

type vendorChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// Service exposes invoice operations.
type Service interface {
	List(ctx context.Context) ([]InvoiceDTO, error)
	Get(ctx context.Context, id uint) (*InvoiceDTO, error)
	Create(ctx context.Context, input InvoiceInput) (*InvoiceDTO, error)
	Replace(ctx context.Context, id uint, input InvoiceInput) (*InvoiceDTO, error)
	Patch(ctx context.Context, id uint, input InvoicePatch) (*InvoiceDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo    invoiceRepository
	vendors vendorChecker
}

// NewService builds an invoice service.
func NewService(repo invoiceRepository, vendors vendorChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if vendors == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	return &service{repo: repo, vendors: vendors}, nil
}

// InvoiceDTO projects every stored field plus the vendor name and the
// read-only base64 file payload.
type InvoiceDTO struct {
	ID            uint            `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	VendorID      uint            `json:"vendor_id"`
	VendorName    string          `json:"vendor_name"`
	InvoiceDate   types.Date      `json:"invoice_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Currency      enums.Currency  `json:"currency"`
	Description   *string         `json:"description"`

	InvoiceFileName     *string `json:"invoice_file_name"`
	InvoiceFileType     *string `json:"invoice_file_type"`
	InvoiceFileSize     *int    `json:"invoice_file_size"`
	InvoiceFileDataRead *string `json:"invoice_file_data_read"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceInput is the create/replace payload.
type InvoiceInput struct {
	InvoiceNumber string          `json:"invoice_number" validate:"required,max=100"`
	VendorID      uint            `json:"vendor_id" validate:"required"`
	InvoiceDate   types.Date      `json:"invoice_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Currency      string          `json:"currency"`
	Description   *string         `json:"description"`

	InvoiceFileData *string `json:"invoice_file_data"`
	InvoiceFileName *string `json:"invoice_file_name"`
	InvoiceFileType *string `json:"invoice_file_type"`
	InvoiceFileSize *int    `json:"invoice_file_size"`
}

// InvoicePatch is the partial-update payload.
type InvoicePatch struct {
	InvoiceNumber *string          `json:"invoice_number" validate:"omitempty,max=100"`
	VendorID      *uint            `json:"vendor_id"`
	InvoiceDate   *types.Date      `json:"invoice_date"`
	TotalAmount   *decimal.Decimal `json:"total_amount"`
	Currency      *string          `json:"currency"`
	Description   *string          `json:"description"`

	InvoiceFileData *string `json:"invoice_file_data"`
	InvoiceFileName *string `json:"invoice_file_name"`
	InvoiceFileType *string `json:"invoice_file_type"`
	InvoiceFileSize *int    `json:"invoice_file_size"`
}

// FromModel projects a stored invoice.
func FromModel(invoice *models.Invoice) *InvoiceDTO {
	dto := &InvoiceDTO{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		VendorID:      invoice.VendorID,
		InvoiceDate:   types.NewDate(invoice.InvoiceDate),
		TotalAmount:   invoice.TotalAmount,
		Currency:      invoice.Currency,
		Description:   invoice.Description,

		InvoiceFileName:     invoice.InvoiceFile.Name,
		InvoiceFileType:     invoice.InvoiceFile.Type,
		InvoiceFileSize:     invoice.InvoiceFile.Size,
		InvoiceFileDataRead: filedoc.Encode(invoice.InvoiceFile.Data),

		CreatedAt: invoice.CreatedAt,
		UpdatedAt: invoice.UpdatedAt,
	}
	if invoice.Vendor != nil {
		dto.VendorName = invoice.Vendor.VendorName
	}
	return dto
}

func (s *service) List(ctx context.Context) ([]InvoiceDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}
	out := make([]InvoiceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uint) (*InvoiceDTO, error) {
	invoice, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(invoice), nil
}

func (s *service) Create(ctx context.Context, input InvoiceInput) (*InvoiceDTO, error) {
	currency, err := s.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		InvoiceNumber: input.InvoiceNumber,
		VendorID:      input.VendorID,
		InvoiceDate:   input.InvoiceDate.Time,
		TotalAmount:   input.TotalAmount,
		Currency:      currency,
		Description:   input.Description,
	}
	file := filedoc.Input{Data: input.InvoiceFileData, Name: input.InvoiceFileName, Type: input.InvoiceFileType, Size: input.InvoiceFileSize}
	if err := file.Apply(&invoice.InvoiceFile); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, storeError(err, "create invoice")
	}
	return s.Get(ctx, invoice.ID)
}

func (s *service) Replace(ctx context.Context, id uint, input InvoiceInput) (*InvoiceDTO, error) {
	invoice, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	currency, err := s.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}

	invoice.InvoiceNumber = input.InvoiceNumber
	invoice.VendorID = input.VendorID
	invoice.InvoiceDate = input.InvoiceDate.Time
	invoice.TotalAmount = input.TotalAmount
	invoice.Currency = currency
	invoice.Description = input.Description

	invoice.InvoiceFile = models.FileDocument{}
	file := filedoc.Input{Data: input.InvoiceFileData, Name: input.InvoiceFileName, Type: input.InvoiceFileType, Size: input.InvoiceFileSize}
	if err := file.Apply(&invoice.InvoiceFile); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, invoice); err != nil {
		return nil, storeError(err, "update invoice")
	}
	return s.Get(ctx, invoice.ID)
}

func (s *service) Patch(ctx context.Context, id uint, input InvoicePatch) (*InvoiceDTO, error) {
	invoice, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.VendorID != nil {
		if err := s.requireVendor(ctx, *input.VendorID); err != nil {
			return nil, err
		}
		invoice.VendorID = *input.VendorID
	}
	if input.InvoiceNumber != nil {
		invoice.InvoiceNumber = *input.InvoiceNumber
	}
	if input.InvoiceDate != nil {
		invoice.InvoiceDate = input.InvoiceDate.Time
	}
	if input.TotalAmount != nil {
		if err := validateAmount(*input.TotalAmount); err != nil {
			return nil, err
		}
		invoice.TotalAmount = *input.TotalAmount
	}
	if input.Currency != nil {
		currency, err := enums.ParseCurrency(*input.Currency)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error()).
				WithDetails(map[string]string{"currency": "must be a 3-letter code"})
		}
		invoice.Currency = currency
	}
	if input.Description != nil {
		invoice.Description = input.Description
	}

	file := filedoc.Input{Data: input.InvoiceFileData, Name: input.InvoiceFileName, Type: input.InvoiceFileType, Size: input.InvoiceFileSize}
	if err := file.Apply(&invoice.InvoiceFile); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, invoice); err != nil {
		return nil, storeError(err, "update invoice")
	}
	return s.Get(ctx, invoice.ID)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete invoice")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uint) (*models.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	return invoice, nil
}

func (s *service) validateInput(ctx context.Context, input InvoiceInput) (enums.Currency, error) {
	if input.InvoiceDate.IsZero() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invoice_date is required")
	}
	if err := validateAmount(input.TotalAmount); err != nil {
		return "", err
	}
	currency, err := enums.ParseCurrency(input.Currency)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, err.Error()).
			WithDetails(map[string]string{"currency": "must be a 3-letter code"})
	}
	if err := s.requireVendor(ctx, input.VendorID); err != nil {
		return "", err
	}
	return currency, nil
}

func (s *service) requireVendor(ctx context.Context, id uint) error {
	ok, err := s.vendors.Exists(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check vendor")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThan(minAmount) {
		return pkgerrors.New(pkgerrors.CodeValidation, "total_amount must be at least 0.01").
			WithDetails(map[string]string{"total_amount": "must be at least 0.01"})
	}
	if !amount.Equal(amount.Round(2)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "total_amount allows at most two decimal places").
			WithDetails(map[string]string{"total_amount": "at most two decimal places"})
	}
	return nil
}

func storeError(err error, action string) error {
	if db.IsUniqueViolation(err, "invoice_number") {
		return pkgerrors.New(pkgerrors.CodeValidation, "invoice_number already in use").
			WithDetails(map[string]string{"invoice_number": "must be unique"})
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
