package vendors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
)

type vendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	FindByID(ctx context.Context, id uint) (*models.Vendor, error)
	List(ctx context.Context) ([]models.Vendor, error)
	ListActive(ctx context.Context) ([]models.Vendor, error)
	Save(ctx context.Context, vendor *models.Vendor) error
	Delete(ctx context.Context, id uint) error
}

// Service exposes vendor operations.
type Service interface {
	List(ctx context.Context) ([]VendorDTO, error)
	Active(ctx context.Context) ([]VendorDTO, error)
	Get(ctx context.Context, id uint) (*VendorDTO, error)
	Create(ctx context.Context, input VendorInput) (*VendorDTO, error)
	Replace(ctx context.Context, id uint, input VendorInput) (*VendorDTO, error)
	Patch(ctx context.Context, id uint, input VendorPatch) (*VendorDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo vendorRepository
}

// NewService builds a vendor service.
func NewService(repo vendorRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	return &service{repo: repo}, nil
}

// VendorDTO projects every stored field.
type VendorDTO struct {
	ID            uint      `json:"vendor_id"`
	VendorName    string    `json:"vendor_name"`
	ContactPerson *string   `json:"contact_person"`
	ContactNumber *string   `json:"contact_number"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	City          *string   `json:"city"`
	State         *string   `json:"state"`
	Country       *string   `json:"country"`
	PostalCode    *string   `json:"postal_code"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// VendorInput is the create/replace payload. IsActive defaults to true when
// omitted.
type VendorInput struct {
	VendorName    string  `json:"vendor_name" validate:"required,max=200"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=100"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=20"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	State         *string `json:"state" validate:"omitempty,max=100"`
	Country       *string `json:"country" validate:"omitempty,max=100"`
	PostalCode    *string `json:"postal_code" validate:"omitempty,max=20"`
	IsActive      *bool   `json:"is_active"`
}

// VendorPatch is the partial-update payload.
type VendorPatch struct {
	VendorName    *string `json:"vendor_name" validate:"omitempty,max=200"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=100"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=20"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	State         *string `json:"state" validate:"omitempty,max=100"`
	Country       *string `json:"country" validate:"omitempty,max=100"`
	PostalCode    *string `json:"postal_code" validate:"omitempty,max=20"`
	IsActive      *bool   `json:"is_active"`
}

// FromModel projects a stored vendor.
func FromModel(vendor *models.Vendor) *VendorDTO {
	return &VendorDTO{
		ID:            vendor.ID,
		VendorName:    vendor.VendorName,
		ContactPerson: vendor.ContactPerson,
		ContactNumber: vendor.ContactNumber,
		Email:         vendor.Email,
		Address:       vendor.Address,
		City:          vendor.City,
		State:         vendor.State,
		Country:       vendor.Country,
		PostalCode:    vendor.PostalCode,
		IsActive:      vendor.IsActive,
		CreatedAt:     vendor.CreatedAt,
		UpdatedAt:     vendor.UpdatedAt,
	}
}

func projectAll(rows []models.Vendor) []VendorDTO {
	out := make([]VendorDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func (s *service) List(ctx context.Context) ([]VendorDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}
	return projectAll(rows), nil
}

func (s *service) Active(ctx context.Context) ([]VendorDTO, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active vendors")
	}
	return projectAll(rows), nil
}

func (s *service) Get(ctx context.Context, id uint) (*VendorDTO, error) {
	vendor, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(vendor), nil
}

func (s *service) Create(ctx context.Context, input VendorInput) (*VendorDTO, error) {
	vendor := &models.Vendor{
		VendorName:    input.VendorName,
		ContactPerson: input.ContactPerson,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		Address:       input.Address,
		City:          input.City,
		State:         input.State,
		Country:       input.Country,
		PostalCode:    input.PostalCode,
		IsActive:      true,
	}
	if input.IsActive != nil {
		vendor.IsActive = *input.IsActive
	}
	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
	}
	return FromModel(vendor), nil
}

func (s *service) Replace(ctx context.Context, id uint, input VendorInput) (*VendorDTO, error) {
	vendor, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	vendor.VendorName = input.VendorName
	vendor.ContactPerson = input.ContactPerson
	vendor.ContactNumber = input.ContactNumber
	vendor.Email = input.Email
	vendor.Address = input.Address
	vendor.City = input.City
	vendor.State = input.State
	vendor.Country = input.Country
	vendor.PostalCode = input.PostalCode
	vendor.IsActive = true
	if input.IsActive != nil {
		vendor.IsActive = *input.IsActive
	}
	if err := s.repo.Save(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
	}
	return FromModel(vendor), nil
}

func (s *service) Patch(ctx context.Context, id uint, input VendorPatch) (*VendorDTO, error) {
	vendor, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.VendorName != nil {
		vendor.VendorName = *input.VendorName
	}
	if input.ContactPerson != nil {
		vendor.ContactPerson = input.ContactPerson
	}
	if input.ContactNumber != nil {
		vendor.ContactNumber = input.ContactNumber
	}
	if input.Email != nil {
		vendor.Email = input.Email
	}
	if input.Address != nil {
		vendor.Address = input.Address
	}
	if input.City != nil {
		vendor.City = input.City
	}
	if input.State != nil {
		vendor.State = input.State
	}
	if input.Country != nil {
		vendor.Country = input.Country
	}
	if input.PostalCode != nil {
		vendor.PostalCode = input.PostalCode
	}
	if input.IsActive != nil {
		vendor.IsActive = *input.IsActive
	}
	if err := s.repo.Save(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
	}
	return FromModel(vendor), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vendor")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uint) (*models.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	return vendor, nil
}
