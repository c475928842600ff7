package locations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
)

type locationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	FindByID(ctx context.Context, id uint) (*models.Location, error)
	List(ctx context.Context) ([]models.Location, error)
	Save(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uint) error
}

// Service exposes location operations.
type Service interface {
	List(ctx context.Context) ([]LocationDTO, error)
	Get(ctx context.Context, id uint) (*LocationDTO, error)
	Create(ctx context.Context, input LocationInput) (*LocationDTO, error)
	Replace(ctx context.Context, id uint, input LocationInput) (*LocationDTO, error)
	Patch(ctx context.Context, id uint, input LocationPatch) (*LocationDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo locationRepository
}

// NewService builds a location service.
func NewService(repo locationRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("location repository required")
	}
	return &service{repo: repo}, nil
}

// LocationDTO projects every stored field.
type LocationDTO struct {
	ID           uint      `json:"location_id"`
	LocationName string    `json:"location_name"`
	Address      string    `json:"address"`
	City         *string   `json:"city"`
	State        *string   `json:"state"`
	Country      *string   `json:"country"`
	PostalCode   *string   `json:"postal_code"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LocationInput is the create/replace payload.
type LocationInput struct {
	LocationName string  `json:"location_name" validate:"required,max=100"`
	Address      string  `json:"address" validate:"required"`
	City         *string `json:"city" validate:"omitempty,max=100"`
	State        *string `json:"state" validate:"omitempty,max=100"`
	Country      *string `json:"country" validate:"omitempty,max=100"`
	PostalCode   *string `json:"postal_code" validate:"omitempty,max=20"`
}

// LocationPatch is the partial-update payload.
type LocationPatch struct {
	LocationName *string `json:"location_name" validate:"omitempty,max=100"`
	Address      *string `json:"address"`
	City         *string `json:"city" validate:"omitempty,max=100"`
	State        *string `json:"state" validate:"omitempty,max=100"`
	Country      *string `json:"country" validate:"omitempty,max=100"`
	PostalCode   *string `json:"postal_code" validate:"omitempty,max=20"`
}

// FromModel projects a stored location.
func FromModel(location *models.Location) *LocationDTO {
	return &LocationDTO{
		ID:           location.ID,
		LocationName: location.LocationName,
		Address:      location.Address,
		City:         location.City,
		State:        location.State,
		Country:      location.Country,
		PostalCode:   location.PostalCode,
		CreatedAt:    location.CreatedAt,
		UpdatedAt:    location.UpdatedAt,
	}
}

func (s *service) List(ctx context.Context) ([]LocationDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list locations")
	}
	out := make([]LocationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uint) (*LocationDTO, error) {
	location, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(location), nil
}

func (s *service) Create(ctx context.Context, input LocationInput) (*LocationDTO, error) {
	location := &models.Location{
		LocationName: input.LocationName,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		Country:      input.Country,
		PostalCode:   input.PostalCode,
	}
	if err := s.repo.Create(ctx, location); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create location")
	}
	return FromModel(location), nil
}

func (s *service) Replace(ctx context.Context, id uint, input LocationInput) (*LocationDTO, error) {
	location, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	location.LocationName = input.LocationName
	location.Address = input.Address
	location.City = input.City
	location.State = input.State
	location.Country = input.Country
	location.PostalCode = input.PostalCode
	if err := s.repo.Save(ctx, location); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update location")
	}
	return FromModel(location), nil
}

func (s *service) Patch(ctx context.Context, id uint, input LocationPatch) (*LocationDTO, error) {
	location, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.LocationName != nil {
		location.LocationName = *input.LocationName
	}
	if input.Address != nil {
		location.Address = *input.Address
	}
	if input.City != nil {
		location.City = input.City
	}
	if input.State != nil {
		location.State = input.State
	}
	if input.Country != nil {
		location.Country = input.Country
	}
	if input.PostalCode != nil {
		location.PostalCode = input.PostalCode
	}
	if err := s.repo.Save(ctx, location); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update location")
	}
	return FromModel(location), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete location")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uint) (*models.Location, error) {
	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load location")
	}
	return location, nil
}
