package statuses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db"
	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
)

type statusRepository interface {
	Create(ctx context.Context, status *models.AssetStatus) error
	FindByID(ctx context.Context, id uint) (*models.AssetStatus, error)
	List(ctx context.Context) ([]models.AssetStatus, error)
	Save(ctx context.Context, status *models.AssetStatus) error
	Delete(ctx context.Context, id uint) error
}

// Service exposes asset status operations.
type Service interface {
	List(ctx context.Context) ([]StatusDTO, error)
	Get(ctx context.Context, id uint) (*StatusDTO, error)
	Create(ctx context.Context, input StatusInput) (*StatusDTO, error)
	Replace(ctx context.Context, id uint, input StatusInput) (*StatusDTO, error)
	Patch(ctx context.Context, id uint, input StatusPatch) (*StatusDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo statusRepository
}

// NewService builds a status service.
func NewService(repo statusRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("status repository required")
	}
	return &service{repo: repo}, nil
}

// StatusDTO projects every stored field.
type StatusDTO struct {
	ID          uint      `json:"status_id"`
	StatusName  string    `json:"status_name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StatusInput is the create/replace payload.
type StatusInput struct {
	StatusName  string  `json:"status_name" validate:"required,max=50"`
	Description *string `json:"description"`
}

// StatusPatch is the partial-update payload.
type StatusPatch struct {
	StatusName  *string `json:"status_name" validate:"omitempty,max=50"`
	Description *string `json:"description"`
}

// FromModel projects a stored status.
func FromModel(status *models.AssetStatus) *StatusDTO {
	return &StatusDTO{
		ID:          status.ID,
		StatusName:  status.StatusName,
		Description: status.Description,
		CreatedAt:   status.CreatedAt,
		UpdatedAt:   status.UpdatedAt,
	}
}

func (s *service) List(ctx context.Context) ([]StatusDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list statuses")
	}
	out := make([]StatusDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uint) (*StatusDTO, error) {
	status, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(status), nil
}

func (s *service) Create(ctx context.Context, input StatusInput) (*StatusDTO, error) {
	status := &models.AssetStatus{
		StatusName:  input.StatusName,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, status); err != nil {
		return nil, storeError(err, "create status")
	}
	return FromModel(status), nil
}

func (s *service) Replace(ctx context.Context, id uint, input StatusInput) (*StatusDTO, error) {
	status, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	status.StatusName = input.StatusName
	status.Description = input.Description
	if err := s.repo.Save(ctx, status); err != nil {
		return nil, storeError(err, "update status")
	}
	return FromModel(status), nil
}

func (s *service) Patch(ctx context.Context, id uint, input StatusPatch) (*StatusDTO, error) {
	status, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.StatusName != nil {
		status.StatusName = *input.StatusName
	}
	if input.Description != nil {
		status.Description = input.Description
	}
	if err := s.repo.Save(ctx, status); err != nil {
		return nil, storeError(err, "update status")
	}
	return FromModel(status), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "asset status not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete status")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uint) (*models.AssetStatus, error) {
	status, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset status not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load status")
	}
	return status, nil
}

func storeError(err error, action string) error {
	if db.IsUniqueViolation(err, "status_name") {
		return pkgerrors.New(pkgerrors.CodeValidation, "status_name already in use").
			WithDetails(map[string]string{"status_name": "must be unique"})
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
