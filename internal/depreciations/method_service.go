package depreciations

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

type methodRepository interface {
	Create(ctx context.Context, method *models.DepreciationMethod) error
	FindByID(ctx context.Context, id uint) (*models.DepreciationMethod, error)
	List(ctx context.Context) ([]models.DepreciationMethod, error)
	Save(ctx context.Context, method *models.DepreciationMethod) error
	Delete(ctx context.Context, id uint) error
}

// MethodService exposes depreciation method operations.
type MethodService interface {
	List(ctx context.Context) ([]MethodDTO, error)
	Get(ctx context.Context, id uint) (*MethodDTO, error)
	Create(ctx context.Context, input MethodInput) (*MethodDTO, error)
	Replace(ctx context.Context, id uint, input MethodInput) (*MethodDTO, error)
	Patch(ctx context.Context, id uint, input MethodPatch) (*MethodDTO, error)
	Delete(ctx context.Context, id uint) error
}

type methodService struct {
	repo methodRepository
}

// NewMethodService builds a method service.
func NewMethodService(repo methodRepository) (MethodService, error) {
	if repo == nil {
		return nil, fmt.Errorf("method repository required")
	}
	return &methodService{repo: repo}, nil
}

// MethodDTO projects every stored field.
type MethodDTO struct {
	ID          uint      `json:"method_id"`
	MethodName  string    `json:"method_name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MethodInput is the create/replace payload.
type MethodInput struct {
	MethodName  string  `json:"method_name" validate:"required,max=100"`
	Description *string `json:"description"`
}

// MethodPatch is the partial-update payload.
type MethodPatch struct {
	MethodName  *string `json:"method_name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
}

// MethodFromModel projects a stored method.
func MethodFromModel(method *models.DepreciationMethod) *MethodDTO {
	return &MethodDTO{
		ID:          method.ID,
		MethodName:  method.MethodName,
		Description: method.Description,
		CreatedAt:   method.CreatedAt,
		UpdatedAt:   method.UpdatedAt,
	}
}

func (s *methodService) List(ctx context.Context) ([]MethodDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list methods")
	}
	out := make([]MethodDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *MethodFromModel(&rows[i]))
	}
	return out, nil
}

func (s *methodService) Get(ctx context.Context, id uint) (*MethodDTO, error) {
	method, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return MethodFromModel(method), nil
}

func (s *methodService) Create(ctx context.Context, input MethodInput) (*MethodDTO, error) {
	method := &models.DepreciationMethod{
		MethodName:  input.MethodName,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, method); err != nil {
		return nil, methodStoreError(err, "create method")
	}
	return MethodFromModel(method), nil
}

func (s *methodService) Replace(ctx context.Context, id uint, input MethodInput) (*MethodDTO, error) {
	method, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	method.MethodName = input.MethodName
	method.Description = input.Description
	if err := s.repo.Save(ctx, method); err != nil {
		return nil, methodStoreError(err, "update method")
	}
	return MethodFromModel(method), nil
}

func (s *methodService) Patch(ctx context.Context, id uint, input MethodPatch) (*MethodDTO, error) {
	method, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.MethodName != nil {
		method.MethodName = *input.MethodName
	}
	if input.Description != nil {
		method.Description = input.Description
	}
	if err := s.repo.Save(ctx, method); err != nil {
		return nil, methodStoreError(err, "update method")
	}
	return MethodFromModel(method), nil
}

func (s *methodService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "depreciation method not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete method")
	}
	return nil
}

func (s *methodService) load(ctx context.Context, id uint) (*models.DepreciationMethod, error) {
	method, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "depreciation method not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load method")
	}
	return method, nil
}

func methodStoreError(err error, action string) error {
	if db.IsUniqueViolation(err, "method_name") {
		return pkgerrors.New(pkgerrors.CodeValidation, "method_name already in use").
			WithDetails(map[string]string{"method_name": "must be unique"})
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
