package categories

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

type categoryRepository interface {
	Create(ctx context.Context, category *models.AssetCategory) error
	FindByID(ctx context.Context, id uint) (*models.AssetCategory, error)
	List(ctx context.Context) ([]models.AssetCategory, error)
	Save(ctx context.Context, category *models.AssetCategory) error
	Delete(ctx context.Context, id uint) error
}

// Service exposes asset category operations.
type Service interface {
	List(ctx context.Context) ([]CategoryDTO, error)
	Get(ctx context.Context, id uint) (*CategoryDTO, error)
	Create(ctx context.Context, input CategoryInput) (*CategoryDTO, error)
	Replace(ctx context.Context, id uint, input CategoryInput) (*CategoryDTO, error)
	Patch(ctx context.Context, id uint, input CategoryPatch) (*CategoryDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo categoryRepository
}

// NewService builds a category service.
func NewService(repo categoryRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo}, nil
}

// CategoryDTO projects every stored field.
type CategoryDTO struct {
	ID           uint      `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Description  *string   `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryInput is the create/replace payload.
type CategoryInput struct {
	CategoryName string  `json:"category_name" validate:"required,max=100"`
	Description  *string `json:"description"`
}

// CategoryPatch is the partial-update payload.
type CategoryPatch struct {
	CategoryName *string `json:"category_name" validate:"omitempty,max=100"`
	Description  *string `json:"description"`
}

// FromModel projects a stored category.
func FromModel(category *models.AssetCategory) *CategoryDTO {
	return &CategoryDTO{
		ID:           category.ID,
		CategoryName: category.CategoryName,
		Description:  category.Description,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
}

func (s *service) List(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uint) (*CategoryDTO, error) {
	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(category), nil
}

func (s *service) Create(ctx context.Context, input CategoryInput) (*CategoryDTO, error) {
	category := &models.AssetCategory{
		CategoryName: input.CategoryName,
		Description:  input.Description,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, storeError(err, "create category")
	}
	return FromModel(category), nil
}

func (s *service) Replace(ctx context.Context, id uint, input CategoryInput) (*CategoryDTO, error) {
	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	category.CategoryName = input.CategoryName
	category.Description = input.Description
	if err := s.repo.Save(ctx, category); err != nil {
		return nil, storeError(err, "update category")
	}
	return FromModel(category), nil
}

func (s *service) Patch(ctx context.Context, id uint, input CategoryPatch) (*CategoryDTO, error) {
	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.CategoryName != nil {
		category.CategoryName = *input.CategoryName
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if err := s.repo.Save(ctx, category); err != nil {
		return nil, storeError(err, "update category")
	}
	return FromModel(category), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "asset category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uint) (*models.AssetCategory, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

func storeError(err error, action string) error {
	if db.IsUniqueViolation(err, "category_name") {
		return pkgerrors.New(pkgerrors.CodeValidation, "category_name already in use").
			WithDetails(map[string]string{"category_name": "must be unique"})
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
