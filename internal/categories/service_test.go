package categories

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
)

type stubCategoryRepo struct {
	stored    *models.AssetCategory
	createErr error
	findErr   error
	saveErr   error
	deleteErr error
}

func (s *stubCategoryRepo) Create(_ context.Context, category *models.AssetCategory) error {
	if s.createErr != nil {
		return s.createErr
	}
	category.ID = 1
	s.stored = category
	return nil
}

func (s *stubCategoryRepo) FindByID(_ context.Context, id uint) (*models.AssetCategory, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.stored == nil || s.stored.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.stored, nil
}

func (s *stubCategoryRepo) List(_ context.Context) ([]models.AssetCategory, error) {
	if s.stored == nil {
		return nil, nil
	}
	return []models.AssetCategory{*s.stored}, nil
}

func (s *stubCategoryRepo) Save(_ context.Context, category *models.AssetCategory) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.stored = category
	return nil
}

func (s *stubCategoryRepo) Delete(_ context.Context, _ uint) error {
	return s.deleteErr
}

func TestCategoryServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestCategoryCreateSuccess(t *testing.T) {
	svc, err := NewService(&stubCategoryRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CategoryInput{CategoryName: "Electronics"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.ID != 1 || dto.CategoryName != "Electronics" {
		t.Fatalf("unexpected dto %+v", dto)
	}
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	repo := &stubCategoryRepo{createErr: errors.New("UNIQUE constraint failed: asset_categories.category_name")}
	svc, _ := NewService(repo)

	_, err := svc.Create(context.Background(), CategoryInput{CategoryName: "Electronics"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for duplicate name, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["category_name"] == "" {
		t.Fatalf("expected category_name detail, got %v", typed.Details())
	}
}

func TestCategoryGetNotFound(t *testing.T) {
	svc, _ := NewService(&stubCategoryRepo{})

	_, err := svc.Get(context.Background(), 9)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCategoryPatchKeepsDescription(t *testing.T) {
	desc := "TVs and laptops"
	repo := &stubCategoryRepo{stored: &models.AssetCategory{ID: 1, CategoryName: "Electronics", Description: &desc}}
	svc, _ := NewService(repo)

	name := "Consumer Electronics"
	dto, err := svc.Patch(context.Background(), 1, CategoryPatch{CategoryName: &name})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if dto.CategoryName != name {
		t.Fatalf("expected renamed category, got %s", dto.CategoryName)
	}
	if dto.Description == nil || *dto.Description != desc {
		t.Fatalf("description must survive, got %v", dto.Description)
	}
}

func TestCategoryDeleteNotFound(t *testing.T) {
	svc, _ := NewService(&stubCategoryRepo{deleteErr: gorm.ErrRecordNotFound})

	err := svc.Delete(context.Background(), 3)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
