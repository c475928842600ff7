package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tracelabs/assetbook-backend/internal/assets"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
)

type stubAssetService struct {
	summaries []assets.AssetSummaryDTO
	dto       *assets.AssetDTO
	err       error

	lastStatusID uint
	lastQuery    string
	deletedID    uint
}

func (s *stubAssetService) List(_ context.Context) ([]assets.AssetSummaryDTO, error) {
	return s.summaries, s.err
}

func (s *stubAssetService) Search(_ context.Context, q string) ([]assets.AssetSummaryDTO, error) {
	s.lastQuery = q
	return s.summaries, s.err
}

func (s *stubAssetService) ByStatus(_ context.Context, statusID uint) ([]assets.AssetSummaryDTO, error) {
	s.lastStatusID = statusID
	return s.summaries, s.err
}

func (s *stubAssetService) ByCategory(_ context.Context, _ uint) ([]assets.AssetSummaryDTO, error) {
	return s.summaries, s.err
}

func (s *stubAssetService) Get(_ context.Context, _ uint) (*assets.AssetDTO, error) {
	return s.dto, s.err
}

func (s *stubAssetService) Create(_ context.Context, _ assets.AssetInput) (*assets.AssetDTO, error) {
	return s.dto, s.err
}

func (s *stubAssetService) Replace(_ context.Context, _ uint, _ assets.AssetInput) (*assets.AssetDTO, error) {
	return s.dto, s.err
}

func (s *stubAssetService) Patch(_ context.Context, _ uint, _ assets.AssetPatch) (*assets.AssetDTO, error) {
	return s.dto, s.err
}

func (s *stubAssetService) Delete(_ context.Context, id uint) error {
	s.deletedID = id
	return s.err
}

func newAssetRouter(svc assets.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/assets", AssetList(svc, nil))
	r.Get("/assets/search", AssetSearch(svc, nil))
	r.Get("/assets/by_status", AssetsByStatus(svc, nil))
	r.Get("/assets/by_category", AssetsByCategory(svc, nil))
	r.Get("/assets/by_department", AssetsByDepartment(nil))
	r.Get("/assets/{id}", AssetGet(svc, nil))
	r.Post("/assets", AssetCreate(svc, nil))
	r.Delete("/assets/{id}", AssetDelete(svc, nil))
	return r
}

func TestAssetsByStatusMissingParam(t *testing.T) {
	router := newAssetRouter(&stubAssetService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/by_status", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "status_id") {
		t.Fatalf("error must name the missing parameter, got %s", rec.Body.String())
	}
}

func TestAssetsByStatusPassesID(t *testing.T) {
	svc := &stubAssetService{summaries: []assets.AssetSummaryDTO{}}
	router := newAssetRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/by_status?status_id=4", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastStatusID != 4 {
		t.Fatalf("expected status id 4, got %d", svc.lastStatusID)
	}
}

func TestAssetsByCategoryMissingParam(t *testing.T) {
	router := newAssetRouter(&stubAssetService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/by_category", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "category_id") {
		t.Fatalf("error must name the missing parameter, got %s", rec.Body.String())
	}
}

func TestAssetsByDepartmentAlwaysFails(t *testing.T) {
	router := newAssetRouter(&stubAssetService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/by_department?department_id=1", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "department") {
		t.Fatalf("error must explain the missing field, got %s", rec.Body.String())
	}
}

func TestAssetSearchForwardsQuery(t *testing.T) {
	svc := &stubAssetService{summaries: []assets.AssetSummaryDTO{}}
	router := newAssetRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/search?q=laptop", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastQuery != "laptop" {
		t.Fatalf("expected query laptop, got %q", svc.lastQuery)
	}
}

func TestAssetListOmitsDocumentFields(t *testing.T) {
	svc := &stubAssetService{summaries: []assets.AssetSummaryDTO{{ID: 1, AssetCode: "AST-001", AssetName: "Laptop"}}}
	router := newAssetRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "purchase_receipt") || strings.Contains(body, "manual_document") {
		t.Fatalf("list payload must not carry document fields: %s", body)
	}
}

func TestAssetCreateReturns201(t *testing.T) {
	svc := &stubAssetService{dto: &assets.AssetDTO{ID: 1, AssetCode: "AST-001"}}
	router := newAssetRouter(svc)

	payload := `{"asset_code":"AST-001","asset_name":"Laptop","category_id":1,"location_id":1,"vendor_id":1,"status_id":1,"purchase_date":"2024-03-01","cost":"1999.99"}`
	req := httptest.NewRequest(http.MethodPost, "/assets", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAssetCreateRejectsMissingCode(t *testing.T) {
	router := newAssetRouter(&stubAssetService{})

	payload := `{"asset_name":"Laptop","category_id":1,"location_id":1,"vendor_id":1,"status_id":1}`
	req := httptest.NewRequest(http.MethodPost, "/assets", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAssetDeleteReturns204(t *testing.T) {
	svc := &stubAssetService{}
	router := newAssetRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/assets/12", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rec.Code)
	}
	if svc.deletedID != 12 {
		t.Fatalf("expected delete of id 12, got %d", svc.deletedID)
	}
}

func TestAssetDeleteNotFound(t *testing.T) {
	svc := &stubAssetService{err: pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")}
	router := newAssetRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/assets/12", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
