package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tracelabs/assetbook-backend/api/controllers"
	"github.com/tracelabs/assetbook-backend/api/middleware"
	"github.com/tracelabs/assetbook-backend/internal/assets"
	"github.com/tracelabs/assetbook-backend/internal/categories"
	"github.com/tracelabs/assetbook-backend/internal/depreciations"
	"github.com/tracelabs/assetbook-backend/internal/endoflife"
	"github.com/tracelabs/assetbook-backend/internal/invoices"
	"github.com/tracelabs/assetbook-backend/internal/locations"
	"github.com/tracelabs/assetbook-backend/internal/maintenances"
	"github.com/tracelabs/assetbook-backend/internal/statuses"
	"github.com/tracelabs/assetbook-backend/internal/vendors"
	"github.com/tracelabs/assetbook-backend/internal/warranties"
	"github.com/tracelabs/assetbook-backend/pkg/config"
	"github.com/tracelabs/assetbook-backend/pkg/db"
	"github.com/tracelabs/assetbook-backend/pkg/logger"
	"github.com/tracelabs/assetbook-backend/pkg/metrics"
)

// Services bundles every resource service the router mounts.
type Services struct {
	Assets        assets.Service
	Categories    categories.Service
	Statuses      statuses.Service
	Locations     locations.Service
	Vendors       vendors.Service
	Invoices      invoices.Service
	Mappings      invoices.MappingService
	Warranties    warranties.Service
	Methods       depreciations.MethodService
	Depreciations depreciations.Service
	Maintenances  maintenances.Service
	EndOfLife     endoflife.Service
}

// NewRouter builds the explicit route table: one CRUD block per resource
// plus the entity-specific query routes, health checks and metrics.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimiddleware.StripSlashes,
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/assets", func(r chi.Router) {
			r.Get("/", controllers.AssetList(svcs.Assets, logg))
			r.Get("/search", controllers.AssetSearch(svcs.Assets, logg))
			r.Get("/by_status", controllers.AssetsByStatus(svcs.Assets, logg))
			r.Get("/by_category", controllers.AssetsByCategory(svcs.Assets, logg))
			r.Get("/by_department", controllers.AssetsByDepartment(logg))
			r.Post("/", controllers.AssetCreate(svcs.Assets, logg))
			r.Get("/{id}", controllers.AssetGet(svcs.Assets, logg))
			r.Put("/{id}", controllers.AssetReplace(svcs.Assets, logg))
			r.Patch("/{id}", controllers.AssetPatch(svcs.Assets, logg))
			r.Delete("/{id}", controllers.AssetDelete(svcs.Assets, logg))
		})

		mountCRUD(r, "/categories", controllers.CRUD[categories.CategoryDTO, categories.CategoryInput, categories.CategoryPatch]{
			Svc: svcs.Categories, Logg: logg, Label: "category",
		}, nil)
		mountCRUD(r, "/statuses", controllers.CRUD[statuses.StatusDTO, statuses.StatusInput, statuses.StatusPatch]{
			Svc: svcs.Statuses, Logg: logg, Label: "status",
		}, nil)
		mountCRUD(r, "/locations", controllers.CRUD[locations.LocationDTO, locations.LocationInput, locations.LocationPatch]{
			Svc: svcs.Locations, Logg: logg, Label: "location",
		}, nil)
		mountCRUD(r, "/vendors", controllers.CRUD[vendors.VendorDTO, vendors.VendorInput, vendors.VendorPatch]{
			Svc: svcs.Vendors, Logg: logg, Label: "vendor",
		}, func(r chi.Router) {
			r.Get("/active", controllers.VendorsActive(svcs.Vendors, logg))
		})
		mountCRUD(r, "/invoices", controllers.CRUD[invoices.InvoiceDTO, invoices.InvoiceInput, invoices.InvoicePatch]{
			Svc: svcs.Invoices, Logg: logg, Label: "invoice",
		}, nil)
		mountCRUD(r, "/asset-invoice-mappings", controllers.CRUD[invoices.MappingDTO, invoices.MappingInput, invoices.MappingPatch]{
			Svc: svcs.Mappings, Logg: logg, Label: "mapping",
		}, nil)
		mountCRUD(r, "/warranties", controllers.CRUD[warranties.WarrantyDTO, warranties.WarrantyInput, warranties.WarrantyPatch]{
			Svc: svcs.Warranties, Logg: logg, Label: "warranty",
		}, func(r chi.Router) {
			r.Get("/expiring_soon", controllers.WarrantiesExpiringSoon(svcs.Warranties, logg))
		})
		mountCRUD(r, "/depreciation-methods", controllers.CRUD[depreciations.MethodDTO, depreciations.MethodInput, depreciations.MethodPatch]{
			Svc: svcs.Methods, Logg: logg, Label: "depreciation method",
		}, nil)
		mountCRUD(r, "/depreciations", controllers.CRUD[depreciations.DepreciationDTO, depreciations.DepreciationInput, depreciations.DepreciationPatch]{
			Svc: svcs.Depreciations, Logg: logg, Label: "depreciation",
		}, nil)
		mountCRUD(r, "/maintenances", controllers.CRUD[maintenances.MaintenanceDTO, maintenances.MaintenanceInput, maintenances.MaintenancePatch]{
			Svc: svcs.Maintenances, Logg: logg, Label: "maintenance",
		}, func(r chi.Router) {
			r.Get("/by_asset", controllers.MaintenancesByAsset(svcs.Maintenances, logg))
		})
		mountCRUD(r, "/end-of-life", controllers.CRUD[endoflife.RecordDTO, endoflife.RecordInput, endoflife.RecordPatch]{
			Svc: svcs.EndOfLife, Logg: logg, Label: "end-of-life",
		}, nil)
	})

	return r
}

// mountCRUD wires the uniform handler set under path; extra registers the
// resource's custom query routes before the {id} routes so they win.
func mountCRUD[D, I, P any](r chi.Router, path string, c controllers.CRUD[D, I, P], extra func(chi.Router)) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", c.List())
		if extra != nil {
			extra(r)
		}
		r.Post("/", c.Create())
		r.Get("/{id}", c.Get())
		r.Put("/{id}", c.Replace())
		r.Patch("/{id}", c.Patch())
		r.Delete("/{id}", c.Delete())
	})
}
