package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tracelabs/assetbook-backend/api/routes"
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
	"github.com/tracelabs/assetbook-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	svcs, err := buildServices(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, httpMetrics, registry, svcs),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildServices(dbClient *db.Client) (routes.Services, error) {
	conn := dbClient.DB()

	assetRepo := assets.NewRepository(conn)
	categoryRepo := categories.NewRepository(conn)
	statusRepo := statuses.NewRepository(conn)
	locationRepo := locations.NewRepository(conn)
	vendorRepo := vendors.NewRepository(conn)
	invoiceRepo := invoices.NewRepository(conn)
	mappingRepo := invoices.NewMappingRepository(conn)
	warrantyRepo := warranties.NewRepository(conn)
	methodRepo := depreciations.NewMethodRepository(conn)
	depreciationRepo := depreciations.NewRepository(conn)
	maintenanceRepo := maintenances.NewRepository(conn)
	eolRepo := endoflife.NewRepository(conn)

	assetSvc, err := assets.NewService(assetRepo, assets.References{
		Categories: categoryRepo,
		Locations:  locationRepo,
		Vendors:    vendorRepo,
		Statuses:   statusRepo,
	})
	if err != nil {
		return routes.Services{}, err
	}
	categorySvc, err := categories.NewService(categoryRepo)
	if err != nil {
		return routes.Services{}, err
	}
	statusSvc, err := statuses.NewService(statusRepo)
	if err != nil {
		return routes.Services{}, err
	}
	locationSvc, err := locations.NewService(locationRepo)
	if err != nil {
		return routes.Services{}, err
	}
	vendorSvc, err := vendors.NewService(vendorRepo)
	if err != nil {
		return routes.Services{}, err
	}
	invoiceSvc, err := invoices.NewService(invoiceRepo, vendorRepo)
	if err != nil {
		return routes.Services{}, err
	}
	mappingSvc, err := invoices.NewMappingService(mappingRepo, assetRepo, invoiceRepo)
	if err != nil {
		return routes.Services{}, err
	}
	warrantySvc, err := warranties.NewService(warrantyRepo, assetRepo)
	if err != nil {
		return routes.Services{}, err
	}
	methodSvc, err := depreciations.NewMethodService(methodRepo)
	if err != nil {
		return routes.Services{}, err
	}
	depreciationSvc, err := depreciations.NewService(depreciationRepo, assetRepo, methodRepo)
	if err != nil {
		return routes.Services{}, err
	}
	maintenanceSvc, err := maintenances.NewService(maintenanceRepo, assetRepo)
	if err != nil {
		return routes.Services{}, err
	}
	eolSvc, err := endoflife.NewService(eolRepo, assetRepo)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Assets:        assetSvc,
		Categories:    categorySvc,
		Statuses:      statusSvc,
		Locations:     locationSvc,
		Vendors:       vendorSvc,
		Invoices:      invoiceSvc,
		Mappings:      mappingSvc,
		Warranties:    warrantySvc,
		Methods:       methodSvc,
		Depreciations: depreciationSvc,
		Maintenances:  maintenanceSvc,
		EndOfLife:     eolSvc,
	}, nil
}
