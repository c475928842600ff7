package migrate

import (
	"context"
	"fmt"

	"github.com/tracelabs/assetbook-backend/pkg/config"
	"github.com/tracelabs/assetbook-backend/pkg/db"
	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	"github.com/tracelabs/assetbook-backend/pkg/logger"
)

// MaybeRunDev brings the schema up automatically when running in dev mode
// with the feature flag enabled. Postgres runs the goose migrations; sqlite
// dev databases are auto-migrated from the models since the DDL is
// Postgres-flavored.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	if cfg.FeatureFlags.UseSQLite {
		logg.Info(ctx, "auto-migrating sqlite dev schema")
		return AutoMigrate(client)
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "running goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}

// AutoMigrate creates the full schema from the models. Master tables come
// first so the FK declarations resolve.
func AutoMigrate(client *db.Client) error {
	return client.DB().AutoMigrate(
		&models.AssetCategory{},
		&models.AssetStatus{},
		&models.Location{},
		&models.Vendor{},
		&models.DepreciationMethod{},
		&models.Asset{},
		&models.Invoice{},
		&models.AssetInvoiceMapping{},
		&models.Warranty{},
		&models.Depreciation{},
		&models.Maintenance{},
		&models.EndOfLife{},
	)
}
