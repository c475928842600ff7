package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/tracelabs/assetbook-backend/pkg/config"
	"github.com/tracelabs/assetbook-backend/pkg/db"
	"github.com/tracelabs/assetbook-backend/pkg/db/models"
	"github.com/tracelabs/assetbook-backend/pkg/logger"
	"github.com/tracelabs/assetbook-backend/pkg/migrate"
)

// seed loads the master data a fresh installation needs: categories,
// statuses, locations, vendors and depreciation methods. Each row is
// keyed on its name, so re-running the command is safe.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		requireResource(ctx, logg, "migrations", err)
	}

	if err := seedAll(ctx, dbClient.DB()); err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "seed data loaded")
}

func seedAll(ctx context.Context, conn *gorm.DB) error {
	conn = conn.WithContext(ctx)

	categories := []models.AssetCategory{
		{CategoryName: "Electronics", Description: str("TVs, laptops, phones, tablets, speakers, etc.")},
		{CategoryName: "Appliances", Description: str("Refrigerators, washing machines, air conditioners, etc.")},
		{CategoryName: "Furniture", Description: str("Chairs, tables, beds, sofas, cabinets, etc.")},
		{CategoryName: "Vehicles", Description: str("Cars, motorcycles, bicycles, etc.")},
		{CategoryName: "Home & Garden", Description: str("Ceiling fans, tools, garden equipment, etc.")},
		{CategoryName: "Luggage & Travel", Description: str("Suitcases, backpacks, travel accessories, etc.")},
		{CategoryName: "Kitchen & Dining", Description: str("Kitchen appliances, cookware, dining sets, etc.")},
		{CategoryName: "Office Equipment", Description: str("Desks, chairs, printers, office supplies, etc.")},
		{CategoryName: "Sports & Fitness", Description: str("Exercise equipment, sports gear, etc.")},
		{CategoryName: "Other", Description: str("Miscellaneous items not fitting other categories")},
	}
	for i := range categories {
		row := categories[i]
		if err := conn.Where(models.AssetCategory{CategoryName: row.CategoryName}).
			Attrs(row).FirstOrCreate(&categories[i]).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", row.CategoryName, err)
		}
	}

	statuses := []models.AssetStatus{
		{StatusName: "Active", Description: str("Currently in use and functional")},
		{StatusName: "In Storage", Description: str("Stored but not currently in use")},
		{StatusName: "Under Repair", Description: str("Currently being repaired or serviced")},
		{StatusName: "Retired", Description: str("No longer in use but kept for reference")},
		{StatusName: "Sold", Description: str("Sold or disposed of")},
		{StatusName: "Lost/Stolen", Description: str("Missing or stolen")},
	}
	for i := range statuses {
		row := statuses[i]
		if err := conn.Where(models.AssetStatus{StatusName: row.StatusName}).
			Attrs(row).FirstOrCreate(&statuses[i]).Error; err != nil {
			return fmt.Errorf("seed status %q: %w", row.StatusName, err)
		}
	}

	locations := []models.Location{
		{LocationName: "Main House", Address: "123 Main Street, City, State", City: str("City"), State: str("State"), Country: str("USA")},
		{LocationName: "Garage", Address: "123 Main Street, City, State", City: str("City"), State: str("State"), Country: str("USA")},
		{LocationName: "Storage Unit", Address: "456 Storage Ave, City, State", City: str("City"), State: str("State"), Country: str("USA")},
		{LocationName: "Office Space", Address: "789 Business Blvd, City, State", City: str("City"), State: str("State"), Country: str("USA")},
	}
	for i := range locations {
		row := locations[i]
		if err := conn.Where(models.Location{LocationName: row.LocationName}).
			Attrs(row).FirstOrCreate(&locations[i]).Error; err != nil {
			return fmt.Errorf("seed location %q: %w", row.LocationName, err)
		}
	}

	vendors := []models.Vendor{
		{VendorName: "Amazon", ContactPerson: str("Customer Service"), Email: str("support@amazon.com")},
		{VendorName: "Best Buy", ContactPerson: str("Store Manager"), Email: str("support@bestbuy.com")},
		{VendorName: "IKEA", ContactPerson: str("Customer Service"), Email: str("support@ikea.com")},
		{VendorName: "Home Depot", ContactPerson: str("Store Manager"), Email: str("support@homedepot.com")},
		{VendorName: "Apple Store", ContactPerson: str("Genius Bar"), Email: str("support@apple.com")},
		{VendorName: "Samsung", ContactPerson: str("Customer Support"), Email: str("support@samsung.com")},
		{VendorName: "Dell", ContactPerson: str("Customer Service"), Email: str("support@dell.com")},
		{VendorName: "Costco", ContactPerson: str("Member Services"), Email: str("support@costco.com")},
		{VendorName: "Target", ContactPerson: str("Guest Services"), Email: str("support@target.com")},
		{VendorName: "Walmart", ContactPerson: str("Customer Service"), Email: str("support@walmart.com")},
		{VendorName: "Local Electronics Store", ContactPerson: str("Store Owner"), Email: str("info@localelectronics.com")},
		{VendorName: "Furniture Store", ContactPerson: str("Sales Manager"), Email: str("sales@furniturestore.com")},
	}
	for i := range vendors {
		row := vendors[i]
		row.IsActive = true
		if err := conn.Where(models.Vendor{VendorName: row.VendorName}).
			Attrs(row).FirstOrCreate(&vendors[i]).Error; err != nil {
			return fmt.Errorf("seed vendor %q: %w", row.VendorName, err)
		}
	}

	methods := []models.DepreciationMethod{
		{MethodName: "Straight Line", Description: str("Equal depreciation each year over useful life")},
		{MethodName: "Declining Balance", Description: str("Higher depreciation in early years, decreasing over time")},
		{MethodName: "Sum of Years Digits", Description: str("Depreciation based on sum of years digits method")},
		{MethodName: "Units of Production", Description: str("Depreciation based on usage or production")},
		{MethodName: "No Depreciation", Description: str("Item does not depreciate (e.g., collectibles, art)")},
	}
	for i := range methods {
		row := methods[i]
		if err := conn.Where(models.DepreciationMethod{MethodName: row.MethodName}).
			Attrs(row).FirstOrCreate(&methods[i]).Error; err != nil {
			return fmt.Errorf("seed depreciation method %q: %w", row.MethodName, err)
		}
	}

	return nil
}

func str(s string) *string { return &s }

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
