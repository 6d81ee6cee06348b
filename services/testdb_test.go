package services

import (
	"testing"
	"time"

	"github.com/scm-sandbox/scm-backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with the full report
// schema. Fast, and close enough to PostgreSQL for the queries the services
// issue; date arithmetic is done in Go precisely so these tests stay honest.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Location{},
		&models.Company{},
		&models.Product{},
		&models.SuppliesProduct{},
		&models.DependsOn{},
		&models.Shipping{},
		&models.Receiving{},
		&models.InventoryTransaction{},
		&models.FinancialReport{},
		&models.DisruptionEvent{},
		&models.ImpactsCompany{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}

	return db
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }

// yearFilter covers one calendar year with no other filters set
func yearFilter(year int) models.ReportFilter {
	return models.ReportFilter{
		StartDate: day(year, time.January, 1),
		EndDate:   day(year, time.December, 31),
	}
}

// seedSupplyChain inserts the company and product fixture shared by the
// report tests. Shipments, events and transactions stay per-test.
//
// Companies: 1 Acme Components (Manufacturer, tier 1, Asia),
// 2 Nordsee Retail (Retailer, tier 3, Europe),
// 3 TransGlobal Logistics (Distributor, tier 2, North America),
// 4 Lakeshore Freight (Distributor, tier 2, North America),
// 7 Pacific Assembly (Manufacturer, tier 2, Asia).
func seedSupplyChain(t *testing.T, db *gorm.DB) {
	t.Helper()

	locations := []models.Location{
		{LocationID: 1, City: "Shanghai", Country: "China", Continent: "Asia"},
		{LocationID: 2, City: "Hamburg", Country: "Germany", Continent: "Europe"},
		{LocationID: 3, City: "Chicago", Country: "United States", Continent: "North America"},
	}
	if err := db.Create(&locations).Error; err != nil {
		t.Fatalf("Failed to seed locations: %v", err)
	}

	companies := []models.Company{
		{CompanyID: 1, CompanyName: "Acme Components", CompanyType: string(models.CompanyTypeManufacturer), Tier: 1, LocationID: 1},
		{CompanyID: 2, CompanyName: "Nordsee Retail", CompanyType: string(models.CompanyTypeRetailer), Tier: 3, LocationID: 2},
		{CompanyID: 3, CompanyName: "TransGlobal Logistics", CompanyType: string(models.CompanyTypeDistributor), Tier: 2, LocationID: 3},
		{CompanyID: 4, CompanyName: "Lakeshore Freight", CompanyType: string(models.CompanyTypeDistributor), Tier: 2, LocationID: 3},
		{CompanyID: 7, CompanyName: "Pacific Assembly", CompanyType: string(models.CompanyTypeManufacturer), Tier: 2, LocationID: 1},
	}
	if err := db.Create(&companies).Error; err != nil {
		t.Fatalf("Failed to seed companies: %v", err)
	}

	products := []models.Product{
		{ProductID: 1, ProductName: "Brake Assembly", Category: "Automotive"},
		{ProductID: 2, ProductName: "Control Module", Category: "Electronics"},
	}
	if err := db.Create(&products).Error; err != nil {
		t.Fatalf("Failed to seed products: %v", err)
	}
}

// seedShipments inserts the five-shipment fixture used by the KPI and
// distributor tests: one on time, two delayed (5 and 2 days), one in
// transit, and one outside the 2024 window.
func seedShipments(t *testing.T, db *gorm.DB) {
	t.Helper()

	shipments := []models.Shipping{
		{ShipmentID: 1, ProductID: 1, SourceCompanyID: 1, DestinationCompanyID: 2, DistributorCompanyID: 3,
			Quantity: 100, PromisedDate: day(2024, time.March, 10), ActualDate: dayPtr(2024, time.March, 9)},
		{ShipmentID: 2, ProductID: 2, SourceCompanyID: 7, DestinationCompanyID: 2, DistributorCompanyID: 3,
			Quantity: 40, PromisedDate: day(2024, time.April, 1), ActualDate: dayPtr(2024, time.April, 6)},
		{ShipmentID: 3, ProductID: 1, SourceCompanyID: 1, DestinationCompanyID: 7, DistributorCompanyID: 3,
			Quantity: 10, PromisedDate: day(2024, time.May, 20)},
		{ShipmentID: 4, ProductID: 2, SourceCompanyID: 1, DestinationCompanyID: 2, DistributorCompanyID: 4,
			Quantity: 60, PromisedDate: day(2024, time.March, 15), ActualDate: dayPtr(2024, time.March, 17)},
		{ShipmentID: 5, ProductID: 1, SourceCompanyID: 1, DestinationCompanyID: 2, DistributorCompanyID: 3,
			Quantity: 999, PromisedDate: day(2023, time.June, 1), ActualDate: dayPtr(2023, time.May, 30)},
	}
	if err := db.Create(&shipments).Error; err != nil {
		t.Fatalf("Failed to seed shipments: %v", err)
	}
}
