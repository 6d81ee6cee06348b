package services

import (
	"context"
	"testing"
	"time"

	"github.com/scm-sandbox/scm-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedFinancials(t *testing.T, db *gorm.DB) {
	t.Helper()

	reports := []models.FinancialReport{
		{ReportID: 1, CompanyID: 1, Year: 2024, Quarter: 1, HealthScore: 80},
		{ReportID: 2, CompanyID: 1, Year: 2024, Quarter: 2, HealthScore: 40},
		{ReportID: 3, CompanyID: 2, Year: 2024, Quarter: 1, HealthScore: 60},
		{ReportID: 4, CompanyID: 3, Year: 2023, Quarter: 4, HealthScore: 90},
		// Outside the fiscal year range
		{ReportID: 5, CompanyID: 7, Year: 2021, Quarter: 4, HealthScore: 10},
	}
	if err := db.Create(&reports).Error; err != nil {
		t.Fatalf("Failed to seed financial reports: %v", err)
	}
}

func twoYearFilter() models.ReportFilter {
	return models.ReportFilter{
		StartDate: day(2023, time.January, 1),
		EndDate:   day(2024, time.December, 31),
	}
}

func TestFinanceService_FinancialHealth(t *testing.T) {
	db := setupTestDB(t)
	seedSupplyChain(t, db)
	seedFinancials(t, db)
	service := NewFinanceService(db)

	report, err := service.FinancialHealth(context.Background(), twoYearFilter())
	require.NoError(t, err)

	// Latest per company: 40 (bad), 60 (warning), 90 (good)
	assert.Equal(t, int64(1), report.Buckets.Good)
	assert.Equal(t, int64(1), report.Buckets.Warning)
	assert.Equal(t, int64(1), report.Buckets.Bad)
	assert.Equal(t, 63.3, report.AverageScore)

	require.Len(t, report.Companies, 3)
	assert.Equal(t, models.CompanyHealthRow{
		CompanyID: 1, CompanyName: "Acme Components", Year: 2024, Quarter: 2,
		HealthScore: 40, Bucket: models.HealthBucketBad,
	}, report.Companies[0])
	assert.Equal(t, uint(2), report.Companies[1].CompanyID)
	assert.Equal(t, models.HealthBucketWarning, report.Companies[1].Bucket)
	assert.Equal(t, uint(3), report.Companies[2].CompanyID)
	assert.Equal(t, models.HealthBucketGood, report.Companies[2].Bucket)

	assert.Empty(t, report.QuarterlySeries, "no quarterly series without a company filter")
}

func TestFinanceService_QuarterlySeries(t *testing.T) {
	db := setupTestDB(t)
	seedSupplyChain(t, db)
	seedFinancials(t, db)
	service := NewFinanceService(db)

	filter := twoYearFilter()
	filter.CompanyID = uintPtr(1)

	report, err := service.FinancialHealth(context.Background(), filter)
	require.NoError(t, err)

	require.Len(t, report.Companies, 1)
	assert.Equal(t, int64(1), report.Buckets.Bad)
	assert.Equal(t, int64(0), report.Buckets.Good)

	require.Len(t, report.QuarterlySeries, 2)
	assert.Equal(t, models.QuarterScore{Year: 2024, Quarter: 1, HealthScore: 80, Bucket: models.HealthBucketGood}, report.QuarterlySeries[0])
	assert.Equal(t, models.QuarterScore{Year: 2024, Quarter: 2, HealthScore: 40, Bucket: models.HealthBucketBad}, report.QuarterlySeries[1])
}

func TestFinanceService_RegionFilter(t *testing.T) {
	db := setupTestDB(t)
	seedSupplyChain(t, db)
	seedFinancials(t, db)
	service := NewFinanceService(db)

	filter := twoYearFilter()
	filter.Region = "Europe"

	report, err := service.FinancialHealth(context.Background(), filter)
	require.NoError(t, err)

	// Only Nordsee Retail is European
	require.Len(t, report.Companies, 1)
	assert.Equal(t, uint(2), report.Companies[0].CompanyID)
	assert.Equal(t, 60.0, report.AverageScore)
}

func TestFinanceService_Empty(t *testing.T) {
	db := setupTestDB(t)
	seedSupplyChain(t, db)
	service := NewFinanceService(db)

	report, err := service.FinancialHealth(context.Background(), twoYearFilter())
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.AverageScore)
	assert.Equal(t, models.BucketCounts{}, report.Buckets)
	assert.Empty(t, report.Companies)
}
