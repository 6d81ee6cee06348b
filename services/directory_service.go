package services

import (
	"context"
	"time"

	"github.com/scm-sandbox/scm-backend/models"
	"github.com/scm-sandbox/scm-backend/pkg/errors"
	"github.com/scm-sandbox/scm-backend/pkg/monitoring"
	"gorm.io/gorm"
)

// DirectoryService builds the company directory report, the per-company
// detail view, and the update_company edit path
type DirectoryService struct {
	db *gorm.DB
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{db: db}
}

func (s *DirectoryService) companiesWithLocations(ctx context.Context, filter models.ReportFilter) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Company{}).
		Joins("JOIN locations ON locations.location_id = companies.location_id").
		Scopes(filter.CompanyScope())
}

// Directory computes the companies page payload
func (s *DirectoryService) Directory(ctx context.Context, filter models.ReportFilter) (*models.CompanyDirectoryReport, error) {
	start := time.Now()
	defer func() { monitoring.RecordReportDuration(ctx, "companies", time.Since(start)) }()

	report := &models.CompanyDirectoryReport{}

	if err := s.companiesWithLocations(ctx, filter).Count(&report.TotalCompanies).Error; err != nil {
		return nil, errors.DatabaseError("company count", err)
	}

	err := s.companiesWithLocations(ctx, filter).
		Select("companies.company_type AS label, COUNT(*) AS count").
		Group("companies.company_type").
		Order("companies.company_type").
		Scan(&report.CountsByType).Error
	if err != nil {
		return nil, errors.DatabaseError("company type counts", err)
	}

	err = s.companiesWithLocations(ctx, filter).
		Select("companies.tier AS tier, COUNT(*) AS count").
		Group("companies.tier").
		Order("companies.tier").
		Scan(&report.CountsByTier).Error
	if err != nil {
		return nil, errors.DatabaseError("company tier counts", err)
	}

	err = s.companiesWithLocations(ctx, filter).
		Select("locations.continent AS label, COUNT(*) AS count").
		Group("locations.continent").
		Order("locations.continent").
		Scan(&report.CountsByContinent).Error
	if err != nil {
		return nil, errors.DatabaseError("company continent counts", err)
	}

	queryStart := time.Now()
	err = s.companiesWithLocations(ctx, filter).
		Select(`companies.company_id AS company_id,
			companies.company_name AS company_name,
			companies.company_type AS company_type,
			companies.tier AS tier,
			locations.city AS city,
			locations.country AS country,
			locations.continent AS continent,
			(SELECT COUNT(*) FROM depends_on WHERE depends_on.company_id = companies.company_id) AS dependency_count`).
		Order("companies.company_name").
		Scan(&report.Companies).Error
	monitoring.RecordDBLatency(ctx, "companies", "select", time.Since(queryStart))
	if err != nil {
		return nil, errors.DatabaseError("company rows", err)
	}

	return report, nil
}

// CompanyDetail assembles the detail payload for one company. Missing
// related rows leave their fields nil rather than failing the request.
func (s *DirectoryService) CompanyDetail(ctx context.Context, companyID uint, filter models.ReportFilter) (*models.CompanyDetail, error) {
	start := time.Now()
	defer func() { monitoring.RecordReportDuration(ctx, "company_detail", time.Since(start)) }()

	detail := &models.CompanyDetail{}

	var company models.CompanyRow
	err := s.db.WithContext(ctx).Model(&models.Company{}).
		Joins("JOIN locations ON locations.location_id = companies.location_id").
		Where("companies.company_id = ?", companyID).
		Select(`companies.company_id AS company_id,
			companies.company_name AS company_name,
			companies.company_type AS company_type,
			companies.tier AS tier,
			locations.city AS city,
			locations.country AS country,
			locations.continent AS continent,
			(SELECT COUNT(*) FROM depends_on WHERE depends_on.company_id = companies.company_id) AS dependency_count`).
		First(&company).Error
	if err != nil {
		if apiErr := errors.HandleDatabaseError(err, "company"); apiErr.Type == errors.ErrorTypeNotFound {
			return detail, nil
		}
		return nil, errors.DatabaseError("company detail", err)
	}
	detail.Company = &company

	err = s.db.WithContext(ctx).Model(&models.Product{}).
		Joins("JOIN supplies_product ON supplies_product.product_id = products.product_id").
		Where("supplies_product.company_id = ?", companyID).
		Select("products.product_id AS product_id, products.product_name AS product_name, products.category AS category").
		Order("products.product_name").
		Scan(&detail.Products).Error
	if err != nil {
		return nil, errors.DatabaseError("supplied products", err)
	}

	var shipments []models.Shipping
	err = s.db.WithContext(ctx).Model(&models.Shipping{}).
		Where("(shippings.source_company_id = ? OR shippings.destination_company_id = ?)", companyID, companyID).
		Preload("Product").
		Preload("SourceCompany").
		Preload("DestinationCompany").
		Preload("DistributorCompany").
		Order("shippings.promised_date DESC").
		Limit(10).
		Find(&shipments).Error
	if err != nil {
		return nil, errors.DatabaseError("recent shipments", err)
	}
	for i := range shipments {
		detail.RecentShipments = append(detail.RecentShipments, shapeShipmentRow(&shipments[i]))
	}

	var health healthRow
	err = s.db.WithContext(ctx).Model(&models.FinancialReport{}).
		Joins("JOIN companies ON companies.company_id = financial_reports.company_id").
		Where("financial_reports.company_id = ?", companyID).
		Select(`financial_reports.company_id AS company_id,
			companies.company_name AS company_name,
			financial_reports.year AS year,
			financial_reports.quarter AS quarter,
			financial_reports.health_score AS health_score`).
		Order("financial_reports.year DESC, financial_reports.quarter DESC").
		First(&health).Error
	if err == nil {
		detail.LatestHealth = &models.CompanyHealthRow{
			CompanyID:   health.CompanyID,
			CompanyName: health.CompanyName,
			Year:        health.Year,
			Quarter:     health.Quarter,
			HealthScore: health.HealthScore,
			Bucket:      models.BucketForScore(health.HealthScore),
		}
	} else if apiErr := errors.HandleDatabaseError(err, "financial report"); apiErr.Type != errors.ErrorTypeNotFound {
		return nil, apiErr
	}

	var exposure models.CompanyExposure
	err = s.db.WithContext(ctx).Model(&models.DisruptionEvent{}).
		Joins("JOIN impacts_company ON impacts_company.event_id = disruption_events.event_id").
		Scopes(filter.EventScope()).
		Where("impacts_company.company_id = ?", companyID).
		Select(`COUNT(DISTINCT disruption_events.event_id) AS total_events,
			COUNT(DISTINCT CASE WHEN impacts_company.impact_level = 'High' THEN disruption_events.event_id END) AS high_impact`).
		Scan(&exposure).Error
	if err != nil {
		return nil, errors.DatabaseError("company exposure", err)
	}
	exposure.CompanyID = company.CompanyID
	exposure.CompanyName = company.CompanyName
	exposure.ExposureScore = models.ExposureScore(exposure.TotalEvents, exposure.HighImpact)
	detail.Exposure = &exposure

	return detail, nil
}

// UpdateCompany applies the update_company edit action: a single UPDATE by
// primary key, last write wins.
func (s *DirectoryService) UpdateCompany(ctx context.Context, req models.UpdateCompanyRequest) error {
	if req.CompanyID == 0 {
		return errors.ValidationError("INVALID_COMPANY_ID", "Company ID is required")
	}
	if req.CompanyName == "" {
		return errors.ValidationError("INVALID_COMPANY_NAME", "Company name must not be empty")
	}
	if req.Tier < models.MinTier || req.Tier > models.MaxTier {
		return errors.ValidationError("INVALID_TIER", "Tier must be between 1 and 3")
	}

	result := s.db.WithContext(ctx).Model(&models.Company{}).
		Where("company_id = ?", req.CompanyID).
		Updates(map[string]interface{}{
			"company_name": req.CompanyName,
			"tier":         req.Tier,
		})
	if result.Error != nil {
		return errors.DatabaseError("update company", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFoundError("company")
	}
	return nil
}

// FilterOptions loads the dropdown option lists embedded in page renders
func (s *DirectoryService) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	options := &models.FilterOptions{}

	err := s.db.WithContext(ctx).Model(&models.Company{}).
		Select("companies.company_id AS id, companies.company_name AS name").
		Order("companies.company_name").
		Scan(&options.Companies).Error
	if err != nil {
		return nil, errors.DatabaseError("company options", err)
	}

	err = s.db.WithContext(ctx).Model(&models.Company{}).
		Where("companies.company_type = ?", string(models.CompanyTypeDistributor)).
		Select("companies.company_id AS id, companies.company_name AS name").
		Order("companies.company_name").
		Scan(&options.Distributors).Error
	if err != nil {
		return nil, errors.DatabaseError("distributor options", err)
	}

	err = s.db.WithContext(ctx).Model(&models.Location{}).
		Distinct("locations.continent").
		Order("locations.continent").
		Pluck("locations.continent", &options.Regions).Error
	if err != nil {
		return nil, errors.DatabaseError("region options", err)
	}

	return options, nil
}
