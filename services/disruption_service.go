package services

import (
	"context"
	"sort"
	"time"

	"github.com/scm-sandbox/scm-backend/models"
	"github.com/scm-sandbox/scm-backend/pkg/errors"
	"github.com/scm-sandbox/scm-backend/pkg/monitoring"
	"gorm.io/gorm"
)

// DisruptionService builds the disruption analytics report
type DisruptionService struct {
	db *gorm.DB
}

// NewDisruptionService creates a new disruption service
func NewDisruptionService(db *gorm.DB) *DisruptionService {
	return &DisruptionService{db: db}
}

type disruptionAggregates struct {
	Total      int64
	HighImpact int64
}

type continentImpact struct {
	Continent string
	Companies int64
}

// Disruptions computes the disruption report: totals, the named KPI
// formulas (HDR, ART, DF, TD, RRC, DSD), per-company exposure, and the
// recent-events table.
func (s *DisruptionService) Disruptions(ctx context.Context, filter models.ReportFilter) (*models.DisruptionReport, error) {
	start := time.Now()
	defer func() { monitoring.RecordReportDuration(ctx, "disruptions", time.Since(start)) }()

	// Events fan out per impacted company; DISTINCT keeps event counts honest.
	base := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.DisruptionEvent{}).
			Joins("LEFT JOIN impacts_company ON impacts_company.event_id = disruption_events.event_id").
			Scopes(filter.EventScope())
	}

	var agg disruptionAggregates
	queryStart := time.Now()
	err := base().
		Select(`COUNT(DISTINCT disruption_events.event_id) AS total,
			COUNT(DISTINCT CASE WHEN impacts_company.impact_level = 'High' THEN disruption_events.event_id END) AS high_impact`).
		Scan(&agg).Error
	monitoring.RecordDBLatency(ctx, "disruption_events", "aggregate", time.Since(queryStart))
	if err != nil {
		return nil, errors.DatabaseError("disruption aggregates", err)
	}

	report := &models.DisruptionReport{
		TotalDisruptions:      agg.Total,
		HighImpactDisruptions: agg.HighImpact,
	}
	if agg.Total > 0 {
		report.HighImpactRate = models.Round1(float64(agg.HighImpact) / float64(agg.Total) * 100)
	}
	report.DisruptionFrequency = models.Round1(float64(agg.Total) / float64(filter.MonthsInRange()))

	// Recovery arithmetic happens in Go to stay dialect-free
	var events []models.DisruptionEvent
	err = base().
		Select("DISTINCT disruption_events.*").
		Order("disruption_events.event_date DESC").
		Find(&events).Error
	if err != nil {
		return nil, errors.DatabaseError("disruption events", err)
	}

	var recoveredDays, recoveredCount int64
	for i := range events {
		days := models.RecoveryDays(events[i].EventDate, events[i].RecoveryDate)
		if events[i].RecoveryDate != nil {
			recoveredDays += int64(days)
			recoveredCount++
		}
		if len(report.RecentEvents) < 20 {
			row := models.DisruptionEventRow{
				EventID:      events[i].EventID,
				Category:     events[i].Category,
				EventDate:    events[i].EventDate.Format(models.DateLayout),
				RecoveryDays: days,
			}
			if events[i].RecoveryDate != nil {
				recovery := events[i].RecoveryDate.Format(models.DateLayout)
				row.RecoveryDate = &recovery
			}
			report.RecentEvents = append(report.RecentEvents, row)
		}
	}
	report.TotalDowntimeDays = recoveredDays
	if recoveredCount > 0 {
		report.AvgRecoveryDays = models.Round1(float64(recoveredDays) / float64(recoveredCount))
	}

	// RRC: the largest single-continent share of impacted companies
	var continents []continentImpact
	err = base().
		Joins("JOIN companies ON companies.company_id = impacts_company.company_id").
		Joins("JOIN locations ON locations.location_id = companies.location_id").
		Select("locations.continent AS continent, COUNT(DISTINCT impacts_company.company_id) AS companies").
		Group("locations.continent").
		Scan(&continents).Error
	if err != nil {
		return nil, errors.DatabaseError("regional risk concentration", err)
	}
	var maxCompanies, sumCompanies int64
	for _, c := range continents {
		sumCompanies += c.Companies
		if c.Companies > maxCompanies {
			maxCompanies = c.Companies
		}
	}
	if sumCompanies > 0 {
		report.RegionalRiskConcentration = models.Round1(float64(maxCompanies) / float64(sumCompanies) * 100)
	}

	// DSD: category x impact level grid
	err = base().
		Select("disruption_events.category AS category, impacts_company.impact_level AS impact_level, COUNT(DISTINCT disruption_events.event_id) AS count").
		Where("impacts_company.impact_level IS NOT NULL").
		Group("disruption_events.category, impacts_company.impact_level").
		Order("disruption_events.category, impacts_company.impact_level").
		Scan(&report.SeverityDistribution).Error
	if err != nil {
		return nil, errors.DatabaseError("severity distribution", err)
	}

	exposures, err := s.companyExposures(ctx, filter)
	if err != nil {
		return nil, err
	}
	report.CompanyExposures = exposures

	return report, nil
}

// companyExposures computes the weighted exposure score per company
func (s *DisruptionService) companyExposures(ctx context.Context, filter models.ReportFilter) ([]models.CompanyExposure, error) {
	var rows []models.CompanyExposure
	err := s.db.WithContext(ctx).Model(&models.DisruptionEvent{}).
		Joins("JOIN impacts_company ON impacts_company.event_id = disruption_events.event_id").
		Joins("JOIN companies ON companies.company_id = impacts_company.company_id").
		Scopes(filter.EventScope()).
		Select(`companies.company_id AS company_id,
			companies.company_name AS company_name,
			COUNT(DISTINCT disruption_events.event_id) AS total_events,
			COUNT(DISTINCT CASE WHEN impacts_company.impact_level = 'High' THEN disruption_events.event_id END) AS high_impact`).
		Group("companies.company_id, companies.company_name").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.DatabaseError("company exposures", err)
	}

	for i := range rows {
		rows[i].ExposureScore = models.ExposureScore(rows[i].TotalEvents, rows[i].HighImpact)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ExposureScore != rows[j].ExposureScore {
			return rows[i].ExposureScore > rows[j].ExposureScore
		}
		return rows[i].CompanyID < rows[j].CompanyID
	})
	if len(rows) > 20 {
		rows = rows[:20]
	}
	return rows, nil
}
