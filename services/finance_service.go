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

// FinanceService builds the financial health report
type FinanceService struct {
	db *gorm.DB
}

// NewFinanceService creates a new finance service
func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{db: db}
}

type healthRow struct {
	CompanyID   uint
	CompanyName string
	Year        int
	Quarter     int
	HealthScore int
}

// FinancialHealth computes bucket counts and the latest score per company.
// When the filter names a company, the payload also carries its full
// quarterly series.
func (s *FinanceService) FinancialHealth(ctx context.Context, filter models.ReportFilter) (*models.FinancialHealthReport, error) {
	start := time.Now()
	defer func() { monitoring.RecordReportDuration(ctx, "health", time.Since(start)) }()

	var rows []healthRow
	queryStart := time.Now()
	err := s.db.WithContext(ctx).Model(&models.FinancialReport{}).
		Joins("JOIN companies ON companies.company_id = financial_reports.company_id").
		Scopes(filter.FinancialScope()).
		Select(`financial_reports.company_id AS company_id,
			companies.company_name AS company_name,
			financial_reports.year AS year,
			financial_reports.quarter AS quarter,
			financial_reports.health_score AS health_score`).
		Order("financial_reports.year, financial_reports.quarter").
		Scan(&rows).Error
	monitoring.RecordDBLatency(ctx, "financial_reports", "select", time.Since(queryStart))
	if err != nil {
		return nil, errors.DatabaseError("financial health rows", err)
	}

	// Rows arrive in quarter order, so the last row per company wins
	latest := map[uint]healthRow{}
	for _, row := range rows {
		latest[row.CompanyID] = row
	}

	report := &models.FinancialHealthReport{}
	var scoreSum int64
	for _, row := range latest {
		bucket := models.BucketForScore(row.HealthScore)
		switch bucket {
		case models.HealthBucketGood:
			report.Buckets.Good++
		case models.HealthBucketWarning:
			report.Buckets.Warning++
		default:
			report.Buckets.Bad++
		}
		scoreSum += int64(row.HealthScore)
		report.Companies = append(report.Companies, models.CompanyHealthRow{
			CompanyID:   row.CompanyID,
			CompanyName: row.CompanyName,
			Year:        row.Year,
			Quarter:     row.Quarter,
			HealthScore: row.HealthScore,
			Bucket:      bucket,
		})
	}
	if len(latest) > 0 {
		report.AverageScore = models.Round1(float64(scoreSum) / float64(len(latest)))
	}
	sort.Slice(report.Companies, func(i, j int) bool {
		return report.Companies[i].CompanyID < report.Companies[j].CompanyID
	})

	if filter.CompanyID != nil {
		for _, row := range rows {
			report.QuarterlySeries = append(report.QuarterlySeries, models.QuarterScore{
				Year:        row.Year,
				Quarter:     row.Quarter,
				HealthScore: row.HealthScore,
				Bucket:      models.BucketForScore(row.HealthScore),
			})
		}
	}

	return report, nil
}
