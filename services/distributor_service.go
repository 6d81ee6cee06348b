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

// DistributorService builds the distributor performance report
type DistributorService struct {
	db *gorm.DB
}

// NewDistributorService creates a new distributor service
func NewDistributorService(db *gorm.DB) *DistributorService {
	return &DistributorService{db: db}
}

type delayedLeg struct {
	DistributorCompanyID uint
	PromisedDate         time.Time
	ActualDate           *time.Time
}

// Performance aggregates delivery outcomes per distributor. Counts come
// from one grouped query; delay-day averages are computed in Go.
func (s *DistributorService) Performance(ctx context.Context, filter models.ReportFilter) (*models.DistributorPerformanceReport, error) {
	start := time.Now()
	defer func() { monitoring.RecordReportDuration(ctx, "distributors", time.Since(start)) }()

	var rows []models.DistributorRow
	queryStart := time.Now()
	err := s.db.WithContext(ctx).Model(&models.Shipping{}).
		Joins("JOIN companies ON companies.company_id = shippings.distributor_company_id").
		Scopes(filter.ShipmentScope()).
		Select(`companies.company_id AS company_id,
			companies.company_name AS company_name,
			COUNT(*) AS shipments,
			COALESCE(SUM(CASE WHEN shippings.actual_date IS NOT NULL AND shippings.actual_date <= shippings.promised_date THEN 1 ELSE 0 END), 0) AS on_time,
			COALESCE(SUM(CASE WHEN shippings.actual_date > shippings.promised_date THEN 1 ELSE 0 END), 0) AS delayed,
			COALESCE(SUM(CASE WHEN shippings.actual_date IS NULL THEN 1 ELSE 0 END), 0) AS in_transit,
			COALESCE(SUM(shippings.quantity), 0) AS total_quantity`).
		Group("companies.company_id, companies.company_name").
		Scan(&rows).Error
	monitoring.RecordDBLatency(ctx, "shippings", "group_by_distributor", time.Since(queryStart))
	if err != nil {
		return nil, errors.DatabaseError("distributor aggregates", err)
	}

	var legs []delayedLeg
	err = s.db.WithContext(ctx).Model(&models.Shipping{}).
		Scopes(filter.ShipmentScope()).
		Where("shippings.actual_date > shippings.promised_date").
		Select("shippings.distributor_company_id AS distributor_company_id, shippings.promised_date AS promised_date, shippings.actual_date AS actual_date").
		Scan(&legs).Error
	if err != nil {
		return nil, errors.DatabaseError("delayed shipments", err)
	}

	delaySums := map[uint]int{}
	delayCounts := map[uint]int{}
	for _, leg := range legs {
		delaySums[leg.DistributorCompanyID] += models.DaysLate(leg.PromisedDate, leg.ActualDate)
		delayCounts[leg.DistributorCompanyID]++
	}

	for i := range rows {
		rows[i].OnTimeRate = models.OnTimeRate(rows[i].OnTime, rows[i].Delayed)
		if count := delayCounts[rows[i].CompanyID]; count > 0 {
			rows[i].AvgDelayDays = models.Round1(float64(delaySums[rows[i].CompanyID]) / float64(count))
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Shipments != rows[j].Shipments {
			return rows[i].Shipments > rows[j].Shipments
		}
		return rows[i].CompanyID < rows[j].CompanyID
	})

	return &models.DistributorPerformanceReport{Distributors: rows}, nil
}
