package services

import (
	"context"
	"sort"
	"time"

	"github.com/scm-sandbox/scm-backend/models"
	"github.com/scm-sandbox/scm-backend/pkg/errors"
	"github.com/scm-sandbox/scm-backend/pkg/monitoring"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// KPIService builds the delivery KPIs report
type KPIService struct {
	db *gorm.DB
}

// NewKPIService creates a new KPI service
func NewKPIService(db *gorm.DB) *KPIService {
	return &KPIService{db: db}
}

type deliveryAggregates struct {
	Total         int64
	OnTime        int64
	Delayed       int64
	InTransit     int64
	TotalQuantity int64
}

// DeliveryKPIs computes the delivery KPI payload for the filter. Totals come
// from one aggregate query; delay arithmetic happens in Go so the formulas
// stay identical across SQL dialects.
func (s *KPIService) DeliveryKPIs(ctx context.Context, filter models.ReportFilter) (*models.DeliveryKPIReport, error) {
	start := time.Now()
	defer func() { monitoring.RecordReportDuration(ctx, "kpis", time.Since(start)) }()

	var agg deliveryAggregates
	queryStart := time.Now()
	err := s.db.WithContext(ctx).Model(&models.Shipping{}).
		Scopes(filter.ShipmentScope()).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN shippings.actual_date IS NOT NULL AND shippings.actual_date <= shippings.promised_date THEN 1 ELSE 0 END), 0) AS on_time,
			COALESCE(SUM(CASE WHEN shippings.actual_date > shippings.promised_date THEN 1 ELSE 0 END), 0) AS delayed,
			COALESCE(SUM(CASE WHEN shippings.actual_date IS NULL THEN 1 ELSE 0 END), 0) AS in_transit,
			COALESCE(SUM(shippings.quantity), 0) AS total_quantity`).
		Scan(&agg).Error
	monitoring.RecordDBLatency(ctx, "shippings", "aggregate", time.Since(queryStart))
	if err != nil {
		return nil, errors.DatabaseError("delivery KPI aggregates", err)
	}

	var shipments []models.Shipping
	err = s.db.WithContext(ctx).Model(&models.Shipping{}).
		Scopes(filter.ShipmentScope()).
		Preload("Product").
		Preload("SourceCompany").
		Preload("DestinationCompany").
		Preload("DistributorCompany").
		Find(&shipments).Error
	if err != nil {
		return nil, errors.DatabaseError("delivery KPI shipments", err)
	}

	report := &models.DeliveryKPIReport{
		TotalDeliveries:   agg.OnTime + agg.Delayed,
		OnTimeDeliveries:  agg.OnTime,
		DelayedDeliveries: agg.Delayed,
		InTransit:         agg.InTransit,
		OnTimeRate:        models.OnTimeRate(agg.OnTime, agg.Delayed),
		TotalQuantity:     agg.TotalQuantity,
	}
	report.EstimatedShippingCost = models.EstimatedShippingCost(agg.TotalQuantity).StringFixed(2)

	penalty := decimal.Zero
	trend := map[string]*models.MonthlyShipmentCount{}
	var delayed []models.ShipmentRow

	for i := range shipments {
		sh := &shipments[i]
		status := models.StatusOfShipment(sh.PromisedDate, sh.ActualDate)

		month := sh.PromisedDate.Format("2006-01")
		point, ok := trend[month]
		if !ok {
			point = &models.MonthlyShipmentCount{Month: month}
			trend[month] = point
		}
		point.Shipments++
		switch status {
		case models.ShipmentStatusOnTime:
			point.OnTime++
		case models.ShipmentStatusDelayed:
			point.Delayed++
		}

		if status == models.ShipmentStatusDelayed {
			daysLate := models.DaysLate(sh.PromisedDate, sh.ActualDate)
			rowPenalty := models.DelayPenalty(int64(daysLate))
			penalty = penalty.Add(rowPenalty)
			delayed = append(delayed, shapeShipmentRow(sh))
		}
	}

	report.TotalDelayPenalty = penalty.StringFixed(2)

	report.MonthlyTrend = make([]models.MonthlyShipmentCount, 0, len(trend))
	for _, point := range trend {
		report.MonthlyTrend = append(report.MonthlyTrend, *point)
	}
	sort.Slice(report.MonthlyTrend, func(i, j int) bool {
		return report.MonthlyTrend[i].Month < report.MonthlyTrend[j].Month
	})

	sort.Slice(delayed, func(i, j int) bool {
		return delayed[i].DaysLate > delayed[j].DaysLate
	})
	if len(delayed) > 10 {
		delayed = delayed[:10]
	}
	report.WorstDelays = delayed

	return report, nil
}

// shapeShipmentRow flattens a preloaded shipment into its table row
func shapeShipmentRow(sh *models.Shipping) models.ShipmentRow {
	row := models.ShipmentRow{
		ShipmentID:         sh.ShipmentID,
		ProductName:        sh.Product.ProductName,
		SourceCompany:      sh.SourceCompany.CompanyName,
		DestinationCompany: sh.DestinationCompany.CompanyName,
		DistributorCompany: sh.DistributorCompany.CompanyName,
		Quantity:           sh.Quantity,
		PromisedDate:       sh.PromisedDate.Format(models.DateLayout),
		Status:             models.StatusOfShipment(sh.PromisedDate, sh.ActualDate),
		DaysLate:           models.DaysLate(sh.PromisedDate, sh.ActualDate),
		EstimatedCost:      models.EstimatedShippingCost(int64(sh.Quantity)).StringFixed(2),
	}
	row.DelayPenalty = models.DelayPenalty(int64(row.DaysLate)).StringFixed(2)
	if sh.ActualDate != nil {
		actual := sh.ActualDate.Format(models.DateLayout)
		row.ActualDate = &actual
	}
	return row
}
