package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	shippingCostPerUnit = decimal.NewFromFloat(2.5)
	penaltyPerDayLate   = decimal.NewFromInt(10)
)

// StatusOfShipment derives the shipment status from the promised and actual
// delivery dates. A shipment with no actual date is still in transit.
func StatusOfShipment(promised time.Time, actual *time.Time) ShipmentStatus {
	if actual == nil {
		return ShipmentStatusInTransit
	}
	if actual.After(promised) {
		return ShipmentStatusDelayed
	}
	return ShipmentStatusOnTime
}

// OnTimeRate returns onTime/(onTime+delayed) as a percentage rounded to one
// decimal place. Returns 0 when there are no completed deliveries.
func OnTimeRate(onTime, delayed int64) float64 {
	total := onTime + delayed
	if total == 0 {
		return 0
	}
	return Round1(float64(onTime) / float64(total) * 100)
}

// Round1 rounds to one decimal place
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// BucketForScore maps a 0-100 health score to its bucket:
// [0,50) bad, [50,75) warning, [75,100] good.
func BucketForScore(score int) HealthBucket {
	switch {
	case score >= 75:
		return HealthBucketGood
	case score >= 50:
		return HealthBucketWarning
	default:
		return HealthBucketBad
	}
}

// ExposureScore is the weighted disruption count: total events plus twice
// the high-impact events.
func ExposureScore(total, highImpact int64) int64 {
	return total + 2*highImpact
}

// EstimatedShippingCost is quantity x 2.5, kept in decimal to avoid float
// drift when summing across many shipments.
func EstimatedShippingCost(quantity int64) decimal.Decimal {
	return decimal.NewFromInt(quantity).Mul(shippingCostPerUnit)
}

// DaysLate returns the whole days a delivery arrived past its promise, or 0
// for on-time and in-transit shipments.
func DaysLate(promised time.Time, actual *time.Time) int {
	if actual == nil || !actual.After(promised) {
		return 0
	}
	return int(actual.Sub(promised).Hours() / 24)
}

// DelayPenalty is days-late x 10.
func DelayPenalty(daysLate int64) decimal.Decimal {
	return decimal.NewFromInt(daysLate).Mul(penaltyPerDayLate)
}

// TotalPages computes page count for a fixed page size
func TotalPages(totalRecords int64, pageSize int) int {
	if totalRecords <= 0 {
		return 0
	}
	return int((totalRecords + int64(pageSize) - 1) / int64(pageSize))
}

// RecoveryDays returns the whole days between a disruption and its recovery,
// or 0 while the disruption is ongoing.
func RecoveryDays(event time.Time, recovery *time.Time) int {
	if recovery == nil || recovery.Before(event) {
		return 0
	}
	return int(recovery.Sub(event).Hours() / 24)
}
