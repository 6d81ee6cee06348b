package models

import (
	"net/url"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// DateLayout is the wire format for filter dates
const DateLayout = "2006-01-02"

// ReportFilter is the typed filter set shared by every report page. All
// fields except the date range are optional; an unset field means "all".
type ReportFilter struct {
	StartDate     time.Time
	EndDate       time.Time
	CompanyID     *uint
	Region        string
	Tier          *int
	CompanyType   string
	DistributorID *uint
}

// ParseReportFilter builds a ReportFilter from query parameters. Invalid or
// missing values are silently defaulted: the date range falls back to the
// report's own window (in months) ending today.
func ParseReportFilter(values url.Values, defaultWindowMonths int, now time.Time) ReportFilter {
	f := ReportFilter{}

	if end, err := time.Parse(DateLayout, values.Get("end_date")); err == nil {
		f.EndDate = end
	} else {
		f.EndDate = now.Truncate(24 * time.Hour)
	}
	if start, err := time.Parse(DateLayout, values.Get("start_date")); err == nil {
		f.StartDate = start
	} else {
		f.StartDate = f.EndDate.AddDate(0, -defaultWindowMonths, 0)
	}

	f.CompanyID = parseUintParam(values.Get("company_id"))
	f.DistributorID = parseUintParam(values.Get("distributor_id"))
	f.Region = values.Get("region")
	f.CompanyType = values.Get("company_type")

	if tier, err := strconv.Atoi(values.Get("tier")); err == nil && tier >= MinTier && tier <= MaxTier {
		f.Tier = &tier
	}

	return f
}

func parseUintParam(raw string) *uint {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil
	}
	v := uint(id)
	return &v
}

// companyMatchQuery returns a subquery selecting company IDs that satisfy the
// company-attribute filters (region, tier, type). Returns nil when none of
// those filters are present.
func (f ReportFilter) companyMatchQuery(db *gorm.DB) *gorm.DB {
	if f.Region == "" && f.Tier == nil && f.CompanyType == "" {
		return nil
	}

	q := db.Session(&gorm.Session{NewDB: true}).
		Model(&Company{}).
		Select("companies.company_id").
		Joins("JOIN locations ON locations.location_id = companies.location_id")

	if f.Region != "" {
		q = q.Where("locations.continent = ?", f.Region)
	}
	if f.Tier != nil {
		q = q.Where("companies.tier = ?", *f.Tier)
	}
	if f.CompanyType != "" {
		q = q.Where("companies.company_type = ?", f.CompanyType)
	}
	return q
}

// ShipmentScope compiles the filter into conditions over the shippings
// table. Each present filter appends exactly one AND condition; company and
// company-attribute filters match either side of the shipment.
func (f ReportFilter) ShipmentScope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q := db.Where("shippings.promised_date >= ? AND shippings.promised_date <= ?", f.StartDate, f.EndDate)

		if f.CompanyID != nil {
			q = q.Where("(shippings.source_company_id = ? OR shippings.destination_company_id = ?)", *f.CompanyID, *f.CompanyID)
		}
		if f.DistributorID != nil {
			q = q.Where("shippings.distributor_company_id = ?", *f.DistributorID)
		}
		if sub := f.companyMatchQuery(db); sub != nil {
			q = q.Where("(shippings.source_company_id IN (?) OR shippings.destination_company_id IN (?))", sub, sub)
		}
		return q
	}
}

// CompanyScope compiles the filter into conditions over the companies table.
// The query must already join locations.
func (f ReportFilter) CompanyScope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q := db
		if f.CompanyID != nil {
			q = q.Where("companies.company_id = ?", *f.CompanyID)
		}
		if f.Region != "" {
			q = q.Where("locations.continent = ?", f.Region)
		}
		if f.Tier != nil {
			q = q.Where("companies.tier = ?", *f.Tier)
		}
		if f.CompanyType != "" {
			q = q.Where("companies.company_type = ?", f.CompanyType)
		}
		return q
	}
}

// EventScope compiles the filter into conditions over disruption_events
// joined with impacts_company.
func (f ReportFilter) EventScope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q := db.Where("disruption_events.event_date >= ? AND disruption_events.event_date <= ?", f.StartDate, f.EndDate)

		if f.CompanyID != nil {
			q = q.Where("impacts_company.company_id = ?", *f.CompanyID)
		}
		if sub := f.companyMatchQuery(db); sub != nil {
			q = q.Where("impacts_company.company_id IN (?)", sub)
		}
		return q
	}
}

// InventoryScope compiles the filter into conditions over
// inventory_transactions.
func (f ReportFilter) InventoryScope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q := db.Where("inventory_transactions.transaction_date >= ? AND inventory_transactions.transaction_date <= ?", f.StartDate, f.EndDate)

		if f.CompanyID != nil {
			q = q.Where("inventory_transactions.company_id = ?", *f.CompanyID)
		}
		if sub := f.companyMatchQuery(db); sub != nil {
			q = q.Where("inventory_transactions.company_id IN (?)", sub)
		}
		return q
	}
}

// FinancialScope compiles the filter into conditions over financial_reports.
// Quarterly data is scoped by fiscal year overlap with the date range.
func (f ReportFilter) FinancialScope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q := db.Where("financial_reports.year >= ? AND financial_reports.year <= ?", f.StartDate.Year(), f.EndDate.Year())

		if f.CompanyID != nil {
			q = q.Where("financial_reports.company_id = ?", *f.CompanyID)
		}
		if sub := f.companyMatchQuery(db); sub != nil {
			q = q.Where("financial_reports.company_id IN (?)", sub)
		}
		return q
	}
}

// MonthsInRange reports the number of whole months covered by the filter's
// date range, never less than one. The end month counts once its day reaches
// the start day, so a full calendar year is 12. Used by frequency metrics.
func (f ReportFilter) MonthsInRange() int {
	months := (f.EndDate.Year()-f.StartDate.Year())*12 + int(f.EndDate.Month()) - int(f.StartDate.Month())
	if f.EndDate.Day() >= f.StartDate.Day() {
		months++
	}
	if months < 1 {
		return 1
	}
	return months
}
