package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB wires GORM's postgres dialector onto a sqlmock connection so
// the tests can assert the SQL the filter scopes actually emit.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return db, mock
}

func countRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(0)
}

func TestShipmentScopeSQL(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)

	t.Run("DateRangeOnly", func(t *testing.T) {
		db, mock := setupMockDB(t)
		filter := ReportFilter{StartDate: start, EndDate: end}

		mock.ExpectQuery(regexp.QuoteMeta(
			`shippings.promised_date >= $1 AND shippings.promised_date <= $2`,
		)).WillReturnRows(countRow())

		var n int64
		require.NoError(t, db.Model(&Shipping{}).Scopes(filter.ShipmentScope()).Count(&n).Error)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CompanyMatchesEitherSide", func(t *testing.T) {
		db, mock := setupMockDB(t)
		companyID := uint(7)
		filter := ReportFilter{StartDate: start, EndDate: end, CompanyID: &companyID}

		mock.ExpectQuery(regexp.QuoteMeta(
			`(shippings.source_company_id = $3 OR shippings.destination_company_id = $4)`,
		)).WillReturnRows(countRow())

		var n int64
		require.NoError(t, db.Model(&Shipping{}).Scopes(filter.ShipmentScope()).Count(&n).Error)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DistributorAddsOneCondition", func(t *testing.T) {
		db, mock := setupMockDB(t)
		distributorID := uint(3)
		filter := ReportFilter{StartDate: start, EndDate: end, DistributorID: &distributorID}

		mock.ExpectQuery(regexp.QuoteMeta(
			`shippings.distributor_company_id = $3`,
		)).WillReturnRows(countRow())

		var n int64
		require.NoError(t, db.Model(&Shipping{}).Scopes(filter.ShipmentScope()).Count(&n).Error)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CompanyAttributesCompileToSubquery", func(t *testing.T) {
		db, mock := setupMockDB(t)
		tier := 2
		filter := ReportFilter{
			StartDate:   start,
			EndDate:     end,
			Region:      "Europe",
			Tier:        &tier,
			CompanyType: "Manufacturer",
		}

		pattern := regexp.QuoteMeta(`shippings.source_company_id IN (SELECT companies.company_id FROM "companies" JOIN locations ON locations.location_id = companies.location_id WHERE locations.continent = $3 AND companies.tier = $4 AND companies.company_type = $5)`)
		mock.ExpectQuery(pattern).WillReturnRows(countRow())

		var n int64
		require.NoError(t, db.Model(&Shipping{}).Scopes(filter.ShipmentScope()).Count(&n).Error)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventScopeSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	companyID := uint(5)
	filter := ReportFilter{
		StartDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		CompanyID: &companyID,
	}

	// The date-range group gets parenthesized once further conditions follow
	mock.ExpectQuery(regexp.QuoteMeta(
		`(disruption_events.event_date >= $1 AND disruption_events.event_date <= $2) AND impacts_company.company_id = $3`,
	)).WillReturnRows(countRow())

	var n int64
	err := db.Model(&DisruptionEvent{}).
		Joins("LEFT JOIN impacts_company ON impacts_company.event_id = disruption_events.event_id").
		Scopes(filter.EventScope()).
		Count(&n).Error
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
