package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributorService_Performance(t *testing.T) {
	db := setupTestDB(t)
	seedSupplyChain(t, db)
	seedShipments(t, db)
	service := NewDistributorService(db)

	report, err := service.Performance(context.Background(), yearFilter(2024))
	require.NoError(t, err)

	require.Len(t, report.Distributors, 2)

	// TransGlobal carries three 2024 legs, Lakeshore one; busiest first
	transGlobal := report.Distributors[0]
	assert.Equal(t, uint(3), transGlobal.CompanyID)
	assert.Equal(t, "TransGlobal Logistics", transGlobal.CompanyName)
	assert.Equal(t, int64(3), transGlobal.Shipments)
	assert.Equal(t, int64(1), transGlobal.OnTime)
	assert.Equal(t, int64(1), transGlobal.Delayed)
	assert.Equal(t, int64(1), transGlobal.InTransit)
	assert.Equal(t, 50.0, transGlobal.OnTimeRate)
	assert.Equal(t, 5.0, transGlobal.AvgDelayDays)
	assert.Equal(t, int64(150), transGlobal.TotalQuantity)

	lakeshore := report.Distributors[1]
	assert.Equal(t, uint(4), lakeshore.CompanyID)
	assert.Equal(t, int64(1), lakeshore.Shipments)
	assert.Equal(t, int64(1), lakeshore.Delayed)
	assert.Equal(t, 0.0, lakeshore.OnTimeRate)
	assert.Equal(t, 2.0, lakeshore.AvgDelayDays)
}

func TestDistributorService_DistributorFilter(t *testing.T) {
	db := setupTestDB(t)
	seedSupplyChain(t, db)
	seedShipments(t, db)
	service := NewDistributorService(db)

	filter := yearFilter(2024)
	filter.DistributorID = uintPtr(4)

	report, err := service.Performance(context.Background(), filter)
	require.NoError(t, err)

	require.Len(t, report.Distributors, 1)
	assert.Equal(t, uint(4), report.Distributors[0].CompanyID)
}

func TestDistributorService_NoShipmentsInRange(t *testing.T) {
	db := setupTestDB(t)
	seedSupplyChain(t, db)
	seedShipments(t, db)
	service := NewDistributorService(db)

	report, err := service.Performance(context.Background(), yearFilter(2020))
	require.NoError(t, err)

	assert.Empty(t, report.Distributors)
}
