package services

import (
	"context"
	"testing"
	"time"

	"github.com/scm-sandbox/scm-backend/models"
	"github.com/scm-sandbox/scm-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedManyShipments(t *testing.T, db *gorm.DB, count int) {
	t.Helper()

	shipments := make([]models.Shipping, 0, count)
	for i := 1; i <= count; i++ {
		shipments = append(shipments, models.Shipping{
			ShipmentID:           uint(i),
			ProductID:            1,
			SourceCompanyID:      1,
			DestinationCompanyID: 2,
			DistributorCompanyID: 3,
			Quantity:             1,
			PromisedDate:         day(2024, time.March, 1),
		})
	}
	if err := db.CreateInBatches(&shipments, 200).Error; err != nil {
		t.Fatalf("Failed to seed shipments: %v", err)
	}
}

func TestTransactionService_ShipmentPagination(t *testing.T) {
	db := setupTestDB(t)
	seedSupplyChain(t, db)
	seedManyShipments(t, db, 1200)
	service := NewTransactionService(db)
	ctx := context.Background()

	t.Run("FirstPage", func(t *testing.T) {
		page, err := service.PagedShipments(ctx, yearFilter(2024), 1)
		require.NoError(t, err)

		assert.Equal(t, models.PageInfo{Page: 1, PageSize: 500, TotalRecords: 1200, TotalPages: 3}, page.Pagination)
		require.Len(t, page.Records, 500)
		assert.Equal(t, uint(1), page.Records[0].ShipmentID)
		assert.Equal(t, uint(500), page.Records[499].ShipmentID)
	})

	t.Run("LastPageIsPartial", func(t *testing.T) {
		page, err := service.PagedShipments(ctx, yearFilter(2024), 3)
		require.NoError(t, err)

		require.Len(t, page.Records, 200)
		assert.Equal(t, uint(1001), page.Records[0].ShipmentID)
		assert.Equal(t, uint(1200), page.Records[199].ShipmentID)
	})

	t.Run("PastTheEndIsEmpty", func(t *testing.T) {
		page, err := service.PagedShipments(ctx, yearFilter(2024), 4)
		require.NoError(t, err)

		assert.Empty(t, page.Records)
		assert.Equal(t, 3, page.Pagination.TotalPages)
		assert.Equal(t, 4, page.Pagination.Page)
	})

	t.Run("PageZeroNormalizesToOne", func(t *testing.T) {
		page, err := service.PagedShipments(ctx, yearFilter(2024), 0)
		require.NoError(t, err)

		assert.Equal(t, 1, page.Pagination.Page)
		require.Len(t, page.Records, 500)
		assert.Equal(t, uint(1), page.Records[0].ShipmentID)
	})
}

func TestTransactionService_Transactions(t *testing.T) {
	db := setupTestDB(t)
	seedSupplyChain(t, db)
	seedShipments(t, db)

	receivings := []models.Receiving{
		{ReceivingID: 1, ShipmentID: 1, ReceiverCompanyID: 2, Quantity: 100, ReceivedDate: day(2024, time.March, 9)},
		{ReceivingID: 2, ShipmentID: 5, ReceiverCompanyID: 2, Quantity: 999, ReceivedDate: day(2023, time.May, 30)},
	}
	require.NoError(t, db.Create(&receivings).Error)

	seedInventory(t, db)
	service := NewTransactionService(db)

	report, err := service.Transactions(context.Background(), yearFilter(2024), 1, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(4), report.Shippings.Pagination.TotalRecords)
	require.Len(t, report.Shippings.Records, 4)
	assert.Equal(t, uint(1), report.Shippings.Records[0].ShipmentID)

	// Receivings follow their shipment's date window: the 2023 one drops out
	assert.Equal(t, int64(1), report.Receivings.Pagination.TotalRecords)
	require.Len(t, report.Receivings.Records, 1)
	assert.Equal(t, models.ReceivingRow{
		ReceivingID: 1, ShipmentID: 1, ReceiverCompany: "Nordsee Retail",
		Quantity: 100, ReceivedDate: "2024-03-09",
	}, report.Receivings.Records[0])

	assert.Equal(t, int64(3), report.Adjustments.Pagination.TotalRecords)
	require.Len(t, report.Adjustments.Records, 3)
}

func TestTransactionService_UpdateShipping(t *testing.T) {
	db := setupTestDB(t)
	seedSupplyChain(t, db)
	seedShipments(t, db)
	service := NewTransactionService(db)
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		err := service.UpdateShipping(ctx, models.UpdateShippingRequest{
			ShipmentID:   2,
			Quantity:     77,
			PromisedDate: "2024-06-01",
			ActualDate:   "2024-06-05",
		})
		require.NoError(t, err)

		var shipment models.Shipping
		require.NoError(t, db.First(&shipment, 2).Error)
		assert.Equal(t, 77, shipment.Quantity)
		require.NotNil(t, shipment.ActualDate)
		assert.Equal(t, models.ShipmentStatusDelayed, models.StatusOfShipment(shipment.PromisedDate, shipment.ActualDate))
	})

	t.Run("EmptyActualDateGoesBackInTransit", func(t *testing.T) {
		err := service.UpdateShipping(ctx, models.UpdateShippingRequest{
			ShipmentID:   1,
			Quantity:     100,
			PromisedDate: "2024-03-10",
		})
		require.NoError(t, err)

		var shipment models.Shipping
		require.NoError(t, db.First(&shipment, 1).Error)
		assert.Nil(t, shipment.ActualDate)
		assert.Equal(t, models.ShipmentStatusInTransit, models.StatusOfShipment(shipment.PromisedDate, shipment.ActualDate))
	})

	t.Run("Validation", func(t *testing.T) {
		cases := []struct {
			name string
			req  models.UpdateShippingRequest
			code string
		}{
			{"MissingID", models.UpdateShippingRequest{Quantity: 1, PromisedDate: "2024-01-01"}, "INVALID_SHIPMENT_ID"},
			{"NonPositiveQuantity", models.UpdateShippingRequest{ShipmentID: 1, Quantity: 0, PromisedDate: "2024-01-01"}, "INVALID_QUANTITY"},
			{"BadPromisedDate", models.UpdateShippingRequest{ShipmentID: 1, Quantity: 1, PromisedDate: "01/02/2024"}, "INVALID_PROMISED_DATE"},
			{"BadActualDate", models.UpdateShippingRequest{ShipmentID: 1, Quantity: 1, PromisedDate: "2024-01-01", ActualDate: "soon"}, "INVALID_ACTUAL_DATE"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				err := service.UpdateShipping(ctx, tc.req)
				apiErr := errors.GetAPIError(err)
				require.NotNil(t, apiErr)
				assert.Equal(t, tc.code, apiErr.Code)
			})
		}
	})

	t.Run("UnknownShipment", func(t *testing.T) {
		err := service.UpdateShipping(ctx, models.UpdateShippingRequest{
			ShipmentID: 999, Quantity: 1, PromisedDate: "2024-01-01",
		})
		apiErr := errors.GetAPIError(err)
		require.NotNil(t, apiErr)
		assert.Equal(t, errors.ErrorTypeNotFound, apiErr.Type)
	})
}

func TestTransactionService_UpdateReceiving(t *testing.T) {
	db := setupTestDB(t)
	seedSupplyChain(t, db)
	seedShipments(t, db)
	require.NoError(t, db.Create(&models.Receiving{
		ReceivingID: 1, ShipmentID: 1, ReceiverCompanyID: 2,
		Quantity: 100, ReceivedDate: day(2024, time.March, 9),
	}).Error)
	service := NewTransactionService(db)
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		err := service.UpdateReceiving(ctx, models.UpdateReceivingRequest{
			ReceivingID:  1,
			Quantity:     95,
			ReceivedDate: "2024-03-12",
		})
		require.NoError(t, err)

		var receiving models.Receiving
		require.NoError(t, db.First(&receiving, 1).Error)
		assert.Equal(t, 95, receiving.Quantity)
		assert.Equal(t, "2024-03-12", receiving.ReceivedDate.Format(models.DateLayout))
	})

	t.Run("BadDate", func(t *testing.T) {
		err := service.UpdateReceiving(ctx, models.UpdateReceivingRequest{
			ReceivingID: 1, Quantity: 1, ReceivedDate: "yesterday",
		})
		apiErr := errors.GetAPIError(err)
		require.NotNil(t, apiErr)
		assert.Equal(t, "INVALID_RECEIVED_DATE", apiErr.Code)
	})

	t.Run("UnknownReceiving", func(t *testing.T) {
		err := service.UpdateReceiving(ctx, models.UpdateReceivingRequest{
			ReceivingID: 999, Quantity: 1, ReceivedDate: "2024-01-01",
		})
		apiErr := errors.GetAPIError(err)
		require.NotNil(t, apiErr)
		assert.Equal(t, errors.ErrorTypeNotFound, apiErr.Type)
	})
}
