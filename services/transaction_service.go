package services

import (
	"context"
	"time"

	"github.com/scm-sandbox/scm-backend/models"
	"github.com/scm-sandbox/scm-backend/pkg/errors"
	"github.com/scm-sandbox/scm-backend/pkg/monitoring"
	"gorm.io/gorm"
)

// TransactionService builds the paginated transactions page and the
// update_shipping / update_receiving edit paths
type TransactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new transaction service
func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db}
}

// Transactions assembles all three tabs. Page state is independent per tab.
func (s *TransactionService) Transactions(ctx context.Context, filter models.ReportFilter, shipPage, recvPage, adjPage int) (*models.TransactionsReport, error) {
	start := time.Now()
	defer func() { monitoring.RecordReportDuration(ctx, "transactions", time.Since(start)) }()

	shippings, err := s.PagedShipments(ctx, filter, shipPage)
	if err != nil {
		return nil, err
	}
	receivings, err := s.PagedReceivings(ctx, filter, recvPage)
	if err != nil {
		return nil, err
	}
	adjustments, err := s.PagedAdjustments(ctx, filter, adjPage)
	if err != nil {
		return nil, err
	}

	return &models.TransactionsReport{
		Shippings:   *shippings,
		Receivings:  *receivings,
		Adjustments: *adjustments,
	}, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func pageInfo(page int, total int64) models.PageInfo {
	return models.PageInfo{
		Page:         page,
		PageSize:     models.TransactionPageSize,
		TotalRecords: total,
		TotalPages:   models.TotalPages(total, models.TransactionPageSize),
	}
}

// PagedShipments returns one page of the shippings tab
func (s *TransactionService) PagedShipments(ctx context.Context, filter models.ReportFilter, page int) (*models.PagedShipments, error) {
	page = normalizePage(page)

	var total int64
	err := s.db.WithContext(ctx).Model(&models.Shipping{}).
		Scopes(filter.ShipmentScope()).
		Count(&total).Error
	if err != nil {
		return nil, errors.DatabaseError("shipment count", err)
	}

	var shipments []models.Shipping
	queryStart := time.Now()
	err = s.db.WithContext(ctx).Model(&models.Shipping{}).
		Scopes(filter.ShipmentScope()).
		Preload("Product").
		Preload("SourceCompany").
		Preload("DestinationCompany").
		Preload("DistributorCompany").
		Order("shippings.shipment_id").
		Offset((page - 1) * models.TransactionPageSize).
		Limit(models.TransactionPageSize).
		Find(&shipments).Error
	monitoring.RecordDBLatency(ctx, "shippings", "page", time.Since(queryStart))
	if err != nil {
		return nil, errors.DatabaseError("shipment page", err)
	}

	result := &models.PagedShipments{Pagination: pageInfo(page, total)}
	for i := range shipments {
		result.Records = append(result.Records, shapeShipmentRow(&shipments[i]))
	}
	return result, nil
}

// PagedReceivings returns one page of the receivings tab
func (s *TransactionService) PagedReceivings(ctx context.Context, filter models.ReportFilter, page int) (*models.PagedReceivings, error) {
	page = normalizePage(page)

	// Receivings are scoped through their shipment's promised date
	scoped := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Receiving{}).
			Joins("JOIN shippings ON shippings.shipment_id = receivings.shipment_id").
			Scopes(filter.ShipmentScope())
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, errors.DatabaseError("receiving count", err)
	}

	var receivings []models.Receiving
	err := scoped().
		Preload("ReceiverCompany").
		Order("receivings.receiving_id").
		Offset((page - 1) * models.TransactionPageSize).
		Limit(models.TransactionPageSize).
		Find(&receivings).Error
	if err != nil {
		return nil, errors.DatabaseError("receiving page", err)
	}

	result := &models.PagedReceivings{Pagination: pageInfo(page, total)}
	for i := range receivings {
		result.Records = append(result.Records, models.ReceivingRow{
			ReceivingID:     receivings[i].ReceivingID,
			ShipmentID:      receivings[i].ShipmentID,
			ReceiverCompany: receivings[i].ReceiverCompany.CompanyName,
			Quantity:        receivings[i].Quantity,
			ReceivedDate:    receivings[i].ReceivedDate.Format(models.DateLayout),
		})
	}
	return result, nil
}

// PagedAdjustments returns one page of the adjustments tab
func (s *TransactionService) PagedAdjustments(ctx context.Context, filter models.ReportFilter, page int) (*models.PagedAdjustments, error) {
	page = normalizePage(page)

	var total int64
	err := s.db.WithContext(ctx).Model(&models.InventoryTransaction{}).
		Scopes(filter.InventoryScope()).
		Count(&total).Error
	if err != nil {
		return nil, errors.DatabaseError("adjustment count", err)
	}

	var adjustments []models.InventoryTransaction
	err = s.db.WithContext(ctx).Model(&models.InventoryTransaction{}).
		Scopes(filter.InventoryScope()).
		Preload("Company").
		Preload("Product").
		Order("inventory_transactions.transaction_id").
		Offset((page - 1) * models.TransactionPageSize).
		Limit(models.TransactionPageSize).
		Find(&adjustments).Error
	if err != nil {
		return nil, errors.DatabaseError("adjustment page", err)
	}

	result := &models.PagedAdjustments{Pagination: pageInfo(page, total)}
	for i := range adjustments {
		result.Records = append(result.Records, shapeAdjustmentRow(&adjustments[i]))
	}
	return result, nil
}

// UpdateShipping applies the update_shipping edit action. An empty actual
// date puts the shipment back in transit.
func (s *TransactionService) UpdateShipping(ctx context.Context, req models.UpdateShippingRequest) error {
	if req.ShipmentID == 0 {
		return errors.ValidationError("INVALID_SHIPMENT_ID", "Shipment ID is required")
	}
	if req.Quantity <= 0 {
		return errors.ValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}

	promised, err := time.Parse(models.DateLayout, req.PromisedDate)
	if err != nil {
		return errors.ValidationError("INVALID_PROMISED_DATE", "Promised date must be YYYY-MM-DD")
	}

	updates := map[string]interface{}{
		"quantity":      req.Quantity,
		"promised_date": promised,
		"actual_date":   nil,
	}
	if req.ActualDate != "" {
		actual, err := time.Parse(models.DateLayout, req.ActualDate)
		if err != nil {
			return errors.ValidationError("INVALID_ACTUAL_DATE", "Actual date must be YYYY-MM-DD")
		}
		updates["actual_date"] = actual
	}

	result := s.db.WithContext(ctx).Model(&models.Shipping{}).
		Where("shipment_id = ?", req.ShipmentID).
		Updates(updates)
	if result.Error != nil {
		return errors.DatabaseError("update shipping", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFoundError("shipment")
	}
	return nil
}

// UpdateReceiving applies the update_receiving edit action
func (s *TransactionService) UpdateReceiving(ctx context.Context, req models.UpdateReceivingRequest) error {
	if req.ReceivingID == 0 {
		return errors.ValidationError("INVALID_RECEIVING_ID", "Receiving ID is required")
	}
	if req.Quantity <= 0 {
		return errors.ValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}

	received, err := time.Parse(models.DateLayout, req.ReceivedDate)
	if err != nil {
		return errors.ValidationError("INVALID_RECEIVED_DATE", "Received date must be YYYY-MM-DD")
	}

	result := s.db.WithContext(ctx).Model(&models.Receiving{}).
		Where("receiving_id = ?", req.ReceivingID).
		Updates(map[string]interface{}{
			"quantity":      req.Quantity,
			"received_date": received,
		})
	if result.Error != nil {
		return errors.DatabaseError("update receiving", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFoundError("receiving")
	}
	return nil
}
