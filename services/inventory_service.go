package services

import (
	"context"
	"time"

	"github.com/scm-sandbox/scm-backend/models"
	"github.com/scm-sandbox/scm-backend/pkg/errors"
	"github.com/scm-sandbox/scm-backend/pkg/monitoring"
	"gorm.io/gorm"
)

// InventoryService builds the inventory movements report and the
// update_adjustment edit path
type InventoryService struct {
	db *gorm.DB
}

// NewInventoryService creates a new inventory service
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

type inventoryAggregates struct {
	Total     int64
	NetChange int64
}

// Inventory computes the inventory page payload
func (s *InventoryService) Inventory(ctx context.Context, filter models.ReportFilter) (*models.InventoryReport, error) {
	start := time.Now()
	defer func() { monitoring.RecordReportDuration(ctx, "inventory", time.Since(start)) }()

	var agg inventoryAggregates
	queryStart := time.Now()
	err := s.db.WithContext(ctx).Model(&models.InventoryTransaction{}).
		Scopes(filter.InventoryScope()).
		Select("COUNT(*) AS total, COALESCE(SUM(inventory_transactions.quantity_change), 0) AS net_change").
		Scan(&agg).Error
	monitoring.RecordDBLatency(ctx, "inventory_transactions", "aggregate", time.Since(queryStart))
	if err != nil {
		return nil, errors.DatabaseError("inventory aggregates", err)
	}

	report := &models.InventoryReport{
		TotalTransactions: agg.Total,
		NetQuantityChange: agg.NetChange,
	}

	err = s.db.WithContext(ctx).Model(&models.InventoryTransaction{}).
		Joins("JOIN companies ON companies.company_id = inventory_transactions.company_id").
		Joins("JOIN products ON products.product_id = inventory_transactions.product_id").
		Scopes(filter.InventoryScope()).
		Select(`inventory_transactions.company_id AS company_id,
			companies.company_name AS company_name,
			inventory_transactions.product_id AS product_id,
			products.product_name AS product_name,
			COALESCE(SUM(inventory_transactions.quantity_change), 0) AS net_change,
			COUNT(*) AS transactions`).
		Group("inventory_transactions.company_id, companies.company_name, inventory_transactions.product_id, products.product_name").
		Order("net_change").
		Limit(20).
		Scan(&report.NetByProduct).Error
	if err != nil {
		return nil, errors.DatabaseError("inventory net by product", err)
	}

	err = s.db.WithContext(ctx).Model(&models.InventoryTransaction{}).
		Scopes(filter.InventoryScope()).
		Select("inventory_transactions.reason AS label, COUNT(*) AS count").
		Group("inventory_transactions.reason").
		Order("count DESC").
		Scan(&report.ReasonBreakdown).Error
	if err != nil {
		return nil, errors.DatabaseError("inventory reason breakdown", err)
	}

	var recent []models.InventoryTransaction
	err = s.db.WithContext(ctx).Model(&models.InventoryTransaction{}).
		Scopes(filter.InventoryScope()).
		Preload("Company").
		Preload("Product").
		Order("inventory_transactions.transaction_date DESC").
		Limit(20).
		Find(&recent).Error
	if err != nil {
		return nil, errors.DatabaseError("recent adjustments", err)
	}
	for i := range recent {
		report.RecentAdjustments = append(report.RecentAdjustments, shapeAdjustmentRow(&recent[i]))
	}

	return report, nil
}

// UpdateAdjustment applies the update_adjustment edit action
func (s *InventoryService) UpdateAdjustment(ctx context.Context, req models.UpdateAdjustmentRequest) error {
	if req.TransactionID == 0 {
		return errors.ValidationError("INVALID_TRANSACTION_ID", "Transaction ID is required")
	}
	if req.Reason == "" {
		return errors.ValidationError("INVALID_REASON", "Reason must not be empty")
	}

	result := s.db.WithContext(ctx).Model(&models.InventoryTransaction{}).
		Where("transaction_id = ?", req.TransactionID).
		Updates(map[string]interface{}{
			"quantity_change": req.QuantityChange,
			"reason":          req.Reason,
		})
	if result.Error != nil {
		return errors.DatabaseError("update adjustment", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFoundError("inventory transaction")
	}
	return nil
}

// shapeAdjustmentRow flattens a preloaded transaction into its table row
func shapeAdjustmentRow(tx *models.InventoryTransaction) models.AdjustmentRow {
	return models.AdjustmentRow{
		TransactionID:   tx.TransactionID,
		CompanyName:     tx.Company.CompanyName,
		ProductName:     tx.Product.ProductName,
		QuantityChange:  tx.QuantityChange,
		TransactionDate: tx.TransactionDate.Format(models.DateLayout),
		Reason:          tx.Reason,
	}
}
