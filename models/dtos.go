package models

// LabelCount is a generic grouped count used by breakdown charts
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Option is an entry for a filter dropdown
type Option struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// FilterOptions carries the dropdown option lists embedded in page renders
type FilterOptions struct {
	Companies    []Option `json:"companies"`
	Distributors []Option `json:"distributors"`
	Regions      []string `json:"regions"`
}

// PageInfo describes one paginated tab
type PageInfo struct {
	Page         int   `json:"page"`
	PageSize     int   `json:"pageSize"`
	TotalRecords int64 `json:"totalRecords"`
	TotalPages   int   `json:"totalPages"`
}

// MonthlyShipmentCount is one point of the monthly trend chart
type MonthlyShipmentCount struct {
	Month     string `json:"month"`
	Shipments int64  `json:"shipments"`
	OnTime    int64  `json:"onTime"`
	Delayed   int64  `json:"delayed"`
}

// ShipmentRow is one shipment shaped for tables and the transactions tab
type ShipmentRow struct {
	ShipmentID         uint           `json:"shipmentId"`
	ProductName        string         `json:"productName"`
	SourceCompany      string         `json:"sourceCompany"`
	DestinationCompany string         `json:"destinationCompany"`
	DistributorCompany string         `json:"distributorCompany"`
	Quantity           int            `json:"quantity"`
	PromisedDate       string         `json:"promisedDate"`
	ActualDate         *string        `json:"actualDate"`
	Status             ShipmentStatus `json:"status"`
	DaysLate           int            `json:"daysLate"`
	EstimatedCost      string         `json:"estimatedCost"`
	DelayPenalty       string         `json:"delayPenalty"`
}

// DeliveryKPIReport is the payload of the delivery KPIs page
type DeliveryKPIReport struct {
	TotalDeliveries       int64                  `json:"totalDeliveries"`
	OnTimeDeliveries      int64                  `json:"onTimeDeliveries"`
	DelayedDeliveries     int64                  `json:"delayedDeliveries"`
	InTransit             int64                  `json:"inTransit"`
	OnTimeRate            float64                `json:"onTimeRate"`
	TotalQuantity         int64                  `json:"totalQuantity"`
	EstimatedShippingCost string                 `json:"estimatedShippingCost"`
	TotalDelayPenalty     string                 `json:"totalDelayPenalty"`
	MonthlyTrend          []MonthlyShipmentCount `json:"monthlyTrend"`
	WorstDelays           []ShipmentRow          `json:"worstDelays"`
}

// SeverityCell is one cell of the disruption severity distribution (DSD)
type SeverityCell struct {
	Category    string      `json:"category"`
	ImpactLevel ImpactLevel `json:"impactLevel"`
	Count       int64       `json:"count"`
}

// CompanyExposure is the weighted disruption exposure of one company
type CompanyExposure struct {
	CompanyID     uint   `json:"companyId"`
	CompanyName   string `json:"companyName"`
	TotalEvents   int64  `json:"totalEvents"`
	HighImpact    int64  `json:"highImpact"`
	ExposureScore int64  `json:"exposureScore"`
}

// DisruptionEventRow is one event shaped for the recent-events table
type DisruptionEventRow struct {
	EventID      uint    `json:"eventId"`
	Category     string  `json:"category"`
	EventDate    string  `json:"eventDate"`
	RecoveryDate *string `json:"recoveryDate"`
	RecoveryDays int     `json:"recoveryDays"`
}

// DisruptionReport is the payload of the disruptions page. The scalar
// fields are the named KPI formulas (HDR, ART, DF, TD, RRC).
type DisruptionReport struct {
	TotalDisruptions          int64                `json:"totalDisruptions"`
	HighImpactDisruptions     int64                `json:"highImpactDisruptions"`
	HighImpactRate            float64              `json:"highImpactRate"`
	AvgRecoveryDays           float64              `json:"avgRecoveryDays"`
	DisruptionFrequency       float64              `json:"disruptionFrequency"`
	TotalDowntimeDays         int64                `json:"totalDowntimeDays"`
	RegionalRiskConcentration float64              `json:"regionalRiskConcentration"`
	SeverityDistribution      []SeverityCell       `json:"severityDistribution"`
	CompanyExposures          []CompanyExposure    `json:"companyExposures"`
	RecentEvents              []DisruptionEventRow `json:"recentEvents"`
}

// BucketCounts groups companies by health-score bucket
type BucketCounts struct {
	Good    int64 `json:"good"`
	Warning int64 `json:"warning"`
	Bad     int64 `json:"bad"`
}

// CompanyHealthRow is the latest reported score for one company
type CompanyHealthRow struct {
	CompanyID   uint         `json:"companyId"`
	CompanyName string       `json:"companyName"`
	Year        int          `json:"year"`
	Quarter     int          `json:"quarter"`
	HealthScore int          `json:"healthScore"`
	Bucket      HealthBucket `json:"bucket"`
}

// QuarterScore is one point of a company's quarterly health series
type QuarterScore struct {
	Year        int          `json:"year"`
	Quarter     int          `json:"quarter"`
	HealthScore int          `json:"healthScore"`
	Bucket      HealthBucket `json:"bucket"`
}

// FinancialHealthReport is the payload of the financial health page
type FinancialHealthReport struct {
	AverageScore    float64            `json:"averageScore"`
	Buckets         BucketCounts       `json:"buckets"`
	Companies       []CompanyHealthRow `json:"companies"`
	QuarterlySeries []QuarterScore     `json:"quarterlySeries,omitempty"`
}

// TierCount groups companies by tier
type TierCount struct {
	Tier  int   `json:"tier"`
	Count int64 `json:"count"`
}

// CompanyRow is one company shaped for the directory table
type CompanyRow struct {
	CompanyID       uint   `json:"companyId"`
	CompanyName     string `json:"companyName"`
	CompanyType     string `json:"companyType"`
	Tier            int    `json:"tier"`
	City            string `json:"city"`
	Country         string `json:"country"`
	Continent       string `json:"continent"`
	DependencyCount int64  `json:"dependencyCount"`
}

// CompanyDirectoryReport is the payload of the companies page
type CompanyDirectoryReport struct {
	TotalCompanies    int64        `json:"totalCompanies"`
	CountsByType      []LabelCount `json:"countsByType"`
	CountsByTier      []TierCount  `json:"countsByTier"`
	CountsByContinent []LabelCount `json:"countsByContinent"`
	Companies         []CompanyRow `json:"companies"`
}

// ProductRow is one supplied product on the company detail view
type ProductRow struct {
	ProductID   uint   `json:"productId"`
	ProductName string `json:"productName"`
	Category    string `json:"category"`
}

// CompanyDetail is the payload returned when company_id is present on the
// companies page. Missing related rows leave the corresponding field nil.
type CompanyDetail struct {
	Company         *CompanyRow       `json:"company"`
	Products        []ProductRow      `json:"products"`
	RecentShipments []ShipmentRow     `json:"recentShipments"`
	LatestHealth    *CompanyHealthRow `json:"latestHealth"`
	Exposure        *CompanyExposure  `json:"exposure"`
}

// DistributorRow aggregates one distributor's delivery performance
type DistributorRow struct {
	CompanyID     uint    `json:"companyId"`
	CompanyName   string  `json:"companyName"`
	Shipments     int64   `json:"shipments"`
	OnTime        int64   `json:"onTime"`
	Delayed       int64   `json:"delayed"`
	InTransit     int64   `json:"inTransit"`
	OnTimeRate    float64 `json:"onTimeRate"`
	AvgDelayDays  float64 `json:"avgDelayDays"`
	TotalQuantity int64   `json:"totalQuantity"`
}

// DistributorPerformanceReport is the payload of the distributors page
type DistributorPerformanceReport struct {
	Distributors []DistributorRow `json:"distributors"`
}

// InventoryNetRow is the net stock movement for one company/product pair
type InventoryNetRow struct {
	CompanyID    uint   `json:"companyId"`
	CompanyName  string `json:"companyName"`
	ProductID    uint   `json:"productId"`
	ProductName  string `json:"productName"`
	NetChange    int64  `json:"netChange"`
	Transactions int64  `json:"transactions"`
}

// AdjustmentRow is one inventory transaction shaped for tables
type AdjustmentRow struct {
	TransactionID   uint   `json:"transactionId"`
	CompanyName     string `json:"companyName"`
	ProductName     string `json:"productName"`
	QuantityChange  int    `json:"quantityChange"`
	TransactionDate string `json:"transactionDate"`
	Reason          string `json:"reason"`
}

// InventoryReport is the payload of the inventory page
type InventoryReport struct {
	TotalTransactions int64             `json:"totalTransactions"`
	NetQuantityChange int64             `json:"netQuantityChange"`
	NetByProduct      []InventoryNetRow `json:"netByProduct"`
	ReasonBreakdown   []LabelCount      `json:"reasonBreakdown"`
	RecentAdjustments []AdjustmentRow   `json:"recentAdjustments"`
}

// ReceivingRow is one receiving shaped for the transactions tab
type ReceivingRow struct {
	ReceivingID     uint   `json:"receivingId"`
	ShipmentID      uint   `json:"shipmentId"`
	ReceiverCompany string `json:"receiverCompany"`
	Quantity        int    `json:"quantity"`
	ReceivedDate    string `json:"receivedDate"`
}

// PagedShipments is one page of the shippings tab
type PagedShipments struct {
	Records    []ShipmentRow `json:"records"`
	Pagination PageInfo      `json:"pagination"`
}

// PagedReceivings is one page of the receivings tab
type PagedReceivings struct {
	Records    []ReceivingRow `json:"records"`
	Pagination PageInfo       `json:"pagination"`
}

// PagedAdjustments is one page of the adjustments tab
type PagedAdjustments struct {
	Records    []AdjustmentRow `json:"records"`
	Pagination PageInfo        `json:"pagination"`
}

// TransactionsReport is the payload of the transactions page. Page state is
// independent per tab.
type TransactionsReport struct {
	Shippings   PagedShipments   `json:"shippings"`
	Receivings  PagedReceivings  `json:"receivings"`
	Adjustments PagedAdjustments `json:"adjustments"`
}

// UpdateCompanyRequest is the update_company edit action
type UpdateCompanyRequest struct {
	CompanyID   uint   `json:"companyId"`
	CompanyName string `json:"companyName"`
	Tier        int    `json:"tier"`
}

// UpdateShippingRequest is the update_shipping edit action. ActualDate may
// be empty to mark the shipment back in transit.
type UpdateShippingRequest struct {
	ShipmentID   uint   `json:"shipmentId"`
	Quantity     int    `json:"quantity"`
	PromisedDate string `json:"promisedDate"`
	ActualDate   string `json:"actualDate"`
}

// UpdateReceivingRequest is the update_receiving edit action
type UpdateReceivingRequest struct {
	ReceivingID  uint   `json:"receivingId"`
	Quantity     int    `json:"quantity"`
	ReceivedDate string `json:"receivedDate"`
}

// UpdateAdjustmentRequest is the update_adjustment edit action
type UpdateAdjustmentRequest struct {
	TransactionID  uint   `json:"transactionId"`
	QuantityChange int    `json:"quantityChange"`
	Reason         string `json:"reason"`
}
