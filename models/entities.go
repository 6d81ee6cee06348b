package models

import "time"

// Location represents the locations table
type Location struct {
	LocationID uint   `gorm:"primarykey;column:location_id" json:"locationId"`
	City       string `gorm:"column:city;not null" json:"city"`
	Country    string `gorm:"column:country;not null" json:"country"`
	Continent  string `gorm:"column:continent;not null" json:"continent"`
}

// TableName sets the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// Company represents the companies table
type Company struct {
	CompanyID   uint   `gorm:"primarykey;column:company_id" json:"companyId"`
	CompanyName string `gorm:"column:company_name;not null" json:"companyName"`
	CompanyType string `gorm:"column:company_type;not null" json:"companyType"`
	Tier        int    `gorm:"column:tier;not null" json:"tier"`
	LocationID  uint   `gorm:"column:location_id;not null" json:"locationId"`
	BaseModel

	// Relationships
	Location Location `gorm:"foreignKey:LocationID;references:LocationID" json:"location"`
}

// TableName sets the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// Product represents the products table
type Product struct {
	ProductID   uint   `gorm:"primarykey;column:product_id" json:"productId"`
	ProductName string `gorm:"column:product_name;not null" json:"productName"`
	Category    string `gorm:"column:category;not null" json:"category"`
}

// TableName sets the table name for GORM
func (Product) TableName() string {
	return "products"
}

// SuppliesProduct links a company to a product it supplies
type SuppliesProduct struct {
	CompanyID uint `gorm:"primarykey;column:company_id" json:"companyId"`
	ProductID uint `gorm:"primarykey;column:product_id" json:"productId"`
}

// TableName sets the table name for GORM
func (SuppliesProduct) TableName() string {
	return "supplies_product"
}

// DependsOn records that a company depends on another company as a supplier
type DependsOn struct {
	CompanyID         uint `gorm:"primarykey;column:company_id" json:"companyId"`
	SupplierCompanyID uint `gorm:"primarykey;column:supplier_company_id" json:"supplierCompanyId"`
}

// TableName sets the table name for GORM
func (DependsOn) TableName() string {
	return "depends_on"
}

// Shipping represents the shippings table. ActualDate is NULL while the
// shipment is still in transit.
type Shipping struct {
	ShipmentID           uint       `gorm:"primarykey;column:shipment_id" json:"shipmentId"`
	ProductID            uint       `gorm:"column:product_id;not null" json:"productId"`
	SourceCompanyID      uint       `gorm:"column:source_company_id;not null" json:"sourceCompanyId"`
	DestinationCompanyID uint       `gorm:"column:destination_company_id;not null" json:"destinationCompanyId"`
	DistributorCompanyID uint       `gorm:"column:distributor_company_id;not null" json:"distributorCompanyId"`
	Quantity             int        `gorm:"column:quantity;not null" json:"quantity"`
	PromisedDate         time.Time  `gorm:"column:promised_date;not null" json:"promisedDate"`
	ActualDate           *time.Time `gorm:"column:actual_date" json:"actualDate"`
	BaseModel

	// Relationships
	Product            Product `gorm:"foreignKey:ProductID;references:ProductID" json:"product"`
	SourceCompany      Company `gorm:"foreignKey:SourceCompanyID;references:CompanyID" json:"sourceCompany"`
	DestinationCompany Company `gorm:"foreignKey:DestinationCompanyID;references:CompanyID" json:"destinationCompany"`
	DistributorCompany Company `gorm:"foreignKey:DistributorCompanyID;references:CompanyID" json:"distributorCompany"`
}

// TableName sets the table name for GORM
func (Shipping) TableName() string {
	return "shippings"
}

// Receiving represents the receivings table
type Receiving struct {
	ReceivingID       uint      `gorm:"primarykey;column:receiving_id" json:"receivingId"`
	ShipmentID        uint      `gorm:"column:shipment_id;not null" json:"shipmentId"`
	ReceiverCompanyID uint      `gorm:"column:receiver_company_id;not null" json:"receiverCompanyId"`
	Quantity          int       `gorm:"column:quantity;not null" json:"quantity"`
	ReceivedDate      time.Time `gorm:"column:received_date;not null" json:"receivedDate"`
	BaseModel

	// Relationships
	Shipment        Shipping `gorm:"foreignKey:ShipmentID;references:ShipmentID" json:"shipment"`
	ReceiverCompany Company  `gorm:"foreignKey:ReceiverCompanyID;references:CompanyID" json:"receiverCompany"`
}

// TableName sets the table name for GORM
func (Receiving) TableName() string {
	return "receivings"
}

// InventoryTransaction represents the inventory_transactions table.
// QuantityChange is negative for outbound stock movements.
type InventoryTransaction struct {
	TransactionID   uint      `gorm:"primarykey;column:transaction_id" json:"transactionId"`
	CompanyID       uint      `gorm:"column:company_id;not null" json:"companyId"`
	ProductID       uint      `gorm:"column:product_id;not null" json:"productId"`
	QuantityChange  int       `gorm:"column:quantity_change;not null" json:"quantityChange"`
	TransactionDate time.Time `gorm:"column:transaction_date;not null" json:"transactionDate"`
	Reason          string    `gorm:"column:reason;not null" json:"reason"`
	BaseModel

	// Relationships
	Company Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company"`
	Product Product `gorm:"foreignKey:ProductID;references:ProductID" json:"product"`
}

// TableName sets the table name for GORM
func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

// FinancialReport represents the financial_reports table, one row per
// company per fiscal quarter
type FinancialReport struct {
	ReportID    uint `gorm:"primarykey;column:report_id" json:"reportId"`
	CompanyID   uint `gorm:"column:company_id;not null" json:"companyId"`
	Year        int  `gorm:"column:year;not null" json:"year"`
	Quarter     int  `gorm:"column:quarter;not null" json:"quarter"`
	HealthScore int  `gorm:"column:health_score;not null" json:"healthScore"`
	BaseModel

	// Relationships
	Company Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company"`
}

// TableName sets the table name for GORM
func (FinancialReport) TableName() string {
	return "financial_reports"
}

// DisruptionEvent represents the disruption_events table. RecoveryDate is
// NULL while the disruption is ongoing.
type DisruptionEvent struct {
	EventID      uint       `gorm:"primarykey;column:event_id" json:"eventId"`
	Category     string     `gorm:"column:category;not null" json:"category"`
	EventDate    time.Time  `gorm:"column:event_date;not null" json:"eventDate"`
	RecoveryDate *time.Time `gorm:"column:recovery_date" json:"recoveryDate"`
	BaseModel
}

// TableName sets the table name for GORM
func (DisruptionEvent) TableName() string {
	return "disruption_events"
}

// ImpactsCompany links a disruption event to an impacted company
type ImpactsCompany struct {
	EventID     uint   `gorm:"primarykey;column:event_id" json:"eventId"`
	CompanyID   uint   `gorm:"primarykey;column:company_id" json:"companyId"`
	ImpactLevel string `gorm:"column:impact_level;not null" json:"impactLevel"`
}

// TableName sets the table name for GORM
func (ImpactsCompany) TableName() string {
	return "impacts_company"
}
