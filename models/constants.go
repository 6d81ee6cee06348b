package models

// CompanyType represents a company's position in the supply chain
type CompanyType string

const (
	CompanyTypeManufacturer CompanyType = "Manufacturer"
	CompanyTypeDistributor  CompanyType = "Distributor"
	CompanyTypeRetailer     CompanyType = "Retailer"
)

// ShipmentStatus is derived from comparing actual vs. promised delivery date
type ShipmentStatus string

const (
	ShipmentStatusOnTime    ShipmentStatus = "on_time"
	ShipmentStatusDelayed   ShipmentStatus = "delayed"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
)

// ImpactLevel classifies how severely a disruption event hits a company
type ImpactLevel string

const (
	ImpactLevelLow    ImpactLevel = "Low"
	ImpactLevelMedium ImpactLevel = "Medium"
	ImpactLevelHigh   ImpactLevel = "High"
)

// HealthBucket classifies a financial health score
type HealthBucket string

const (
	HealthBucketGood    HealthBucket = "good"
	HealthBucketWarning HealthBucket = "warning"
	HealthBucketBad     HealthBucket = "bad"
)

// Tier bounds for companies
const (
	MinTier = 1
	MaxTier = 3
)

// TransactionPageSize is the fixed page size on the transactions report
const TransactionPageSize = 500
