package model

import "time"

// UnitOfSale is how a product is sold.
type UnitOfSale string

const (
	UnitUnits UnitOfSale = "units"
	UnitBoxes UnitOfSale = "boxes"
)

// ContactType distinguishes suppliers from stores.
type ContactType string

const (
	ContactSupplier ContactType = "supplier"
	ContactStore    ContactType = "store"
)

// Product is a catalog entry with stock, price and optional calendar dates.
type Product struct {
	ID          string     `json:"id" yaml:"id,omitempty" db:"id"`
	Code        string     `json:"code" yaml:"code" db:"code"`
	Description string     `json:"description" yaml:"description" db:"description"`
	Unit        UnitOfSale `json:"unit" yaml:"unit,omitempty" db:"unit"`
	Stock       int        `json:"stock" yaml:"stock" db:"stock"`
	Price       float64    `json:"price" yaml:"price" db:"price"`
	IntakeDate  *Date      `json:"intake_date,omitempty" yaml:"intake_date,omitempty" db:"intake_date"`
	ExpiryDate  *Date      `json:"expiry_date,omitempty" yaml:"expiry_date,omitempty" db:"expiry_date"`
	CreatedAt   time.Time  `json:"created_at" yaml:"-" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"-" db:"updated_at"`
}

// Contact is a supplier or store. Address, phone and email are optional.
type Contact struct {
	ID        string      `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Address   string      `json:"address,omitempty" db:"address"`
	Phone     string      `json:"phone,omitempty" db:"phone"`
	Email     string      `json:"email,omitempty" db:"email"`
	Type      ContactType `json:"type" db:"type"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// Default threshold values, applied when no configuration has been stored.
const (
	DefaultLowStockLimit       = 10
	DefaultExpiryHorizonMonths = 2
)

// ThresholdConfig holds the two tunables driving classification.
type ThresholdConfig struct {
	LowStockLimit       int       `json:"low_stock_limit" db:"low_stock_limit"`
	ExpiryHorizonMonths int       `json:"expiry_horizon_months" db:"expiry_horizon_months"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultThresholds returns the built-in threshold configuration.
func DefaultThresholds() ThresholdConfig {
	return ThresholdConfig{
		LowStockLimit:       DefaultLowStockLimit,
		ExpiryHorizonMonths: DefaultExpiryHorizonMonths,
	}
}

// AlertCategory classifies a product. Categories are mutually exclusive:
// a product gets exactly one, resolved by the severity precedence
// StockZero > StockLow > ExpirySoon.
type AlertCategory string

const (
	AlertStockZero  AlertCategory = "stock_zero"
	AlertStockLow   AlertCategory = "stock_low"
	AlertExpirySoon AlertCategory = "expiry_soon"
	AlertNone       AlertCategory = "none"
)

// AlertRecord is a derived, ephemeral record for one flagged product.
// DaysUntilExpiry is set only for ExpirySoon records and is never negative.
type AlertRecord struct {
	ProductID       string        `json:"product_id"`
	Code            string        `json:"code"`
	Description     string        `json:"description"`
	Category        AlertCategory `json:"category"`
	Stock           int           `json:"stock"`
	ExpiryDate      *Date         `json:"expiry_date,omitempty"`
	DaysUntilExpiry *int          `json:"days_until_expiry,omitempty"`
}

// AlertSet is the full classification result for a catalog snapshot.
// Alerts are ordered by severity, then by product code ascending; Counts
// holds per-category totals for the flagged categories only.
type AlertSet struct {
	Alerts []AlertRecord         `json:"alerts"`
	Counts map[AlertCategory]int `json:"counts"`
}

// StyleTag is the display style for a product row.
type StyleTag string

const (
	StyleDepleted     StyleTag = "depleted"
	StyleLowStock     StyleTag = "low_stock"
	StyleExpiringSoon StyleTag = "expiring_soon"
	StyleNormal       StyleTag = "normal"
)
