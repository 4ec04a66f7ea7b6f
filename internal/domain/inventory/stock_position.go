package inventory

import (
	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockPosition is the quantity of one item variant held at one location.
//
// A position is created on the first movement into (or out of) a location and
// is never deleted, only adjusted. Quantity is signed: a decrease applied
// before any increase yields a negative row, which is how negative-stock
// artifacts originate. Nothing at this level forbids that; the processors
// decide when a negative quantity is acceptable.
type StockPosition struct {
	shared.BaseEntity
	LocationID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_loc_variant"`
	VariantID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_loc_variant"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,3);not null"`
}

// TableName returns the database table name
func (StockPosition) TableName() string {
	return "stock_positions"
}

// NewStockPosition creates a position with an initial signed quantity
func NewStockPosition(locationID, variantID uuid.UUID, quantity decimal.Decimal) *StockPosition {
	return &StockPosition{
		BaseEntity: shared.NewBaseEntity(),
		LocationID: locationID,
		VariantID:  variantID,
		Quantity:   quantity,
	}
}

// Adjust applies a signed delta to the position quantity
func (p *StockPosition) Adjust(delta decimal.Decimal) {
	p.Quantity = p.Quantity.Add(delta)
}

// IsNegative reports whether the position has gone below zero
func (p *StockPosition) IsNegative() bool {
	return p.Quantity.IsNegative()
}
