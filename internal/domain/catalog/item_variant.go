package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
)

// ItemVariant is a concrete stock-keeping unit of an item: one color/size
// combination with its own barcode, sell price and weighted-average unit cost.
//
// UnitCost is the moving weighted average. It is recomputed only on stock
// replenishment (purchase or manufacturing receipt); sales and deletions never
// touch it.
type ItemVariant struct {
	shared.BaseAggregateRoot
	ItemID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	Color     string            `gorm:"index"`
	Size      string            `gorm:"index"`
	Barcode   string            `gorm:"uniqueIndex;not null"`
	UnitCost  valueobject.Money `gorm:"type:decimal(18,4)"`
	SellPrice valueobject.Money `gorm:"type:decimal(18,4)"`
}

// TableName returns the database table name
func (ItemVariant) TableName() string {
	return "item_variants"
}

// NewItemVariant creates a new variant for an item
func NewItemVariant(itemID uuid.UUID, color, size, barcode string, sellPrice valueobject.Money) (*ItemVariant, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Variant barcode cannot be empty")
	}
	if sellPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SELL_PRICE", "Sell price cannot be negative")
	}
	return &ItemVariant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemID:            itemID,
		Color:             color,
		Size:              size,
		Barcode:           barcode,
		UnitCost:          valueobject.ZeroEGP(),
		SellPrice:         sellPrice,
	}, nil
}

// AdoptUnitCost overwrites the weighted-average unit cost.
// Only the costing service may call this, as part of a replenishment.
func (v *ItemVariant) AdoptUnitCost(cost valueobject.Money) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT_COST", "Unit cost cannot be negative")
	}
	v.UnitCost = cost
	v.IncrementVersion()
	return nil
}

// ChangeSellPrice updates the sell price
func (v *ItemVariant) ChangeSellPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_SELL_PRICE", "Sell price cannot be negative")
	}
	v.SellPrice = price
	v.IncrementVersion()
	return nil
}

// Label returns a human-readable variant description
func (v *ItemVariant) Label() string {
	parts := make([]string, 0, 2)
	if v.Color != "" {
		parts = append(parts, v.Color)
	}
	if v.Size != "" {
		parts = append(parts, v.Size)
	}
	return strings.Join(parts, " / ")
}
