package inventory

import (
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ApportionManufacturingCost spreads a combined materials+labor spend across
// the produced quantity, yielding the per-unit cost fed into costing.
//
// The two linked purchase orders (materials parent, labor child) exist for the
// supplier payment audit trail only; stock and cost effects use this combined
// unit cost exactly once.
func ApportionManufacturingCost(materials, labor valueobject.Money, producedQty decimal.Decimal) (valueobject.Money, error) {
	if materials.IsNegative() || labor.IsNegative() {
		return valueobject.Money{}, shared.NewDomainError("INVALID_MANUFACTURING_COST", "Materials and labor costs cannot be negative")
	}
	combined := materials.MustAdd(labor)
	if !combined.IsPositive() {
		return valueobject.Money{}, shared.NewDomainError("INVALID_MANUFACTURING_COST", "Combined materials and labor cost must be positive")
	}
	if !producedQty.IsPositive() {
		return valueobject.Money{}, shared.NewDomainError("INVALID_PRODUCED_QUANTITY", "Produced quantity must be positive")
	}
	unit, err := combined.Divide(producedQty)
	if err != nil {
		return valueobject.Money{}, err
	}
	return unit, nil
}
