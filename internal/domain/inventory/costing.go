package inventory

import (
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// NextUnitCost computes the weighted-average unit cost after a replenishment.
//
// aggregateQty is the variant's total quantity across all locations before the
// replenishment, currentCost its unit cost before the replenishment. The result
// is rounded to 2 decimal places on every step; sequential rounding is part of
// the contract, so repeated partial-lot purchases cannot drift.
//
// Three cases:
//   - positive stock with a positive cost basis: blend the two lots;
//   - positive stock with a zero cost basis: the basis was never set, adopt the
//     incoming cost instead of blending against zero;
//   - zero or negative stock: first stock-in, adopt the incoming cost.
func NextUnitCost(aggregateQty decimal.Decimal, currentCost valueobject.Money, incomingQty decimal.Decimal, incomingCost valueobject.Money) (valueobject.Money, error) {
	if !incomingQty.IsPositive() {
		return valueobject.Money{}, shared.NewDomainError("INVALID_QUANTITY", "Replenishment quantity must be positive")
	}
	if incomingCost.IsNegative() {
		return valueobject.Money{}, shared.NewDomainError("INVALID_UNIT_COST", "Replenishment unit cost cannot be negative")
	}

	if aggregateQty.IsPositive() && currentCost.IsPositive() {
		oldValue := currentCost.Multiply(aggregateQty)
		newValue := incomingCost.Multiply(incomingQty)
		total := oldValue.MustAdd(newValue)
		blended, err := total.Divide(aggregateQty.Add(incomingQty))
		if err != nil {
			return valueobject.Money{}, err
		}
		return blended.Round(2), nil
	}

	return incomingCost.Round(2), nil
}
