package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/retailcore/backend/internal/domain/trade"
)

// PurchaseService handles purchase order operations, including the
// manufacturing pair and the cost-basis updates replenishment triggers.
type PurchaseService struct {
	scope    TransactionScope
	balances BalanceInvalidator
	logger   *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(scope TransactionScope, balances BalanceInvalidator, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{
		scope:    scope,
		balances: balances,
		logger:   logger,
	}
}

func (s *PurchaseService) invalidate(ctx context.Context, safeIDs ...*uuid.UUID) {
	if s.balances == nil {
		return
	}
	ids := make([]uuid.UUID, 0, len(safeIDs))
	for _, id := range safeIDs {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	if len(ids) > 0 {
		s.balances.InvalidateBalance(ctx, ids...)
	}
}

// replenish applies one stock-in to a variant: it recomputes the
// weighted-average unit cost from the aggregate quantity across all locations
// as it stands before this receipt, then increments stock at the location.
// Ordering matters; the aggregate must be read before the adjustment.
func replenish(ctx context.Context, repos TransactionalRepositories, locationID, variantID uuid.UUID, qty decimal.Decimal, unitCost valueobject.Money) error {
	variant, err := repos.Variants().FindByID(ctx, variantID)
	if err != nil {
		return err
	}
	aggregate, err := repos.Stock().AggregateQuantity(ctx, variantID)
	if err != nil {
		return err
	}
	next, err := inventory.NextUnitCost(aggregate, variant.UnitCost, qty, unitCost)
	if err != nil {
		return err
	}
	if err := variant.AdoptUnitCost(next); err != nil {
		return err
	}
	if err := repos.Variants().Save(ctx, variant); err != nil {
		return err
	}
	return repos.Stock().AdjustQuantity(ctx, locationID, variantID, qty)
}

// CreatePurchase records a standalone supplier purchase: every line increases
// stock at the order location and folds its buy price into the variant's
// weighted-average cost.
func (s *PurchaseService) CreatePurchase(ctx context.Context, req CreatePurchaseRequest) (*trade.PurchaseOrder, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_PURCHASE", "Purchase order requires at least one line")
	}

	var order *trade.PurchaseOrder
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := trade.NewPurchaseOrder(req.Date, req.SupplierID, req.LocationID, req.SafeID, req.PaymentMethod)
		if err != nil {
			return err
		}
		po.Notes = req.Notes

		for _, line := range req.Lines {
			if err := po.AddLine(line.VariantID, line.Quantity, line.BuyPrice); err != nil {
				return err
			}
		}
		if err := po.RecordInitialPayment(orZero(req.Paid)); err != nil {
			return err
		}

		for _, line := range po.Lines {
			if err := replenish(ctx, repos, po.LocationID, line.VariantID, line.Quantity, line.BuyPrice); err != nil {
				return err
			}
		}

		if err := repos.Purchases().Save(ctx, po); err != nil {
			return err
		}
		order = po
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, order.SafeID)
	s.logger.Info("purchase recorded",
		zap.String("purchase_id", order.ID.String()),
		zap.String("net_total", order.NetTotal.StringFixed(2)),
		zap.Int("lines", len(order.Lines)))
	return order, nil
}

// CreateManufacturing records a manufacturing order as two linked purchases:
// a materials order (parent, carrying the lines and the stock effect) and a
// labor order (child, payment audit only). The produced units enter stock and
// costing exactly once, at the combined (materials+labor)/quantity unit cost;
// the parent's lines are priced at the materials share alone so the two
// headers still sum to the real spend.
func (s *PurchaseService) CreateManufacturing(ctx context.Context, req CreateManufacturingRequest) (*ManufacturingResult, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_PURCHASE", "Manufacturing order requires at least one produced line")
	}

	totalQty := decimal.Zero
	for _, line := range req.Lines {
		if !line.Quantity.IsPositive() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Produced line quantity must be positive")
		}
		totalQty = totalQty.Add(line.Quantity)
	}
	unitFull, err := inventory.ApportionManufacturingCost(req.MaterialsCost, req.LaborCost, totalQty)
	if err != nil {
		return nil, err
	}
	unitMaterials, err := req.MaterialsCost.Divide(totalQty)
	if err != nil {
		return nil, err
	}

	var result *ManufacturingResult
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		materials, err := trade.NewPurchaseOrder(req.Date, req.MaterialSupplierID, req.LocationID, req.SafeID, trade.PaymentMethodCash)
		if err != nil {
			return err
		}
		materials.Notes = "Mfg materials: " + req.Notes
		for _, line := range req.Lines {
			if err := materials.AddLine(line.VariantID, line.Quantity, unitMaterials); err != nil {
				return err
			}
		}
		if err := materials.SetNetTotal(req.MaterialsCost); err != nil {
			return err
		}
		if err := materials.RecordInitialPayment(req.MaterialsCost); err != nil {
			return err
		}

		labor, err := trade.NewPurchaseOrder(req.Date, req.LaborSupplierID, req.LocationID, req.SafeID, trade.PaymentMethodCash)
		if err != nil {
			return err
		}
		labor.Notes = "Mfg labor: " + req.Notes
		labor.LinkToParent(materials.ID)
		if err := labor.SetNetTotal(req.LaborCost); err != nil {
			return err
		}
		if err := labor.RecordInitialPayment(req.LaborCost); err != nil {
			return err
		}

		for _, line := range materials.Lines {
			if err := replenish(ctx, repos, materials.LocationID, line.VariantID, line.Quantity, unitFull); err != nil {
				return err
			}
		}

		if err := repos.Purchases().Save(ctx, materials); err != nil {
			return err
		}
		if err := repos.Purchases().Save(ctx, labor); err != nil {
			return err
		}
		result = &ManufacturingResult{
			MaterialsOrder: materials,
			LaborOrder:     labor,
			UnitCost:       unitFull,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.SafeID)
	s.logger.Info("manufacturing order recorded",
		zap.String("materials_id", result.MaterialsOrder.ID.String()),
		zap.String("labor_id", result.LaborOrder.ID.String()),
		zap.String("unit_cost", result.UnitCost.StringFixed(2)))
	return result, nil
}

// DeletePurchase removes a purchase and reverses its stock effect. For a
// manufacturing pair the deletion cascades to the other half regardless of
// which side was named, and the stock reversal happens only on the materials
// side. When the reversal would drive any position negative the call fails
// with ErrStockWouldGoNegative unless force is set; with force the position
// goes negative and stays visible in the negative-stock report.
//
// The cost basis is deliberately left untouched: deleting a purchase does not
// rewind the weighted average it blended into.
func (s *PurchaseService) DeletePurchase(ctx context.Context, purchaseID uuid.UUID, force bool) error {
	var affectedSafes []*uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.Purchases().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}

		stockSide := po
		var other *trade.PurchaseOrder
		if po.IsLaborOrder() {
			parent, err := repos.Purchases().FindByID(ctx, *po.ParentPurchaseID)
			if err != nil {
				return err
			}
			stockSide = parent
			other = parent
		} else {
			child, err := repos.Purchases().FindChild(ctx, po.ID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			other = child
		}

		if !force {
			for _, line := range stockSide.Lines {
				available, err := repos.Stock().QuantityAt(ctx, stockSide.LocationID, line.VariantID)
				if err != nil {
					return err
				}
				if available.LessThan(line.Quantity) {
					return shared.ErrStockWouldGoNegative
				}
			}
		}
		for _, line := range stockSide.Lines {
			if err := repos.Stock().AdjustQuantity(ctx, stockSide.LocationID, line.VariantID, line.Quantity.Neg()); err != nil {
				return err
			}
		}

		affectedSafes = append(affectedSafes, po.SafeID)
		if other != nil {
			affectedSafes = append(affectedSafes, other.SafeID)
			if err := repos.Purchases().Delete(ctx, other.ID); err != nil {
				return err
			}
		}
		return repos.Purchases().Delete(ctx, po.ID)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, affectedSafes...)
	s.logger.Info("purchase deleted",
		zap.String("purchase_id", purchaseID.String()),
		zap.Bool("forced", force))
	return nil
}

// Settle records an additional payment toward the supplier, re-attributing
// the header to the paying account.
func (s *PurchaseService) Settle(ctx context.Context, purchaseID uuid.UUID, req SettleRequest) (*trade.PurchaseOrder, error) {
	var order *trade.PurchaseOrder
	var previousSafe *uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.Purchases().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		previousSafe = po.SafeID
		if err := po.Settle(req.Amount, req.SafeID, req.PaymentMethod); err != nil {
			return err
		}
		if err := repos.Purchases().Save(ctx, po); err != nil {
			return err
		}
		order = po
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, previousSafe, order.SafeID)
	s.logger.Info("purchase settled",
		zap.String("purchase_id", purchaseID.String()),
		zap.String("amount", req.Amount.StringFixed(2)))
	return order, nil
}

// GetPurchase retrieves a single purchase with its lines
func (s *PurchaseService) GetPurchase(ctx context.Context, purchaseID uuid.UUID) (*trade.PurchaseOrder, error) {
	var order *trade.PurchaseOrder
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.Purchases().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		order = po
		return nil
	})
	return order, err
}

// ListPurchases retrieves purchases matching the filter
func (s *PurchaseService) ListPurchases(ctx context.Context, filter trade.PurchaseFilter) ([]trade.PurchaseOrder, error) {
	var orders []trade.PurchaseOrder
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		list, err := repos.Purchases().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		orders = list
		return nil
	})
	return orders, err
}
