package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/retailcore/backend/internal/domain/trade"
	"github.com/retailcore/backend/internal/domain/treasury"
)

// ReturnService handles sale and purchase returns
type ReturnService struct {
	scope    TransactionScope
	balances BalanceInvalidator
	logger   *zap.Logger
}

// NewReturnService creates a new ReturnService
func NewReturnService(scope TransactionScope, balances BalanceInvalidator, logger *zap.Logger) *ReturnService {
	return &ReturnService{
		scope:    scope,
		balances: balances,
		logger:   logger,
	}
}

func (s *ReturnService) invalidate(ctx context.Context, safeIDs ...*uuid.UUID) {
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

// CreateSaleReturn takes goods back from a customer. Each returned quantity is
// bounded by what the invoice line has left to return; stock goes back at the
// invoice's location. The refund is the returned value less the deduction, and
// when it moves cash it is recorded as a synthetic Payment voucher against the
// invoice's account. The voucher is the canonical cash record of the refund;
// the balance query never sums the sale return table.
func (s *ReturnService) CreateSaleReturn(ctx context.Context, req CreateSaleReturnRequest) (*SaleReturnResult, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_RETURN", "Sale return requires at least one line")
	}

	var result *SaleReturnResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		inv, err := repos.Invoices().FindByID(ctx, req.InvoiceID)
		if err != nil {
			return err
		}

		totalQty := decimal.Zero
		returnedValue := valueobject.ZeroEGP()
		for _, input := range req.Lines {
			line := inv.FindLine(input.LineID)
			if line == nil {
				return shared.NewDomainError("LINE_NOT_FOUND", "Invoice line not found on this invoice")
			}
			if err := line.AddReturnedQty(input.Quantity); err != nil {
				return err
			}
			if err := repos.Stock().AdjustQuantity(ctx, inv.LocationID, line.VariantID, input.Quantity); err != nil {
				return err
			}
			totalQty = totalQty.Add(input.Quantity)
			returnedValue = returnedValue.MustAdd(line.Price.Multiply(input.Quantity))
		}

		refund, err := returnedValue.Subtract(orZero(req.Deduction))
		if err != nil {
			return err
		}
		if refund.IsNegative() {
			return shared.NewDomainError("INVALID_DEDUCTION", "Deduction exceeds the returned value")
		}

		ret, err := trade.NewSaleReturn(req.Date, inv.ID, totalQty, refund, orZero(req.Deduction), req.RefundMethod, req.Notes)
		if err != nil {
			return err
		}

		var voucher *treasury.Voucher
		if ret.PaysCash() {
			if inv.SafeID == nil {
				return shared.NewDomainError("MISSING_SAFE", "Cash refund requires the invoice to have a treasury account")
			}
			voucher, err = treasury.NewVoucher(req.Date, treasury.VoucherTypePayment, *inv.SafeID, refund,
				fmt.Sprintf("Refund for sale return on invoice %s", inv.ID))
			if err != nil {
				return err
			}
			if inv.CustomerID != nil {
				voucher.AttachCustomer(*inv.CustomerID)
			}
			if err := repos.Vouchers().Save(ctx, voucher); err != nil {
				return err
			}
		}

		if err := repos.Invoices().Save(ctx, inv); err != nil {
			return err
		}
		if err := repos.SaleReturns().Save(ctx, ret); err != nil {
			return err
		}
		result = &SaleReturnResult{Return: ret, RefundVoucher: voucher}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.RefundVoucher != nil {
		s.invalidate(ctx, &result.RefundVoucher.SafeID)
	}
	s.logger.Info("sale return recorded",
		zap.String("return_id", result.Return.ID.String()),
		zap.String("refund", result.Return.RefundAmount.StringFixed(2)),
		zap.Bool("cash_refund", result.RefundVoucher != nil))
	return result, nil
}

// CreatePurchaseReturn sends goods back to a supplier. Quantities are bounded
// per purchase line and require the stock to actually be present at the
// order's location. The header accumulates totals from per-line detail rows;
// those rows are what make a later deletion exactly reversible. The refund
// flows into the balance through the purchase's account attribution, so no
// voucher is written.
func (s *ReturnService) CreatePurchaseReturn(ctx context.Context, req CreatePurchaseReturnRequest) (*trade.PurchaseReturn, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_RETURN", "Purchase return requires at least one line")
	}

	var result *trade.PurchaseReturn
	var safeID *uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.Purchases().FindByID(ctx, req.PurchaseID)
		if err != nil {
			return err
		}
		safeID = po.SafeID

		ret, err := trade.NewPurchaseReturn(req.Date, po.ID, req.Notes)
		if err != nil {
			return err
		}

		for _, input := range req.Lines {
			line := po.FindLine(input.LineID)
			if line == nil {
				return shared.NewDomainError("LINE_NOT_FOUND", "Purchase line not found on this order")
			}
			available, err := repos.Stock().QuantityAt(ctx, po.LocationID, line.VariantID)
			if err != nil {
				return err
			}
			if available.LessThan(input.Quantity) {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Cannot return %s units: only %s in stock at the order location",
						input.Quantity.String(), available.String()))
			}
			if err := line.AddReturnedQty(input.Quantity); err != nil {
				return err
			}
			if err := ret.AddDetail(line.ID, input.Quantity, line.BuyPrice.Multiply(input.Quantity)); err != nil {
				return err
			}
			if err := repos.Stock().AdjustQuantity(ctx, po.LocationID, line.VariantID, input.Quantity.Neg()); err != nil {
				return err
			}
		}

		if err := repos.Purchases().Save(ctx, po); err != nil {
			return err
		}
		if err := repos.PurchaseReturns().Save(ctx, ret); err != nil {
			return err
		}
		result = ret
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, safeID)
	s.logger.Info("purchase return recorded",
		zap.String("return_id", result.ID.String()),
		zap.String("refund", result.RefundAmount.StringFixed(2)))
	return result, nil
}

// DeletePurchaseReturn reverses a purchase return exactly: each detail row
// puts its quantity back at the order's location and rolls the purchase
// line's returned counter back. A header without detail rows predates the
// detail table; it is deleted as-is and the caller gets a ConsistencyWarning
// because nothing can be reversed for it.
func (s *ReturnService) DeletePurchaseReturn(ctx context.Context, returnID uuid.UUID) (*shared.Warning, error) {
	var warning *shared.Warning
	var safeID *uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ret, err := repos.PurchaseReturns().FindByID(ctx, returnID)
		if err != nil {
			return err
		}

		if !ret.HasDetails() {
			w := shared.NewWarning("RETURN_WITHOUT_DETAILS",
				"Return header has no detail rows; deleted without reversing stock or counters")
			warning = &w
			return repos.PurchaseReturns().Delete(ctx, returnID)
		}

		po, err := repos.Purchases().FindByID(ctx, ret.PurchaseID)
		if err != nil {
			return err
		}
		safeID = po.SafeID

		for _, detail := range ret.Details {
			line := po.FindLine(detail.PurchaseLineID)
			if line == nil {
				return shared.NewDomainError("LINE_NOT_FOUND", "Purchase line referenced by the return no longer exists")
			}
			if err := line.SubtractReturnedQty(detail.Quantity); err != nil {
				return err
			}
			if err := repos.Stock().AdjustQuantity(ctx, po.LocationID, line.VariantID, detail.Quantity); err != nil {
				return err
			}
		}

		if err := repos.Purchases().Save(ctx, po); err != nil {
			return err
		}
		return repos.PurchaseReturns().Delete(ctx, returnID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, safeID)
	if warning != nil {
		s.logger.Warn("purchase return deleted without reversal",
			zap.String("return_id", returnID.String()),
			zap.String("warning", warning.Message))
	} else {
		s.logger.Info("purchase return deleted and reversed",
			zap.String("return_id", returnID.String()))
	}
	return warning, nil
}

// ListSaleReturns retrieves sale returns matching the filter
func (s *ReturnService) ListSaleReturns(ctx context.Context, filter trade.ReturnFilter) ([]trade.SaleReturn, error) {
	var returns []trade.SaleReturn
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		list, err := repos.SaleReturns().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		returns = list
		return nil
	})
	return returns, err
}

// ListPurchaseReturns retrieves purchase returns matching the filter
func (s *ReturnService) ListPurchaseReturns(ctx context.Context, filter trade.ReturnFilter) ([]trade.PurchaseReturn, error) {
	var returns []trade.PurchaseReturn
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		list, err := repos.PurchaseReturns().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		returns = list
		return nil
	})
	return returns, err
}
