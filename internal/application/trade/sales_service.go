package trade

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/trade"
)

// BalanceInvalidator drops cached safe balances after a cash-affecting write.
// A nil invalidator is allowed; invalidation is best-effort and never fails
// the business operation.
type BalanceInvalidator interface {
	InvalidateBalance(ctx context.Context, safeIDs ...uuid.UUID)
}

// SalesService handles sale invoice operations
type SalesService struct {
	scope    TransactionScope
	balances BalanceInvalidator
	logger   *zap.Logger
}

// NewSalesService creates a new SalesService
func NewSalesService(scope TransactionScope, balances BalanceInvalidator, logger *zap.Logger) *SalesService {
	return &SalesService{
		scope:    scope,
		balances: balances,
		logger:   logger,
	}
}

func (s *SalesService) invalidate(ctx context.Context, safeIDs ...*uuid.UUID) {
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

// CreateInvoice records a sale: it validates stock for every line up front,
// snapshots each variant's current unit cost on the line, decrements stock at
// the invoice location and records the initial payment. All lines are checked
// before anything is written, so an insufficient-stock rejection reports every
// failing line and leaves no partial state.
func (s *SalesService) CreateInvoice(ctx context.Context, req CreateSaleInvoiceRequest) (*trade.SaleInvoice, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_INVOICE", "Sale invoice requires at least one line")
	}

	var invoice *trade.SaleInvoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		inv, err := trade.NewSaleInvoice(req.Date, req.CustomerID, req.LocationID, req.SafeID, req.PaymentMethod)
		if err != nil {
			return err
		}
		inv.Notes = req.Notes

		var shortages []string
		for _, line := range req.Lines {
			variant, err := repos.Variants().FindByID(ctx, line.VariantID)
			if err != nil {
				return err
			}
			available, err := repos.Stock().QuantityAt(ctx, req.LocationID, line.VariantID)
			if err != nil {
				return err
			}
			if available.LessThan(line.Quantity) {
				shortages = append(shortages, fmt.Sprintf("%s: requested %s, available %s",
					variant.Barcode, line.Quantity.String(), available.String()))
				continue
			}
			if err := inv.AddLine(line.VariantID, line.Quantity, line.Price, variant.UnitCost, line.Note); err != nil {
				return err
			}
		}
		if len(shortages) > 0 {
			return shared.NewDomainError("INSUFFICIENT_STOCK",
				"Insufficient stock: "+strings.Join(shortages, "; "))
		}

		if err := inv.ApplyCharges(orZero(req.Discount), orZero(req.Tax), orZero(req.Shipping)); err != nil {
			return err
		}
		if err := inv.RecordInitialPayment(orZero(req.Paid)); err != nil {
			return err
		}

		for _, line := range inv.Lines {
			if err := repos.Stock().AdjustQuantity(ctx, inv.LocationID, line.VariantID, line.Quantity.Neg()); err != nil {
				return err
			}
		}

		if err := repos.Invoices().Save(ctx, inv); err != nil {
			return err
		}
		invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, invoice.SafeID)
	s.logger.Info("sale invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("net_total", invoice.NetTotal.StringFixed(2)),
		zap.Int("lines", len(invoice.Lines)))
	return invoice, nil
}

// UpdateInvoice replaces an invoice's content in place: old lines hand their
// stock back at the old location first, then the new lines are validated and
// applied exactly like a fresh sale, including new unit-cost snapshots. The
// invoice keeps its identity; returned counters on replaced lines are reset.
func (s *SalesService) UpdateInvoice(ctx context.Context, invoiceID uuid.UUID, req CreateSaleInvoiceRequest) (*trade.SaleInvoice, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_INVOICE", "Sale invoice requires at least one line")
	}

	var invoice *trade.SaleInvoice
	var previousSafe *uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.Invoices().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		previousSafe = existing.SafeID

		for _, line := range existing.Lines {
			if err := repos.Stock().AdjustQuantity(ctx, existing.LocationID, line.VariantID, line.Quantity); err != nil {
				return err
			}
		}
		if err := repos.Invoices().DeleteLines(ctx, invoiceID); err != nil {
			return err
		}

		inv, err := trade.NewSaleInvoice(req.Date, req.CustomerID, req.LocationID, req.SafeID, req.PaymentMethod)
		if err != nil {
			return err
		}
		inv.BaseAggregateRoot = existing.BaseAggregateRoot
		inv.Notes = req.Notes

		var shortages []string
		for _, line := range req.Lines {
			variant, err := repos.Variants().FindByID(ctx, line.VariantID)
			if err != nil {
				return err
			}
			available, err := repos.Stock().QuantityAt(ctx, req.LocationID, line.VariantID)
			if err != nil {
				return err
			}
			if available.LessThan(line.Quantity) {
				shortages = append(shortages, fmt.Sprintf("%s: requested %s, available %s",
					variant.Barcode, line.Quantity.String(), available.String()))
				continue
			}
			if err := inv.AddLine(line.VariantID, line.Quantity, line.Price, variant.UnitCost, line.Note); err != nil {
				return err
			}
		}
		if len(shortages) > 0 {
			return shared.NewDomainError("INSUFFICIENT_STOCK",
				"Insufficient stock: "+strings.Join(shortages, "; "))
		}

		if err := inv.ApplyCharges(orZero(req.Discount), orZero(req.Tax), orZero(req.Shipping)); err != nil {
			return err
		}
		if err := inv.RecordInitialPayment(orZero(req.Paid)); err != nil {
			return err
		}

		for _, line := range inv.Lines {
			if err := repos.Stock().AdjustQuantity(ctx, inv.LocationID, line.VariantID, line.Quantity.Neg()); err != nil {
				return err
			}
		}

		if err := repos.Invoices().Save(ctx, inv); err != nil {
			return err
		}
		invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, previousSafe, invoice.SafeID)
	s.logger.Info("sale invoice updated",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("net_total", invoice.NetTotal.StringFixed(2)))
	return invoice, nil
}

// DeleteInvoice removes a sale invoice and restores stock at the invoice
// location. Each line puts back its sold quantity less what already came back
// through the return flow, so a deletion after a partial return does not
// double-restore.
func (s *SalesService) DeleteInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	var safeID *uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		inv, err := repos.Invoices().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		safeID = inv.SafeID

		for _, line := range inv.Lines {
			restore := line.RestoreQty()
			if restore.IsZero() {
				continue
			}
			if err := repos.Stock().AdjustQuantity(ctx, inv.LocationID, line.VariantID, restore); err != nil {
				return err
			}
		}
		if err := repos.Invoices().DeleteLines(ctx, invoiceID); err != nil {
			return err
		}
		return repos.Invoices().Delete(ctx, invoiceID)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, safeID)
	s.logger.Info("sale invoice deleted", zap.String("invoice_id", invoiceID.String()))
	return nil
}

// Settle records an additional payment against a partially paid invoice.
// The header holds a single account reference, so settling from a different
// account re-attributes the whole invoice to it.
func (s *SalesService) Settle(ctx context.Context, invoiceID uuid.UUID, req SettleRequest) (*trade.SaleInvoice, error) {
	var invoice *trade.SaleInvoice
	var previousSafe *uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		inv, err := repos.Invoices().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		previousSafe = inv.SafeID
		if err := inv.Settle(req.Amount, req.SafeID, req.PaymentMethod); err != nil {
			return err
		}
		if err := repos.Invoices().Save(ctx, inv); err != nil {
			return err
		}
		invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, previousSafe, invoice.SafeID)
	s.logger.Info("sale invoice settled",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("amount", req.Amount.StringFixed(2)))
	return invoice, nil
}

// GetInvoice retrieves a single invoice with its lines
func (s *SalesService) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*trade.SaleInvoice, error) {
	var invoice *trade.SaleInvoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		inv, err := repos.Invoices().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		invoice = inv
		return nil
	})
	return invoice, err
}

// ListInvoices retrieves invoices matching the filter
func (s *SalesService) ListInvoices(ctx context.Context, filter trade.InvoiceFilter) ([]trade.SaleInvoice, error) {
	var invoices []trade.SaleInvoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		list, err := repos.Invoices().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		invoices = list
		return nil
	})
	return invoices, err
}
