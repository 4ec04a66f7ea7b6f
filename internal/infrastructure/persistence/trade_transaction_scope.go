package persistence

import (
	"context"

	"gorm.io/gorm"

	apptrade "github.com/retailcore/backend/internal/application/trade"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/trade"
	"github.com/retailcore/backend/internal/domain/treasury"
)

// GormTradeTransactionScope implements the trade TransactionScope using GORM
// transactions. Every repository handed to the callback is bound to the same
// *gorm.DB transaction, so a failing sale or purchase mutation rolls back its
// invoice, stock, cost and voucher writes together.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTradeRepositories{tx: tx})
	})
}

// gormTradeRepositories provides transaction-bound repository instances
type gormTradeRepositories struct {
	tx *gorm.DB
}

func (r *gormTradeRepositories) Invoices() trade.SaleInvoiceRepository {
	return NewGormSaleInvoiceRepository(r.tx)
}

func (r *gormTradeRepositories) Purchases() trade.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

func (r *gormTradeRepositories) SaleReturns() trade.SaleReturnRepository {
	return NewGormSaleReturnRepository(r.tx)
}

func (r *gormTradeRepositories) PurchaseReturns() trade.PurchaseReturnRepository {
	return NewGormPurchaseReturnRepository(r.tx)
}

func (r *gormTradeRepositories) Variants() catalog.ItemVariantRepository {
	return NewGormItemVariantRepository(r.tx)
}

func (r *gormTradeRepositories) Stock() inventory.StockRepository {
	return NewGormStockRepository(r.tx)
}

func (r *gormTradeRepositories) Vouchers() treasury.VoucherRepository {
	return NewGormVoucherRepository(r.tx)
}

var _ apptrade.TransactionScope = (*GormTradeTransactionScope)(nil)
var _ apptrade.TransactionalRepositories = (*gormTradeRepositories)(nil)
