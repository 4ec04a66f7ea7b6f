package trade

import (
	"context"

	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/trade"
	"github.com/retailcore/backend/internal/domain/treasury"
)

// TransactionScope provides transactional access to the repositories a trade
// operation touches. Every processor operation runs inside exactly one
// Execute call: all repository writes commit or roll back together, and there
// is no automatic retry.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped to the
// current transaction. A sale or purchase mutation can span invoice headers,
// stock positions, variant cost bases and treasury vouchers, which is why the
// scope exposes repositories from several domain packages.
type TransactionalRepositories interface {
	Invoices() trade.SaleInvoiceRepository
	Purchases() trade.PurchaseOrderRepository
	SaleReturns() trade.SaleReturnRepository
	PurchaseReturns() trade.PurchaseReturnRepository
	Variants() catalog.ItemVariantRepository
	Stock() inventory.StockRepository
	Vouchers() treasury.VoucherRepository
}
