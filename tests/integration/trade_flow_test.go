package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/retailcore/backend/internal/application/catalog"
	inventoryapp "github.com/retailcore/backend/internal/application/inventory"
	tradeapp "github.com/retailcore/backend/internal/application/trade"
	treasuryapp "github.com/retailcore/backend/internal/application/treasury"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/retailcore/backend/internal/domain/trade"
	"github.com/retailcore/backend/internal/domain/treasury"
	"github.com/retailcore/backend/internal/infrastructure/persistence"
)

// passthroughCache disables balance caching so every Balance call hits the
// aggregation query.
type passthroughCache struct{}

func (passthroughCache) Get(context.Context, uuid.UUID) (*treasury.BalanceBreakdown, error) {
	return nil, nil
}

func (passthroughCache) Set(context.Context, uuid.UUID, *treasury.BalanceBreakdown) error {
	return nil
}

func (passthroughCache) InvalidateBalance(context.Context, ...uuid.UUID) {}

type services struct {
	catalog  *catalogapp.CatalogService
	stock    *inventoryapp.StockService
	sales    *tradeapp.SalesService
	purchase *tradeapp.PurchaseService
	returns  *tradeapp.ReturnService
	treasury *treasuryapp.TreasuryService
}

func newServices(tdb *TestDB) *services {
	log := zap.NewNop()
	cache := passthroughCache{}

	itemRepo := persistence.NewGormItemRepository(tdb.DB)
	variantRepo := persistence.NewGormItemVariantRepository(tdb.DB)
	invoiceRepo := persistence.NewGormSaleInvoiceRepository(tdb.DB)
	purchaseRepo := persistence.NewGormPurchaseOrderRepository(tdb.DB)
	safeRepo := persistence.NewGormSafeRepository(tdb.DB)
	voucherRepo := persistence.NewGormVoucherRepository(tdb.DB)
	transferRepo := persistence.NewGormCashTransferRepository(tdb.DB)

	tradeScope := persistence.NewGormTradeTransactionScope(tdb.DB)
	inventoryScope := persistence.NewGormInventoryTransactionScope(tdb.DB)

	return &services{
		catalog:  catalogapp.NewCatalogService(itemRepo, variantRepo, invoiceRepo, purchaseRepo, log),
		stock:    inventoryapp.NewStockService(inventoryScope, log),
		sales:    tradeapp.NewSalesService(tradeScope, cache, log),
		purchase: tradeapp.NewPurchaseService(tradeScope, cache, log),
		returns:  tradeapp.NewReturnService(tradeScope, cache, log),
		treasury: treasuryapp.NewTreasuryService(
			safeRepo, voucherRepo, transferRepo, invoiceRepo, purchaseRepo, cache, log,
		),
	}
}

func TestTradeFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	svc := newServices(tdb)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	// Seed: a safe, a location and an item with one variant
	safe, err := svc.treasury.CreateSafe(ctx, "Main Safe")
	require.NoError(t, err)

	location, err := svc.stock.CreateLocation(ctx, "Main Store", "Downtown")
	require.NoError(t, err)

	item, err := svc.catalog.CreateItem(ctx, catalogapp.CreateItemRequest{
		Name:     "Polo Shirt",
		Category: "Shirts",
		Variants: []catalogapp.VariantInput{
			{Color: "navy", Size: "L", Barcode: "1000001", SellPrice: valueobject.NewMoneyEGPFromFloat(150)},
		},
	})
	require.NoError(t, err)
	require.Len(t, item.Variants, 1)
	variantID := item.Variants[0].ID

	// Purchase 10 units at 100, fully paid from the safe
	order, err := svc.purchase.CreatePurchase(ctx, tradeapp.CreatePurchaseRequest{
		Date:          now,
		LocationID:    location.ID,
		SafeID:        &safe.ID,
		PaymentMethod: trade.PaymentMethodCash,
		Paid:          valueobject.NewMoneyEGPFromFloat(1000),
		Lines: []tradeapp.PurchaseLineInput{
			{VariantID: variantID, Quantity: decimal.NewFromInt(10), BuyPrice: valueobject.NewMoneyEGPFromFloat(100)},
		},
	})
	require.NoError(t, err)
	assert.True(t, order.RemainingAmount.IsZero())

	// Stock and weighted average cost reflect the receipt
	positions, err := svc.stock.Positions(ctx, stockFilterFor(location.ID, variantID))
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, "10", positions[0].Quantity.String())

	variant, err := svc.catalog.FindByBarcode(ctx, "1000001")
	require.NoError(t, err)
	assert.True(t, variant.UnitCost.Equals(valueobject.NewMoneyEGPFromFloat(100)),
		"unit cost should equal the buy price after the first receipt, got %s", variant.UnitCost)

	// Sell 4 units at 150, paid in full
	invoice, err := svc.sales.CreateInvoice(ctx, tradeapp.CreateSaleInvoiceRequest{
		Date:          now,
		LocationID:    location.ID,
		SafeID:        &safe.ID,
		PaymentMethod: trade.PaymentMethodCash,
		Paid:          valueobject.NewMoneyEGPFromFloat(600),
		Lines: []tradeapp.SaleLineInput{
			{VariantID: variantID, Quantity: decimal.NewFromInt(4), Price: valueobject.NewMoneyEGPFromFloat(150)},
		},
	})
	require.NoError(t, err)
	require.Len(t, invoice.Lines, 1)
	assert.True(t, invoice.Lines[0].CostAtSale.Equals(valueobject.NewMoneyEGPFromFloat(100)),
		"sale line must freeze the cost at time of sale")

	positions, err = svc.stock.Positions(ctx, stockFilterFor(location.ID, variantID))
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, "6", positions[0].Quantity.String())

	// Balance: 600 in from the invoice, 1000 out for the purchase
	breakdown, err := svc.treasury.Balance(ctx, safe.ID)
	require.NoError(t, err)
	assert.Equal(t, "600", breakdown.InvoicePayments.Amount().String())
	assert.Equal(t, "1000", breakdown.PurchaseOutflow.Amount().String())
	assert.Equal(t, "-400", breakdown.Balance.Amount().String())

	// Customer returns one unit; the refund is paid out as a voucher, so it
	// lands in the payments stream rather than a dedicated one
	result, err := svc.returns.CreateSaleReturn(ctx, tradeapp.CreateSaleReturnRequest{
		Date:         now,
		InvoiceID:    invoice.ID,
		RefundMethod: trade.PaymentMethodCash,
		Lines: []tradeapp.SaleReturnLineInput{
			{LineID: invoice.Lines[0].ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result.RefundVoucher)
	assert.Equal(t, treasury.VoucherTypePayment, result.RefundVoucher.Type)

	breakdown, err = svc.treasury.Balance(ctx, safe.ID)
	require.NoError(t, err)
	assert.Equal(t, "150", breakdown.Payments.Amount().String())
	assert.Equal(t, "-550", breakdown.Balance.Amount().String())

	positions, err = svc.stock.Positions(ctx, stockFilterFor(location.ID, variantID))
	require.NoError(t, err)
	assert.Equal(t, "7", positions[0].Quantity.String())

	returns, err := svc.returns.ListSaleReturns(ctx, trade.ReturnFilter{})
	require.NoError(t, err)
	require.Len(t, returns, 1)
}

func TestVoucherAndTransferStreams(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	svc := newServices(tdb)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	main, err := svc.treasury.CreateSafe(ctx, "Main")
	require.NoError(t, err)
	drawer, err := svc.treasury.CreateSafe(ctx, "Drawer")
	require.NoError(t, err)

	receipt, err := treasury.NewVoucher(now, treasury.VoucherTypeReceipt, main.ID,
		valueobject.NewMoneyEGPFromFloat(5000), "Opening balance")
	require.NoError(t, err)
	_, err = svc.treasury.CreateVoucher(ctx, receipt)
	require.NoError(t, err)

	transfer, err := treasury.NewCashTransfer(now, main.ID, drawer.ID,
		valueobject.NewMoneyEGPFromFloat(1200), "Float for the till")
	require.NoError(t, err)
	_, err = svc.treasury.CreateCashTransfer(ctx, transfer)
	require.NoError(t, err)

	mainBalance, err := svc.treasury.Balance(ctx, main.ID)
	require.NoError(t, err)
	assert.Equal(t, "5000", mainBalance.Receipts.Amount().String())
	assert.Equal(t, "1200", mainBalance.TransfersOut.Amount().String())
	assert.Equal(t, "3800", mainBalance.Balance.Amount().String())

	drawerBalance, err := svc.treasury.Balance(ctx, drawer.ID)
	require.NoError(t, err)
	assert.Equal(t, "1200", drawerBalance.TransfersIn.Amount().String())
	assert.Equal(t, "1200", drawerBalance.Balance.Amount().String())

	// A safe with history cannot be deleted
	err = svc.treasury.DeleteSafe(ctx, main.ID)
	require.Error(t, err)
}

func TestPartiallyPaidPurchaseOutflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	svc := newServices(tdb)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	safe, err := svc.treasury.CreateSafe(ctx, "Main Safe")
	require.NoError(t, err)

	location, err := svc.stock.CreateLocation(ctx, "Main Store", "Downtown")
	require.NoError(t, err)

	item, err := svc.catalog.CreateItem(ctx, catalogapp.CreateItemRequest{
		Name:     "Denim Jacket",
		Category: "Jackets",
		Variants: []catalogapp.VariantInput{
			{Color: "blue", Size: "M", Barcode: "2000001", SellPrice: valueobject.NewMoneyEGPFromFloat(400)},
		},
	})
	require.NoError(t, err)
	variantID := item.Variants[0].ID

	receipt, err := treasury.NewVoucher(now, treasury.VoucherTypeReceipt, safe.ID,
		valueobject.NewMoneyEGPFromFloat(5000), "Opening balance")
	require.NoError(t, err)
	_, err = svc.treasury.CreateVoucher(ctx, receipt)
	require.NoError(t, err)

	// Buy 10 units at 100 but pay only 400 of the 1000 net total
	order, err := svc.purchase.CreatePurchase(ctx, tradeapp.CreatePurchaseRequest{
		Date:          now,
		LocationID:    location.ID,
		SafeID:        &safe.ID,
		PaymentMethod: trade.PaymentMethodCash,
		Paid:          valueobject.NewMoneyEGPFromFloat(400),
		Lines: []tradeapp.PurchaseLineInput{
			{VariantID: variantID, Quantity: decimal.NewFromInt(10), BuyPrice: valueobject.NewMoneyEGPFromFloat(100)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "600", order.RemainingAmount.Amount().String())

	// The safe is charged the full net total, not just what was paid so far
	breakdown, err := svc.treasury.Balance(ctx, safe.ID)
	require.NoError(t, err)
	assert.Equal(t, "1000", breakdown.PurchaseOutflow.Amount().String())
	assert.Equal(t, "4000", breakdown.Balance.Amount().String())

	// Settling the remainder changes paid/remaining but not the outflow
	settled, err := svc.purchase.Settle(ctx, order.ID, tradeapp.SettleRequest{
		Amount:        valueobject.NewMoneyEGPFromFloat(600),
		SafeID:        safe.ID,
		PaymentMethod: trade.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.True(t, settled.RemainingAmount.IsZero())

	breakdown, err = svc.treasury.Balance(ctx, safe.ID)
	require.NoError(t, err)
	assert.Equal(t, "1000", breakdown.PurchaseOutflow.Amount().String())
	assert.Equal(t, "4000", breakdown.Balance.Amount().String())
}

func stockFilterFor(locationID, variantID uuid.UUID) inventory.StockFilter {
	return inventory.StockFilter{LocationID: &locationID, VariantID: &variantID}
}
