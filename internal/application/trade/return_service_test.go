package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailcore/backend/internal/domain/trade"
	"github.com/retailcore/backend/internal/domain/treasury"
)

func TestCreateSaleReturn(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*testEnv, uuid.UUID, uuid.UUID, *trade.SaleInvoice) {
		env := newTestEnv()
		loc := uuid.New()
		safe := uuid.New()
		variant := env.addVariant(t, "HX-SR", "6")
		env.setStock(t, loc, variant.ID, "20")

		inv, err := env.sales.CreateInvoice(ctx, saleRequest(&safe, loc, trade.PaymentMethodCash,
			SaleLineInput{VariantID: variant.ID, Quantity: qty("5"), Price: money(t, "10")}))
		require.NoError(t, err)
		require.Equal(t, "15", env.stockAt(t, loc, variant.ID))
		return env, loc, variant.ID, inv
	}

	t.Run("restores stock and emits the refund voucher", func(t *testing.T) {
		env, loc, variantID, inv := setup(t)

		result, err := env.returns.CreateSaleReturn(ctx, CreateSaleReturnRequest{
			Date:         time.Now(),
			InvoiceID:    inv.ID,
			RefundMethod: trade.PaymentMethodCash,
			Lines:        []SaleReturnLineInput{{LineID: inv.Lines[0].ID, Quantity: qty("2")}},
		})
		require.NoError(t, err)

		assert.Equal(t, "17", env.stockAt(t, loc, variantID))
		assert.Equal(t, "2", inv.Lines[0].ReturnedQty.String())
		assert.Equal(t, "20.00", result.Return.RefundAmount.StringFixed(2))

		require.NotNil(t, result.RefundVoucher)
		assert.Equal(t, treasury.VoucherTypePayment, result.RefundVoucher.Type)
		assert.Equal(t, *inv.SafeID, result.RefundVoucher.SafeID)
		assert.Equal(t, "20.00", result.RefundVoucher.Amount.StringFixed(2))
		assert.Len(t, env.vouchers.vouchers, 1)
	})

	t.Run("store credit refund writes no voucher", func(t *testing.T) {
		env, loc, variantID, inv := setup(t)

		result, err := env.returns.CreateSaleReturn(ctx, CreateSaleReturnRequest{
			Date:         time.Now(),
			InvoiceID:    inv.ID,
			RefundMethod: trade.PaymentMethodStoreCredit,
			Lines:        []SaleReturnLineInput{{LineID: inv.Lines[0].ID, Quantity: qty("2")}},
		})
		require.NoError(t, err)

		assert.Equal(t, "17", env.stockAt(t, loc, variantID))
		assert.Nil(t, result.RefundVoucher)
		assert.Empty(t, env.vouchers.vouchers)
	})

	t.Run("deduction reduces the refund", func(t *testing.T) {
		env, _, _, inv := setup(t)

		result, err := env.returns.CreateSaleReturn(ctx, CreateSaleReturnRequest{
			Date:         time.Now(),
			InvoiceID:    inv.ID,
			Deduction:    money(t, "5"),
			RefundMethod: trade.PaymentMethodCash,
			Lines:        []SaleReturnLineInput{{LineID: inv.Lines[0].ID, Quantity: qty("3")}},
		})
		require.NoError(t, err)
		assert.Equal(t, "25.00", result.Return.RefundAmount.StringFixed(2))
		assert.Equal(t, "5.00", result.Return.Deduction.StringFixed(2))

		_, err = env.returns.CreateSaleReturn(ctx, CreateSaleReturnRequest{
			Date:         time.Now(),
			InvoiceID:    inv.ID,
			Deduction:    money(t, "50"),
			RefundMethod: trade.PaymentMethodCash,
			Lines:        []SaleReturnLineInput{{LineID: inv.Lines[0].ID, Quantity: qty("1")}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Deduction exceeds")
	})

	t.Run("bounds the return by the remaining returnable quantity", func(t *testing.T) {
		env, _, _, inv := setup(t)

		_, err := env.returns.CreateSaleReturn(ctx, CreateSaleReturnRequest{
			Date:         time.Now(),
			InvoiceID:    inv.ID,
			RefundMethod: trade.PaymentMethodCash,
			Lines:        []SaleReturnLineInput{{LineID: inv.Lines[0].ID, Quantity: qty("6")}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds the remaining returnable quantity")
	})

	t.Run("deleting the invoice after a partial return restores only the rest", func(t *testing.T) {
		env, loc, variantID, inv := setup(t)

		_, err := env.returns.CreateSaleReturn(ctx, CreateSaleReturnRequest{
			Date:         time.Now(),
			InvoiceID:    inv.ID,
			RefundMethod: trade.PaymentMethodCash,
			Lines:        []SaleReturnLineInput{{LineID: inv.Lines[0].ID, Quantity: qty("2")}},
		})
		require.NoError(t, err)
		require.Equal(t, "17", env.stockAt(t, loc, variantID))

		require.NoError(t, env.sales.DeleteInvoice(ctx, inv.ID))
		assert.Equal(t, "20", env.stockAt(t, loc, variantID))
	})
}

func TestPurchaseReturn(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*testEnv, uuid.UUID, uuid.UUID, *trade.PurchaseOrder) {
		env := newTestEnv()
		loc := uuid.New()
		safe := uuid.New()
		variant := env.addVariant(t, "HX-PR", "0")

		po, err := env.purchasing.CreatePurchase(ctx, purchaseRequest(&safe, loc,
			PurchaseLineInput{VariantID: variant.ID, Quantity: qty("10"), BuyPrice: money(t, "20")}))
		require.NoError(t, err)
		require.Equal(t, "10", env.stockAt(t, loc, variant.ID))
		return env, loc, variant.ID, po
	}

	t.Run("removes stock and accumulates the refund", func(t *testing.T) {
		env, loc, variantID, po := setup(t)

		ret, err := env.returns.CreatePurchaseReturn(ctx, CreatePurchaseReturnRequest{
			Date:       time.Now(),
			PurchaseID: po.ID,
			Lines:      []PurchaseReturnLineInput{{LineID: po.Lines[0].ID, Quantity: qty("3")}},
		})
		require.NoError(t, err)

		assert.Equal(t, "7", env.stockAt(t, loc, variantID))
		assert.Equal(t, "3", po.Lines[0].ReturnedQty.String())
		assert.Equal(t, "60.00", ret.RefundAmount.StringFixed(2))
		assert.Len(t, ret.Details, 1)
	})

	t.Run("rejects a return without stock at the order location", func(t *testing.T) {
		env, loc, variantID, po := setup(t)
		env.setStock(t, loc, variantID, "-9")

		_, err := env.returns.CreatePurchaseReturn(ctx, CreatePurchaseReturnRequest{
			Date:       time.Now(),
			PurchaseID: po.ID,
			Lines:      []PurchaseReturnLineInput{{LineID: po.Lines[0].ID, Quantity: qty("3")}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only 1 in stock")
	})

	t.Run("deletion reverses the return exactly", func(t *testing.T) {
		env, loc, variantID, po := setup(t)

		ret, err := env.returns.CreatePurchaseReturn(ctx, CreatePurchaseReturnRequest{
			Date:       time.Now(),
			PurchaseID: po.ID,
			Lines:      []PurchaseReturnLineInput{{LineID: po.Lines[0].ID, Quantity: qty("3")}},
		})
		require.NoError(t, err)
		require.Equal(t, "7", env.stockAt(t, loc, variantID))

		warning, err := env.returns.DeletePurchaseReturn(ctx, ret.ID)
		require.NoError(t, err)
		assert.Nil(t, warning)

		assert.Equal(t, "10", env.stockAt(t, loc, variantID))
		assert.True(t, po.Lines[0].ReturnedQty.IsZero())
		assert.Empty(t, env.purchaseReturns.returns)
	})

	t.Run("legacy header without details is deleted with a warning", func(t *testing.T) {
		env, loc, variantID, po := setup(t)

		legacy, err := trade.NewPurchaseReturn(time.Now(), po.ID, "migrated record")
		require.NoError(t, err)
		require.NoError(t, env.purchaseReturns.Save(ctx, legacy))

		warning, err := env.returns.DeletePurchaseReturn(ctx, legacy.ID)
		require.NoError(t, err)
		require.NotNil(t, warning)
		assert.Equal(t, "RETURN_WITHOUT_DETAILS", warning.Code)

		// nothing reversed
		assert.Equal(t, "10", env.stockAt(t, loc, variantID))
		assert.True(t, po.Lines[0].ReturnedQty.IsZero())
	})
}
