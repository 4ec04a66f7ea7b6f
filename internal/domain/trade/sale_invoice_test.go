package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailcore/backend/internal/domain/shared/valueobject"
)

func testMoney(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyEGPFromString(s)
	require.NoError(t, err)
	return m
}

func createTestInvoice(t *testing.T) *SaleInvoice {
	t.Helper()
	safeID := uuid.New()
	inv, err := NewSaleInvoice(time.Now(), nil, uuid.New(), &safeID, PaymentMethodCash)
	require.NoError(t, err)
	return inv
}

func TestNewSaleInvoice(t *testing.T) {
	t.Run("creates invoice with zeroed totals", func(t *testing.T) {
		inv := createTestInvoice(t)
		assert.True(t, inv.NetTotal.IsZero())
		assert.True(t, inv.PaidAmount.IsZero())
		assert.True(t, inv.RemainingAmount.IsZero())
		assert.Equal(t, 1, inv.Version)
	})

	t.Run("rejects missing location", func(t *testing.T) {
		safeID := uuid.New()
		_, err := NewSaleInvoice(time.Now(), nil, uuid.Nil, &safeID, PaymentMethodCash)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stock location")
	})

	t.Run("rejects non-deferred invoice without a safe", func(t *testing.T) {
		_, err := NewSaleInvoice(time.Now(), nil, uuid.New(), nil, PaymentMethodCash)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "treasury account")
	})

	t.Run("allows deferred invoice without a safe", func(t *testing.T) {
		inv, err := NewSaleInvoice(time.Now(), nil, uuid.New(), nil, PaymentMethodDeferred)
		require.NoError(t, err)
		assert.Nil(t, inv.SafeID)
	})
}

func TestSaleInvoiceAddLine(t *testing.T) {
	t.Run("accumulates net total from line totals", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.AddLine(uuid.New(), decimal.NewFromInt(2), testMoney(t, "50"), testMoney(t, "30"), ""))
		require.NoError(t, inv.AddLine(uuid.New(), decimal.NewFromInt(1), testMoney(t, "25"), testMoney(t, "10"), ""))

		assert.Equal(t, "125.00", inv.NetTotal.StringFixed(2))
		assert.Equal(t, "125.00", inv.RemainingAmount.StringFixed(2))
	})

	t.Run("snapshots cost at sale on the line", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.AddLine(uuid.New(), decimal.NewFromInt(3), testMoney(t, "40"), testMoney(t, "22.50"), ""))
		assert.Equal(t, "22.50", inv.Lines[0].CostAtSale.StringFixed(2))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		inv := createTestInvoice(t)
		err := inv.AddLine(uuid.New(), decimal.Zero, testMoney(t, "10"), testMoney(t, "5"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity must be positive")
	})

	t.Run("rejects negative price", func(t *testing.T) {
		inv := createTestInvoice(t)
		err := inv.AddLine(uuid.New(), decimal.NewFromInt(1), testMoney(t, "-1"), testMoney(t, "5"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "price cannot be negative")
	})
}

func TestSaleInvoicePayments(t *testing.T) {
	t.Run("maintains remaining = net - paid", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.AddLine(uuid.New(), decimal.NewFromInt(4), testMoney(t, "100"), testMoney(t, "60"), ""))
		require.NoError(t, inv.RecordInitialPayment(testMoney(t, "150")))

		assert.Equal(t, "150.00", inv.PaidAmount.StringFixed(2))
		assert.Equal(t, "250.00", inv.RemainingAmount.StringFixed(2))
	})

	t.Run("deferred invoice collects nothing at creation", func(t *testing.T) {
		inv, err := NewSaleInvoice(time.Now(), nil, uuid.New(), nil, PaymentMethodDeferred)
		require.NoError(t, err)
		require.NoError(t, inv.AddLine(uuid.New(), decimal.NewFromInt(1), testMoney(t, "200"), testMoney(t, "120"), ""))
		require.NoError(t, inv.RecordInitialPayment(testMoney(t, "200")))

		assert.True(t, inv.PaidAmount.IsZero())
		assert.Equal(t, "200.00", inv.RemainingAmount.StringFixed(2))
	})

	t.Run("rejects overpayment", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.AddLine(uuid.New(), decimal.NewFromInt(1), testMoney(t, "100"), testMoney(t, "50"), ""))
		err := inv.RecordInitialPayment(testMoney(t, "150"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("settlement overwrites account attribution", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.AddLine(uuid.New(), decimal.NewFromInt(1), testMoney(t, "300"), testMoney(t, "100"), ""))
		require.NoError(t, inv.RecordInitialPayment(testMoney(t, "100")))

		otherSafe := uuid.New()
		require.NoError(t, inv.Settle(testMoney(t, "200"), otherSafe, PaymentMethodCard))

		assert.Equal(t, "300.00", inv.PaidAmount.StringFixed(2))
		assert.True(t, inv.RemainingAmount.IsZero())
		assert.Equal(t, otherSafe, *inv.SafeID)
		assert.Equal(t, PaymentMethodCard, inv.PaymentMethod)
	})

	t.Run("settlement above remaining is rejected", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.AddLine(uuid.New(), decimal.NewFromInt(1), testMoney(t, "100"), testMoney(t, "50"), ""))
		require.NoError(t, inv.RecordInitialPayment(testMoney(t, "80")))

		err := inv.Settle(testMoney(t, "30"), uuid.New(), PaymentMethodCash)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds the remaining balance")
	})
}

func TestSaleLineReturns(t *testing.T) {
	t.Run("bounds returns by remaining returnable quantity", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.AddLine(uuid.New(), decimal.NewFromInt(5), testMoney(t, "10"), testMoney(t, "6"), ""))
		line := &inv.Lines[0]

		require.NoError(t, line.AddReturnedQty(decimal.NewFromInt(3)))
		assert.Equal(t, "2", line.ReturnableQty().String())

		err := line.AddReturnedQty(decimal.NewFromInt(3))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds the remaining returnable quantity")
	})

	t.Run("restore quantity excludes already returned units", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.AddLine(uuid.New(), decimal.NewFromInt(5), testMoney(t, "10"), testMoney(t, "6"), ""))
		line := &inv.Lines[0]
		require.NoError(t, line.AddReturnedQty(decimal.NewFromInt(5)))

		assert.True(t, line.RestoreQty().IsZero())
	})
}
