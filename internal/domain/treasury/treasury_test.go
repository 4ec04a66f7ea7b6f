package treasury

import (
	"testing"
	"time"

	"github.com/google/uuid"
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

func TestNewVoucher(t *testing.T) {
	t.Run("creates receipt voucher", func(t *testing.T) {
		v, err := NewVoucher(time.Now(), VoucherTypeReceipt, uuid.New(), testMoney(t, "150"), "misc income")
		require.NoError(t, err)
		assert.Equal(t, VoucherTypeReceipt, v.Type)
		assert.Equal(t, "150.00", v.Amount.StringFixed(2))
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewVoucher(time.Now(), VoucherType("loan"), uuid.New(), testMoney(t, "10"), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "receipt or payment")
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewVoucher(time.Now(), VoucherTypePayment, uuid.New(), testMoney(t, "0"), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, err := NewVoucher(time.Now(), VoucherTypePayment, uuid.New(), testMoney(t, "10"), "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "description")
	})

	t.Run("attaches counterparties", func(t *testing.T) {
		v, err := NewVoucher(time.Now(), VoucherTypeReceipt, uuid.New(), testMoney(t, "10"), "settling dues")
		require.NoError(t, err)
		custID := uuid.New()
		v.AttachCustomer(custID)
		assert.Equal(t, custID, *v.CustomerID)
		assert.Nil(t, v.SupplierID)
	})
}

func TestNewCashTransfer(t *testing.T) {
	t.Run("creates transfer between distinct safes", func(t *testing.T) {
		tr, err := NewCashTransfer(time.Now(), uuid.New(), uuid.New(), testMoney(t, "500"), "")
		require.NoError(t, err)
		assert.Equal(t, "500.00", tr.Amount.StringFixed(2))
	})

	t.Run("rejects same-safe transfer", func(t *testing.T) {
		id := uuid.New()
		_, err := NewCashTransfer(time.Now(), id, id, testMoney(t, "10"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must differ")
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewCashTransfer(time.Now(), uuid.New(), uuid.New(), testMoney(t, "-5"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})
}

func TestSafe(t *testing.T) {
	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewSafe("  ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("rename bumps version", func(t *testing.T) {
		s, err := NewSafe("Main Drawer")
		require.NoError(t, err)
		require.NoError(t, s.Rename("Front Drawer"))
		assert.Equal(t, "Front Drawer", s.Name)
		assert.Equal(t, 2, s.Version)
	})
}
