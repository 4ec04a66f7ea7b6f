package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailcore/backend/internal/domain/shared/valueobject"
)

func money(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyEGPFromString(s)
	require.NoError(t, err)
	return m
}

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNextUnitCost(t *testing.T) {
	t.Run("adopts incoming cost on first stock-in", func(t *testing.T) {
		cost, err := NextUnitCost(decimal.Zero, valueobject.ZeroEGP(), qty("10"), money(t, "100"))
		require.NoError(t, err)
		assert.True(t, money(t, "100.00").Equals(cost))
	})

	t.Run("blends prior and incoming lots", func(t *testing.T) {
		cost, err := NextUnitCost(qty("10"), money(t, "100"), qty("10"), money(t, "120"))
		require.NoError(t, err)
		assert.True(t, money(t, "110.00").Equals(cost))
	})

	t.Run("rounds each step to two decimals", func(t *testing.T) {
		// 10@100 then 10@120 then 5@90: (20*110 + 5*90) / 25 = 106.00
		cost, err := NextUnitCost(decimal.Zero, valueobject.ZeroEGP(), qty("10"), money(t, "100"))
		require.NoError(t, err)

		cost, err = NextUnitCost(qty("10"), cost, qty("10"), money(t, "120"))
		require.NoError(t, err)
		assert.Equal(t, "110.00", cost.StringFixed(2))

		cost, err = NextUnitCost(qty("20"), cost, qty("5"), money(t, "90"))
		require.NoError(t, err)
		assert.Equal(t, "106.00", cost.StringFixed(2))
	})

	t.Run("sequential rounding is applied per replenishment", func(t *testing.T) {
		// 3@10.00 then 3@10.01: exact average 10.005 rounds to 10.01
		cost, err := NextUnitCost(qty("3"), money(t, "10.00"), qty("3"), money(t, "10.01"))
		require.NoError(t, err)
		assert.Equal(t, "10.01", cost.StringFixed(2))
	})

	t.Run("adopts incoming cost when basis is unset", func(t *testing.T) {
		cost, err := NextUnitCost(qty("8"), valueobject.ZeroEGP(), qty("4"), money(t, "25.50"))
		require.NoError(t, err)
		assert.Equal(t, "25.50", cost.StringFixed(2))
	})

	t.Run("adopts incoming cost when aggregate stock is negative", func(t *testing.T) {
		cost, err := NextUnitCost(qty("-2"), money(t, "40"), qty("10"), money(t, "30"))
		require.NoError(t, err)
		assert.Equal(t, "30.00", cost.StringFixed(2))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NextUnitCost(qty("5"), money(t, "10"), decimal.Zero, money(t, "10"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity must be positive")
	})

	t.Run("rejects negative incoming cost", func(t *testing.T) {
		_, err := NextUnitCost(qty("5"), money(t, "10"), qty("1"), money(t, "-1"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}
