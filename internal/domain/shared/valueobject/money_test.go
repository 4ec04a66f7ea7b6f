package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), EGP)
		require.NoError(t, err)
		assert.Equal(t, EGP, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyEGP(t *testing.T) {
	m := NewMoneyEGP(decimal.NewFromInt(250))
	assert.Equal(t, EGP, m.Currency())
	assert.Equal(t, "250", m.Amount().String())
}

func TestNewMoneyEGPFromFloat(t *testing.T) {
	m := NewMoneyEGPFromFloat(99.99)
	assert.Equal(t, EGP, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(99.99)))
}

func TestNewMoneyEGPFromString(t *testing.T) {
	t.Run("parses a decimal string", func(t *testing.T) {
		m, err := NewMoneyEGPFromString("149.75")
		require.NoError(t, err)
		assert.Equal(t, EGP, m.Currency())
		assert.Equal(t, "149.75", m.Amount().String())
	})

	t.Run("rejects a non-numeric string", func(t *testing.T) {
		_, err := NewMoneyEGPFromString("not-a-number")
		assert.Error(t, err)
	})
}

func TestZero(t *testing.T) {
	assert.True(t, Zero(USD).IsZero())
	assert.Equal(t, USD, Zero(USD).Currency())
	assert.True(t, ZeroEGP().IsZero())
	assert.Equal(t, EGP, ZeroEGP().Currency())
}

func TestMoneySignPredicates(t *testing.T) {
	assert.True(t, NewMoneyEGPFromFloat(10).IsPositive())
	assert.True(t, NewMoneyEGPFromFloat(-10).IsNegative())
	assert.True(t, NewMoneyEGP(decimal.Zero).IsZero())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same-currency amounts", func(t *testing.T) {
		sum, err := NewMoneyEGPFromFloat(100.25).Add(NewMoneyEGPFromFloat(49.75))
		require.NoError(t, err)
		assert.Equal(t, "150", sum.Amount().String())
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		usd, err := NewMoney(decimal.NewFromInt(10), USD)
		require.NoError(t, err)
		_, err = NewMoneyEGPFromFloat(10).Add(usd)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "different currencies")
	})
}

func TestMoneyMustAdd(t *testing.T) {
	t.Run("returns the sum for matching currencies", func(t *testing.T) {
		sum := NewMoneyEGPFromFloat(1).MustAdd(NewMoneyEGPFromFloat(2))
		assert.Equal(t, "3", sum.Amount().String())
	})

	t.Run("panics on mixed currencies", func(t *testing.T) {
		usd, err := NewMoney(decimal.NewFromInt(1), USD)
		require.NoError(t, err)
		assert.Panics(t, func() {
			NewMoneyEGPFromFloat(1).MustAdd(usd)
		})
	})
}

func TestMoneySubtract(t *testing.T) {
	t.Run("subtracts same-currency amounts", func(t *testing.T) {
		diff, err := NewMoneyEGPFromFloat(100).Subtract(NewMoneyEGPFromFloat(35.5))
		require.NoError(t, err)
		assert.Equal(t, "64.5", diff.Amount().String())
	})

	t.Run("result may go negative", func(t *testing.T) {
		diff := NewMoneyEGPFromFloat(40).MustSubtract(NewMoneyEGPFromFloat(100))
		assert.True(t, diff.IsNegative())
		assert.Equal(t, "-60", diff.Amount().String())
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		eur, err := NewMoney(decimal.NewFromInt(10), EUR)
		require.NoError(t, err)
		_, err = NewMoneyEGPFromFloat(10).Subtract(eur)
		assert.Error(t, err)
	})
}

func TestMoneyMultiplyDivide(t *testing.T) {
	t.Run("multiply by quantity", func(t *testing.T) {
		total := NewMoneyEGPFromFloat(12.5).Multiply(decimal.NewFromInt(4))
		assert.Equal(t, "50", total.Amount().String())
	})

	t.Run("divide splits the amount", func(t *testing.T) {
		unit, err := NewMoneyEGPFromFloat(750).Divide(decimal.NewFromInt(75))
		require.NoError(t, err)
		assert.Equal(t, "10", unit.Amount().String())
	})

	t.Run("divide by zero is an error", func(t *testing.T) {
		_, err := NewMoneyEGPFromFloat(100).Divide(decimal.Zero)
		assert.Error(t, err)
	})
}

func TestMoneyNegate(t *testing.T) {
	assert.Equal(t, "-42", NewMoneyEGPFromFloat(42).Negate().Amount().String())
	assert.Equal(t, "42", NewMoneyEGPFromFloat(-42).Negate().Amount().String())
}

func TestMoneyRound(t *testing.T) {
	// Costing rounds half away from zero to 2 decimals per step
	cases := []struct {
		in       string
		expected string
	}{
		{"106.005", "106.01"},
		{"106.004", "106"},
		{"-106.005", "-106.01"},
		{"110.00", "110"},
	}
	for _, tc := range cases {
		m, err := NewMoneyEGPFromString(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, m.Round(2).Amount().String(), "rounding %s", tc.in)
	}
}

func TestMoneyComparisons(t *testing.T) {
	t.Run("equals requires amount and currency", func(t *testing.T) {
		assert.True(t, NewMoneyEGPFromFloat(10).Equals(NewMoneyEGP(decimal.NewFromInt(10))))
		usd, err := NewMoney(decimal.NewFromInt(10), USD)
		require.NoError(t, err)
		assert.False(t, NewMoneyEGPFromFloat(10).Equals(usd))
	})

	t.Run("ordering on same currency", func(t *testing.T) {
		less, err := NewMoneyEGPFromFloat(5).LessThan(NewMoneyEGPFromFloat(10))
		require.NoError(t, err)
		assert.True(t, less)

		greater, err := NewMoneyEGPFromFloat(10).GreaterThan(NewMoneyEGPFromFloat(5))
		require.NoError(t, err)
		assert.True(t, greater)

		gte, err := NewMoneyEGPFromFloat(10).GreaterThanOrEqual(NewMoneyEGPFromFloat(10))
		require.NoError(t, err)
		assert.True(t, gte)
	})

	t.Run("ordering across currencies is an error", func(t *testing.T) {
		sar, err := NewMoney(decimal.NewFromInt(10), SAR)
		require.NoError(t, err)
		_, err = NewMoneyEGPFromFloat(10).LessThan(sar)
		assert.Error(t, err)
	})
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "149.50 EGP", NewMoneyEGPFromFloat(149.5).String())
	assert.Equal(t, "149.500", NewMoneyEGPFromFloat(149.5).StringFixed(3))
}

func TestMoneyJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := NewMoneyEGPFromFloat(199.99)

		data, err := json.Marshal(original)
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount":"199.99","currency":"EGP"}`, string(data))

		var decoded Money
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, original.Equals(decoded))
	})

	t.Run("missing currency defaults to EGP", func(t *testing.T) {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(`{"amount":"50"}`), &m))
		assert.Equal(t, DefaultCurrency, m.Currency())
		assert.Equal(t, "50", m.Amount().String())
	})

	t.Run("invalid amount is an error", func(t *testing.T) {
		var m Money
		err := json.Unmarshal([]byte(`{"amount":"abc","currency":"EGP"}`), &m)
		assert.Error(t, err)
	})
}

func TestMoneyScanValue(t *testing.T) {
	t.Run("value stores the amount only", func(t *testing.T) {
		v, err := NewMoneyEGPFromFloat(123.45).Value()
		require.NoError(t, err)
		assert.Equal(t, "123.45", v)
	})

	t.Run("scan accepts string, bytes, float and int", func(t *testing.T) {
		for _, src := range []any{"10.5", []byte("10.5"), float64(10.5)} {
			var m Money
			require.NoError(t, m.Scan(src))
			assert.Equal(t, "10.5", m.Amount().String())
			assert.Equal(t, DefaultCurrency, m.Currency())
		}

		var m Money
		require.NoError(t, m.Scan(int64(7)))
		assert.Equal(t, "7", m.Amount().String())
	})

	t.Run("scan of nil is zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scan rejects unsupported types", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(struct{}{}))
	})
}
