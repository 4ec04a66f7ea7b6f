package cache

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/retailcore/backend/internal/domain/treasury"
)

func TestBalanceKey(t *testing.T) {
	safeID := uuid.New()
	assert.Equal(t, "treasury:balance:"+safeID.String(), balanceKey(safeID))
}

func TestBalanceBreakdownRoundTrip(t *testing.T) {
	money := func(s string) valueobject.Money {
		m, err := valueobject.NewMoneyEGPFromString(s)
		require.NoError(t, err)
		return m
	}

	original := treasury.BalanceBreakdown{
		SafeID:                uuid.New(),
		Receipts:              money("1000"),
		TransfersIn:           money("500"),
		InvoicePayments:       money("2000"),
		PurchaseReturnRefunds: money("300"),
		Payments:              money("400"),
		TransfersOut:          money("200"),
		PurchaseOutflow:       money("1500"),
		Balance:               money("1700"),
	}

	data, err := json.Marshal(&original)
	require.NoError(t, err)

	var decoded treasury.BalanceBreakdown
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.SafeID, decoded.SafeID)
	assert.True(t, original.Balance.Equals(decoded.Balance))
	assert.True(t, original.Receipts.Equals(decoded.Receipts))
	assert.True(t, original.PurchaseOutflow.Equals(decoded.PurchaseOutflow))
}
