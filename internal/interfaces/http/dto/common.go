package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailcore/backend/internal/domain/shared/valueobject"
)

// DateLayout is the calendar-day format used by document dates. Trade
// documents carry business dates, not timestamps.
const DateLayout = "2006-01-02"

// ParseDate parses a document date, accepting a plain calendar day or a full
// RFC 3339 timestamp. An empty value means "today".
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// moneyOrZero wraps an optional decimal amount as EGP money
func moneyOrZero(amount decimal.Decimal) valueobject.Money {
	return valueobject.NewMoneyEGP(amount)
}

// parseOptionalUUID parses a UUID string, treating "" as absent
func parseOptionalUUID(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseOptionalDate parses an optional filter date
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
