package treasury

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
)

// CashTransfer moves money between two safes
type CashTransfer struct {
	shared.BaseAggregateRoot
	Date       time.Time         `gorm:"not null;index"`
	FromSafeID uuid.UUID         `gorm:"type:uuid;not null;index"`
	ToSafeID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount     valueobject.Money `gorm:"type:decimal(18,4)"`
	Notes      string            ``
}

// TableName returns the database table name
func (CashTransfer) TableName() string {
	return "cash_transfers"
}

// NewCashTransfer creates a transfer between two distinct safes
func NewCashTransfer(date time.Time, fromSafeID, toSafeID uuid.UUID, amount valueobject.Money, notes string) (*CashTransfer, error) {
	if fromSafeID == uuid.Nil || toSafeID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_SAFE", "Transfer requires both source and destination accounts")
	}
	if fromSafeID == toSafeID {
		return nil, shared.NewDomainError("SAME_SAFE_TRANSFER", "Source and destination accounts must differ")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transfer amount must be positive")
	}
	return &CashTransfer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		FromSafeID:        fromSafeID,
		ToSafeID:          toSafeID,
		Amount:            amount,
		Notes:             notes,
	}, nil
}
