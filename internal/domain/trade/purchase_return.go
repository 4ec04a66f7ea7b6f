package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PurchaseReturn records goods going back to a supplier. Unlike sale returns
// it owns per-line detail rows, so deleting one can reverse the exact stock
// movement and returned counters.
type PurchaseReturn struct {
	shared.BaseAggregateRoot
	Date         time.Time              `gorm:"not null;index"`
	PurchaseID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal        `gorm:"type:decimal(18,3);not null"`
	RefundAmount valueobject.Money      `gorm:"type:decimal(18,4)"`
	Notes        string                 ``
	Details      []PurchaseReturnDetail `gorm:"foreignKey:PurchaseReturnID"`
}

// TableName returns the database table name
func (PurchaseReturn) TableName() string {
	return "purchase_returns"
}

// PurchaseReturnDetail links a return header to one purchase line and the
// quantity taken back from it.
type PurchaseReturnDetail struct {
	shared.BaseEntity
	PurchaseReturnID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PurchaseLineID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,3);not null"`
}

// TableName returns the database table name
func (PurchaseReturnDetail) TableName() string {
	return "purchase_return_details"
}

// NewPurchaseReturn creates an empty purchase return header
func NewPurchaseReturn(date time.Time, purchaseID uuid.UUID, notes string) (*PurchaseReturn, error) {
	if purchaseID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_PURCHASE", "Purchase return requires a purchase reference")
	}
	return &PurchaseReturn{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		PurchaseID:        purchaseID,
		Quantity:          decimal.Zero,
		RefundAmount:      valueobject.ZeroEGP(),
		Notes:             notes,
	}, nil
}

// AddDetail records one returned line and accumulates the header totals
func (r *PurchaseReturn) AddDetail(purchaseLineID uuid.UUID, quantity decimal.Decimal, refundValue valueobject.Money) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_RETURN_QUANTITY", "Detail quantity must be positive")
	}
	r.Details = append(r.Details, PurchaseReturnDetail{
		BaseEntity:       shared.NewBaseEntity(),
		PurchaseReturnID: r.ID,
		PurchaseLineID:   purchaseLineID,
		Quantity:         quantity,
	})
	r.Quantity = r.Quantity.Add(quantity)
	r.RefundAmount = r.RefundAmount.MustAdd(refundValue)
	r.IncrementVersion()
	return nil
}

// HasDetails reports whether the return carries per-line detail rows.
// Legacy headers without details cannot be reversed accurately.
func (r *PurchaseReturn) HasDetails() bool {
	return len(r.Details) > 0
}
