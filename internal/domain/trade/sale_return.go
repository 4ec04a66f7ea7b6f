package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SaleReturn records goods coming back from a customer.
//
// The header is the only durable trace on the sale side: the cash effect of the
// refund lives in a synthetic Payment voucher emitted alongside it, and the
// per-line quantities live in the invoice lines' returned counters. There is no
// per-line child table, which is why reversing a sale return is only
// approximately reconstructable.
type SaleReturn struct {
	shared.BaseAggregateRoot
	Date         time.Time         `gorm:"not null;index"`
	InvoiceID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal   `gorm:"type:decimal(18,3);not null"`
	RefundAmount valueobject.Money `gorm:"type:decimal(18,4)"`
	Deduction    valueobject.Money `gorm:"type:decimal(18,4)"`
	RefundMethod PaymentMethod     `gorm:"not null"`
	Notes        string            ``
}

// TableName returns the database table name
func (SaleReturn) TableName() string {
	return "sale_returns"
}

// NewSaleReturn creates a sale return header
func NewSaleReturn(date time.Time, invoiceID uuid.UUID, quantity decimal.Decimal, refund, deduction valueobject.Money, method PaymentMethod, notes string) (*SaleReturn, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_INVOICE", "Sale return requires an invoice reference")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RETURN_QUANTITY", "Sale return quantity must be positive")
	}
	if refund.IsNegative() {
		return nil, shared.NewDomainError("INVALID_REFUND", "Refund amount cannot be negative")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown refund method")
	}
	return &SaleReturn{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		InvoiceID:         invoiceID,
		Quantity:          quantity,
		RefundAmount:      refund,
		Deduction:         deduction,
		RefundMethod:      method,
		Notes:             notes,
	}, nil
}

// PaysCash reports whether the refund moves cash out of a treasury account.
// Store-credit refunds keep the value inside the business.
func (r *SaleReturn) PaysCash() bool {
	return r.RefundMethod != PaymentMethodStoreCredit && r.RefundAmount.IsPositive()
}
