package treasury

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
)

// VoucherType distinguishes money entering a safe from money leaving it
type VoucherType string

const (
	VoucherTypeReceipt VoucherType = "receipt"
	VoucherTypePayment VoucherType = "payment"
)

// IsValid checks if the voucher type is a known value
func (t VoucherType) IsValid() bool {
	return t == VoucherTypeReceipt || t == VoucherTypePayment
}

// Voucher is a manual cash movement against one safe. It is also the canonical
// cash record for sale-return refunds: the return flow emits a Payment voucher
// instead of having the balance formula sum the return table, so the refund is
// never counted twice.
type Voucher struct {
	shared.BaseAggregateRoot
	Date        time.Time         `gorm:"not null;index"`
	Type        VoucherType       `gorm:"not null;index"`
	SafeID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount      valueobject.Money `gorm:"type:decimal(18,4)"`
	Description string            `gorm:"not null"`
	CustomerID  *uuid.UUID        `gorm:"type:uuid;index"`
	SupplierID  *uuid.UUID        `gorm:"type:uuid;index"`
}

// TableName returns the database table name
func (Voucher) TableName() string {
	return "vouchers"
}

// NewVoucher creates a manual cash movement record
func NewVoucher(date time.Time, vtype VoucherType, safeID uuid.UUID, amount valueobject.Money, description string) (*Voucher, error) {
	if !vtype.IsValid() {
		return nil, shared.NewDomainError("INVALID_VOUCHER_TYPE", "Voucher type must be receipt or payment")
	}
	if safeID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_SAFE", "Voucher requires a treasury account")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Voucher amount must be positive")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("MISSING_DESCRIPTION", "Voucher requires a description")
	}
	return &Voucher{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		Type:              vtype,
		SafeID:            safeID,
		Amount:            amount,
		Description:       description,
	}, nil
}

// AttachCustomer links the voucher to a customer counterparty
func (v *Voucher) AttachCustomer(customerID uuid.UUID) {
	v.CustomerID = &customerID
}

// AttachSupplier links the voucher to a supplier counterparty
func (v *Voucher) AttachSupplier(supplierID uuid.UUID) {
	v.SupplierID = &supplierID
}
