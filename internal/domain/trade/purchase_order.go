package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PurchaseOrder is a supplier purchase. A standalone order carries its own
// lines, stock effect and cost effect. A manufacturing pair is two orders:
// the materials order (parent) holds the lines and the stock effect, and the
// labor order (child) references it via ParentPurchaseID for the supplier
// payment audit trail only.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	Date             time.Time         `gorm:"not null;index"`
	SupplierID       *uuid.UUID        `gorm:"type:uuid;index"`
	LocationID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	SafeID           *uuid.UUID        `gorm:"type:uuid;index"`
	PaymentMethod    PaymentMethod     `gorm:"not null"`
	NetTotal         valueobject.Money `gorm:"type:decimal(18,4)"`
	PaidAmount       valueobject.Money `gorm:"type:decimal(18,4)"`
	RemainingAmount  valueobject.Money `gorm:"type:decimal(18,4)"`
	Notes            string            ``
	ParentPurchaseID *uuid.UUID        `gorm:"type:uuid;index"`
	Lines            []PurchaseLine    `gorm:"foreignKey:PurchaseID"`
}

// TableName returns the database table name
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseLine is one variant received on a purchase order
type PurchaseLine struct {
	shared.BaseEntity
	PurchaseID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	VariantID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Quantity    decimal.Decimal   `gorm:"type:decimal(18,3);not null"`
	BuyPrice    valueobject.Money `gorm:"type:decimal(18,4)"`
	Total       valueobject.Money `gorm:"type:decimal(18,4)"`
	ReturnedQty decimal.Decimal   `gorm:"type:decimal(18,3);not null;default:0"`
}

// TableName returns the database table name
func (PurchaseLine) TableName() string {
	return "purchase_lines"
}

// NewPurchaseOrder creates an empty purchase order
func NewPurchaseOrder(date time.Time, supplierID *uuid.UUID, locationID uuid.UUID, safeID *uuid.UUID, method PaymentMethod) (*PurchaseOrder, error) {
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_LOCATION", "Purchase order requires a stock location")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	return &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		SupplierID:        supplierID,
		LocationID:        locationID,
		SafeID:            safeID,
		PaymentMethod:     method,
		NetTotal:          valueobject.ZeroEGP(),
		PaidAmount:        valueobject.ZeroEGP(),
		RemainingAmount:   valueobject.ZeroEGP(),
	}, nil
}

// LinkToParent marks this order as the labor half of a manufacturing pair
func (p *PurchaseOrder) LinkToParent(parentID uuid.UUID) {
	p.ParentPurchaseID = &parentID
	p.IncrementVersion()
}

// IsLaborOrder reports whether this order is the labor half of a pair.
// Labor orders carry no stock effect of their own.
func (p *PurchaseOrder) IsLaborOrder() bool {
	return p.ParentPurchaseID != nil
}

// AddLine appends a received line and recomputes the net total
func (p *PurchaseOrder) AddLine(variantID uuid.UUID, quantity decimal.Decimal, buyPrice valueobject.Money) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Purchase line quantity must be positive")
	}
	if buyPrice.IsNegative() {
		return shared.NewDomainError("INVALID_BUY_PRICE", "Purchase line buy price cannot be negative")
	}
	line := PurchaseLine{
		BaseEntity:  shared.NewBaseEntity(),
		PurchaseID:  p.ID,
		VariantID:   variantID,
		Quantity:    quantity,
		BuyPrice:    buyPrice,
		Total:       buyPrice.Multiply(quantity),
		ReturnedQty: decimal.Zero,
	}
	p.Lines = append(p.Lines, line)
	p.recalculateTotals()
	p.IncrementVersion()
	return nil
}

// SetNetTotal overrides the derived net total. Manufacturing orders price
// their headers from the materials/labor split rather than from line totals.
func (p *PurchaseOrder) SetNetTotal(net valueobject.Money) error {
	if net.IsNegative() {
		return shared.NewDomainError("INVALID_NET_TOTAL", "Net total cannot be negative")
	}
	p.NetTotal = net
	p.RemainingAmount = p.NetTotal.MustSubtract(p.PaidAmount)
	p.IncrementVersion()
	return nil
}

func (p *PurchaseOrder) recalculateTotals() {
	sum := valueobject.ZeroEGP()
	for _, line := range p.Lines {
		sum = sum.MustAdd(line.Total)
	}
	p.NetTotal = sum
	p.RemainingAmount = p.NetTotal.MustSubtract(p.PaidAmount)
}

// RecordInitialPayment sets the amount paid at creation time.
// A deferred purchase pays nothing up front.
func (p *PurchaseOrder) RecordInitialPayment(paid valueobject.Money) error {
	if p.PaymentMethod.IsDeferred() {
		paid = valueobject.ZeroEGP()
	}
	if paid.IsNegative() {
		return shared.NewDomainError("INVALID_PAYMENT", "Paid amount cannot be negative")
	}
	over, err := paid.GreaterThan(p.NetTotal)
	if err != nil {
		return err
	}
	if over {
		return shared.NewDomainError("INVALID_PAYMENT", "Paid amount cannot exceed the purchase net total")
	}
	p.PaidAmount = paid
	p.RemainingAmount = p.NetTotal.MustSubtract(paid)
	p.IncrementVersion()
	return nil
}

// Settle records an additional payment toward the supplier.
// As on sale invoices, the single account reference is overwritten.
func (p *PurchaseOrder) Settle(amount valueobject.Money, safeID uuid.UUID, method PaymentMethod) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT", "Settlement amount must be positive")
	}
	over, err := amount.GreaterThan(p.RemainingAmount)
	if err != nil {
		return err
	}
	if over {
		return shared.NewDomainError("INVALID_PAYMENT", "Settlement amount exceeds the remaining balance")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	p.PaidAmount = p.PaidAmount.MustAdd(amount)
	p.RemainingAmount = p.NetTotal.MustSubtract(p.PaidAmount)
	p.SafeID = &safeID
	p.PaymentMethod = method
	p.IncrementVersion()
	return nil
}

// FindLine returns the line with the given id, or nil
func (p *PurchaseOrder) FindLine(lineID uuid.UUID) *PurchaseLine {
	for i := range p.Lines {
		if p.Lines[i].ID == lineID {
			return &p.Lines[i]
		}
	}
	return nil
}

// ReturnableQty is how much of the line may still be returned to the supplier
func (l *PurchaseLine) ReturnableQty() decimal.Decimal {
	return l.Quantity.Sub(l.ReturnedQty)
}

// AddReturnedQty increments the returned counter, bounded by the line quantity
func (l *PurchaseLine) AddReturnedQty(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return shared.NewDomainError("INVALID_RETURN_QUANTITY", "Return quantity must be positive")
	}
	if qty.GreaterThan(l.ReturnableQty()) {
		return shared.NewDomainError("RETURN_EXCEEDS_REMAINING", "Return quantity exceeds the remaining returnable quantity")
	}
	l.ReturnedQty = l.ReturnedQty.Add(qty)
	return nil
}

// SubtractReturnedQty decrements the returned counter when a purchase return
// is deleted and its effect reversed.
func (l *PurchaseLine) SubtractReturnedQty(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return shared.NewDomainError("INVALID_RETURN_QUANTITY", "Reversal quantity must be positive")
	}
	if qty.GreaterThan(l.ReturnedQty) {
		return shared.NewDomainError("INVALID_RETURN_QUANTITY", "Reversal quantity exceeds the recorded returned quantity")
	}
	l.ReturnedQty = l.ReturnedQty.Sub(qty)
	return nil
}
