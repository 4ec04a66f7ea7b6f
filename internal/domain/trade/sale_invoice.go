package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SaleInvoice is a customer sale. The header keeps the derived money split
// (net, paid, remaining) and a single treasury account attribution; lines keep
// the frozen unit cost at sale time for margin reporting.
type SaleInvoice struct {
	shared.BaseAggregateRoot
	Date            time.Time         `gorm:"not null;index"`
	CustomerID      *uuid.UUID        `gorm:"type:uuid;index"`
	LocationID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	SafeID          *uuid.UUID        `gorm:"type:uuid;index"`
	PaymentMethod   PaymentMethod     `gorm:"not null"`
	NetTotal        valueobject.Money `gorm:"type:decimal(18,4)"`
	PaidAmount      valueobject.Money `gorm:"type:decimal(18,4)"`
	RemainingAmount valueobject.Money `gorm:"type:decimal(18,4)"`
	Discount        valueobject.Money `gorm:"type:decimal(18,4)"`
	Tax             valueobject.Money `gorm:"type:decimal(18,4)"`
	Shipping        valueobject.Money `gorm:"type:decimal(18,4)"`
	Notes           string            ``
	Lines           []SaleLine        `gorm:"foreignKey:InvoiceID"`
}

// TableName returns the database table name
func (SaleInvoice) TableName() string {
	return "sale_invoices"
}

// SaleLine is one variant sold on an invoice.
// CostAtSale snapshots the variant's weighted-average cost at sale time and is
// never recomputed afterwards.
type SaleLine struct {
	shared.BaseEntity
	InvoiceID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	VariantID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Quantity    decimal.Decimal   `gorm:"type:decimal(18,3);not null"`
	Price       valueobject.Money `gorm:"type:decimal(18,4)"`
	Total       valueobject.Money `gorm:"type:decimal(18,4)"`
	ReturnedQty decimal.Decimal   `gorm:"type:decimal(18,3);not null;default:0"`
	CostAtSale  valueobject.Money `gorm:"type:decimal(18,4)"`
	Note        string            ``
}

// TableName returns the database table name
func (SaleLine) TableName() string {
	return "sale_lines"
}

// NewSaleInvoice creates an empty sale invoice
func NewSaleInvoice(date time.Time, customerID *uuid.UUID, locationID uuid.UUID, safeID *uuid.UUID, method PaymentMethod) (*SaleInvoice, error) {
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_LOCATION", "Sale invoice requires a stock location")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if !method.IsDeferred() && safeID == nil {
		return nil, shared.NewDomainError("MISSING_SAFE", "Non-deferred sale requires a treasury account")
	}
	return &SaleInvoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		CustomerID:        customerID,
		LocationID:        locationID,
		SafeID:            safeID,
		PaymentMethod:     method,
		NetTotal:          valueobject.ZeroEGP(),
		PaidAmount:        valueobject.ZeroEGP(),
		RemainingAmount:   valueobject.ZeroEGP(),
		Discount:          valueobject.ZeroEGP(),
		Tax:               valueobject.ZeroEGP(),
		Shipping:          valueobject.ZeroEGP(),
	}, nil
}

// AddLine appends a sold line. costAtSale is the variant unit cost snapshot
// taken by the caller at creation time.
func (s *SaleInvoice) AddLine(variantID uuid.UUID, quantity decimal.Decimal, price, costAtSale valueobject.Money, note string) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Sale line quantity must be positive")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sale line price cannot be negative")
	}
	line := SaleLine{
		BaseEntity:  shared.NewBaseEntity(),
		InvoiceID:   s.ID,
		VariantID:   variantID,
		Quantity:    quantity,
		Price:       price,
		Total:       price.Multiply(quantity),
		ReturnedQty: decimal.Zero,
		CostAtSale:  costAtSale,
		Note:        note,
	}
	s.Lines = append(s.Lines, line)
	s.recalculateTotals()
	s.IncrementVersion()
	return nil
}

// ApplyCharges sets header-level discount, tax and shipping and recomputes the net total
func (s *SaleInvoice) ApplyCharges(discount, tax, shipping valueobject.Money) error {
	if discount.IsNegative() || tax.IsNegative() || shipping.IsNegative() {
		return shared.NewDomainError("INVALID_CHARGES", "Discount, tax and shipping cannot be negative")
	}
	s.Discount = discount
	s.Tax = tax
	s.Shipping = shipping
	s.recalculateTotals()
	s.IncrementVersion()
	return nil
}

// recalculateTotals derives net from the lines and header charges, then keeps
// the remaining amount in step with the paid amount.
func (s *SaleInvoice) recalculateTotals() {
	sum := valueobject.ZeroEGP()
	for _, line := range s.Lines {
		sum = sum.MustAdd(line.Total)
	}
	s.NetTotal = sum.MustSubtract(s.Discount).MustAdd(s.Tax).MustAdd(s.Shipping)
	s.RemainingAmount = s.NetTotal.MustSubtract(s.PaidAmount)
}

// RecordInitialPayment sets the amount collected at creation time.
// A deferred invoice collects nothing regardless of the requested amount.
func (s *SaleInvoice) RecordInitialPayment(paid valueobject.Money) error {
	if s.PaymentMethod.IsDeferred() {
		paid = valueobject.ZeroEGP()
	}
	if paid.IsNegative() {
		return shared.NewDomainError("INVALID_PAYMENT", "Paid amount cannot be negative")
	}
	over, err := paid.GreaterThan(s.NetTotal)
	if err != nil {
		return err
	}
	if over {
		return shared.NewDomainError("INVALID_PAYMENT", "Paid amount cannot exceed the invoice net total")
	}
	s.PaidAmount = paid
	s.RemainingAmount = s.NetTotal.MustSubtract(paid)
	s.IncrementVersion()
	return nil
}

// Settle records an additional payment against the invoice.
// The header keeps a single treasury account reference, so a settlement from a
// different account overwrites the previous attribution.
func (s *SaleInvoice) Settle(amount valueobject.Money, safeID uuid.UUID, method PaymentMethod) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT", "Settlement amount must be positive")
	}
	over, err := amount.GreaterThan(s.RemainingAmount)
	if err != nil {
		return err
	}
	if over {
		return shared.NewDomainError("INVALID_PAYMENT", "Settlement amount exceeds the remaining balance")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	s.PaidAmount = s.PaidAmount.MustAdd(amount)
	s.RemainingAmount = s.NetTotal.MustSubtract(s.PaidAmount)
	s.SafeID = &safeID
	s.PaymentMethod = method
	s.IncrementVersion()
	return nil
}

// FindLine returns the line with the given id, or nil
func (s *SaleInvoice) FindLine(lineID uuid.UUID) *SaleLine {
	for i := range s.Lines {
		if s.Lines[i].ID == lineID {
			return &s.Lines[i]
		}
	}
	return nil
}

// ReturnableQty is how much of the line may still be returned
func (l *SaleLine) ReturnableQty() decimal.Decimal {
	return l.Quantity.Sub(l.ReturnedQty)
}

// AddReturnedQty increments the returned counter, bounded by the line quantity
func (l *SaleLine) AddReturnedQty(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return shared.NewDomainError("INVALID_RETURN_QUANTITY", "Return quantity must be positive")
	}
	if qty.GreaterThan(l.ReturnableQty()) {
		return shared.NewDomainError("RETURN_EXCEEDS_REMAINING", "Return quantity exceeds the remaining returnable quantity")
	}
	l.ReturnedQty = l.ReturnedQty.Add(qty)
	return nil
}

// RestoreQty is what a deletion puts back on the shelf: the sold quantity less
// what was already returned through the return flow.
func (l *SaleLine) RestoreQty() decimal.Decimal {
	return l.Quantity.Sub(l.ReturnedQty)
}
