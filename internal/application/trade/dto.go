package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/retailcore/backend/internal/domain/trade"
	"github.com/retailcore/backend/internal/domain/treasury"
)

// SaleLineInput is one line of a sale invoice request
type SaleLineInput struct {
	VariantID uuid.UUID
	Quantity  decimal.Decimal
	Price     valueobject.Money
	Note      string
}

// CreateSaleInvoiceRequest carries everything needed to record a sale
type CreateSaleInvoiceRequest struct {
	Date          time.Time
	CustomerID    *uuid.UUID
	LocationID    uuid.UUID
	SafeID        *uuid.UUID
	PaymentMethod trade.PaymentMethod
	Paid          valueobject.Money
	Discount      valueobject.Money
	Tax           valueobject.Money
	Shipping      valueobject.Money
	Notes         string
	Lines         []SaleLineInput
}

// PurchaseLineInput is one line of a standard purchase request
type PurchaseLineInput struct {
	VariantID uuid.UUID
	Quantity  decimal.Decimal
	BuyPrice  valueobject.Money
}

// CreatePurchaseRequest records a standalone supplier purchase
type CreatePurchaseRequest struct {
	Date          time.Time
	SupplierID    *uuid.UUID
	LocationID    uuid.UUID
	SafeID        *uuid.UUID
	PaymentMethod trade.PaymentMethod
	Paid          valueobject.Money
	Notes         string
	Lines         []PurchaseLineInput
}

// ManufacturingLineInput is one produced variant and its quantity
type ManufacturingLineInput struct {
	VariantID uuid.UUID
	Quantity  decimal.Decimal
}

// CreateManufacturingRequest records a manufacturing order: a materials
// purchase and a linked labor purchase whose combined spend prices the
// produced units.
type CreateManufacturingRequest struct {
	Date               time.Time
	LocationID         uuid.UUID
	SafeID             *uuid.UUID
	MaterialSupplierID *uuid.UUID
	LaborSupplierID    *uuid.UUID
	MaterialsCost      valueobject.Money
	LaborCost          valueobject.Money
	Notes              string
	Lines              []ManufacturingLineInput
}

// ManufacturingResult returns both halves of the created pair
type ManufacturingResult struct {
	MaterialsOrder *trade.PurchaseOrder
	LaborOrder     *trade.PurchaseOrder
	UnitCost       valueobject.Money
}

// SaleReturnLineInput identifies an invoice line and the quantity coming back
type SaleReturnLineInput struct {
	LineID   uuid.UUID
	Quantity decimal.Decimal
}

// CreateSaleReturnRequest records goods returned by a customer
type CreateSaleReturnRequest struct {
	Date         time.Time
	InvoiceID    uuid.UUID
	Deduction    valueobject.Money
	RefundMethod trade.PaymentMethod
	Notes        string
	Lines        []SaleReturnLineInput
}

// SaleReturnResult is the created header plus the synthetic refund voucher,
// when one was emitted.
type SaleReturnResult struct {
	Return        *trade.SaleReturn
	RefundVoucher *treasury.Voucher
}

// PurchaseReturnLineInput identifies a purchase line and the quantity going back
type PurchaseReturnLineInput struct {
	LineID   uuid.UUID
	Quantity decimal.Decimal
}

// CreatePurchaseReturnRequest records goods returned to a supplier
type CreatePurchaseReturnRequest struct {
	Date       time.Time
	PurchaseID uuid.UUID
	Notes      string
	Lines      []PurchaseReturnLineInput
}

// SettleRequest records an additional payment against an invoice or purchase
type SettleRequest struct {
	Amount        valueobject.Money
	SafeID        uuid.UUID
	PaymentMethod trade.PaymentMethod
}

// orZero maps an unset Money (no currency) to a proper zero so optional
// request amounts are safe to use in arithmetic.
func orZero(m valueobject.Money) valueobject.Money {
	if m.Currency() == "" {
		return valueobject.ZeroEGP()
	}
	return m
}
