package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apptrade "github.com/retailcore/backend/internal/application/trade"
	"github.com/retailcore/backend/internal/domain/trade"
)

// SaleLineRequest is one line of a sale invoice
type SaleLineRequest struct {
	VariantID uuid.UUID       `json:"variant_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Note      string          `json:"note"`
}

// CreateSaleInvoiceRequest records a sale. Counterparty and safe are
// optional: walk-in cash sales carry neither a customer nor, for fully
// deferred sales, a safe.
type CreateSaleInvoiceRequest struct {
	Date          string            `json:"date"`
	CustomerID    string            `json:"customer_id"`
	LocationID    uuid.UUID         `json:"location_id" binding:"required"`
	SafeID        string            `json:"safe_id"`
	PaymentMethod string            `json:"payment_method" binding:"required,oneof=cash card wallet deferred store_credit"`
	Paid          decimal.Decimal   `json:"paid"`
	Discount      decimal.Decimal   `json:"discount"`
	Tax           decimal.Decimal   `json:"tax"`
	Shipping      decimal.Decimal   `json:"shipping"`
	Notes         string            `json:"notes"`
	Lines         []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToApplicationRequest converts the transport request to the application request
func (r CreateSaleInvoiceRequest) ToApplicationRequest() (apptrade.CreateSaleInvoiceRequest, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return apptrade.CreateSaleInvoiceRequest{}, err
	}
	customerID, err := parseOptionalUUID(r.CustomerID)
	if err != nil {
		return apptrade.CreateSaleInvoiceRequest{}, err
	}
	safeID, err := parseOptionalUUID(r.SafeID)
	if err != nil {
		return apptrade.CreateSaleInvoiceRequest{}, err
	}
	lines := make([]apptrade.SaleLineInput, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, apptrade.SaleLineInput{
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
			Price:     moneyOrZero(l.Price),
			Note:      l.Note,
		})
	}
	return apptrade.CreateSaleInvoiceRequest{
		Date:          date,
		CustomerID:    customerID,
		LocationID:    r.LocationID,
		SafeID:        safeID,
		PaymentMethod: trade.PaymentMethod(r.PaymentMethod),
		Paid:          moneyOrZero(r.Paid),
		Discount:      moneyOrZero(r.Discount),
		Tax:           moneyOrZero(r.Tax),
		Shipping:      moneyOrZero(r.Shipping),
		Notes:         r.Notes,
		Lines:         lines,
	}, nil
}

// PurchaseLineRequest is one line of a supplier purchase
type PurchaseLineRequest struct {
	VariantID uuid.UUID       `json:"variant_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	BuyPrice  decimal.Decimal `json:"buy_price" binding:"required"`
}

// CreatePurchaseRequest records a standalone supplier purchase
type CreatePurchaseRequest struct {
	Date          string                `json:"date"`
	SupplierID    string                `json:"supplier_id"`
	LocationID    uuid.UUID             `json:"location_id" binding:"required"`
	SafeID        string                `json:"safe_id"`
	PaymentMethod string                `json:"payment_method" binding:"required,oneof=cash card wallet deferred store_credit"`
	Paid          decimal.Decimal       `json:"paid"`
	Notes         string                `json:"notes"`
	Lines         []PurchaseLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToApplicationRequest converts the transport request to the application request
func (r CreatePurchaseRequest) ToApplicationRequest() (apptrade.CreatePurchaseRequest, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return apptrade.CreatePurchaseRequest{}, err
	}
	supplierID, err := parseOptionalUUID(r.SupplierID)
	if err != nil {
		return apptrade.CreatePurchaseRequest{}, err
	}
	safeID, err := parseOptionalUUID(r.SafeID)
	if err != nil {
		return apptrade.CreatePurchaseRequest{}, err
	}
	lines := make([]apptrade.PurchaseLineInput, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, apptrade.PurchaseLineInput{
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
			BuyPrice:  moneyOrZero(l.BuyPrice),
		})
	}
	return apptrade.CreatePurchaseRequest{
		Date:          date,
		SupplierID:    supplierID,
		LocationID:    r.LocationID,
		SafeID:        safeID,
		PaymentMethod: trade.PaymentMethod(r.PaymentMethod),
		Paid:          moneyOrZero(r.Paid),
		Notes:         r.Notes,
		Lines:         lines,
	}, nil
}

// ManufacturingLineRequest is one produced variant and its quantity
type ManufacturingLineRequest struct {
	VariantID uuid.UUID       `json:"variant_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateManufacturingRequest records a manufacturing order: a materials
// purchase plus a linked labor purchase whose combined spend prices the
// produced units.
type CreateManufacturingRequest struct {
	Date               string                     `json:"date"`
	LocationID         uuid.UUID                  `json:"location_id" binding:"required"`
	SafeID             string                     `json:"safe_id"`
	MaterialSupplierID string                     `json:"material_supplier_id"`
	LaborSupplierID    string                     `json:"labor_supplier_id"`
	MaterialsCost      decimal.Decimal            `json:"materials_cost" binding:"required"`
	LaborCost          decimal.Decimal            `json:"labor_cost"`
	Notes              string                     `json:"notes"`
	Lines              []ManufacturingLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToApplicationRequest converts the transport request to the application request
func (r CreateManufacturingRequest) ToApplicationRequest() (apptrade.CreateManufacturingRequest, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return apptrade.CreateManufacturingRequest{}, err
	}
	safeID, err := parseOptionalUUID(r.SafeID)
	if err != nil {
		return apptrade.CreateManufacturingRequest{}, err
	}
	materialSupplierID, err := parseOptionalUUID(r.MaterialSupplierID)
	if err != nil {
		return apptrade.CreateManufacturingRequest{}, err
	}
	laborSupplierID, err := parseOptionalUUID(r.LaborSupplierID)
	if err != nil {
		return apptrade.CreateManufacturingRequest{}, err
	}
	lines := make([]apptrade.ManufacturingLineInput, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, apptrade.ManufacturingLineInput{
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
		})
	}
	return apptrade.CreateManufacturingRequest{
		Date:               date,
		LocationID:         r.LocationID,
		SafeID:             safeID,
		MaterialSupplierID: materialSupplierID,
		LaborSupplierID:    laborSupplierID,
		MaterialsCost:      moneyOrZero(r.MaterialsCost),
		LaborCost:          moneyOrZero(r.LaborCost),
		Notes:              r.Notes,
		Lines:              lines,
	}, nil
}

// ReturnLineRequest identifies a document line and the quantity coming back
type ReturnLineRequest struct {
	LineID   uuid.UUID       `json:"line_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateSaleReturnRequest records goods returned by a customer
type CreateSaleReturnRequest struct {
	Date         string              `json:"date"`
	InvoiceID    uuid.UUID           `json:"invoice_id" binding:"required"`
	Deduction    decimal.Decimal     `json:"deduction"`
	RefundMethod string              `json:"refund_method" binding:"required,oneof=cash card wallet deferred store_credit"`
	Notes        string              `json:"notes"`
	Lines        []ReturnLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToApplicationRequest converts the transport request to the application request
func (r CreateSaleReturnRequest) ToApplicationRequest() (apptrade.CreateSaleReturnRequest, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return apptrade.CreateSaleReturnRequest{}, err
	}
	lines := make([]apptrade.SaleReturnLineInput, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, apptrade.SaleReturnLineInput{
			LineID:   l.LineID,
			Quantity: l.Quantity,
		})
	}
	return apptrade.CreateSaleReturnRequest{
		Date:         date,
		InvoiceID:    r.InvoiceID,
		Deduction:    moneyOrZero(r.Deduction),
		RefundMethod: trade.PaymentMethod(r.RefundMethod),
		Notes:        r.Notes,
		Lines:        lines,
	}, nil
}

// CreatePurchaseReturnRequest records goods returned to a supplier
type CreatePurchaseReturnRequest struct {
	Date       string              `json:"date"`
	PurchaseID uuid.UUID           `json:"purchase_id" binding:"required"`
	Notes      string              `json:"notes"`
	Lines      []ReturnLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToApplicationRequest converts the transport request to the application request
func (r CreatePurchaseReturnRequest) ToApplicationRequest() (apptrade.CreatePurchaseReturnRequest, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return apptrade.CreatePurchaseReturnRequest{}, err
	}
	lines := make([]apptrade.PurchaseReturnLineInput, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, apptrade.PurchaseReturnLineInput{
			LineID:   l.LineID,
			Quantity: l.Quantity,
		})
	}
	return apptrade.CreatePurchaseReturnRequest{
		Date:       date,
		PurchaseID: r.PurchaseID,
		Notes:      r.Notes,
		Lines:      lines,
	}, nil
}

// SettleRequest records an additional payment against an invoice or purchase
type SettleRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	SafeID        uuid.UUID       `json:"safe_id" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required,oneof=cash card wallet store_credit"`
}

// ToApplicationRequest converts the transport request to the application request
func (r SettleRequest) ToApplicationRequest() apptrade.SettleRequest {
	return apptrade.SettleRequest{
		Amount:        moneyOrZero(r.Amount),
		SafeID:        r.SafeID,
		PaymentMethod: trade.PaymentMethod(r.PaymentMethod),
	}
}

// ListInvoicesRequest filters sale invoice listings
type ListInvoicesRequest struct {
	ListRequest
	CustomerID string `form:"customer_id"`
	LocationID string `form:"location_id"`
	SafeID     string `form:"safe_id"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	Unsettled  bool   `form:"unsettled"`
}

// ToFilter converts the query parameters to a domain filter
func (r ListInvoicesRequest) ToFilter() (trade.InvoiceFilter, error) {
	customerID, err := parseOptionalUUID(r.CustomerID)
	if err != nil {
		return trade.InvoiceFilter{}, err
	}
	locationID, err := parseOptionalUUID(r.LocationID)
	if err != nil {
		return trade.InvoiceFilter{}, err
	}
	safeID, err := parseOptionalUUID(r.SafeID)
	if err != nil {
		return trade.InvoiceFilter{}, err
	}
	dateFrom, err := parseOptionalDate(r.DateFrom)
	if err != nil {
		return trade.InvoiceFilter{}, err
	}
	dateTo, err := parseOptionalDate(r.DateTo)
	if err != nil {
		return trade.InvoiceFilter{}, err
	}
	return trade.InvoiceFilter{
		CustomerID: customerID,
		LocationID: locationID,
		SafeID:     safeID,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Unsettled:  r.Unsettled,
		Limit:      r.Limit(),
		Offset:     r.Offset(),
	}, nil
}

// ListPurchasesRequest filters purchase order listings
type ListPurchasesRequest struct {
	ListRequest
	SupplierID string `form:"supplier_id"`
	LocationID string `form:"location_id"`
	SafeID     string `form:"safe_id"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	Unsettled  bool   `form:"unsettled"`
}

// ToFilter converts the query parameters to a domain filter
func (r ListPurchasesRequest) ToFilter() (trade.PurchaseFilter, error) {
	supplierID, err := parseOptionalUUID(r.SupplierID)
	if err != nil {
		return trade.PurchaseFilter{}, err
	}
	locationID, err := parseOptionalUUID(r.LocationID)
	if err != nil {
		return trade.PurchaseFilter{}, err
	}
	safeID, err := parseOptionalUUID(r.SafeID)
	if err != nil {
		return trade.PurchaseFilter{}, err
	}
	dateFrom, err := parseOptionalDate(r.DateFrom)
	if err != nil {
		return trade.PurchaseFilter{}, err
	}
	dateTo, err := parseOptionalDate(r.DateTo)
	if err != nil {
		return trade.PurchaseFilter{}, err
	}
	return trade.PurchaseFilter{
		SupplierID: supplierID,
		LocationID: locationID,
		SafeID:     safeID,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Unsettled:  r.Unsettled,
		Limit:      r.Limit(),
		Offset:     r.Offset(),
	}, nil
}

// ListReturnsRequest filters return listings
type ListReturnsRequest struct {
	ListRequest
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// ToFilter converts the query parameters to a domain filter
func (r ListReturnsRequest) ToFilter() (trade.ReturnFilter, error) {
	dateFrom, err := parseOptionalDate(r.DateFrom)
	if err != nil {
		return trade.ReturnFilter{}, err
	}
	dateTo, err := parseOptionalDate(r.DateTo)
	if err != nil {
		return trade.ReturnFilter{}, err
	}
	return trade.ReturnFilter{
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Limit:    r.Limit(),
		Offset:   r.Offset(),
	}, nil
}
