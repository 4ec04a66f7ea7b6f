package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailcore/backend/internal/domain/treasury"
)

// CreateSafeRequest creates a treasury account
type CreateSafeRequest struct {
	Name string `json:"name" binding:"required"`
}

// RenameSafeRequest renames a treasury account
type RenameSafeRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateVoucherRequest records a manual cash receipt or payment
type CreateVoucherRequest struct {
	Date        string          `json:"date"`
	Type        string          `json:"type" binding:"required,oneof=receipt payment"`
	SafeID      uuid.UUID       `json:"safe_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	CustomerID  string          `json:"customer_id"`
	SupplierID  string          `json:"supplier_id"`
}

// ToVoucher builds the domain voucher from the transport request
func (r CreateVoucherRequest) ToVoucher() (*treasury.Voucher, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	voucher, err := treasury.NewVoucher(date, treasury.VoucherType(r.Type), r.SafeID, moneyOrZero(r.Amount), r.Description)
	if err != nil {
		return nil, err
	}
	customerID, err := parseOptionalUUID(r.CustomerID)
	if err != nil {
		return nil, err
	}
	if customerID != nil {
		voucher.AttachCustomer(*customerID)
	}
	supplierID, err := parseOptionalUUID(r.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplierID != nil {
		voucher.AttachSupplier(*supplierID)
	}
	return voucher, nil
}

// CreateCashTransferRequest moves money between two safes
type CreateCashTransferRequest struct {
	Date       string          `json:"date"`
	FromSafeID uuid.UUID       `json:"from_safe_id" binding:"required"`
	ToSafeID   uuid.UUID       `json:"to_safe_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Notes      string          `json:"notes"`
}

// ToCashTransfer builds the domain transfer from the transport request
func (r CreateCashTransferRequest) ToCashTransfer() (*treasury.CashTransfer, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	return treasury.NewCashTransfer(date, r.FromSafeID, r.ToSafeID, moneyOrZero(r.Amount), r.Notes)
}

// ListVouchersRequest filters voucher listings
type ListVouchersRequest struct {
	ListRequest
	SafeID     string `form:"safe_id"`
	Type       string `form:"type" binding:"omitempty,oneof=receipt payment"`
	CustomerID string `form:"customer_id"`
	SupplierID string `form:"supplier_id"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
}

// ToFilter converts the query parameters to a domain filter
func (r ListVouchersRequest) ToFilter() (treasury.VoucherFilter, error) {
	safeID, err := parseOptionalUUID(r.SafeID)
	if err != nil {
		return treasury.VoucherFilter{}, err
	}
	customerID, err := parseOptionalUUID(r.CustomerID)
	if err != nil {
		return treasury.VoucherFilter{}, err
	}
	supplierID, err := parseOptionalUUID(r.SupplierID)
	if err != nil {
		return treasury.VoucherFilter{}, err
	}
	dateFrom, err := parseOptionalDate(r.DateFrom)
	if err != nil {
		return treasury.VoucherFilter{}, err
	}
	dateTo, err := parseOptionalDate(r.DateTo)
	if err != nil {
		return treasury.VoucherFilter{}, err
	}
	var vtype *treasury.VoucherType
	if r.Type != "" {
		t := treasury.VoucherType(r.Type)
		vtype = &t
	}
	return treasury.VoucherFilter{
		SafeID:     safeID,
		Type:       vtype,
		CustomerID: customerID,
		SupplierID: supplierID,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Limit:      r.Limit(),
		Offset:     r.Offset(),
	}, nil
}

// ListTransfersRequest filters cash transfer listings
type ListTransfersRequest struct {
	ListRequest
	SafeID   string `form:"safe_id"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// ToFilter converts the query parameters to a domain filter
func (r ListTransfersRequest) ToFilter() (treasury.TransferFilter, error) {
	safeID, err := parseOptionalUUID(r.SafeID)
	if err != nil {
		return treasury.TransferFilter{}, err
	}
	dateFrom, err := parseOptionalDate(r.DateFrom)
	if err != nil {
		return treasury.TransferFilter{}, err
	}
	dateTo, err := parseOptionalDate(r.DateTo)
	if err != nil {
		return treasury.TransferFilter{}, err
	}
	return treasury.TransferFilter{
		SafeID:   safeID,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Limit:    r.Limit(),
		Offset:   r.Offset(),
	}, nil
}
