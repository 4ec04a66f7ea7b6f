package treasury

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
)

// BalanceBreakdown is the derived cash position of one safe, exposing each of
// the aggregated streams alongside the net balance.
//
// Sale-return refunds are deliberately absent: the return flow records them as
// Payment vouchers, so they are already inside Payments. Summing the sale
// return table here as well would double-count every refund.
type BalanceBreakdown struct {
	SafeID                uuid.UUID         `json:"safe_id"`
	Receipts              valueobject.Money `json:"receipts"`
	TransfersIn           valueobject.Money `json:"transfers_in"`
	InvoicePayments       valueobject.Money `json:"invoice_payments"`
	PurchaseReturnRefunds valueobject.Money `json:"purchase_return_refunds"`
	Payments              valueobject.Money `json:"payments"`
	TransfersOut          valueobject.Money `json:"transfers_out"`
	PurchaseOutflow       valueobject.Money `json:"purchase_outflow"`
	Balance               valueobject.Money `json:"balance"`
}

// VoucherFilter holds optional filters for voucher listings
type VoucherFilter struct {
	SafeID     *uuid.UUID
	Type       *VoucherType
	CustomerID *uuid.UUID
	SupplierID *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}

// TransferFilter holds optional filters for cash transfer listings
type TransferFilter struct {
	SafeID   *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// SafeRepository defines persistence operations for safes
type SafeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Safe, error)
	FindByName(ctx context.Context, name string) (*Safe, error)
	FindAll(ctx context.Context) ([]Safe, error)
	Save(ctx context.Context, safe *Safe) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Balance aggregates the five transaction streams into the safe's
	// derived cash position. It never mutates state.
	Balance(ctx context.Context, safeID uuid.UUID) (*BalanceBreakdown, error)
}

// VoucherRepository defines persistence operations for vouchers
type VoucherRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Voucher, error)
	FindAll(ctx context.Context, filter VoucherFilter) ([]Voucher, error)
	Save(ctx context.Context, voucher *Voucher) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsForSafe(ctx context.Context, safeID uuid.UUID) (bool, error)
}

// CashTransferRepository defines persistence operations for cash transfers
type CashTransferRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CashTransfer, error)
	FindAll(ctx context.Context, filter TransferFilter) ([]CashTransfer, error)
	Save(ctx context.Context, transfer *CashTransfer) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsForSafe(ctx context.Context, safeID uuid.UUID) (bool, error)
}
