package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InvoiceFilter holds optional filters for sale invoice listings
type InvoiceFilter struct {
	CustomerID *uuid.UUID
	LocationID *uuid.UUID
	SafeID     *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	Unsettled  bool
	Limit      int
	Offset     int
}

// PurchaseFilter holds optional filters for purchase order listings
type PurchaseFilter struct {
	SupplierID *uuid.UUID
	LocationID *uuid.UUID
	SafeID     *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	Unsettled  bool
	Limit      int
	Offset     int
}

// ReturnFilter holds optional filters for return listings
type ReturnFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// SaleInvoiceRepository defines persistence operations for sale invoices
type SaleInvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SaleInvoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]SaleInvoice, error)
	Save(ctx context.Context, invoice *SaleInvoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteLines(ctx context.Context, invoiceID uuid.UUID) error
	ExistsForVariant(ctx context.Context, variantID uuid.UUID) (bool, error)
	ExistsForSafe(ctx context.Context, safeID uuid.UUID) (bool, error)
}

// PurchaseOrderRepository defines persistence operations for purchase orders
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindChild(ctx context.Context, parentID uuid.UUID) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter PurchaseFilter) ([]PurchaseOrder, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsForVariant(ctx context.Context, variantID uuid.UUID) (bool, error)
	ExistsForSafe(ctx context.Context, safeID uuid.UUID) (bool, error)
	FindLineByID(ctx context.Context, lineID uuid.UUID) (*PurchaseLine, error)
	SaveLine(ctx context.Context, line *PurchaseLine) error
}

// SaleReturnRepository defines persistence operations for sale returns
type SaleReturnRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SaleReturn, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]SaleReturn, error)
	FindAll(ctx context.Context, filter ReturnFilter) ([]SaleReturn, error)
	Save(ctx context.Context, ret *SaleReturn) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PurchaseReturnRepository defines persistence operations for purchase returns
type PurchaseReturnRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseReturn, error)
	FindByPurchaseID(ctx context.Context, purchaseID uuid.UUID) ([]PurchaseReturn, error)
	FindAll(ctx context.Context, filter ReturnFilter) ([]PurchaseReturn, error)
	Save(ctx context.Context, ret *PurchaseReturn) error
	Delete(ctx context.Context, id uuid.UUID) error
}
