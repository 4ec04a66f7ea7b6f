package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/retailcore/backend/internal/domain/treasury"
)

// GormSafeRepository implements SafeRepository using GORM
type GormSafeRepository struct {
	db *gorm.DB
}

// NewGormSafeRepository creates a new GormSafeRepository
func NewGormSafeRepository(db *gorm.DB) *GormSafeRepository {
	return &GormSafeRepository{db: db}
}

// FindByID finds a safe by its ID
func (r *GormSafeRepository) FindByID(ctx context.Context, id uuid.UUID) (*treasury.Safe, error) {
	var safe treasury.Safe
	if err := r.db.WithContext(ctx).First(&safe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &safe, nil
}

// FindByName finds a safe by its name
func (r *GormSafeRepository) FindByName(ctx context.Context, name string) (*treasury.Safe, error) {
	var safe treasury.Safe
	if err := r.db.WithContext(ctx).First(&safe, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &safe, nil
}

// FindAll finds all safes
func (r *GormSafeRepository) FindAll(ctx context.Context) ([]treasury.Safe, error) {
	var safes []treasury.Safe
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&safes).Error; err != nil {
		return nil, err
	}
	return safes, nil
}

// Save creates or updates a safe
func (r *GormSafeRepository) Save(ctx context.Context, safe *treasury.Safe) error {
	return r.db.WithContext(ctx).Save(safe).Error
}

// Delete removes a safe
func (r *GormSafeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&treasury.Safe{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// balanceRow carries the raw stream sums before they become Money values
type balanceRow struct {
	Receipts              decimal.Decimal
	TransfersIn           decimal.Decimal
	InvoicePayments       decimal.Decimal
	PurchaseReturnRefunds decimal.Decimal
	Payments              decimal.Decimal
	TransfersOut          decimal.Decimal
	PurchaseOutflow       decimal.Decimal
}

// Balance aggregates the five transaction streams of a safe into its derived
// cash position in a single round trip. Purchase return refunds are attributed
// through the safe of the purchase they reverse. Sale return refunds are not a
// stream of their own: the return flow books them as payment vouchers, so they
// already sit inside the payments sum.
func (r *GormSafeRepository) Balance(ctx context.Context, safeID uuid.UUID) (*treasury.BalanceBreakdown, error) {
	const query = `
		SELECT
			COALESCE((SELECT SUM(amount) FROM vouchers WHERE safe_id = ? AND type = ?), 0)       AS receipts,
			COALESCE((SELECT SUM(amount) FROM cash_transfers WHERE to_safe_id = ?), 0)           AS transfers_in,
			COALESCE((SELECT SUM(paid_amount) FROM sale_invoices WHERE safe_id = ?), 0)          AS invoice_payments,
			COALESCE((SELECT SUM(pr.refund_amount)
				FROM purchase_returns pr
				JOIN purchase_orders po ON po.id = pr.purchase_id
				WHERE po.safe_id = ?), 0)                                                        AS purchase_return_refunds,
			COALESCE((SELECT SUM(amount) FROM vouchers WHERE safe_id = ? AND type = ?), 0)       AS payments,
			COALESCE((SELECT SUM(amount) FROM cash_transfers WHERE from_safe_id = ?), 0)         AS transfers_out,
			COALESCE((SELECT SUM(net_total) FROM purchase_orders WHERE safe_id = ?), 0)          AS purchase_outflow`

	var row balanceRow
	err := r.db.WithContext(ctx).Raw(query,
		safeID, treasury.VoucherTypeReceipt,
		safeID,
		safeID,
		safeID,
		safeID, treasury.VoucherTypePayment,
		safeID,
		safeID,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	balance := row.Receipts.
		Add(row.TransfersIn).
		Add(row.InvoicePayments).
		Add(row.PurchaseReturnRefunds).
		Sub(row.Payments).
		Sub(row.TransfersOut).
		Sub(row.PurchaseOutflow)

	return &treasury.BalanceBreakdown{
		SafeID:                safeID,
		Receipts:              valueobject.NewMoneyEGP(row.Receipts),
		TransfersIn:           valueobject.NewMoneyEGP(row.TransfersIn),
		InvoicePayments:       valueobject.NewMoneyEGP(row.InvoicePayments),
		PurchaseReturnRefunds: valueobject.NewMoneyEGP(row.PurchaseReturnRefunds),
		Payments:              valueobject.NewMoneyEGP(row.Payments),
		TransfersOut:          valueobject.NewMoneyEGP(row.TransfersOut),
		PurchaseOutflow:       valueobject.NewMoneyEGP(row.PurchaseOutflow),
		Balance:               valueobject.NewMoneyEGP(balance),
	}, nil
}

// GormVoucherRepository implements VoucherRepository using GORM
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository creates a new GormVoucherRepository
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// FindByID finds a voucher by its ID
func (r *GormVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*treasury.Voucher, error) {
	var voucher treasury.Voucher
	if err := r.db.WithContext(ctx).First(&voucher, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &voucher, nil
}

// FindAll finds all vouchers matching the filter
func (r *GormVoucherRepository) FindAll(ctx context.Context, filter treasury.VoucherFilter) ([]treasury.Voucher, error) {
	var vouchers []treasury.Voucher
	query := r.db.WithContext(ctx).Model(&treasury.Voucher{})

	if filter.SafeID != nil {
		query = query.Where("safe_id = ?", *filter.SafeID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	if err := query.Order("date DESC").Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

// Save creates or updates a voucher
func (r *GormVoucherRepository) Save(ctx context.Context, voucher *treasury.Voucher) error {
	return r.db.WithContext(ctx).Save(voucher).Error
}

// Delete removes a voucher
func (r *GormVoucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&treasury.Voucher{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsForSafe reports whether any voucher references the safe
func (r *GormVoucherRepository) ExistsForSafe(ctx context.Context, safeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&treasury.Voucher{}).
		Where("safe_id = ?", safeID).
		Count(&count).Error
	return count > 0, err
}

// GormCashTransferRepository implements CashTransferRepository using GORM
type GormCashTransferRepository struct {
	db *gorm.DB
}

// NewGormCashTransferRepository creates a new GormCashTransferRepository
func NewGormCashTransferRepository(db *gorm.DB) *GormCashTransferRepository {
	return &GormCashTransferRepository{db: db}
}

// FindByID finds a cash transfer by its ID
func (r *GormCashTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*treasury.CashTransfer, error) {
	var transfer treasury.CashTransfer
	if err := r.db.WithContext(ctx).First(&transfer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transfer, nil
}

// FindAll finds all cash transfers matching the filter. The safe filter
// matches either end of the transfer.
func (r *GormCashTransferRepository) FindAll(ctx context.Context, filter treasury.TransferFilter) ([]treasury.CashTransfer, error) {
	var transfers []treasury.CashTransfer
	query := r.db.WithContext(ctx).Model(&treasury.CashTransfer{})

	if filter.SafeID != nil {
		query = query.Where("from_safe_id = ? OR to_safe_id = ?", *filter.SafeID, *filter.SafeID)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	if err := query.Order("date DESC").Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// Save creates or updates a cash transfer
func (r *GormCashTransferRepository) Save(ctx context.Context, transfer *treasury.CashTransfer) error {
	return r.db.WithContext(ctx).Save(transfer).Error
}

// Delete removes a cash transfer
func (r *GormCashTransferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&treasury.CashTransfer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsForSafe reports whether any transfer touches the safe on either end
func (r *GormCashTransferRepository) ExistsForSafe(ctx context.Context, safeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&treasury.CashTransfer{}).
		Where("from_safe_id = ? OR to_safe_id = ?", safeID, safeID).
		Count(&count).Error
	return count > 0, err
}

var _ treasury.SafeRepository = (*GormSafeRepository)(nil)
var _ treasury.VoucherRepository = (*GormVoucherRepository)(nil)
var _ treasury.CashTransferRepository = (*GormCashTransferRepository)(nil)
