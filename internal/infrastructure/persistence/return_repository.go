package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/trade"
)

// GormSaleReturnRepository implements SaleReturnRepository using GORM
type GormSaleReturnRepository struct {
	db *gorm.DB
}

// NewGormSaleReturnRepository creates a new GormSaleReturnRepository
func NewGormSaleReturnRepository(db *gorm.DB) *GormSaleReturnRepository {
	return &GormSaleReturnRepository{db: db}
}

// FindByID finds a sale return by its ID
func (r *GormSaleReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SaleReturn, error) {
	var ret trade.SaleReturn
	if err := r.db.WithContext(ctx).First(&ret, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindByInvoiceID finds all returns recorded against an invoice
func (r *GormSaleReturnRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]trade.SaleReturn, error) {
	var returns []trade.SaleReturn
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("date ASC").
		Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// FindAll finds all sale returns matching the filter
func (r *GormSaleReturnRepository) FindAll(ctx context.Context, filter trade.ReturnFilter) ([]trade.SaleReturn, error) {
	var returns []trade.SaleReturn
	query := r.db.WithContext(ctx).Model(&trade.SaleReturn{})
	query = applyReturnFilter(query, filter)
	if err := query.Order("date DESC").Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// Save creates or updates a sale return
func (r *GormSaleReturnRepository) Save(ctx context.Context, ret *trade.SaleReturn) error {
	return r.db.WithContext(ctx).Save(ret).Error
}

// Delete removes a sale return
func (r *GormSaleReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.SaleReturn{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormPurchaseReturnRepository implements PurchaseReturnRepository using GORM
type GormPurchaseReturnRepository struct {
	db *gorm.DB
}

// NewGormPurchaseReturnRepository creates a new GormPurchaseReturnRepository
func NewGormPurchaseReturnRepository(db *gorm.DB) *GormPurchaseReturnRepository {
	return &GormPurchaseReturnRepository{db: db}
}

// FindByID finds a purchase return by its ID, per-line details included
func (r *GormPurchaseReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseReturn, error) {
	var ret trade.PurchaseReturn
	if err := r.db.WithContext(ctx).Preload("Details").First(&ret, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindByPurchaseID finds all returns recorded against a purchase order
func (r *GormPurchaseReturnRepository) FindByPurchaseID(ctx context.Context, purchaseID uuid.UUID) ([]trade.PurchaseReturn, error) {
	var returns []trade.PurchaseReturn
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Where("purchase_id = ?", purchaseID).
		Order("date ASC").
		Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// FindAll finds all purchase returns matching the filter
func (r *GormPurchaseReturnRepository) FindAll(ctx context.Context, filter trade.ReturnFilter) ([]trade.PurchaseReturn, error) {
	var returns []trade.PurchaseReturn
	query := r.db.WithContext(ctx).Preload("Details").Model(&trade.PurchaseReturn{})
	query = applyReturnFilter(query, filter)
	if err := query.Order("date DESC").Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// Save creates or updates a purchase return together with its details
func (r *GormPurchaseReturnRepository) Save(ctx context.Context, ret *trade.PurchaseReturn) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(ret).Error
}

// Delete removes a purchase return and its details
func (r *GormPurchaseReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&trade.PurchaseReturnDetail{}, "purchase_return_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.PurchaseReturn{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func applyReturnFilter(query *gorm.DB, filter trade.ReturnFilter) *gorm.DB {
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	return query
}

var _ trade.SaleReturnRepository = (*GormSaleReturnRepository)(nil)
var _ trade.PurchaseReturnRepository = (*GormPurchaseReturnRepository)(nil)
