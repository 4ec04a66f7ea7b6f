package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/trade"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by its ID, lines included
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	if err := r.db.WithContext(ctx).Preload("Lines").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindChild finds the apportionment order derived from a parent purchase
func (r *GormPurchaseOrderRepository) FindChild(ctx context.Context, parentID uuid.UUID) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "parent_purchase_id = ?", parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all purchase orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter trade.PurchaseFilter) ([]trade.PurchaseOrder, error) {
	var orders []trade.PurchaseOrder
	query := r.db.WithContext(ctx).Preload("Lines").Model(&trade.PurchaseOrder{})

	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.LocationID != nil {
		query = query.Where("location_id = ?", *filter.LocationID)
	}
	if filter.SafeID != nil {
		query = query.Where("safe_id = ?", *filter.SafeID)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}
	if filter.Unsettled {
		query = query.Where("remaining_amount > 0")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	if err := query.Order("date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a purchase order together with its lines
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(order).Error
}

// Delete removes a purchase order and its lines
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&trade.PurchaseLine{}, "purchase_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.PurchaseOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsForVariant reports whether any purchase line references the variant
func (r *GormPurchaseOrderRepository) ExistsForVariant(ctx context.Context, variantID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.PurchaseLine{}).
		Where("variant_id = ?", variantID).
		Count(&count).Error
	return count > 0, err
}

// ExistsForSafe reports whether any purchase order is attributed to the safe
func (r *GormPurchaseOrderRepository) ExistsForSafe(ctx context.Context, safeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.PurchaseOrder{}).
		Where("safe_id = ?", safeID).
		Count(&count).Error
	return count > 0, err
}

// ExistsForSupplier reports whether any purchase order references the supplier
func (r *GormPurchaseOrderRepository) ExistsForSupplier(ctx context.Context, supplierID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.PurchaseOrder{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error
	return count > 0, err
}

// FindLineByID finds a single purchase line by its ID
func (r *GormPurchaseOrderRepository) FindLineByID(ctx context.Context, lineID uuid.UUID) (*trade.PurchaseLine, error) {
	var line trade.PurchaseLine
	if err := r.db.WithContext(ctx).First(&line, "id = ?", lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// SaveLine updates a single purchase line. The return flow uses this to
// track returned quantities without rewriting the whole order.
func (r *GormPurchaseOrderRepository) SaveLine(ctx context.Context, line *trade.PurchaseLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
