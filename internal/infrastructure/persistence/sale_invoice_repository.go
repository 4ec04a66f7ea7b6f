package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/trade"
)

// GormSaleInvoiceRepository implements SaleInvoiceRepository using GORM
type GormSaleInvoiceRepository struct {
	db *gorm.DB
}

// NewGormSaleInvoiceRepository creates a new GormSaleInvoiceRepository
func NewGormSaleInvoiceRepository(db *gorm.DB) *GormSaleInvoiceRepository {
	return &GormSaleInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID, lines included
func (r *GormSaleInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SaleInvoice, error) {
	var invoice trade.SaleInvoice
	if err := r.db.WithContext(ctx).Preload("Lines").First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds all invoices matching the filter
func (r *GormSaleInvoiceRepository) FindAll(ctx context.Context, filter trade.InvoiceFilter) ([]trade.SaleInvoice, error) {
	var invoices []trade.SaleInvoice
	query := r.db.WithContext(ctx).Preload("Lines").Model(&trade.SaleInvoice{})

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
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

	if err := query.Order("date DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates an invoice together with its lines
func (r *GormSaleInvoiceRepository) Save(ctx context.Context, invoice *trade.SaleInvoice) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(invoice).Error
}

// Delete removes an invoice and its lines
func (r *GormSaleInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&trade.SaleLine{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.SaleInvoice{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// DeleteLines removes all lines of an invoice, leaving the header in place.
// The edit flow rebuilds the line set from scratch.
func (r *GormSaleInvoiceRepository) DeleteLines(ctx context.Context, invoiceID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&trade.SaleLine{}, "invoice_id = ?", invoiceID).Error
}

// ExistsForVariant reports whether any invoice line references the variant
func (r *GormSaleInvoiceRepository) ExistsForVariant(ctx context.Context, variantID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.SaleLine{}).
		Where("variant_id = ?", variantID).
		Count(&count).Error
	return count > 0, err
}

// ExistsForSafe reports whether any invoice is attributed to the safe
func (r *GormSaleInvoiceRepository) ExistsForSafe(ctx context.Context, safeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.SaleInvoice{}).
		Where("safe_id = ?", safeID).
		Count(&count).Error
	return count > 0, err
}

// ExistsForCustomer reports whether any invoice references the customer
func (r *GormSaleInvoiceRepository) ExistsForCustomer(ctx context.Context, customerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.SaleInvoice{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count > 0, err
}

var _ trade.SaleInvoiceRepository = (*GormSaleInvoiceRepository)(nil)
