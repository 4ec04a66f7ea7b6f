package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/shared"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID, variants included
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var item catalog.Item
	if err := r.db.WithContext(ctx).Preload("Variants").First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds all items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter catalog.ItemFilter) ([]catalog.Item, error) {
	var items []catalog.Item
	query := r.db.WithContext(ctx).Preload("Variants").Model(&catalog.Item{})

	if filter.Name != nil {
		query = query.Where("name LIKE ?", "%"+*filter.Name+"%")
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an item together with its variants
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes an item and its variants
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&catalog.ItemVariant{}, "item_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.Item{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GormItemVariantRepository implements ItemVariantRepository using GORM
type GormItemVariantRepository struct {
	db *gorm.DB
}

// NewGormItemVariantRepository creates a new GormItemVariantRepository
func NewGormItemVariantRepository(db *gorm.DB) *GormItemVariantRepository {
	return &GormItemVariantRepository{db: db}
}

// FindByID finds a variant by its ID
func (r *GormItemVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ItemVariant, error) {
	var variant catalog.ItemVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindByBarcode finds a variant by its barcode
func (r *GormItemVariantRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.ItemVariant, error) {
	var variant catalog.ItemVariant
	if err := r.db.WithContext(ctx).First(&variant, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindByItemID finds all variants of an item
func (r *GormItemVariantRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]catalog.ItemVariant, error) {
	var variants []catalog.ItemVariant
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("barcode ASC").
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// Save creates or updates a variant
func (r *GormItemVariantRepository) Save(ctx context.Context, variant *catalog.ItemVariant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}

// Delete removes a variant
func (r *GormItemVariantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ItemVariant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure the implementations satisfy the domain interfaces
var _ catalog.ItemRepository = (*GormItemRepository)(nil)
var _ catalog.ItemVariantRepository = (*GormItemVariantRepository)(nil)
