package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/shared"
)

// GormStockRepository implements StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// AdjustQuantity applies a signed delta to the (location, variant) position,
// creating the row when absent. This is the single write path of the ledger.
func (r *GormStockRepository) AdjustQuantity(ctx context.Context, locationID, variantID uuid.UUID, delta decimal.Decimal) error {
	position := inventory.NewStockPosition(locationID, variantID, delta)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "location_id"}, {Name: "variant_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity": gorm.Expr("stock_positions.quantity + excluded.quantity"),
		}),
	}).Create(position).Error
}

// QuantityAt returns the quantity of a variant at one location. A missing row
// is a zero position, not an error.
func (r *GormStockRepository) QuantityAt(ctx context.Context, locationID, variantID uuid.UUID) (decimal.Decimal, error) {
	var position inventory.StockPosition
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND variant_id = ?", locationID, variantID).
		First(&position).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return position.Quantity, nil
}

// AggregateQuantity returns the variant's total quantity across all locations
func (r *GormStockRepository) AggregateQuantity(ctx context.Context, variantID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&inventory.StockPosition{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("variant_id = ?", variantID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// FindPositions finds stock positions matching the filter
func (r *GormStockRepository) FindPositions(ctx context.Context, filter inventory.StockFilter) ([]inventory.StockPosition, error) {
	var positions []inventory.StockPosition
	query := r.db.WithContext(ctx).Model(&inventory.StockPosition{})

	if filter.LocationID != nil {
		query = query.Where("location_id = ?", *filter.LocationID)
	}
	if filter.VariantID != nil {
		query = query.Where("variant_id = ?", *filter.VariantID)
	}
	if filter.OnlyNegative {
		query = query.Where("quantity < 0")
	}
	if filter.OnlyNonZero {
		query = query.Where("quantity <> 0")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	if err := query.Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by its ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Location, error) {
	var location inventory.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindByName finds a location by its name
func (r *GormLocationRepository) FindByName(ctx context.Context, name string) (*inventory.Location, error) {
	var location inventory.Location
	if err := r.db.WithContext(ctx).First(&location, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindAll finds all locations
func (r *GormLocationRepository) FindAll(ctx context.Context) ([]inventory.Location, error) {
	var locations []inventory.Location
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Save creates or updates a location
func (r *GormLocationRepository) Save(ctx context.Context, location *inventory.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// Delete removes a location
func (r *GormLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Location{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ inventory.StockRepository = (*GormStockRepository)(nil)
var _ inventory.LocationRepository = (*GormLocationRepository)(nil)
