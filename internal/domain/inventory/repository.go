package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockFilter holds optional filters for stock listings
type StockFilter struct {
	LocationID   *uuid.UUID
	VariantID    *uuid.UUID
	OnlyNonZero  bool
	OnlyNegative bool
	Limit        int
	Offset       int
}

// StockRepository provides the stock ledger primitives.
//
// AdjustQuantity is the single write path for every transaction type: it
// applies a signed delta to the (location, variant) position, creating the row
// with the delta as its initial quantity when absent.
type StockRepository interface {
	AdjustQuantity(ctx context.Context, locationID, variantID uuid.UUID, delta decimal.Decimal) error
	QuantityAt(ctx context.Context, locationID, variantID uuid.UUID) (decimal.Decimal, error)
	AggregateQuantity(ctx context.Context, variantID uuid.UUID) (decimal.Decimal, error)
	FindPositions(ctx context.Context, filter StockFilter) ([]StockPosition, error)
}

// LocationRepository defines persistence operations for locations
type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
	FindByName(ctx context.Context, name string) (*Location, error)
	FindAll(ctx context.Context) ([]Location, error)
	Save(ctx context.Context, location *Location) error
	Delete(ctx context.Context, id uuid.UUID) error
}
