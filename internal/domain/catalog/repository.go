package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ItemFilter holds optional filters for item listings
type ItemFilter struct {
	Name     *string
	Category *string
	Limit    int
	Offset   int
}

// ItemRepository defines persistence operations for items
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindAll(ctx context.Context, filter ItemFilter) ([]Item, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemVariantRepository defines persistence operations for item variants
type ItemVariantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemVariant, error)
	FindByBarcode(ctx context.Context, barcode string) (*ItemVariant, error)
	FindByItemID(ctx context.Context, itemID uuid.UUID) ([]ItemVariant, error)
	Save(ctx context.Context, variant *ItemVariant) error
	Delete(ctx context.Context, id uuid.UUID) error
}
