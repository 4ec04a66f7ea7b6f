package partner

import (
	"context"

	"github.com/google/uuid"
)

// PartnerFilter holds optional filters for partner listings
type PartnerFilter struct {
	Name   *string
	Limit  int
	Offset int
}

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByName(ctx context.Context, name string) (*Customer, error)
	FindAll(ctx context.Context, filter PartnerFilter) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindByName(ctx context.Context, name string) (*Supplier, error)
	FindAll(ctx context.Context, filter PartnerFilter) ([]Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}
