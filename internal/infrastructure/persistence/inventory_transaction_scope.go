package persistence

import (
	"context"

	"gorm.io/gorm"

	appinventory "github.com/retailcore/backend/internal/application/inventory"
	"github.com/retailcore/backend/internal/domain/inventory"
)

// GormInventoryTransactionScope implements the inventory TransactionScope
// using GORM transactions. A stock transfer's two position updates land in
// one transaction or not at all.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

// gormInventoryRepositories provides transaction-bound repository instances
type gormInventoryRepositories struct {
	tx *gorm.DB
}

func (r *gormInventoryRepositories) Stock() inventory.StockRepository {
	return NewGormStockRepository(r.tx)
}

func (r *gormInventoryRepositories) Locations() inventory.LocationRepository {
	return NewGormLocationRepository(r.tx)
}

var _ appinventory.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*gormInventoryRepositories)(nil)
