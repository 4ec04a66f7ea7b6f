package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/shared"
)

// TransactionScope provides transactional access to the stock repositories.
// A stock transfer is two position updates that must land together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories scoped to the current transaction.
type TransactionalRepositories interface {
	Stock() inventory.StockRepository
	Locations() inventory.LocationRepository
}

// TransferStockRequest moves quantity of one variant between two locations
type TransferStockRequest struct {
	FromLocationID uuid.UUID
	ToLocationID   uuid.UUID
	VariantID      uuid.UUID
	Quantity       decimal.Decimal
}

// StockService handles stock movements that are not tied to a trade document,
// and location administration.
type StockService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(scope TransactionScope, logger *zap.Logger) *StockService {
	return &StockService{scope: scope, logger: logger}
}

// Transfer moves quantity between two locations as an atomic pair of position
// updates. Unlike trade reversals there is no force option: a transfer out of
// stock that is not there is always rejected.
func (s *StockService) Transfer(ctx context.Context, req TransferStockRequest) error {
	if req.FromLocationID == req.ToLocationID {
		return shared.NewDomainError("SAME_LOCATION_TRANSFER", "Source and destination locations must differ")
	}
	if !req.Quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Transfer quantity must be positive")
	}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.Locations().FindByID(ctx, req.FromLocationID); err != nil {
			return err
		}
		if _, err := repos.Locations().FindByID(ctx, req.ToLocationID); err != nil {
			return err
		}
		available, err := repos.Stock().QuantityAt(ctx, req.FromLocationID, req.VariantID)
		if err != nil {
			return err
		}
		if available.LessThan(req.Quantity) {
			return shared.ErrInsufficientStock
		}
		if err := repos.Stock().AdjustQuantity(ctx, req.FromLocationID, req.VariantID, req.Quantity.Neg()); err != nil {
			return err
		}
		return repos.Stock().AdjustQuantity(ctx, req.ToLocationID, req.VariantID, req.Quantity)
	})
	if err != nil {
		return err
	}

	s.logger.Info("stock transferred",
		zap.String("variant_id", req.VariantID.String()),
		zap.String("quantity", req.Quantity.String()),
		zap.String("from", req.FromLocationID.String()),
		zap.String("to", req.ToLocationID.String()))
	return nil
}

// Positions lists stock positions matching the filter
func (s *StockService) Positions(ctx context.Context, filter inventory.StockFilter) ([]inventory.StockPosition, error) {
	var positions []inventory.StockPosition
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		list, err := repos.Stock().FindPositions(ctx, filter)
		if err != nil {
			return err
		}
		positions = list
		return nil
	})
	return positions, err
}

// NegativePositions lists every position that has gone below zero. These rows
// come from forced reversals and are the first thing to reconcile at stock
// taking.
func (s *StockService) NegativePositions(ctx context.Context) ([]inventory.StockPosition, error) {
	return s.Positions(ctx, inventory.StockFilter{OnlyNegative: true})
}

// CreateLocation creates a new stock location
func (s *StockService) CreateLocation(ctx context.Context, name, address string) (*inventory.Location, error) {
	var location *inventory.Location
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if existing, err := repos.Locations().FindByName(ctx, name); err == nil && existing != nil {
			return shared.ErrAlreadyExists
		}
		loc, err := inventory.NewLocation(name, address)
		if err != nil {
			return err
		}
		if err := repos.Locations().Save(ctx, loc); err != nil {
			return err
		}
		location = loc
		return nil
	})
	return location, err
}

// ListLocations retrieves all stock locations
func (s *StockService) ListLocations(ctx context.Context) ([]inventory.Location, error) {
	var locations []inventory.Location
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		list, err := repos.Locations().FindAll(ctx)
		if err != nil {
			return err
		}
		locations = list
		return nil
	})
	return locations, err
}

// DeleteLocation removes a location that holds no stock
func (s *StockService) DeleteLocation(ctx context.Context, locationID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.Locations().FindByID(ctx, locationID); err != nil {
			return err
		}
		positions, err := repos.Stock().FindPositions(ctx, inventory.StockFilter{
			LocationID:  &locationID,
			OnlyNonZero: true,
		})
		if err != nil {
			return err
		}
		if len(positions) > 0 {
			return shared.ErrInUse
		}
		return repos.Locations().Delete(ctx, locationID)
	})
}
