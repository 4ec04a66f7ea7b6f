package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/shared"
)

type stockKey struct {
	location uuid.UUID
	variant  uuid.UUID
}

type memStockRepo struct {
	positions map[stockKey]decimal.Decimal
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{positions: make(map[stockKey]decimal.Decimal)}
}

func (r *memStockRepo) AdjustQuantity(_ context.Context, locationID, variantID uuid.UUID, delta decimal.Decimal) error {
	key := stockKey{locationID, variantID}
	r.positions[key] = r.positions[key].Add(delta)
	return nil
}

func (r *memStockRepo) QuantityAt(_ context.Context, locationID, variantID uuid.UUID) (decimal.Decimal, error) {
	return r.positions[stockKey{locationID, variantID}], nil
}

func (r *memStockRepo) AggregateQuantity(_ context.Context, variantID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for key, q := range r.positions {
		if key.variant == variantID {
			total = total.Add(q)
		}
	}
	return total, nil
}

func (r *memStockRepo) FindPositions(_ context.Context, filter inventory.StockFilter) ([]inventory.StockPosition, error) {
	var out []inventory.StockPosition
	for key, q := range r.positions {
		if filter.LocationID != nil && key.location != *filter.LocationID {
			continue
		}
		if filter.VariantID != nil && key.variant != *filter.VariantID {
			continue
		}
		if filter.OnlyNegative && !q.IsNegative() {
			continue
		}
		if filter.OnlyNonZero && q.IsZero() {
			continue
		}
		out = append(out, inventory.StockPosition{LocationID: key.location, VariantID: key.variant, Quantity: q})
	}
	return out, nil
}

type memLocationRepo struct {
	locations map[uuid.UUID]*inventory.Location
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{locations: make(map[uuid.UUID]*inventory.Location)}
}

func (r *memLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return l, nil
}

func (r *memLocationRepo) FindByName(_ context.Context, name string) (*inventory.Location, error) {
	for _, l := range r.locations {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memLocationRepo) FindAll(_ context.Context) ([]inventory.Location, error) {
	var out []inventory.Location
	for _, l := range r.locations {
		out = append(out, *l)
	}
	return out, nil
}

func (r *memLocationRepo) Save(_ context.Context, l *inventory.Location) error {
	r.locations[l.ID] = l
	return nil
}

func (r *memLocationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.locations, id)
	return nil
}

// noOpScope runs the scoped function directly against the in-memory
// repositories, without a real transaction.
type noOpScope struct {
	stock     inventory.StockRepository
	locations inventory.LocationRepository
}

func (s *noOpScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *noOpScope) Stock() inventory.StockRepository        { return s.stock }
func (s *noOpScope) Locations() inventory.LocationRepository { return s.locations }

var _ TransactionScope = (*noOpScope)(nil)
var _ TransactionalRepositories = (*noOpScope)(nil)

func newServiceForTest() (*StockService, *memStockRepo, *memLocationRepo) {
	stock := newMemStockRepo()
	locations := newMemLocationRepo()
	svc := NewStockService(&noOpScope{stock: stock, locations: locations}, zap.NewNop())
	return svc, stock, locations
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*StockService, *memStockRepo, uuid.UUID, uuid.UUID, uuid.UUID) {
		svc, stock, _ := newServiceForTest()
		from, err := svc.CreateLocation(ctx, "Main Stock", "")
		require.NoError(t, err)
		to, err := svc.CreateLocation(ctx, "Showroom", "")
		require.NoError(t, err)
		variant := uuid.New()
		require.NoError(t, stock.AdjustQuantity(ctx, from.ID, variant, decimal.NewFromInt(10)))
		return svc, stock, from.ID, to.ID, variant
	}

	t.Run("moves quantity between locations", func(t *testing.T) {
		svc, stock, from, to, variant := setup(t)

		require.NoError(t, svc.Transfer(ctx, TransferStockRequest{
			FromLocationID: from,
			ToLocationID:   to,
			VariantID:      variant,
			Quantity:       decimal.NewFromInt(4),
		}))

		fromQty, _ := stock.QuantityAt(ctx, from, variant)
		toQty, _ := stock.QuantityAt(ctx, to, variant)
		assert.Equal(t, "6", fromQty.String())
		assert.Equal(t, "4", toQty.String())
	})

	t.Run("rejects insufficient source stock", func(t *testing.T) {
		svc, stock, from, to, variant := setup(t)

		err := svc.Transfer(ctx, TransferStockRequest{
			FromLocationID: from,
			ToLocationID:   to,
			VariantID:      variant,
			Quantity:       decimal.NewFromInt(11),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

		fromQty, _ := stock.QuantityAt(ctx, from, variant)
		assert.Equal(t, "10", fromQty.String())
	})

	t.Run("rejects same-location transfer", func(t *testing.T) {
		svc, _, from, _, variant := setup(t)
		err := svc.Transfer(ctx, TransferStockRequest{
			FromLocationID: from,
			ToLocationID:   from,
			VariantID:      variant,
			Quantity:       decimal.NewFromInt(1),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must differ")
	})
}

func TestNegativePositions(t *testing.T) {
	ctx := context.Background()
	svc, stock, _ := newServiceForTest()

	loc := uuid.New()
	negative := uuid.New()
	positive := uuid.New()
	require.NoError(t, stock.AdjustQuantity(ctx, loc, negative, decimal.NewFromInt(-3)))
	require.NoError(t, stock.AdjustQuantity(ctx, loc, positive, decimal.NewFromInt(5)))

	positions, err := svc.NegativePositions(ctx)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, negative, positions[0].VariantID)
	assert.Equal(t, "-3", positions[0].Quantity.String())
}

func TestDeleteLocation(t *testing.T) {
	ctx := context.Background()
	svc, stock, locations := newServiceForTest()

	loc, err := svc.CreateLocation(ctx, "Back Room", "")
	require.NoError(t, err)

	variant := uuid.New()
	require.NoError(t, stock.AdjustQuantity(ctx, loc.ID, variant, decimal.NewFromInt(2)))

	err = svc.DeleteLocation(ctx, loc.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInUse))

	require.NoError(t, stock.AdjustQuantity(ctx, loc.ID, variant, decimal.NewFromInt(-2)))
	require.NoError(t, svc.DeleteLocation(ctx, loc.ID))
	assert.Empty(t, locations.locations)
}
