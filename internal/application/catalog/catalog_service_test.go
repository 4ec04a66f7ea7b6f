package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
)

func testMoney(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyEGPFromString(s)
	require.NoError(t, err)
	return m
}

type memVariantRepo struct {
	variants map[uuid.UUID]*catalog.ItemVariant
}

func newMemVariantRepo() *memVariantRepo {
	return &memVariantRepo{variants: make(map[uuid.UUID]*catalog.ItemVariant)}
}

func (r *memVariantRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.ItemVariant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return v, nil
}

func (r *memVariantRepo) FindByBarcode(_ context.Context, barcode string) (*catalog.ItemVariant, error) {
	for _, v := range r.variants {
		if v.Barcode == barcode {
			return v, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memVariantRepo) FindByItemID(_ context.Context, itemID uuid.UUID) ([]catalog.ItemVariant, error) {
	var out []catalog.ItemVariant
	for _, v := range r.variants {
		if v.ItemID == itemID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *memVariantRepo) Save(_ context.Context, v *catalog.ItemVariant) error {
	r.variants[v.ID] = v
	return nil
}

func (r *memVariantRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.variants, id)
	return nil
}

// memItemRepo persists nested variants on save the way the gorm
// association write does.
type memItemRepo struct {
	items    map[uuid.UUID]*catalog.Item
	variants *memVariantRepo
}

func newMemItemRepo(variants *memVariantRepo) *memItemRepo {
	return &memItemRepo{items: make(map[uuid.UUID]*catalog.Item), variants: variants}
}

func (r *memItemRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (r *memItemRepo) FindAll(_ context.Context, _ catalog.ItemFilter) ([]catalog.Item, error) {
	var out []catalog.Item
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *memItemRepo) Save(ctx context.Context, item *catalog.Item) error {
	r.items[item.ID] = item
	for i := range item.Variants {
		if err := r.variants.Save(ctx, &item.Variants[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *memItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	for vid, v := range r.variants.variants {
		if v.ItemID == id {
			delete(r.variants.variants, vid)
		}
	}
	delete(r.items, id)
	return nil
}

type stubChecker struct{ used bool }

func (c stubChecker) ExistsForVariant(_ context.Context, _ uuid.UUID) (bool, error) {
	return c.used, nil
}

func newServiceForTest(invoiceRefs, purchaseRefs VariantReferenceChecker) (*CatalogService, *memItemRepo, *memVariantRepo) {
	variants := newMemVariantRepo()
	items := newMemItemRepo(variants)
	svc := NewCatalogService(items, variants, invoiceRefs, purchaseRefs, zap.NewNop())
	return svc, items, variants
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates item with variants", func(t *testing.T) {
		svc, _, variants := newServiceForTest(stubChecker{}, stubChecker{})

		item, err := svc.CreateItem(ctx, CreateItemRequest{
			Name:     "Hoodie",
			Category: "Tops",
			Variants: []VariantInput{
				{Color: "Black", Size: "M", Barcode: "HD-BLK-M", SellPrice: testMoney(t, "250")},
				{Color: "Black", Size: "L", Barcode: "HD-BLK-L", SellPrice: testMoney(t, "250")},
			},
		})
		require.NoError(t, err)
		assert.Len(t, item.Variants, 2)

		found, err := variants.FindByBarcode(ctx, "HD-BLK-M")
		require.NoError(t, err)
		assert.Equal(t, item.ID, found.ItemID)
		assert.Equal(t, "0.00", found.UnitCost.StringFixed(2))
	})

	t.Run("rejects duplicate barcode", func(t *testing.T) {
		svc, _, _ := newServiceForTest(stubChecker{}, stubChecker{})

		_, err := svc.CreateItem(ctx, CreateItemRequest{
			Name:     "Hoodie",
			Category: "Tops",
			Variants: []VariantInput{{Barcode: "HD-1", SellPrice: testMoney(t, "100")}},
		})
		require.NoError(t, err)

		_, err = svc.CreateItem(ctx, CreateItemRequest{
			Name:     "Other Hoodie",
			Category: "Tops",
			Variants: []VariantInput{{Barcode: "HD-1", SellPrice: testMoney(t, "120")}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already assigned")
	})
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, svc *CatalogService) *catalog.Item {
		item, err := svc.CreateItem(ctx, CreateItemRequest{
			Name:     "Jeans",
			Category: "Bottoms",
			Variants: []VariantInput{{Barcode: "JN-32", SellPrice: testMoney(t, "400")}},
		})
		require.NoError(t, err)
		return item
	}

	t.Run("removes item and variants when unreferenced", func(t *testing.T) {
		svc, items, variants := newServiceForTest(stubChecker{}, stubChecker{})
		item := create(t, svc)

		require.NoError(t, svc.DeleteItem(ctx, item.ID))
		assert.Empty(t, items.items)
		assert.Empty(t, variants.variants)
	})

	t.Run("blocked while a sale references a variant", func(t *testing.T) {
		svc, items, _ := newServiceForTest(stubChecker{used: true}, stubChecker{})
		item := create(t, svc)

		err := svc.DeleteItem(ctx, item.ID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInUse))
		assert.Len(t, items.items, 1)
	})

	t.Run("blocked while a purchase references a variant", func(t *testing.T) {
		svc, _, _ := newServiceForTest(stubChecker{}, stubChecker{used: true})
		item := create(t, svc)

		err := svc.DeleteItem(ctx, item.ID)
		assert.True(t, errors.Is(err, shared.ErrInUse))
	})
}

func TestVariantLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("add, reprice and delete", func(t *testing.T) {
		svc, _, _ := newServiceForTest(stubChecker{}, stubChecker{})
		item, err := svc.CreateItem(ctx, CreateItemRequest{Name: "Belt", Category: "Accessories"})
		require.NoError(t, err)

		variant, err := svc.AddVariant(ctx, item.ID, VariantInput{
			Color: "Brown", Barcode: "BL-BRN", SellPrice: testMoney(t, "90"),
		})
		require.NoError(t, err)

		repriced, err := svc.ChangeSellPrice(ctx, variant.ID, testMoney(t, "110"))
		require.NoError(t, err)
		assert.Equal(t, "110.00", repriced.SellPrice.StringFixed(2))

		require.NoError(t, svc.DeleteVariant(ctx, variant.ID))
		_, err = svc.FindByBarcode(ctx, "BL-BRN")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No variant carries this barcode")
	})

	t.Run("delete blocked by trade history", func(t *testing.T) {
		svc, _, _ := newServiceForTest(stubChecker{used: true}, stubChecker{})
		item, err := svc.CreateItem(ctx, CreateItemRequest{Name: "Belt", Category: "Accessories"})
		require.NoError(t, err)
		variant, err := svc.AddVariant(ctx, item.ID, VariantInput{Barcode: "BL-1", SellPrice: testMoney(t, "90")})
		require.NoError(t, err)

		err = svc.DeleteVariant(ctx, variant.ID)
		assert.True(t, errors.Is(err, shared.ErrInUse))
	})

	t.Run("barcode lookup returns the variant", func(t *testing.T) {
		svc, _, _ := newServiceForTest(stubChecker{}, stubChecker{})
		item, err := svc.CreateItem(ctx, CreateItemRequest{
			Name: "Scarf", Category: "Accessories",
			Variants: []VariantInput{{Color: "Red", Barcode: "SC-RED", SellPrice: testMoney(t, "60")}},
		})
		require.NoError(t, err)

		found, err := svc.FindByBarcode(ctx, "SC-RED")
		require.NoError(t, err)
		assert.Equal(t, item.ID, found.ItemID)
		assert.Equal(t, "Red", found.Label())
	})
}

func TestRenameItem(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newServiceForTest(stubChecker{}, stubChecker{})

	item, err := svc.CreateItem(ctx, CreateItemRequest{Name: "T-Shirt", Category: "Tops"})
	require.NoError(t, err)

	renamed, err := svc.RenameItem(ctx, item.ID, "Basic Tee")
	require.NoError(t, err)
	assert.Equal(t, "Basic Tee", renamed.Name)

	_, err = svc.RenameItem(ctx, uuid.New(), "Ghost")
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
