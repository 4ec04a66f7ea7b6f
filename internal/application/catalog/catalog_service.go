package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
)

// VariantReferenceChecker reports whether any trade document references a
// variant. The sale invoice and purchase order repositories implement it.
type VariantReferenceChecker interface {
	ExistsForVariant(ctx context.Context, variantID uuid.UUID) (bool, error)
}

// CatalogService handles item and variant administration
type CatalogService struct {
	items        catalog.ItemRepository
	variants     catalog.ItemVariantRepository
	invoiceRefs  VariantReferenceChecker
	purchaseRefs VariantReferenceChecker
	logger       *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	items catalog.ItemRepository,
	variants catalog.ItemVariantRepository,
	invoiceRefs VariantReferenceChecker,
	purchaseRefs VariantReferenceChecker,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		items:        items,
		variants:     variants,
		invoiceRefs:  invoiceRefs,
		purchaseRefs: purchaseRefs,
		logger:       logger,
	}
}

// CreateItemRequest creates an item together with its initial variants
type CreateItemRequest struct {
	Name     string
	Category string
	Variants []VariantInput
}

// VariantInput is one color/size/barcode combination
type VariantInput struct {
	Color     string
	Size      string
	Barcode   string
	SellPrice valueobject.Money
}

// CreateItem creates an item and its variants. Barcodes must be unique across
// the whole catalog.
func (s *CatalogService) CreateItem(ctx context.Context, req CreateItemRequest) (*catalog.Item, error) {
	item, err := catalog.NewItem(req.Name, req.Category)
	if err != nil {
		return nil, err
	}
	for _, input := range req.Variants {
		if existing, err := s.variants.FindByBarcode(ctx, input.Barcode); err == nil && existing != nil {
			return nil, shared.NewDomainError("DUPLICATE_BARCODE", "Barcode is already assigned to another variant")
		}
		variant, err := catalog.NewItemVariant(item.ID, input.Color, input.Size, input.Barcode, input.SellPrice)
		if err != nil {
			return nil, err
		}
		item.AddVariant(variant)
	}
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("item created",
		zap.String("item_id", item.ID.String()),
		zap.String("name", item.Name),
		zap.Int("variants", len(item.Variants)))
	return item, nil
}

// RenameItem changes an item's name
func (s *CatalogService) RenameItem(ctx context.Context, itemID uuid.UUID, name string) (*catalog.Item, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := item.Rename(name); err != nil {
		return nil, err
	}
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item and its variants. Any variant referenced by a
// historical sale or purchase blocks the deletion: removing it would orphan
// the costing history behind those documents.
func (s *CatalogService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return err
	}
	variants, err := s.variants.FindByItemID(ctx, itemID)
	if err != nil {
		return err
	}
	for _, variant := range variants {
		if err := s.checkVariantUnused(ctx, variant.ID); err != nil {
			return err
		}
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}
	s.logger.Info("item deleted", zap.String("item_id", itemID.String()))
	return nil
}

// AddVariant attaches a new variant to an existing item
func (s *CatalogService) AddVariant(ctx context.Context, itemID uuid.UUID, input VariantInput) (*catalog.ItemVariant, error) {
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}
	if existing, err := s.variants.FindByBarcode(ctx, input.Barcode); err == nil && existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_BARCODE", "Barcode is already assigned to another variant")
	}
	variant, err := catalog.NewItemVariant(itemID, input.Color, input.Size, input.Barcode, input.SellPrice)
	if err != nil {
		return nil, err
	}
	if err := s.variants.Save(ctx, variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// ChangeSellPrice updates a variant's sell price
func (s *CatalogService) ChangeSellPrice(ctx context.Context, variantID uuid.UUID, price valueobject.Money) (*catalog.ItemVariant, error) {
	variant, err := s.variants.FindByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if err := variant.ChangeSellPrice(price); err != nil {
		return nil, err
	}
	if err := s.variants.Save(ctx, variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// DeleteVariant removes a variant unless trade history references it
func (s *CatalogService) DeleteVariant(ctx context.Context, variantID uuid.UUID) error {
	if _, err := s.variants.FindByID(ctx, variantID); err != nil {
		return err
	}
	if err := s.checkVariantUnused(ctx, variantID); err != nil {
		return err
	}
	return s.variants.Delete(ctx, variantID)
}

func (s *CatalogService) checkVariantUnused(ctx context.Context, variantID uuid.UUID) error {
	for _, check := range []VariantReferenceChecker{s.invoiceRefs, s.purchaseRefs} {
		if check == nil {
			continue
		}
		used, err := check.ExistsForVariant(ctx, variantID)
		if err != nil {
			return err
		}
		if used {
			return shared.ErrInUse
		}
	}
	return nil
}

// FindByBarcode resolves a variant by its barcode, the primary lookup at the
// point of sale.
func (s *CatalogService) FindByBarcode(ctx context.Context, barcode string) (*catalog.ItemVariant, error) {
	variant, err := s.variants.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNKNOWN_BARCODE", "No variant carries this barcode")
		}
		return nil, err
	}
	return variant, nil
}

// GetItem retrieves an item by id
func (s *CatalogService) GetItem(ctx context.Context, itemID uuid.UUID) (*catalog.Item, error) {
	return s.items.FindByID(ctx, itemID)
}

// ListItems retrieves items matching the filter
func (s *CatalogService) ListItems(ctx context.Context, filter catalog.ItemFilter) ([]catalog.Item, error) {
	return s.items.FindAll(ctx, filter)
}
