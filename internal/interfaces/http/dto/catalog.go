package dto

import (
	"github.com/shopspring/decimal"

	appcatalog "github.com/retailcore/backend/internal/application/catalog"
)

// VariantRequest is one color/size/barcode combination of an item
type VariantRequest struct {
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Barcode   string          `json:"barcode" binding:"required"`
	SellPrice decimal.Decimal `json:"sell_price"`
}

// CreateItemRequest creates a catalog item with its initial variants
type CreateItemRequest struct {
	Name     string           `json:"name" binding:"required"`
	Category string           `json:"category"`
	Variants []VariantRequest `json:"variants" binding:"required,min=1,dive"`
}

// RenameItemRequest changes an item's display name
type RenameItemRequest struct {
	Name string `json:"name" binding:"required"`
}

// ChangePriceRequest updates a variant's sell price
type ChangePriceRequest struct {
	SellPrice decimal.Decimal `json:"sell_price" binding:"required"`
}

// ListItemsRequest filters catalog listings
type ListItemsRequest struct {
	ListRequest
	Name     string `form:"name"`
	Category string `form:"category"`
}

// ToVariantInput converts a variant request to the application input
func (r VariantRequest) ToVariantInput() appcatalog.VariantInput {
	return appcatalog.VariantInput{
		Color:     r.Color,
		Size:      r.Size,
		Barcode:   r.Barcode,
		SellPrice: moneyOrZero(r.SellPrice),
	}
}

// ToCreateItemRequest converts the transport request to the application request
func (r CreateItemRequest) ToCreateItemRequest() appcatalog.CreateItemRequest {
	variants := make([]appcatalog.VariantInput, 0, len(r.Variants))
	for _, v := range r.Variants {
		variants = append(variants, v.ToVariantInput())
	}
	return appcatalog.CreateItemRequest{
		Name:     r.Name,
		Category: r.Category,
		Variants: variants,
	}
}
