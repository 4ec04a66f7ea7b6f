package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/retailcore/backend/internal/application/inventory"
	"github.com/retailcore/backend/internal/domain/inventory"
)

// TransferStockRequest moves stock between two locations
type TransferStockRequest struct {
	FromLocationID uuid.UUID       `json:"from_location_id" binding:"required"`
	ToLocationID   uuid.UUID       `json:"to_location_id" binding:"required"`
	VariantID      uuid.UUID       `json:"variant_id" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
}

// ToApplicationRequest converts the transport request to the application request
func (r TransferStockRequest) ToApplicationRequest() appinventory.TransferStockRequest {
	return appinventory.TransferStockRequest{
		FromLocationID: r.FromLocationID,
		ToLocationID:   r.ToLocationID,
		VariantID:      r.VariantID,
		Quantity:       r.Quantity,
	}
}

// CreateLocationRequest creates a stock location
type CreateLocationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// ListPositionsRequest filters stock position listings
type ListPositionsRequest struct {
	ListRequest
	LocationID  string `form:"location_id"`
	VariantID   string `form:"variant_id"`
	OnlyNonZero bool   `form:"only_non_zero"`
}

// ToFilter converts the query parameters to a domain filter
func (r ListPositionsRequest) ToFilter() (inventory.StockFilter, error) {
	locationID, err := parseOptionalUUID(r.LocationID)
	if err != nil {
		return inventory.StockFilter{}, err
	}
	variantID, err := parseOptionalUUID(r.VariantID)
	if err != nil {
		return inventory.StockFilter{}, err
	}
	return inventory.StockFilter{
		LocationID:  locationID,
		VariantID:   variantID,
		OnlyNonZero: r.OnlyNonZero,
		Limit:       r.Limit(),
		Offset:      r.Offset(),
	}, nil
}
