package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/retailcore/backend/internal/application/catalog"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/retailcore/backend/internal/interfaces/http/dto"
)

// CatalogHandler serves item and variant management endpoints
type CatalogHandler struct {
	BaseHandler
	catalog *appcatalog.CatalogService
}

// NewCatalogHandler creates a catalog handler
func NewCatalogHandler(service *appcatalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: service}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListItems)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id/name", h.RenameItem)
		items.DELETE("/:id", h.DeleteItem)
		items.POST("/:id/variants", h.AddVariant)
	}
	variants := rg.Group("/variants")
	{
		variants.GET("/barcode/:barcode", h.FindByBarcode)
		variants.PUT("/:id/price", h.ChangeSellPrice)
		variants.DELETE("/:id", h.DeleteVariant)
	}
}

// CreateItem creates an item with its initial variants
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.catalog.CreateItem(c.Request.Context(), req.ToCreateItemRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// ListItems lists catalog items with optional name/category filters
func (h *CatalogHandler) ListItems(c *gin.Context) {
	var req dto.ListItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := catalog.ItemFilter{Limit: req.Limit(), Offset: req.Offset()}
	if req.Name != "" {
		filter.Name = &req.Name
	}
	if req.Category != "" {
		filter.Category = &req.Category
	}

	items, err := h.catalog.ListItems(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetItem returns one item with its variants
func (h *CatalogHandler) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.catalog.GetItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// RenameItem changes an item's display name
func (h *CatalogHandler) RenameItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}
	var req dto.RenameItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.catalog.RenameItem(c.Request.Context(), id, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// DeleteItem removes an item and its variants if none are referenced
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.catalog.DeleteItem(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddVariant adds a color/size/barcode combination to an item
func (h *CatalogHandler) AddVariant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}
	var req dto.VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	variant, err := h.catalog.AddVariant(c.Request.Context(), id, req.ToVariantInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, variant)
}

// FindByBarcode looks up a variant by its barcode
func (h *CatalogHandler) FindByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		h.BadRequest(c, "Barcode is required")
		return
	}

	variant, err := h.catalog.FindByBarcode(c.Request.Context(), barcode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variant)
}

// ChangeSellPrice updates a variant's sell price
func (h *CatalogHandler) ChangeSellPrice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid variant ID")
		return
	}
	var req dto.ChangePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	variant, err := h.catalog.ChangeSellPrice(c.Request.Context(), id, valueobject.NewMoneyEGP(req.SellPrice))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variant)
}

// DeleteVariant removes a variant if no document references it
func (h *CatalogHandler) DeleteVariant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	if err := h.catalog.DeleteVariant(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
