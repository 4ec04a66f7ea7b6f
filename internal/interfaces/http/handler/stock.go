package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/retailcore/backend/internal/application/inventory"
	"github.com/retailcore/backend/internal/interfaces/http/dto"
)

// StockHandler serves stock position and location endpoints
type StockHandler struct {
	BaseHandler
	stock *appinventory.StockService
}

// NewStockHandler creates a stock handler
func NewStockHandler(service *appinventory.StockService) *StockHandler {
	return &StockHandler{stock: service}
}

// RegisterRoutes registers stock routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.GET("", h.Positions)
		stock.GET("/negative", h.NegativePositions)
		stock.POST("/transfers", h.Transfer)
	}
	locations := rg.Group("/locations")
	{
		locations.POST("", h.CreateLocation)
		locations.GET("", h.ListLocations)
		locations.DELETE("/:id", h.DeleteLocation)
	}
}

// Positions lists stock positions with optional filters
func (h *StockHandler) Positions(c *gin.Context) {
	var req dto.ListPositionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	filter, err := req.ToFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	positions, err := h.stock.Positions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, positions)
}

// NegativePositions lists positions that forced reversals drove below zero
func (h *StockHandler) NegativePositions(c *gin.Context) {
	positions, err := h.stock.NegativePositions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, positions)
}

// Transfer moves stock between two locations
func (h *StockHandler) Transfer(c *gin.Context) {
	var req dto.TransferStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.stock.Transfer(c.Request.Context(), req.ToApplicationRequest()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateLocation creates a stock location
func (h *StockHandler) CreateLocation(c *gin.Context) {
	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	location, err := h.stock.CreateLocation(c.Request.Context(), req.Name, req.Address)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, location)
}

// ListLocations lists all stock locations
func (h *StockHandler) ListLocations(c *gin.Context) {
	locations, err := h.stock.ListLocations(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, locations)
}

// DeleteLocation removes a location holding no stock
func (h *StockHandler) DeleteLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	if err := h.stock.DeleteLocation(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
