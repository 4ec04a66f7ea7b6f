package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apptrade "github.com/retailcore/backend/internal/application/trade"
	"github.com/retailcore/backend/internal/interfaces/http/dto"
)

// PurchaseHandler serves purchase order and manufacturing endpoints
type PurchaseHandler struct {
	BaseHandler
	purchases *apptrade.PurchaseService
}

// NewPurchaseHandler creates a purchase handler
func NewPurchaseHandler(service *apptrade.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: service}
}

// RegisterRoutes registers purchase routes
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.CreatePurchase)
		purchases.POST("/manufacturing", h.CreateManufacturing)
		purchases.GET("", h.ListPurchases)
		purchases.GET("/:id", h.GetPurchase)
		purchases.DELETE("/:id", h.DeletePurchase)
		purchases.POST("/:id/settle", h.Settle)
	}
}

// CreatePurchase records a standalone supplier purchase
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	appReq, err := req.ToApplicationRequest()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.purchases.CreatePurchase(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// CreateManufacturing records a manufacturing order pair: a materials
// purchase and a linked labor purchase, with the produced units priced from
// the combined spend.
func (h *PurchaseHandler) CreateManufacturing(c *gin.Context) {
	var req dto.CreateManufacturingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	appReq, err := req.ToApplicationRequest()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.purchases.CreateManufacturing(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListPurchases lists purchase orders with optional filters
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	var req dto.ListPurchasesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	filter, err := req.ToFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, err := h.purchases.ListPurchases(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// GetPurchase returns one purchase order with its lines
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	order, err := h.purchases.GetPurchase(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// DeletePurchase reverses and removes a purchase order. With force=true the
// reversal proceeds even when it drives stock negative.
func (h *PurchaseHandler) DeletePurchase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))

	if err := h.purchases.DeletePurchase(c.Request.Context(), id, force); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Settle records an additional payment against a deferred purchase
func (h *PurchaseHandler) Settle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}
	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.purchases.Settle(c.Request.Context(), id, req.ToApplicationRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
