package handler

import (
	"github.com/gin-gonic/gin"

	apptrade "github.com/retailcore/backend/internal/application/trade"
	"github.com/retailcore/backend/internal/interfaces/http/dto"
)

// ReturnHandler serves sale and purchase return endpoints
type ReturnHandler struct {
	BaseHandler
	returns *apptrade.ReturnService
}

// NewReturnHandler creates a return handler
func NewReturnHandler(service *apptrade.ReturnService) *ReturnHandler {
	return &ReturnHandler{returns: service}
}

// RegisterRoutes registers return routes
func (h *ReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	saleReturns := rg.Group("/sale-returns")
	{
		saleReturns.POST("", h.CreateSaleReturn)
		saleReturns.GET("", h.ListSaleReturns)
	}
	purchaseReturns := rg.Group("/purchase-returns")
	{
		purchaseReturns.POST("", h.CreatePurchaseReturn)
		purchaseReturns.GET("", h.ListPurchaseReturns)
		purchaseReturns.DELETE("/:id", h.DeletePurchaseReturn)
	}
}

// CreateSaleReturn records goods returned by a customer
func (h *ReturnHandler) CreateSaleReturn(c *gin.Context) {
	var req dto.CreateSaleReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	appReq, err := req.ToApplicationRequest()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.returns.CreateSaleReturn(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListSaleReturns lists sale returns with optional date filters
func (h *ReturnHandler) ListSaleReturns(c *gin.Context) {
	var req dto.ListReturnsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	filter, err := req.ToFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	returns, err := h.returns.ListSaleReturns(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, returns)
}

// CreatePurchaseReturn records goods returned to a supplier
func (h *ReturnHandler) CreatePurchaseReturn(c *gin.Context) {
	var req dto.CreatePurchaseReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	appReq, err := req.ToApplicationRequest()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ret, err := h.returns.CreatePurchaseReturn(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ret)
}

// ListPurchaseReturns lists purchase returns with optional date filters
func (h *ReturnHandler) ListPurchaseReturns(c *gin.Context) {
	var req dto.ListReturnsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	filter, err := req.ToFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	returns, err := h.returns.ListPurchaseReturns(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, returns)
}

// DeletePurchaseReturn reverses a purchase return. The response may carry a
// warning when restoring the returned stock left other constraints strained.
func (h *ReturnHandler) DeletePurchaseReturn(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	warning, err := h.returns.DeletePurchaseReturn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if warning != nil {
		h.SuccessWithWarnings(c, nil, []dto.WarningInfo{{Code: warning.Code, Message: warning.Message}})
		return
	}
	h.NoContent(c)
}
