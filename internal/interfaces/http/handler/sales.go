package handler

import (
	"github.com/gin-gonic/gin"

	apptrade "github.com/retailcore/backend/internal/application/trade"
	"github.com/retailcore/backend/internal/interfaces/http/dto"
)

// SalesHandler serves sale invoice endpoints
type SalesHandler struct {
	BaseHandler
	sales *apptrade.SalesService
}

// NewSalesHandler creates a sales handler
func NewSalesHandler(service *apptrade.SalesService) *SalesHandler {
	return &SalesHandler{sales: service}
}

// RegisterRoutes registers sale invoice routes
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.PUT("/:id", h.UpdateInvoice)
		invoices.DELETE("/:id", h.DeleteInvoice)
		invoices.POST("/:id/settle", h.Settle)
	}
}

// CreateInvoice records a sale
func (h *SalesHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateSaleInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	appReq, err := req.ToApplicationRequest()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.sales.CreateInvoice(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// ListInvoices lists sale invoices with optional filters
func (h *SalesHandler) ListInvoices(c *gin.Context) {
	var req dto.ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	filter, err := req.ToFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoices, err := h.sales.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// GetInvoice returns one invoice with its lines
func (h *SalesHandler) GetInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.sales.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// UpdateInvoice replaces an invoice's content. The old invoice is reversed
// and the new content applied in one transaction.
func (h *SalesHandler) UpdateInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}
	var req dto.CreateSaleInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	appReq, err := req.ToApplicationRequest()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.sales.UpdateInvoice(c.Request.Context(), id, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// DeleteInvoice reverses and removes an invoice
func (h *SalesHandler) DeleteInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.sales.DeleteInvoice(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Settle records an additional payment against a deferred invoice
func (h *SalesHandler) Settle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}
	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	invoice, err := h.sales.Settle(c.Request.Context(), id, req.ToApplicationRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}
