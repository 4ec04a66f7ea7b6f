package handler

import (
	"github.com/gin-gonic/gin"

	apppartner "github.com/retailcore/backend/internal/application/partner"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/interfaces/http/dto"
)

// PartnerHandler serves customer and supplier endpoints
type PartnerHandler struct {
	BaseHandler
	partners *apppartner.PartnerService
}

// NewPartnerHandler creates a partner handler
func NewPartnerHandler(service *apppartner.PartnerService) *PartnerHandler {
	return &PartnerHandler{partners: service}
}

// RegisterRoutes registers partner routes
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
	}
	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.CreateSupplier)
		suppliers.GET("", h.ListSuppliers)
		suppliers.PUT("/:id", h.UpdateSupplier)
		suppliers.DELETE("/:id", h.DeleteSupplier)
	}
}

func listPartnerFilter(req dto.ListPartnersRequest) partner.PartnerFilter {
	filter := partner.PartnerFilter{Limit: req.Limit(), Offset: req.Offset()}
	if req.Name != "" {
		filter.Name = &req.Name
	}
	return filter
}

// CreateCustomer creates a customer
func (h *PartnerHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	customer, err := h.partners.CreateCustomer(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// ListCustomers lists customers with an optional name filter
func (h *PartnerHandler) ListCustomers(c *gin.Context) {
	var req dto.ListPartnersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	customers, err := h.partners.ListCustomers(c.Request.Context(), listPartnerFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// UpdateCustomer updates a customer's contact details
func (h *PartnerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}
	var req dto.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	customer, err := h.partners.UpdateCustomer(c.Request.Context(), id, req.Name, req.Phone, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// DeleteCustomer removes a customer with no invoices or vouchers
func (h *PartnerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.partners.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateSupplier creates a supplier
func (h *PartnerHandler) CreateSupplier(c *gin.Context) {
	var req dto.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	supplier, err := h.partners.CreateSupplier(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// ListSuppliers lists suppliers with an optional name filter
func (h *PartnerHandler) ListSuppliers(c *gin.Context) {
	var req dto.ListPartnersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	suppliers, err := h.partners.ListSuppliers(c.Request.Context(), listPartnerFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suppliers)
}

// UpdateSupplier updates a supplier's contact details
func (h *PartnerHandler) UpdateSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}
	var req dto.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	supplier, err := h.partners.UpdateSupplier(c.Request.Context(), id, req.Name, req.Phone, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// DeleteSupplier removes a supplier with no purchases or vouchers
func (h *PartnerHandler) DeleteSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.partners.DeleteSupplier(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
