package handler

import (
	"github.com/gin-gonic/gin"

	apptreasury "github.com/retailcore/backend/internal/application/treasury"
	"github.com/retailcore/backend/internal/interfaces/http/dto"
)

// TreasuryHandler serves safe, voucher and cash transfer endpoints
type TreasuryHandler struct {
	BaseHandler
	treasury *apptreasury.TreasuryService
}

// NewTreasuryHandler creates a treasury handler
func NewTreasuryHandler(service *apptreasury.TreasuryService) *TreasuryHandler {
	return &TreasuryHandler{treasury: service}
}

// RegisterRoutes registers treasury routes
func (h *TreasuryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	safes := rg.Group("/safes")
	{
		safes.POST("", h.CreateSafe)
		safes.GET("", h.ListSafes)
		safes.GET("/:id/balance", h.Balance)
		safes.PUT("/:id/name", h.RenameSafe)
		safes.DELETE("/:id", h.DeleteSafe)
	}
	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.CreateVoucher)
		vouchers.GET("", h.ListVouchers)
		vouchers.DELETE("/:id", h.DeleteVoucher)
	}
	transfers := rg.Group("/cash-transfers")
	{
		transfers.POST("", h.CreateCashTransfer)
		transfers.GET("", h.ListCashTransfers)
		transfers.DELETE("/:id", h.DeleteCashTransfer)
	}
}

// CreateSafe creates a treasury account
func (h *TreasuryHandler) CreateSafe(c *gin.Context) {
	var req dto.CreateSafeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	safe, err := h.treasury.CreateSafe(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, safe)
}

// ListSafes lists all treasury accounts
func (h *TreasuryHandler) ListSafes(c *gin.Context) {
	safes, err := h.treasury.ListSafes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, safes)
}

// Balance returns a safe's derived balance with its per-stream breakdown
func (h *TreasuryHandler) Balance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid safe ID")
		return
	}

	breakdown, err := h.treasury.Balance(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, breakdown)
}

// RenameSafe renames a treasury account
func (h *TreasuryHandler) RenameSafe(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid safe ID")
		return
	}
	var req dto.RenameSafeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	safe, err := h.treasury.RenameSafe(c.Request.Context(), id, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, safe)
}

// DeleteSafe removes a safe no transaction references
func (h *TreasuryHandler) DeleteSafe(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid safe ID")
		return
	}

	if err := h.treasury.DeleteSafe(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateVoucher records a manual cash receipt or payment
func (h *TreasuryHandler) CreateVoucher(c *gin.Context) {
	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	voucher, err := req.ToVoucher()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	created, err := h.treasury.CreateVoucher(c.Request.Context(), voucher)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// ListVouchers lists vouchers with optional filters
func (h *TreasuryHandler) ListVouchers(c *gin.Context) {
	var req dto.ListVouchersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	filter, err := req.ToFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vouchers, err := h.treasury.ListVouchers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vouchers)
}

// DeleteVoucher removes a manual cash movement
func (h *TreasuryHandler) DeleteVoucher(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	if err := h.treasury.DeleteVoucher(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateCashTransfer moves money between two safes
func (h *TreasuryHandler) CreateCashTransfer(c *gin.Context) {
	var req dto.CreateCashTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	transfer, err := req.ToCashTransfer()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	created, err := h.treasury.CreateCashTransfer(c.Request.Context(), transfer)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// ListCashTransfers lists transfers with optional filters
func (h *TreasuryHandler) ListCashTransfers(c *gin.Context) {
	var req dto.ListTransfersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	filter, err := req.ToFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transfers, err := h.treasury.ListCashTransfers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transfers)
}

// DeleteCashTransfer removes a transfer between safes
func (h *TreasuryHandler) DeleteCashTransfer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid transfer ID")
		return
	}

	if err := h.treasury.DeleteCashTransfer(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
