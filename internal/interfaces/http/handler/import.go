package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/retailcore/backend/internal/application/importer"
	"github.com/retailcore/backend/internal/interfaces/http/dto"
)

// ImportHandler serves bulk import endpoints for spreadsheet-exported data
type ImportHandler struct {
	BaseHandler
	imports *importer.ImportService
}

// NewImportHandler creates an import handler
func NewImportHandler(service *importer.ImportService) *ImportHandler {
	return &ImportHandler{imports: service}
}

// RegisterRoutes registers import routes
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	imports := rg.Group("/imports")
	{
		imports.POST("/sales", h.ImportSales)
		imports.POST("/vouchers", h.ImportVouchers)
		imports.POST("/transfers", h.ImportTransfers)
	}
}

// ImportSales replays a batch of exported sale rows. Row failures are
// reported per row and never abort the batch.
func (h *ImportHandler) ImportSales(c *gin.Context) {
	var req dto.ImportSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.imports.ImportSales(c.Request.Context(), req.ToImporterRows())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ImportVouchers replays a batch of exported voucher rows
func (h *ImportHandler) ImportVouchers(c *gin.Context) {
	var req dto.ImportVouchersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.imports.ImportVouchers(c.Request.Context(), req.ToImporterRows())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ImportTransfers replays a batch of exported stock transfer rows
func (h *ImportHandler) ImportTransfers(c *gin.Context) {
	var req dto.ImportTransfersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.imports.ImportTransfers(c.Request.Context(), req.ToImporterRows())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
