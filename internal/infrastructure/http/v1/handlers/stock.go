package handlers

import (
	"github.com/gin-gonic/gin"

	"stockroom/internal/app"
	"stockroom/internal/infrastructure/http/v1/dto"
)

// StockHandler serves stock ledger and transfer endpoints.
type StockHandler struct {
	*BaseHandler
	app *app.Service
}

// NewStockHandler creates a stock handler.
func NewStockHandler(app *app.Service) *StockHandler {
	return &StockHandler{BaseHandler: NewBaseHandler(), app: app}
}

// Quantity handles GET /warehouses/:id/stock/:sku.
func (h *StockHandler) Quantity(c *gin.Context) {
	warehouseID, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	sku, ok := h.ParamInt64(c, "sku")
	if !ok {
		return
	}
	RenderOK(c, h.app.StockQuantity(c.Request.Context(), warehouseID, sku))
}

// WarehouseStock handles GET /warehouses/:id/stock.
func (h *StockHandler) WarehouseStock(c *gin.Context) {
	warehouseID, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	RenderOK(c, h.app.WarehouseStock(c.Request.Context(), warehouseID))
}

// Utilization handles GET /warehouses/:id/utilization.
func (h *StockHandler) Utilization(c *gin.Context) {
	warehouseID, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	RenderOK(c, h.app.WarehouseUtilization(c.Request.Context(), warehouseID))
}

// TotalAvailability handles GET /items/:id/availability. The item id
// is the SKU.
func (h *StockHandler) TotalAvailability(c *gin.Context) {
	sku, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	RenderOK(c, h.app.TotalAvailability(c.Request.Context(), sku))
}

// Attach handles POST /warehouses/:id/stock.
func (h *StockHandler) Attach(c *gin.Context) {
	warehouseID, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	var req dto.AttachRequest
	if !h.BindJSON(c, &req) {
		return
	}
	RenderOK(c, h.app.AttachItem(c.Request.Context(), warehouseID, req.SKU))
}

// Detach handles DELETE /warehouses/:id/stock/:sku.
func (h *StockHandler) Detach(c *gin.Context) {
	warehouseID, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	sku, ok := h.ParamInt64(c, "sku")
	if !ok {
		return
	}
	RenderOK(c, h.app.DetachItem(c.Request.Context(), warehouseID, sku))
}

// Credit handles POST /warehouses/:id/stock/credit.
func (h *StockHandler) Credit(c *gin.Context) {
	warehouseID, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	var req dto.AdjustmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	RenderOK(c, h.app.CreditStock(c.Request.Context(), warehouseID, req.SKU, req.Quantity))
}

// Debit handles POST /warehouses/:id/stock/debit.
func (h *StockHandler) Debit(c *gin.Context) {
	warehouseID, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	var req dto.AdjustmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	RenderOK(c, h.app.DebitStock(c.Request.Context(), warehouseID, req.SKU, req.Quantity))
}

// Transfer handles POST /stock/transfers.
func (h *StockHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if !h.BindJSON(c, &req) {
		return
	}
	RenderOK(c, h.app.TransferStock(c.Request.Context(), req.SourceID, req.TargetID, req.SKU, req.Quantity))
}
