package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stockroom/internal/app"
	"stockroom/internal/core/apperror"
	"stockroom/internal/core/result"
	"stockroom/internal/domain/packages"
	"stockroom/internal/infrastructure/http/v1/dto"
)

// PackageHandler serves the package endpoints beyond plain CRUD:
// contract calculation, lines and notes.
type PackageHandler struct {
	*BaseHandler
	app *app.Service
	svc *packages.Service
}

// NewPackageHandler creates a package handler.
func NewPackageHandler(app *app.Service, svc *packages.Service) *PackageHandler {
	return &PackageHandler{BaseHandler: NewBaseHandler(), app: app, svc: svc}
}

// Contract handles GET /packages/:id/contract.
func (h *PackageHandler) Contract(c *gin.Context) {
	id, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	RenderOK(c, h.app.PackageContract(c.Request.Context(), id))
}

// ByCustomer handles GET /customers/:id/packages.
func (h *PackageHandler) ByCustomer(c *gin.Context) {
	customerID, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	RenderOK(c, h.app.PackagesByCustomer(c.Request.Context(), customerID))
}

// AddItem handles POST /packages/:id/items.
func (h *PackageHandler) AddItem(c *gin.Context) {
	id, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	var req dto.PackageItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	line := packages.Item{
		SKU:            req.SKU,
		Quantity:       req.Quantity,
		WarrantyMonths: req.WarrantyMonths,
		SerialNumber:   req.SerialNumber,
		Notes:          req.Notes,
	}
	if req.UnitPrice != "" {
		price, err := decimal.NewFromString(req.UnitPrice)
		if err != nil {
			RenderOK(c, result.FromError[struct{}](
				apperror.NewValidation("invalid unit price").WithDetail("field", "unitPrice")))
			return
		}
		line.UnitPrice = price
	}
	RenderOK(c, result.OfNoContent[struct{}](h.svc.AddItem(c.Request.Context(), id, line)))
}

// RemoveItem handles DELETE /packages/:id/items/:sku.
func (h *PackageHandler) RemoveItem(c *gin.Context) {
	id, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	sku, ok := h.ParamInt64(c, "sku")
	if !ok {
		return
	}
	RenderOK(c, result.OfNoContent[struct{}](h.svc.RemoveItem(c.Request.Context(), id, sku)))
}

// AddNote handles POST /packages/:id/notes.
func (h *PackageHandler) AddNote(c *gin.Context) {
	id, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	var req dto.PackageNoteRequest
	if !h.BindJSON(c, &req) {
		return
	}
	note, err := h.svc.AddNote(c.Request.Context(), id, req.Title, req.Content, req.CreatedBy)
	RenderCreated(c, result.Of(note, err))
}

// RemoveNote handles DELETE /packages/:id/notes/:noteId.
func (h *PackageHandler) RemoveNote(c *gin.Context) {
	id, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	RenderOK(c, result.OfNoContent[struct{}](h.svc.RemoveNote(c.Request.Context(), id, c.Param("noteId"))))
}
