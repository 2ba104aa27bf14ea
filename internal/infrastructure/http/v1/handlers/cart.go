package handlers

import (
	"github.com/gin-gonic/gin"

	"stockroom/internal/app"
	"stockroom/internal/infrastructure/http/v1/dto"
)

// CartHandler serves cart endpoints.
type CartHandler struct {
	*BaseHandler
	app *app.Service
}

// NewCartHandler creates a cart handler.
func NewCartHandler(app *app.Service) *CartHandler {
	return &CartHandler{BaseHandler: NewBaseHandler(), app: app}
}

// Create handles POST /carts.
func (h *CartHandler) Create(c *gin.Context) {
	var req dto.CreateCartRequest
	if !h.BindJSON(c, &req) {
		return
	}
	RenderCreated(c, h.app.CreateCart(c.Request.Context(), req.CustomerID))
}

// Get handles GET /carts/:id.
func (h *CartHandler) Get(c *gin.Context) {
	RenderOK(c, h.app.GetCart(c.Request.Context(), c.Param("id")))
}

// ByCustomer handles GET /customers/:id/carts.
func (h *CartHandler) ByCustomer(c *gin.Context) {
	customerID, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	RenderOK(c, h.app.CartsByCustomer(c.Request.Context(), customerID))
}

// AddItem handles POST /carts/:id/items. Quantity merges into an
// existing line for the same SKU.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.CartLineRequest
	if !h.BindJSON(c, &req) {
		return
	}
	RenderOK(c, h.app.AddCartItem(c.Request.Context(), c.Param("id"), req.SKU, req.Quantity))
}

// RemoveItem handles POST /carts/:id/items/remove.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req dto.CartLineRequest
	if !h.BindJSON(c, &req) {
		return
	}
	RenderOK(c, h.app.RemoveCartItem(c.Request.Context(), c.Param("id"), req.SKU, req.Quantity))
}

// Clear handles POST /carts/:id/clear.
func (h *CartHandler) Clear(c *gin.Context) {
	RenderOK(c, h.app.ClearCart(c.Request.Context(), c.Param("id")))
}

// Delete handles DELETE /carts/:id.
func (h *CartHandler) Delete(c *gin.Context) {
	RenderOK(c, h.app.DeleteCart(c.Request.Context(), c.Param("id")))
}

// Total handles GET /carts/:id/total.
func (h *CartHandler) Total(c *gin.Context) {
	RenderOK(c, h.app.CartTotal(c.Request.Context(), c.Param("id")))
}

// Snapshot handles GET /carts/:id/snapshot.
func (h *CartHandler) Snapshot(c *gin.Context) {
	RenderOK(c, h.app.CartSnapshot(c.Request.Context(), c.Param("id")))
}
