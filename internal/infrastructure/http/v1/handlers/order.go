package handlers

import (
	"github.com/gin-gonic/gin"

	"stockroom/internal/app"
	"stockroom/internal/domain/order"
	"stockroom/internal/infrastructure/http/v1/dto"
)

// OrderHandler serves order endpoints.
type OrderHandler struct {
	*BaseHandler
	app *app.Service
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(app *app.Service) *OrderHandler {
	return &OrderHandler{BaseHandler: NewBaseHandler(), app: app}
}

// Create handles POST /orders. Materialization is idempotent per cart,
// so repeated calls return the same order.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	RenderCreated(c, h.app.CreateOrderFromCart(c.Request.Context(), req.CartID))
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	RenderOK(c, h.app.GetOrder(c.Request.Context(), id))
}

// ByCart handles GET /carts/:id/order.
func (h *OrderHandler) ByCart(c *gin.Context) {
	RenderOK(c, h.app.OrderByCart(c.Request.Context(), c.Param("id")))
}

// List handles GET /orders with customerId, status and pagination params.
func (h *OrderHandler) List(c *gin.Context) {
	filter := order.ListFilter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}
	if v := h.ParseIntQuery(c, "customerId", 0); v > 0 {
		id := int64(v)
		filter.CustomerID = &id
	}
	if v := c.Query("status"); v != "" {
		status := order.Status(v)
		filter.Status = &status
	}
	RenderOK(c, h.app.ListOrders(c.Request.Context(), filter))
}

// Fulfill handles POST /orders/:id/fulfill.
func (h *OrderHandler) Fulfill(c *gin.Context) {
	id, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	RenderOK(c, h.app.FulfillOrder(c.Request.Context(), id))
}

// Refresh handles POST /orders/:id/refresh. Re-captures a pending
// order from its cart; fulfilled orders are rejected.
func (h *OrderHandler) Refresh(c *gin.Context) {
	id, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	RenderOK(c, h.app.UpdateOrderFromCart(c.Request.Context(), id))
}

// Sync handles POST /orders/sync.
func (h *OrderHandler) Sync(c *gin.Context) {
	RenderOK(c, h.app.SyncOrders(c.Request.Context()))
}
