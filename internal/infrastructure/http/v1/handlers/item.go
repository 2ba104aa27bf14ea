package handlers

import (
	"github.com/gin-gonic/gin"

	"stockroom/internal/core/result"
	"stockroom/internal/domain"
	"stockroom/internal/domain/catalogs/item"
)

// ItemHandler extends the catalog CRUD with item-specific reads.
type ItemHandler struct {
	*CatalogHandler[*item.Item]
	svc *item.Service
}

// NewItemHandler creates an item handler.
func NewItemHandler(svc *item.Service) *ItemHandler {
	return &ItemHandler{
		CatalogHandler: NewCatalogHandler[*item.Item](svc, func() *item.Item { return &item.Item{} }),
		svc:            svc,
	}
}

// GetActive handles GET /items/:id/active. Inactive or deleted items
// come back as not found.
func (h *ItemHandler) GetActive(c *gin.Context) {
	id, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	it, err := h.svc.GetActive(c.Request.Context(), id)
	RenderOK(c, result.Of(it, err))
}

// ByCategory handles GET /categories/:id/items.
func (h *ItemHandler) ByCategory(c *gin.Context) {
	categoryID, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	filter := domain.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", filter.Limit)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	res, err := h.svc.ListByCategory(c.Request.Context(), categoryID, filter)
	RenderOK(c, result.Of(res, err))
}
