package handlers

import (
	"github.com/gin-gonic/gin"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/result"
	"stockroom/internal/domain/catalogs/customer"
)

// CustomerHandler extends the catalog CRUD with email lookup.
type CustomerHandler struct {
	*CatalogHandler[*customer.Customer]
	svc *customer.Service
}

// NewCustomerHandler creates a customer handler.
func NewCustomerHandler(svc *customer.Service) *CustomerHandler {
	return &CustomerHandler{
		CatalogHandler: NewCatalogHandler[*customer.Customer](svc, func() *customer.Customer { return &customer.Customer{} }),
		svc:            svc,
	}
}

// ByEmail handles GET /customers/by-email?email=...
func (h *CustomerHandler) ByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		RenderOK(c, result.FromError[struct{}](
			apperror.NewValidation("email is required").WithDetail("query", "email")))
		return
	}
	cust, err := h.svc.GetByEmail(c.Request.Context(), email)
	RenderOK(c, result.Of(cust, err))
}
