package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"stockroom/internal/core/entity"
	"stockroom/internal/core/result"
	"stockroom/internal/domain"
)

// catalogOps is the CRUD surface every catalog service exposes.
// Satisfied by the embedded domain.CatalogService of each service.
type catalogOps[T any] interface {
	Create(ctx context.Context, ent T) error
	GetByID(ctx context.Context, id int64) (T, error)
	Update(ctx context.Context, ent T) error
	Delete(ctx context.Context, id int64) error
	Undelete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error)
}

// catalogEntity adds the repository-facing setters to the lifecycle surface.
type catalogEntity interface {
	entity.Validatable
	entity.Deletable
	SetID(id int64)
}

// CatalogHandler serves CRUD endpoints for one catalog.
type CatalogHandler[T catalogEntity] struct {
	*BaseHandler
	svc   catalogOps[T]
	newFn func() T
}

// NewCatalogHandler creates a catalog handler. newFn allocates an empty
// entity for JSON binding.
func NewCatalogHandler[T catalogEntity](svc catalogOps[T], newFn func() T) *CatalogHandler[T] {
	return &CatalogHandler[T]{BaseHandler: NewBaseHandler(), svc: svc, newFn: newFn}
}

// Register mounts the CRUD routes on a group.
func (h *CatalogHandler[T]) Register(g *gin.RouterGroup) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/undelete", h.Undelete)
}

// Create handles POST /.
func (h *CatalogHandler[T]) Create(c *gin.Context) {
	ent := h.newFn()
	if !h.BindJSON(c, ent) {
		return
	}
	err := h.svc.Create(c.Request.Context(), ent)
	RenderCreated(c, result.Of(ent, err))
}

// Get handles GET /:id.
func (h *CatalogHandler[T]) Get(c *gin.Context) {
	id, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	ent, err := h.svc.GetByID(c.Request.Context(), id)
	RenderOK(c, result.Of(ent, err))
}

// Update handles PUT /:id. The path id wins over any id in the body.
func (h *CatalogHandler[T]) Update(c *gin.Context) {
	id, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	ent := h.newFn()
	if !h.BindJSON(c, ent) {
		return
	}
	ent.SetID(id)
	err := h.svc.Update(c.Request.Context(), ent)
	RenderOK(c, result.Of(ent, err))
}

// Delete handles DELETE /:id (soft delete).
func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	id, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	RenderOK(c, result.OfNoContent[struct{}](h.svc.Delete(c.Request.Context(), id)))
}

// Undelete handles POST /:id/undelete.
func (h *CatalogHandler[T]) Undelete(c *gin.Context) {
	id, ok := h.ParamInt64(c, "id")
	if !ok {
		return
	}
	RenderOK(c, result.OfNoContent[struct{}](h.svc.Undelete(c.Request.Context(), id)))
}

// List handles GET / with search, pagination and ordering query params.
func (h *CatalogHandler[T]) List(c *gin.Context) {
	filter := h.listFilter(c)
	res, err := h.svc.List(c.Request.Context(), filter)
	RenderOK(c, result.Of(res, err))
}

func (h *CatalogHandler[T]) listFilter(c *gin.Context) domain.ListFilter {
	filter := domain.DefaultListFilter()
	filter.Search = c.Query("q")
	filter.Limit = h.ParseIntQuery(c, "limit", filter.Limit)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	if orderBy := c.Query("orderBy"); orderBy != "" {
		filter.OrderBy = orderBy
	}
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"
	return filter
}
