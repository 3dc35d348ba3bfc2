package content

import (
	"errors"

	"github.com/folio-space/core/internal/pkg/pagination"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/folio-space/core/internal/schema"
	"github.com/folio-space/core/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Catalog serves one portfolio list (skills, projects, certificates): a
// public read route and admin CRUD. C and U are the create and update
// payloads of T.
type Catalog[T any, C schema.Creator[T], U schema.Patcher[T]] struct {
	path  string
	label string
	repo  store.Repository[T]
	log   *zap.Logger
}

func NewCatalog[T any, C schema.Creator[T], U schema.Patcher[T]](path, label string, repo store.Repository[T], log *zap.Logger) *Catalog[T, C, U] {
	return &Catalog[T, C, U]{path: path, label: label, repo: repo, log: log}
}

func (h *Catalog[T, C, U]) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/"+h.path, h.list)

	g := admin.Group("/" + h.path)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Catalog[T, C, U]) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	pagination.Respond(c, items)
}

func (h *Catalog[T, C, U]) get(c *gin.Context) {
	item, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, item)
}

func (h *Catalog[T, C, U]) create(c *gin.Context) {
	in, err := schema.DecodeReader[C](c.Request.Body)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	item := (*in).Model()
	if err := h.repo.Create(c.Request.Context(), &item); err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Created(c, h.label+" created", item)
}

func (h *Catalog[T, C, U]) update(c *gin.Context) {
	in, err := schema.DecodeReader[U](c.Request.Body)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	patch := *in
	item, err := h.repo.Update(c.Request.Context(), c.Param("id"), patch.Apply)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Updated(c, h.label+" updated", item)
}

func (h *Catalog[T, C, U]) delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, h.label+" deleted")
}

func (h *Catalog[T, C, U]) fail(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		response.NotFound(c, h.label+" not found")
		return
	}
	response.Error(c, h.log, err)
}
