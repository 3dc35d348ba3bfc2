package content

import (
	"errors"

	"github.com/folio-space/core/internal/pkg/response"
	"github.com/folio-space/core/internal/schema"
	"github.com/folio-space/core/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Page serves a singleton content kind. Reads return null data until the
// first save; POST and PUT both upsert.
type Page[T any, I schema.Patcher[T]] struct {
	path  string
	label string
	slot  store.Singleton[T]
	log   *zap.Logger
}

func NewPage[T any, I schema.Patcher[T]](path, label string, slot store.Singleton[T], log *zap.Logger) *Page[T, I] {
	return &Page[T, I]{path: path, label: label, slot: slot, log: log}
}

func (h *Page[T, I]) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/"+h.path, h.get)

	admin.GET("/"+h.path, h.get)
	admin.POST("/"+h.path, h.save)
	admin.PUT("/"+h.path, h.save)
}

func (h *Page[T, I]) get(c *gin.Context) {
	item, err := h.slot.Get(c.Request.Context())
	if errors.Is(err, store.ErrNotFound) {
		response.OK(c, nil)
		return
	}
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, item)
}

func (h *Page[T, I]) save(c *gin.Context) {
	in, err := schema.DecodeReader[I](c.Request.Body)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	patch := *in
	item, err := h.slot.Upsert(c.Request.Context(), patch.Apply)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Updated(c, h.label+" saved", item)
}
