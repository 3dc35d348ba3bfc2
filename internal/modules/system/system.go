package system

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/folio-space/core/internal/pkg/cron"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const pingTimeout = 3 * time.Second

// Pinger is anything whose reachability the health check reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	storage     Pinger
	storageName string
	cache       Pinger
	sched       *cron.Scheduler
	log         *zap.Logger
}

// NewHandler builds the health and job routes. cache may be nil when Redis
// is not configured.
func NewHandler(storage Pinger, storageName string, cache Pinger, sched *cron.Scheduler, log *zap.Logger) *Handler {
	return &Handler{storage: storage, storageName: storageName, cache: cache, sched: sched, log: log}
}

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/health", h.health)

	g := admin.Group("/cron")
	g.GET("", h.listJobs)
	g.POST("/:name/run", h.runJob)
}

func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	body := gin.H{"storage": h.storageName}
	if err := h.storage.Ping(ctx); err != nil {
		h.log.Warn("storage ping failed", zap.Error(err))
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	if h.cache != nil {
		redisOK := h.cache.Ping(ctx) == nil
		body["redis"] = redisOK
	}
	body["status"] = status
	c.JSON(code, body)
}

func (h *Handler) listJobs(c *gin.Context) {
	response.OK(c, h.sched.List())
}

func (h *Handler) runJob(c *gin.Context) {
	name := c.Param("name")
	err := h.sched.RunNow(c.Request.Context(), name)
	switch {
	case errors.Is(err, cron.ErrJobNotFound):
		response.NotFound(c, "Job not found")
	case err != nil:
		h.log.Warn("manual job run failed", zap.String("job", name), zap.Error(err))
		response.InternalError(c)
	default:
		response.Message(c, "Job finished")
	}
}
