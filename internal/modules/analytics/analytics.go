package analytics

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/folio-space/core/internal/schema"
	"github.com/folio-space/core/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	DefaultRecentLimit = 100
	MaxRecentLimit     = 500
)

// Report is the admin dashboard payload.
type Report struct {
	Summary      store.Summary           `json:"summary"`
	RecentEvents []models.AnalyticsEvent `json:"recentEvents"`
}

type Service struct {
	events store.EventLog
	log    *zap.Logger
}

func NewService(events store.EventLog, log *zap.Logger) *Service {
	return &Service{events: events, log: log}
}

// RequestMeta carries header values used when the payload omits them.
type RequestMeta struct {
	UserAgent string
	Referrer  string
}

// Record decodes and appends one event. Every failure is logged at warn and
// swallowed; the caller always reports success.
func (s *Service) Record(ctx context.Context, body io.Reader, meta RequestMeta) {
	in, err := schema.DecodeReader[schema.CreateAnalyticsEvent](body)
	if err != nil {
		s.log.Warn("analytics event rejected", zap.Error(err))
		return
	}
	event := in.Model()
	if event.UserAgent == "" {
		event.UserAgent = meta.UserAgent
	}
	if event.Referrer == "" {
		event.Referrer = meta.Referrer
	}
	if err := s.events.Append(ctx, &event); err != nil {
		s.log.Warn("analytics event not stored", zap.String("page", event.Page), zap.Error(err))
	}
}

func (s *Service) Report(ctx context.Context, limit int) (*Report, error) {
	summary, err := s.events.Summarize(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.events.Recent(ctx, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []models.AnalyticsEvent{}
	}
	return &Report{Summary: summary, RecentEvents: recent}, nil
}

// ClampLimit maps a requested size onto 1..MaxRecentLimit. Zero or less means
// the default.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultRecentLimit
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	}
	return limit
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler { return &Handler{svc: svc, log: log} }

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.POST("/analytics", h.record)
	admin.GET("/analytics", h.report)
}

func (h *Handler) record(c *gin.Context) {
	h.svc.Record(c.Request.Context(), c.Request.Body, RequestMeta{
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	})
	response.Ack(c, http.StatusCreated)
}

func (h *Handler) report(c *gin.Context) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = DefaultRecentLimit
	}
	report, err := h.svc.Report(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, report)
}
