package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/folio-space/core/internal/pkg/objectstore"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/folio-space/core/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Result describes one backup run.
type Result struct {
	Filename string          `json:"filename"`
	Size     int             `json:"size"`
	Bucket   string          `json:"bucket,omitempty"`
	Key      string          `json:"key,omitempty"`
	Snapshot *store.Snapshot `json:"snapshot,omitempty"`
}

// Service exports the content and ships it to the bucket when one is
// configured.
type Service struct {
	store    store.Store
	uploader *objectstore.Client
	log      *zap.Logger
	now      func() time.Time
}

func NewService(st store.Store, uploader *objectstore.Client, log *zap.Logger) *Service {
	return &Service{store: st, uploader: uploader, log: log, now: time.Now}
}

// Uploads reports whether Run pushes snapshots to object storage.
func (s *Service) Uploads() bool { return s.uploader != nil }

// Run builds a snapshot. Without an uploader the snapshot itself is returned
// in the result.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	now := s.now().UTC()
	snap, err := store.Export(ctx, s.store, now)
	if err != nil {
		return nil, err
	}
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	res := &Result{
		Filename: fmt.Sprintf("folio-backup-%s.json", now.Format("2006-01-02T15-04-05")),
		Size:     len(payload),
	}
	if s.uploader == nil {
		res.Snapshot = snap
		return res, nil
	}

	key, err := s.uploader.Put(ctx, objectName(now, res.Filename), "application/json", payload)
	if err != nil {
		return nil, err
	}
	res.Bucket = s.uploader.Bucket()
	res.Key = key
	s.log.Info("backup uploaded", zap.String("bucket", res.Bucket), zap.String("key", key), zap.Int("size", res.Size))
	return res, nil
}

// objectName files backups by year and month.
func objectName(now time.Time, filename string) string {
	return fmt.Sprintf("backups/%04d/%02d/%s", now.Year(), int(now.Month()), filename)
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler { return &Handler{svc: svc, log: log} }

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.POST("/backup", h.create)
}

func (h *Handler) create(c *gin.Context) {
	res, err := h.svc.Run(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Created(c, "Backup created", res)
}
