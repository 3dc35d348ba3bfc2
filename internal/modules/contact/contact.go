package contact

import (
	"context"
	"sync"
	"time"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/mail"
	"github.com/folio-space/core/internal/pkg/pagination"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/folio-space/core/internal/schema"
	"github.com/folio-space/core/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgSent = "Message sent successfully"

type Service struct {
	repo   store.Repository[models.ContactMessage]
	mailer *mail.Sender
	log    *zap.Logger
	wg     sync.WaitGroup
}

func NewService(repo store.Repository[models.ContactMessage], mailer *mail.Sender, log *zap.Logger) *Service {
	return &Service{repo: repo, mailer: mailer, log: log}
}

// Create stores a new unread message and notifies the owner in the
// background. Notification failures never fail the request.
func (s *Service) Create(ctx context.Context, in *schema.CreateContactMessage) (*models.ContactMessage, error) {
	msg := in.Model()
	if err := s.repo.Create(ctx, &msg); err != nil {
		return nil, err
	}
	if s.mailer.Enabled() {
		s.wg.Add(1)
		go s.notify(msg)
	}
	return &msg, nil
}

func (s *Service) notify(msg models.ContactMessage) {
	defer s.wg.Done()
	err := s.mailer.SendContactNotify(mail.ContactNotifyData{
		Name:       msg.Name,
		Email:      msg.Email,
		Message:    msg.Message,
		ReceivedAt: msg.CreatedAt.Format(time.RFC1123),
	})
	if err != nil {
		s.log.Warn("contact notification failed", zap.String("id", msg.ID), zap.Error(err))
	}
}

// Wait blocks until pending notifications are sent.
func (s *Service) Wait() { s.wg.Wait() }

func (s *Service) List(ctx context.Context) ([]models.ContactMessage, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.ContactMessage, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) MarkRead(ctx context.Context, id string) (*models.ContactMessage, error) {
	return s.repo.Update(ctx, id, func(m *models.ContactMessage) { m.IsRead = true })
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler { return &Handler{svc: svc, log: log} }

// RegisterRoutes mounts the public form and the admin inbox. guards run
// before the public create only.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup, guards ...gin.HandlerFunc) {
	public.POST("/contact", append(guards, h.create)...)

	g := admin.Group("/messages")
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PATCH("/:id/read", h.markRead)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	in, err := schema.DecodeReader[schema.CreateContactMessage](c.Request.Body)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	msg, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Created(c, msgSent, msg)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	pagination.Respond(c, items)
}

func (h *Handler) get(c *gin.Context) {
	msg, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, msg)
}

func (h *Handler) markRead(c *gin.Context) {
	msg, err := h.svc.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Updated(c, "Message marked as read", msg)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Message(c, "Message deleted")
}
