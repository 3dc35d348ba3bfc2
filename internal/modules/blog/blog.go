package blog

import (
	"context"
	"errors"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/pagination"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/folio-space/core/internal/schema"
	"github.com/folio-space/core/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgPostNotFound = "Blog post not found"

type Service struct{ repo store.PostRepository }

func NewService(repo store.PostRepository) *Service { return &Service{repo: repo} }

func (s *Service) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	return s.repo.ListPublished(ctx)
}

// GetPublished resolves a slug for the public site. Drafts read as missing.
func (s *Service) GetPublished(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, store.ErrNotFound
	}
	return post, nil
}

func (s *Service) List(ctx context.Context) ([]models.BlogPost, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a post. A taken slug yields store.ErrConflict.
func (s *Service) Create(ctx context.Context, in *schema.CreateBlogPost) (*models.BlogPost, error) {
	post := in.Model()
	if err := s.repo.Create(ctx, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Service) Update(ctx context.Context, id string, in *schema.UpdateBlogPost) (*models.BlogPost, error) {
	return s.repo.Update(ctx, id, in.Apply)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler { return &Handler{svc: svc, log: log} }

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/blog", h.listPublished)
	public.GET("/blog/:slug", h.getBySlug)

	g := admin.Group("/blog")
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) listPublished(c *gin.Context) {
	posts, err := h.svc.ListPublished(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	pagination.Respond(c, posts)
}

func (h *Handler) getBySlug(c *gin.Context) {
	post, err := h.svc.GetPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, post)
}

func (h *Handler) list(c *gin.Context) {
	posts, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	pagination.Respond(c, posts)
}

func (h *Handler) get(c *gin.Context) {
	post, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, post)
}

func (h *Handler) create(c *gin.Context) {
	in, err := schema.DecodeReader[schema.CreateBlogPost](c.Request.Body)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	post, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, "Blog post created", post)
}

func (h *Handler) update(c *gin.Context) {
	in, err := schema.DecodeReader[schema.UpdateBlogPost](c.Request.Body)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	post, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Updated(c, "Blog post updated", post)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, "Blog post deleted")
}

// fail words the post-specific cases and leaves the rest to response.Error.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.NotFound(c, msgPostNotFound)
	case errors.Is(err, store.ErrConflict):
		response.Conflict(c, "A blog post with this slug already exists")
	default:
		response.Error(c, h.log, err)
	}
}
