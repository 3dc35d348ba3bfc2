// Package content serves the editable portfolio sections: the home and about
// singletons plus the skill, project and certificate lists.
package content

import (
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/schema"
	"github.com/folio-space/core/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type routes interface {
	RegisterRoutes(public, admin *gin.RouterGroup)
}

// Handler bundles every content route of the portfolio.
type Handler struct {
	parts []routes
}

func NewHandler(st store.Store, log *zap.Logger) *Handler {
	return &Handler{parts: []routes{
		NewPage[models.HomeContent, schema.HomeContentInput]("home", "Home content", st.Home(), log),
		NewPage[models.AboutContent, schema.AboutContentInput]("about", "About content", st.About(), log),
		NewCatalog[models.Skill, schema.CreateSkill, schema.UpdateSkill]("skills", "Skill", st.Skills(), log),
		NewCatalog[models.Project, schema.CreateProject, schema.UpdateProject]("projects", "Project", st.Projects(), log),
		NewCatalog[models.Certificate, schema.CreateCertificate, schema.UpdateCertificate]("certificates", "Certificate", st.Certificates(), log),
	}}
}

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	for _, part := range h.parts {
		part.RegisterRoutes(public, admin)
	}
}
