package app

import (
	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/modules/analytics"
	"github.com/folio-space/core/internal/modules/auth"
	"github.com/folio-space/core/internal/modules/backup"
	"github.com/folio-space/core/internal/modules/blog"
	"github.com/folio-space/core/internal/modules/contact"
	"github.com/folio-space/core/internal/modules/content"
	"github.com/folio-space/core/internal/modules/system"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api"

var appInfo = gin.H{
	"name":     "folio-core",
	"version":  "1.0.0",
	"homepage": "https://github.com/folio-space/core",
}

func (a *App) registerRoutes(deps Deps) {
	r := a.router
	log := a.logger

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	tokens := middleware.NewAuthenticator(a.cfg.Auth)
	a.limiter = middleware.NewLoginLimiter(middleware.LoginMaxAttempts, middleware.LoginWindow)

	api := r.Group(apiPrefix)
	api.GET("", func(c *gin.Context) { response.OK(c, appInfo) })

	// Login stays outside the gate; everything else under /admin needs a token.
	adminOpen := api.Group("/admin")
	// Admin writes are guarded only when they carry an x-idempotence key.
	admin := api.Group("/admin",
		middleware.AdminGate(tokens),
		middleware.Idempotence(deps.Redis, log.Named("Idempotence"), middleware.IdempotenceOptions{HeaderOnly: true}),
	)

	publicWriteGuards := []gin.HandlerFunc{
		middleware.RateLimit(deps.Redis, log.Named("RateLimit"), middleware.RateLimitOptions{Scope: "contact"}),
		middleware.Idempotence(deps.Redis, log.Named("Idempotence"), middleware.IdempotenceOptions{}),
	}

	storageName := a.cfg.Storage.Driver
	if storageName == config.StorageSQL {
		storageName = a.cfg.Database.Driver
	}
	var cache system.Pinger
	if deps.Redis != nil {
		cache = deps.Redis
	}
	system.NewHandler(deps.Store, storageName, cache, a.sched, log.Named("System")).RegisterRoutes(api, admin)

	authLog := log.Named("Auth")
	auth.NewHandler(auth.NewService(a.cfg.Auth, tokens), a.limiter, authLog).RegisterRoutes(adminOpen, admin)

	contactLog := log.Named("Contact")
	a.contact = contact.NewService(deps.Store.Messages(), deps.Mailer, contactLog)
	contact.NewHandler(a.contact, contactLog).RegisterRoutes(api, admin, publicWriteGuards...)

	blog.NewHandler(blog.NewService(deps.Store.Posts()), log.Named("Blog")).RegisterRoutes(api, admin)
	content.NewHandler(deps.Store, log.Named("Content")).RegisterRoutes(api, admin)

	analyticsLog := log.Named("Analytics")
	analytics.NewHandler(analytics.NewService(deps.Store.Events(), analyticsLog), analyticsLog).RegisterRoutes(api, admin)

	backupLog := log.Named("Backup")
	backupSvc := backup.NewService(deps.Store, deps.Uploader, backupLog)
	backup.NewHandler(backupSvc, backupLog).RegisterRoutes(admin)

	a.registerCronJobs(backupSvc, deps)
}
