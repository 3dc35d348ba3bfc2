package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/modules/contact"
	pkgcron "github.com/folio-space/core/internal/pkg/cron"
	"github.com/folio-space/core/internal/pkg/mail"
	"github.com/folio-space/core/internal/pkg/objectstore"
	pkgredis "github.com/folio-space/core/internal/pkg/redis"
	"github.com/folio-space/core/internal/store"
	"github.com/folio-space/core/internal/store/memory"
	"github.com/folio-space/core/internal/store/sqlstore"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const redisKeyPrefix = "folio"

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	store   store.Store
	redis   *pkgredis.Client
	logger  *zap.Logger
	cancel  context.CancelFunc
	sched   *pkgcron.Scheduler
	limiter *middleware.LoginLimiter
	contact *contact.Service
}

// Deps are the external resources the router is built on. Redis and
// Uploader may be nil.
type Deps struct {
	Store    store.Store
	Redis    *pkgredis.Client
	Uploader *objectstore.Client
	Mailer   *mail.Sender
}

// New initializes the application: config → storage → Redis → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := applyRuntimeSettings(cfg); err != nil {
		return nil, err
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.Redis.URL != "" {
		rc, err = pkgredis.Connect(cfg.Redis.URL, redisKeyPrefix)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
	} else {
		logger.Info("redis not configured, rate limit and idempotence guard disabled")
	}

	var uploader *objectstore.Client
	if cfg.S3.Enabled() {
		uploader, err = objectstore.New(objectstore.Options{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Prefix:          cfg.S3.Prefix,
			PathStyle:       cfg.S3.PathStyle,
		})
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("s3: %w", err)
		}
	}

	if cfg.IsDev() && cfg.Auth.AdminSecret == "" && cfg.Auth.PasswordHash == "" {
		logger.Warn("auth.admin_secret is empty, admin login is disabled")
	}

	mailer := mail.New(mail.Config{
		Enable:   cfg.Mail.Enable,
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		User:     cfg.Mail.User,
		Pass:     cfg.Mail.Pass,
		From:     cfg.Mail.From,
		NotifyTo: cfg.Mail.NotifyTo,
	})

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	a := Build(logger, cfg, Deps{Store: st, Redis: rc, Uploader: uploader, Mailer: mailer})
	a.start()
	return a, nil
}

// Build assembles the router over deps without starting background jobs.
func Build(logger *zap.Logger, cfg *config.AppConfig, deps Deps) *App {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logger(logger.Named("HTTP")))
	router.Use(cors.New(corsConfig(cfg)))

	a := &App{
		cfg:    cfg,
		router: router,
		store:  deps.Store,
		redis:  deps.Redis,
		logger: logger,
		sched:  pkgcron.New(logger.Named("CronService")),
		cancel: func() {},
	}
	a.registerRoutes(deps)
	return a
}

func (a *App) start() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.sched.Start(ctx)
	if a.limiter != nil {
		go a.limiter.Run(ctx)
	}
}

func openStore(cfg *config.AppConfig) (store.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageSQL:
		db, err := database.Open(cfg.Database, cfg.IsDev(), true)
		if err != nil {
			return nil, err
		}
		return sqlstore.New(db, sqlstore.Options{}), nil
	default:
		path := cfg.Storage.File
		if path != "" {
			path = config.ResolveRuntimePath(path, "")
		}
		return memory.New(memory.Options{Path: path})
	}
}

// Addr returns the listen address.
func (a *App) Addr() string { return a.cfg.Addr() }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background work and releases storage and Redis.
func (a *App) Shutdown() {
	a.cancel()
	a.sched.Wait()
	if a.contact != nil {
		a.contact.Wait()
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("storage close failed", zap.Error(err))
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close failed", zap.Error(err))
		}
	}
}
