package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/folio-space/core/internal/schema"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const msgTooManyAttempts = "Too many login attempts, please try again later"

// Service checks the admin password and hands out tokens.
type Service struct {
	secret       string
	passwordHash []byte
	tokens       *middleware.Authenticator
}

func NewService(cfg config.AuthConfig, tokens *middleware.Authenticator) *Service {
	s := &Service{secret: cfg.AdminSecret, tokens: tokens}
	if cfg.PasswordHash != "" {
		s.passwordHash = []byte(cfg.PasswordHash)
	}
	return s
}

// CheckPassword compares in constant time. A bcrypt hash, when configured,
// takes precedence over the plain secret. Nothing matches an unset secret.
func (s *Service) CheckPassword(password string) bool {
	if password == "" {
		return false
	}
	if s.passwordHash != nil {
		return bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	}
	if s.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.secret)) == 1
}

// Login returns a token for a correct password. ok is false otherwise.
func (s *Service) Login(password string) (token string, expires time.Time, ok bool, err error) {
	if !s.CheckPassword(password) {
		return "", time.Time{}, false, nil
	}
	token, expires, err = s.tokens.Issue()
	if err != nil {
		return "", time.Time{}, false, err
	}
	return token, expires, true, nil
}

type Handler struct {
	svc     *Service
	limiter *middleware.LoginLimiter
	log     *zap.Logger
}

func NewHandler(svc *Service, limiter *middleware.LoginLimiter, log *zap.Logger) *Handler {
	return &Handler{svc: svc, limiter: limiter, log: log}
}

// RegisterRoutes mounts login on the open admin group and the session check
// behind the gate.
func (h *Handler) RegisterRoutes(open, gated *gin.RouterGroup) {
	open.POST("/login", h.login)
	gated.GET("/session", h.session)
}

func (h *Handler) login(c *gin.Context) {
	ip := c.ClientIP()
	if !h.limiter.Check(ip) {
		response.TooManyRequests(c, msgTooManyAttempts)
		return
	}

	in, err := schema.DecodeReader[schema.Login](c.Request.Body)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	token, expires, ok, err := h.svc.Login(in.Password)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	if !ok {
		h.limiter.Record(ip)
		h.log.Warn("admin login failed", zap.String("ip", ip))
		response.Unauthorized(c)
		return
	}
	h.limiter.Reset(ip)

	body := gin.H{"success": true, "token": token}
	if !expires.IsZero() {
		body["expiresAt"] = expires
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) session(c *gin.Context) {
	response.OK(c, gin.H{"authenticated": middleware.IsAdmin(c)})
}
