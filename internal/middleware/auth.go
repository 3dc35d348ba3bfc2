package middleware

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/pkg/jwt"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const ContextKeyAdmin = "admin"

// Authenticator issues and checks admin bearer tokens. In secret mode the
// token is the admin secret itself; in jwt mode it is a signed HS256 token.
type Authenticator struct {
	mode   string
	secret string
	issuer *jwt.Issuer
}

func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	a := &Authenticator{mode: cfg.TokenMode, secret: cfg.AdminSecret}
	if a.mode == config.TokenModeJWT {
		a.issuer = jwt.NewIssuer(cfg.SigningKey(), cfg.TokenTTL)
	}
	return a
}

// Mode returns the configured token mode.
func (a *Authenticator) Mode() string { return a.mode }

// Issue returns the token handed out after a successful login. Secret mode
// tokens never expire, so expires is zero there.
func (a *Authenticator) Issue() (token string, expires time.Time, err error) {
	if a.issuer != nil {
		return a.issuer.Sign()
	}
	return a.secret, time.Time{}, nil
}

// Verify reports whether token grants admin access.
func (a *Authenticator) Verify(token string) bool {
	if token == "" {
		return false
	}
	if a.issuer != nil {
		_, err := a.issuer.Parse(token)
		return err == nil
	}
	// An unset secret must never match an empty or guessed token.
	if a.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(a.secret)) == 1
}

// AdminGate rejects requests without a valid bearer token before the
// handler runs.
func AdminGate(auth *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Verify(extractToken(c)) {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyAdmin, true)
		c.Next()
	}
}

// IsAdmin reports whether AdminGate accepted the request.
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ContextKeyAdmin)
}

func extractToken(c *gin.Context) string {
	return BearerToken(c.GetHeader("Authorization"))
}

// BearerToken returns the token of a "Bearer <token>" header value. Any other
// scheme, or a bare token, yields "".
func BearerToken(raw string) string {
	token := strings.TrimSpace(raw)
	if len(token) < 7 || !strings.EqualFold(token[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(token[7:])
}
