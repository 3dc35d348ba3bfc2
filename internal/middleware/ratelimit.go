package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/folio-space/core/internal/pkg/redis"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	rateLimitMax    = 20
	rateLimitWindow = time.Minute
	msgTooFast      = "Too many requests, please slow down"
)

// RateLimitOptions tunes the per-IP window. Zero values take the defaults.
type RateLimitOptions struct {
	Max    int64
	Window time.Duration
	Scope  string
}

// RateLimit caps unauthenticated write traffic per client IP with a fixed
// window counter in Redis. A nil client or a Redis error lets the request
// through.
func RateLimit(rdb *redis.Client, log *zap.Logger, opts RateLimitOptions) gin.HandlerFunc {
	if opts.Max <= 0 {
		opts.Max = rateLimitMax
	}
	if opts.Window <= 0 {
		opts.Window = rateLimitWindow
	}
	if opts.Scope == "" {
		opts.Scope = "public"
	}

	return func(c *gin.Context) {
		if rdb == nil || c.Request.Method == http.MethodGet || IsAdmin(c) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		windowKey := strconv.FormatInt(time.Now().UnixNano()/int64(opts.Window), 10)
		key := rdb.Key("rate_limit", opts.Scope, ip, windowKey)
		count, ttl, err := rdb.Hit(c.Request.Context(), key, opts.Window)
		if err != nil {
			log.Warn("rate limit unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > opts.Max {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(ttl)))
			response.TooManyRequests(c, msgTooFast)
			return
		}

		c.Next()
	}
}

func retryAfterSeconds(ttl time.Duration) int {
	secs := int(math.Ceil(ttl.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
