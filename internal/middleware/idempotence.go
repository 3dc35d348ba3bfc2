package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/folio-space/core/internal/pkg/redis"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	idempotenceHeader = "x-idempotence"
	idempotenceTTL    = 60 * time.Second

	msgDuplicateDone    = "The same request can only be sent once within 60 seconds"
	msgDuplicatePending = "The same request is still being processed"
)

// IdempotenceOptions tunes the duplicate guard.
type IdempotenceOptions struct {
	// HeaderOnly guards only requests that carry an x-idempotence header.
	// Without it the key falls back to a hash of the request.
	HeaderOnly bool
}

// Idempotence rejects a repeated POST/PUT/PATCH/DELETE with 409 while the
// first one is in flight and for a minute after it succeeded. A failed
// request releases its key. Requests pass untouched when rdb is nil.
func Idempotence(rdb *redis.Client, log *zap.Logger, opts IdempotenceOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || !guardedMethod(c.Request.Method) {
			c.Next()
			return
		}

		key, err := resolveIdempotenceKey(c, opts.HeaderOnly)
		if err != nil || key == "" {
			c.Next()
			return
		}

		redisKey := rdb.Key("idempotence", key)
		ctx := c.Request.Context()

		won, err := rdb.Claim(ctx, redisKey, idempotenceTTL)
		if err != nil {
			log.Warn("idempotence guard unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !won {
			msg := msgDuplicateDone
			if val, _ := rdb.Get(ctx, redisKey); val == "0" {
				msg = msgDuplicatePending
			}
			response.Conflict(c, msg)
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			_ = rdb.Mark(ctx, redisKey, "1")
		} else {
			_ = rdb.Del(ctx, redisKey)
		}
	}
}

func guardedMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// resolveIdempotenceKey returns the idempotence key for the current request.
// An empty key means the request is not guarded.
func resolveIdempotenceKey(c *gin.Context, headerOnly bool) (string, error) {
	if hdr := c.GetHeader(idempotenceHeader); hdr != "" {
		return hdr, nil
	}
	if headerOnly {
		return "", nil
	}

	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return "", err
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	}

	ua := c.Request.UserAgent()
	ip := c.ClientIP()
	authToken := extractToken(c)

	if len(body) == 0 && ua == "" && ip == "" && authToken == "" {
		return "", nil
	}

	raw := c.Request.Method + "|" + c.Request.URL.String() + "|" + string(body) + "|" + ua + "|" + ip + "|" + authToken
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:]), nil
}
