package response

import (
	"errors"
	"net/http"

	"github.com/folio-space/core/internal/schema"
	"github.com/folio-space/core/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgUnauthorized = "Unauthorized"
	msgNotFound     = "Not found"
	msgInternal     = "An error occurred while processing your request"
)

// Pagination metadata returned with paginated responses.
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	TotalPage   int   `json:"totalPage"`
	Size        int   `json:"size"`
	HasNextPage bool  `json:"hasNextPage"`
}

// OK sends 200 {success, data}. data is always present, null when nil.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Message sends 200 {success, message}.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// Updated sends 200 {success, message, data}.
func Updated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "data": data})
}

// Paged sends a page of a list with its metadata.
func Paged(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "pagination": pagination})
}

// Created sends 201 {success, message, data}.
func Created(c *gin.Context, message string, data interface{}) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(http.StatusCreated, body)
}

// Ack sends {success:true} with status and no payload.
func Ack(c *gin.Context, status int) {
	c.JSON(status, gin.H{"success": true})
}

// Fail aborts with {success:false, message}.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// Unauthorized sends the uniform 401 response.
func Unauthorized(c *gin.Context) {
	Fail(c, http.StatusUnauthorized, msgUnauthorized)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = msgNotFound
	}
	Fail(c, http.StatusNotFound, message)
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	Fail(c, http.StatusMethodNotAllowed, "Method not allowed")
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context, message string) {
	Fail(c, http.StatusTooManyRequests, message)
}

// InternalError sends the generic 500 response. Details stay in the log.
func InternalError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, msgInternal)
}

// Error maps the error taxonomy onto a response. Unknown errors are logged
// with the request route and answered with the generic 500.
func Error(c *gin.Context, logger *zap.Logger, err error) {
	var ve *schema.ValidationError
	switch {
	case errors.As(err, &ve):
		BadRequest(c, ve.Error())
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, "")
	case errors.Is(err, store.ErrConflict):
		Conflict(c, "A record with the same unique value already exists")
	default:
		if logger != nil {
			fields := []zap.Field{
				zap.String("method", c.Request.Method),
				zap.String("route", c.FullPath()),
				zap.Error(err),
			}
			var se *store.Error
			if errors.As(err, &se) {
				fields = append(fields, zap.String("op", se.Op))
			}
			logger.Error("request failed", fields...)
		}
		InternalError(c)
	}
}
