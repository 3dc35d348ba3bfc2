package pagination

import (
	"strconv"

	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// FromContext reads page/size. ok is false when neither was given, in which
// case callers return the full list.
func FromContext(c *gin.Context) (Query, bool) {
	rawPage, hasPage := c.GetQuery("page")
	rawSize, hasSize := c.GetQuery("size")
	if !hasPage && !hasSize {
		return Query{}, false
	}

	page := parseIntOr(rawPage, DefaultPage)
	size := parseIntOr(rawSize, DefaultSize)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Query{Page: page, Size: size}, true
}

// Slice cuts one page out of items and returns the pagination metadata.
func Slice[T any](items []T, q Query) ([]T, response.Pagination) {
	total := len(items)
	totalPage := (total + q.Size - 1) / q.Size

	// Compare in pages first; (Page-1)*Size overflows for huge page numbers.
	start := total
	if q.Page-1 <= total/q.Size {
		start = min((q.Page-1)*q.Size, total)
	}
	end := start + q.Size
	if end > total {
		end = total
	}

	return items[start:end], response.Pagination{
		Total:       int64(total),
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: q.Page < totalPage,
	}
}

// Respond writes items either whole or paged, depending on the query.
func Respond[T any](c *gin.Context, items []T) {
	q, ok := FromContext(c)
	if !ok {
		response.OK(c, items)
		return
	}
	page, meta := Slice(items, q)
	response.Paged(c, page, meta)
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
