package pagination

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	tests := []struct {
		name    string
		q       Query
		want    []int
		pages   int
		hasNext bool
	}{
		{"first page", Query{Page: 1, Size: 2}, []int{1, 2}, 3, true},
		{"last page", Query{Page: 3, Size: 2}, []int{5}, 3, false},
		{"past the end", Query{Page: 9, Size: 2}, []int{}, 3, false},
		{"one page", Query{Page: 1, Size: 10}, []int{1, 2, 3, 4, 5}, 1, false},
		{"huge page number", Query{Page: math.MaxInt, Size: 10}, []int{}, 1, false},
		{"huge page small size", Query{Page: math.MaxInt, Size: 1}, []int{}, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, meta := Slice(items, tt.q)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
			if meta.Total != 5 || meta.TotalPage != tt.pages || meta.HasNextPage != tt.hasNext {
				t.Fatalf("meta = %+v", meta)
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		query string
		ok    bool
		want  Query
	}{
		{"", false, Query{}},
		{"?page=2", true, Query{Page: 2, Size: DefaultSize}},
		{"?size=500", true, Query{Page: 1, Size: MaxSize}},
		{"?page=-1&size=abc", true, Query{Page: 1, Size: DefaultSize}},
		{"?page=9223372036854775807&size=10", true, Query{Page: math.MaxInt, Size: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/x"+tt.query, nil)
			got, ok := FromContext(c)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("FromContext = %+v, %v", got, ok)
			}
		})
	}
}
