package system

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/folio-space/core/internal/pkg/cron"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func newRouter(t *testing.T, storage, cache Pinger, sched *cron.Scheduler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if sched == nil {
		sched = cron.New(zap.NewNop())
	}
	r := gin.New()
	api := r.Group("/api")
	NewHandler(storage, "memory", cache, sched, zap.NewNop()).RegisterRoutes(api, api.Group("/admin"))
	return r
}

func get(r *gin.Engine, method, path string) (int, map[string]interface{}) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestHealth(t *testing.T) {
	cases := []struct {
		name       string
		storage    Pinger
		cache      Pinger
		wantCode   int
		wantStatus string
	}{
		{"healthy", pinger{}, nil, http.StatusOK, "ok"},
		{"storage down", pinger{err: errors.New("closed")}, nil, http.StatusServiceUnavailable, "degraded"},
		{"redis down only", pinger{}, pinger{err: errors.New("refused")}, http.StatusOK, "ok"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := get(newRouter(t, tc.storage, tc.cache, nil), http.MethodGet, "/api/health")
			if code != tc.wantCode || body["status"] != tc.wantStatus || body["storage"] != "memory" {
				t.Fatalf("health = %d %v", code, body)
			}
			if _, ok := body["redis"]; ok != (tc.cache != nil) {
				t.Fatalf("redis field presence = %v", ok)
			}
		})
	}
}

func TestCronRoutes(t *testing.T) {
	sched := cron.New(zap.NewNop())
	runs := 0
	if err := sched.Register(cron.Job{Name: "backup", Interval: time.Hour, Fn: func(context.Context) error {
		runs++
		return nil
	}}); err != nil {
		t.Fatal(err)
	}
	if err := sched.Register(cron.Job{Name: "broken", Interval: time.Hour, Fn: func(context.Context) error {
		return errors.New("boom")
	}}); err != nil {
		t.Fatal(err)
	}
	r := newRouter(t, pinger{}, nil, sched)

	code, body := get(r, http.MethodGet, "/api/admin/cron")
	if jobs, _ := body["data"].([]interface{}); code != http.StatusOK || len(jobs) != 2 {
		t.Fatalf("list = %d %v", code, body)
	}
	if code, _ := get(r, http.MethodPost, "/api/admin/cron/backup/run"); code != http.StatusOK || runs != 1 {
		t.Fatalf("run = %d, runs %d", code, runs)
	}
	if code, _ := get(r, http.MethodPost, "/api/admin/cron/broken/run"); code != http.StatusInternalServerError {
		t.Fatalf("run broken = %d", code)
	}
	if code, _ := get(r, http.MethodPost, "/api/admin/cron/nope/run"); code != http.StatusNotFound {
		t.Fatalf("run missing = %d", code)
	}
}
