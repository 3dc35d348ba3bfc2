package backup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/objectstore"
	"github.com/folio-space/core/internal/store"
	"github.com/folio-space/core/internal/store/memory"
	"github.com/folio-space/core/internal/store/storetest"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakePutter struct {
	key  string
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.key = *in.Key
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func seededStore(t *testing.T) store.Store {
	t.Helper()
	st, err := memory.New(memory.Options{Now: storetest.Clock()})
	if err != nil {
		t.Fatalf("memory.New: %v", err)
	}
	ctx := context.Background()
	skill := models.Skill{Name: "Go", Category: "backend", Proficiency: 80}
	if err := st.Skills().Create(ctx, &skill); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Home().Upsert(ctx, func(h *models.HomeContent) { h.HeroTitle = "Hi" }); err != nil {
		t.Fatal(err)
	}
	return st
}

func fixedNow() time.Time { return time.Date(2026, time.March, 4, 5, 6, 7, 0, time.UTC) }

func TestRunWithoutUploaderReturnsSnapshot(t *testing.T) {
	svc := NewService(seededStore(t), nil, zap.NewNop())
	svc.now = fixedNow

	res, err := svc.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Snapshot == nil || len(res.Snapshot.Skills) != 1 || res.Snapshot.Home == nil || res.Key != "" {
		t.Fatalf("result = %+v", res)
	}
	if res.Filename != "folio-backup-2026-03-04T05-06-07.json" {
		t.Fatalf("filename = %s", res.Filename)
	}
}

func TestRunUploadsSnapshot(t *testing.T) {
	putter := &fakePutter{}
	svc := NewService(seededStore(t), objectstore.NewWithAPI(putter, "bucket", "folio"), zap.NewNop())
	svc.now = fixedNow

	res, err := svc.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	wantKey := "folio/backups/2026/03/folio-backup-2026-03-04T05-06-07.json"
	if res.Key != wantKey || putter.key != wantKey || res.Bucket != "bucket" || res.Snapshot != nil {
		t.Fatalf("result = %+v, uploaded %s", res, putter.key)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(putter.body, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Version != store.SnapshotVersion || len(snap.Skills) != 1 || snap.Skills[0].Name != "Go" {
		t.Fatalf("uploaded snapshot = %+v", snap)
	}
}

func TestHandlerHidesUploadErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	putter := &fakePutter{err: errors.New("AccessDenied: secret-key-id")}
	svc := NewService(seededStore(t), objectstore.NewWithAPI(putter, "bucket", ""), zap.NewNop())
	r := gin.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(r.Group("/api/admin"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/backup", nil))
	if w.Code != http.StatusInternalServerError || strings.Contains(w.Body.String(), "secret") {
		t.Fatalf("backup = %d %s", w.Code, w.Body.String())
	}
}
