package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/store"
	"github.com/folio-space/core/internal/store/storetest"
)

func TestContract(t *testing.T) {
	t.Run("in memory", func(t *testing.T) {
		storetest.Run(t, func(t *testing.T, now func() time.Time) store.Store {
			s, err := New(Options{Now: now})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			return s
		})
	})
	t.Run("file backed", func(t *testing.T) {
		storetest.Run(t, func(t *testing.T, now func() time.Time) store.Store {
			s, err := New(Options{Path: filepath.Join(t.TempDir(), "folio.json"), Now: now})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			return s
		})
	})
}

func TestSnapshotSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "folio.json")
	clock := storetest.Clock()

	s, err := New(Options{Path: path, Now: clock})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	older := &models.Skill{Name: "SQL", Category: "backend", Proficiency: 60}
	newer := &models.Skill{Name: "Go", Category: "backend", Proficiency: 80}
	for _, sk := range []*models.Skill{older, newer} {
		if err := s.Skills().Create(ctx, sk); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := s.Posts().Create(ctx, &models.BlogPost{Title: "Hi", Slug: "hi-there", Tags: models.StringArray{"x"}}); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := s.Home().Upsert(ctx, func(h *models.HomeContent) { h.HeroTitle = "Hello" }); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.Events().Append(ctx, &models.AnalyticsEvent{EventType: models.EventPageView, Page: "/"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	reopened, err := New(Options{Path: path, Now: clock})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	skills, _ := reopened.Skills().List(ctx)
	if len(skills) != 2 || skills[0].ID != newer.ID || skills[1].ID != older.ID {
		t.Fatalf("skills after reload: %+v", skills)
	}
	post, err := reopened.Posts().GetBySlug(ctx, "hi-there")
	if err != nil || len(post.Tags) != 1 {
		t.Fatalf("post after reload: %+v, %v", post, err)
	}
	home, err := reopened.Home().Get(ctx)
	if err != nil || home.HeroTitle != "Hello" {
		t.Fatalf("home after reload: %+v, %v", home, err)
	}
	sum, _ := reopened.Events().Summarize(ctx)
	if sum.TotalViews != 1 {
		t.Fatalf("events after reload: %+v", sum)
	}

	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}

func TestFailedPersistRollsBack(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.json")

	s, err := New(Options{Path: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// A directory where the snapshot should be makes the rename fail.
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	err = s.Skills().Create(ctx, &models.Skill{Name: "Go", Category: "backend"})
	var se *store.Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *store.Error, got %v", err)
	}
	skills, _ := s.Skills().List(ctx)
	if len(skills) != 0 {
		t.Fatalf("failed create left a row: %+v", skills)
	}
	if _, err := s.Home().Upsert(ctx, func(h *models.HomeContent) { h.HeroTitle = "x" }); err == nil {
		t.Fatal("expected upsert failure")
	}
	if _, err := s.Home().Get(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("failed upsert left a row: %v", err)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New(Options{Path: path}); err == nil {
		t.Fatal("expected load error")
	}
}

func TestReturnedItemsAreCopies(t *testing.T) {
	ctx := context.Background()
	s, _ := New(Options{})
	p := &models.Project{Title: "Folio", Description: "Portfolio", TechStack: models.StringArray{"go"}}
	if err := s.Projects().Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	p.TechStack[0] = "mutated"

	got, _ := s.Projects().Get(ctx, p.ID)
	got.TechStack[0] = "also mutated"
	again, _ := s.Projects().Get(ctx, p.ID)
	if again.TechStack[0] != "go" {
		t.Fatalf("store state leaked: %v", again.TechStack)
	}
}
