// Package storetest holds the behaviour every store.Store backend must share.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/store"
)

// Factory opens an empty store driven by the given clock.
type Factory func(t *testing.T, now func() time.Time) store.Store

// Clock returns a function that advances one second on every call.
func Clock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

// Run executes the contract suite against stores produced by open.
func Run(t *testing.T, open Factory) {
	t.Run("messages", func(t *testing.T) { testMessages(t, open(t, Clock())) })
	t.Run("posts", func(t *testing.T) { testPosts(t, open(t, Clock())) })
	t.Run("catalog", func(t *testing.T) { testCatalog(t, open(t, Clock())) })
	t.Run("singletons", func(t *testing.T) { testSingletons(t, open(t, Clock())) })
	t.Run("concurrent singleton upserts", func(t *testing.T) { testConcurrentUpserts(t, open(t, Clock())) })
	t.Run("events", func(t *testing.T) { testEvents(t, open(t, Clock())) })
	t.Run("export", func(t *testing.T) { testExport(t, open(t, Clock())) })
}

func testMessages(t *testing.T, s store.Store) {
	ctx := context.Background()
	repo := s.Messages()

	msg := &models.ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "Hello from the tests"}
	if err := repo.Create(ctx, msg); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if msg.ID == "" || msg.CreatedAt.IsZero() {
		t.Fatalf("id/createdAt not assigned: %+v", msg)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != msg.ID || list[0].IsRead {
		t.Fatalf("unexpected list %+v", list)
	}

	second := &models.ContactMessage{Name: "Grace", Email: "grace@example.com", Message: "Second message here"}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create second: %v", err)
	}
	list, _ = repo.List(ctx)
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("list not newest first: %+v", list)
	}

	updated, err := repo.Update(ctx, msg.ID, func(m *models.ContactMessage) {
		m.IsRead = true
		m.ID = "hijack"
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.IsRead || updated.ID != msg.ID || !updated.CreatedAt.Equal(msg.CreatedAt) {
		t.Fatalf("update changed identity or lost change: %+v", updated)
	}
	got, err := repo.Get(ctx, msg.ID)
	if err != nil || !got.IsRead {
		t.Fatalf("Get after update: %+v, %v", got, err)
	}

	if _, err := repo.Update(ctx, "missing", func(*models.ContactMessage) {}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Update missing: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, msg.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, msg.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get deleted: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, msg.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Delete twice: expected ErrNotFound, got %v", err)
	}
}

func newPost(slug string, published bool) *models.BlogPost {
	return &models.BlogPost{
		Title:     "Post " + slug,
		Slug:      slug,
		Excerpt:   "An excerpt for " + slug,
		Content:   "Body text long enough to be a realistic blog post for " + slug,
		Tags:      models.StringArray{"go", "api"},
		Published: published,
	}
}

func testPosts(t *testing.T, s store.Store) {
	ctx := context.Background()
	repo := s.Posts()

	draft := newPost("draft-post", false)
	live := newPost("live-post", true)
	for _, p := range []*models.BlogPost{draft, live} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create %s: %v", p.Slug, err)
		}
	}
	if !live.UpdatedAt.Equal(live.CreatedAt) {
		t.Fatalf("updatedAt not set on create: %+v", live)
	}

	if err := repo.Create(ctx, newPost("live-post", false)); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("duplicate slug: expected ErrConflict, got %v", err)
	}

	all, _ := repo.List(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(all))
	}
	published, err := repo.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(published) != 1 || published[0].ID != live.ID {
		t.Fatalf("unexpected published list %+v", published)
	}
	if len(published[0].Tags) != 2 || published[0].Tags[0] != "go" {
		t.Fatalf("tags not round-tripped: %+v", published[0].Tags)
	}

	got, err := repo.GetBySlug(ctx, "live-post")
	if err != nil || got.ID != live.ID {
		t.Fatalf("GetBySlug: %+v, %v", got, err)
	}
	if _, err := repo.GetBySlug(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetBySlug missing: expected ErrNotFound, got %v", err)
	}

	if _, err := repo.Update(ctx, draft.ID, func(p *models.BlogPost) { p.Slug = "live-post" }); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("update onto taken slug: expected ErrConflict, got %v", err)
	}
	updated, err := repo.Update(ctx, draft.ID, func(p *models.BlogPost) {
		p.Published = true
		p.Slug = "draft-post"
	})
	if err != nil {
		t.Fatalf("Update keeping own slug: %v", err)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Fatalf("updatedAt not refreshed: %+v", updated)
	}
	published, _ = repo.ListPublished(ctx)
	if len(published) != 2 {
		t.Fatalf("expected 2 published posts, got %d", len(published))
	}
}

func testCatalog(t *testing.T, s store.Store) {
	ctx := context.Background()

	skill := &models.Skill{Name: "Go", Category: "backend", Proficiency: 70}
	if err := s.Skills().Create(ctx, skill); err != nil {
		t.Fatalf("create skill: %v", err)
	}
	project := &models.Project{Title: "Folio", Description: "Portfolio backend", TechStack: models.StringArray{"go", "gin"}}
	if err := s.Projects().Create(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}
	cert := &models.Certificate{Title: "CKA", Issuer: "CNCF", IssueDate: "2023-05-01"}
	if err := s.Certificates().Create(ctx, cert); err != nil {
		t.Fatalf("create certificate: %v", err)
	}

	updated, err := s.Projects().Update(ctx, project.ID, func(p *models.Project) {
		p.Featured = true
		p.TechStack = models.StringArray{"go"}
	})
	if err != nil {
		t.Fatalf("update project: %v", err)
	}
	got, _ := s.Projects().Get(ctx, project.ID)
	if !got.Featured || len(got.TechStack) != 1 || !got.UpdatedAt.Equal(updated.UpdatedAt) {
		t.Fatalf("project update not persisted: %+v", got)
	}

	if err := s.Skills().Delete(ctx, skill.ID); err != nil {
		t.Fatalf("delete skill: %v", err)
	}
	skills, _ := s.Skills().List(ctx)
	if len(skills) != 0 {
		t.Fatalf("skill still listed: %+v", skills)
	}
	certs, _ := s.Certificates().List(ctx)
	if len(certs) != 1 || certs[0].IssueDate != "2023-05-01" {
		t.Fatalf("unexpected certificates %+v", certs)
	}
}

func testSingletons(t *testing.T, s store.Store) {
	ctx := context.Background()

	if _, err := s.Home().Get(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("empty home: expected ErrNotFound, got %v", err)
	}

	first, err := s.Home().Upsert(ctx, func(h *models.HomeContent) {
		h.HeroTitle = "Hello"
		h.HeroSubtitle = "First"
		h.CtaText = "Contact me"
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := s.Home().Upsert(ctx, func(h *models.HomeContent) {
		h.HeroTitle = "Hi again"
		h.HeroSubtitle = "Second"
		h.CtaText = "Hire me"
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first.ID != second.ID || second.ID != models.HomeContentKey {
		t.Fatalf("singleton key changed: %q vs %q", first.ID, second.ID)
	}

	home, err := s.Home().Get(ctx)
	if err != nil {
		t.Fatalf("Get home: %v", err)
	}
	if home.HeroTitle != "Hi again" || home.HeroSubtitle != "Second" || home.CtaText != "Hire me" {
		t.Fatalf("home does not equal second payload: %+v", home)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.About().Upsert(ctx, func(a *models.AboutContent) { a.Title = "About" })
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent upsert: %v", err)
		}
	}
	about, err := s.About().Get(ctx)
	if err != nil || about.ID != models.AboutContentKey || about.Title != "About" {
		t.Fatalf("about after concurrent upserts: %+v, %v", about, err)
	}
}

func testConcurrentUpserts(t *testing.T, s store.Store) {
	ctx := context.Background()
	const writers = 16

	titles := make(map[string]bool, writers)
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		title := fmt.Sprintf("Title %02d", i)
		titles[title] = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Home().Upsert(ctx, func(h *models.HomeContent) {
				h.HeroTitle = title
				h.HeroSubtitle = "Subtitle"
				h.CtaText = "Say hi"
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent upsert: %v", err)
		}
	}

	home, err := s.Home().Get(ctx)
	if err != nil {
		t.Fatalf("Get home: %v", err)
	}
	if home.ID != models.HomeContentKey || !titles[home.HeroTitle] {
		t.Fatalf("home after concurrent upserts: %+v", home)
	}

	snap, err := store.Export(ctx, s, time.Now())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if snap.Home == nil || snap.Home.ID != home.ID || snap.Home.HeroTitle != home.HeroTitle {
		t.Fatalf("snapshot home = %+v, want %+v", snap.Home, home)
	}
}

func testEvents(t *testing.T, s store.Store) {
	ctx := context.Background()
	log := s.Events()

	empty, err := log.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize empty: %v", err)
	}
	if empty.TotalViews != 0 || empty.SectionViews == nil || empty.PageViews == nil {
		t.Fatalf("unexpected empty summary %+v", empty)
	}

	events := []*models.AnalyticsEvent{
		{EventType: models.EventSectionView, Page: "/", Section: "home", VisitorID: "v1"},
		{EventType: models.EventSectionView, Page: "/", Section: "about", VisitorID: "v1"},
		{EventType: models.EventPageView, Page: "/blog", VisitorID: "v2"},
	}
	for _, e := range events {
		if err := log.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	sum, err := log.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.TotalViews != 3 || sum.UniqueVisitors != 2 {
		t.Fatalf("totals = %d/%d, want 3/2", sum.TotalViews, sum.UniqueVisitors)
	}
	if len(sum.SectionViews) != 2 || sum.SectionViews["home"] != 1 || sum.SectionViews["about"] != 1 {
		t.Fatalf("sectionViews = %v", sum.SectionViews)
	}
	if len(sum.PageViews) != 2 || sum.PageViews["/"] != 2 || sum.PageViews["/blog"] != 1 {
		t.Fatalf("pageViews = %v", sum.PageViews)
	}

	recent, err := log.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != events[2].ID || recent[1].ID != events[1].ID {
		t.Fatalf("recent not newest first: %+v", recent)
	}

	removed, err := log.Prune(ctx, events[1].CreatedAt)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("Prune removed %d, want 1", removed)
	}
	sum, _ = log.Summarize(ctx)
	if sum.TotalViews != 2 || sum.SectionViews["home"] != 0 {
		t.Fatalf("summary after prune %+v", sum)
	}
}

func testExport(t *testing.T, s store.Store) {
	ctx := context.Background()
	if err := s.Skills().Create(ctx, &models.Skill{Name: "Go", Category: "backend", Proficiency: 90}); err != nil {
		t.Fatalf("create skill: %v", err)
	}
	if _, err := s.About().Upsert(ctx, func(a *models.AboutContent) { a.Bio = "bio" }); err != nil {
		t.Fatalf("upsert about: %v", err)
	}

	snap, err := store.Export(ctx, s, time.Now())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if snap.Version != store.SnapshotVersion || len(snap.Skills) != 1 || snap.About == nil || snap.Home != nil {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Messages == nil || snap.Posts == nil {
		t.Fatal("empty collections should export as empty lists")
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
