// Package memory keeps every entity in process memory, optionally mirrored
// to a JSON snapshot file rewritten after each mutation.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/store"
)

// Options configures a memory store.
type Options struct {
	// Path of the snapshot file. Empty keeps data in memory only.
	Path string
	Now  func() time.Time
}

// Store implements store.Store in memory. One mutex serializes mutations.
type Store struct {
	mu   sync.RWMutex
	path string
	now  func() time.Time
	seq  uint64

	messages     *collection[models.ContactMessage]
	posts        *collection[models.BlogPost]
	skills       *collection[models.Skill]
	projects     *collection[models.Project]
	certificates *collection[models.Certificate]
	home         *models.HomeContent
	about        *models.AboutContent
	events       []models.AnalyticsEvent
}

var _ store.Store = (*Store)(nil)

// New builds a store and loads the snapshot file when one exists.
func New(opts Options) (*Store, error) {
	s := &Store{
		path:         opts.Path,
		now:          opts.Now,
		messages:     newCollection[models.ContactMessage](nil),
		posts:        newCollection(clonePost),
		skills:       newCollection[models.Skill](nil),
		projects:     newCollection(cloneProject),
		certificates: newCollection[models.Certificate](nil),
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.path != "" {
		if err := s.load(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) Messages() store.Repository[models.ContactMessage] {
	return &repository[models.ContactMessage, *models.ContactMessage]{s: s, col: s.messages}
}

func (s *Store) Posts() store.PostRepository {
	return &postRepository{
		repository: repository[models.BlogPost, *models.BlogPost]{s: s, col: s.posts, check: s.checkSlug},
	}
}

func (s *Store) Skills() store.Repository[models.Skill] {
	return &repository[models.Skill, *models.Skill]{s: s, col: s.skills}
}

func (s *Store) Projects() store.Repository[models.Project] {
	return &repository[models.Project, *models.Project]{s: s, col: s.projects}
}

func (s *Store) Certificates() store.Repository[models.Certificate] {
	return &repository[models.Certificate, *models.Certificate]{s: s, col: s.certificates}
}

func (s *Store) Home() store.Singleton[models.HomeContent] {
	return &singleton[models.HomeContent, *models.HomeContent]{s: s, key: models.HomeContentKey, slot: &s.home}
}

func (s *Store) About() store.Singleton[models.AboutContent] {
	return &singleton[models.AboutContent, *models.AboutContent]{s: s, key: models.AboutContentKey, slot: &s.about}
}

func (s *Store) Events() store.EventLog {
	return &eventLog{s: s}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// commit persists the current state. On failure the caller's undo restores
// the previous state so no partial write is observable.
func (s *Store) commit(op string, undo func()) error {
	if s.path == "" {
		return nil
	}
	if err := s.persist(); err != nil {
		undo()
		return store.Wrap(op, err)
	}
	return nil
}

func (s *Store) snapshot() store.Snapshot {
	snap := store.Snapshot{
		Version:      store.SnapshotVersion,
		ExportedAt:   s.now(),
		Messages:     s.messages.list(),
		Posts:        s.posts.list(),
		Skills:       s.skills.list(),
		Projects:     s.projects.list(),
		Certificates: s.certificates.list(),
		Events:       append([]models.AnalyticsEvent(nil), s.events...),
	}
	if s.home != nil {
		home := *s.home
		snap.Home = &home
	}
	if s.about != nil {
		about := *s.about
		snap.About = &about
	}
	return snap
}

func (s *Store) persist() error {
	raw, err := json.Marshal(s.snapshot())
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return store.Wrap("load", err)
	}
	if len(raw) == 0 {
		return nil
	}

	var snap store.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return store.Wrap("load", fmt.Errorf("decode %s: %w", s.path, err))
	}
	if snap.Version > store.SnapshotVersion {
		return store.Wrap("load", fmt.Errorf("snapshot version %d is newer than supported %d", snap.Version, store.SnapshotVersion))
	}

	// Lists are stored newest first; insert oldest first so ties keep order.
	loadInto(s, s.messages, snap.Messages)
	loadInto(s, s.posts, snap.Posts)
	loadInto(s, s.skills, snap.Skills)
	loadInto(s, s.projects, snap.Projects)
	loadInto(s, s.certificates, snap.Certificates)
	s.home = snap.Home
	s.about = snap.About
	s.events = snap.Events
	return nil
}

func loadInto[T any, PT interface {
	*T
	models.Record
}](s *Store, col *collection[T], items []T) {
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		col.put(PT(&item).GetID(), item, s.nextSeq())
	}
}

func clonePost(p models.BlogPost) models.BlogPost {
	p.Tags = p.Tags.Clone()
	return p
}

func cloneProject(p models.Project) models.Project {
	p.TechStack = p.TechStack.Clone()
	return p
}
