// Package store implements the per-user bookmark group store: grouped CRUD,
// durable overwrite-on-write persistence, and the liveness sweep entry point.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/dmarinov/linkshelf/pkg/types"
)

// Prober reports which of the given bookmarks are confirmed dead.
// Satisfied by sweep.Sweeper.
type Prober interface {
	Dead(ctx context.Context, bookmarks []types.Bookmark) []types.Bookmark
}

// group pairs the serializable group value with its own mutex so that a
// sweep applying removals to one group never blocks work on another.
type group struct {
	mu sync.Mutex
	g  *types.Group
}

// Store holds every bookmark group of one user and persists itself to a
// single backing file after each mutation. Mutations on different groups may
// proceed concurrently; the groups map itself is guarded by mu.
//
// A failed persist is logged and the in-memory mutation is kept: the caller
// of a mutating operation sees success even when the durable write failed.
type Store struct {
	username string
	path     string
	prober   Prober
	log      *slog.Logger

	mu     sync.RWMutex // guards the groups map, not group contents
	groups map[string]*group
}

// NewStore creates an empty store for username backed by path. The store is
// not persisted until the first mutation; use Registry.Create for the
// register-and-persist flow.
func NewStore(username, path string, prober Prober, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		username: username,
		path:     path,
		prober:   prober,
		log:      log,
		groups:   make(map[string]*group),
	}
}

// LoadStore reads a persisted store file and rehydrates the store.
func LoadStore(path string, prober Prober, log *slog.Logger) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading store file: %w", err)
	}
	username, groups, err := decodeStoreFile(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	s := NewStore(username, path, prober, log)
	for name, g := range groups {
		s.groups[name] = &group{g: g}
	}
	return s, nil
}

// Username returns the owning username.
func (s *Store) Username() string { return s.username }

// CreateGroup inserts an empty group and persists the store.
// Returns ErrInvalidArgument for a blank name and ErrGroupExists for a
// duplicate.
func (s *Store) CreateGroup(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: group name must not be blank", types.ErrInvalidArgument)
	}

	s.mu.Lock()
	if _, ok := s.groups[name]; ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", types.ErrGroupExists, name)
	}
	s.groups[name] = &group{g: types.NewGroup(name)}
	s.mu.Unlock()

	s.persist()
	return nil
}

// AddBookmark inserts the bookmark into the named group and persists.
// An add with an already-present title is a silent no-op: de-duplication,
// not overwrite, so keywords captured at first add survive repeats.
// Returns ErrInvalidArgument for an invalid bookmark or blank group name and
// ErrGroupNotFound for an absent group.
func (s *Store) AddBookmark(b types.Bookmark, groupName string) error {
	if strings.TrimSpace(groupName) == "" {
		return fmt.Errorf("%w: group name must not be blank", types.ErrInvalidArgument)
	}
	if err := b.Validate(); err != nil {
		return err
	}

	grp, err := s.lookup(groupName)
	if err != nil {
		return err
	}

	grp.mu.Lock()
	added := grp.g.Add(b)
	grp.mu.Unlock()

	if !added {
		return nil
	}
	s.persist()
	return nil
}

// RemoveBookmark removes the bookmark matching title case-insensitively from
// the named group and persists. Returns ErrInvalidArgument for blank
// identifiers, ErrGroupNotFound for an absent group, and ErrBookmarkNotFound
// when no title matches.
func (s *Store) RemoveBookmark(title, groupName string) error {
	if strings.TrimSpace(groupName) == "" || strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: group name and bookmark title must not be blank", types.ErrInvalidArgument)
	}

	grp, err := s.lookup(groupName)
	if err != nil {
		return err
	}

	grp.mu.Lock()
	b, ok := grp.g.FindFold(title)
	if !ok {
		grp.mu.Unlock()
		return fmt.Errorf("%w: group %q has no bookmark %q", types.ErrBookmarkNotFound, groupName, title)
	}
	grp.g.Remove(b.Title)
	grp.mu.Unlock()

	s.persist()
	return nil
}

// CleanUp probes every bookmark's URL across all groups on the shared sweep
// pool and removes the ones confirmed dead, then persists once. Removals are
// applied per group under that group's lock after all of its probes have
// joined, so a concurrent AddBookmark is never lost. CleanUp blocks until the
// whole sweep completes; probe failures never fail the call.
func (s *Store) CleanUp(ctx context.Context) error {
	if s.prober == nil {
		return fmt.Errorf("store for %s has no prober configured", s.username)
	}

	s.mu.RLock()
	groups := make(map[string]*group, len(s.groups))
	var snapshot []types.Bookmark
	for name, grp := range s.groups {
		groups[name] = grp
		grp.mu.Lock()
		snapshot = append(snapshot, grp.g.List()...)
		grp.mu.Unlock()
	}
	s.mu.RUnlock()

	// Fan-out over the snapshot on the shared pool; every group stays
	// unlocked while probes run, so adds and removals interleave freely.
	dead := s.prober.Dead(ctx, snapshot)

	titlesByGroup := make(map[string][]string)
	for _, b := range dead {
		titlesByGroup[b.GroupName] = append(titlesByGroup[b.GroupName], b.Title)
	}

	removed := 0
	for name, titles := range titlesByGroup {
		grp, ok := groups[name]
		if !ok {
			continue
		}
		grp.mu.Lock()
		grp.g.RemoveAll(titles)
		grp.mu.Unlock()
		removed += len(titles)
	}

	if removed > 0 {
		s.log.Info("liveness sweep removed dead bookmarks",
			"user", s.username, "removed", removed)
	}
	s.persist()
	return nil
}

// ListAll returns every bookmark across all groups, ordered by group name
// then title. Used to seed the search cache.
func (s *Store) ListAll() []types.Bookmark {
	s.mu.RLock()
	groups := make([]*group, 0, len(s.groups))
	for _, grp := range s.groups {
		groups = append(groups, grp)
	}
	s.mu.RUnlock()

	sort.Slice(groups, func(i, j int) bool { return groups[i].g.Name < groups[j].g.Name })

	var out []types.Bookmark
	for _, grp := range groups {
		grp.mu.Lock()
		out = append(out, grp.g.List()...)
		grp.mu.Unlock()
	}
	if out == nil {
		out = []types.Bookmark{}
	}
	return out
}

// GroupNames returns the store's group names in order.
func (s *Store) GroupNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.groups))
	for name := range s.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookup finds a group by exact name.
func (s *Store) lookup(name string) (*group, error) {
	s.mu.RLock()
	grp, ok := s.groups[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrGroupNotFound, name)
	}
	return grp, nil
}

// persist rewrites the backing file with the whole store. Failures are
// logged, never returned: memory and disk may diverge until the next
// successful rewrite.
func (s *Store) persist() {
	s.mu.RLock()
	snapshot := make(map[string]*types.Group, len(s.groups))
	for name, grp := range s.groups {
		grp.mu.Lock()
		snapshot[name] = grp.g.Clone()
		grp.mu.Unlock()
	}
	s.mu.RUnlock()

	data, err := encodeStoreFile(s.username, snapshot)
	if err != nil {
		s.log.Error("persist failed", "user", s.username, "error", err)
		return
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		s.log.Error("persist failed", "user", s.username, "error", err)
	}
}

// flush forces a rewrite of the backing file. Used by the registry when
// creating a store so a registered user exists on disk immediately.
func (s *Store) flush() {
	s.persist()
}
